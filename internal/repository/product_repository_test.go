package repository_test

import (
	"context"
	"sync/atomic"

	"vibe-cart/internal/domain"
	"vibe-cart/internal/repository"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

func (s *storeSuite) TestProductList_ReturnsSeedInIDOrder() {
	products, err := s.products.List(context.Background())
	s.Require().NoError(err)

	want := domain.SampleProducts()
	s.Require().Len(products, len(want))
	for i := range want {
		s.Empty(cmp.Diff(want[i], *products[i], decimalComparer))
	}
}

func (s *storeSuite) TestProductFindByID() {
	tests := []struct {
		name      string
		id        string
		wantPrice decimal.Decimal
		wantErr   error
	}{
		{name: "existing product: ok", id: "p2", wantPrice: decimal.NewFromInt(799)},
		{name: "unknown product: not found", id: "p404", wantErr: repository.ErrProductNotFound},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			product, err := s.products.FindByID(context.Background(), tt.id)
			if tt.wantErr != nil {
				s.ErrorIs(err, tt.wantErr)
				return
			}
			s.Require().NoError(err)
			s.Equal(tt.id, product.ID)
			s.True(tt.wantPrice.Equal(product.Price), "price %s", product.Price)
		})
	}
}

func (s *storeSuite) TestSeedIfEmpty_IsIdempotent() {
	ctx := context.Background()

	seeded, err := s.products.SeedIfEmpty(ctx, domain.SampleProducts())
	s.Require().NoError(err)
	s.False(seeded, "must not re-seed a populated catalog")

	count, err := s.products.Count(ctx)
	s.Require().NoError(err)
	s.Equal(int64(len(domain.SampleProducts())), count)
}

func (s *storeSuite) TestSeedIfEmpty_SkipsWhenAnyProductExists() {
	ctx := context.Background()
	s.deleteAll()

	_, err := s.db.Exec(`INSERT INTO products (id, name, description, price) VALUES ($1, $2, $3, $4)`,
		"custom", "Custom", "hand made", decimal.NewFromInt(5))
	s.Require().NoError(err)

	seeded, err := s.products.SeedIfEmpty(ctx, domain.SampleProducts())
	s.Require().NoError(err)
	s.False(seeded)

	count, err := s.products.Count(ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *storeSuite) TestSeedIfEmpty_ConcurrentStartupsSeedOnce() {
	ctx := context.Background()
	s.deleteAll()

	const starters = 4
	var (
		g      errgroup.Group
		seeded atomic.Int32
	)
	for i := 0; i < starters; i++ {
		g.Go(func() error {
			ok, err := s.products.SeedIfEmpty(ctx, domain.SampleProducts())
			if ok {
				seeded.Add(1)
			}
			return err
		})
	}
	s.Require().NoError(g.Wait())

	s.Equal(int32(1), seeded.Load())
	count, err := s.products.Count(ctx)
	s.Require().NoError(err)
	s.Equal(int64(len(domain.SampleProducts())), count)
}

func (s *storeSuite) TestProductList_CancelledContextIsStorageError() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.products.List(ctx)
	s.ErrorIs(err, repository.ErrStorage)
}
