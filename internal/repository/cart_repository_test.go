package repository_test

import (
	"context"

	"vibe-cart/internal/domain"
	"vibe-cart/internal/repository"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

func (s *storeSuite) TestAddItem_SameProductTwiceUpsertsOneLine() {
	ctx := context.Background()

	first, err := s.carts.AddItem(ctx, "p1", 1)
	s.Require().NoError(err)
	s.Equal(domain.AddStatusInserted, first.Status)
	s.Equal(1, first.Qty)

	second, err := s.carts.AddItem(ctx, "p1", 1)
	s.Require().NoError(err)
	s.Equal(domain.AddStatusUpdated, second.Status)
	s.Equal(first.CartID, second.CartID)
	s.Equal(2, second.Qty)

	cart, err := s.carts.GetCart(ctx)
	s.Require().NoError(err)
	s.Require().Len(cart.Items, 1)
	s.Equal(2, cart.Items[0].Qty)
	s.Equal(first.CartID, cart.Items[0].CartID)
	s.False(cart.Items[0].AddedAt.IsZero())
}

func (s *storeSuite) TestAddItem_RejectsNonPositiveQuantity() {
	for _, qty := range []int{0, -3} {
		_, err := s.carts.AddItem(context.Background(), "p1", qty)
		s.ErrorIs(err, repository.ErrInvalidQuantity)
	}
	s.Equal(0, s.countRows(`SELECT COUNT(*) FROM cart_items`))
}

func (s *storeSuite) TestAddItem_ConcurrentAddsDoNotRace() {
	ctx := context.Background()
	const workers = 16

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			_, err := s.carts.AddItem(ctx, "p3", 1)
			return err
		})
	}
	s.Require().NoError(g.Wait())

	s.Equal(1, s.countRows(`SELECT COUNT(*) FROM cart_items WHERE product_id = $1`, "p3"))
	cart, err := s.carts.GetCart(ctx)
	s.Require().NoError(err)
	s.Require().Len(cart.Items, 1)
	s.Equal(workers, cart.Items[0].Qty)
}

func (s *storeSuite) TestGetCart_JoinsProductsAndSumsTotal() {
	ctx := context.Background()

	_, err := s.carts.AddItem(ctx, "p1", 1)
	s.Require().NoError(err)
	cart, err := s.carts.GetCart(ctx)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(299).Equal(cart.Total), "total %s", cart.Total)

	_, err = s.carts.AddItem(ctx, "p1", 2)
	s.Require().NoError(err)
	_, err = s.carts.AddItem(ctx, "p5", 1)
	s.Require().NoError(err)

	cart, err = s.carts.GetCart(ctx)
	s.Require().NoError(err)
	s.Require().Len(cart.Items, 2)

	s.Equal("p1", cart.Items[0].ProductID)
	s.Equal(3, cart.Items[0].Qty)
	s.Require().NotNil(cart.Items[0].Name)
	s.Equal("Vibe T-Shirt", *cart.Items[0].Name)
	s.Require().NotNil(cart.Items[0].Description)
	s.Equal("Comfortable cotton tee", *cart.Items[0].Description)
	s.True(cart.Items[0].Price.Valid)

	// 299*3 + 99
	s.True(decimal.NewFromInt(996).Equal(cart.Total), "total %s", cart.Total)
}

func (s *storeSuite) TestGetCart_DanglingProductContributesZero() {
	ctx := context.Background()

	_, err := s.carts.AddItem(ctx, "ghost-"+gofakeit.LetterN(6), 4)
	s.Require().NoError(err)
	_, err = s.carts.AddItem(ctx, "p4", 2)
	s.Require().NoError(err)

	// product removed from the catalog after it was added
	_, err = s.carts.AddItem(ctx, "p2", 1)
	s.Require().NoError(err)
	_, err = s.db.Exec(`DELETE FROM products WHERE id = $1`, "p2")
	s.Require().NoError(err)

	cart, err := s.carts.GetCart(ctx)
	s.Require().NoError(err)
	s.Require().Len(cart.Items, 3)

	dangling := 0
	for _, item := range cart.Items {
		if item.Price.Valid {
			continue
		}
		dangling++
		s.Nil(item.Name)
		s.Nil(item.Description)
	}
	s.Equal(2, dangling)
	s.True(decimal.NewFromInt(298).Equal(cart.Total), "total %s", cart.Total)
}

func (s *storeSuite) TestRemoveItem() {
	ctx := context.Background()

	added, err := s.carts.AddItem(ctx, "p2", 1)
	s.Require().NoError(err)

	tests := []struct {
		name        string
		id          string
		wantChanged int64
	}{
		{name: "remove existing line: 1 changed", id: added.CartID, wantChanged: 1},
		{name: "remove same line again: 0 changed", id: added.CartID, wantChanged: 0},
		{name: "remove never inserted id: 0 changed", id: uuid.NewString(), wantChanged: 0},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			changed, err := s.carts.RemoveItem(ctx, tt.id)
			s.Require().NoError(err)
			s.Equal(tt.wantChanged, changed)
		})
	}
}

func (s *storeSuite) TestClear_EmptiesCart() {
	ctx := context.Background()

	for _, id := range []string{"p1", "p2", "p3"} {
		_, err := s.carts.AddItem(ctx, id, gofakeit.IntRange(1, 5))
		s.Require().NoError(err)
	}

	s.Require().NoError(s.carts.Clear(ctx))

	cart, err := s.carts.GetCart(ctx)
	s.Require().NoError(err)
	s.NotNil(cart.Items)
	s.Empty(cart.Items)
	s.True(decimal.Zero.Equal(cart.Total))
	s.True(cart.IsEmpty())

	// clearing an empty cart is fine too
	s.NoError(s.carts.Clear(ctx))
}

func (s *storeSuite) TestClearLines_RemovesOnlyTheSnapshot() {
	ctx := context.Background()

	_, err := s.carts.AddItem(ctx, "p1", 2)
	s.Require().NoError(err)
	_, err = s.carts.AddItem(ctx, "p3", 1)
	s.Require().NoError(err)

	snapshot, err := s.carts.GetCart(ctx)
	s.Require().NoError(err)
	s.Require().Len(snapshot.Items, 2)

	// writes that land after the snapshot was taken
	_, err = s.carts.AddItem(ctx, "p1", 3)
	s.Require().NoError(err)
	_, err = s.carts.AddItem(ctx, "p2", 1)
	s.Require().NoError(err)

	s.Require().NoError(s.carts.ClearLines(ctx, snapshot.Items))

	cart, err := s.carts.GetCart(ctx)
	s.Require().NoError(err)

	remaining := map[string]int{}
	for _, item := range cart.Items {
		remaining[item.ProductID] = item.Qty
	}
	s.Equal(map[string]int{"p1": 3, "p2": 1}, remaining)
}

func (s *storeSuite) TestClearLines_EmptiesCartWhenUnchanged() {
	ctx := context.Background()

	for _, id := range []string{"p4", "p5"} {
		_, err := s.carts.AddItem(ctx, id, gofakeit.IntRange(1, 5))
		s.Require().NoError(err)
	}
	snapshot, err := s.carts.GetCart(ctx)
	s.Require().NoError(err)

	s.Require().NoError(s.carts.ClearLines(ctx, snapshot.Items))

	cart, err := s.carts.GetCart(ctx)
	s.Require().NoError(err)
	s.True(cart.IsEmpty())

	// lines already gone and an empty snapshot are both no-ops
	s.NoError(s.carts.ClearLines(ctx, snapshot.Items))
	s.NoError(s.carts.ClearLines(ctx, nil))
}
