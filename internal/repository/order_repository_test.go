package repository_test

import (
	"context"
	"time"

	"vibe-cart/internal/domain"
	"vibe-cart/internal/repository"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func randomOrderParams(items ...domain.OrderItemInput) repository.CreateOrderParams {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}
	return repository.CreateOrderParams{
		CustomerName:  gofakeit.Name(),
		CustomerEmail: gofakeit.Email(),
		Items:         items,
		Total:         total,
	}
}

func (s *storeSuite) TestCreateOrder_PersistsOrderAndItems() {
	ctx := context.Background()

	params := randomOrderParams(
		domain.OrderItemInput{ProductID: "p1", Qty: 3, Price: decimal.NewFromInt(299), Name: "Vibe T-Shirt"},
		domain.OrderItemInput{ProductID: "p5", Qty: 1, Price: decimal.RequireFromString("99.50"), Name: "Vibe Sticker Pack"},
		domain.OrderItemInput{ProductID: "gone", Qty: 2, Price: decimal.Zero, Name: ""},
	)

	order, err := s.orders.Create(ctx, params)
	s.Require().NoError(err)
	s.NotEmpty(order.ID)
	s.False(order.CreatedAt.IsZero())

	details, err := s.orders.FindByID(ctx, order.ID)
	s.Require().NoError(err)

	s.Equal(order.ID, details.Order.ID)
	s.Equal(params.CustomerName, details.Order.CustomerName)
	s.Equal(params.CustomerEmail, details.Order.CustomerEmail)
	s.True(decimal.RequireFromString("996.50").Equal(details.Order.Total), "total %s", details.Order.Total)
	s.WithinDuration(order.CreatedAt, details.Order.CreatedAt, time.Second)

	want := make([]domain.OrderItem, 0, len(params.Items))
	for _, in := range params.Items {
		want = append(want, domain.OrderItem{
			OrderID:   order.ID,
			ProductID: in.ProductID,
			Qty:       in.Qty,
			Price:     in.Price,
			Name:      in.Name,
		})
	}
	diff := cmp.Diff(want, details.Items, decimalComparer, cmpopts.IgnoreFields(domain.OrderItem{}, "ID"))
	s.Empty(diff)

	sum := decimal.Zero
	for _, item := range details.Items {
		s.NotEmpty(item.ID)
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}
	s.True(sum.Equal(details.Order.Total))
}

func (s *storeSuite) TestCreateOrder_SnapshotSurvivesCatalogChange() {
	ctx := context.Background()

	order, err := s.orders.Create(ctx, randomOrderParams(
		domain.OrderItemInput{ProductID: "p2", Qty: 1, Price: decimal.NewFromInt(799), Name: "Vibe Hoodie"},
	))
	s.Require().NoError(err)

	_, err = s.db.Exec(`UPDATE products SET price = $1, name = $2 WHERE id = $3`, decimal.NewFromInt(1), "Renamed", "p2")
	s.Require().NoError(err)

	details, err := s.orders.FindByID(ctx, order.ID)
	s.Require().NoError(err)
	s.Require().Len(details.Items, 1)
	s.Equal("Vibe Hoodie", details.Items[0].Name)
	s.True(decimal.NewFromInt(799).Equal(details.Items[0].Price))
}

func (s *storeSuite) TestCreateOrder_FailingLastItemLeavesNoRows() {
	ctx := context.Background()
	ordersBefore := s.countRows(`SELECT COUNT(*) FROM orders`)
	itemsBefore := s.countRows(`SELECT COUNT(*) FROM order_items`)

	params := randomOrderParams(
		domain.OrderItemInput{ProductID: "p1", Qty: 1, Price: decimal.NewFromInt(299), Name: "Vibe T-Shirt"},
		domain.OrderItemInput{ProductID: "p3", Qty: 2, Price: decimal.NewFromInt(199), Name: "Vibe Cap"},
		// violates CHECK (qty > 0) on the last write
		domain.OrderItemInput{ProductID: "p4", Qty: 0, Price: decimal.NewFromInt(149), Name: "Vibe Mug"},
	)

	_, err := s.orders.Create(ctx, params)
	s.Require().Error(err)
	s.ErrorIs(err, repository.ErrStorage)

	s.Equal(ordersBefore, s.countRows(`SELECT COUNT(*) FROM orders`))
	s.Equal(itemsBefore, s.countRows(`SELECT COUNT(*) FROM order_items`))
	s.Equal(0, s.countRows(`SELECT COUNT(*) FROM orders WHERE customer_email = $1`, params.CustomerEmail))
}

func (s *storeSuite) TestFindOrder_NotFound() {
	_, err := s.orders.FindByID(context.Background(), uuid.NewString())
	s.ErrorIs(err, repository.ErrOrderNotFound)
}

func (s *storeSuite) TestListRecent_NewestFirstWithLimit() {
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		order, err := s.orders.Create(ctx, randomOrderParams(
			domain.OrderItemInput{ProductID: "p4", Qty: i + 1, Price: decimal.NewFromInt(149), Name: "Vibe Mug"},
		))
		s.Require().NoError(err)
		ids = append(ids, order.ID)
		time.Sleep(5 * time.Millisecond)
	}

	orders, err := s.orders.ListRecent(ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(orders, 2)
	s.Equal(ids[2], orders[0].ID)
	s.Equal(ids[1], orders[1].ID)
}
