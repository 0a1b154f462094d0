package transport

import (
	"context"
	"fmt"
	"time"

	"vibe-cart/internal/domain"
	"vibe-cart/internal/repository"
	"vibe-cart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// fakeCatalog, fakeCart and fakeCheckout stand in for the services so each
// handler test controls exactly what the layer below returns.
type fakeCatalog struct {
	products []*domain.Product
	err      error
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return f.products, f.err
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %w", service.ErrNotFound, repository.ErrProductNotFound)
}

type addCall struct {
	productID string
	qty       int
}

type fakeCart struct {
	adds    []addCall
	removed []string
	cleared int

	addResult *domain.AddResult
	view      domain.CartView
	err       error
}

func (f *fakeCart) AddItem(ctx context.Context, productID string, qty int) (*domain.AddResult, error) {
	f.adds = append(f.adds, addCall{productID: productID, qty: qty})
	if f.err != nil {
		return nil, f.err
	}
	if f.addResult != nil {
		return f.addResult, nil
	}
	return &domain.AddResult{CartID: "line-1", ProductID: productID, Qty: qty, Status: domain.AddStatusInserted}, nil
}

func (f *fakeCart) RemoveItem(ctx context.Context, cartLineID string) error {
	f.removed = append(f.removed, cartLineID)
	return f.err
}

func (f *fakeCart) GetCart(ctx context.Context) (domain.CartView, error) {
	return f.view, f.err
}

func (f *fakeCart) Clear(ctx context.Context) error {
	f.cleared++
	return f.err
}

type fakeCheckout struct {
	customers []domain.Customer
	lastLimit int

	receipt *domain.Receipt
	details *domain.OrderDetails
	orders  []*domain.Order
	err     error
}

func (f *fakeCheckout) Checkout(ctx context.Context, name, email string) (*domain.Receipt, error) {
	f.customers = append(f.customers, domain.Customer{Name: name, Email: email})
	if f.err != nil {
		return nil, f.err
	}
	return f.receipt, nil
}

func (f *fakeCheckout) GetOrder(ctx context.Context, id string) (*domain.OrderDetails, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.details == nil || f.details.Order.ID != id {
		return nil, fmt.Errorf("%w: %w", service.ErrNotFound, repository.ErrOrderNotFound)
	}
	return f.details, nil
}

func (f *fakeCheckout) ListOrders(ctx context.Context, limit int) ([]*domain.Order, error) {
	f.lastLimit = limit
	return f.orders, f.err
}

func sampleCatalog() *fakeCatalog {
	catalog := &fakeCatalog{}
	for _, p := range domain.SampleProducts() {
		catalog.products = append(catalog.products, &p)
	}
	return catalog
}

func sampleReceipt() *domain.Receipt {
	name := "Vibe T-Shirt"
	return &domain.Receipt{
		ID:       "order-1",
		Customer: domain.Customer{Name: "A", Email: "a@x.com"},
		Total:    decimal.NewFromInt(897),
		Currency: "INR",
		Items: []domain.CartLineView{{
			CartID:    "line-1",
			ProductID: "p1",
			Qty:       3,
			Name:      &name,
			Price:     decimal.NewNullDecimal(decimal.NewFromInt(299)),
		}},
		Timestamp: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func newTestRouter(catalog *fakeCatalog, cart *fakeCart, checkout *fakeCheckout) chi.Router {
	logger := zap.NewNop()
	r := chi.NewRouter()
	NewProductHandler(catalog, logger).RegisterRoutes(r)
	NewCartHandler(cart, logger).RegisterRoutes(r)
	NewCheckoutHandler(checkout, logger).RegisterRoutes(r)
	return r
}
