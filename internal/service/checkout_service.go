package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vibe-cart/internal/domain"
	"vibe-cart/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/text/currency"
)

// MaxOrdersListLimit caps GET /api/orders page sizes.
const MaxOrdersListLimit = 100

// CheckoutService turns the current cart into a persisted order and reads
// historical orders back.
type CheckoutService interface {
	Checkout(ctx context.Context, name, email string) (*domain.Receipt, error)
	GetOrder(ctx context.Context, id string) (*domain.OrderDetails, error)
	ListOrders(ctx context.Context, limit int) ([]*domain.Order, error)
}

// CheckoutOptions tunes a CheckoutService. Zero values fall back to defaults.
type CheckoutOptions struct {
	Currency         currency.Unit
	DefaultListLimit int
	Now              func() time.Time
}

type checkoutService struct {
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
	logger    *zap.Logger

	currency     currency.Unit
	defaultLimit int
	now          func() time.Time
}

// NewCheckoutService creates a new instance of CheckoutService
func NewCheckoutService(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	logger *zap.Logger,
	opts CheckoutOptions,
) CheckoutService {
	unit := opts.Currency
	if unit == (currency.Unit{}) {
		unit = currency.INR
	}

	limit := opts.DefaultListLimit
	if limit <= 0 || limit > MaxOrdersListLimit {
		limit = 20
	}

	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	return &checkoutService{
		cartRepo:     cartRepo,
		orderRepo:    orderRepo,
		logger:       logger,
		currency:     unit,
		defaultLimit: limit,
		now:          now,
	}
}

// Checkout validates the customer, snapshots the cart into an order in one
// transaction, then removes the ordered lines from the cart. The cart is
// untouched when the order cannot be written. A failed clear is logged and the
// receipt still returned.
//
// The order total is the cart total as stored, so it always equals the sum of
// the order's item lines. The currency is a label and never rounds amounts.
func (s *checkoutService) Checkout(ctx context.Context, name, email string) (*domain.Receipt, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, validationError("name and email are required")
	}

	cart, err := s.cartRepo.GetCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	total := cart.Total

	order, err := s.orderRepo.Create(ctx, repository.CreateOrderParams{
		CustomerName:  name,
		CustomerEmail: email,
		Items:         domain.OrderItemsFromCart(cart),
		Total:         total,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	receipt := &domain.Receipt{
		ID:        order.ID,
		Customer:  domain.Customer{Name: name, Email: email},
		Total:     total,
		Currency:  s.currency.String(),
		Items:     cart.Items,
		Timestamp: s.now(),
	}

	if err := s.cartRepo.ClearLines(ctx, cart.Items); err != nil {
		s.logger.Warn("cart not cleared after checkout",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("checkout completed",
		zap.String("order_id", order.ID),
		zap.Int("lines", len(cart.Items)),
		zap.String("total", total.String()),
		zap.String("currency", receipt.Currency),
	)

	return receipt, nil
}

func (s *checkoutService) GetOrder(ctx context.Context, id string) (*domain.OrderDetails, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, validationError("order id is required")
	}

	details, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, notFound(err)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return details, nil
}

// ListOrders returns the newest orders. A non-positive limit means the
// configured default; larger limits are capped.
func (s *checkoutService) ListOrders(ctx context.Context, limit int) ([]*domain.Order, error) {
	switch {
	case limit <= 0:
		limit = s.defaultLimit
	case limit > MaxOrdersListLimit:
		limit = MaxOrdersListLimit
	}

	orders, err := s.orderRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
