package service

import (
	"context"
	"fmt"
	"strings"

	"vibe-cart/internal/domain"
	"vibe-cart/internal/repository"

	"go.uber.org/zap"
)

// CartService defines the interface for cart business logic
type CartService interface {
	AddItem(ctx context.Context, productID string, qty int) (*domain.AddResult, error)
	RemoveItem(ctx context.Context, cartLineID string) error
	GetCart(ctx context.Context) (domain.CartView, error)
	Clear(ctx context.Context) error
}

type cartService struct {
	cartRepo repository.CartRepository
	logger   *zap.Logger
}

// NewCartService creates a new instance of CartService
func NewCartService(cartRepo repository.CartRepository, logger *zap.Logger) CartService {
	return &cartService{
		cartRepo: cartRepo,
		logger:   logger,
	}
}

// AddItem validates the request and upserts the cart line. Products are not
// checked against the catalog; a dangling line simply prices at zero.
func (s *cartService) AddItem(ctx context.Context, productID string, qty int) (*domain.AddResult, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, validationError("productId is required")
	}
	if qty <= 0 {
		return nil, validationError("qty must be positive, got %d", qty)
	}

	result, err := s.cartRepo.AddItem(ctx, productID, qty)
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	s.logger.Debug("cart item added",
		zap.String("cart_id", result.CartID),
		zap.String("product_id", result.ProductID),
		zap.Int("qty", result.Qty),
		zap.String("status", string(result.Status)),
	)

	return result, nil
}

func (s *cartService) RemoveItem(ctx context.Context, cartLineID string) error {
	cartLineID = strings.TrimSpace(cartLineID)
	if cartLineID == "" {
		return validationError("cart item id is required")
	}

	changed, err := s.cartRepo.RemoveItem(ctx, cartLineID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if changed == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (s *cartService) GetCart(ctx context.Context) (domain.CartView, error) {
	cart, err := s.cartRepo.GetCart(ctx)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("failed to get cart: %w", err)
	}
	return cart, nil
}

func (s *cartService) Clear(ctx context.Context) error {
	if err := s.cartRepo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
