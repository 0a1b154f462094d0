package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vibe-cart/internal/domain"
	"vibe-cart/internal/repository"

	"golang.org/x/sync/singleflight"
)

// CatalogService defines the interface for product browsing
type CatalogService interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	listGroup   singleflight.Group
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

// ListProducts collapses concurrent calls into one catalog query. Callers
// share the returned slice and must not modify it. The shared query ignores
// the first caller's cancellation so its disconnect cannot fail the others.
func (s *catalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	queryCtx := context.WithoutCancel(ctx)
	v, err, _ := s.listGroup.Do("products", func() (any, error) {
		return s.productRepo.List(queryCtx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return v.([]*domain.Product), nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, validationError("product id is required")
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, notFound(err)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}
