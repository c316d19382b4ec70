package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/simaogato/inventory-backend/internal/domain"
)

// CatalogService handles the product storage API
type CatalogService struct {
	Store domain.ProductStore
}

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(store domain.ProductStore) *CatalogService {
	return &CatalogService{
		Store: store,
	}
}

// AddProduct validates and stores a product
// The store assigns the product ID; CreatedAt is stamped when missing
func (s *CatalogService) AddProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}

	stored, err := s.Store.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to store product: %w: %w", domain.ErrStoreFailure, err)
	}

	return stored, nil
}

// ListProducts returns every stored product
func (s *CatalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.Store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w: %w", domain.ErrStoreFailure, err)
	}
	return products, nil
}
