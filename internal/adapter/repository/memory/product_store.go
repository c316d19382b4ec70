package memory

import (
	"context"
	"sync"

	"github.com/simaogato/inventory-backend/internal/domain"
)

// productStore is an in-memory implementation of domain.ProductStore
// IDs are assigned from its own counter starting at 1
type productStore struct {
	mu       sync.Mutex
	products []*domain.Product
	nextID   int64
}

// NewProductStore creates a new in-memory product store
func NewProductStore() domain.ProductStore {
	return &productStore{
		products: make([]*domain.Product, 0),
		nextID:   1,
	}
}

// Create stores a copy of the product and returns it with its new ID
func (s *productStore) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneProduct(product)
	stored.ID = s.nextID
	s.nextID++
	s.products = append(s.products, stored)

	return cloneProduct(stored), nil
}

// List returns copies of all products in creation order
func (s *productStore) List(ctx context.Context) ([]*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		copied = append(copied, cloneProduct(p))
	}
	return copied, nil
}

// cloneProduct copies a product so callers cannot mutate stored state
func cloneProduct(p *domain.Product) *domain.Product {
	c := *p
	if p.LedgerID != nil {
		id := *p.LedgerID
		c.LedgerID = &id
	}
	if p.Attributes != nil {
		c.Attributes = make(map[string]any, len(p.Attributes))
		for k, v := range p.Attributes {
			c.Attributes[k] = v
		}
	}
	return &c
}
