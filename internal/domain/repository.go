package domain

import (
	"context"
	"errors"
)

// ErrStoreFailure marks errors coming back from a ProductStore
var ErrStoreFailure = errors.New("product store failure")

// ProductStore defines the interface for product persistence operations
// Implementations assign their own product IDs
type ProductStore interface {
	// List retrieves all stored products in creation order
	List(ctx context.Context) ([]*Product, error)

	// Create stores a product and returns it with the store-assigned ID
	Create(ctx context.Context, product *Product) (*Product, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a LineItemRecorded event
	Publish(ctx context.Context, event LineItemRecorded) error
}
