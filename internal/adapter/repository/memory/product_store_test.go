package memory

import (
	"context"
	"testing"

	"github.com/simaogato/inventory-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductStore_CreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	store := NewProductStore()

	ledgerID := int64(9)
	first, err := store.Create(ctx, &domain.Product{Name: "Product 1", LedgerID: &ledgerID})
	require.NoError(t, err)
	second, err := store.Create(ctx, &domain.Product{Name: "Product 2"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, int64(9), *first.LedgerID)
}

func TestProductStore_ListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewProductStore()

	_, err := store.Create(ctx, &domain.Product{Name: "Lamp", Attributes: map[string]any{"color": "red"}})
	require.NoError(t, err)

	products, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	products[0].Name = "changed"
	products[0].Attributes["color"] = "blue"

	again, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", again[0].Name)
	assert.Equal(t, "red", again[0].Attributes["color"])
}

func TestProductStore_InputIsNotRetained(t *testing.T) {
	ctx := context.Background()
	store := NewProductStore()

	input := &domain.Product{Name: "Desk"}
	_, err := store.Create(ctx, input)
	require.NoError(t, err)
	input.Name = "mutated"

	products, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Desk", products[0].Name)
	assert.Zero(t, input.ID)
}

func TestProductStore_EmptyList(t *testing.T) {
	products, err := NewProductStore().List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestProductStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewProductStore()

	_, err := store.Create(ctx, &domain.Product{Name: "X"})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = store.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
