package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/simaogato/inventory-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductStore_Create(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"Product added successfully","product":{"id":77,"name":"Widget","quantity":10,"price":100,"ledgerId":1}}`))
	}))
	defer server.Close()

	store := NewProductStore(server.URL+"/", nil)
	ledgerID := int64(1)

	created, err := store.Create(context.Background(), &domain.Product{
		LedgerID: &ledgerID,
		AssetID:  "SKU-1",
		Name:     "Widget",
		Quantity: 10,
		Price:    100,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(77), created.ID)
	assert.Equal(t, "Widget", received["name"])
	assert.Equal(t, "SKU-1", received["assetId"])
	assert.Equal(t, float64(10), received["quantity"])
}

func TestProductStore_CreateRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Missing required fields"}`))
	}))
	defer server.Close()

	store := NewProductStore(server.URL, nil)

	_, err := store.Create(context.Background(), &domain.Product{Name: "X"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "Missing required fields")
}

func TestProductStore_CreateUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	store := NewProductStore(url, nil)

	_, err := store.Create(context.Background(), &domain.Product{Name: "X"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to post product")
}

func TestProductStore_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Product 1","quantity":5,"price":10.0},{"id":2,"name":"Product 2","quantity":10,"price":20.0,"color":"blue"}]`))
	}))
	defer server.Close()

	store := NewProductStore(server.URL, nil)

	products, err := store.List(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Product 2", products[1].Name)
	assert.Equal(t, "blue", products[1].Attributes["color"])
}

func TestProductStore_ListServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	store := NewProductStore(server.URL, nil)

	_, err := store.List(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "boom")
}
