package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/simaogato/inventory-backend/internal/domain"
)

// productStore implements domain.ProductStore against a remote /products API
type productStore struct {
	baseURL string
	client  *http.Client
}

// NewProductStore creates a product store that talks to the products API at baseURL
// A nil client gets a client with a 10 second timeout
func NewProductStore(baseURL string, client *http.Client) domain.ProductStore {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &productStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// createResponse mirrors the body returned by POST /products
type createResponse struct {
	Message string          `json:"message"`
	Product *domain.Product `json:"product"`
	Error   string          `json:"error"`
}

// Create posts the product and returns the copy echoed back with its remote ID
func (s *productStore) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	body, err := json.Marshal(product)
	if err != nil {
		return nil, fmt.Errorf("failed to encode product: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/products", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to post product: %w", err)
	}
	defer resp.Body.Close()

	var out createResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode create response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("products API rejected product (status %d): %s", resp.StatusCode, out.Error)
	}
	if out.Product == nil {
		return nil, errors.New("products API returned no product")
	}

	return out.Product, nil
}

// List fetches all products from the remote API
func (s *productStore) List(ctx context.Context) ([]*domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("products API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	products := make([]*domain.Product, 0)
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}
