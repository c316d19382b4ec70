package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/simaogato/inventory-backend/internal/adapter/presenter"
	"github.com/simaogato/inventory-backend/internal/domain"
)

// Client calls the inventory HTTP API
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a client for the API at baseURL
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    httpClient,
	}
}

// SubmitItemRequest is a product-entry form submission
type SubmitItemRequest struct {
	AssetID            string   `json:"assetId"`
	Name               string   `json:"name"`
	Description        string   `json:"description,omitempty"`
	Quantity           string   `json:"quantity,omitempty"`
	AmountPaid         string   `json:"amountPaid"`
	TaxLines           []string `json:"taxLines,omitempty"`
	ProjectedSalePrice string   `json:"projectedSalePrice,omitempty"`
}

// SubmitItemResponse is the server's answer to an accepted submission
type SubmitItemResponse struct {
	Item        presenter.ItemView `json:"item"`
	Product     *domain.Product    `json:"product,omitempty"`
	SyncWarning string             `json:"syncWarning,omitempty"`
}

// Inventory is the ledger table with its totals row
type Inventory struct {
	Items  []presenter.ItemView `json:"items"`
	Totals presenter.TotalsView `json:"totals"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors"`
}

// SubmitItem posts a submission
// Field validation failures are returned as domain.ValidationErrors
func (c *Client) SubmitItem(ctx context.Context, req SubmitItemRequest) (*SubmitItemResponse, error) {
	var resp SubmitItemResponse
	if err := c.do(ctx, http.MethodPost, "/inventory/items", req, http.StatusCreated, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListItems fetches the ledger table
func (c *Client) ListItems(ctx context.Context) (*Inventory, error) {
	var inv Inventory
	if err := c.do(ctx, http.MethodGet, "/inventory/items", nil, http.StatusOK, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// Totals fetches the totals row
func (c *Client) Totals(ctx context.Context) (*presenter.TotalsView, error) {
	var totals presenter.TotalsView
	if err := c.do(ctx, http.MethodGet, "/inventory/totals", nil, http.StatusOK, &totals); err != nil {
		return nil, err
	}
	return &totals, nil
}

// Products fetches the stored products
func (c *Client) Products(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, http.StatusOK, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var apiErr errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if len(apiErr.Errors) > 0 {
			return domain.ValidationErrors(apiErr.Errors)
		}
		if apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
