package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/simaogato/inventory-backend/internal/adapter/presenter"
	"github.com/simaogato/inventory-backend/internal/domain"
	"github.com/simaogato/inventory-backend/internal/usecase/catalog"
	"github.com/simaogato/inventory-backend/internal/usecase/submission"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Server exposes the inventory ledger and the products API over HTTP
type Server struct {
	SubmissionService *submission.SubmissionService
	CatalogService    *catalog.CatalogService
}

// NewServer creates a new HTTP server adapter
func NewServer(submissionService *submission.SubmissionService, catalogService *catalog.CatalogService) *Server {
	return &Server{
		SubmissionService: submissionService,
		CatalogService:    catalogService,
	}
}

// Handler returns the routed handler wrapped with CORS and request logging
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /inventory/items", s.handleSubmitItem)
	mux.HandleFunc("GET /inventory/items", s.handleListItems)
	mux.HandleFunc("GET /inventory/totals", s.handleTotals)
	mux.HandleFunc("GET /products", s.handleListProducts)
	mux.HandleFunc("POST /products", s.handleAddProduct)

	return logRequests(cors(mux))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// submitItemRequest is the JSON body of POST /inventory/items
// Numeric fields may be sent as strings or numbers
type submitItemRequest struct {
	AssetID            formString   `json:"assetId"`
	Name               formString   `json:"name"`
	Description        formString   `json:"description"`
	Quantity           formString   `json:"quantity"`
	AmountPaid         formString   `json:"amountPaid"`
	TaxLines           []formString `json:"taxLines"`
	ProjectedSalePrice formString   `json:"projectedSalePrice"`
}

func (req submitItemRequest) rawInput() domain.RawInput {
	taxLines := make([]string, 0, len(req.TaxLines))
	for _, line := range req.TaxLines {
		taxLines = append(taxLines, string(line))
	}
	return domain.RawInput{
		AssetID:            string(req.AssetID),
		Name:               string(req.Name),
		Description:        string(req.Description),
		Quantity:           string(req.Quantity),
		AmountPaid:         string(req.AmountPaid),
		TaxLines:           taxLines,
		ProjectedSalePrice: string(req.ProjectedSalePrice),
	}
}

// submitItemResponse is returned for an accepted submission
type submitItemResponse struct {
	Item        presenter.ItemView `json:"item"`
	Product     *domain.Product    `json:"product,omitempty"`
	SyncWarning string             `json:"syncWarning,omitempty"`
}

func (s *Server) handleSubmitItem(w http.ResponseWriter, r *http.Request) {
	var req submitItemRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.SubmissionService.Submit(r.Context(), req.rawInput())
	if err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"errors": verrs})
			return
		}
		log.Printf("Failed to submit item: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to submit item")
		return
	}

	resp := submitItemResponse{
		Item:    presenter.Item(result.Item),
		Product: result.Product,
	}
	if result.SyncErr != nil {
		resp.SyncWarning = result.SyncErr.Error()
	}

	writeJSON(w, http.StatusCreated, resp)
}

// inventoryResponse is the table payload: ordered items plus the totals row
type inventoryResponse struct {
	Items  []presenter.ItemView `json:"items"`
	Totals presenter.TotalsView `json:"totals"`
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, totals := s.SubmissionService.Ledger.Snapshot()
	writeJSON(w, http.StatusOK, inventoryResponse{
		Items:  presenter.Items(items),
		Totals: presenter.Totals(totals),
	})
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, presenter.Totals(s.SubmissionService.GetTotals()))
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.CatalogService.ListProducts(r.Context())
	if err != nil {
		log.Printf("Failed to list products: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := checkProductPayload(body); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var product domain.Product
	if err := json.Unmarshal(body, &product); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidTypes)
		return
	}
	// Store-assigned; a client-sent id is discarded
	product.ID = 0
	delete(product.Attributes, "id")
	if err := product.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := s.CatalogService.AddProduct(r.Context(), &product)
	if err != nil {
		log.Printf("Failed to add product: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to add product")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Product added successfully",
		"product": stored,
	})
}

const (
	msgMissingFields = "Missing required fields"
	msgInvalidTypes  = "Invalid data types for fields"
)

// checkProductPayload applies the products API rules:
// name, quantity and price must be present, name a string,
// quantity an integer and price a number
// Returns the error message, or "" when the payload is acceptable
func checkProductPayload(body []byte) string {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return msgMissingFields
	}

	for _, key := range []string{"name", "quantity", "price"} {
		if _, ok := fields[key]; !ok {
			return msgMissingFields
		}
	}

	if _, ok := fields["name"].(string); !ok {
		return msgInvalidTypes
	}
	quantity, ok := fields["quantity"].(json.Number)
	if !ok {
		return msgInvalidTypes
	}
	if _, err := quantity.Int64(); err != nil {
		return msgInvalidTypes
	}
	if _, ok := fields["price"].(json.Number); !ok {
		return msgInvalidTypes
	}

	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
