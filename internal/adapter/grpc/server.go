package grpc

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/inventory-backend/internal/adapter/presenter"
	"github.com/simaogato/inventory-backend/internal/domain"
	"github.com/simaogato/inventory-backend/internal/usecase/catalog"
	"github.com/simaogato/inventory-backend/internal/usecase/submission"
)

// Server implements the InventoryService gRPC server
type Server struct {
	SubmissionService *submission.SubmissionService
	CatalogService    *catalog.CatalogService
}

// NewServer creates a new gRPC server instance
func NewServer(
	submissionService *submission.SubmissionService,
	catalogService *catalog.CatalogService,
) *Server {
	return &Server{
		SubmissionService: submissionService,
		CatalogService:    catalogService,
	}
}

// Request keys of SubmitItem
const (
	keyAssetID            = "asset_id"
	keyName               = "name"
	keyDescription        = "description"
	keyQuantity           = "quantity"
	keyAmountPaid         = "amount_paid"
	keyTaxLines           = "tax_lines"
	keyProjectedSalePrice = "projected_sale_price"
)

// requestKeys maps validation field names to SubmitItem request keys
var requestKeys = map[string]string{
	domain.FieldAssetID:            keyAssetID,
	domain.FieldName:               keyName,
	domain.FieldQuantity:           keyQuantity,
	domain.FieldAmountPaid:         keyAmountPaid,
	domain.FieldTaxLines:           keyTaxLines,
	domain.FieldProjectedSalePrice: keyProjectedSalePrice,
}

// SubmitItem handles the SubmitItem RPC
func (s *Server) SubmitItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	// Convert the request document to raw form input
	raw, err := rawInputFromStruct(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%v", err)
	}

	// Call usecase service
	result, err := s.SubmissionService.Submit(ctx, raw)
	if err != nil {
		return nil, mapError(err)
	}

	// Build response
	resp := map[string]any{
		"item": itemFields(presenter.Item(result.Item)),
	}
	if result.Product != nil {
		resp["product"] = productFields(result.Product)
	}
	if result.SyncErr != nil {
		resp["sync_warning"] = result.SyncErr.Error()
	}

	return newResponse(resp)
}

// ListItems handles the ListItems RPC
func (s *Server) ListItems(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	items, totals := s.SubmissionService.Ledger.Snapshot()

	views := presenter.Items(items)
	list := make([]any, 0, len(views))
	for _, view := range views {
		list = append(list, itemFields(view))
	}

	return newResponse(map[string]any{
		"items":  list,
		"totals": totalsFields(presenter.Totals(totals)),
	})
}

// GetTotals handles the GetTotals RPC
func (s *Server) GetTotals(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return newResponse(totalsFields(presenter.Totals(s.SubmissionService.GetTotals())))
}

// ListProducts handles the ListProducts RPC
func (s *Server) ListProducts(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	products, err := s.CatalogService.ListProducts(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	list := make([]any, 0, len(products))
	for _, p := range products {
		list = append(list, productFields(p))
	}

	return newResponse(map[string]any{"products": list})
}

// rawInputFromStruct reads form fields from a request document
// Fields may be strings or numbers; absent and null fields are blank
func rawInputFromStruct(req *structpb.Struct) (domain.RawInput, error) {
	fields := req.GetFields()

	text := func(key string) (string, error) {
		v, ok := fields[key]
		if !ok {
			return "", nil
		}
		s, ok := valueText(v)
		if !ok {
			return "", errors.New("invalid " + key + ": expected string or number")
		}
		return s, nil
	}

	var raw domain.RawInput
	var err error
	if raw.AssetID, err = text(keyAssetID); err != nil {
		return raw, err
	}
	if raw.Name, err = text(keyName); err != nil {
		return raw, err
	}
	if raw.Description, err = text(keyDescription); err != nil {
		return raw, err
	}
	if raw.Quantity, err = text(keyQuantity); err != nil {
		return raw, err
	}
	if raw.AmountPaid, err = text(keyAmountPaid); err != nil {
		return raw, err
	}
	if raw.ProjectedSalePrice, err = text(keyProjectedSalePrice); err != nil {
		return raw, err
	}

	if v, ok := fields[keyTaxLines]; ok {
		switch kind := v.GetKind().(type) {
		case *structpb.Value_NullValue:
		case *structpb.Value_ListValue:
			for _, line := range kind.ListValue.GetValues() {
				s, ok := valueText(line)
				if !ok {
					return raw, errors.New("invalid " + keyTaxLines + ": expected strings or numbers")
				}
				raw.TaxLines = append(raw.TaxLines, s)
			}
		default:
			return raw, errors.New("invalid " + keyTaxLines + ": expected a list")
		}
	}

	return raw, nil
}

func valueText(v *structpb.Value) (string, bool) {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return kind.StringValue, true
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(kind.NumberValue, 'f', -1, 64), true
	case *structpb.Value_NullValue:
		return "", true
	default:
		return "", false
	}
}

func itemFields(v presenter.ItemView) map[string]any {
	return map[string]any{
		"id":                     v.ID,
		"asset_id":               v.AssetID,
		"name":                   v.Name,
		"description":            v.Description,
		"quantity":               v.Quantity,
		"amount_paid":            v.AmountPaid,
		"tax_paid":               v.TaxPaid,
		"unit_paid":              v.UnitPaid,
		"projected_sale_price":   v.ProjectedSalePrice,
		"projected_tax_expected": v.ProjectedTaxExpected,
		"projected_earnings":     v.ProjectedEarnings,
		"margin_percent":         v.MarginPercent,
		"created_at":             v.CreatedAt,
	}
}

func totalsFields(v presenter.TotalsView) map[string]any {
	return map[string]any{
		"item_count":             v.ItemCount,
		"amount_paid":            v.AmountPaid,
		"tax_paid":               v.TaxPaid,
		"projected_tax_expected": v.ProjectedTaxExpected,
		"projected_earnings":     v.ProjectedEarnings,
	}
}

func productFields(p *domain.Product) map[string]any {
	fields := map[string]any{
		"id":           p.ID,
		"asset_id":     p.AssetID,
		"name":         p.Name,
		"description":  p.Description,
		"quantity":     p.Quantity,
		"price":        p.Price,
		"vat":          p.VAT,
		"future_price": p.FuturePrice,
		"future_vat":   p.FutureVAT,
		"created_at":   p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if p.LedgerID != nil {
		fields["ledger_id"] = *p.LedgerID
	}
	if len(p.Attributes) > 0 {
		fields["attributes"] = p.Attributes
	}
	return fields
}

func newResponse(fields map[string]any) (*structpb.Struct, error) {
	resp, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return resp, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	// Field validation failures carry a BadRequest detail per field
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		return validationStatus(verrs)
	}

	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	// Store failures are Internal whatever their message says
	if errors.Is(err, domain.ErrStoreFailure) {
		return status.Errorf(codes.Internal, "%s", err.Error())
	}

	errorMsg := err.Error()

	// Map common validation errors to InvalidArgument
	if strings.Contains(errorMsg, "invalid") ||
		strings.Contains(errorMsg, "cannot be") ||
		strings.Contains(errorMsg, "must be") {
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	}

	// Map "not found" errors to NotFound
	if strings.Contains(errorMsg, "not found") {
		return status.Errorf(codes.NotFound, "%s", errorMsg)
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", errorMsg)
}

func validationStatus(verrs domain.ValidationErrors) error {
	fields := make([]string, 0, len(verrs))
	for field := range verrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	violations := make([]*errdetails.BadRequest_FieldViolation, 0, len(fields))
	for _, field := range fields {
		key, ok := requestKeys[field]
		if !ok {
			key = field
		}
		violations = append(violations, &errdetails.BadRequest_FieldViolation{
			Field:       key,
			Description: verrs[field],
		})
	}

	st := status.New(codes.InvalidArgument, verrs.Error())
	detailed, err := st.WithDetails(&errdetails.BadRequest{FieldViolations: violations})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}
