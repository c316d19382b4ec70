package domain

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Field names used as keys in ValidationErrors
const (
	FieldAssetID            = "assetId"
	FieldName               = "name"
	FieldQuantity           = "quantity"
	FieldAmountPaid         = "amountPaid"
	FieldProjectedSalePrice = "projectedSalePrice"
	FieldTaxLines           = "taxLines"
)

// Validation messages
const (
	MsgAssetIDRequired    = "Asset ID is required."
	MsgNameRequired       = "Product Name is required."
	MsgAmountPaidRequired = "Total Paid is required."
	MsgAmountPaidInvalid  = "Total Paid must be a non-negative number."
	MsgQuantityInvalid    = "Quantity must be a positive number."
	MsgSalePriceInvalid   = "Future Sale Price, if entered, must be a non-negative number."
	MsgTaxLineInvalid     = "All Tax/VAT fields, if entered, must be non-negative numbers."
)

// RawInput represents a product-entry form submission as raw strings
type RawInput struct {
	AssetID            string
	Name               string
	Description        string
	Quantity           string
	AmountPaid         string
	TaxLines           []string
	ProjectedSalePrice string
}

// ParsedInput represents a validated form submission with numeric fields parsed and defaulted
type ParsedInput struct {
	AssetID            string
	Name               string
	Description        string
	Quantity           int
	AmountPaid         float64
	TaxLines           []float64
	ProjectedSalePrice float64
}

// ValidationErrors maps a field name to its error message
// An empty ValidationErrors means the input is valid
type ValidationErrors map[string]string

// Error implements the error interface
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+v[field])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Validate checks a raw form submission
// Every rule is evaluated so that all field errors surface at once,
// except the tax-line rule which stops at the first bad line
// Returns nil when the input is valid
func Validate(raw RawInput) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(raw.AssetID) == "" {
		errs[FieldAssetID] = MsgAssetIDRequired
	}

	if strings.TrimSpace(raw.Name) == "" {
		errs[FieldName] = MsgNameRequired
	}

	if isBlank(raw.AmountPaid) {
		errs[FieldAmountPaid] = MsgAmountPaidRequired
	} else if _, ok := parseNonNegative(raw.AmountPaid); !ok {
		errs[FieldAmountPaid] = MsgAmountPaidInvalid
	}

	// Blank quantity is allowed: the pipeline defaults it to 1
	if !isBlank(raw.Quantity) {
		if _, ok := parseQuantity(raw.Quantity); !ok {
			errs[FieldQuantity] = MsgQuantityInvalid
		}
	}

	if !isBlank(raw.ProjectedSalePrice) {
		if _, ok := parseNonNegative(raw.ProjectedSalePrice); !ok {
			errs[FieldProjectedSalePrice] = MsgSalePriceInvalid
		}
	}

	for _, line := range raw.TaxLines {
		if isBlank(line) {
			continue
		}
		if _, ok := parseNonNegative(line); !ok {
			errs[FieldTaxLines] = MsgTaxLineInvalid
			break
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ParseInput converts a validated RawInput into numbers
// Quantity defaults to 1 when blank or zero; other optional numerics default to 0
// Callers must run Validate first; unparseable values are treated as absent
func ParseInput(raw RawInput) ParsedInput {
	quantity, ok := parseQuantity(raw.Quantity)
	if !ok || quantity == 0 {
		quantity = 1
	}

	taxLines := make([]float64, 0, len(raw.TaxLines))
	for _, line := range raw.TaxLines {
		tax, _ := parseNonNegative(line)
		taxLines = append(taxLines, tax)
	}

	paid, _ := parseNonNegative(raw.AmountPaid)
	sale, _ := parseNonNegative(raw.ProjectedSalePrice)

	return ParsedInput{
		AssetID:            strings.TrimSpace(raw.AssetID),
		Name:               strings.TrimSpace(raw.Name),
		Description:        strings.TrimSpace(raw.Description),
		Quantity:           quantity,
		AmountPaid:         paid,
		TaxLines:           taxLines,
		ProjectedSalePrice: sale,
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// parseNumber parses a decimal number, accepting a comma as decimal separator
func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseNonNegative(s string) (float64, bool) {
	v, ok := parseNumber(s)
	if !ok || v < 0 {
		return 0, false
	}
	return v, true
}

// parseQuantity accepts non-negative whole numbers; zero is coerced to 1 by ParseInput
func parseQuantity(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
