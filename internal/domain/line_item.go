package domain

import "time"

// LineItem represents one recorded inventory purchase with its derived pricing figures
// A LineItem is immutable once the ledger has assigned its ID
type LineItem struct {
	ID                   int64 // Assigned by the ledger, starts at 1, never reused
	AssetID              string
	Name                 string
	Description          string
	Quantity             int
	AmountPaid           float64 // Total for the full quantity (UnitPaid * Quantity)
	TaxPaid              float64 // Sum of all entered tax lines
	ProjectedSalePrice   float64 // Per unit
	UnitPaid             float64
	ProjectedTaxExpected float64 // Quantity * per-unit tax at the configured rate
	ProjectedEarnings    float64 // Negative when the sale price is below unit cost
	MarginPercent        float64
	CreatedAt            time.Time
}

// NewLineItem builds an unnumbered line item from parsed input and its derived fields
// The ledger assigns the ID on append
func NewLineItem(input ParsedInput, derived DerivedFields, createdAt time.Time) LineItem {
	return LineItem{
		AssetID:              input.AssetID,
		Name:                 input.Name,
		Description:          input.Description,
		Quantity:             input.Quantity,
		AmountPaid:           derived.AmountPaidTotal,
		TaxPaid:              derived.TaxesSum,
		ProjectedSalePrice:   input.ProjectedSalePrice,
		UnitPaid:             derived.UnitPaid,
		ProjectedTaxExpected: derived.ProjectedTaxExpectedTotal,
		ProjectedEarnings:    derived.ProjectedEarningsTotal,
		MarginPercent:        derived.MarginPercent,
		CreatedAt:            createdAt,
	}
}

// Totals represents the aggregate row displayed alongside the item list
// MarginPercent is per-item only and has no total
type Totals struct {
	ItemCount            int
	AmountPaid           float64
	TaxPaid              float64
	ProjectedTaxExpected float64
	ProjectedEarnings    float64
}

// SumTotals computes the totals row over the given items
func SumTotals(items []LineItem) Totals {
	totals := Totals{ItemCount: len(items)}
	for _, item := range items {
		totals.AmountPaid += item.AmountPaid
		totals.TaxPaid += item.TaxPaid
		totals.ProjectedTaxExpected += item.ProjectedTaxExpected
		totals.ProjectedEarnings += item.ProjectedEarnings
	}
	return totals
}
