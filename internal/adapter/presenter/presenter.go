// Package presenter turns ledger data into display-ready values.
// Amounts are rounded to two decimals here and nowhere else.
package presenter

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/inventory-backend/internal/domain"
)

// ItemView is the rendering shape of a line item
type ItemView struct {
	ID                   int64  `json:"id"`
	AssetID              string `json:"assetId"`
	Name                 string `json:"name"`
	Description          string `json:"description,omitempty"`
	Quantity             int    `json:"quantity"`
	AmountPaid           string `json:"amountPaid"`
	TaxPaid              string `json:"taxPaid"`
	UnitPaid             string `json:"unitPaid"`
	ProjectedSalePrice   string `json:"projectedSalePrice"`
	ProjectedTaxExpected string `json:"projectedTaxExpected"`
	ProjectedEarnings    string `json:"projectedEarnings"`
	MarginPercent        string `json:"marginPercent"`
	CreatedAt            string `json:"createdAt"`
}

// TotalsView is the rendering shape of the totals row
// The margin column is intentionally left out
type TotalsView struct {
	ItemCount            int    `json:"itemCount"`
	AmountPaid           string `json:"amountPaid"`
	TaxPaid              string `json:"taxPaid"`
	ProjectedTaxExpected string `json:"projectedTaxExpected"`
	ProjectedEarnings    string `json:"projectedEarnings"`
}

// Amount formats a value with exactly two decimals
// Rounding is half away from zero on the shortest decimal form of v,
// so 1.005 renders as "1.01" even though its binary value is just below 1.005
func Amount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Item presents a single line item
func Item(item domain.LineItem) ItemView {
	return ItemView{
		ID:                   item.ID,
		AssetID:              item.AssetID,
		Name:                 item.Name,
		Description:          item.Description,
		Quantity:             item.Quantity,
		AmountPaid:           Amount(item.AmountPaid),
		TaxPaid:              Amount(item.TaxPaid),
		UnitPaid:             Amount(item.UnitPaid),
		ProjectedSalePrice:   Amount(item.ProjectedSalePrice),
		ProjectedTaxExpected: Amount(item.ProjectedTaxExpected),
		ProjectedEarnings:    Amount(item.ProjectedEarnings),
		MarginPercent:        Amount(item.MarginPercent),
		CreatedAt:            item.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Items presents line items in order
func Items(items []domain.LineItem) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, Item(item))
	}
	return views
}

// Totals presents the totals row
func Totals(t domain.Totals) TotalsView {
	return TotalsView{
		ItemCount:            t.ItemCount,
		AmountPaid:           Amount(t.AmountPaid),
		TaxPaid:              Amount(t.TaxPaid),
		ProjectedTaxExpected: Amount(t.ProjectedTaxExpected),
		ProjectedEarnings:    Amount(t.ProjectedEarnings),
	}
}
