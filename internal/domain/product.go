package domain

import (
	"errors"
	"time"
)

// Product represents the storage-side record of an inventory purchase
// The product store assigns its own ID; LedgerID links back to the local
// ledger entry when the product was synchronised from a submission, and the
// two identifiers are never assumed to be equal
type Product struct {
	ID          int64          `json:"id"`
	LedgerID    *int64         `json:"ledgerId,omitempty"`
	AssetID     string         `json:"assetId,omitempty"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Quantity    int            `json:"quantity"`
	Price       float64        `json:"price"`                 // Total amount paid
	VAT         float64        `json:"vat,omitempty"`         // Tax paid
	FuturePrice float64        `json:"futurePrice,omitempty"` // Projected sale price per unit
	FutureVAT   float64        `json:"futureVat,omitempty"`   // Projected tax expected
	Attributes  map[string]any `json:"-"`                     // Extra client fields, kept verbatim
	CreatedAt   time.Time      `json:"createdAt"`
}

// Validate ensures the product adheres to storage rules
func (p *Product) Validate() error {
	if p.Name == "" {
		return errors.New("product name cannot be empty")
	}
	if p.Quantity < 0 {
		return errors.New("product quantity cannot be negative")
	}
	return nil
}

// ProductFromLineItem builds the storage payload for a ledger line item
func ProductFromLineItem(item LineItem) *Product {
	ledgerID := item.ID
	return &Product{
		LedgerID:    &ledgerID,
		AssetID:     item.AssetID,
		Name:        item.Name,
		Description: item.Description,
		Quantity:    item.Quantity,
		Price:       item.AmountPaid,
		VAT:         item.TaxPaid,
		FuturePrice: item.ProjectedSalePrice,
		FutureVAT:   item.ProjectedTaxExpected,
		CreatedAt:   item.CreatedAt,
	}
}
