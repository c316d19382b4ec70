package domain

import (
	"time"

	"github.com/google/uuid"
)

// LineItemRecordedTopic is the topic LineItemRecorded events are published to
const LineItemRecordedTopic = "inventory.line_item_recorded"

// LineItemRecorded is emitted after a line item has been appended to the ledger
type LineItemRecorded struct {
	EventID            uuid.UUID `json:"event_id"`
	LedgerID           int64     `json:"ledger_id"`
	AssetID            string    `json:"asset_id"`
	Name               string    `json:"name"`
	Quantity           int       `json:"quantity"`
	AmountPaid         float64   `json:"amount_paid"`
	TaxPaid            float64   `json:"tax_paid"`
	ProjectedEarnings  float64   `json:"projected_earnings"`
	ProjectedSalePrice float64   `json:"projected_sale_price"`
	OccurredAt         time.Time `json:"occurred_at"`
}

// NewLineItemRecorded creates the event for a freshly appended line item
func NewLineItemRecorded(item LineItem) LineItemRecorded {
	return LineItemRecorded{
		EventID:            uuid.New(),
		LedgerID:           item.ID,
		AssetID:            item.AssetID,
		Name:               item.Name,
		Quantity:           item.Quantity,
		AmountPaid:         item.AmountPaid,
		TaxPaid:            item.TaxPaid,
		ProjectedEarnings:  item.ProjectedEarnings,
		ProjectedSalePrice: item.ProjectedSalePrice,
		OccurredAt:         item.CreatedAt,
	}
}
