package submission

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/simaogato/inventory-backend/internal/domain"
	"github.com/simaogato/inventory-backend/internal/ledger"
)

// Result represents the outcome of a successful submission
type Result struct {
	Item domain.LineItem

	// Product is the copy accepted by the product store, nil when no store
	// is configured or the sync failed
	Product *domain.Product

	// SyncErr is set when the product store rejected the write
	// The ledger append has already happened and is not rolled back
	SyncErr error
}

// SubmissionService turns product-entry form submissions into ledger line items
type SubmissionService struct {
	Ledger     *ledger.Ledger
	Calculator *domain.PricingCalculator
	Store      domain.ProductStore   // Optional
	Publisher  domain.EventPublisher // Optional

	now func() time.Time
}

// NewSubmissionService creates a new SubmissionService instance
// store and publisher may be nil
func NewSubmissionService(
	l *ledger.Ledger,
	calculator *domain.PricingCalculator,
	store domain.ProductStore,
	publisher domain.EventPublisher,
) *SubmissionService {
	return &SubmissionService{
		Ledger:     l,
		Calculator: calculator,
		Store:      store,
		Publisher:  publisher,
		now:        time.Now,
	}
}

// Submit validates a raw form submission and records it in the ledger
// Logic:
//  1. Validate the raw input; on failure return domain.ValidationErrors without touching the ledger
//  2. Parse numerics (blank or zero quantity becomes 1, other blanks become 0)
//  3. Compute derived pricing fields
//  4. Append the line item to the ledger, which assigns its ID
//  5. Sync the product to the store and publish LineItemRecorded (best effort)
func (s *SubmissionService) Submit(ctx context.Context, raw domain.RawInput) (*Result, error) {
	// 1. Validate
	if errs := domain.Validate(raw); errs != nil {
		return nil, errs
	}

	// 2. Parse
	parsed := domain.ParseInput(raw)

	// 3. Price
	derived := s.Calculator.ComputeDerived(parsed.AmountPaid, parsed.TaxLines, parsed.Quantity, parsed.ProjectedSalePrice)

	// 4. Append
	item := s.Ledger.Append(domain.NewLineItem(parsed, derived, s.now().UTC()))
	result := &Result{Item: item}

	// 5. Collaborators never undo the local append
	if s.Store != nil {
		product, err := s.Store.Create(ctx, domain.ProductFromLineItem(item))
		if err != nil {
			result.SyncErr = fmt.Errorf("failed to sync line item %d to product store: %w", item.ID, err)
			log.Printf("Warning: %v", result.SyncErr)
		} else {
			result.Product = product
		}
	}

	if s.Publisher != nil {
		if err := s.Publisher.Publish(ctx, domain.NewLineItemRecorded(item)); err != nil {
			log.Printf("Warning: failed to publish event for line item %d: %v", item.ID, err)
		}
	}

	return result, nil
}

// ListItems returns all ledger line items in insertion order
func (s *SubmissionService) ListItems() []domain.LineItem {
	return s.Ledger.Items()
}

// GetTotals returns the totals row over all ledger line items
func (s *SubmissionService) GetTotals() domain.Totals {
	return s.Ledger.Totals()
}
