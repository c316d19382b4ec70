package ledger

import (
	"sync"

	"github.com/simaogato/inventory-backend/internal/domain"
)

// Ledger is the in-memory ordered collection of line items
// It owns the next-id counter and is safe for concurrent use:
// Append is atomic and Totals always reflects a complete append set
type Ledger struct {
	mu     sync.RWMutex
	items  []domain.LineItem
	nextID int64
}

// NewLedger creates an empty ledger whose first item will get ID 1
func NewLedger() *Ledger {
	return &Ledger{
		items:  make([]domain.LineItem, 0),
		nextID: 1,
	}
}

// Append assigns the next ID to the item, stores it and returns the stored copy
// Any ID already set on the item is overwritten
func (l *Ledger) Append(item domain.LineItem) domain.LineItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	item.ID = l.nextID
	l.nextID++
	l.items = append(l.items, item)

	return item
}

// Items returns a copy of all line items in insertion order
func (l *Ledger) Items() []domain.LineItem {
	l.mu.RLock()
	defer l.mu.RUnlock()

	copied := make([]domain.LineItem, len(l.items))
	copy(copied, l.items)
	return copied
}

// Len returns the number of line items
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.items)
}

// Totals recomputes the totals row from the full collection
func (l *Ledger) Totals() domain.Totals {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return domain.SumTotals(l.items)
}

// Snapshot returns the items and their totals under a single read lock
func (l *Ledger) Snapshot() ([]domain.LineItem, domain.Totals) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	copied := make([]domain.LineItem, len(l.items))
	copy(copied, l.items)
	return copied, domain.SumTotals(copied)
}
