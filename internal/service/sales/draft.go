package sales

import (
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/pgg11/stock-manager-frontend/internal/domain/models"
)

// LineItem is one product line of the sale being composed. Quantity is kept as
// the raw text the user typed: it may be transiently empty or malformed while
// editing and is only parsed at the add and finalize boundaries.
type LineItem struct {
	ProductID int64  `json:"product_id"`
	Quantity  string `json:"quantity"`
}

// Ledger is the ordered list of draft lines for one pending sale. It holds at
// most one line per product and is only ever mutated through Add,
// UpdateQuantity, Remove and Clear.
type Ledger struct {
	mu    sync.RWMutex
	items []LineItem
}

// NewLedger creates an empty draft ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Add appends a new line. It rejects, without mutating, a missing product id,
// a quantity that does not parse to a finite number > 0, and a product that
// already has a line. The quantity text is stored as given, not normalized.
func (l *Ledger) Add(productID int64, quantity string) error {
	if productID == 0 {
		return ErrNoProductSelected
	}
	if _, ok := parseQuantity(quantity); !ok {
		return ErrInvalidQuantity
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, it := range l.items {
		if it.ProductID == productID {
			return ErrProductAlreadyAdded
		}
	}

	l.items = append(l.items, LineItem{ProductID: productID, Quantity: quantity})
	return nil
}

// UpdateQuantity replaces the quantity text of the matching line. The new text
// is deliberately not validated so the caller can hold invalid intermediate
// states; validation happens again at finalize.
func (l *Ledger) UpdateQuantity(productID int64, quantity string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		if l.items[i].ProductID == productID {
			l.items[i].Quantity = quantity
			return nil
		}
	}
	return ErrLineNotFound
}

// Remove deletes the matching line; removing an absent product is a no-op.
func (l *Ledger) Remove(productID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		if l.items[i].ProductID == productID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
}

// Items returns a copy of the draft lines in insertion order.
func (l *Ledger) Items() []LineItem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len reports the number of draft lines.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// EstimatedTotal sums price × quantity over the lines that currently have both
// a known unit price and a parsable positive quantity. A line missing either
// contributes nothing; one malformed line must not corrupt the total shown for
// the valid ones.
func (l *Ledger) EstimatedTotal(unitPrice func(productID int64) (float64, bool)) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var total float64
	for _, it := range l.items {
		price, ok := unitPrice(it.ProductID)
		if !ok {
			continue
		}
		qty, ok := parseQuantity(it.Quantity)
		if !ok {
			continue
		}
		total += price * qty
	}
	return total
}

// Validate is the submission gate: it rejects an empty draft and rejects the
// whole draft when any single line has an unparsable quantity, so a malformed
// line can never be silently dropped from a financial transaction. On success
// it returns the normalized payload in line order.
func (l *Ledger) Validate() ([]models.SaleItemPayload, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.items) == 0 {
		return nil, ErrEmptyDraft
	}

	payload := make([]models.SaleItemPayload, 0, len(l.items))
	for _, it := range l.items {
		qty, ok := parseQuantity(it.Quantity)
		if !ok {
			return nil, fmt.Errorf("product %d: %w", it.ProductID, ErrInvalidQuantity)
		}
		payload = append(payload, models.SaleItemPayload{ProductID: it.ProductID, Quantity: qty})
	}
	return payload, nil
}

func parseQuantity(raw string) (float64, bool) {
	qty, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(qty) || math.IsInf(qty, 0) || qty <= 0 {
		return 0, false
	}
	return qty, true
}
