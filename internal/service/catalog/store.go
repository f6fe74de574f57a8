package catalog

import (
	"fmt"
	"sync"
	"time"

	"github.com/pgg11/stock-manager-frontend/internal/domain/models"
)

// Store holds the in-memory catalog snapshot: the product list as last fetched
// from the remote API. Readers treat it as immutable; a refresh replaces the
// whole snapshot under lock rather than patching individual products, so no
// reader ever observes a half-updated catalog.
type Store struct {
	mu          sync.RWMutex
	products    []models.Product
	byID        map[int64]models.Product
	refreshedAt time.Time
}

// NewStore creates an empty catalog store.
func NewStore() *Store {
	return &Store{byID: make(map[int64]models.Product)}
}

// Replace swaps the snapshot wholesale.
func (s *Store) Replace(products []models.Product) {
	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.byID = byID
	s.refreshedAt = time.Now()
}

// Products returns a copy of the snapshot in its original order.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Product looks up a single product by id.
func (s *Store) Product(id int64) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	return p, ok
}

// ResolveName maps a product id to its display name. Products that have since
// been deleted resolve to an id-based placeholder instead of failing the row.
func (s *Store) ResolveName(id int64) string {
	if p, ok := s.Product(id); ok {
		return p.Name
	}
	return fmt.Sprintf("#%d", id)
}

// UnitPrice returns the estimated unit price for a product in the snapshot.
// ok is false when the product is unknown or has no batches.
func (s *Store) UnitPrice(id int64) (float64, bool) {
	p, ok := s.Product(id)
	if !ok {
		return 0, false
	}
	return p.EstimatedUnitPrice()
}

// RefreshedAt reports when the snapshot was last replaced.
func (s *Store) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}
