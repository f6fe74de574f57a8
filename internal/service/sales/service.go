package sales

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pgg11/stock-manager-frontend/internal/domain/models"
	"github.com/pgg11/stock-manager-frontend/internal/repository/mongodb"
	"github.com/pgg11/stock-manager-frontend/internal/service/catalog"
	"github.com/pgg11/stock-manager-frontend/pkg/clients/stockapi"
)

// DraftLineView is one draft line decorated for display: resolved product
// name, the advisory unit price and subtotal when they can be derived, and the
// low-stock flag. UnitPrice and Subtotal are nil when no estimate exists —
// absence, not zero.
type DraftLineView struct {
	ProductID   int64    `json:"product_id"`
	ProductName string   `json:"product_name"`
	Quantity    string   `json:"quantity"`
	UnitPrice   *float64 `json:"unit_price"`
	Subtotal    *float64 `json:"subtotal"`
	LowStock    bool     `json:"low_stock"`
}

// DraftView is the full pending-sale state for display.
type DraftView struct {
	Lines          []DraftLineView `json:"lines"`
	EstimatedTotal float64         `json:"estimated_total"`
}

// SaleItemView is one line of a completed sale with its name resolved.
type SaleItemView struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	PriceAtSale float64 `json:"price_at_sale"`
	Subtotal    float64 `json:"subtotal"`
}

// SaleView is one past sale with its total recomputed from the items.
type SaleView struct {
	ID    int64          `json:"id"`
	Date  string         `json:"date"`
	Items []SaleItemView `json:"items"`
	Total float64        `json:"total"`
}

// Service owns the draft ledger and drives sale submission and voiding
// against the remote API. All draft mutation goes through this service; the
// catalog snapshot is read-only from here.
type Service struct {
	client  stockapi.Client
	catalog *catalog.Service
	ledger  *Ledger
	journal mongodb.Repository
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires a sales service with an empty draft. journal may be nil
// when local journaling is disabled.
func NewService(client stockapi.Client, catalogSvc *catalog.Service, journal mongodb.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  client,
		catalog: catalogSvc,
		ledger:  NewLedger(),
		journal: journal,
		logger:  logger,
		now:     time.Now,
	}
}

// AddLine adds a product line to the draft.
func (s *Service) AddLine(productID int64, quantity string) error {
	return s.ledger.Add(productID, quantity)
}

// UpdateLine replaces the quantity text of a draft line.
func (s *Service) UpdateLine(productID int64, quantity string) error {
	return s.ledger.UpdateQuantity(productID, quantity)
}

// RemoveLine deletes a draft line.
func (s *Service) RemoveLine(productID int64) {
	s.ledger.Remove(productID)
}

// ClearDraft discards the whole draft.
func (s *Service) ClearDraft() {
	s.ledger.Clear()
}

// Draft renders the current draft against the catalog snapshot. Estimates are
// recomputed on every call and never stored; the server's price_at_sale is
// the only authoritative price.
func (s *Service) Draft() DraftView {
	store := s.catalog.Store()
	items := s.ledger.Items()

	view := DraftView{Lines: make([]DraftLineView, 0, len(items))}
	for _, it := range items {
		line := DraftLineView{
			ProductID:   it.ProductID,
			ProductName: store.ResolveName(it.ProductID),
			Quantity:    it.Quantity,
		}

		price, priceOK := store.UnitPrice(it.ProductID)
		qty, qtyOK := parseQuantity(it.Quantity)
		if priceOK {
			line.UnitPrice = &price
			if qtyOK {
				subtotal := price * qty
				line.Subtotal = &subtotal
			}
		}
		if p, ok := store.Product(it.ProductID); ok && qtyOK && qty > p.TotalStock {
			// Advisory only: concurrent sales elsewhere can change stock
			// between composition and submission, so the server has the
			// final word.
			line.LowStock = true
		}

		view.Lines = append(view.Lines, line)
	}

	view.EstimatedTotal = s.ledger.EstimatedTotal(store.UnitPrice)
	return view
}

// Finalize validates the draft and submits it as one atomic sale. On success
// the draft is cleared before any refresh is triggered, then the catalog
// snapshot is refetched since the sale consumed stock server-side. On failure
// the draft is left untouched so the operator can correct and retry.
func (s *Service) Finalize(ctx context.Context) (*models.Sale, error) {
	payload, err := s.ledger.Validate()
	if err != nil {
		return nil, err
	}

	sale, err := s.client.CreateSale(ctx, models.CreateSaleRequest{Items: payload})
	if err != nil {
		s.logger.Error("sale submission failed", zap.Int("lines", len(payload)), zap.Error(err))
		s.appendJournal(ctx, models.SaleJournalEntry{
			Action:    "sale",
			Items:     payload,
			Succeeded: false,
			Error:     err.Error(),
			CreatedAt: s.now(),
		})
		return nil, err
	}

	s.ledger.Clear()
	s.logger.Info("sale finalized", zap.Int64("sale_id", sale.ID), zap.Int("lines", len(payload)))

	s.appendJournal(ctx, models.SaleJournalEntry{
		Action:    "sale",
		SaleID:    sale.ID,
		Items:     payload,
		Succeeded: true,
		CreatedAt: s.now(),
	})

	if err := s.catalog.Refresh(ctx); err != nil {
		// The sale already happened; a stale snapshot heals on the next
		// scheduled refresh.
		s.logger.Warn("catalog refresh after sale failed", zap.Error(err))
	}

	return sale, nil
}

// History lists past sales with totals recomputed client-side and product
// names resolved through the current snapshot.
func (s *Service) History(ctx context.Context) ([]SaleView, error) {
	sales, err := s.client.ListSales(ctx)
	if err != nil {
		return nil, err
	}

	store := s.catalog.Store()
	views := make([]SaleView, 0, len(sales))
	for _, sale := range sales {
		view := SaleView{
			ID:    sale.ID,
			Date:  sale.Date,
			Items: make([]SaleItemView, 0, len(sale.Items)),
			Total: sale.ItemsTotal(),
		}
		for _, it := range sale.Items {
			view.Items = append(view.Items, SaleItemView{
				ProductID:   it.ProductID,
				ProductName: store.ResolveName(it.ProductID),
				Quantity:    it.Quantity,
				PriceAtSale: it.PriceAtSale,
				Subtotal:    it.Quantity * it.PriceAtSale,
			})
		}
		views = append(views, view)
	}
	return views, nil
}

// Void reverses a completed sale server-side. On success the catalog
// snapshot is refetched, since the void restored stock; on failure nothing
// changes locally.
func (s *Service) Void(ctx context.Context, saleID int64) error {
	if err := s.client.VoidSale(ctx, saleID); err != nil {
		s.logger.Error("sale void failed", zap.Int64("sale_id", saleID), zap.Error(err))
		s.appendJournal(ctx, models.SaleJournalEntry{
			Action:    "void",
			SaleID:    saleID,
			Succeeded: false,
			Error:     err.Error(),
			CreatedAt: s.now(),
		})
		return err
	}

	s.logger.Info("sale voided", zap.Int64("sale_id", saleID))
	s.appendJournal(ctx, models.SaleJournalEntry{
		Action:    "void",
		SaleID:    saleID,
		Succeeded: true,
		CreatedAt: s.now(),
	})

	if err := s.catalog.Refresh(ctx); err != nil {
		s.logger.Warn("catalog refresh after void failed", zap.Error(err))
	}
	return nil
}

func (s *Service) appendJournal(ctx context.Context, entry models.SaleJournalEntry) {
	if s.journal == nil {
		return
	}
	if err := s.journal.AppendJournalEntry(ctx, entry); err != nil {
		s.logger.Warn("sale journal append failed", zap.String("action", entry.Action), zap.Error(err))
	}
}
