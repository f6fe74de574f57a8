package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pgg11/stock-manager-frontend/internal/domain/models"
	"github.com/pgg11/stock-manager-frontend/internal/repository/sheets"
	"github.com/pgg11/stock-manager-frontend/internal/service/catalog"
	"github.com/pgg11/stock-manager-frontend/pkg/clients/stockapi"
)

const dateLayout = "2006-01-02"

// ErrInvalidDateRange indicates that the requested report window is reversed.
var ErrInvalidDateRange = errors.New("start date must not be after end date")

// Service exposes the read-only report views (price history, profits) and the
// periodic sales summary export.
type Service struct {
	client   stockapi.Client
	catalog  *catalog.Service
	exporter sheets.Exporter
	logger   *zap.Logger
}

// NewService wires a new reporting service instance. exporter may be nil when
// the spreadsheet export is disabled.
func NewService(client stockapi.Client, catalogSvc *catalog.Service, exporter sheets.Exporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:   client,
		catalog:  catalogSvc,
		exporter: exporter,
		logger:   logger,
	}
}

// PriceHistory fetches the cost-vs-price records for one product.
func (s *Service) PriceHistory(ctx context.Context, productID int64) ([]models.PriceHistoryEntry, error) {
	history, err := s.client.PriceHistory(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load price history: %w", err)
	}
	return history, nil
}

// Profits fetches the server's profit reconstruction for a date range. Profit
// attribution is entirely server-side; this only relays the report.
func (s *Service) Profits(ctx context.Context, start, end time.Time) (*models.ProfitReport, error) {
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	report, err := s.client.Profits(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load profits: %w", err)
	}
	return report, nil
}

// ExportSalesSummary appends one spreadsheet row per sold line for the sales
// dated inside [start, end]. Rows carry the price the server froze at sale
// time, never a local estimate.
func (s *Service) ExportSalesSummary(ctx context.Context, start, end time.Time) error {
	if s.exporter == nil {
		return nil
	}

	sales, err := s.client.ListSales(ctx)
	if err != nil {
		return fmt.Errorf("load sales for export: %w", err)
	}

	store := s.catalog.Store()
	var rows [][]interface{}

	for _, sale := range sales {
		saleDate, err := parseDate(sale.Date)
		if err != nil {
			s.logger.Debug("skip sale with unparsable date", zap.Int64("sale_id", sale.ID), zap.String("date", sale.Date))
			continue
		}
		if saleDate.Before(start) || saleDate.After(end) {
			continue
		}

		for _, it := range sale.Items {
			rows = append(rows, []interface{}{
				saleDate.Format(dateLayout),
				sale.ID,
				store.ResolveName(it.ProductID),
				it.Quantity,
				it.PriceAtSale,
				it.Quantity * it.PriceAtSale,
			})
		}
	}

	if len(rows) == 0 {
		s.logger.Info("no sales to export", zap.String("start", start.Format(dateLayout)), zap.String("end", end.Format(dateLayout)))
		return nil
	}

	if err := s.exporter.AppendSalesRows(ctx, rows); err != nil {
		return fmt.Errorf("export sales summary: %w", err)
	}

	s.logger.Info("sales summary exported", zap.Int("rows", len(rows)))
	return nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(value) > 10 {
		value = value[:10]
	}
	return time.Parse(dateLayout, value)
}
