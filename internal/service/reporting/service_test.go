package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgg11/stock-manager-frontend/internal/domain/models"
	"github.com/pgg11/stock-manager-frontend/internal/service/catalog"
)

type stubClient struct {
	sales   []models.Sale
	history []models.PriceHistoryEntry
	report  *models.ProfitReport

	salesErr   error
	profitsErr error

	profitsCalls int
	lastStart    time.Time
	lastEnd      time.Time
}

func (s *stubClient) ListProducts(ctx context.Context) ([]models.Product, error) { return nil, nil }

func (s *stubClient) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	return nil, nil
}

func (s *stubClient) UpdateProduct(ctx context.Context, id int64, req models.UpdateProductRequest) (*models.Product, error) {
	return nil, nil
}

func (s *stubClient) ListPurchases(ctx context.Context) ([]models.Purchase, error) { return nil, nil }

func (s *stubClient) CreatePurchase(ctx context.Context, req models.CreatePurchaseRequest) (*models.Purchase, error) {
	return nil, nil
}

func (s *stubClient) DeletePurchase(ctx context.Context, id int64) error { return nil }

func (s *stubClient) ListSales(ctx context.Context) ([]models.Sale, error) {
	return s.sales, s.salesErr
}

func (s *stubClient) CreateSale(ctx context.Context, req models.CreateSaleRequest) (*models.Sale, error) {
	return nil, nil
}

func (s *stubClient) VoidSale(ctx context.Context, id int64) error { return nil }

func (s *stubClient) PriceHistory(ctx context.Context, productID int64) ([]models.PriceHistoryEntry, error) {
	return s.history, nil
}

func (s *stubClient) Profits(ctx context.Context, start, end time.Time) (*models.ProfitReport, error) {
	s.profitsCalls++
	s.lastStart, s.lastEnd = start, end
	if s.profitsErr != nil {
		return nil, s.profitsErr
	}
	return s.report, nil
}

type stubExporter struct {
	rows [][]interface{}
	err  error

	calls int
}

func (e *stubExporter) AppendSalesRows(ctx context.Context, rows [][]interface{}) error {
	e.calls++
	if e.err != nil {
		return e.err
	}
	e.rows = append(e.rows, rows...)
	return nil
}

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestProfits_RejectsReversedRange(t *testing.T) {
	client := &stubClient{}
	svc := NewService(client, catalog.NewService(client, nil), nil, nil)

	_, err := svc.Profits(context.Background(), day("2024-05-10"), day("2024-05-01"))

	assert.ErrorIs(t, err, ErrInvalidDateRange)
	assert.Zero(t, client.profitsCalls, "a reversed range never reaches the remote API")
}

func TestProfits_RelaysReport(t *testing.T) {
	client := &stubClient{report: &models.ProfitReport{TotalProfit: 123.45}}
	svc := NewService(client, catalog.NewService(client, nil), nil, nil)

	report, err := svc.Profits(context.Background(), day("2024-05-01"), day("2024-05-10"))

	require.NoError(t, err)
	assert.InDelta(t, 123.45, report.TotalProfit, 1e-9)
	assert.Equal(t, day("2024-05-01"), client.lastStart)
	assert.Equal(t, day("2024-05-10"), client.lastEnd)
}

func TestProfits_WrapsRemoteError(t *testing.T) {
	remoteErr := errors.New("boom")
	client := &stubClient{profitsErr: remoteErr}
	svc := NewService(client, catalog.NewService(client, nil), nil, nil)

	_, err := svc.Profits(context.Background(), day("2024-05-01"), day("2024-05-10"))

	assert.ErrorIs(t, err, remoteErr)
}

func TestExportSalesSummary_FiltersByDate(t *testing.T) {
	client := &stubClient{
		sales: []models.Sale{
			{
				ID:   1,
				Date: "2024-05-02T10:00:00",
				Items: []models.SaleItem{
					{ProductID: 7, Quantity: 2, PriceAtSale: 10},
					{ProductID: 8, Quantity: 1, PriceAtSale: 4},
				},
			},
			{
				ID:    2,
				Date:  "2024-04-20T10:00:00", // outside the window
				Items: []models.SaleItem{{ProductID: 7, Quantity: 5, PriceAtSale: 10}},
			},
			{
				ID:    3,
				Date:  "garbage", // unparsable, skipped
				Items: []models.SaleItem{{ProductID: 7, Quantity: 1, PriceAtSale: 10}},
			},
		},
	}
	catalogSvc := catalog.NewService(client, nil)
	catalogSvc.Store().Replace([]models.Product{{ID: 7, Name: "Harina"}})

	exporter := &stubExporter{}
	svc := NewService(client, catalogSvc, exporter, nil)

	err := svc.ExportSalesSummary(context.Background(), day("2024-05-01"), day("2024-05-31"))

	require.NoError(t, err)
	require.Len(t, exporter.rows, 2, "one row per item of the in-window sale")

	first := exporter.rows[0]
	assert.Equal(t, "2024-05-02", first[0])
	assert.Equal(t, int64(1), first[1])
	assert.Equal(t, "Harina", first[2])
	assert.Equal(t, 2.0, first[3])
	assert.Equal(t, 10.0, first[4])
	assert.Equal(t, 20.0, first[5])

	second := exporter.rows[1]
	assert.Equal(t, "#8", second[2], "unknown products render a placeholder")
}

func TestExportSalesSummary_NothingToExport(t *testing.T) {
	client := &stubClient{}
	exporter := &stubExporter{}
	svc := NewService(client, catalog.NewService(client, nil), exporter, nil)

	err := svc.ExportSalesSummary(context.Background(), day("2024-05-01"), day("2024-05-31"))

	require.NoError(t, err)
	assert.Zero(t, exporter.calls, "no append call for an empty window")
}

func TestExportSalesSummary_DisabledExporter(t *testing.T) {
	client := &stubClient{salesErr: errors.New("must not be called")}
	svc := NewService(client, catalog.NewService(client, nil), nil, nil)

	err := svc.ExportSalesSummary(context.Background(), day("2024-05-01"), day("2024-05-31"))

	assert.NoError(t, err, "a nil exporter makes the export a no-op")
}
