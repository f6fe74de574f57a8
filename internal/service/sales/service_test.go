package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgg11/stock-manager-frontend/internal/domain/models"
	"github.com/pgg11/stock-manager-frontend/internal/service/catalog"
	"github.com/pgg11/stock-manager-frontend/pkg/clients/stockapi"
)

// ============================================================================
// STUB COLLABORATORS
// ============================================================================

type stubClient struct {
	products []models.Product
	sales    []models.Sale

	listProductsCalls int
	listSalesCalls    int
	createSaleCalls   int
	voidSaleCalls     int

	lastCreateSale models.CreateSaleRequest

	createSaleErr error
	voidSaleErr   error
	listSalesErr  error
}

func (s *stubClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.listProductsCalls++
	return s.products, nil
}

func (s *stubClient) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	return &models.Product{ID: 1, Name: req.Name, Markup: req.Markup}, nil
}

func (s *stubClient) UpdateProduct(ctx context.Context, id int64, req models.UpdateProductRequest) (*models.Product, error) {
	return &models.Product{ID: id, Name: req.Name, Markup: req.Markup}, nil
}

func (s *stubClient) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	return nil, nil
}

func (s *stubClient) CreatePurchase(ctx context.Context, req models.CreatePurchaseRequest) (*models.Purchase, error) {
	return &models.Purchase{ID: 1, ProductID: req.ProductID}, nil
}

func (s *stubClient) DeletePurchase(ctx context.Context, id int64) error { return nil }

func (s *stubClient) ListSales(ctx context.Context) ([]models.Sale, error) {
	s.listSalesCalls++
	if s.listSalesErr != nil {
		return nil, s.listSalesErr
	}
	return s.sales, nil
}

func (s *stubClient) CreateSale(ctx context.Context, req models.CreateSaleRequest) (*models.Sale, error) {
	s.createSaleCalls++
	s.lastCreateSale = req
	if s.createSaleErr != nil {
		return nil, s.createSaleErr
	}

	sale := models.Sale{ID: 100, Date: "2024-05-01T12:00:00"}
	for _, it := range req.Items {
		sale.Items = append(sale.Items, models.SaleItem{ProductID: it.ProductID, Quantity: it.Quantity, PriceAtSale: 10})
	}
	return &sale, nil
}

func (s *stubClient) VoidSale(ctx context.Context, id int64) error {
	s.voidSaleCalls++
	return s.voidSaleErr
}

func (s *stubClient) PriceHistory(ctx context.Context, productID int64) ([]models.PriceHistoryEntry, error) {
	return nil, nil
}

func (s *stubClient) Profits(ctx context.Context, start, end time.Time) (*models.ProfitReport, error) {
	return &models.ProfitReport{}, nil
}

type stubJournal struct {
	entries []models.SaleJournalEntry
}

func (j *stubJournal) AppendJournalEntry(ctx context.Context, entry models.SaleJournalEntry) error {
	j.entries = append(j.entries, entry)
	return nil
}

func newTestService(t *testing.T, client *stubClient) (*Service, *catalog.Service, *stubJournal) {
	t.Helper()

	catalogService := catalog.NewService(client, nil)
	catalogService.Store().Replace(client.products)

	journal := &stubJournal{}
	svc := NewService(client, catalogService, journal, nil)
	return svc, catalogService, journal
}

func testProducts() []models.Product {
	return []models.Product{
		{
			ID: 1, Name: "Arroz", Markup: 0, TotalStock: 100,
			Batches: []models.Batch{{ID: 1, Cost: 10, Quantity: 100}},
		},
		{
			ID: 2, Name: "Lentejas", Markup: 25, TotalStock: 3,
			Batches: []models.Batch{{ID: 2, Cost: 8, Quantity: 3}},
		},
		{ID: 3, Name: "Garbanzos", Markup: 10, TotalStock: 0},
	}
}

// ============================================================================
// DRAFT VIEW
// ============================================================================

func TestDraft_PerLineEstimates(t *testing.T) {
	client := &stubClient{products: testProducts()}
	svc, _, _ := newTestService(t, client)

	require.NoError(t, svc.AddLine(1, "2"))   // price 10 -> subtotal 20
	require.NoError(t, svc.AddLine(3, "1"))   // no batches -> no estimate
	require.NoError(t, svc.AddLine(2, "5"))   // price 10 -> subtotal 50, exceeds stock 3
	require.NoError(t, svc.UpdateLine(2, "5")) // keep text, still low stock

	view := svc.Draft()
	require.Len(t, view.Lines, 3)

	arroz := view.Lines[0]
	require.NotNil(t, arroz.UnitPrice)
	assert.InDelta(t, 10.0, *arroz.UnitPrice, 1e-9)
	require.NotNil(t, arroz.Subtotal)
	assert.InDelta(t, 20.0, *arroz.Subtotal, 1e-9)
	assert.False(t, arroz.LowStock)

	garbanzos := view.Lines[1]
	assert.Nil(t, garbanzos.UnitPrice, "no batches means no estimate, not zero")
	assert.Nil(t, garbanzos.Subtotal)

	lentejas := view.Lines[2]
	assert.True(t, lentejas.LowStock, "quantity above total stock flags the line")

	assert.InDelta(t, 70.0, view.EstimatedTotal, 1e-9)
}

func TestDraft_InvalidQuantityDoesNotCorruptTotal(t *testing.T) {
	client := &stubClient{products: testProducts()}
	svc, _, _ := newTestService(t, client)

	require.NoError(t, svc.AddLine(1, "2"))
	require.NoError(t, svc.AddLine(2, "1"))
	require.NoError(t, svc.UpdateLine(2, "abc"))

	view := svc.Draft()
	assert.InDelta(t, 20.0, view.EstimatedTotal, 1e-9, "the malformed line contributes zero")

	broken := view.Lines[1]
	require.NotNil(t, broken.UnitPrice, "the unit price is still known")
	assert.Nil(t, broken.Subtotal, "no subtotal without a parsable quantity")
}

// ============================================================================
// FINALIZE
// ============================================================================

func TestFinalize_Success(t *testing.T) {
	client := &stubClient{products: testProducts()}
	svc, _, journal := newTestService(t, client)

	require.NoError(t, svc.AddLine(1, "2"))
	require.NoError(t, svc.AddLine(2, "0.5"))

	sale, err := svc.Finalize(context.Background())

	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.Equal(t, int64(100), sale.ID)

	assert.Equal(t, 1, client.createSaleCalls)
	require.Len(t, client.lastCreateSale.Items, 2)
	assert.Equal(t, models.SaleItemPayload{ProductID: 1, Quantity: 2}, client.lastCreateSale.Items[0])
	assert.Equal(t, models.SaleItemPayload{ProductID: 2, Quantity: 0.5}, client.lastCreateSale.Items[1])

	assert.Zero(t, svc.ledger.Len(), "the draft clears on success")
	assert.Equal(t, 1, client.listProductsCalls, "stock changed server-side, so the snapshot refetches")

	require.Len(t, journal.entries, 1)
	assert.Equal(t, "sale", journal.entries[0].Action)
	assert.True(t, journal.entries[0].Succeeded)
}

func TestFinalize_EmptyDraft(t *testing.T) {
	client := &stubClient{products: testProducts()}
	svc, _, _ := newTestService(t, client)

	_, err := svc.Finalize(context.Background())

	assert.ErrorIs(t, err, ErrEmptyDraft)
	assert.Zero(t, client.createSaleCalls, "nothing reaches the remote API")
}

func TestFinalize_InvalidLineBlocksWholeDraft(t *testing.T) {
	client := &stubClient{products: testProducts()}
	svc, _, _ := newTestService(t, client)

	require.NoError(t, svc.AddLine(1, "2"))
	require.NoError(t, svc.AddLine(2, "1"))
	require.NoError(t, svc.UpdateLine(2, "abc"))

	before := svc.ledger.Items()
	_, err := svc.Finalize(context.Background())

	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Zero(t, client.createSaleCalls, "no partial submission may happen")
	assert.Equal(t, before, svc.ledger.Items(), "the draft stays intact for correction")
}

func TestFinalize_RemoteFailureKeepsDraft(t *testing.T) {
	client := &stubClient{
		products:      testProducts(),
		createSaleErr: &stockapi.APIError{StatusCode: 400, Message: "stock insuficiente"},
	}
	svc, _, journal := newTestService(t, client)

	require.NoError(t, svc.AddLine(1, "2"))

	_, err := svc.Finalize(context.Background())

	require.Error(t, err)
	var apiErr *stockapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "stock insuficiente", apiErr.Message)

	assert.Equal(t, 1, svc.ledger.Len(), "the draft is preserved so the operator can retry")
	assert.Zero(t, client.listProductsCalls, "no refresh after a failed submission")

	require.Len(t, journal.entries, 1)
	assert.False(t, journal.entries[0].Succeeded)
}

// Scenario: two lines A:"2" and B:"abc"; A is priced at 10. The estimated
// total counts only A, the submission is rejected whole and the draft is
// unchanged.
func TestFinalize_MixedDraftScenario(t *testing.T) {
	client := &stubClient{products: testProducts()}
	svc, _, _ := newTestService(t, client)

	require.NoError(t, svc.AddLine(1, "2"))
	require.NoError(t, svc.AddLine(2, "1"))
	require.NoError(t, svc.UpdateLine(2, "abc"))

	assert.InDelta(t, 20.0, svc.Draft().EstimatedTotal, 1e-9)

	_, err := svc.Finalize(context.Background())
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	items := svc.ledger.Items()
	require.Len(t, items, 2)
	assert.Equal(t, LineItem{ProductID: 1, Quantity: "2"}, items[0])
	assert.Equal(t, LineItem{ProductID: 2, Quantity: "abc"}, items[1])
}

// ============================================================================
// HISTORY AND VOID
// ============================================================================

func TestHistory_RecomputesTotalsAndResolvesNames(t *testing.T) {
	client := &stubClient{
		products: testProducts(),
		sales: []models.Sale{
			{
				ID:   42,
				Date: "2024-05-01T09:30:00",
				Items: []models.SaleItem{
					{ProductID: 1, Quantity: 2, PriceAtSale: 11},
					{ProductID: 404, Quantity: 1, PriceAtSale: 5},
				},
				Total: 9999, // stale, must be ignored
			},
		},
	}
	svc, _, _ := newTestService(t, client)

	views, err := svc.History(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.InDelta(t, 27.0, view.Total, 1e-9, "displayed total is recomputed from the items")
	assert.Equal(t, "Arroz", view.Items[0].ProductName)
	assert.Equal(t, "#404", view.Items[1].ProductName, "deleted products render a placeholder")
}

func TestVoid_Success(t *testing.T) {
	client := &stubClient{products: testProducts()}
	svc, _, journal := newTestService(t, client)

	require.NoError(t, svc.Void(context.Background(), 42))

	assert.Equal(t, 1, client.voidSaleCalls)
	assert.Equal(t, 1, client.listProductsCalls, "a void restores stock, so the snapshot refetches")

	require.Len(t, journal.entries, 1)
	assert.Equal(t, "void", journal.entries[0].Action)
	assert.Equal(t, int64(42), journal.entries[0].SaleID)
	assert.True(t, journal.entries[0].Succeeded)
}

func TestVoid_RemoteFailure(t *testing.T) {
	client := &stubClient{
		products: testProducts(),
		sales:    []models.Sale{{ID: 42}},
		voidSaleErr: &stockapi.APIError{
			StatusCode: 409,
			Message:    "la venta ya fue anulada",
		},
	}
	svc, _, _ := newTestService(t, client)

	err := svc.Void(context.Background(), 42)

	require.Error(t, err)
	var apiErr *stockapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "la venta ya fue anulada", apiErr.Message)

	assert.Zero(t, client.listProductsCalls, "a failed void leaves everything as it was")

	views, err := svc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1, "history is unchanged after the failed void")
	assert.Equal(t, int64(42), views[0].ID)
}
