package stockapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pgg11/stock-manager-frontend/internal/config"
	"github.com/pgg11/stock-manager-frontend/internal/domain/models"
)

const dateParamLayout = "2006-01-02"

// Client exposes the remote stock API operations used by the application.
// The server owns all persistence: stock mutation, batch costing and profit
// attribution happen on its side; this client only carries requests.
type Client interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, req models.UpdateProductRequest) (*models.Product, error)

	ListPurchases(ctx context.Context) ([]models.Purchase, error)
	CreatePurchase(ctx context.Context, req models.CreatePurchaseRequest) (*models.Purchase, error)
	DeletePurchase(ctx context.Context, id int64) error

	ListSales(ctx context.Context) ([]models.Sale, error)
	CreateSale(ctx context.Context, req models.CreateSaleRequest) (*models.Sale, error)
	VoidSale(ctx context.Context, id int64) error

	PriceHistory(ctx context.Context, productID int64) ([]models.PriceHistoryEntry, error)
	Profits(ctx context.Context, start, end time.Time) (*models.ProfitReport, error)
}

// APIError carries the remote API's error payload so handlers can surface the
// server-supplied message when one is present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("stock api error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("stock api error: status=%d, message=%s", e.StatusCode, e.Message)
}

// apiError mirrors the server's error body: {"error": "..."}.
type apiError struct {
	Error string `json:"error"`
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a stock API client using the provided configuration values.
func NewClient(cfg config.StockAPIConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &APIClient{httpClient: restyClient}
}

// ListProducts fetches the full product catalog including batches.
func (c *APIClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := c.get(ctx, "/products", nil, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// CreateProduct registers a new product.
func (c *APIClient) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	product := new(models.Product)
	if err := c.send(ctx, http.MethodPost, "/products", req, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// UpdateProduct edits an existing product.
func (c *APIClient) UpdateProduct(ctx context.Context, id int64, req models.UpdateProductRequest) (*models.Product, error) {
	product := new(models.Product)
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), req, product); err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	return product, nil
}

// ListPurchases fetches all purchase records.
func (c *APIClient) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	purchases := make([]models.Purchase, 0)
	if err := c.get(ctx, "/purchases", nil, &purchases); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return purchases, nil
}

// CreatePurchase registers a stock acquisition.
func (c *APIClient) CreatePurchase(ctx context.Context, req models.CreatePurchaseRequest) (*models.Purchase, error) {
	purchase := new(models.Purchase)
	if err := c.send(ctx, http.MethodPost, "/purchases", req, purchase); err != nil {
		return nil, fmt.Errorf("create purchase: %w", err)
	}
	return purchase, nil
}

// DeletePurchase removes a purchase record.
func (c *APIClient) DeletePurchase(ctx context.Context, id int64) error {
	if err := c.send(ctx, http.MethodDelete, fmt.Sprintf("/purchases/%d", id), nil, nil); err != nil {
		return fmt.Errorf("delete purchase %d: %w", id, err)
	}
	return nil
}

// ListSales fetches the sale history.
func (c *APIClient) ListSales(ctx context.Context) ([]models.Sale, error) {
	sales := make([]models.Sale, 0)
	if err := c.get(ctx, "/sales", nil, &sales); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return sales, nil
}

// CreateSale submits one multi-item sale. The server applies the request
// atomically: either every item is sold or none is.
func (c *APIClient) CreateSale(ctx context.Context, req models.CreateSaleRequest) (*models.Sale, error) {
	sale := new(models.Sale)
	if err := c.send(ctx, http.MethodPost, "/sales", req, sale); err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}
	return sale, nil
}

// VoidSale reverses a completed sale server-side.
func (c *APIClient) VoidSale(ctx context.Context, id int64) error {
	if err := c.send(ctx, http.MethodDelete, fmt.Sprintf("/sales/%d", id), nil, nil); err != nil {
		return fmt.Errorf("void sale %d: %w", id, err)
	}
	return nil
}

// PriceHistory fetches the cost-vs-price records for one product.
func (c *APIClient) PriceHistory(ctx context.Context, productID int64) ([]models.PriceHistoryEntry, error) {
	history := make([]models.PriceHistoryEntry, 0)
	if err := c.get(ctx, fmt.Sprintf("/price-history/%d", productID), nil, &history); err != nil {
		return nil, fmt.Errorf("price history for product %d: %w", productID, err)
	}
	return history, nil
}

// Profits fetches the server's profit reconstruction for a date range.
func (c *APIClient) Profits(ctx context.Context, start, end time.Time) (*models.ProfitReport, error) {
	report := new(models.ProfitReport)
	params := map[string]string{
		"start_date": start.Format(dateParamLayout),
		"end_date":   end.Format(dateParamLayout),
	}
	if err := c.get(ctx, "/profits", params, report); err != nil {
		return nil, fmt.Errorf("profits %s..%s: %w", params["start_date"], params["end_date"], err)
	}
	return report, nil
}

func (c *APIClient) get(ctx context.Context, path string, params map[string]string, result any) error {
	apiErr := new(apiError)

	req := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	resp, err := req.Get(path)
	if err != nil {
		return err
	}
	return checkStatus(resp, apiErr)
}

func (c *APIClient) send(ctx context.Context, method, path string, body, result any) error {
	apiErr := new(apiError)

	req := c.httpClient.R().
		SetContext(ctx).
		SetError(apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	return checkStatus(resp, apiErr)
}

func checkStatus(resp *resty.Response, apiErr *apiError) error {
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}

	message := ""
	if apiErr != nil {
		message = apiErr.Error
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: message}
}
