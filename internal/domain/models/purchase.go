package models

// Purchase actions as reported by the remote API.
const (
	PurchaseActionAddBatch    = "add_batch"
	PurchaseActionConsolidate = "consolidate"
)

// Purchase is a stock acquisition record. A purchase either creates a fresh
// batch or consolidates existing ones; either way the catalog snapshot must be
// refetched afterwards, since batch state changed server-side.
type Purchase struct {
	ID             int64   `json:"id"`
	Date           string  `json:"date"`
	ProductID      int64   `json:"product_id"`
	Action         string  `json:"action"`
	UnitCost       float64 `json:"unit_cost"`
	Quantity       float64 `json:"quantity"`
	CreatedBatchID int64   `json:"created_batch_id"`
}

// CreatePurchaseRequest registers a new purchase with the remote API.
type CreatePurchaseRequest struct {
	ProductID int64   `json:"product_id" binding:"required"`
	UnitCost  float64 `json:"unit_cost" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
}
