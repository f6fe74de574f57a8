package models

// SaleItem is one line of a completed sale. PriceAtSale is the unit price the
// server froze at transaction time, distinct from any client-side estimate.
type SaleItem struct {
	ProductID   int64   `json:"product_id"`
	Quantity    float64 `json:"quantity"`
	PriceAtSale float64 `json:"price_at_sale"`
}

// Sale is a completed multi-item transaction as returned by the remote API.
type Sale struct {
	ID    int64      `json:"id"`
	Date  string     `json:"date"`
	Items []SaleItem `json:"items"`
	Total float64    `json:"total"`
}

// ItemsTotal recomputes the sale total from its items. Displayed totals use
// this instead of the wire Total field, which may lag behind the items.
func (s Sale) ItemsTotal() float64 {
	var total float64
	for _, it := range s.Items {
		total += it.Quantity * it.PriceAtSale
	}
	return total
}

// SaleItemPayload is one normalized line of a sale-creation request, produced
// by draft validation with the quantity already parsed.
type SaleItemPayload struct {
	ProductID int64   `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

// CreateSaleRequest is the atomic multi-item payload sent to the remote API.
type CreateSaleRequest struct {
	Items []SaleItemPayload `json:"items"`
}
