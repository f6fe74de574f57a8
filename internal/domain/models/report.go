package models

import "time"

// PriceHistoryEntry is one historical cost-vs-price record for a product.
type PriceHistoryEntry struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Cost      float64 `json:"cost"`
	Price     float64 `json:"price"`
	Date      string  `json:"date"`
}

// ProfitSaleItem is one sold line inside a profit report row.
type ProfitSaleItem struct {
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// ProfitSale is one sale with its server-attributed profit.
type ProfitSale struct {
	SaleID int64            `json:"sale_id"`
	Date   string           `json:"date"`
	Items  []ProfitSaleItem `json:"items"`
	Total  float64          `json:"total"`
	Profit float64          `json:"profit"`
}

// ProfitReport is the remote API's profit reconstruction for a date range.
// Profit attribution lives server-side; this is display data only.
type ProfitReport struct {
	Sales       []ProfitSale `json:"sales"`
	TotalProfit float64      `json:"total_profit"`
}

// SaleJournalEntry is the locally persisted audit record of a finalize or
// void request, written after the remote API answered.
type SaleJournalEntry struct {
	Action    string            `bson:"action" json:"action"` // "sale" or "void"
	SaleID    int64             `bson:"sale_id,omitempty" json:"sale_id,omitempty"`
	Items     []SaleItemPayload `bson:"items,omitempty" json:"items,omitempty"`
	Succeeded bool              `bson:"succeeded" json:"succeeded"`
	Error     string            `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt time.Time         `bson:"created_at" json:"created_at"`
}
