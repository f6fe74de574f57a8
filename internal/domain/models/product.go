package models

// Batch is one purchased lot of a product: its own acquisition cost, the
// weight still remaining in the lot, and the acquisition date.
type Batch struct {
	ID       int64   `json:"id"`
	Cost     float64 `json:"cost"`
	Quantity float64 `json:"quantity"`
	Date     string  `json:"date"`
}

// Product mirrors the remote API's product payload. TotalStock is the
// server-owned authoritative figure in kilograms; batches arrive ordered by
// acquisition and are never mutated locally.
type Product struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Markup     float64 `json:"markup"`
	TotalStock float64 `json:"total_stock"`
	Batches    []Batch `json:"batches"`
}

// EstimatedUnitPrice derives the advisory selling price for the product:
// highest batch cost marked up by the product's percentage. The boolean is
// false when the product has no batches; an absent estimate is not a zero
// price, since the server may legitimately sell at zero. The server computes
// the authoritative price_at_sale on its own at transaction time.
func (p Product) EstimatedUnitPrice() (float64, bool) {
	if len(p.Batches) == 0 {
		return 0, false
	}

	highest := p.Batches[0].Cost
	for _, b := range p.Batches[1:] {
		if b.Cost > highest {
			highest = b.Cost
		}
	}

	return highest * (1 + p.Markup/100), true
}
