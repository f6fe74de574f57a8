package models

// AddLineRequest adds one product line to the sale draft. Quantity stays a raw
// string so the caller can hold transiently invalid text while editing; it is
// parsed only at draft-entry and finalize boundaries.
type AddLineRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Quantity  string `json:"quantity" binding:"required"`
}

// UpdateLineRequest replaces the quantity text of an existing draft line.
// No validation happens here; an empty or malformed value is allowed mid-edit.
type UpdateLineRequest struct {
	Quantity string `json:"quantity"`
}

// CreateProductRequest registers a new product with the remote API.
type CreateProductRequest struct {
	Name   string  `json:"name" binding:"required"`
	Markup float64 `json:"markup"`
}

// UpdateProductRequest edits a product's name and markup.
type UpdateProductRequest struct {
	Name   string  `json:"name" binding:"required"`
	Markup float64 `json:"markup"`
}
