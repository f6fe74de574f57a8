package sales

import "errors"

// ErrNoProductSelected indicates a draft line was added without a product.
var ErrNoProductSelected = errors.New("no product selected")

// ErrInvalidQuantity indicates a quantity that does not parse to a finite
// number greater than zero.
var ErrInvalidQuantity = errors.New("quantity must be a number greater than zero")

// ErrProductAlreadyAdded indicates the product already has a draft line.
var ErrProductAlreadyAdded = errors.New("product is already in the draft")

// ErrLineNotFound indicates no draft line exists for the product.
var ErrLineNotFound = errors.New("draft line not found")

// ErrEmptyDraft indicates a finalize attempt on a draft with no lines.
var ErrEmptyDraft = errors.New("draft has no items")
