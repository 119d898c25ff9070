package pricing

import (
	"errors"
	"fmt"
)

var (
	// -- Validation & Input --
	ErrNoLines         = errors.New("no products in order")
	ErrInvalidQuantity = errors.New("invalid product quantity")
	ErrInvalidRegion   = errors.New("invalid region")

	// -- Resource State --
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAmountMismatch    = errors.New("amount mismatch")
)

// InsufficientStockError names the offending product. It matches
// ErrInsufficientStock with errors.Is.
type InsufficientStockError struct {
	ProductID int64
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
