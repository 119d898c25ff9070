package product

import (
	"errors"

	"wallfleur-be/internal/pricing"
)

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// -- Resource State --
	// Shared with pricing so callers can match either layer with one sentinel.
	ErrProductNotFound   = pricing.ErrProductNotFound
	ErrInsufficientStock = pricing.ErrInsufficientStock

	// -- Database & Operation Failures --
	ErrFailedGetProduct  = errors.New("failed to get product")
	ErrFailedUpdateStock = errors.New("failed to update product stock")
)
