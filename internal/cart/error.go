package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity   = errors.New("invalid cart quantity")
	ErrInvalidCustomerID = errors.New("invalid customer id")

	// -- Resource State --
	ErrCartItemNotFound = errors.New("cart item not found")

	// -- Database & Operation Failures --
	ErrFailedGetCartRows = errors.New("failed to get cart rows")
	ErrFailedSyncCart    = errors.New("failed to sync cart")
	ErrFailedRemoveCart  = errors.New("failed to remove cart item")
	ErrFailedClearCart   = errors.New("failed to clear cart")
	ErrFailedSweepCart   = errors.New("failed to delete expired cart items")
)
