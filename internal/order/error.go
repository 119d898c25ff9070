package order

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidInput    = errors.New("invalid order input")
	ErrMissingCustomer = errors.New("customer details are incomplete")
	ErrInvalidProvider = errors.New("provider does not match this operation")

	// -- Resource State --
	ErrOrderNotFound            = errors.New("Order not found.")
	ErrDuplicateProviderOrderID = errors.New("provider order id already exists")
	ErrPaymentRejected          = errors.New("payment verification failed")

	// -- Database & Operation Failures --
	ErrFailedCreateOrder = errors.New("failed to create order")
	ErrFailedGetOrder    = errors.New("failed to get order")
	ErrFailedUpdateOrder = errors.New("failed to update order")
)
