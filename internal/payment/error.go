package payment

import "errors"

var (
	// -- Validation & Input --
	ErrUnknownProvider = errors.New("unknown payment provider")
	ErrInvalidAmount   = errors.New("payment amount must be positive")

	// -- External Systems --
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrMissingApproveLink = errors.New("paypal response has no approve link")

	// -- Database & Operation Failures --
	ErrFailedRecordEvent = errors.New("failed to record payment event")
)
