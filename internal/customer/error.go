package customer

import "errors"

var (
	// -- Authentication --
	ErrCustomerNotFound  = errors.New("User does not exist. Please register first.")
	ErrIncorrectPassword = errors.New("Incorrect password. Please enter correct password.")
	ErrMissingSecret     = errors.New("jwt secret is not set")
	ErrInvalidToken      = errors.New("invalid token")
	ErrInvalidRole       = errors.New("token role not allowed")

	// -- Database & Operation Failures --
	ErrFailedGetCustomer = errors.New("failed to get customer")
)
