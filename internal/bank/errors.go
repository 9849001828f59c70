package bank

import "errors"

var (
	// ErrInvalidAmount is returned when an operation amount is zero or
	// negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidAccount is returned when a selector names neither the
	// current nor the savings account.
	ErrInvalidAccount = errors.New("account must be 'current' or 'savings'")
)
