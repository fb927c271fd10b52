package domain

import "errors"

var (
	// ErrProvider wraps any failure reported by the payment gateway.
	ErrProvider      = errors.New("payment_provider_error")
	ErrInvalidConfig = errors.New("invalid_provider_config")
)
