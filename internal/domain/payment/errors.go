package payment

import "errors"

var (
	// ErrPaymentNotFound indicates the obligation doesn't exist.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrAlreadyPaid indicates an attempted mutation of a PAID obligation.
	ErrAlreadyPaid = errors.New("payment already settled")
	// ErrInvalidInput indicates invalid payment input.
	ErrInvalidInput = errors.New("invalid payment input")
	// ErrInvalidTransition indicates a disallowed status transition.
	ErrInvalidTransition = errors.New("invalid payment status transition")
)
