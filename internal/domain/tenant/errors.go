package tenant

import "errors"

var (
	// ErrTenantNotFound indicates the tenant doesn't exist or has already left.
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrInvalidInput indicates invalid tenant input.
	ErrInvalidInput = errors.New("invalid tenant input")
)
