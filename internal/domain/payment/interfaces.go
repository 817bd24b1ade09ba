package payment

import (
	"context"
	"time"
)

// Repository provides persistence for rent obligations. The store enforces
// uniqueness of (tenant, month); every mutation of an obligation is guarded
// against the terminal PAID state at the storage layer.
type Repository interface {
	// Create inserts a new obligation. Returns repository.ErrConflict when
	// an obligation for the same (tenant, month) already exists.
	Create(ctx context.Context, p *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
	// Months returns the month keys of every obligation for a tenant.
	Months(ctx context.Context, tenantID string) ([]string, error)
	ListByTenant(ctx context.Context, tenantID string) ([]Payment, error)
	// ListOpenByTenant returns obligations in PENDING or OVERDUE state.
	ListOpenByTenant(ctx context.Context, tenantID string) ([]Payment, error)
	// ListUnpaid returns all PENDING and OVERDUE obligations in a property.
	ListUnpaid(ctx context.Context, propertyID string) ([]Payment, error)
	// UpdateFee writes a recomputed late fee and status. Refuses to touch a
	// PAID obligation (repository.ErrConflict).
	UpdateFee(ctx context.Context, id string, lateFee int, status Status) error
	// MarkPaid settles an open obligation. Returns repository.ErrConflict if
	// it is already PAID.
	MarkPaid(ctx context.Context, id string, paidAmount int, method Method, paidDate time.Time) error
	// MarkOverdue flips an open obligation to OVERDUE. Idempotent for
	// obligations already OVERDUE; repository.ErrConflict for PAID ones.
	MarkOverdue(ctx context.Context, id string) error
	// Summary aggregates counts and amounts by status, optionally scoped to
	// one billing month.
	Summary(ctx context.Context, propertyID, month string) (Summary, error)
}
