package tenant

import (
	"context"
	"time"
)

// Repository provides persistence for tenants.
type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	Get(ctx context.Context, propertyID, id string) (*Tenant, error)
	ListActive(ctx context.Context, propertyID string) ([]Tenant, error)
	// PropertyIDs returns the distinct property ids that have at least one
	// active tenant.
	PropertyIDs(ctx context.Context) ([]string, error)
	// Deactivate marks an active tenant inactive and records the leave date.
	// Returns repository.ErrNotFound if the tenant is unknown or already
	// inactive, so a double move-out can never double-release a bed.
	Deactivate(ctx context.Context, propertyID, id string, leaveDate time.Time) error
}
