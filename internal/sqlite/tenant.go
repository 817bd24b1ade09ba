package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pgdesk/pgdesk/internal/domain/tenant"
	"github.com/pgdesk/pgdesk/internal/repository"
)

// TenantRepository implements tenant.Repository for SQLite
type TenantRepository struct {
	db *DB
}

// NewTenantRepository creates a new TenantRepository
func NewTenantRepository(db *DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// Create creates a new tenant
func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	query := `
		INSERT INTO tenants (
			id, property_id, name, contact_number, email, room_id, bed_number,
			join_date, leave_date, rent_due_day, security_deposit, monthly_rent,
			status, is_active, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.PropertyID,
		t.Name,
		t.ContactNumber,
		t.Email,
		t.RoomID,
		t.BedNumber,
		t.JoinDate,
		t.LeaveDate,
		t.RentDueDay,
		t.SecurityDeposit,
		t.MonthlyRent,
		t.Status,
		t.IsActive,
		t.CreatedAt,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	return nil
}

// Get retrieves a tenant by ID within a property
func (r *TenantRepository) Get(ctx context.Context, propertyID, id string) (*tenant.Tenant, error) {
	query := `
		SELECT id, property_id, name, contact_number, email, room_id, bed_number,
		       join_date, leave_date, rent_due_day, security_deposit, monthly_rent,
		       status, is_active, created_at
		FROM tenants
		WHERE id = ? AND property_id = ?
	`

	t, err := scanTenant(r.db.QueryRowContext(ctx, query, id, propertyID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return t, nil
}

// ListActive returns all active tenants in a property
func (r *TenantRepository) ListActive(ctx context.Context, propertyID string) ([]tenant.Tenant, error) {
	query := `
		SELECT id, property_id, name, contact_number, email, room_id, bed_number,
		       join_date, leave_date, rent_due_day, security_deposit, monthly_rent,
		       status, is_active, created_at
		FROM tenants
		WHERE property_id = ? AND is_active = 1 AND status = 'ACTIVE'
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active tenants: %w", err)
	}
	defer rows.Close()

	var tenants []tenant.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, *t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenant rows: %w", err)
	}

	return tenants, nil
}

// PropertyIDs returns the distinct property ids with at least one active tenant
func (r *TenantRepository) PropertyIDs(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT property_id
		FROM tenants
		WHERE is_active = 1 AND status = 'ACTIVE'
		ORDER BY property_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list property ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan property id: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property id rows: %w", err)
	}

	return ids, nil
}

// Deactivate marks an active tenant inactive. The active-flag guard makes a
// second deactivation report ErrNotFound instead of succeeding silently.
func (r *TenantRepository) Deactivate(ctx context.Context, propertyID, id string, leaveDate time.Time) error {
	query := `
		UPDATE tenants
		SET status = 'INACTIVE', is_active = 0, leave_date = ?
		WHERE id = ? AND property_id = ? AND is_active = 1
	`

	result, err := r.db.ExecContext(ctx, query, leaveDate, id, propertyID)
	if err != nil {
		return fmt.Errorf("failed to deactivate tenant: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func scanTenant(row rowScanner) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := row.Scan(
		&t.ID,
		&t.PropertyID,
		&t.Name,
		&t.ContactNumber,
		&t.Email,
		&t.RoomID,
		&t.BedNumber,
		&t.JoinDate,
		&t.LeaveDate,
		&t.RentDueDay,
		&t.SecurityDeposit,
		&t.MonthlyRent,
		&t.Status,
		&t.IsActive,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
