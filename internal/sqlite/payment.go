package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pgdesk/pgdesk/internal/domain/payment"
	"github.com/pgdesk/pgdesk/internal/repository"
)

// PaymentRepository implements payment.Repository for SQLite. Every mutation
// is a guarded conditional UPDATE: the status predicate keeps PAID terminal
// at the storage layer no matter how callers race.
type PaymentRepository struct {
	db *DB
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a new obligation. The (tenant_id, month) unique index maps a
// duplicate insert to ErrConflict, which the generator treats as success.
func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	query := `
		INSERT INTO rent_payments (
			id, property_id, tenant_id, room_id, month, due_date, paid_date,
			rent_amount, paid_amount, late_fee, status, payment_method, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.PropertyID,
		p.TenantID,
		p.RoomID,
		p.Month,
		p.DueDate,
		p.PaidDate,
		p.RentAmount,
		p.PaidAmount,
		p.LateFee,
		p.Status,
		p.PaymentMethod,
		p.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// Get retrieves an obligation by ID
func (r *PaymentRepository) Get(ctx context.Context, id string) (*payment.Payment, error) {
	query := selectPayment + ` WHERE id = ?`

	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return p, nil
}

// Months returns the month keys of every obligation for a tenant
func (r *PaymentRepository) Months(ctx context.Context, tenantID string) ([]string, error) {
	query := `SELECT month FROM rent_payments WHERE tenant_id = ? ORDER BY month ASC`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list obligation months: %w", err)
	}
	defer rows.Close()

	var months []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("failed to scan month: %w", err)
		}
		months = append(months, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating month rows: %w", err)
	}

	return months, nil
}

// ListByTenant returns a tenant's full obligation history, oldest month first
func (r *PaymentRepository) ListByTenant(ctx context.Context, tenantID string) ([]payment.Payment, error) {
	query := selectPayment + ` WHERE tenant_id = ? ORDER BY month ASC`
	return r.list(ctx, query, tenantID)
}

// ListOpenByTenant returns a tenant's PENDING and OVERDUE obligations
func (r *PaymentRepository) ListOpenByTenant(ctx context.Context, tenantID string) ([]payment.Payment, error) {
	query := selectPayment + ` WHERE tenant_id = ? AND status IN ('PENDING', 'OVERDUE') ORDER BY month ASC`
	return r.list(ctx, query, tenantID)
}

// ListUnpaid returns all PENDING and OVERDUE obligations in a property
func (r *PaymentRepository) ListUnpaid(ctx context.Context, propertyID string) ([]payment.Payment, error) {
	query := selectPayment + ` WHERE property_id = ? AND status IN ('PENDING', 'OVERDUE') ORDER BY month ASC`
	return r.list(ctx, query, propertyID)
}

// UpdateFee writes a recomputed late fee and status for an open obligation
func (r *PaymentRepository) UpdateFee(ctx context.Context, id string, lateFee int, status payment.Status) error {
	query := `
		UPDATE rent_payments
		SET late_fee = ?, status = ?
		WHERE id = ? AND status != 'PAID'
	`

	return r.guardedUpdate(ctx, id, query, lateFee, status, id)
}

// MarkPaid settles an open obligation
func (r *PaymentRepository) MarkPaid(ctx context.Context, id string, paidAmount int, method payment.Method, paidDate time.Time) error {
	query := `
		UPDATE rent_payments
		SET status = 'PAID', paid_amount = ?, payment_method = ?, paid_date = ?
		WHERE id = ? AND status != 'PAID'
	`

	return r.guardedUpdate(ctx, id, query, paidAmount, method, paidDate, id)
}

// MarkOverdue flips an open obligation to OVERDUE
func (r *PaymentRepository) MarkOverdue(ctx context.Context, id string) error {
	query := `
		UPDATE rent_payments
		SET status = 'OVERDUE'
		WHERE id = ? AND status != 'PAID'
	`

	return r.guardedUpdate(ctx, id, query, id)
}

// Summary aggregates counts and amounts by status for a property. An empty
// month aggregates across all billing months.
func (r *PaymentRepository) Summary(ctx context.Context, propertyID, month string) (payment.Summary, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'PAID' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'PENDING' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'OVERDUE' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(rent_amount), 0),
			COALESCE(SUM(CASE WHEN status = 'PAID' THEN paid_amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'PENDING' THEN rent_amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'OVERDUE' THEN rent_amount ELSE 0 END), 0),
			COALESCE(SUM(late_fee), 0)
		FROM rent_payments
		WHERE property_id = ? AND (? = '' OR month = ?)
	`

	var s payment.Summary
	err := r.db.QueryRowContext(ctx, query, propertyID, month, month).Scan(
		&s.Total,
		&s.Paid,
		&s.Pending,
		&s.Overdue,
		&s.TotalRent,
		&s.PaidAmount,
		&s.PendingAmount,
		&s.OverdueAmount,
		&s.TotalLateFees,
	)
	if err != nil {
		return payment.Summary{}, fmt.Errorf("failed to build payment summary: %w", err)
	}

	return s, nil
}

// guardedUpdate runs a status-guarded UPDATE and maps a zero row count to
// either ErrNotFound (no such obligation) or ErrConflict (already PAID).
func (r *PaymentRepository) guardedUpdate(ctx context.Context, id, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM rent_payments WHERE id = ?)`
		if err := r.db.QueryRowContext(ctx, checkQuery, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check payment existence: %w", err)
		}
		if !exists {
			return repository.ErrNotFound
		}
		// Payment exists but is PAID - terminal state
		return repository.ErrConflict
	}

	return nil
}

const selectPayment = `
	SELECT id, property_id, tenant_id, room_id, month, due_date, paid_date,
	       rent_amount, paid_amount, late_fee, status, payment_method, created_at
	FROM rent_payments`

func (r *PaymentRepository) list(ctx context.Context, query string, args ...any) ([]payment.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []payment.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, *p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}

	return payments, nil
}

func scanPayment(row rowScanner) (*payment.Payment, error) {
	var p payment.Payment
	var method sql.NullString
	err := row.Scan(
		&p.ID,
		&p.PropertyID,
		&p.TenantID,
		&p.RoomID,
		&p.Month,
		&p.DueDate,
		&p.PaidDate,
		&p.RentAmount,
		&p.PaidAmount,
		&p.LateFee,
		&p.Status,
		&method,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if method.Valid {
		m := payment.Method(method.String)
		p.PaymentMethod = &m
	}
	return &p, nil
}
