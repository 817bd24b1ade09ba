package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pgdesk/pgdesk/internal/domain/tenant"
	"github.com/pgdesk/pgdesk/internal/repository"
)

// Service is the rent ledger: it owns obligation creation, the tiered
// late-fee recompute, and the PENDING/OVERDUE/PAID state machine.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new payment service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// EnsureObligations creates an obligation for every elapsed billing month the
// tenant doesn't have one for yet, and returns the ones created. Safe to call
// repeatedly and concurrently: months already present are skipped, and an
// insert that loses a (tenant, month) uniqueness race is treated as success.
func (s *Service) EnsureObligations(ctx context.Context, t *tenant.Tenant, now time.Time) ([]Payment, error) {
	if t.RentDueDay < 1 || t.RentDueDay > 31 {
		return nil, fmt.Errorf("%w: tenant %s has rent due day %d", ErrInvalidInput, t.ID, t.RentDueDay)
	}
	if t.MonthlyRent < 1 {
		return nil, fmt.Errorf("%w: tenant %s has no monthly rent", ErrInvalidInput, t.ID)
	}

	months := BillingMonths(t, now)
	if len(months) == 0 {
		return nil, nil
	}

	existing, err := s.repo.Months(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("listing obligation months: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, m := range existing {
		have[m] = true
	}

	var created []Payment
	for _, bm := range months {
		if have[bm.Month] {
			continue
		}
		p := &Payment{
			ID:         uuid.NewString(),
			PropertyID: t.PropertyID,
			TenantID:   t.ID,
			RoomID:     t.RoomID,
			Month:      bm.Month,
			DueDate:    bm.DueDate,
			RentAmount: t.MonthlyRent,
			PaidAmount: 0,
			LateFee:    0,
			Status:     StatusPending,
			CreatedAt:  time.Now(),
		}
		if err := s.repo.Create(ctx, p); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				// A concurrent tick inserted this month first.
				continue
			}
			return created, fmt.Errorf("creating obligation for month %s: %w", bm.Month, err)
		}
		s.logger.Debug("obligation created",
			"tenant_id", t.ID, "month", bm.Month, "due_date", bm.DueDate, "rent", t.MonthlyRent)
		created = append(created, *p)
	}
	return created, nil
}

// RecomputeFees refreshes the late fee on every open obligation of the tenant
// and flips obligations past their due date from PENDING to OVERDUE. The fee
// is replaced with the current tier value, so status progression is
// forward-only and a second run on the same day writes nothing. PAID
// obligations are never touched. Returns how many obligations were updated.
func (s *Service) RecomputeFees(ctx context.Context, t *tenant.Tenant, now time.Time) (int, error) {
	open, err := s.repo.ListOpenByTenant(ctx, t.ID)
	if err != nil {
		return 0, fmt.Errorf("listing open obligations: %w", err)
	}

	updated := 0
	for i := range open {
		p := &open[i]
		fee := LateFee(p.DueDate, now, p.RentAmount)
		status := p.Status
		if p.Status == StatusPending && OverdueDays(p.DueDate, now) > 0 {
			status = StatusOverdue
		}
		if fee == p.LateFee && status == p.Status {
			continue
		}
		if err := s.repo.UpdateFee(ctx, p.ID, fee, status); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				// Settled by a concurrent mark-paid; leave it be.
				continue
			}
			return updated, fmt.Errorf("updating fee for obligation %s: %w", p.ID, err)
		}
		s.logger.Debug("late fee updated",
			"tenant_id", t.ID, "month", p.Month, "late_fee", fee, "status", status)
		updated++
	}
	return updated, nil
}

// MarkPaidRequest defines the inputs of an explicit mark-paid action.
type MarkPaidRequest struct {
	PaidAmount    int
	PaymentMethod Method
	PaidDate      time.Time
}

// MarkPaid settles an obligation. PAID is terminal: settling an obligation
// twice fails with ErrAlreadyPaid and leaves the first settlement intact.
func (s *Service) MarkPaid(ctx context.Context, id string, req MarkPaidRequest) (*Payment, error) {
	if err := ValidateMarkPaid(req.PaidAmount, req.PaymentMethod, req.PaidDate); err != nil {
		return nil, err
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("getting payment: %w", err)
	}
	if err := ValidateTransition(p.Status, StatusPaid); err != nil {
		return nil, err
	}

	if err := s.repo.MarkPaid(ctx, id, req.PaidAmount, req.PaymentMethod, req.PaidDate); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrAlreadyPaid
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("marking payment paid: %w", err)
	}

	settled, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reloading payment: %w", err)
	}
	s.logger.Info("payment settled",
		"payment_id", id, "tenant_id", settled.TenantID, "month", settled.Month,
		"amount", req.PaidAmount, "method", req.PaymentMethod)
	return settled, nil
}

// Get fetches an obligation by ID.
func (s *Service) Get(ctx context.Context, id string) (*Payment, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("getting payment: %w", err)
	}
	return p, nil
}

// ListByTenant returns a tenant's full obligation history.
func (s *Service) ListByTenant(ctx context.Context, tenantID string) ([]Payment, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

// BatchResult reports the outcome of an administrative bulk transition.
// Failures are per-id: one bad id never blocks the rest of the batch.
type BatchResult struct {
	Updated []string
	Failed  map[string]error
}

// MarkOverdue applies the OVERDUE transition to a batch of obligation ids.
func (s *Service) MarkOverdue(ctx context.Context, ids []string) BatchResult {
	res := BatchResult{Failed: make(map[string]error)}
	for _, id := range ids {
		err := s.repo.MarkOverdue(ctx, id)
		switch {
		case err == nil:
			res.Updated = append(res.Updated, id)
		case errors.Is(err, repository.ErrConflict):
			res.Failed[id] = ErrAlreadyPaid
		case errors.Is(err, repository.ErrNotFound):
			res.Failed[id] = ErrPaymentNotFound
		default:
			res.Failed[id] = err
		}
		if err != nil {
			s.logger.Warn("bulk mark-overdue failed for payment", "payment_id", id, "error", err)
		}
	}
	return res
}
