// Package billing drives billing-cycle generation across properties, on a
// cron schedule and on demand.
package billing

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/pgdesk/pgdesk/internal/clock"
	"github.com/pgdesk/pgdesk/internal/domain/payment"
	"github.com/pgdesk/pgdesk/internal/domain/tenant"
)

const defaultWorkers = 4

// TenantSource enumerates the tenants a billing run must visit.
type TenantSource interface {
	PropertyIDs(ctx context.Context) ([]string, error)
	ListActive(ctx context.Context, propertyID string) ([]tenant.Tenant, error)
}

// Ledger maintains a tenant's obligations and late fees.
type Ledger interface {
	EnsureObligations(ctx context.Context, t *tenant.Tenant, now time.Time) ([]payment.Payment, error)
	RecomputeFees(ctx context.Context, t *tenant.Tenant, now time.Time) (int, error)
}

// TenantError records a single tenant whose billing pass failed.
type TenantError struct {
	PropertyID string
	TenantID   string
	Err        error
}

// Report summarizes one billing run. Errors holds per-tenant failures; a
// failing tenant never blocks the rest of the run.
type Report struct {
	Properties         int
	Tenants            int
	ObligationsCreated int
	FeesUpdated        int
	Errors             []TenantError
}

func (r *Report) merge(other Report) {
	r.Properties += other.Properties
	r.Tenants += other.Tenants
	r.ObligationsCreated += other.ObligationsCreated
	r.FeesUpdated += other.FeesUpdated
	r.Errors = append(r.Errors, other.Errors...)
}

// Scheduler runs the billing cycle for every active tenant
type Scheduler struct {
	tenants  TenantSource
	ledger   Ledger
	clock    clock.Clock
	logger   *slog.Logger
	schedule string
	loc      *time.Location
	workers  int

	cron *cron.Cron
}

// Config carries the scheduler's cron settings
type Config struct {
	Schedule string
	Timezone string
}

// NewScheduler creates a scheduler. The cron job is not started until Start
// is called; RunTick and RunProperty work either way.
func NewScheduler(tenants TenantSource, ledger Ledger, clk clock.Clock, logger *slog.Logger, cfg Config) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid billing timezone %q: %w", cfg.Timezone, err)
	}

	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		return nil, fmt.Errorf("invalid billing schedule %q: %w", cfg.Schedule, err)
	}

	return &Scheduler{
		tenants:  tenants,
		ledger:   ledger,
		clock:    clk,
		logger:   logger,
		schedule: cfg.Schedule,
		loc:      loc,
		workers:  defaultWorkers,
	}, nil
}

// Start schedules the recurring billing run
func (s *Scheduler) Start() error {
	s.cron = cron.New(cron.WithLocation(s.loc))

	_, err := s.cron.AddFunc(s.schedule, func() {
		report, err := s.RunTick(context.Background())
		if err != nil {
			s.logger.Error("scheduled billing run failed", "error", err)
			return
		}
		s.logger.Info("scheduled billing run complete",
			"properties", report.Properties,
			"tenants", report.Tenants,
			"obligations_created", report.ObligationsCreated,
			"fees_updated", report.FeesUpdated,
			"errors", len(report.Errors),
		)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule billing run: %w", err)
	}

	s.cron.Start()
	s.logger.Info("billing scheduler started", "schedule", s.schedule, "timezone", s.loc.String())
	return nil
}

// Stop cancels the cron job and waits for an in-flight run to finish
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info("billing scheduler stopped")
}

// RunTick runs the billing cycle for every property. Properties are
// processed concurrently; tenant failures are collected, not fatal.
func (s *Scheduler) RunTick(ctx context.Context) (Report, error) {
	started := time.Now()
	ticksTotal.Inc()

	propertyIDs, err := s.tenants.PropertyIDs(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list properties: %w", err)
	}

	var (
		mu     sync.Mutex
		report Report
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, propertyID := range propertyIDs {
		g.Go(func() error {
			propReport, err := s.RunProperty(gctx, propertyID)
			if err != nil {
				return err
			}
			mu.Lock()
			report.merge(propReport)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	tickDuration.Observe(time.Since(started).Seconds())
	return report, nil
}

// RunProperty runs the billing cycle for a single property
func (s *Scheduler) RunProperty(ctx context.Context, propertyID string) (Report, error) {
	now := s.clock.Now()

	tenants, err := s.tenants.ListActive(ctx, propertyID)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list tenants for property %s: %w", propertyID, err)
	}

	report := Report{Properties: 1, Tenants: len(tenants)}
	for i := range tenants {
		t := &tenants[i]

		created, err := s.ledger.EnsureObligations(ctx, t, now)
		if err != nil {
			s.recordTenantError(&report, propertyID, t.ID, err)
			continue
		}
		report.ObligationsCreated += len(created)
		obligationsCreated.Add(float64(len(created)))

		updated, err := s.ledger.RecomputeFees(ctx, t, now)
		if err != nil {
			s.recordTenantError(&report, propertyID, t.ID, err)
			continue
		}
		report.FeesUpdated += updated
		feeUpdates.Add(float64(updated))
	}

	return report, nil
}

func (s *Scheduler) recordTenantError(report *Report, propertyID, tenantID string, err error) {
	tenantErrors.Inc()
	s.logger.Error("billing failed for tenant",
		"property_id", propertyID,
		"tenant_id", tenantID,
		"error", err,
	)
	report.Errors = append(report.Errors, TenantError{
		PropertyID: propertyID,
		TenantID:   tenantID,
		Err:        err,
	})
}
