package payment_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pgdesk/pgdesk/internal/domain/payment"
	"github.com/pgdesk/pgdesk/internal/domain/tenant"
	"github.com/pgdesk/pgdesk/internal/repository"
	"github.com/pgdesk/pgdesk/internal/repository/mocks"
)

func newService(repo *mocks.PaymentRepository) *payment.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return payment.NewService(repo, logger)
}

func activeTenant() *tenant.Tenant {
	return &tenant.Tenant{
		ID:          "t-1",
		PropertyID:  "prop-1",
		RoomID:      "room-1",
		JoinDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		RentDueDay:  15,
		MonthlyRent: 8000,
		Status:      tenant.StatusActive,
		IsActive:    true,
	}
}

func TestEnsureObligationsSkipsExistingMonths(t *testing.T) {
	repo := &mocks.PaymentRepository{}
	svc := newService(repo)
	tn := activeTenant()
	now := time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)

	repo.On("Months", mock.Anything, "t-1").Return([]string{"2024-01", "2024-02"}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *payment.Payment) bool {
		return p.Month == "2024-03" || p.Month == "2024-04"
	})).Return(nil).Twice()

	created, err := svc.EnsureObligations(context.Background(), tn, now)
	require.NoError(t, err)
	require.Len(t, created, 2)
	require.Equal(t, "2024-03", created[0].Month)
	require.Equal(t, "2024-04", created[1].Month)
	require.Equal(t, payment.StatusPending, created[0].Status)
	require.Equal(t, 8000, created[0].RentAmount)
	repo.AssertExpectations(t)
}

// Losing a uniqueness race to a concurrent run counts as done, not failed.
func TestEnsureObligationsTreatsConflictAsSuccess(t *testing.T) {
	repo := &mocks.PaymentRepository{}
	svc := newService(repo)
	tn := activeTenant()
	now := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)

	repo.On("Months", mock.Anything, "t-1").Return([]string(nil), nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *payment.Payment) bool {
		return p.Month == "2024-01"
	})).Return(repository.ErrConflict)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *payment.Payment) bool {
		return p.Month == "2024-02"
	})).Return(nil)

	created, err := svc.EnsureObligations(context.Background(), tn, now)
	require.NoError(t, err)
	require.Len(t, created, 1)
	require.Equal(t, "2024-02", created[0].Month)
}

func TestEnsureObligationsRejectsBadTenant(t *testing.T) {
	repo := &mocks.PaymentRepository{}
	svc := newService(repo)
	now := time.Now()

	tn := activeTenant()
	tn.RentDueDay = 0
	_, err := svc.EnsureObligations(context.Background(), tn, now)
	require.ErrorIs(t, err, payment.ErrInvalidInput)

	tn = activeTenant()
	tn.MonthlyRent = 0
	_, err = svc.EnsureObligations(context.Background(), tn, now)
	require.ErrorIs(t, err, payment.ErrInvalidInput)
}

func TestRecomputeFeesFlipsPendingToOverdue(t *testing.T) {
	repo := &mocks.PaymentRepository{}
	svc := newService(repo)
	tn := activeTenant()
	now := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	open := []payment.Payment{
		{
			ID:         "p-jan",
			Month:      "2024-01",
			DueDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			RentAmount: 8000,
			Status:     payment.StatusPending,
		},
	}
	repo.On("ListOpenByTenant", mock.Anything, "t-1").Return(open, nil)
	// 31 days overdue lands in the 10% tier.
	repo.On("UpdateFee", mock.Anything, "p-jan", 800, payment.StatusOverdue).Return(nil)

	updated, err := svc.RecomputeFees(context.Background(), tn, now)
	require.NoError(t, err)
	require.Equal(t, 1, updated)
	repo.AssertExpectations(t)
}

// A second run on the same day computes identical fees and writes nothing.
func TestRecomputeFeesWritesOnlyOnChange(t *testing.T) {
	repo := &mocks.PaymentRepository{}
	svc := newService(repo)
	tn := activeTenant()
	now := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	open := []payment.Payment{
		{
			ID:         "p-jan",
			Month:      "2024-01",
			DueDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			RentAmount: 8000,
			LateFee:    800,
			Status:     payment.StatusOverdue,
		},
	}
	repo.On("ListOpenByTenant", mock.Anything, "t-1").Return(open, nil)

	updated, err := svc.RecomputeFees(context.Background(), tn, now)
	require.NoError(t, err)
	require.Equal(t, 0, updated)
	repo.AssertNotCalled(t, "UpdateFee", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecomputeFeesSkipsConcurrentlySettled(t *testing.T) {
	repo := &mocks.PaymentRepository{}
	svc := newService(repo)
	tn := activeTenant()
	now := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	open := []payment.Payment{
		{
			ID:         "p-jan",
			DueDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			RentAmount: 8000,
			Status:     payment.StatusPending,
		},
	}
	repo.On("ListOpenByTenant", mock.Anything, "t-1").Return(open, nil)
	repo.On("UpdateFee", mock.Anything, "p-jan", 800, payment.StatusOverdue).Return(repository.ErrConflict)

	updated, err := svc.RecomputeFees(context.Background(), tn, now)
	require.NoError(t, err)
	require.Equal(t, 0, updated)
}

func TestMarkPaidValidatesInput(t *testing.T) {
	repo := &mocks.PaymentRepository{}
	svc := newService(repo)

	_, err := svc.MarkPaid(context.Background(), "p-1", payment.MarkPaidRequest{
		PaidAmount:    0,
		PaymentMethod: payment.MethodCash,
		PaidDate:      time.Now(),
	})
	require.ErrorIs(t, err, payment.ErrInvalidInput)
	repo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkPaidRejectsSettled(t *testing.T) {
	repo := &mocks.PaymentRepository{}
	svc := newService(repo)

	paid := &payment.Payment{ID: "p-1", Status: payment.StatusPaid}
	repo.On("Get", mock.Anything, "p-1").Return(paid, nil)

	_, err := svc.MarkPaid(context.Background(), "p-1", payment.MarkPaidRequest{
		PaidAmount:    8000,
		PaymentMethod: payment.MethodCash,
		PaidDate:      time.Now(),
	})
	require.ErrorIs(t, err, payment.ErrAlreadyPaid)
	repo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkPaidSettles(t *testing.T) {
	repo := &mocks.PaymentRepository{}
	svc := newService(repo)
	paidDate := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

	open := &payment.Payment{ID: "p-1", Status: payment.StatusOverdue, RentAmount: 8000, LateFee: 160}
	settled := &payment.Payment{ID: "p-1", Status: payment.StatusPaid, RentAmount: 8000, LateFee: 160, PaidAmount: 8160}
	repo.On("Get", mock.Anything, "p-1").Return(open, nil).Once()
	repo.On("MarkPaid", mock.Anything, "p-1", 8160, payment.MethodUPI, paidDate).Return(nil)
	repo.On("Get", mock.Anything, "p-1").Return(settled, nil).Once()

	got, err := svc.MarkPaid(context.Background(), "p-1", payment.MarkPaidRequest{
		PaidAmount:    8160,
		PaymentMethod: payment.MethodUPI,
		PaidDate:      paidDate,
	})
	require.NoError(t, err)
	require.Equal(t, payment.StatusPaid, got.Status)
	require.Equal(t, 8160, got.PaidAmount)
	repo.AssertExpectations(t)
}

// A guarded store update losing the race to another settlement surfaces as
// ErrAlreadyPaid, never as a second write.
func TestMarkPaidLosesRace(t *testing.T) {
	repo := &mocks.PaymentRepository{}
	svc := newService(repo)
	paidDate := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

	open := &payment.Payment{ID: "p-1", Status: payment.StatusPending, RentAmount: 8000}
	repo.On("Get", mock.Anything, "p-1").Return(open, nil)
	repo.On("MarkPaid", mock.Anything, "p-1", 8000, payment.MethodCash, paidDate).Return(repository.ErrConflict)

	_, err := svc.MarkPaid(context.Background(), "p-1", payment.MarkPaidRequest{
		PaidAmount:    8000,
		PaymentMethod: payment.MethodCash,
		PaidDate:      paidDate,
	})
	require.ErrorIs(t, err, payment.ErrAlreadyPaid)
}

func TestMarkOverdueBatchIsolatesFailures(t *testing.T) {
	repo := &mocks.PaymentRepository{}
	svc := newService(repo)

	repo.On("MarkOverdue", mock.Anything, "p-ok").Return(nil)
	repo.On("MarkOverdue", mock.Anything, "p-paid").Return(repository.ErrConflict)
	repo.On("MarkOverdue", mock.Anything, "p-missing").Return(repository.ErrNotFound)
	repo.On("MarkOverdue", mock.Anything, "p-broken").Return(errors.New("io error"))

	res := svc.MarkOverdue(context.Background(), []string{"p-ok", "p-paid", "p-missing", "p-broken"})
	require.Equal(t, []string{"p-ok"}, res.Updated)
	require.ErrorIs(t, res.Failed["p-paid"], payment.ErrAlreadyPaid)
	require.ErrorIs(t, res.Failed["p-missing"], payment.ErrPaymentNotFound)
	require.Error(t, res.Failed["p-broken"])
}

func TestGenerateOverdueReport(t *testing.T) {
	repo := &mocks.PaymentRepository{}
	svc := newService(repo)
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	unpaid := []payment.Payment{
		// 16 days overdue, newest.
		{ID: "p-apr", DueDate: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), RentAmount: 8000, LateFee: 400, Status: payment.StatusOverdue},
		// 107 days overdue, oldest.
		{ID: "p-jan", DueDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), RentAmount: 8000, LateFee: 800, Status: payment.StatusOverdue},
		// 46 days overdue.
		{ID: "p-mar", DueDate: time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), RentAmount: 8000, LateFee: 800, Status: payment.StatusOverdue},
		// Due in the future: not overdue yet.
		{ID: "p-may", DueDate: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), RentAmount: 8000, Status: payment.StatusPending},
	}
	repo.On("ListUnpaid", mock.Anything, "prop-1").Return(unpaid, nil)

	report, err := svc.GenerateOverdueReport(context.Background(), "prop-1", now)
	require.NoError(t, err)
	require.Equal(t, 3, report.Total)
	require.Equal(t, 1, report.Buckets.Days0To30)
	require.Equal(t, 1, report.Buckets.Days31To60)
	require.Equal(t, 0, report.Buckets.Days61To90)
	require.Equal(t, 1, report.Buckets.Days90Plus)
	require.Equal(t, 3*8000+400+800+800, report.TotalOutstanding)

	// Oldest first.
	require.Equal(t, "p-jan", report.Payments[0].Payment.ID)
	require.Equal(t, "p-mar", report.Payments[1].Payment.ID)
	require.Equal(t, "p-apr", report.Payments[2].Payment.ID)
	require.Equal(t, 107, report.Payments[0].OverdueDays)
}

func TestSummaryCollectionRate(t *testing.T) {
	s := payment.Summary{TotalRent: 16000, PaidAmount: 8000}
	require.InDelta(t, 50.0, s.CollectionRate(), 0.001)

	require.Zero(t, payment.Summary{}.CollectionRate())
}
