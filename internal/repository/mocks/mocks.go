// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pgdesk/pgdesk/internal/domain/payment"
	"github.com/pgdesk/pgdesk/internal/domain/room"
	"github.com/pgdesk/pgdesk/internal/domain/tenant"
)

// RoomRepository is a mock implementation of room.Repository
type RoomRepository struct {
	mock.Mock
}

func (m *RoomRepository) Create(ctx context.Context, r *room.Room) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *RoomRepository) Get(ctx context.Context, propertyID, id string) (*room.Room, error) {
	args := m.Called(ctx, propertyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *RoomRepository) List(ctx context.Context, propertyID string) ([]room.Room, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]room.Room), args.Error(1)
}

func (m *RoomRepository) AssignBed(ctx context.Context, propertyID, id string) error {
	args := m.Called(ctx, propertyID, id)
	return args.Error(0)
}

func (m *RoomRepository) ReleaseBed(ctx context.Context, propertyID, id string) error {
	args := m.Called(ctx, propertyID, id)
	return args.Error(0)
}

// TenantRepository is a mock implementation of tenant.Repository
type TenantRepository struct {
	mock.Mock
}

func (m *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TenantRepository) Get(ctx context.Context, propertyID, id string) (*tenant.Tenant, error) {
	args := m.Called(ctx, propertyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenant.Tenant), args.Error(1)
}

func (m *TenantRepository) ListActive(ctx context.Context, propertyID string) ([]tenant.Tenant, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tenant.Tenant), args.Error(1)
}

func (m *TenantRepository) PropertyIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *TenantRepository) Deactivate(ctx context.Context, propertyID, id string, leaveDate time.Time) error {
	args := m.Called(ctx, propertyID, id, leaveDate)
	return args.Error(0)
}

// PaymentRepository is a mock implementation of payment.Repository
type PaymentRepository struct {
	mock.Mock
}

func (m *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PaymentRepository) Get(ctx context.Context, id string) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *PaymentRepository) Months(ctx context.Context, tenantID string) ([]string, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *PaymentRepository) ListByTenant(ctx context.Context, tenantID string) ([]payment.Payment, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *PaymentRepository) ListOpenByTenant(ctx context.Context, tenantID string) ([]payment.Payment, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *PaymentRepository) ListUnpaid(ctx context.Context, propertyID string) ([]payment.Payment, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (m *PaymentRepository) UpdateFee(ctx context.Context, id string, lateFee int, status payment.Status) error {
	args := m.Called(ctx, id, lateFee, status)
	return args.Error(0)
}

func (m *PaymentRepository) MarkPaid(ctx context.Context, id string, paidAmount int, method payment.Method, paidDate time.Time) error {
	args := m.Called(ctx, id, paidAmount, method, paidDate)
	return args.Error(0)
}

func (m *PaymentRepository) MarkOverdue(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PaymentRepository) Summary(ctx context.Context, propertyID, month string) (payment.Summary, error) {
	args := m.Called(ctx, propertyID, month)
	return args.Get(0).(payment.Summary), args.Error(1)
}
