package tenant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pgdesk/pgdesk/internal/domain/room"
	"github.com/pgdesk/pgdesk/internal/repository"
)

// Service handles tenant lifecycle operations. Move-in and move-out keep the
// room occupancy counter in step with the tenant's active flag.
type Service struct {
	repo   Repository
	rooms  room.Repository
	logger *slog.Logger
}

// NewService creates a new tenant service.
func NewService(repo Repository, rooms room.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, rooms: rooms, logger: logger}
}

// MoveInRequest defines tenant creation inputs.
type MoveInRequest struct {
	PropertyID      string
	Name            string
	ContactNumber   string
	Email           string
	RoomID          string
	BedNumber       int
	JoinDate        time.Time
	RentDueDay      int
	SecurityDeposit int
	MonthlyRent     int
}

func validateMoveIn(req MoveInRequest) error {
	switch {
	case strings.TrimSpace(req.PropertyID) == "":
		return fmt.Errorf("%w: property id required", ErrInvalidInput)
	case strings.TrimSpace(req.Name) == "":
		return fmt.Errorf("%w: name required", ErrInvalidInput)
	case strings.TrimSpace(req.ContactNumber) == "":
		return fmt.Errorf("%w: contact number required", ErrInvalidInput)
	case strings.TrimSpace(req.RoomID) == "":
		return fmt.Errorf("%w: room id required", ErrInvalidInput)
	case req.BedNumber < 1:
		return fmt.Errorf("%w: bed number must be positive", ErrInvalidInput)
	case req.JoinDate.IsZero():
		return fmt.Errorf("%w: join date required", ErrInvalidInput)
	case req.RentDueDay < 1 || req.RentDueDay > 31:
		return fmt.Errorf("%w: rent due day must be between 1 and 31", ErrInvalidInput)
	case req.MonthlyRent < 1:
		return fmt.Errorf("%w: monthly rent must be positive", ErrInvalidInput)
	}
	return nil
}

// MoveIn creates a tenant and claims a bed in the requested room. The bed is
// claimed through an atomic capacity-checked increment, so two concurrent
// move-ins cannot both take the last bed.
func (s *Service) MoveIn(ctx context.Context, req MoveInRequest) (*Tenant, error) {
	if err := validateMoveIn(req); err != nil {
		return nil, err
	}

	if _, err := s.rooms.Get(ctx, req.PropertyID, req.RoomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, room.ErrRoomNotFound
		}
		return nil, fmt.Errorf("getting room: %w", err)
	}

	if err := s.rooms.AssignBed(ctx, req.PropertyID, req.RoomID); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, room.ErrNoBedsAvailable
		case errors.Is(err, repository.ErrNotFound):
			return nil, room.ErrRoomNotFound
		}
		return nil, fmt.Errorf("assigning bed: %w", err)
	}

	t := &Tenant{
		ID:              uuid.NewString(),
		PropertyID:      req.PropertyID,
		Name:            req.Name,
		ContactNumber:   req.ContactNumber,
		Email:           req.Email,
		RoomID:          req.RoomID,
		BedNumber:       req.BedNumber,
		JoinDate:        req.JoinDate,
		RentDueDay:      req.RentDueDay,
		SecurityDeposit: req.SecurityDeposit,
		MonthlyRent:     req.MonthlyRent,
		Status:          StatusActive,
		IsActive:        true,
		CreatedAt:       time.Now(),
	}

	if err := s.repo.Create(ctx, t); err != nil {
		// Give the bed back so the counter stays consistent with the
		// tenant set.
		if relErr := s.rooms.ReleaseBed(ctx, req.PropertyID, req.RoomID); relErr != nil {
			s.logger.Error("failed to release bed after tenant create failure",
				"room_id", req.RoomID, "error", relErr)
		}
		return nil, fmt.Errorf("creating tenant: %w", err)
	}

	s.logger.Info("tenant moved in",
		"tenant_id", t.ID, "property_id", t.PropertyID, "room_id", t.RoomID)
	return t, nil
}

// Get fetches a tenant by ID.
func (s *Service) Get(ctx context.Context, propertyID, id string) (*Tenant, error) {
	t, err := s.repo.Get(ctx, propertyID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("getting tenant: %w", err)
	}
	return t, nil
}

// ListActive returns all active tenants in a property.
func (s *Service) ListActive(ctx context.Context, propertyID string) ([]Tenant, error) {
	return s.repo.ListActive(ctx, propertyID)
}

// MoveOut marks the tenant inactive and releases their bed. The deactivation
// is guarded on the active flag, so a repeated move-out returns
// ErrTenantNotFound instead of decrementing the room counter twice.
func (s *Service) MoveOut(ctx context.Context, propertyID, id string, leaveDate time.Time) error {
	t, err := s.repo.Get(ctx, propertyID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTenantNotFound
		}
		return fmt.Errorf("getting tenant: %w", err)
	}

	if leaveDate.IsZero() {
		return fmt.Errorf("%w: leave date required", ErrInvalidInput)
	}

	if err := s.repo.Deactivate(ctx, propertyID, id, leaveDate); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTenantNotFound
		}
		return fmt.Errorf("deactivating tenant: %w", err)
	}

	if err := s.rooms.ReleaseBed(ctx, propertyID, t.RoomID); err != nil {
		return fmt.Errorf("releasing bed: %w", err)
	}

	s.logger.Info("tenant moved out",
		"tenant_id", id, "property_id", propertyID, "room_id", t.RoomID)
	return nil
}
