package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pgdesk/pgdesk/internal/repository"
)

// Service handles room operations, including the occupancy bookkeeping that
// keeps each room's occupied-bed counter consistent with its active tenants.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new room service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines room creation inputs.
type CreateRequest struct {
	PropertyID  string
	Name        string
	Type        RoomType
	Floor       *int
	TotalBeds   int
	MonthlyRent int
}

// Create creates a new room with zero occupied beds.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	if strings.TrimSpace(req.PropertyID) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}
	if !ValidType(req.Type) {
		return nil, fmt.Errorf("%w: unknown room type %q", ErrInvalidInput, req.Type)
	}
	if req.TotalBeds < 1 {
		return nil, fmt.Errorf("%w: total beds must be positive", ErrInvalidInput)
	}

	r := &Room{
		ID:           uuid.NewString(),
		PropertyID:   req.PropertyID,
		Name:         req.Name,
		Type:         req.Type,
		Floor:        req.Floor,
		TotalBeds:    req.TotalBeds,
		OccupiedBeds: 0,
		MonthlyRent:  req.MonthlyRent,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("creating room: %w", err)
	}
	return r, nil
}

// Get fetches a room by ID.
func (s *Service) Get(ctx context.Context, propertyID, id string) (*Room, error) {
	r, err := s.repo.Get(ctx, propertyID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("getting room: %w", err)
	}
	return r, nil
}

// List returns all rooms in a property.
func (s *Service) List(ctx context.Context, propertyID string) ([]Room, error) {
	return s.repo.List(ctx, propertyID)
}

// AssignBed claims one bed in the room. The capacity check and the counter
// increment happen in a single atomic store operation; on a full room the
// counter is untouched and ErrNoBedsAvailable is returned.
func (s *Service) AssignBed(ctx context.Context, propertyID, id string) error {
	err := s.repo.AssignBed(ctx, propertyID, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrConflict):
		return ErrNoBedsAvailable
	case errors.Is(err, repository.ErrNotFound):
		return ErrRoomNotFound
	default:
		return fmt.Errorf("assigning bed: %w", err)
	}
}

// ReleaseBed frees one bed in the room. The counter never drops below zero;
// callers reject double-release upstream by guarding the tenant deactivation.
func (s *Service) ReleaseBed(ctx context.Context, propertyID, id string) error {
	err := s.repo.ReleaseBed(ctx, propertyID, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrRoomNotFound
	default:
		return fmt.Errorf("releasing bed: %w", err)
	}
}
