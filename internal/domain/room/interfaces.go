package room

import "context"

// Repository provides persistence for rooms. AssignBed and ReleaseBed must
// mutate the occupied-bed counter atomically with their capacity check, using
// the room row as the unit of mutual exclusion.
type Repository interface {
	Create(ctx context.Context, r *Room) error
	Get(ctx context.Context, propertyID, id string) (*Room, error)
	List(ctx context.Context, propertyID string) ([]Room, error)
	// AssignBed increments the occupied-bed counter if a bed is free.
	// Returns repository.ErrConflict when the room is full.
	AssignBed(ctx context.Context, propertyID, id string) error
	// ReleaseBed decrements the occupied-bed counter, floored at zero.
	ReleaseBed(ctx context.Context, propertyID, id string) error
}
