package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pgdesk/pgdesk/internal/domain/room"
	"github.com/pgdesk/pgdesk/internal/repository"
)

// RoomRepository implements room.Repository for SQLite
type RoomRepository struct {
	db *DB
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db *DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create creates a new room
func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) error {
	query := `
		INSERT INTO rooms (id, property_id, name, room_type, floor, total_beds, occupied_beds, monthly_rent, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		rm.ID,
		rm.PropertyID,
		rm.Name,
		rm.Type,
		rm.Floor,
		rm.TotalBeds,
		rm.OccupiedBeds,
		rm.MonthlyRent,
		rm.IsActive,
		rm.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create room: %w", err)
	}

	return nil
}

// Get retrieves a room by ID within a property
func (r *RoomRepository) Get(ctx context.Context, propertyID, id string) (*room.Room, error) {
	query := `
		SELECT id, property_id, name, room_type, floor, total_beds, occupied_beds, monthly_rent, is_active, created_at
		FROM rooms
		WHERE id = ? AND property_id = ?
	`

	rm, err := scanRoom(r.db.QueryRowContext(ctx, query, id, propertyID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return rm, nil
}

// List returns all rooms in a property
func (r *RoomRepository) List(ctx context.Context, propertyID string) ([]room.Room, error) {
	query := `
		SELECT id, property_id, name, room_type, floor, total_beds, occupied_beds, monthly_rent, is_active, created_at
		FROM rooms
		WHERE property_id = ?
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []room.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, *rm)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating room rows: %w", err)
	}

	return rooms, nil
}

// AssignBed claims one bed with the capacity check and the increment in a
// single conditional UPDATE, so the room row is the unit of mutual exclusion:
// two concurrent assignments against the last free bed can never both succeed.
func (r *RoomRepository) AssignBed(ctx context.Context, propertyID, id string) error {
	query := `
		UPDATE rooms
		SET occupied_beds = occupied_beds + 1
		WHERE id = ? AND property_id = ? AND occupied_beds < total_beds
	`

	result, err := r.db.ExecContext(ctx, query, id, propertyID)
	if err != nil {
		return fmt.Errorf("failed to assign bed: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		exists, err := r.exists(ctx, propertyID, id)
		if err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}
		// Room exists but every bed is taken
		return repository.ErrConflict
	}

	return nil
}

// ReleaseBed frees one bed, floored at zero occupied beds. Releasing a room
// that is already empty is a no-op; double-release of a specific tenant's bed
// is prevented upstream by the guarded tenant deactivation.
func (r *RoomRepository) ReleaseBed(ctx context.Context, propertyID, id string) error {
	query := `
		UPDATE rooms
		SET occupied_beds = occupied_beds - 1
		WHERE id = ? AND property_id = ? AND occupied_beds > 0
	`

	result, err := r.db.ExecContext(ctx, query, id, propertyID)
	if err != nil {
		return fmt.Errorf("failed to release bed: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		exists, err := r.exists(ctx, propertyID, id)
		if err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}
	}

	return nil
}

func (r *RoomRepository) exists(ctx context.Context, propertyID, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM rooms WHERE id = ? AND property_id = ?)`
	if err := r.db.QueryRowContext(ctx, query, id, propertyID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check room existence: %w", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (*room.Room, error) {
	var rm room.Room
	err := row.Scan(
		&rm.ID,
		&rm.PropertyID,
		&rm.Name,
		&rm.Type,
		&rm.Floor,
		&rm.TotalBeds,
		&rm.OccupiedBeds,
		&rm.MonthlyRent,
		&rm.IsActive,
		&rm.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}
