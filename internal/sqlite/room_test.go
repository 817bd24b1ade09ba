package sqlite_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pgdesk/pgdesk/internal/domain/room"
	"github.com/pgdesk/pgdesk/internal/repository"
	"github.com/pgdesk/pgdesk/internal/sqlite"
	"github.com/pgdesk/pgdesk/internal/sqlite/sqlitetest"
)

func newTestRoom(totalBeds, occupiedBeds int) *room.Room {
	return &room.Room{
		ID:           uuid.NewString(),
		PropertyID:   "prop-1",
		Name:         "101",
		Type:         room.TypeDouble,
		TotalBeds:    totalBeds,
		OccupiedBeds: occupiedBeds,
		MonthlyRent:  8000,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestRoomRepository_CreateAndGet(t *testing.T) {
	db := sqlitetest.New(t)
	repo := sqlite.NewRoomRepository(db)
	ctx := context.Background()

	r := newTestRoom(2, 0)
	require.NoError(t, repo.Create(ctx, r))

	got, err := repo.Get(ctx, r.PropertyID, r.ID)
	require.NoError(t, err)
	require.Equal(t, r.ID, got.ID)
	require.Equal(t, room.TypeDouble, got.Type)
	require.Equal(t, 2, got.TotalBeds)
	require.Equal(t, 0, got.OccupiedBeds)
}

func TestRoomRepository_GetWrongProperty(t *testing.T) {
	db := sqlitetest.New(t)
	repo := sqlite.NewRoomRepository(db)
	ctx := context.Background()

	r := newTestRoom(2, 0)
	require.NoError(t, repo.Create(ctx, r))

	_, err := repo.Get(ctx, "prop-other", r.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRoomRepository_AssignBed(t *testing.T) {
	db := sqlitetest.New(t)
	repo := sqlite.NewRoomRepository(db)
	ctx := context.Background()

	r := newTestRoom(2, 0)
	require.NoError(t, repo.Create(ctx, r))

	require.NoError(t, repo.AssignBed(ctx, r.PropertyID, r.ID))
	require.NoError(t, repo.AssignBed(ctx, r.PropertyID, r.ID))

	// Room is now full
	err := repo.AssignBed(ctx, r.PropertyID, r.ID)
	require.ErrorIs(t, err, repository.ErrConflict)

	got, err := repo.Get(ctx, r.PropertyID, r.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.OccupiedBeds)
}

func TestRoomRepository_AssignBedNotFound(t *testing.T) {
	db := sqlitetest.New(t)
	repo := sqlite.NewRoomRepository(db)

	err := repo.AssignBed(context.Background(), "prop-1", uuid.NewString())
	require.ErrorIs(t, err, repository.ErrNotFound)
}

// Two racing assignments on a room with one free bed must net exactly one
// success; occupied_beds never exceeds total_beds.
func TestRoomRepository_AssignBedConcurrent(t *testing.T) {
	db := sqlitetest.New(t)
	repo := sqlite.NewRoomRepository(db)
	ctx := context.Background()

	r := newTestRoom(2, 1)
	require.NoError(t, repo.Create(ctx, r))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.AssignBed(ctx, r.PropertyID, r.ID)
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, repository.ErrConflict)
			conflicted++
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, conflicted)

	got, err := repo.Get(ctx, r.PropertyID, r.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.OccupiedBeds)
}

func TestRoomRepository_ReleaseBed(t *testing.T) {
	db := sqlitetest.New(t)
	repo := sqlite.NewRoomRepository(db)
	ctx := context.Background()

	r := newTestRoom(2, 1)
	require.NoError(t, repo.Create(ctx, r))

	require.NoError(t, repo.ReleaseBed(ctx, r.PropertyID, r.ID))

	// Releasing an empty room is a no-op, never a negative count.
	require.NoError(t, repo.ReleaseBed(ctx, r.PropertyID, r.ID))

	got, err := repo.Get(ctx, r.PropertyID, r.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.OccupiedBeds)
}

func TestRoomRepository_List(t *testing.T) {
	db := sqlitetest.New(t)
	repo := sqlite.NewRoomRepository(db)
	ctx := context.Background()

	a := newTestRoom(2, 0)
	b := newTestRoom(3, 1)
	b.Name = "102"
	b.CreatedAt = a.CreatedAt.Add(time.Second)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	other := newTestRoom(1, 0)
	other.PropertyID = "prop-other"
	require.NoError(t, repo.Create(ctx, other))

	rooms, err := repo.List(ctx, "prop-1")
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	require.Equal(t, a.ID, rooms[0].ID)
	require.Equal(t, b.ID, rooms[1].ID)
}
