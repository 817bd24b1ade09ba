// Package sqlitetest opens throwaway in-memory databases for tests.
package sqlitetest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pgdesk/pgdesk/internal/sqlite"
)

// New opens an in-memory database with migrations applied. The database is
// closed when the test finishes.
func New(t *testing.T) *sqlite.DB {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)

	require.NoError(t, db.RunMigrations())

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
