package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/afternote/internal/config"
	"github.com/xxxsen/afternote/internal/db"
)

// OpenTestDB opens a migrated sqlite database in a temp dir that is removed
// when the test ends.
func OpenTestDB(t *testing.T) *db.Handle {
	t.Helper()
	h, err := db.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, db.ApplyMigrations(h))
	t.Cleanup(func() {
		_ = h.Close()
	})
	return h
}
