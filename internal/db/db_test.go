package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqliteDSN(t *testing.T) {
	dsn := sqliteDSN("data/app.db")
	assert.Contains(t, dsn, "journal_mode(WAL)")
	assert.Contains(t, dsn, "busy_timeout(5000)")
	assert.Contains(t, dsn, "foreign_keys(ON)")

	// Explicit parameters are the caller's business.
	custom := "data/app.db?_pragma=journal_mode(DELETE)"
	assert.Equal(t, custom, sqliteDSN(custom))
}

func TestInitCreatesDataDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.db")

	database, err := Init("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, database.Ping())
	require.NoError(t, RunMigrations(database.DB, "sqlite"))
}
