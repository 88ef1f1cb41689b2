package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrations_SQLite(t *testing.T) {
	db, err := NewConnection(DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(db, DriverSQLite))

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM kv_store`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Re-running is a no-op.
	require.NoError(t, RunMigrations(db, DriverSQLite))
}

func TestNewConnection_UnknownDriver(t *testing.T) {
	_, err := NewConnection("oracle", "whatever")
	assert.Error(t, err)
}
