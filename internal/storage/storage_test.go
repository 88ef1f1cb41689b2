package storage_test

import (
	"context"
	"testing"

	"qrstudio/internal/database"
	"qrstudio/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteKV(t *testing.T) storage.KV {
	t.Helper()

	db, err := database.NewConnection(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db, database.DriverSQLite))
	return storage.NewSQLKV(db, database.DriverSQLite)
}

func TestKV(t *testing.T) {
	backends := map[string]func(t *testing.T) storage.KV{
		"memory": func(t *testing.T) storage.KV { return storage.NewMemoryKV() },
		"sqlite": newSQLiteKV,
		"redis":  newRedisKV,
	}

	for name, newKV := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			kv := newKV(t)

			_, err := kv.Get(ctx, "savedQRs")
			assert.ErrorIs(t, err, storage.ErrNotFound)

			require.NoError(t, kv.Set(ctx, "savedQRs", `[]`))
			v, err := kv.Get(ctx, "savedQRs")
			require.NoError(t, err)
			assert.Equal(t, `[]`, v)

			// Upsert overwrites.
			require.NoError(t, kv.Set(ctx, "savedQRs", `[{"id":"a"}]`))
			v, err = kv.Get(ctx, "savedQRs")
			require.NoError(t, err)
			assert.Equal(t, `[{"id":"a"}]`, v)

			require.NoError(t, kv.Delete(ctx, "savedQRs"))
			_, err = kv.Get(ctx, "savedQRs")
			assert.ErrorIs(t, err, storage.ErrNotFound)

			// Deleting a missing key is not an error.
			assert.NoError(t, kv.Delete(ctx, "missing"))
		})
	}
}
