package storage_test

import (
	"context"
	"testing"

	"qrstudio/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, storage.KV) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, storage.NewRedisKVFromClient(client)
}

func newRedisKV(t *testing.T) storage.KV {
	t.Helper()

	_, kv := newMiniRedis(t)
	return kv
}

func TestRedisKV_KeyPrefix(t *testing.T) {
	ctx := context.Background()
	mr, kv := newMiniRedis(t)

	require.NoError(t, kv.Set(ctx, "darkMode", "true"))
	got, err := mr.Get("qrstudio:darkMode")
	require.NoError(t, err)
	assert.Equal(t, "true", got)
	// Keys never expire.
	assert.Zero(t, mr.TTL("qrstudio:darkMode"))

	require.NoError(t, kv.Delete(ctx, "darkMode"))
	assert.False(t, mr.Exists("qrstudio:darkMode"))
}

func TestRedisKV_ServerError(t *testing.T) {
	ctx := context.Background()
	mr, kv := newMiniRedis(t)
	mr.SetError("ERR injected failure")

	_, err := kv.Get(ctx, "savedQRs")
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
	assert.Error(t, kv.Set(ctx, "savedQRs", "[]"))
	assert.Error(t, kv.Delete(ctx, "savedQRs"))
}

func TestNewRedisKV(t *testing.T) {
	mr := miniredis.RunT(t)

	kv, err := storage.NewRedisKV("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	require.NoError(t, kv.Set(context.Background(), "savedQRs", "[]"))
	assert.True(t, mr.Exists("qrstudio:savedQRs"))

	// Plain host:port falls back to Addr.
	_, err = storage.NewRedisKV(mr.Addr())
	require.NoError(t, err)
}

func TestNewRedisKV_Unreachable(t *testing.T) {
	_, err := storage.NewRedisKV("redis://127.0.0.1:1/0")
	assert.Error(t, err)
}
