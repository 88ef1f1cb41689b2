package repository

import (
	"context"
	"testing"
	"time"

	"qrstudio/internal/entities"
	"qrstudio/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRepository(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	repo := NewRecordRepository(kv)

	records, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rec := entities.QRRecord{
		ID:         "abc",
		QRSettings: entities.DefaultSettings(),
		CreatedAt:  created,
		UpdatedAt:  created,
	}
	rec.Name = "Menu"
	rec.Text = "https://example.com/menu"

	require.NoError(t, repo.SaveAll(ctx, []entities.QRRecord{rec}))

	raw, err := kv.Get(ctx, KeySavedQRs)
	require.NoError(t, err)
	assert.Contains(t, raw, `"id":"abc"`)
	assert.Contains(t, raw, `"errorCorrectionLevel":"M"`)
	assert.Contains(t, raw, `"useRedirectSystem":false`)
	assert.Contains(t, raw, `"createdAt":"2024-05-01T12:00:00Z"`)

	records, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec, records[0])

	require.NoError(t, repo.SaveAll(ctx, nil))
	raw, err = kv.Get(ctx, KeySavedQRs)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestRecordRepository_CorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeySavedQRs, "{not json"))

	_, err := NewRecordRepository(kv).List(ctx)
	assert.Error(t, err)
}

func TestRedirectRepository(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	repo := NewRedirectRepository(kv)

	dest, err := repo.GetDestination(ctx, "x1")
	require.NoError(t, err)
	assert.Equal(t, "", dest)

	require.NoError(t, repo.SetDestination(ctx, "x1", "https://a.com"))
	require.NoError(t, repo.SetDestination(ctx, "x2", "https://b.com"))
	require.NoError(t, repo.SetDestination(ctx, "x1", "https://c.com"))

	dest, err = repo.GetDestination(ctx, "x1")
	require.NoError(t, err)
	assert.Equal(t, "https://c.com", dest)

	raw, err := kv.Get(ctx, KeyRedirects)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x1":"https://c.com","x2":"https://b.com"}`, raw)

	require.NoError(t, repo.Delete(ctx, "x1"))
	require.NoError(t, repo.Delete(ctx, "missing"))

	dest, err = repo.GetDestination(ctx, "x1")
	require.NoError(t, err)
	assert.Equal(t, "", dest)
	dest, err = repo.GetDestination(ctx, "x2")
	require.NoError(t, err)
	assert.Equal(t, "https://b.com", dest)
}

func TestShortURLRepository(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	stamp := time.Date(2024, 6, 2, 8, 30, 0, 0, time.UTC)
	repo := &shortURLRepository{kv: kv, now: func() time.Time { return stamp }}

	m, err := repo.GetMapping(ctx, "x1")
	require.NoError(t, err)
	assert.Nil(t, m)

	m, err = repo.SetMapping(ctx, "x1", "https://tinyurl.com/abc", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, stamp, m.CreatedAt)

	raw, err := kv.Get(ctx, KeyShortURLMappings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x1":{"shortUrl":"https://tinyurl.com/abc","destination":"https://example.com","createdAt":"2024-06-02T08:30:00Z"}}`, raw)

	got, err := repo.GetMapping(ctx, "x1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *m, *got)

	require.NoError(t, repo.Delete(ctx, "x1"))
	got, err = repo.GetMapping(ctx, "x1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPreferenceRepository(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	repo := NewPreferenceRepository(kv)

	enabled, set, err := repo.DarkMode(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)
	assert.False(t, set)

	require.NoError(t, repo.SetDarkMode(ctx, true))
	raw, err := kv.Get(ctx, KeyDarkMode)
	require.NoError(t, err)
	assert.Equal(t, "true", raw)

	enabled, set, err = repo.DarkMode(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.True(t, set)

	require.NoError(t, repo.SetDarkMode(ctx, false))
	enabled, set, err = repo.DarkMode(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)
	assert.True(t, set)
}
