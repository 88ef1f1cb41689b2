package repository

import (
	"context"
	"time"

	"qrstudio/internal/entities"
	"qrstudio/internal/storage"
)

// ShortURLRepository maps record ids to their current short URL.
type ShortURLRepository interface {
	GetMapping(ctx context.Context, id string) (*entities.ShortURLMapping, error)
	SetMapping(ctx context.Context, id, shortURL, destination string) (*entities.ShortURLMapping, error)
	Delete(ctx context.Context, id string) error
}

type shortURLRepository struct {
	kv  storage.KV
	now func() time.Time
}

// NewShortURLRepository creates a new short URL repository
func NewShortURLRepository(kv storage.KV) ShortURLRepository {
	return &shortURLRepository{kv: kv, now: time.Now}
}

func (r *shortURLRepository) load(ctx context.Context) (map[string]entities.ShortURLMapping, error) {
	mappings := map[string]entities.ShortURLMapping{}
	if _, err := getJSON(ctx, r.kv, KeyShortURLMappings, &mappings); err != nil {
		return nil, err
	}
	if mappings == nil {
		mappings = map[string]entities.ShortURLMapping{}
	}
	return mappings, nil
}

// GetMapping returns nil when id has no mapping.
func (r *shortURLRepository) GetMapping(ctx context.Context, id string) (*entities.ShortURLMapping, error) {
	mappings, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	m, ok := mappings[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// SetMapping replaces any existing mapping for id, stamping a new creation time.
func (r *shortURLRepository) SetMapping(ctx context.Context, id, shortURL, destination string) (*entities.ShortURLMapping, error) {
	mappings, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	m := entities.ShortURLMapping{
		ShortURL:    shortURL,
		Destination: destination,
		CreatedAt:   r.now().UTC(),
	}
	mappings[id] = m
	if err := setJSON(ctx, r.kv, KeyShortURLMappings, mappings); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *shortURLRepository) Delete(ctx context.Context, id string) error {
	mappings, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := mappings[id]; !ok {
		return nil
	}
	delete(mappings, id)
	return setJSON(ctx, r.kv, KeyShortURLMappings, mappings)
}
