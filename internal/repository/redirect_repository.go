package repository

import (
	"context"

	"qrstudio/internal/storage"
)

// RedirectRepository maps record ids to the destination the redirect
// resolver should send visitors to.
type RedirectRepository interface {
	GetDestination(ctx context.Context, id string) (string, error)
	SetDestination(ctx context.Context, id, destination string) error
	Delete(ctx context.Context, id string) error
}

type redirectRepository struct {
	kv storage.KV
}

// NewRedirectRepository creates a new redirect repository
func NewRedirectRepository(kv storage.KV) RedirectRepository {
	return &redirectRepository{kv: kv}
}

func (r *redirectRepository) load(ctx context.Context) (map[string]string, error) {
	redirects := map[string]string{}
	if _, err := getJSON(ctx, r.kv, KeyRedirects, &redirects); err != nil {
		return nil, err
	}
	if redirects == nil {
		redirects = map[string]string{}
	}
	return redirects, nil
}

// GetDestination returns "" when id has no entry.
func (r *redirectRepository) GetDestination(ctx context.Context, id string) (string, error) {
	redirects, err := r.load(ctx)
	if err != nil {
		return "", err
	}
	return redirects[id], nil
}

// SetDestination upserts the entry for id.
func (r *redirectRepository) SetDestination(ctx context.Context, id, destination string) error {
	redirects, err := r.load(ctx)
	if err != nil {
		return err
	}
	redirects[id] = destination
	return setJSON(ctx, r.kv, KeyRedirects, redirects)
}

func (r *redirectRepository) Delete(ctx context.Context, id string) error {
	redirects, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := redirects[id]; !ok {
		return nil
	}
	delete(redirects, id)
	return setJSON(ctx, r.kv, KeyRedirects, redirects)
}
