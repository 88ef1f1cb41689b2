package repository

import (
	"context"
	"errors"
	"fmt"

	"qrstudio/internal/storage"
)

// PreferenceRepository stores UI preferences.
type PreferenceRepository interface {
	// DarkMode returns the stored value and whether one was ever set.
	DarkMode(ctx context.Context) (enabled bool, set bool, err error)
	SetDarkMode(ctx context.Context, enabled bool) error
}

type preferenceRepository struct {
	kv storage.KV
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(kv storage.KV) PreferenceRepository {
	return &preferenceRepository{kv: kv}
}

// DarkMode is stored as the literal string "true" or "false"; anything else reads as false.
func (r *preferenceRepository) DarkMode(ctx context.Context) (bool, bool, error) {
	v, err := r.kv.Get(ctx, KeyDarkMode)
	if errors.Is(err, storage.ErrNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to read %s: %w", KeyDarkMode, err)
	}
	return v == "true", true, nil
}

func (r *preferenceRepository) SetDarkMode(ctx context.Context, enabled bool) error {
	v := "false"
	if enabled {
		v = "true"
	}
	if err := r.kv.Set(ctx, KeyDarkMode, v); err != nil {
		return fmt.Errorf("failed to write %s: %w", KeyDarkMode, err)
	}
	return nil
}
