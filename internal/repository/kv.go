package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"qrstudio/internal/storage"
)

// Storage keys. The value under each key is a single JSON document that is
// rewritten in full on every mutation.
const (
	KeyDarkMode         = "darkMode"
	KeySavedQRs         = "savedQRs"
	KeyRedirects        = "qrRedirects"
	KeyShortURLMappings = "shortUrlMappings"
)

// getJSON decodes the document under key into dest. A missing key leaves
// dest untouched and reports found=false.
func getJSON(ctx context.Context, kv storage.KV, key string, dest interface{}) (bool, error) {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func setJSON(ctx context.Context, kv storage.KV, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
