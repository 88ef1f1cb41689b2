package repository

import (
	"context"

	"qrstudio/internal/entities"
	"qrstudio/internal/storage"
)

// RecordRepository persists the ordered collection of saved QR codes.
type RecordRepository interface {
	List(ctx context.Context) ([]entities.QRRecord, error)
	SaveAll(ctx context.Context, records []entities.QRRecord) error
}

type recordRepository struct {
	kv storage.KV
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(kv storage.KV) RecordRepository {
	return &recordRepository{kv: kv}
}

// List returns the saved collection, newest first. An unset key is an empty collection.
func (r *recordRepository) List(ctx context.Context) ([]entities.QRRecord, error) {
	records := []entities.QRRecord{}
	if _, err := getJSON(ctx, r.kv, KeySavedQRs, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []entities.QRRecord{}
	}
	return records, nil
}

// SaveAll replaces the stored collection.
func (r *recordRepository) SaveAll(ctx context.Context, records []entities.QRRecord) error {
	if records == nil {
		records = []entities.QRRecord{}
	}
	return setJSON(ctx, r.kv, KeySavedQRs, records)
}
