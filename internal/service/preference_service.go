package service

import (
	"context"
	"fmt"

	"qrstudio/internal/repository"
)

// PreferenceService exposes the UI theme preference.
type PreferenceService interface {
	DarkMode(ctx context.Context) (enabled bool, set bool, err error)
	SetDarkMode(ctx context.Context, enabled bool) error
}

type preferenceService struct {
	repo repository.PreferenceRepository
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(repo repository.PreferenceRepository) PreferenceService {
	return &preferenceService{repo: repo}
}

func (s *preferenceService) DarkMode(ctx context.Context) (bool, bool, error) {
	enabled, set, err := s.repo.DarkMode(ctx)
	if err != nil {
		return false, false, fmt.Errorf("failed to get dark mode: %w", err)
	}
	return enabled, set, nil
}

func (s *preferenceService) SetDarkMode(ctx context.Context, enabled bool) error {
	if err := s.repo.SetDarkMode(ctx, enabled); err != nil {
		return fmt.Errorf("failed to set dark mode: %w", err)
	}
	return nil
}
