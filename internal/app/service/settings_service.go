package service

import (
	"context"

	"shift-tracker/internal/domain"
	"shift-tracker/internal/model"
)

// SettingsService owns the default hourly rate applied to new shifts.
type SettingsService struct {
	Repo     domain.SettingsRepo
	Fallback float64
}

func NewSettingsService(repo domain.SettingsRepo, fallback float64) *SettingsService {
	return &SettingsService{Repo: repo, Fallback: fallback}
}

// HourlyRate returns the stored default, seeding it with Fallback on first read.
func (s *SettingsService) HourlyRate(ctx context.Context) (float64, error) {
	rate, ok, err := s.Repo.GetHourlyRate(ctx)
	if err != nil {
		return 0, err
	}
	if ok {
		return rate, nil
	}
	if err := s.Repo.SetHourlyRate(ctx, s.Fallback); err != nil {
		return 0, err
	}
	return s.Fallback, nil
}

func (s *SettingsService) SetHourlyRate(ctx context.Context, rate float64) error {
	if err := model.ValidateRate(rate); err != nil {
		return err
	}
	return s.Repo.SetHourlyRate(ctx, rate)
}
