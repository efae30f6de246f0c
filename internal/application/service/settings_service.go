package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/zragie/ngo-receipts-api/internal/domain/entity"
	"github.com/zragie/ngo-receipts-api/internal/domain/repository"
)

// SettingsService handles user settings operations
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// Get returns the user's settings, creating defaults on first access
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	settings = &entity.UserSettings{UserID: userID}
	if err := s.settingsRepo.Create(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateSettingsInput represents the update settings input. Nil fields are
// left unchanged.
type UpdateSettingsInput struct {
	Language           *string
	Timezone           *string
	DateFormat         *string
	CurrencyPrefix     *string
	DefaultPayMethod   *string
	EmailNotifications *bool
	NotifyDonors       *bool
	Theme              *string
}

// Update applies a partial settings update
func (s *SettingsService) Update(ctx context.Context, userID uuid.UUID, input *UpdateSettingsInput) (*entity.UserSettings, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Language != nil {
		settings.Language = *input.Language
	}
	if input.Timezone != nil {
		settings.Timezone = *input.Timezone
	}
	if input.DateFormat != nil {
		settings.DateFormat = *input.DateFormat
	}
	if input.CurrencyPrefix != nil {
		settings.CurrencyPrefix = *input.CurrencyPrefix
	}
	if input.DefaultPayMethod != nil {
		settings.DefaultPayMethod = *input.DefaultPayMethod
	}
	if input.EmailNotifications != nil {
		settings.EmailNotifications = *input.EmailNotifications
	}
	if input.NotifyDonors != nil {
		settings.NotifyDonors = *input.NotifyDonors
	}
	if input.Theme != nil {
		settings.Theme = *input.Theme
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}
