package service

import (
	"context"

	"bunchly/internal/cache"
	"bunchly/internal/models"
	"bunchly/internal/repository"
)

// SettingsInput is a partial update of the settings singleton. Nil fields are
// retained from the prior value (merge-by-key semantics).
type SettingsInput struct {
	SaleActive     *bool   `json:"saleActive"`
	SaleDiscount   *int    `json:"saleDiscount"`
	SaleBannerText *string `json:"saleBannerText"`
	SaleBannerLink *string `json:"saleBannerLink"`
}

// SettingsService is the accessor for the global settings record. Callers
// always go through Get/Update; nothing caches a settings copy across
// requests beyond the short shared Redis TTL.
type SettingsService struct {
	repo repository.SettingsRepository
}

// NewSettingsService returns a new SettingsService.
func NewSettingsService(repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Get returns the current settings, cache-aside through Redis.
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := cache.Aside(ctx, cache.SettingsKey(), &settings, cache.SettingsTTL, func() error {
		fetched, err := s.repo.Get(ctx)
		if err != nil {
			return err
		}
		settings = *fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update merges a partial update into the stored settings. Out-of-range
// values are rejected with a validation error, never silently clamped.
// Writes are last-write-wins at the store layer.
func (s *SettingsService) Update(ctx context.Context, in SettingsInput) (*models.Settings, error) {
	if in.SaleDiscount != nil && (*in.SaleDiscount < 0 || *in.SaleDiscount > 100) {
		return nil, models.NewValidationError("saleDiscount must be between 0 and 100")
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if in.SaleActive != nil {
		settings.SaleActive = *in.SaleActive
	}
	if in.SaleDiscount != nil {
		settings.SaleDiscount = *in.SaleDiscount
	}
	if in.SaleBannerText != nil {
		settings.SaleBannerText = *in.SaleBannerText
	}
	if in.SaleBannerLink != nil {
		settings.SaleBannerLink = *in.SaleBannerLink
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}

	cache.InvalidateSettings(ctx)
	return settings, nil
}
