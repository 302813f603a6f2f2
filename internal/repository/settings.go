package repository

import (
	"context"
	"errors"

	"bunchly/internal/models"

	"gorm.io/gorm"
)

// SettingsRepository persists the global settings singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, settings *models.Settings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository returns a new SettingsRepository implementation.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := r.db.WithContext(ctx).First(&settings, models.SettingsID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Migration seeds the row, but tolerate a missing one.
			settings = models.Settings{ID: models.SettingsID}
			if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
				return nil, models.NewInternalError(err)
			}
			return &settings, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *models.Settings) error {
	settings.ID = models.SettingsID
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
