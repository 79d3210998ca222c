package repository

import (
	"context"

	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"gorm.io/gorm"
)

type SettingsRepository interface {
	// Load returns the singleton row, creating it with defaults on first
	// access.
	Load(ctx context.Context) (*model.GlobalSettings, error)
	Save(ctx context.Context, settings *model.GlobalSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Load(ctx context.Context) (*model.GlobalSettings, error) {
	settings := model.GlobalSettings{ID: model.SettingsID, AllowRegistration: true}
	if err := r.db.WithContext(ctx).
		Where("id = ?", model.SettingsID).
		FirstOrCreate(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save writes all mutable columns explicitly. The column list matters:
// zero values (maintenance off, registration disabled) must reach the row,
// and GORM would skip them on a struct update.
func (r *settingsRepository) Save(ctx context.Context, settings *model.GlobalSettings) error {
	settings.ID = model.SettingsID
	return r.db.WithContext(ctx).
		Model(&model.GlobalSettings{ID: model.SettingsID}).
		Select("maintenance_mode", "allow_registration", "announcement").
		Updates(settings).Error
}
