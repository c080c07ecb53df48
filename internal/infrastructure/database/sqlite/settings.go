package sqlite

import (
	"barberbook/internal/domain/entity"
	"barberbook/internal/domain/repository"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new instance of SettingsRepository.
func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// FindByUserID retrieves the settings record for a user.
func (r *settingsRepository) FindByUserID(ctx context.Context, userID string) (*entity.UserSettings, error) {
	var settings entity.UserSettings
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("settings for user %s not found: %w", userID, err)
		}
		return nil, fmt.Errorf("failed to find settings for user %s: %w", userID, err)
	}
	return &settings, nil
}

// Save creates or replaces the settings record for a user.
func (r *settingsRepository) Save(ctx context.Context, settings *entity.UserSettings) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "template"}),
		}).
		Create(settings).Error
	if err != nil {
		return fmt.Errorf("failed to save settings for user %s: %w", settings.UserID, err)
	}
	return nil
}
