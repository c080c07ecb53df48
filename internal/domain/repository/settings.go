package repository

import (
	"barberbook/internal/domain/entity"
	"context"
)

// SettingsRepository defines the interface for user settings data operations.
// Records live under the logical path users/{userID}/info.
type SettingsRepository interface {
	// FindByUserID retrieves the settings record for a user.
	FindByUserID(ctx context.Context, userID string) (*entity.UserSettings, error)
	// Save creates or replaces the settings record for a user.
	Save(ctx context.Context, settings *entity.UserSettings) error
}
