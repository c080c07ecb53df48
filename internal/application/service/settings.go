package service

import (
	"barberbook/internal/application/dto"
	"context"
)

// SettingsService defines the interface for barber profile and template
// management.
type SettingsService interface {
	// Get retrieves the saved settings for a user. A user without a saved
	// record gets the built-in default template and an empty name.
	Get(ctx context.Context, userID string) (*dto.SettingsResponse, error)
	// Save stores the name and template. The name must be non-empty; a blank
	// template is replaced with the default template signed with the name.
	Save(ctx context.Context, userID string, req dto.SaveSettingsRequest) (*dto.SettingsResponse, error)
	// ResolveTemplate returns the effective template and barber name for
	// rendering reminders, falling back to defaults when nothing is saved.
	ResolveTemplate(ctx context.Context, userID string) (template string, barber string)
}
