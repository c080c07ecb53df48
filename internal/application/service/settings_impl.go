package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"barberbook/internal/application/dto"
	"barberbook/internal/domain/entity"
	"barberbook/internal/domain/repository"
	appErrors "barberbook/internal/pkg/errors"
	"barberbook/internal/pkg/logger"
	"barberbook/internal/pkg/message"

	"gorm.io/gorm"
)

// Sample values used for the settings-screen preview.
const (
	previewName = "דוד"
	previewTime = "14:30"
)

type settingsService struct {
	settingsRepo repository.SettingsRepository
	log          logger.Logger
}

// NewSettingsService creates a new instance of SettingsService implementation.
func NewSettingsService(settingsRepo repository.SettingsRepository, log logger.Logger) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		log:          log,
	}
}

// Get retrieves the saved settings for a user.
func (s *settingsService) Get(ctx context.Context, userID string) (*dto.SettingsResponse, error) {
	settings, err := s.settingsRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.toResponse(&entity.UserSettings{
				UserID:   userID,
				Template: message.DefaultTemplate(""),
			}), nil
		}
		s.log.Error(fmt.Sprintf("Failed to load settings for user %s", userID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrStoreReadFailed, err)
	}
	return s.toResponse(settings), nil
}

// Save stores the name and template.
func (s *settingsService) Save(ctx context.Context, userID string, req dto.SaveSettingsRequest) (*dto.SettingsResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.ErrInvalidName
	}

	template := strings.TrimSpace(req.Template)
	if template == "" {
		template = message.DefaultTemplate(name)
	}

	settings := &entity.UserSettings{
		UserID:   userID,
		Name:     name,
		Template: template,
	}
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		s.log.Error(fmt.Sprintf("Failed to save settings for user %s", userID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrStoreWriteFailed, err)
	}
	s.log.Info(fmt.Sprintf("Saved settings for user %s", userID))
	return s.toResponse(settings), nil
}

// ResolveTemplate returns the effective template and barber name for
// rendering reminders.
func (s *settingsService) ResolveTemplate(ctx context.Context, userID string) (string, string) {
	settings, err := s.settingsRepo.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn(fmt.Sprintf("Falling back to default template for user %s: %v", userID, err))
		}
		return message.DefaultTemplate(""), ""
	}
	template := settings.Template
	if template == "" {
		template = message.DefaultTemplate(settings.Name)
	}
	return template, settings.Name
}

func (s *settingsService) toResponse(settings *entity.UserSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		Name:     settings.Name,
		Template: settings.Template,
		Preview: message.Render(settings.Template, message.Vars{
			Name:   previewName,
			Time:   previewTime,
			Barber: settings.Name,
		}),
	}
}
