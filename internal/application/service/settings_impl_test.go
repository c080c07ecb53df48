package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"barberbook/internal/application/dto"
	"barberbook/internal/application/service"
	appErrors "barberbook/internal/pkg/errors"
)

func TestGetSettingsDefaultsForNewUser(t *testing.T) {
	svc := service.NewSettingsService(newFakeSettingsRepo(), testLog)

	settings, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if settings.Name != "" {
		t.Errorf("new user has a name: %q", settings.Name)
	}
	for _, token := range []string{"{{name}}", "{{time}}"} {
		if !strings.Contains(settings.Template, token) {
			t.Errorf("default template missing %s: %q", token, settings.Template)
		}
	}
	if !strings.Contains(settings.Preview, "דוד") || !strings.Contains(settings.Preview, "14:30") {
		t.Errorf("preview not rendered with sample values: %q", settings.Preview)
	}
}

func TestSaveSettingsRequiresName(t *testing.T) {
	svc := service.NewSettingsService(newFakeSettingsRepo(), testLog)
	_, err := svc.Save(context.Background(), "u1", dto.SaveSettingsRequest{Name: "  "})
	if !errors.Is(err, appErrors.ErrInvalidName) {
		t.Fatalf("want ErrInvalidName, got %v", err)
	}
}

func TestSaveBlankTemplateGetsSignedDefault(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := service.NewSettingsService(repo, testLog)

	saved, err := svc.Save(context.Background(), "u1", dto.SaveSettingsRequest{Name: "רון"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.Contains(saved.Template, "רון") {
		t.Errorf("default template not signed with the saved name: %q", saved.Template)
	}
}

func TestResolveTemplate(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := service.NewSettingsService(repo, testLog)

	// Unsaved user gets the default template and no barber name.
	template, barber := svc.ResolveTemplate(context.Background(), "u1")
	if template == "" || barber != "" {
		t.Errorf("unexpected fallback: template=%q barber=%q", template, barber)
	}

	if _, err := svc.Save(context.Background(), "u1", dto.SaveSettingsRequest{
		Name:     "רון",
		Template: "תזכורת: {{time}}",
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	template, barber = svc.ResolveTemplate(context.Background(), "u1")
	if template != "תזכורת: {{time}}" || barber != "רון" {
		t.Errorf("saved settings not resolved: template=%q barber=%q", template, barber)
	}
}
