package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"barberbook/internal/domain/entity"
	"barberbook/internal/pkg/logger"

	"gorm.io/gorm"
)

var testLog = logger.New()

// fakeApptRepo is an in-memory AppointmentRepository preserving insertion
// order, so stable-sort behavior is observable.
type fakeApptRepo struct {
	mu         sync.Mutex
	appts      []entity.Appointment
	failWrites bool
	failReads  bool
}

var (
	errWriteRefused = errors.New("write refused")
	errReadRefused  = errors.New("read refused")
)

func (r *fakeApptRepo) FindByID(ctx context.Context, userID, dateKey, id string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failReads {
		return nil, errReadRefused
	}
	for _, a := range r.appts {
		if a.UserID == userID && a.DateKey == dateKey && a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, fmt.Errorf("appointment %s not found: %w", id, gorm.ErrRecordNotFound)
}

func (r *fakeApptRepo) FindByUserAndDate(ctx context.Context, userID, dateKey string) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failReads {
		return nil, errReadRefused
	}
	var out []entity.Appointment
	for _, a := range r.appts {
		if a.UserID == userID && a.DateKey == dateKey {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeApptRepo) Create(ctx context.Context, appt *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return errWriteRefused
	}
	r.appts = append(r.appts, *appt)
	return nil
}

func (r *fakeApptRepo) UpdateTime(ctx context.Context, userID, dateKey, id, newTime string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return errWriteRefused
	}
	for i, a := range r.appts {
		if a.UserID == userID && a.DateKey == dateKey && a.ID == id {
			r.appts[i].Time = newTime
			return nil
		}
	}
	return fmt.Errorf("appointment %s not found: %w", id, gorm.ErrRecordNotFound)
}

func (r *fakeApptRepo) Delete(ctx context.Context, userID, dateKey, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return errWriteRefused
	}
	for i, a := range r.appts {
		if a.UserID == userID && a.DateKey == dateKey && a.ID == id {
			r.appts = append(r.appts[:i], r.appts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeApptRepo) DeleteDaysBefore(ctx context.Context, cutoff string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []entity.Appointment
	var removed int64
	for _, a := range r.appts {
		if a.DateKey < cutoff {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	r.appts = kept
	return removed, nil
}

// markSent flips the sent flag the way the external reminder service would.
func (r *fakeApptRepo) markSent(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.appts {
		if a.ID == id {
			r.appts[i].Sent = true
		}
	}
}

// fakeSettingsRepo is an in-memory SettingsRepository.
type fakeSettingsRepo struct {
	mu         sync.Mutex
	byUser     map[string]entity.UserSettings
	failWrites bool
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{byUser: make(map[string]entity.UserSettings)}
}

func (r *fakeSettingsRepo) FindByUserID(ctx context.Context, userID string) (*entity.UserSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byUser[userID]; ok {
		found := s
		return &found, nil
	}
	return nil, fmt.Errorf("settings for %s not found: %w", userID, gorm.ErrRecordNotFound)
}

func (r *fakeSettingsRepo) Save(ctx context.Context, settings *entity.UserSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrites {
		return errWriteRefused
	}
	r.byUser[settings.UserID] = *settings
	return nil
}
