package sqlite

import (
	"barberbook/internal/domain/entity"
	"barberbook/internal/domain/repository"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new instance of AppointmentRepository.
func NewAppointmentRepository(db *gorm.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

// FindByID retrieves one appointment within a user's day bucket.
func (r *appointmentRepository) FindByID(ctx context.Context, userID, dateKey, id string) (*entity.Appointment, error) {
	var appt entity.Appointment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date_key = ? AND id = ?", userID, dateKey, id).
		First(&appt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("appointment %s not found in %s/%s: %w", id, userID, dateKey, err)
		}
		return nil, fmt.Errorf("failed to find appointment %s: %w", id, err)
	}
	return &appt, nil
}

// FindByUserAndDate retrieves every appointment of one (userID, dateKey) bucket.
func (r *appointmentRepository) FindByUserAndDate(ctx context.Context, userID, dateKey string) ([]entity.Appointment, error) {
	var appts []entity.Appointment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date_key = ?", userID, dateKey).
		Find(&appts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load day bucket %s/%s: %w", userID, dateKey, err)
	}
	return appts, nil
}

// Create persists a new appointment record.
func (r *appointmentRepository) Create(ctx context.Context, appt *entity.Appointment) error {
	if err := r.db.WithContext(ctx).Create(appt).Error; err != nil {
		return fmt.Errorf("failed to create appointment for user %s: %w", appt.UserID, err)
	}
	return nil
}

// UpdateTime updates only the time field of an existing record.
func (r *appointmentRepository) UpdateTime(ctx context.Context, userID, dateKey, id, newTime string) error {
	res := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("user_id = ? AND date_key = ? AND id = ?", userID, dateKey, id).
		Update("time", newTime)
	if res.Error != nil {
		return fmt.Errorf("failed to update time of appointment %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("appointment %s not found in %s/%s: %w", id, userID, dateKey, gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes a record unconditionally.
func (r *appointmentRepository) Delete(ctx context.Context, userID, dateKey, id string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date_key = ? AND id = ?", userID, dateKey, id).
		Delete(&entity.Appointment{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete appointment %s: %w", id, err)
	}
	return nil
}

// DeleteDaysBefore removes every appointment whose date key precedes cutoff.
// Date keys are zero-padded YYYY-MM-DD strings, so lexicographic comparison
// matches calendar order.
func (r *appointmentRepository) DeleteDaysBefore(ctx context.Context, cutoff string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("date_key < ?", cutoff).
		Delete(&entity.Appointment{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge appointments before %s: %w", cutoff, res.Error)
	}
	return res.RowsAffected, nil
}
