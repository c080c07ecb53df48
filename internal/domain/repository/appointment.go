package repository

import (
	"barberbook/internal/domain/entity"
	"context"
)

// AppointmentRepository defines the interface for appointment data operations.
// Records live under the logical path appointments/{userID}/{dateKey}/{id}.
type AppointmentRepository interface {
	// FindByID retrieves one appointment within a user's day bucket.
	FindByID(ctx context.Context, userID, dateKey, id string) (*entity.Appointment, error)
	// FindByUserAndDate retrieves every appointment of one (userID, dateKey)
	// bucket, in no particular order.
	FindByUserAndDate(ctx context.Context, userID, dateKey string) ([]entity.Appointment, error)
	// Create persists a new appointment record.
	Create(ctx context.Context, appt *entity.Appointment) error
	// UpdateTime updates only the time field of an existing record.
	UpdateTime(ctx context.Context, userID, dateKey, id, newTime string) error
	// Delete removes a record unconditionally.
	Delete(ctx context.Context, userID, dateKey, id string) error
	// DeleteDaysBefore removes every appointment whose date key precedes
	// cutoff. Used by the retention purge.
	DeleteDaysBefore(ctx context.Context, cutoff string) (int64, error)
}
