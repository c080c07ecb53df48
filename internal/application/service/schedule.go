package service

import (
	"barberbook/internal/application/dto"
	"context"
)

// ScheduleService defines the interface for appointment lifecycle mutations.
// Mutations become visible through the next day-bucket snapshot, not
// immediately; nothing here retries on failure, that stays a user decision.
type ScheduleService interface {
	// Create normalizes the raw phone, generates a fresh id and writes a
	// new appointment record into the (userID, dateKey) bucket.
	Create(ctx context.Context, userID, dateKey string, req dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	// EditTime updates only the time field of an existing record. Editing a
	// locked day is UI policy, deliberately not enforced here.
	EditTime(ctx context.Context, userID, dateKey, id string, req dto.EditAppointmentTimeRequest) error
	// Delete removes the record unconditionally.
	Delete(ctx context.Context, userID, dateKey, id string) error
	// DuplicateToNextWeek copies an appointment to the bucket exactly seven
	// calendar days later, with a fresh id and without the sent flag.
	DuplicateToNextWeek(ctx context.Context, userID, dateKey, id string) (*dto.DuplicateResponse, error)
}
