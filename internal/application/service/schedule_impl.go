package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"barberbook/internal/application/dto"
	"barberbook/internal/domain/entity"
	"barberbook/internal/domain/repository"
	"barberbook/internal/pkg/datekey"
	appErrors "barberbook/internal/pkg/errors"
	"barberbook/internal/pkg/logger"
	"barberbook/internal/pkg/phone"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type scheduleService struct {
	apptRepo repository.AppointmentRepository
	daybook  DaybookService
	log      logger.Logger
}

// NewScheduleService creates a new instance of ScheduleService implementation.
func NewScheduleService(apptRepo repository.AppointmentRepository, daybook DaybookService, log logger.Logger) ScheduleService {
	return &scheduleService{
		apptRepo: apptRepo,
		daybook:  daybook,
		log:      log,
	}
}

// Create normalizes the raw phone, generates a fresh id and persists a new
// appointment record.
func (s *scheduleService) Create(ctx context.Context, userID, dateKey string, req dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if !datekey.Valid(dateKey) {
		return nil, appErrors.ErrInvalidDateKey
	}
	if !datekey.ValidTime(req.Time) {
		return nil, appErrors.ErrInvalidTime
	}

	canonical := phone.Normalize(req.Phone)
	if canonical == "" {
		return nil, appErrors.ErrInvalidContact
	}

	appt := &entity.Appointment{
		ID:      uuid.NewString(),
		UserID:  userID,
		DateKey: dateKey,
		Name:    strings.TrimSpace(req.Name),
		Phone:   canonical,
		Time:    req.Time,
	}
	if err := s.apptRepo.Create(ctx, appt); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create appointment in %s/%s", userID, dateKey), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrStoreWriteFailed, err)
	}
	s.log.Info(fmt.Sprintf("Created appointment %s at %s in %s/%s", appt.ID, appt.Time, userID, dateKey))

	s.daybook.Invalidate(userID, dateKey)
	resp := dto.ToAppointmentResponse(*appt)
	return &resp, nil
}

// EditTime updates only the time field of an existing record.
func (s *scheduleService) EditTime(ctx context.Context, userID, dateKey, id string, req dto.EditAppointmentTimeRequest) error {
	if !datekey.ValidTime(req.Time) {
		return appErrors.ErrInvalidTime
	}

	if err := s.apptRepo.UpdateTime(ctx, userID, dateKey, id, req.Time); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErrors.ErrAppointmentNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to reschedule appointment %s in %s/%s", id, userID, dateKey), err)
		return fmt.Errorf("%w: %v", appErrors.ErrStoreWriteFailed, err)
	}

	s.daybook.Invalidate(userID, dateKey)
	return nil
}

// Delete removes the record unconditionally.
func (s *scheduleService) Delete(ctx context.Context, userID, dateKey, id string) error {
	if err := s.apptRepo.Delete(ctx, userID, dateKey, id); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete appointment %s in %s/%s", id, userID, dateKey), err)
		return fmt.Errorf("%w: %v", appErrors.ErrStoreWriteFailed, err)
	}

	s.daybook.Invalidate(userID, dateKey)
	return nil
}

// DuplicateToNextWeek copies an appointment to the bucket seven calendar days
// later.
func (s *scheduleService) DuplicateToNextWeek(ctx context.Context, userID, dateKey, id string) (*dto.DuplicateResponse, error) {
	source, err := s.apptRepo.FindByID(ctx, userID, dateKey, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: %v", appErrors.ErrStoreReadFailed, err)
	}

	// Calendar arithmetic, not 168 hours, so the copy lands on the same
	// weekday even across a DST boundary.
	targetDate, err := datekey.AddDays(dateKey, 7)
	if err != nil {
		return nil, appErrors.ErrInvalidDateKey
	}

	copyAppt := &entity.Appointment{
		ID:      uuid.NewString(),
		UserID:  userID,
		DateKey: targetDate,
		Name:    source.Name,
		Phone:   source.Phone,
		Time:    source.Time,
		// Sent is never copied: the new day has not been dispatched.
	}
	if err := s.apptRepo.Create(ctx, copyAppt); err != nil {
		s.log.Error(fmt.Sprintf("Failed to duplicate appointment %s to %s/%s", id, userID, targetDate), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrStoreWriteFailed, err)
	}
	s.log.Info(fmt.Sprintf("Duplicated appointment %s into %s/%s as %s", id, userID, targetDate, copyAppt.ID))

	s.daybook.Invalidate(userID, targetDate)
	return &dto.DuplicateResponse{
		TargetDate:  targetDate,
		Appointment: dto.ToAppointmentResponse(*copyAppt),
	}, nil
}
