package service

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"barberbook/internal/domain/repository"
	"barberbook/internal/infrastructure/scheduler"
	"barberbook/internal/pkg/datekey"
	"barberbook/internal/pkg/logger"
)

const (
	defaultRetentionDays = 90
	// Nightly, well outside working hours.
	purgeCronSpec = "30 3 * * *"
)

type retentionService struct {
	scheduler *scheduler.Scheduler
	apptRepo  repository.AppointmentRepository
	days      int
	log       logger.Logger
}

// NewRetentionService creates a new instance of RetentionService
// implementation. The window is taken from the RETENTION_DAYS environment
// variable.
func NewRetentionService(sched *scheduler.Scheduler, apptRepo repository.AppointmentRepository, log logger.Logger) RetentionService {
	days := defaultRetentionDays
	if raw := os.Getenv("RETENTION_DAYS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			days = parsed
		} else {
			log.Warn(fmt.Sprintf("Invalid RETENTION_DAYS %q, defaulting to %d", raw, defaultRetentionDays))
		}
	}
	return &retentionService{
		scheduler: sched,
		apptRepo:  apptRepo,
		days:      days,
		log:       log,
	}
}

// Start registers the nightly purge job.
func (s *retentionService) Start() error {
	_, err := s.scheduler.AddJob(purgeCronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := s.PurgeOnce(ctx); err != nil {
			s.log.Error("Nightly retention purge failed", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule retention purge: %w", err)
	}
	s.log.Info(fmt.Sprintf("Retention purge scheduled (%s), window %d days", purgeCronSpec, s.days))
	return nil
}

// PurgeOnce removes appointments from day buckets older than the window.
func (s *retentionService) PurgeOnce(ctx context.Context) (int64, error) {
	cutoff := datekey.FromTime(time.Now().AddDate(0, 0, -s.days))
	removed, err := s.apptRepo.DeleteDaysBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.log.Info(fmt.Sprintf("Retention purge removed %d appointments before %s", removed, cutoff))
	}
	return removed, nil
}

// Stop stops the underlying scheduler.
func (s *retentionService) Stop() {
	s.scheduler.Stop()
}
