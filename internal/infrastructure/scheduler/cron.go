package scheduler

import (
	"fmt"
	"sync"

	"barberbook/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron jobs. In this service it only drives housekeeping
// work (the nightly retention purge); reminder sending is never scheduled,
// it always requires an explicit user action.
type Scheduler struct {
	cron *cron.Cron
	log  logger.Logger
	mu   sync.Mutex
}

var (
	schedulerInstance *Scheduler
	once              sync.Once
)

// NewScheduler creates a new singleton instance of the cron scheduler.
func NewScheduler(log logger.Logger) *Scheduler {
	once.Do(func() {
		c := cron.New()
		c.Start()
		log.Info("Cron scheduler started.")
		schedulerInstance = &Scheduler{
			cron: c,
			log:  log,
		}
	})
	return schedulerInstance
}

// AddJob adds a new job to the scheduler using the standard cron spec format
// (e.g. "30 3 * * *"). Returns the EntryID of the added job.
func (s *Scheduler) AddJob(spec string, cmd func()) (cron.EntryID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(spec, cmd)
	if err != nil {
		s.log.Error("Failed to add cron job", err)
		return 0, fmt.Errorf("failed to add cron job: %w", err)
	}
	s.log.Info(fmt.Sprintf("Added cron job with ID %d, spec: %s", id, spec))
	return id, nil
}

// RemoveJob removes a job from the scheduler by its EntryID.
func (s *Scheduler) RemoveJob(id cron.EntryID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cron.Remove(id)
	s.log.Info(fmt.Sprintf("Removed cron job with ID %d", id))
}

// Stop stops the cron scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.log.Info("Cron scheduler stopped.")
	}
}
