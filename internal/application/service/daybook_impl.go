package service

import (
	"context"
	"fmt"
	"sync"

	"barberbook/internal/application/dto"
	"barberbook/internal/domain/entity"
	"barberbook/internal/domain/repository"
	"barberbook/internal/infrastructure/realtime"
	"barberbook/internal/pkg/logger"
)

type daybookService struct {
	apptRepo repository.AppointmentRepository
	hub      *realtime.Hub
	log      logger.Logger

	mu         sync.Mutex
	suppressed map[string]bool // topic -> lock hidden for this session
}

// NewDaybookService creates a new instance of DaybookService implementation.
func NewDaybookService(apptRepo repository.AppointmentRepository, hub *realtime.Hub, log logger.Logger) DaybookService {
	return &daybookService{
		apptRepo:   apptRepo,
		hub:        hub,
		log:        log,
		suppressed: make(map[string]bool),
	}
}

// Snapshot builds the current projection of one bucket.
func (s *daybookService) Snapshot(ctx context.Context, userID, dateKey string) (*dto.DaySnapshot, error) {
	appts, err := s.apptRepo.FindByUserAndDate(ctx, userID, dateKey)
	if err != nil {
		return nil, err
	}

	// Drop records the persistence layer should never have produced: an
	// appointment without a time cannot be sorted, one without a phone
	// cannot be dispatched. Exclusion keeps the projection usable in the
	// face of partial data corruption.
	kept := make([]entity.Appointment, 0, len(appts))
	for _, a := range appts {
		if a.Time == "" || a.Phone == "" {
			s.log.Warn(fmt.Sprintf("Excluding malformed appointment %s in %s/%s (time=%q, phone present=%t)",
				a.ID, userID, dateKey, a.Time, a.Phone != ""))
			continue
		}
		kept = append(kept, a)
	}

	bucket := entity.NewDayBucket(userID, dateKey, kept)
	locked := bucket.Locked()

	topic := realtime.Topic(userID, dateKey)
	s.mu.Lock()
	if s.suppressed[topic] {
		locked = false
	}
	s.mu.Unlock()

	return &dto.DaySnapshot{
		UserID:       userID,
		Date:         dateKey,
		Count:        len(bucket.Appointments),
		Locked:       locked,
		Appointments: dto.ToAppointmentResponseList(bucket.Appointments),
	}, nil
}

// Invalidate signals watchers of a bucket and lifts lock suppression.
func (s *daybookService) Invalidate(userID, dateKey string) {
	topic := realtime.Topic(userID, dateKey)
	s.mu.Lock()
	delete(s.suppressed, topic)
	s.mu.Unlock()
	s.hub.Publish(topic)
}

// SuppressLock hides the lock flag until the next change notification.
func (s *daybookService) SuppressLock(userID, dateKey string) {
	s.mu.Lock()
	s.suppressed[realtime.Topic(userID, dateKey)] = true
	s.mu.Unlock()
	s.log.Info(fmt.Sprintf("Lock indicator suppressed for %s/%s (session only, sent flags untouched)", userID, dateKey))
}

// NewWatch creates an idle watch.
func (s *daybookService) NewWatch(onSnapshot SnapshotFunc) DaybookWatch {
	return &daybookWatch{svc: s, onSnapshot: onSnapshot}
}

type daybookWatch struct {
	svc        *daybookService
	onSnapshot SnapshotFunc

	mu     sync.Mutex
	handle *realtime.Handle
	cancel context.CancelFunc
	done   chan struct{}
}

// SetDay atomically re-points the watch at a new bucket.
func (w *daybookWatch) SetDay(ctx context.Context, userID, dateKey string) error {
	w.mu.Lock()
	w.teardownLocked()

	watchCtx, cancel := context.WithCancel(ctx)
	handle := w.svc.hub.Subscribe(realtime.Topic(userID, dateKey))
	done := make(chan struct{})
	w.handle = handle
	w.cancel = cancel
	w.done = done
	w.mu.Unlock()

	// Initial snapshot before any change events, mirroring the subscription
	// semantics of the realtime store.
	snap, err := w.svc.Snapshot(watchCtx, userID, dateKey)
	if err != nil {
		w.Close()
		return err
	}
	w.onSnapshot(*snap)

	go func() {
		defer close(done)
		for {
			select {
			case <-watchCtx.Done():
				return
			case _, ok := <-handle.C():
				if !ok {
					return
				}
				snap, err := w.svc.Snapshot(watchCtx, userID, dateKey)
				if err != nil {
					w.svc.log.Error(fmt.Sprintf("Failed to rebuild snapshot for %s/%s", userID, dateKey), err)
					continue
				}
				w.onSnapshot(*snap)
			}
		}
	}()
	return nil
}

// Close releases the active subscription, if any.
func (w *daybookWatch) Close() {
	w.mu.Lock()
	w.teardownLocked()
	w.mu.Unlock()
}

// teardownLocked releases the current subscription and waits for its pump
// goroutine to exit, so no stale snapshot can ever follow a day switch.
func (w *daybookWatch) teardownLocked() {
	if w.handle == nil {
		return
	}
	w.cancel()
	w.handle.Cancel()
	<-w.done
	w.handle = nil
	w.cancel = nil
	w.done = nil
}
