package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"barberbook/internal/application/dto"
	"barberbook/internal/domain/constant"
	"barberbook/internal/domain/entity"
	"barberbook/internal/domain/repository"
	"barberbook/internal/infrastructure/dispatch"
	appErrors "barberbook/internal/pkg/errors"
	"barberbook/internal/pkg/logger"
	"barberbook/internal/pkg/message"

	"gorm.io/gorm"
)

type dispatchSession struct {
	state    constant.DispatchState
	locked   bool // derived lock at RequestSend time
	progress dto.DispatchProgress
	message  string
}

type dispatchService struct {
	apptRepo repository.AppointmentRepository
	settings SettingsService
	client   *dispatch.Client
	log      logger.Logger

	mu        sync.Mutex
	sessions  map[string]*dispatchSession // topic -> state machine
	attempted map[string]map[string]bool  // userID -> canonical phone -> manual attempt
}

// NewDispatchService creates a new instance of DispatchService implementation.
func NewDispatchService(
	apptRepo repository.AppointmentRepository,
	settings SettingsService,
	client *dispatch.Client,
	log logger.Logger,
) DispatchService {
	return &dispatchService{
		apptRepo:  apptRepo,
		settings:  settings,
		client:    client,
		log:       log,
		sessions:  make(map[string]*dispatchSession),
		attempted: make(map[string]map[string]bool),
	}
}

func topicKey(userID, dateKey string) string {
	return userID + "/" + dateKey
}

func (s *dispatchService) session(userID, dateKey string) *dispatchSession {
	key := topicKey(userID, dateKey)
	sess, ok := s.sessions[key]
	if !ok {
		sess = &dispatchSession{state: constant.DispatchIdle}
		s.sessions[key] = sess
	}
	return sess
}

// RequestSend opens the confirmation stage.
func (s *dispatchService) RequestSend(ctx context.Context, userID, dateKey string) (*dto.DispatchStatus, error) {
	appts, err := s.apptRepo.FindByUserAndDate(ctx, userID, dateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErrors.ErrStoreReadFailed, err)
	}
	// The gate decision uses the derived lock, never the session's
	// suppressed UI indicator.
	locked := entity.IsLocked(appts)

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(userID, dateKey)
	switch sess.state {
	case constant.DispatchSending:
		return nil, appErrors.ErrDispatchBusy
	case constant.DispatchIdle, constant.DispatchConfirming:
		// re-requesting while confirming just refreshes the lock reading
	default:
		return nil, appErrors.ErrDispatchState
	}
	sess.state = constant.DispatchConfirming
	sess.locked = locked
	return s.statusLocked(sess), nil
}

// Confirm executes the bulk send.
func (s *dispatchService) Confirm(ctx context.Context, userID, dateKey string, resendAck bool) (*dto.DispatchStatus, error) {
	s.mu.Lock()
	sess := s.session(userID, dateKey)
	switch sess.state {
	case constant.DispatchSending:
		s.mu.Unlock()
		return nil, appErrors.ErrDispatchBusy
	case constant.DispatchConfirming:
	default:
		s.mu.Unlock()
		return nil, appErrors.ErrDispatchState
	}

	if sess.locked && !resendAck {
		// Second gate: the day was already dispatched once.
		status := s.statusLocked(sess)
		status.NeedsResendConfirm = true
		s.mu.Unlock()
		s.log.Info(fmt.Sprintf("Resend confirmation required for %s/%s", userID, dateKey))
		return status, nil
	}

	// Progress from any previous operation is stale the moment a new send
	// starts.
	sess.state = constant.DispatchSending
	sess.progress = dto.DispatchProgress{}
	sess.message = ""
	s.mu.Unlock()

	template, _ := s.settings.ResolveTemplate(ctx, userID)
	result, sendErr := s.client.SendMessages(ctx, dispatch.SendRequest{
		UID:      userID,
		Date:     dateKey,
		Template: template,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if sendErr != nil {
		sess.state = constant.DispatchIdle
		status := s.statusLocked(sess)
		status.State = constant.DispatchFailed.String()
		// The lock reading belongs to this attempt; the next RequestSend
		// rereads the bucket.
		sess.locked = false
		if errors.Is(sendErr, appErrors.ErrDispatchConnectivity) {
			s.log.Warn(fmt.Sprintf("Dispatch for %s/%s failed: no response from reminder service", userID, dateKey))
		} else {
			s.log.Warn(fmt.Sprintf("Dispatch for %s/%s failed: %v", userID, dateKey, sendErr))
		}
		return status, sendErr
	}

	sess.state = constant.DispatchIdle
	sess.progress = dto.DispatchProgress{Sent: result.Sent, Total: result.Total}
	sess.message = result.Message
	status := s.statusLocked(sess)
	status.State = constant.DispatchCompleted.String()
	sess.locked = false
	return status, nil
}

// Cancel dismisses an open confirmation.
func (s *dispatchService) Cancel(userID, dateKey string) (*dto.DispatchStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.session(userID, dateKey)
	if sess.state == constant.DispatchSending {
		return nil, appErrors.ErrDispatchBusy
	}
	sess.state = constant.DispatchIdle
	sess.locked = false
	return s.statusLocked(sess), nil
}

// Status reports the current state.
func (s *dispatchService) Status(userID, dateKey string) *dto.DispatchStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked(s.session(userID, dateKey))
}

// statusLocked snapshots a session; callers hold s.mu.
func (s *dispatchService) statusLocked(sess *dispatchSession) *dto.DispatchStatus {
	return &dto.DispatchStatus{
		State:    sess.state.String(),
		Locked:   sess.locked,
		Progress: sess.progress,
		Message:  sess.message,
	}
}

// ComposeManual renders the manual single-message fallback for one
// appointment.
func (s *dispatchService) ComposeManual(ctx context.Context, userID, dateKey, id string) (*dto.ComposeResponse, error) {
	appt, err := s.apptRepo.FindByID(ctx, userID, dateKey, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: %v", appErrors.ErrStoreReadFailed, err)
	}
	if appt.Phone == "" {
		return nil, appErrors.ErrInvalidContact
	}

	template, barber := s.settings.ResolveTemplate(ctx, userID)
	body := message.Render(template, message.Vars{
		Name:   appt.Name,
		Time:   appt.Time,
		Barber: barber,
	})

	s.mu.Lock()
	if s.attempted[userID] == nil {
		s.attempted[userID] = make(map[string]bool)
	}
	s.attempted[userID][appt.Phone] = true
	s.mu.Unlock()

	return &dto.ComposeResponse{
		Phone: appt.Phone,
		Body:  body,
		URI:   "sms:" + appt.Phone + "?body=" + smsEscape(body),
	}, nil
}

// smsEscape percent-encodes a message body for an sms: URI. A literal '+'
// is not a space there (RFC 5724), so form encoding alone would corrupt
// word separators.
func smsEscape(body string) string {
	return strings.ReplaceAll(url.QueryEscape(body), "+", "%20")
}

// Attempted reports the session-local manual attempt flag.
func (s *dispatchService) Attempted(userID, canonicalPhone string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempted[userID][canonicalPhone]
}
