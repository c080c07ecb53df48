package service

import (
	"barberbook/internal/application/dto"
	"context"
)

// DispatchService orchestrates the user-confirmed bulk send of reminder
// messages for one day bucket. The state machine per bucket is
// Idle -> Confirming -> Sending -> {Completed, Failed} -> Idle; nothing is
// ever sent without an explicit confirmation, and a day already marked sent
// demands a second one. The external reminder service is the sole authority
// that marks individual appointments sent.
type DispatchService interface {
	// RequestSend opens the confirmation stage and reports whether the
	// bucket is locked, so the caller knows the resend gate applies.
	RequestSend(ctx context.Context, userID, dateKey string) (*dto.DispatchStatus, error)
	// Confirm executes the bulk send. For a locked bucket it refuses until
	// called with resendAck set (the "already sent, send again?" gate).
	// Exactly one HTTP call is made per send; progress is recorded whole
	// from the server summary, never incremented appointment by appointment.
	Confirm(ctx context.Context, userID, dateKey string, resendAck bool) (*dto.DispatchStatus, error)
	// Cancel dismisses an open confirmation and returns the bucket to Idle.
	Cancel(userID, dateKey string) (*dto.DispatchStatus, error)
	// Status reports the current state and the last recorded progress.
	Status(userID, dateKey string) *dto.DispatchStatus
	// ComposeManual renders the user's template for one appointment and
	// returns a prefilled native messaging composer URI. Marks only a
	// session-local attempted flag keyed by phone.
	ComposeManual(ctx context.Context, userID, dateKey, id string) (*dto.ComposeResponse, error)
	// Attempted reports whether a manual composer was opened for this phone
	// during the current session.
	Attempted(userID, canonicalPhone string) bool
}
