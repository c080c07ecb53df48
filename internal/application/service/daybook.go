package service

import (
	"barberbook/internal/application/dto"
	"context"
)

// SnapshotFunc receives the wholesale day projection on every change.
type SnapshotFunc func(dto.DaySnapshot)

// DaybookWatch is one live subscription to a day bucket. A watch observes at
// most one (userID, dateKey) at a time; SetDay atomically releases the
// previous subscription before establishing the new one, so observers can
// never leak data across days.
type DaybookWatch interface {
	// SetDay points the watch at a bucket and immediately delivers an
	// initial snapshot, then one snapshot per subsequent change.
	SetDay(ctx context.Context, userID, dateKey string) error
	// Close releases the active subscription, if any.
	Close()
}

// DaybookService maintains the authoritative day-bucket projection: sorted
// appointment lists with their derived lock state.
type DaybookService interface {
	// Snapshot builds the current projection of one bucket: appointments
	// sorted ascending by time (stable), lock state recomputed from the set.
	// Malformed persisted records are logged and excluded, never fatal.
	Snapshot(ctx context.Context, userID, dateKey string) (*dto.DaySnapshot, error)
	// NewWatch creates an idle watch that will feed snapshots to onSnapshot.
	NewWatch(onSnapshot SnapshotFunc) DaybookWatch
	// Invalidate signals every watcher of a bucket after a mutation and
	// lifts any session lock suppression, so a derived lock resurfaces.
	Invalidate(userID, dateKey string)
	// SuppressLock hides the lock flag for the current session only. No sent
	// flag is touched; the next snapshot that still contains a sent
	// appointment locks the day again.
	SuppressLock(userID, dateKey string)
}
