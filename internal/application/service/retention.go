package service

import "context"

// RetentionService owns the housekeeping schedule: past day buckets older
// than the retention window are purged nightly. It never touches today or
// future days and never sends anything.
type RetentionService interface {
	// Start registers the nightly purge job.
	Start() error
	// PurgeOnce runs one purge immediately and returns the number of
	// removed appointment records.
	PurgeOnce(ctx context.Context) (int64, error)
	// Stop stops the underlying scheduler.
	Stop()
}
