package scheduler

import (
	"context"
	"log"

	"github.com/jmcorreia/vitals/internal/storage"
	"github.com/jmcorreia/vitals/internal/syncer"
)

// RetryController is the single bounded retry used in fixed-time
// mode. It fires once, at a configured offset after the primary sync,
// and only when no sync succeeded today. There is no backoff loop:
// failures past this retry surface through the attempt log only.
type RetryController struct {
	guard  *syncer.Guard
	syncer *syncer.Syncer
}

// NewRetryController creates a RetryController.
func NewRetryController(store storage.Store, s *syncer.Syncer) *RetryController {
	return &RetryController{
		guard:  syncer.NewGuard(store),
		syncer: s,
	}
}

// Fire runs the retry. Returns false when it was a no-op because a
// sync already succeeded today.
func (r *RetryController) Fire(ctx context.Context) (bool, error) {
	synced, err := r.guard.SyncedToday(ctx)
	if err != nil {
		return false, err
	}
	if synced {
		log.Printf("retry: skipped, already synced today")
		return false, nil
	}

	log.Printf("retry: running deferred sync")
	_, err = r.syncer.SyncLatest(ctx)
	return true, err
}
