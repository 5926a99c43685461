package syncer

import (
	"context"

	"github.com/jmcorreia/vitals/internal/storage"
	"github.com/jmcorreia/vitals/internal/types"
)

// Guard answers "has X already happened today" from the append-only
// attempt log. There is no separate flag to keep in sync: the log is
// the single source of truth and a day boundary (UTC midnight) resets
// the answers implicitly.
type Guard struct {
	store storage.Store
}

// NewGuard creates a Guard over the given store.
func NewGuard(store storage.Store) *Guard {
	return &Guard{store: store}
}

// SyncedToday reports whether a successful sync attempt exists today.
// Partial and error attempts do not count: days with no usable data
// stay eligible for retry.
func (g *Guard) SyncedToday(ctx context.Context) (bool, error) {
	return g.store.HasAttemptToday(ctx, types.AttemptSuccess)
}

// ReportedToday reports whether a report was already delivered today.
// Tracked independently of sync success: a sync can succeed without a
// report going out, and each can be retried without re-doing the other.
func (g *Guard) ReportedToday(ctx context.Context) (bool, error) {
	return g.store.HasAttemptToday(ctx, types.AttemptReportSent)
}
