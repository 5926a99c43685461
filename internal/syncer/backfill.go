package syncer

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/jmcorreia/vitals/internal/storage"
	"github.com/jmcorreia/vitals/internal/types"
)

const (
	// StartupLookbackDays is the reconciliation window checked on
	// startup. Long enough to cover a weekend outage plus slack,
	// short enough to keep the provider call budget small.
	StartupLookbackDays = 7

	// MaxBackfillDays caps any single reconciliation pass.
	MaxBackfillDays = 30
)

// backfillInterval spaces historical fetches so a burst of missing
// days cannot trip the provider's rate limiting.
var backfillInterval = rate.Every(2 * time.Second)

// Backfiller finds and fills gaps in the daily record left by
// downtime or failed syncs.
type Backfiller struct {
	store   storage.Store
	syncer  *Syncer
	limiter *rate.Limiter
}

// NewBackfiller creates a Backfiller sharing the syncer's pipeline.
func NewBackfiller(store storage.Store, syncer *Syncer) *Backfiller {
	return &Backfiller{
		store:   store,
		syncer:  syncer,
		limiter: rate.NewLimiter(backfillInterval, 1),
	}
}

// MissingDates returns the dates in [start, end] with no stored daily
// record, in ascending order. A date counts as present as soon as a
// record row exists, even an all-null one: re-fetching a day the
// provider has no data for would just burn quota every pass.
func (b *Backfiller) MissingDates(ctx context.Context, start, end types.Date) ([]types.Date, error) {
	if end.Before(start) {
		return nil, nil
	}

	records, err := b.store.GetRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("load stored range: %w", err)
	}
	present := make(map[string]bool, len(records))
	for _, r := range records {
		present[r.Date.String()] = true
	}

	var missing []types.Date
	for d := start; !d.After(end); d = d.AddDays(1) {
		if !present[d.String()] {
			missing = append(missing, d)
		}
	}
	return missing, nil
}

// Reconcile syncs the given dates oldest-first, spacing fetches with
// the limiter. Each date is independent: one failure is logged and the
// pass moves on. Returns how many dates were filled and the first
// error encountered, if any.
func (b *Backfiller) Reconcile(ctx context.Context, dates []types.Date) (int, error) {
	if len(dates) > MaxBackfillDays {
		log.Printf("backfill: capping pass at %d of %d missing dates", MaxBackfillDays, len(dates))
		dates = dates[:MaxBackfillDays]
	}

	var filled int
	var firstErr error
	for _, date := range dates {
		if err := b.limiter.Wait(ctx); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			break
		}
		if _, err := b.syncer.SyncDate(ctx, date); err != nil {
			log.Printf("backfill: sync for %s failed: %v", date, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		filled++
	}
	return filled, firstErr
}

// ReconcileWindow reconciles the lookback window ending yesterday.
// Called on startup with StartupLookbackDays; today is excluded since
// the normal morning trigger owns it.
func (b *Backfiller) ReconcileWindow(ctx context.Context, days int) (int, error) {
	end := types.TodayUTC().AddDays(-1)
	start := end.AddDays(-(days - 1))

	missing, err := b.MissingDates(ctx, start, end)
	if err != nil {
		return 0, err
	}
	if len(missing) == 0 {
		return 0, nil
	}
	log.Printf("backfill: %d missing dates in the last %d days", len(missing), days)
	return b.Reconcile(ctx, missing)
}
