// Package scheduler drives the daily cycle: wake detection, the
// fixed-time fallback, the bounded retry, and the rollup triggers.
package scheduler

import (
	"context"
	"log"

	"github.com/jmcorreia/vitals/internal/provider"
	"github.com/jmcorreia/vitals/internal/storage"
	"github.com/jmcorreia/vitals/internal/syncer"
	"github.com/jmcorreia/vitals/internal/types"
)

// Reporter delivers the daily summary. Implemented by notify.Reporter.
type Reporter interface {
	SendDaily(ctx context.Context, date types.Date) error
}

// TickResult says what a poll tick did.
type TickResult int

const (
	// TickAlreadyReported means today's cycle is done; nothing to do.
	TickAlreadyReported TickResult = iota
	// TickNotReady means sleep data has not appeared yet. The
	// expected state before wake-up, not a failure.
	TickNotReady
	// TickWoken means availability was detected and the full cycle
	// ran.
	TickWoken
)

// WakeController detects wake-up by polling for completed sleep data
// and runs the sync+report cycle exactly once per day. It keeps no
// state of its own: every decision is a function of the clock, the
// attempt log, and the availability check, so a restart loses nothing.
type WakeController struct {
	store    storage.Store
	client   provider.Client
	syncer   *syncer.Syncer
	guard    *syncer.Guard
	reporter Reporter

	today func() types.Date
}

// NewWakeController creates a WakeController.
func NewWakeController(store storage.Store, client provider.Client, s *syncer.Syncer, reporter Reporter) *WakeController {
	return &WakeController{
		store:    store,
		client:   client,
		syncer:   s,
		guard:    syncer.NewGuard(store),
		reporter: reporter,
		today:    types.TodayUTC,
	}
}

// PollTick runs one wake-detection poll. Safe to call on every
// scheduler tick: it no-ops once a report went out, and a negative or
// erroring availability check just means "still sleeping".
//
// On detection the full cycle runs: sync, deliver the report, append
// report_sent. The report_sent entry is appended even when sync or
// delivery failed, so the day is closed either way and later ticks
// and the fallback stay quiet.
func (w *WakeController) PollTick(ctx context.Context) (TickResult, error) {
	reported, err := w.guard.ReportedToday(ctx)
	if err != nil {
		return TickNotReady, err
	}
	if reported {
		return TickAlreadyReported, nil
	}

	today := w.today()
	if !w.client.CheckDataAvailable(ctx, today) {
		return TickNotReady, nil
	}

	log.Printf("wake: sleep data detected for %s, running cycle", today)
	if _, err := w.syncer.SyncLatest(ctx); err != nil {
		log.Printf("wake: sync failed: %v", err)
	}
	if err := w.reporter.SendDaily(ctx, today.AddDays(-1)); err != nil {
		log.Printf("wake: report delivery failed: %v", err)
	}
	if err := w.store.AppendAttempt(ctx, types.AttemptReportSent, ""); err != nil {
		return TickWoken, err
	}
	return TickWoken, nil
}

// Fallback closes the detection window. When no report went out all
// morning it forces one sync with whatever data exists. Unlike the
// woken path it does not append report_sent and sends nothing: the
// user can still request the report explicitly once data shows up.
// Returns true when the forced sync ran.
func (w *WakeController) Fallback(ctx context.Context) (bool, error) {
	reported, err := w.guard.ReportedToday(ctx)
	if err != nil {
		return false, err
	}
	if reported {
		return false, nil
	}

	log.Printf("wake: window closed without detection, forcing sync")
	if _, err := w.syncer.SyncLatest(ctx); err != nil {
		log.Printf("wake: fallback sync failed: %v", err)
	}
	return true, nil
}
