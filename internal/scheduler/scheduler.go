package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jmcorreia/vitals/internal/config"
	"github.com/jmcorreia/vitals/internal/storage"
	"github.com/jmcorreia/vitals/internal/syncer"
	"github.com/jmcorreia/vitals/internal/types"
)

// ReportSender delivers all three rollups. Implemented by
// notify.Reporter.
type ReportSender interface {
	Reporter
	SendWeekly(ctx context.Context, end types.Date) error
	SendMonthly(ctx context.Context, end types.Date) error
}

// FailureAlerter surfaces trigger failures to the user, deduplicated
// per trigger type. Implemented by notify.FailureAlerter.
type FailureAlerter interface {
	AlertFailure(ctx context.Context, trigger string, cause error)
}

// triggerTimeout bounds one trigger invocation. A stuck provider call
// stalls its own trigger, not the process.
const triggerTimeout = 5 * time.Minute

// Scheduler runs the timer-driven triggers: wake polling and its
// fallback (wake mode), or the fixed sync, its report, and the single
// retry (fixed mode), plus the weekly and monthly rollups in both
// modes. All triggers execute sequentially on one goroutine, so a
// trigger still running when its next tick arrives is coalesced by
// construction.
type Scheduler struct {
	cfg       *config.Schedule
	wake      *WakeController
	retry     *RetryController
	syncer    *syncer.Syncer
	guard     *syncer.Guard
	store     storage.Store
	reporter  ReportSender
	alerter   FailureAlerter
	backupDir string

	// clock is injectable for tests.
	clock        func() time.Time
	tickInterval time.Duration

	// firedOn tracks the last day each once-per-day trigger ran.
	firedOn  map[string]types.Date
	lastPoll time.Time

	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a Scheduler. cfg must be validated.
func New(cfg *config.Schedule, store storage.Store, s *syncer.Syncer, wake *WakeController, retry *RetryController, reporter ReportSender) *Scheduler {
	return &Scheduler{
		cfg:          cfg,
		wake:         wake,
		retry:        retry,
		syncer:       s,
		guard:        syncer.NewGuard(store),
		store:        store,
		reporter:     reporter,
		clock:        time.Now,
		tickInterval: 30 * time.Second,
		firedOn:      map[string]types.Date{},
	}
}

// SetFailureAlerter enables per-trigger failure notifications. Without
// one, trigger failures go to the log only.
func (s *Scheduler) SetFailureAlerter(alerter FailureAlerter) {
	s.alerter = alerter
}

// SetBackupDir enables a database snapshot after each weekly report.
// Empty disables backups.
func (s *Scheduler) SetBackupDir(dir string) {
	s.backupDir = dir
}

// Start begins the trigger loop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	s.wg.Add(1)
	go s.loop()

	log.Printf("scheduler: started (mode=%s)", s.cfg.Mode)
	return nil
}

// Stop drains the scheduler: no new triggers fire, and an in-flight
// trigger finishes and appends its log entry before Stop returns.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	log.Printf("scheduler: stopping")
	s.cancel()
	s.running = false
	s.wg.Wait()
	log.Printf("scheduler: stopped")
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	timer := time.NewTimer(s.tickInterval)
	defer timer.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-timer.C:
			s.runDue(s.clock())
			timer.Reset(s.tickInterval)
		}
	}
}

// runDue fires every trigger whose time has come. Triggers get a
// context detached from the scheduler's own so that shutdown lets the
// in-flight one complete its store writes.
func (s *Scheduler) runDue(now time.Time) {
	day := types.NewDate(now)
	minute := now.Hour()*60 + now.Minute()

	if s.cfg.Mode == config.ModeWake {
		s.runWakeTriggers(now, day, minute)
	} else {
		s.runFixedTriggers(day, minute)
	}

	if now.Weekday() == s.cfg.WeeklyWeekday() && minute >= s.cfg.WeeklyAt().MinuteOfDay() {
		s.runOncePerDay("weekly", day, func(ctx context.Context) error {
			if err := s.reporter.SendWeekly(ctx, day.AddDays(-1)); err != nil {
				return err
			}
			s.runBackup(ctx)
			return nil
		})
	}
	if now.Day() == s.cfg.MonthlyReportDay && minute >= s.cfg.MonthlyAt().MinuteOfDay() {
		s.runOncePerDay("monthly", day, func(ctx context.Context) error {
			return s.reporter.SendMonthly(ctx, day.AddDays(-1))
		})
	}
}

func (s *Scheduler) runWakeTriggers(now time.Time, day types.Date, minute int) {
	inWindow := minute >= s.cfg.WindowStart().MinuteOfDay() && minute < s.cfg.WindowEnd().MinuteOfDay()
	if inWindow && now.Sub(s.lastPoll) >= s.cfg.PollInterval() {
		s.lastPoll = now
		s.runTrigger("wake-poll", func(ctx context.Context) error {
			_, err := s.wake.PollTick(ctx)
			return err
		})
	}

	if minute >= s.cfg.WindowEnd().MinuteOfDay() {
		s.runOncePerDay("wake-fallback", day, func(ctx context.Context) error {
			_, err := s.wake.Fallback(ctx)
			return err
		})
	}
}

func (s *Scheduler) runFixedTriggers(day types.Date, minute int) {
	if minute >= s.cfg.SyncAt().MinuteOfDay() {
		s.runOncePerDay("sync", day, func(ctx context.Context) error {
			_, err := s.syncer.SyncLatest(ctx)
			return err
		})
	}

	retryAt := s.cfg.SyncAt().MinuteOfDay() + s.cfg.RetryDelayMinutes
	if minute >= retryAt {
		s.runOncePerDay("retry", day, func(ctx context.Context) error {
			_, err := s.retry.Fire(ctx)
			return err
		})
	}

	if minute >= s.cfg.ReportAt().MinuteOfDay() {
		s.runOncePerDay("report", day, func(ctx context.Context) error {
			return s.sendFixedReport(ctx, day)
		})
	}
}

// runBackup snapshots the database after the weekly rollup. Backup
// failures are logged, never escalated: the report already went out.
func (s *Scheduler) runBackup(ctx context.Context) {
	if s.backupDir == "" {
		return
	}
	path, err := s.store.Backup(ctx, s.backupDir)
	if err != nil {
		log.Printf("scheduler: weekly backup failed: %v", err)
		return
	}
	log.Printf("scheduler: weekly backup written to %s", path)
}

// sendFixedReport delivers the daily report at the fixed time. Guarded
// by the attempt log, not just firedOn, so a same-day restart cannot
// send a second report.
func (s *Scheduler) sendFixedReport(ctx context.Context, day types.Date) error {
	reported, err := s.guard.ReportedToday(ctx)
	if err != nil {
		return err
	}
	if reported {
		return nil
	}
	if err := s.reporter.SendDaily(ctx, day.AddDays(-1)); err != nil {
		log.Printf("scheduler: daily report delivery failed: %v", err)
	}
	return s.store.AppendAttempt(ctx, types.AttemptReportSent, "")
}

// runOncePerDay fires the named trigger at most once per calendar day.
func (s *Scheduler) runOncePerDay(name string, day types.Date, fn func(context.Context) error) {
	if s.firedOn[name] == day {
		return
	}
	s.firedOn[name] = day
	s.runTrigger(name, fn)
}

// runTrigger executes one trigger with a bounded, detached context.
// Trigger errors never propagate: they are logged and the next tick
// proceeds.
func (s *Scheduler) runTrigger(name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), triggerTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		log.Printf("scheduler: trigger %s failed: %v", name, err)
		if s.alerter != nil {
			s.alerter.AlertFailure(ctx, name, err)
		}
	}
}
