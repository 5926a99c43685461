// Package syncer implements the fetch -> normalize -> store -> log
// pipeline and the derived-state queries built on the attempt log.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jmcorreia/vitals/internal/provider"
	"github.com/jmcorreia/vitals/internal/storage"
	"github.com/jmcorreia/vitals/internal/types"
)

// Syncer runs the sync pipeline. Fetches within one invocation are
// sequential; the provider applies aggressive rate limiting and calls
// are never parallelized.
type Syncer struct {
	store  storage.Store
	client provider.Client

	// today returns the current UTC calendar day. Injectable for tests.
	today func() types.Date
}

// New creates a Syncer.
func New(store storage.Store, client provider.Client) *Syncer {
	return &Syncer{
		store:  store,
		client: client,
		today:  types.TodayUTC,
	}
}

// SyncLatest syncs last night's sleep and yesterday's activity.
//
// The provider assigns overnight sleep to the date the user woke up,
// so "last night's sleep" is fetched under today's date. Activity and
// wellness belong to the day they happened and are fetched under
// yesterday. Everything is stored under yesterday - the day being
// reported.
//
// The appended attempt is success when any usable data came back,
// partial otherwise. Fatal failures append an error attempt and are
// returned to the caller; they never propagate past the trigger
// boundary.
func (s *Syncer) SyncLatest(ctx context.Context) (types.AttemptStatus, error) {
	today := s.today()
	reportDate := today.AddDays(-1)

	sleep, err := s.fetchSleep(ctx, today)
	if fatal(err) {
		return s.fail(ctx, fmt.Errorf("sleep fetch: %w", err))
	}
	return s.finishSync(ctx, reportDate, sleep)
}

// SyncDate syncs a specific historical date.
//
// For past days the exact wake-up date is unknowable from this data
// source: sleep is stored under the wake-up date, which for date D is
// usually D+1 but not always. The lookup tries D+1 first and falls
// back to D when D+1 has no usable duration. This heuristic is a
// deliberate best-effort approximation of an upstream quirk, not a
// bug to fix.
func (s *Syncer) SyncDate(ctx context.Context, date types.Date) (types.AttemptStatus, error) {
	var sleep *provider.SleepData
	for _, sleepDate := range []types.Date{date.AddDays(1), date} {
		candidate, err := s.client.FetchSleep(ctx, sleepDate)
		if fatal(err) {
			return s.fail(ctx, fmt.Errorf("sleep fetch for %s: %w", sleepDate, err))
		}
		if err != nil {
			log.Printf("syncer: sleep fetch for %s failed: %v", sleepDate, err)
			continue
		}
		if candidate.Hours != nil {
			sleep = candidate
			break
		}
	}
	if sleep == nil {
		sleep = &provider.SleepData{}
	}
	return s.finishSync(ctx, date, sleep)
}

// finishSync fetches the activity and wellness portions for the
// reporting date, stores the combined record, and appends the attempt.
func (s *Syncer) finishSync(ctx context.Context, reportDate types.Date, sleep *provider.SleepData) (types.AttemptStatus, error) {
	activity, err := s.client.FetchActivity(ctx, reportDate)
	if fatal(err) {
		return s.fail(ctx, fmt.Errorf("activity fetch for %s: %w", reportDate, err))
	}
	if err != nil {
		log.Printf("syncer: activity fetch for %s failed: %v", reportDate, err)
		activity = &provider.ActivityData{}
	}

	health, err := s.client.FetchHealth(ctx, reportDate)
	if fatal(err) {
		return s.fail(ctx, fmt.Errorf("health fetch for %s: %w", reportDate, err))
	}
	if err != nil {
		log.Printf("syncer: health fetch for %s failed: %v", reportDate, err)
		health = &provider.HealthData{}
	}

	patch, hasData := buildPatch(sleep, activity, health)
	if err := s.store.UpsertDaily(ctx, reportDate, patch); err != nil {
		return s.fail(ctx, fmt.Errorf("store daily record for %s: %w", reportDate, err))
	}

	status := types.AttemptPartial
	if hasData {
		status = types.AttemptSuccess
	}
	if err := s.store.AppendAttempt(ctx, status, ""); err != nil {
		return status, fmt.Errorf("append %s attempt: %w", status, err)
	}

	log.Printf("syncer: sync complete for %s (status=%s)", reportDate, status)
	return status, nil
}

func (s *Syncer) fetchSleep(ctx context.Context, date types.Date) (*provider.SleepData, error) {
	sleep, err := s.client.FetchSleep(ctx, date)
	if fatal(err) {
		return nil, err
	}
	if err != nil {
		log.Printf("syncer: sleep fetch for %s failed: %v", date, err)
		return &provider.SleepData{}, nil
	}
	return sleep, nil
}

// fail appends an error attempt and hands the cause back to the
// trigger boundary. The append itself failing is logged, not
// escalated - a broken store already failed the cycle.
func (s *Syncer) fail(ctx context.Context, cause error) (types.AttemptStatus, error) {
	if err := s.store.AppendAttempt(ctx, types.AttemptError, cause.Error()); err != nil {
		log.Printf("syncer: failed to append error attempt: %v", err)
	}
	return types.AttemptError, cause
}

// fatal reports whether the fetch error must abort the whole cycle.
// Auth failures need a fresh session; rate limiting forbids further
// calls this cycle. Everything else degrades to a missing portion.
func fatal(err error) bool {
	return errors.Is(err, provider.ErrAuth) || errors.Is(err, provider.ErrRateLimited)
}

// buildPatch normalizes the fetched portions into a daily patch.
// hasData is true when any of sleep hours, sleep score, or steps came
// back - the success/partial boundary.
func buildPatch(sleep *provider.SleepData, activity *provider.ActivityData, health *provider.HealthData) (*types.DailyPatch, bool) {
	patch := &types.DailyPatch{
		SleepHours:       sleep.Hours,
		SleepScore:       sleep.Score,
		Steps:            activity.Steps,
		ActiveCalories:   activity.ActiveCalories,
		RestingCalories:  activity.RestingCalories,
		RestingHeartRate: health.RestingHeartRate,
		AvgStress:        health.AvgStress,
		BodyBatteryHigh:  health.BodyBatteryHigh,
		BodyBatteryLow:   health.BodyBatteryLow,
	}
	if sleep.Score != nil {
		patch.SleepQuality = types.Ptr(types.SleepQualityLabel(*sleep.Score))
	}

	hasData := sleep.Hours != nil || sleep.Score != nil || activity.Steps != nil
	patch.SyncSuccess = types.Ptr(hasData)
	return patch, hasData
}
