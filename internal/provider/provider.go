// Package provider defines the boundary to the external health-metrics
// service. The real HTTP client lives outside this module's core; the
// scheduler and sync pipeline only ever see this interface.
package provider

import (
	"context"
	"errors"

	"github.com/jmcorreia/vitals/internal/types"
)

// ErrAuth indicates the provider session or credentials are invalid.
// The client must force re-authentication on the next attempt rather
// than silently retrying with the same stale session.
var ErrAuth = errors.New("provider authentication failed")

// ErrRateLimited indicates the provider rejected the call for rate
// limiting. Remaining fetches in the current cycle must be abandoned,
// not retried.
var ErrRateLimited = errors.New("provider rate limited")

// SleepData is the sleep portion of a day's metrics. Any field may be
// nil when the provider has no usable value.
type SleepData struct {
	Hours *float64
	Score *int
}

// ActivityData is the movement portion of a day's metrics.
type ActivityData struct {
	Steps           *int
	ActiveCalories  *int
	RestingCalories *int
}

// HealthData is the wellness portion of a day's metrics.
type HealthData struct {
	RestingHeartRate *int
	AvgStress        *int
	BodyBatteryHigh  *int
	BodyBatteryLow   *int
}

// Client fetches daily metrics from the external provider. Each fetch
// may fail independently; a failure in one must not prevent using
// partial results from the others. Calls are blocking and are never
// made concurrently within one sync invocation.
type Client interface {
	// FetchSleep returns sleep metrics for the given date. The
	// provider assigns overnight sleep to the wake-up date.
	FetchSleep(ctx context.Context, date types.Date) (*SleepData, error)

	// FetchActivity returns activity metrics for the given date.
	FetchActivity(ctx context.Context, date types.Date) (*ActivityData, error)

	// FetchHealth returns wellness metrics for the given date.
	FetchHealth(ctx context.Context, date types.Date) (*HealthData, error)

	// CheckDataAvailable reports whether completed sleep data exists
	// for the date. An erroring check is indistinguishable from "not
	// yet available": both return false.
	CheckDataAvailable(ctx context.Context, date types.Date) bool
}
