package provider

import (
	"context"
	"sync"

	"github.com/jmcorreia/vitals/internal/types"
)

// Fake is an in-memory Client for tests. Data is keyed by date;
// missing keys behave like a provider with nothing to report.
type Fake struct {
	mu sync.Mutex

	Sleep    map[string]*SleepData
	Activity map[string]*ActivityData
	Health   map[string]*HealthData
	// Available marks dates whose completed sleep data exists.
	Available map[string]bool

	// SleepErr, ActivityErr, HealthErr force the corresponding fetch
	// to fail when set.
	SleepErr    error
	ActivityErr error
	HealthErr   error

	// Calls counts fetches by method name, for asserting call cadence.
	Calls map[string]int
}

// NewFake returns an empty fake provider.
func NewFake() *Fake {
	return &Fake{
		Sleep:     map[string]*SleepData{},
		Activity:  map[string]*ActivityData{},
		Health:    map[string]*HealthData{},
		Available: map[string]bool{},
		Calls:     map[string]int{},
	}
}

func (f *Fake) record(method string) {
	f.Calls[method]++
}

// FetchSleep implements Client.
func (f *Fake) FetchSleep(ctx context.Context, date types.Date) (*SleepData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("FetchSleep")
	if f.SleepErr != nil {
		return nil, f.SleepErr
	}
	if d, ok := f.Sleep[date.String()]; ok {
		return d, nil
	}
	return &SleepData{}, nil
}

// FetchActivity implements Client.
func (f *Fake) FetchActivity(ctx context.Context, date types.Date) (*ActivityData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("FetchActivity")
	if f.ActivityErr != nil {
		return nil, f.ActivityErr
	}
	if d, ok := f.Activity[date.String()]; ok {
		return d, nil
	}
	return &ActivityData{}, nil
}

// FetchHealth implements Client.
func (f *Fake) FetchHealth(ctx context.Context, date types.Date) (*HealthData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("FetchHealth")
	if f.HealthErr != nil {
		return nil, f.HealthErr
	}
	if d, ok := f.Health[date.String()]; ok {
		return d, nil
	}
	return &HealthData{}, nil
}

// CheckDataAvailable implements Client.
func (f *Fake) CheckDataAvailable(ctx context.Context, date types.Date) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CheckDataAvailable")
	return f.Available[date.String()]
}

// CallCount returns how many times the named method was invoked.
func (f *Fake) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[method]
}
