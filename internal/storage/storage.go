package storage

import (
	"context"

	"github.com/jmcorreia/vitals/internal/storage/sqlite"
	"github.com/jmcorreia/vitals/internal/types"
)

// Store defines the interface for metric storage backends
type Store interface {
	// Daily records - one row per calendar day, upserts keyed by date
	UpsertDaily(ctx context.Context, date types.Date, patch *types.DailyPatch) error
	GetDaily(ctx context.Context, date types.Date) (*types.DailyRecord, error)
	GetRange(ctx context.Context, start, end types.Date) ([]*types.DailyRecord, error)
	AllRecords(ctx context.Context, limitDays int) ([]*types.DailyRecord, error)
	CountDays(ctx context.Context) (int, error)

	// Attempt log - append-only, source of idempotency truth
	AppendAttempt(ctx context.Context, status types.AttemptStatus, errorMessage string) error
	HasAttemptToday(ctx context.Context, status types.AttemptStatus) (bool, error)
	LastAttempt(ctx context.Context, status types.AttemptStatus) (*types.Attempt, error)
	RecentAttempts(ctx context.Context, limit int) ([]*types.Attempt, error)

	// Goals - upsert on set, defaults applied on read
	SetGoal(ctx context.Context, metric string, target float64) error
	Goals(ctx context.Context) (types.Goals, error)

	// Food entries - nutrition ledger
	AddFoodEntries(ctx context.Context, date types.Date, entries []*types.FoodEntry) ([]int64, error)
	FoodEntries(ctx context.Context, date types.Date) ([]*types.FoodEntry, error)
	FoodEntriesRange(ctx context.Context, start, end types.Date) ([]*types.FoodEntry, error)
	DeleteLastFoodEntry(ctx context.Context, date types.Date) (*types.FoodEntry, error)
	DailyNutrition(ctx context.Context, date types.Date) (*types.NutritionTotals, error)
	WeeklyNutrition(ctx context.Context, end types.Date) (*types.NutritionAverages, error)

	// Lifecycle
	Backup(ctx context.Context, dir string) (string, error)
	Close() error
}

// Config holds database configuration
type Config struct {
	// Path is the SQLite database file path
	// Default: "data/vitals.db"
	Path string
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Path: "data/vitals.db",
	}
}

// NewStore creates a new SQLite storage backend.
// The ctx parameter is currently unused but kept for API consistency.
func NewStore(ctx context.Context, cfg *Config) (Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Path == "" {
		cfg.Path = "data/vitals.db"
	}

	return sqlite.New(cfg.Path)
}
