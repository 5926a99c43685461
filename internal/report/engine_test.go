package report

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcorreia/vitals/internal/storage/sqlite"
	"github.com/jmcorreia/vitals/internal/types"
)

func setupEngine(t *testing.T) (*Engine, *sqlite.SQLiteStore) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "vitals.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewEngine(store), store
}

func seedDay(t *testing.T, store *sqlite.SQLiteStore, date types.Date, patch *types.DailyPatch) {
	t.Helper()
	require.NoError(t, store.UpsertDaily(context.Background(), date, patch))
}

func TestPeriodStats(t *testing.T) {
	ctx := context.Background()
	engine, store := setupEngine(t)

	end := md("2026-03-07")
	seedDay(t, store, md("2026-03-01"), &types.DailyPatch{
		SleepHours: types.Ptr(6.0),
		Steps:      types.Ptr(12000),
	})
	seedDay(t, store, md("2026-03-03"), &types.DailyPatch{
		SleepHours: types.Ptr(8.5),
		SleepScore: types.Ptr(84),
		Steps:      types.Ptr(8000),
	})
	seedDay(t, store, md("2026-03-07"), &types.DailyPatch{
		Steps: types.Ptr(10000),
	})

	stats, err := engine.Period(ctx, end, 7)
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Equal(t, md("2026-03-01"), stats.Start)
	assert.Equal(t, end, stats.End)
	assert.Equal(t, 3, stats.DaysWithData)

	require.NotNil(t, stats.SleepAvgHours)
	assert.Equal(t, 7.25, *stats.SleepAvgHours)
	require.NotNil(t, stats.SleepAvgScore)
	assert.Equal(t, 84, *stats.SleepAvgScore)
	require.NotNil(t, stats.SleepBest)
	assert.Equal(t, md("2026-03-03"), stats.SleepBest.Date)
	require.NotNil(t, stats.SleepWorst)
	assert.Equal(t, md("2026-03-01"), stats.SleepWorst.Date)

	require.NotNil(t, stats.StepsAvg)
	assert.Equal(t, 10000, *stats.StepsAvg)
	require.NotNil(t, stats.StepsTotal)
	assert.Equal(t, 30000, *stats.StepsTotal)
	assert.Nil(t, stats.ActiveCaloriesTotal)

	// Default step goal is 10000: two of three days reach it.
	assert.Equal(t, 2, stats.StepsGoalDays)
}

func TestPeriodStatsEmptyWindow(t *testing.T) {
	engine, _ := setupEngine(t)
	stats, err := engine.Period(context.Background(), md("2026-03-07"), 7)
	require.NoError(t, err)
	assert.Nil(t, stats)
}

func TestWeeklyDeltasAgainstPriorWeek(t *testing.T) {
	ctx := context.Background()
	engine, store := setupEngine(t)

	end := md("2026-03-14")
	// Prior week: 7.0h sleep, 8000 steps.
	seedDay(t, store, md("2026-03-05"), &types.DailyPatch{
		SleepHours: types.Ptr(7.0),
		Steps:      types.Ptr(8000),
	})
	// Current week: 7.5h sleep, 9000 steps.
	seedDay(t, store, md("2026-03-10"), &types.DailyPatch{
		SleepHours: types.Ptr(7.5),
		Steps:      types.Ptr(9000),
	})

	rep, err := engine.Weekly(ctx, end)
	require.NoError(t, err)
	require.NotNil(t, rep.Deltas)
	require.NotNil(t, rep.Deltas.SleepAvgHours)
	assert.Equal(t, 0.5, *rep.Deltas.SleepAvgHours)
	require.NotNil(t, rep.Deltas.StepsAvg)
	assert.Equal(t, 1000, *rep.Deltas.StepsAvg)
}

func TestWeeklyDeltasNilWithoutPriorWindow(t *testing.T) {
	ctx := context.Background()
	engine, store := setupEngine(t)

	seedDay(t, store, md("2026-03-10"), &types.DailyPatch{Steps: types.Ptr(9000)})

	rep, err := engine.Weekly(ctx, md("2026-03-14"))
	require.NoError(t, err)
	assert.Nil(t, rep.Deltas, "a missing prior window yields a nil delta, not zero")
}

func TestWeeklyWeightDelta(t *testing.T) {
	ctx := context.Background()
	engine, store := setupEngine(t)

	end := md("2026-03-14")
	// Previous week's last sample.
	seedDay(t, store, md("2026-03-06"), &types.DailyPatch{WeightKg: types.Ptr(80.0)})
	// Current week.
	seedDay(t, store, md("2026-03-09"), &types.DailyPatch{WeightKg: types.Ptr(79.4)})
	seedDay(t, store, md("2026-03-12"), &types.DailyPatch{WeightKg: types.Ptr(78.5)})

	ws, err := engine.WeeklyWeight(ctx, end)
	require.NoError(t, err)
	require.NotNil(t, ws)

	assert.Equal(t, 78.5, ws.Current.Value)
	assert.Equal(t, md("2026-03-12"), ws.Current.Date)
	require.NotNil(t, ws.Prev)
	assert.Equal(t, 80.0, ws.Prev.Value)
	require.NotNil(t, ws.Delta)
	assert.Equal(t, -1.5, *ws.Delta)
	assert.Equal(t, 78.5, ws.Min)
	assert.Equal(t, 79.4, ws.Max)
	assert.Equal(t, 2, ws.Count)
}

func TestWeeklyWeightNoPriorSample(t *testing.T) {
	ctx := context.Background()
	engine, store := setupEngine(t)

	seedDay(t, store, md("2026-03-12"), &types.DailyPatch{WeightKg: types.Ptr(78.5)})

	ws, err := engine.WeeklyWeight(ctx, md("2026-03-14"))
	require.NoError(t, err)
	require.NotNil(t, ws)
	assert.Nil(t, ws.Prev)
	assert.Nil(t, ws.Delta)
}

func TestDailyReport(t *testing.T) {
	ctx := context.Background()
	engine, store := setupEngine(t)

	date := md("2026-03-10")
	seedDay(t, store, date, &types.DailyPatch{
		SleepHours:      types.Ptr(5.5),
		ActiveCalories:  types.Ptr(500),
		RestingCalories: types.Ptr(1600),
	})
	_, err := store.AddFoodEntries(ctx, date, []*types.FoodEntry{
		{Name: "oatmeal", Quantity: 1, Calories: types.Ptr(350.0)},
		{Name: "chicken salad", Quantity: 1, Calories: types.Ptr(1500.0)},
	})
	require.NoError(t, err)

	rep, err := engine.Daily(ctx, date)
	require.NoError(t, err)
	require.NotNil(t, rep.Record)

	require.Len(t, rep.Alerts, 1)
	assert.Contains(t, rep.Alerts[0], "Short night")

	require.NotNil(t, rep.Nutrition)
	assert.Equal(t, 1850.0, rep.Nutrition.Calories)

	require.NotNil(t, rep.Balance)
	assert.Equal(t, 250, rep.Balance.Deficit)
	assert.Equal(t, 11.9, rep.Balance.DeficitPct)
}

func TestDailyReportNoFoodLogged(t *testing.T) {
	ctx := context.Background()
	engine, store := setupEngine(t)

	date := md("2026-03-10")
	seedDay(t, store, date, &types.DailyPatch{Steps: types.Ptr(9000)})

	rep, err := engine.Daily(ctx, date)
	require.NoError(t, err)
	assert.Nil(t, rep.Nutrition)
	assert.Nil(t, rep.Balance)
}

func TestMonthlyReport(t *testing.T) {
	ctx := context.Background()
	engine, store := setupEngine(t)

	end := md("2026-03-30")
	seedDay(t, store, md("2026-03-05"), &types.DailyPatch{Steps: types.Ptr(7000)})
	seedDay(t, store, md("2026-03-20"), &types.DailyPatch{Steps: types.Ptr(9000)})

	rep, err := engine.Monthly(ctx, end)
	require.NoError(t, err)
	require.NotNil(t, rep.Stats)
	assert.Equal(t, 2, rep.Stats.DaysWithData)
	require.NotNil(t, rep.Stats.StepsAvg)
	assert.Equal(t, 8000, *rep.Stats.StepsAvg)
	assert.Nil(t, rep.Deltas)
}
