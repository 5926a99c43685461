package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcorreia/vitals/internal/types"
)

func addFood(t *testing.T, store *SQLiteStore, day types.Date, name string, calories, protein float64) {
	t.Helper()
	_, err := store.AddFoodEntries(context.Background(), day, []*types.FoodEntry{{
		Name:     name,
		Quantity: 1,
		Calories: types.Ptr(calories),
		ProteinG: types.Ptr(protein),
	}})
	require.NoError(t, err)
}

func TestFoodEntriesRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)
	day := mustDate(t, "2025-07-01")

	ids, err := store.AddFoodEntries(ctx, day, []*types.FoodEntry{
		{Name: "oats", Quantity: 80, Unit: "g", Calories: types.Ptr(300.0)},
		{Name: "banana", Quantity: 1, Calories: types.Ptr(90.0)},
	})
	require.NoError(t, err)
	require.Len(t, ids, 2)

	entries, err := store.FoodEntries(ctx, day)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "oats", entries[0].Name)
	assert.Equal(t, "un", entries[1].Unit, "unit defaults when empty")
	assert.Equal(t, "manual", entries[0].Source)
}

func TestDeleteLastFoodEntry(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)
	day := mustDate(t, "2025-07-02")

	addFood(t, store, day, "lunch", 600, 30)
	addFood(t, store, day, "snack", 150, 5)

	deleted, err := store.DeleteLastFoodEntry(ctx, day)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "snack", deleted.Name)

	remaining, err := store.FoodEntries(ctx, day)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "lunch", remaining[0].Name)

	// Empty day yields nil, not an error
	none, err := store.DeleteLastFoodEntry(ctx, mustDate(t, "2025-07-03"))
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestDailyNutritionTotals(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)
	day := mustDate(t, "2025-07-04")

	addFood(t, store, day, "breakfast", 400, 20)
	addFood(t, store, day, "dinner", 800, 45)

	totals, err := store.DailyNutrition(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, totals.Calories)
	assert.Equal(t, 65.0, totals.ProteinG)
	assert.Equal(t, 2, totals.EntryCount)

	empty, err := store.DailyNutrition(ctx, mustDate(t, "2025-07-05"))
	require.NoError(t, err)
	assert.Zero(t, empty.Calories)
	assert.Zero(t, empty.EntryCount)
}

func TestWeeklyNutritionAverages(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)
	end := mustDate(t, "2025-07-10")

	// Two days with data inside the window
	addFood(t, store, end.AddDays(-1), "day1", 2000, 100)
	addFood(t, store, end, "day2", 1000, 50)
	// Outside the window, must be ignored
	addFood(t, store, end.AddDays(-10), "old", 9000, 500)

	avgs, err := store.WeeklyNutrition(ctx, end)
	require.NoError(t, err)
	assert.Equal(t, 2, avgs.DaysWithData)
	assert.Equal(t, 1500.0, avgs.AvgCalories)
	assert.Equal(t, 75.0, avgs.AvgProteinG)
}
