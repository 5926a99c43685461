package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcorreia/vitals/internal/types"
)

func mustDate(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestUpsertDailyCreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)
	day := mustDate(t, "2025-06-01")

	patch := &types.DailyPatch{
		SleepHours:  types.Ptr(7.25),
		SleepScore:  types.Ptr(82),
		Steps:       types.Ptr(11200),
		SyncSuccess: types.Ptr(true),
	}
	require.NoError(t, store.UpsertDaily(ctx, day, patch))

	rec, err := store.GetDaily(ctx, day)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, day, rec.Date)
	assert.Equal(t, 7.25, *rec.SleepHours)
	assert.Equal(t, 82, *rec.SleepScore)
	assert.Equal(t, 11200, *rec.Steps)
	assert.True(t, rec.SyncSuccess)
	assert.Nil(t, rec.WeightKg, "unspecified fields stay null on create")
	assert.False(t, rec.SyncedAt.IsZero())
}

func TestUpsertDailyDisjointPatchesMerge(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)
	day := mustDate(t, "2025-06-02")

	// First write: sleep fields only
	require.NoError(t, store.UpsertDaily(ctx, day, &types.DailyPatch{
		SleepHours: types.Ptr(6.5),
		SleepScore: types.Ptr(71),
	}))

	// Second write: weight only (the manual weight-entry path)
	require.NoError(t, store.UpsertDaily(ctx, day, &types.DailyPatch{
		WeightKg: types.Ptr(78.5),
	}))

	rec, err := store.GetDaily(ctx, day)
	require.NoError(t, err)
	require.NotNil(t, rec)

	// Union of both writes; no field reverted to null
	assert.Equal(t, 6.5, *rec.SleepHours)
	assert.Equal(t, 71, *rec.SleepScore)
	assert.Equal(t, 78.5, *rec.WeightKg)
}

func TestUpsertDailySingleRowPerDate(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)
	day := mustDate(t, "2025-06-03")

	require.NoError(t, store.UpsertDaily(ctx, day, &types.DailyPatch{Steps: types.Ptr(100)}))
	require.NoError(t, store.UpsertDaily(ctx, day, &types.DailyPatch{Steps: types.Ptr(200)}))

	count, err := store.CountDays(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	rec, err := store.GetDaily(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 200, *rec.Steps)
}

func TestGetDailyMissing(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)

	rec, err := store.GetDaily(ctx, mustDate(t, "2024-01-01"))
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestGetRangeOrderedInclusive(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)

	// Insert out of order, with a gap on 2025-06-11
	for _, s := range []string{"2025-06-12", "2025-06-10", "2025-06-13"} {
		require.NoError(t, store.UpsertDaily(ctx, mustDate(t, s), &types.DailyPatch{
			Steps: types.Ptr(1000),
		}))
	}

	records, err := store.GetRange(ctx, mustDate(t, "2025-06-10"), mustDate(t, "2025-06-13"))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "2025-06-10", records[0].Date.String())
	assert.Equal(t, "2025-06-12", records[1].Date.String())
	assert.Equal(t, "2025-06-13", records[2].Date.String())
}

func TestAllRecordsLimitAscending(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)

	for i := 0; i < 5; i++ {
		day := mustDate(t, "2025-06-01").AddDays(i)
		require.NoError(t, store.UpsertDaily(ctx, day, &types.DailyPatch{Steps: types.Ptr(i)}))
	}

	records, err := store.AllRecords(ctx, 3)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Most recent 3 rows, oldest first
	assert.Equal(t, "2025-06-03", records[0].Date.String())
	assert.Equal(t, "2025-06-05", records[2].Date.String())
}
