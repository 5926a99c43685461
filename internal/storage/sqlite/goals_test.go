package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcorreia/vitals/internal/types"
)

func TestGoalsDefaults(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)

	goals, err := store.Goals(ctx)
	require.NoError(t, err)

	assert.Equal(t, 10000.0, goals[types.MetricSteps])
	assert.Equal(t, 7.0, goals[types.MetricSleepHours])

	_, hasWeight := goals.Get(types.MetricWeightKg)
	assert.False(t, hasWeight, "weight goal absent until set")
	assert.Empty(t, goals.MacroGoals(), "macro goals inert until configured")
}

func TestSetGoalUpsert(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)

	require.NoError(t, store.SetGoal(ctx, types.MetricSteps, 12000))
	require.NoError(t, store.SetGoal(ctx, types.MetricSteps, 8000))
	require.NoError(t, store.SetGoal(ctx, types.MetricWeightKg, 75))

	goals, err := store.Goals(ctx)
	require.NoError(t, err)

	assert.Equal(t, 8000.0, goals[types.MetricSteps], "explicit goal overrides default")
	assert.Equal(t, 75.0, goals[types.MetricWeightKg])
}

func TestSetGoalInvalidMetric(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)

	assert.Error(t, store.SetGoal(ctx, "vo2max", 50))
}
