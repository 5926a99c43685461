package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcorreia/vitals/internal/types"
)

func defaultGoals() types.Goals {
	return types.Goals{
		types.MetricSteps:      10000,
		types.MetricSleepHours: 7.0,
	}
}

func kinds(insights []Insight) []InsightKind {
	out := make([]InsightKind, len(insights))
	for i, in := range insights {
		out[i] = in.Kind
	}
	return out
}

func TestInsightsEmptyHistory(t *testing.T) {
	assert.Nil(t, Insights(nil, defaultGoals()))
}

func TestStreakMilestonesAreMutuallyExclusive(t *testing.T) {
	t.Run("seven day milestone wins", func(t *testing.T) {
		records := stepDays(md("2026-03-01"), 12000, 12000, 12000, 12000, 12000, 12000, 12000)
		insights := Insights(records, defaultGoals())
		var streakMsgs []string
		for _, in := range insights {
			if in.Kind == InsightStepsStreak {
				streakMsgs = append(streakMsgs, in.Message)
			}
		}
		require.Len(t, streakMsgs, 1)
		assert.Contains(t, streakMsgs[0], "7 consecutive days")
	})

	t.Run("three day milestone", func(t *testing.T) {
		records := stepDays(md("2026-03-01"), 5000, 12000, 12000, 12000)
		insights := Insights(records, defaultGoals())
		found := 0
		for _, in := range insights {
			if in.Kind == InsightStepsStreak {
				found++
				assert.Contains(t, in.Message, "3 consecutive days")
			}
		}
		assert.Equal(t, 1, found)
	})

	t.Run("short streak stays quiet", func(t *testing.T) {
		records := stepDays(md("2026-03-01"), 5000, 12000, 12000)
		for _, in := range Insights(records, defaultGoals()) {
			assert.NotEqual(t, InsightStepsStreak, in.Kind)
		}
	})
}

func TestDecliningActivityInsight(t *testing.T) {
	// 14 samples where the second half averages 70% of the first.
	var records []*types.DailyRecord
	start := md("2026-03-01")
	for i := 0; i < 7; i++ {
		records = append(records, &types.DailyRecord{Date: start.AddDays(i), Steps: types.Ptr(8000)})
	}
	for i := 7; i < 14; i++ {
		records = append(records, &types.DailyRecord{Date: start.AddDays(i), Steps: types.Ptr(5600)})
	}

	insights := Insights(records, defaultGoals())
	require.Equal(t, []InsightKind{InsightDecliningActivity}, kinds(insights),
		"declining activity must fire alone, with no streak insights")
}

func TestDecliningActivityNeedsFullWindow(t *testing.T) {
	var records []*types.DailyRecord
	start := md("2026-03-01")
	for i := 0; i < 13; i++ {
		count := 8000
		if i >= 7 {
			count = 4000
		}
		records = append(records, &types.DailyRecord{Date: start.AddDays(i), Steps: types.Ptr(count)})
	}
	for _, in := range Insights(records, defaultGoals()) {
		assert.NotEqual(t, InsightDecliningActivity, in.Kind)
	}
}

func TestWeekendSleepDivergence(t *testing.T) {
	// 2026-03-02 is a Monday. Weekdays at 7.0h, weekend at 8.0h: a
	// 1.0h divergence with no low-sleep noise.
	var records []*types.DailyRecord
	for i := 0; i < 7; i++ {
		d := md("2026-03-02").AddDays(i)
		hours := 7.0
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			hours = 8.0
		}
		records = append(records, &types.DailyRecord{Date: d, SleepHours: types.Ptr(hours)})
	}

	insights := Insights(records, defaultGoals())
	require.Equal(t, []InsightKind{InsightWeekendSleep}, kinds(insights))
	assert.Contains(t, insights[0].Message, "1.0h")
}

func TestWeekendSleepNeedsEnoughSamples(t *testing.T) {
	records := []*types.DailyRecord{
		{Date: md("2026-03-06"), SleepHours: types.Ptr(6.0)}, // Friday
		{Date: md("2026-03-07"), SleepHours: types.Ptr(9.0)}, // Saturday
	}
	for _, in := range Insights(records, defaultGoals()) {
		assert.NotEqual(t, InsightWeekendSleep, in.Kind)
	}
}

func TestLowSleepInsight(t *testing.T) {
	var records []*types.DailyRecord
	start := md("2026-03-02")
	for i := 0; i < 5; i++ {
		hours := 6.0
		if i == 4 {
			hours = 7.5
		}
		records = append(records, &types.DailyRecord{Date: start.AddDays(i), SleepHours: types.Ptr(hours)})
	}

	// 4 of 5 nights below goal crosses the 60% incidence bar.
	insights := Insights(records, defaultGoals())
	found := false
	for _, in := range insights {
		if in.Kind == InsightLowSleep {
			found = true
			assert.Contains(t, in.Message, "7.0h")
		}
	}
	assert.True(t, found)
}

func TestWeightTrendAndGoalProximity(t *testing.T) {
	goals := defaultGoals()
	goals[types.MetricWeightKg] = 79.2

	records := []*types.DailyRecord{
		{Date: md("2026-03-01"), WeightKg: types.Ptr(80.0)},
		{Date: md("2026-03-05"), WeightKg: types.Ptr(79.0)},
	}

	insights := Insights(records, goals)
	require.Equal(t, []InsightKind{InsightWeightTrend, InsightWeightGoal}, kinds(insights))
	assert.Contains(t, insights[0].Message, "-1.0 kg")
	assert.Contains(t, insights[0].Message, "4 days")
	assert.Contains(t, insights[1].Message, "close to goal")
}

func TestWeightTrendBelowTriggerIsQuiet(t *testing.T) {
	records := []*types.DailyRecord{
		{Date: md("2026-03-01"), WeightKg: types.Ptr(80.0)},
		{Date: md("2026-03-05"), WeightKg: types.Ptr(80.2)},
	}
	for _, in := range Insights(records, defaultGoals()) {
		assert.NotEqual(t, InsightWeightTrend, in.Kind)
	}
}

func TestDailyAlerts(t *testing.T) {
	goals := defaultGoals()

	t.Run("short sleep", func(t *testing.T) {
		day := &types.DailyRecord{Date: md("2026-03-10"), SleepHours: types.Ptr(5.5)}
		alerts := DailyAlerts(day, nil, goals)
		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0], "Short night")
	})

	t.Run("great sleep score suppressed by short sleep", func(t *testing.T) {
		day := &types.DailyRecord{
			Date:       md("2026-03-10"),
			SleepHours: types.Ptr(5.5),
			SleepScore: types.Ptr(90),
		}
		alerts := DailyAlerts(day, nil, goals)
		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0], "Short night")
	})

	t.Run("sedentary day", func(t *testing.T) {
		day := &types.DailyRecord{Date: md("2026-03-10"), Steps: types.Ptr(800)}
		alerts := DailyAlerts(day, nil, goals)
		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0], "sedentary")
	})

	t.Run("streak alert", func(t *testing.T) {
		recent := stepDays(md("2026-03-05"), 11000, 11000, 11000, 11000, 11000)
		day := recent[len(recent)-1]
		alerts := DailyAlerts(day, recent, goals)
		require.Len(t, alerts, 1)
		assert.Contains(t, alerts[0], "5 days in a row")
	})

	t.Run("nil record", func(t *testing.T) {
		assert.Nil(t, DailyAlerts(nil, nil, goals))
	})
}
