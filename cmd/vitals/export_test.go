package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcorreia/vitals/internal/types"
)

func testDate(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestMetricsCSV(t *testing.T) {
	records := []*types.DailyRecord{
		{
			Date:         testDate(t, "2026-03-01"),
			SleepHours:   types.Ptr(7.5),
			SleepScore:   types.Ptr(82),
			SleepQuality: "excellent",
			Steps:        types.Ptr(10432),
		},
		{
			// A weight-only day exports with every metric cell empty.
			Date: testDate(t, "2026-03-02"),
		},
	}

	out, err := metricsCSV(records)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,sleep_hours,sleep_score,sleep_quality,steps,active_calories,resting_calories,resting_heart_rate,avg_stress,body_battery_high,body_battery_low", lines[0])
	assert.Equal(t, "2026-03-01,7.5,82,excellent,10432,,,,,,", lines[1])
	assert.Equal(t, "2026-03-02,,,,,,,,,,", lines[2])
}

func TestNutritionCSV(t *testing.T) {
	entries := []*types.FoodEntry{
		{
			Date:      testDate(t, "2026-03-01"),
			Name:      "oats, rolled",
			Quantity:  80,
			Unit:      "g",
			Calories:  types.Ptr(304.0),
			ProteinG:  types.Ptr(10.6),
			Source:    "manual",
			CreatedAt: time.Now(),
		},
	}

	out, err := nutritionCSV(entries)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "date,name,quantity,unit,calories,protein_g,fat_g,carbs_g,fiber_g,source,barcode", lines[0])
	// The comma in the name must be quoted, macros without values stay empty.
	assert.Equal(t, `2026-03-01,"oats, rolled",80,g,304,10.6,,,,manual,`, lines[1])
}

func TestHistoryTable(t *testing.T) {
	records := []*types.DailyRecord{
		{
			Date:       testDate(t, "2026-03-01"),
			SleepHours: types.Ptr(6.8),
			Steps:      types.Ptr(9120),
		},
		{
			Date: testDate(t, "2026-03-02"),
		},
	}

	out := historyTable(records)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "2026-03-01")
	assert.Contains(t, lines[1], "6.8h")
	assert.Contains(t, lines[1], "9120")
	// Absent metrics render as dashes, never zeros.
	assert.Equal(t, []string{"2026-03-02", "-", "-", "-", "-", "-"}, strings.Fields(lines[2]))
}
