package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcorreia/vitals/internal/types"
)

func md(s string) types.Date {
	d, err := types.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNewStatEmptyWindowIsNil(t *testing.T) {
	records := []*types.DailyRecord{
		{Date: md("2026-03-01")},
		{Date: md("2026-03-02")},
	}
	assert.Nil(t, NewStat(nil, sleepHours))
	assert.Nil(t, NewStat(records, sleepHours), "all-null samples must yield no stat, not zeros")
}

func TestNewStatSkipsNullSamples(t *testing.T) {
	records := []*types.DailyRecord{
		{Date: md("2026-03-01"), SleepHours: types.Ptr(6.0)},
		{Date: md("2026-03-02")},
		{Date: md("2026-03-03"), SleepHours: types.Ptr(8.0)},
	}
	s := NewStat(records, sleepHours)
	require.NotNil(t, s)
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 7.0, s.Avg)
	assert.Equal(t, 6.0, s.Min)
	assert.Equal(t, 8.0, s.Max)
	assert.Equal(t, 14.0, s.Total)
}

func TestBestDayTieGoesToEarliestDate(t *testing.T) {
	records := []*types.DailyRecord{
		{Date: md("2026-03-01"), Steps: types.Ptr(12000)},
		{Date: md("2026-03-02"), Steps: types.Ptr(12000)},
		{Date: md("2026-03-03"), Steps: types.Ptr(4000)},
	}
	best := bestDay(records, steps)
	require.NotNil(t, best)
	assert.Equal(t, md("2026-03-01"), best.Date)
	assert.Equal(t, 12000.0, best.Value)

	worst := worstDay(records, steps)
	require.NotNil(t, worst)
	assert.Equal(t, md("2026-03-03"), worst.Date)
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 7.46, round2(7.456))
	assert.Equal(t, -1.5, round1(-1.45))
	assert.Equal(t, 11.9, round1(250.0/2100.0*100))
	assert.Equal(t, 8572, roundInt(8571.5))
}
