// Package report is the read side: windowed statistics, streaks,
// insights, and report payloads computed over stored history. Nothing
// here writes to the store.
package report

import (
	"math"

	"github.com/jmcorreia/vitals/internal/types"
)

// metric extracts a sample from a daily record, nil when the record
// has no value for it.
type metric func(*types.DailyRecord) *float64

func sleepHours(r *types.DailyRecord) *float64 { return r.SleepHours }
func weightKg(r *types.DailyRecord) *float64   { return r.WeightKg }

func sleepScore(r *types.DailyRecord) *float64      { return intMetric(r.SleepScore) }
func steps(r *types.DailyRecord) *float64           { return intMetric(r.Steps) }
func activeCalories(r *types.DailyRecord) *float64  { return intMetric(r.ActiveCalories) }
func restingCalories(r *types.DailyRecord) *float64 { return intMetric(r.RestingCalories) }

func intMetric(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

// Stat summarizes the non-null samples of one metric in a window.
// A window with no samples has no Stat at all (nil), which is distinct
// from a window of zeros.
type Stat struct {
	Avg   float64
	Min   float64
	Max   float64
	Total float64
	Count int
}

// NewStat computes a Stat over the records' non-null samples for the
// given metric. Returns nil when no record in the window carries the
// metric.
func NewStat(records []*types.DailyRecord, get metric) *Stat {
	var s Stat
	for i := range records {
		v := get(records[i])
		if v == nil {
			continue
		}
		if s.Count == 0 {
			s.Min, s.Max = *v, *v
		} else {
			s.Min = math.Min(s.Min, *v)
			s.Max = math.Max(s.Max, *v)
		}
		s.Total += *v
		s.Count++
	}
	if s.Count == 0 {
		return nil
	}
	s.Avg = s.Total / float64(s.Count)
	return &s
}

// DayValue is a metric sample pinned to its date, used for best/worst
// day selection.
type DayValue struct {
	Date  types.Date
	Value float64
}

// bestDay and worstDay pick the extremal sample; ties go to the
// earliest date, records being ordered ascending.
func bestDay(records []*types.DailyRecord, get metric) *DayValue {
	return extremalDay(records, get, func(v, best float64) bool { return v > best })
}

func worstDay(records []*types.DailyRecord, get metric) *DayValue {
	return extremalDay(records, get, func(v, best float64) bool { return v < best })
}

func extremalDay(records []*types.DailyRecord, get metric, better func(v, best float64) bool) *DayValue {
	var out *DayValue
	for i := range records {
		v := get(records[i])
		if v == nil {
			continue
		}
		if out == nil || better(*v, out.Value) {
			out = &DayValue{Date: records[i].Date, Value: *v}
		}
	}
	return out
}

// round2 is the precision for hours-like quantities, round1 for
// weight and percentages. Counts round to integer.
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round1(v float64) float64 { return math.Round(v*10) / 10 }

func roundInt(v float64) int { return int(math.Round(v)) }
