package report

import (
	"fmt"
	"time"

	"github.com/jmcorreia/vitals/internal/types"
)

// InsightKind identifies which pattern check produced an insight.
type InsightKind string

const (
	InsightStepsStreak       InsightKind = "steps_streak"
	InsightStepsAboveGoal    InsightKind = "steps_above_goal"
	InsightWeekendSleep      InsightKind = "weekend_sleep"
	InsightDecliningActivity InsightKind = "declining_activity"
	InsightLowSleep          InsightKind = "low_sleep"
	InsightWeightTrend       InsightKind = "weight_trend"
	InsightWeightGoal        InsightKind = "weight_goal"
)

// Insight is one human-readable finding from the pattern battery.
type Insight struct {
	Kind    InsightKind
	Message string
}

// Pattern-check thresholds.
const (
	streakMilestone      = 3
	streakBigMilestone   = 7
	weekendSleepMinDays  = 5
	weekendSleepDiverge  = 0.75 // hours
	decliningMinSamples  = 14
	decliningRatio       = 0.85
	lowSleepRatio        = 0.6
	weightTrendMinKg     = 0.3
	weightNearGoalKg     = 0.5
	weightTrendMinPoints = 2
)

// Insights runs the fixed battery of pattern checks over the lookback
// window. Records must be ordered by date ascending, most recent last.
// Checks are independent; all of them may fire in one pass, and the
// result order follows the check sequence, never the data.
func Insights(records []*types.DailyRecord, goals types.Goals) []Insight {
	if len(records) == 0 {
		return nil
	}

	stepsGoal, _ := goals.Get(types.MetricSteps)
	sleepGoal, _ := goals.Get(types.MetricSleepHours)

	var out []Insight
	out = append(out, stepsInsights(records, stepsGoal)...)
	out = append(out, weekendSleepInsight(records)...)
	out = append(out, decliningActivityInsight(records)...)
	out = append(out, lowSleepInsight(records, sleepGoal)...)
	out = append(out, weightInsights(records, goals)...)
	return out
}

func stepsInsights(records []*types.DailyRecord, goal float64) []Insight {
	samples := collect(records, steps)
	if len(samples) == 0 {
		return nil
	}

	var out []Insight
	streak := Streak(records, StepsAtLeast(goal))
	// Only the higher milestone message fires.
	switch {
	case streak >= streakBigMilestone:
		out = append(out, Insight{
			Kind:    InsightStepsStreak,
			Message: fmt.Sprintf("Impressive! %d consecutive days with >=%d steps", streak, int(goal)),
		})
	case streak >= streakMilestone:
		out = append(out, Insight{
			Kind:    InsightStepsStreak,
			Message: fmt.Sprintf("%d consecutive days with >=%d steps, keep it up", streak, int(goal)),
		})
	}

	avg := mean(samples)
	if avg >= goal {
		out = append(out, Insight{
			Kind:    InsightStepsAboveGoal,
			Message: fmt.Sprintf("Average steps above goal (%d), excellent stretch", roundInt(avg)),
		})
	}
	return out
}

func weekendSleepInsight(records []*types.DailyRecord) []Insight {
	if len(collect(records, sleepHours)) < weekendSleepMinDays {
		return nil
	}

	var weekend, weekday []float64
	for i := range records {
		h := records[i].SleepHours
		if h == nil {
			continue
		}
		switch records[i].Date.Weekday() {
		case time.Saturday, time.Sunday:
			weekend = append(weekend, *h)
		default:
			weekday = append(weekday, *h)
		}
	}
	if len(weekend) == 0 || len(weekday) == 0 {
		return nil
	}

	diff := mean(weekend) - mean(weekday)
	if diff <= weekendSleepDiverge {
		return nil
	}
	return []Insight{{
		Kind:    InsightWeekendSleep,
		Message: fmt.Sprintf("You sleep %.1fh more on weekends", diff),
	}}
}

func decliningActivityInsight(records []*types.DailyRecord) []Insight {
	samples := collect(records, steps)
	if len(samples) < decliningMinSamples {
		return nil
	}

	first := mean(samples[:7])
	second := mean(samples[7:])
	if second >= first*decliningRatio {
		return nil
	}
	return []Insight{{
		Kind:    InsightDecliningActivity,
		Message: "Activity declining over the last two weeks",
	}}
}

func lowSleepInsight(records []*types.DailyRecord, goal float64) []Insight {
	samples := collect(records, sleepHours)
	if len(samples) == 0 {
		return nil
	}

	below := 0
	for _, h := range samples {
		if h < goal {
			below++
		}
	}
	if float64(below)/float64(len(samples)) < lowSleepRatio {
		return nil
	}
	return []Insight{{
		Kind:    InsightLowSleep,
		Message: fmt.Sprintf("More than 60%% of nights below %.1fh of sleep", goal),
	}}
}

func weightInsights(records []*types.DailyRecord, goals types.Goals) []Insight {
	var points []DayValue
	for i := range records {
		if w := records[i].WeightKg; w != nil {
			points = append(points, DayValue{Date: records[i].Date, Value: *w})
		}
	}
	if len(points) < weightTrendMinPoints {
		return nil
	}

	first, last := points[0], points[len(points)-1]
	delta := last.Value - first.Value

	var out []Insight
	if delta >= weightTrendMinKg || delta <= -weightTrendMinKg {
		span := last.Date.DaysSince(first.Date)
		if span == 0 {
			span = 1
		}
		sign := ""
		if delta > 0 {
			sign = "+"
		}
		out = append(out, Insight{
			Kind:    InsightWeightTrend,
			Message: fmt.Sprintf("Weight: %s%.1f kg over the last %d days (%.1f kg)", sign, delta, span, last.Value),
		})
	}

	if goal, ok := goals.Get(types.MetricWeightKg); ok {
		diff := last.Value - goal
		switch {
		case diff < weightNearGoalKg && diff > -weightNearGoalKg:
			out = append(out, Insight{
				Kind:    InsightWeightGoal,
				Message: fmt.Sprintf("Weight very close to goal (%.1f kg)", goal),
			})
		case diff < 0:
			out = append(out, Insight{
				Kind:    InsightWeightGoal,
				Message: fmt.Sprintf("Weight below goal (%.1f vs %.1f kg)", last.Value, goal),
			})
		}
	}
	return out
}

func collect(records []*types.DailyRecord, get metric) []float64 {
	var out []float64
	for i := range records {
		if v := get(records[i]); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

func mean(samples []float64) float64 {
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}
