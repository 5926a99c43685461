package notify

import (
	"fmt"
	"strings"

	"github.com/jmcorreia/vitals/internal/report"
)

// Plain-text renderers for report payloads. Chat-specific markup is
// deliberately out of scope; a transport adapter can re-render the
// payload structs if it wants richer formatting.

// FormatDaily renders a daily report.
func FormatDaily(rep *report.DailyReport) string {
	if rep.Record == nil {
		return fmt.Sprintf("No data for %s. The sync failed or has not run yet.", rep.Date)
	}
	r := rep.Record

	var b strings.Builder
	fmt.Fprintf(&b, "Daily summary for %s\n", rep.Date)
	fmt.Fprintf(&b, "Sleep: %s", fmtHours(r.SleepHours))
	if r.SleepScore != nil {
		fmt.Fprintf(&b, " (score %d, %s)", *r.SleepScore, r.SleepQuality)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Steps: %s\n", fmtCount(r.Steps))
	if total := r.TotalCalories(); total != nil {
		fmt.Fprintf(&b, "Calories burned: %d kcal (active %s, resting %s)\n",
			*total, fmtCount(r.ActiveCalories), fmtCount(r.RestingCalories))
	}
	if r.RestingHeartRate != nil {
		fmt.Fprintf(&b, "Resting HR: %d bpm\n", *r.RestingHeartRate)
	}
	if r.AvgStress != nil {
		fmt.Fprintf(&b, "Avg stress: %d\n", *r.AvgStress)
	}
	if r.BodyBatteryHigh != nil && r.BodyBatteryLow != nil {
		fmt.Fprintf(&b, "Body battery: %d-%d\n", *r.BodyBatteryLow, *r.BodyBatteryHigh)
	}
	if r.WeightKg != nil {
		fmt.Fprintf(&b, "Weight: %.1f kg\n", *r.WeightKg)
	}

	if rep.Nutrition != nil {
		fmt.Fprintf(&b, "\nNutrition: %.0f kcal, %.0fP/%.0fF/%.0fC over %d entries\n",
			rep.Nutrition.Calories, rep.Nutrition.ProteinG, rep.Nutrition.FatG,
			rep.Nutrition.CarbsG, rep.Nutrition.EntryCount)
	}
	if bal := rep.Balance; bal != nil {
		if bal.Deficit >= 0 {
			fmt.Fprintf(&b, "Deficit: -%d kcal (%.1f%%)\n", bal.Deficit, bal.DeficitPct)
		} else {
			fmt.Fprintf(&b, "Surplus: +%d kcal (%.1f%%)\n", -bal.Deficit, -bal.DeficitPct)
		}
	}

	for _, alert := range rep.Alerts {
		fmt.Fprintf(&b, "! %s\n", alert)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatWeekly renders the weekly rollup.
func FormatWeekly(rep *report.WeeklyReport) string {
	if rep.Stats == nil {
		return "Not enough data for a weekly report."
	}
	s := rep.Stats

	var b strings.Builder
	fmt.Fprintf(&b, "Weekly report %s to %s (%d days with data)\n", s.Start, s.End, s.DaysWithData)
	if s.SleepAvgHours != nil {
		fmt.Fprintf(&b, "Sleep avg: %.2fh", *s.SleepAvgHours)
		if s.SleepAvgScore != nil {
			fmt.Fprintf(&b, " (score %d)", *s.SleepAvgScore)
		}
		b.WriteString("\n")
	}
	if s.SleepBest != nil && s.SleepWorst != nil {
		fmt.Fprintf(&b, "Best sleep: %.1fh on %s, worst: %.1fh on %s\n",
			s.SleepBest.Value, s.SleepBest.Date, s.SleepWorst.Value, s.SleepWorst.Date)
	}
	if s.StepsAvg != nil {
		fmt.Fprintf(&b, "Steps avg: %d (total %d, %d days at goal)\n",
			*s.StepsAvg, *s.StepsTotal, s.StepsGoalDays)
	}
	if s.ActiveCaloriesTotal != nil {
		fmt.Fprintf(&b, "Active calories: %d kcal\n", *s.ActiveCaloriesTotal)
	}

	if d := rep.Deltas; d != nil {
		b.WriteString("\nVs previous week:\n")
		if d.SleepAvgHours != nil {
			fmt.Fprintf(&b, "Sleep: %s\n", fmtSignedHours(*d.SleepAvgHours))
		}
		if d.StepsAvg != nil {
			fmt.Fprintf(&b, "Steps avg: %+d\n", *d.StepsAvg)
		}
	}

	if w := rep.Weight; w != nil {
		fmt.Fprintf(&b, "\nWeight: %.1f kg", w.Current.Value)
		if w.Delta != nil {
			fmt.Fprintf(&b, " (%+.1f kg vs last week)", *w.Delta)
		}
		fmt.Fprintf(&b, ", range %.1f-%.1f over %d entries\n", w.Min, w.Max, w.Count)
	}

	if rep.Nutrition != nil {
		fmt.Fprintf(&b, "\nNutrition daily avg: %.0f kcal, %.0fP/%.0fF/%.0fC (%d days logged)\n",
			rep.Nutrition.AvgCalories, rep.Nutrition.AvgProteinG, rep.Nutrition.AvgFatG,
			rep.Nutrition.AvgCarbsG, rep.Nutrition.DaysWithData)
	}

	if len(rep.Insights) > 0 {
		b.WriteString("\nInsights:\n")
		for _, in := range rep.Insights {
			fmt.Fprintf(&b, "- %s\n", in.Message)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatMonthly renders the 30-day rollup.
func FormatMonthly(rep *report.MonthlyReport) string {
	if rep.Stats == nil {
		return "Not enough data for a monthly report."
	}
	s := rep.Stats

	var b strings.Builder
	fmt.Fprintf(&b, "Monthly report %s to %s (%d days with data)\n", s.Start, s.End, s.DaysWithData)
	if s.SleepAvgHours != nil {
		fmt.Fprintf(&b, "Sleep avg: %.2fh\n", *s.SleepAvgHours)
	}
	if s.StepsAvg != nil {
		fmt.Fprintf(&b, "Steps avg: %d (total %d)\n", *s.StepsAvg, *s.StepsTotal)
	}
	if s.ActiveCaloriesTotal != nil {
		fmt.Fprintf(&b, "Active calories: %d kcal\n", *s.ActiveCaloriesTotal)
	}
	if d := rep.Deltas; d != nil && d.StepsAvg != nil {
		fmt.Fprintf(&b, "Steps avg vs previous month: %+d\n", *d.StepsAvg)
	}
	return strings.TrimRight(b.String(), "\n")
}

func fmtHours(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1fh", *v)
}

func fmtSignedHours(v float64) string {
	return fmt.Sprintf("%+.2fh", v)
}

func fmtCount(v *int) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d", *v)
}
