package report

import (
	"fmt"

	"github.com/jmcorreia/vitals/internal/types"
)

const (
	shortSleepHours    = 6.0
	greatSleepScore    = 85
	sedentarySteps     = 1000
	alertStreakMinDays = 5
)

// DailyAlerts produces the contextual one-liners appended to a daily
// report: short sleep, a standout sleep score, a sedentary day, and a
// running step-goal streak. recent must be ordered by date ascending
// and end at the reported day.
func DailyAlerts(day *types.DailyRecord, recent []*types.DailyRecord, goals types.Goals) []string {
	if day == nil {
		return nil
	}
	stepsGoal, _ := goals.Get(types.MetricSteps)

	var alerts []string
	switch {
	case day.SleepHours != nil && *day.SleepHours < shortSleepHours:
		alerts = append(alerts, "Short night of sleep. Try to rest more today.")
	case day.SleepScore != nil && *day.SleepScore >= greatSleepScore:
		alerts = append(alerts, "Excellent night of sleep!")
	}

	if day.Steps != nil && *day.Steps < sedentarySteps {
		alerts = append(alerts, "Very sedentary day yesterday. Try to move today.")
	}

	if len(recent) > 0 && day.Steps != nil && float64(*day.Steps) >= stepsGoal {
		if streak := Streak(recent, StepsAtLeast(stepsGoal)); streak >= alertStreakMinDays {
			alerts = append(alerts, fmt.Sprintf("%d days in a row above the step goal!", streak))
		}
	}
	return alerts
}
