package report

import "github.com/jmcorreia/vitals/internal/types"

// Streak counts consecutive records from the most recent backward
// that satisfy the predicate. Records must be ordered by date
// ascending. The first failing record ends the count; a record with a
// null value fails like any other miss.
func Streak(records []*types.DailyRecord, pred func(*types.DailyRecord) bool) int {
	streak := 0
	for i := len(records) - 1; i >= 0; i-- {
		if !pred(records[i]) {
			break
		}
		streak++
	}
	return streak
}

// StepsAtLeast returns a streak predicate for a daily step goal.
// Nil step counts never satisfy it.
func StepsAtLeast(goal float64) func(*types.DailyRecord) bool {
	return func(r *types.DailyRecord) bool {
		return r.Steps != nil && float64(*r.Steps) >= goal
	}
}
