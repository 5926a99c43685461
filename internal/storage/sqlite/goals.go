package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmcorreia/vitals/internal/types"
)

// defaultGoals apply when the user never set a target. Metrics not
// listed here are simply absent until configured.
var defaultGoals = types.Goals{
	types.MetricSteps:      10000,
	types.MetricSleepHours: 7.0,
}

// SetGoal inserts or updates a user goal.
func (s *SQLiteStore) SetGoal(ctx context.Context, metric string, target float64) error {
	if !types.ValidGoalMetric(metric) {
		return fmt.Errorf("invalid goal metric: %s", metric)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_goals (metric, target_value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(metric) DO UPDATE SET
			target_value = excluded.target_value,
			updated_at = excluded.updated_at
	`, metric, target, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to set goal %s: %w", metric, err)
	}
	return nil
}

// Goals returns all user goals with defaults filled in for steps and
// sleep hours when not explicitly set.
func (s *SQLiteStore) Goals(ctx context.Context) (types.Goals, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT metric, target_value FROM user_goals`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	goals := types.Goals{}
	for m, v := range defaultGoals {
		goals[m] = v
	}

	for rows.Next() {
		var metric string
		var target float64
		if err := rows.Scan(&metric, &target); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals[metric] = target
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goal rows: %w", err)
	}
	return goals, nil
}
