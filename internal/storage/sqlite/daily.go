package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmcorreia/vitals/internal/types"
)

// dailyColumns is the canonical select list for daily_metrics rows.
const dailyColumns = `date, sleep_hours, sleep_score, sleep_quality, steps,
       active_calories, resting_calories, resting_heart_rate, avg_stress,
       body_battery_high, body_battery_low, weight_kg, sync_success, synced_at`

// UpsertDaily merges the provided fields into the record for the given
// date, creating the row if it does not exist. Fields absent from the
// patch are untouched on update and left null on create. The update
// timestamp is always refreshed.
func (s *SQLiteStore) UpsertDaily(ctx context.Context, date types.Date, patch *types.DailyPatch) error {
	if patch == nil {
		patch = &types.DailyPatch{}
	}

	cols := []string{"date", "synced_at"}
	args := []interface{}{date.String(), time.Now().UTC()}
	updates := []string{"synced_at = excluded.synced_at"}

	add := func(col string, value interface{}) {
		cols = append(cols, col)
		args = append(args, value)
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", col, col))
	}

	if patch.SleepHours != nil {
		add("sleep_hours", *patch.SleepHours)
	}
	if patch.SleepScore != nil {
		add("sleep_score", *patch.SleepScore)
	}
	if patch.SleepQuality != nil {
		add("sleep_quality", *patch.SleepQuality)
	}
	if patch.Steps != nil {
		add("steps", *patch.Steps)
	}
	if patch.ActiveCalories != nil {
		add("active_calories", *patch.ActiveCalories)
	}
	if patch.RestingCalories != nil {
		add("resting_calories", *patch.RestingCalories)
	}
	if patch.RestingHeartRate != nil {
		add("resting_heart_rate", *patch.RestingHeartRate)
	}
	if patch.AvgStress != nil {
		add("avg_stress", *patch.AvgStress)
	}
	if patch.BodyBatteryHigh != nil {
		add("body_battery_high", *patch.BodyBatteryHigh)
	}
	if patch.BodyBatteryLow != nil {
		add("body_battery_low", *patch.BodyBatteryLow)
	}
	if patch.WeightKg != nil {
		add("weight_kg", *patch.WeightKg)
	}
	if patch.SyncSuccess != nil {
		add("sync_success", *patch.SyncSuccess)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	query := fmt.Sprintf(`
		INSERT INTO daily_metrics (%s) VALUES (%s)
		ON CONFLICT(date) DO UPDATE SET %s
	`, strings.Join(cols, ", "), placeholders, strings.Join(updates, ", "))

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert daily record for %s: %w", date, err)
	}
	return nil
}

// GetDaily retrieves the record for a single date, or nil if absent.
func (s *SQLiteStore) GetDaily(ctx context.Context, date types.Date) (*types.DailyRecord, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`
		SELECT %s FROM daily_metrics WHERE date = ?
	`, dailyColumns), date.String())

	rec, err := scanDaily(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily record: %w", err)
	}
	return rec, nil
}

// GetRange retrieves records between start and end inclusive, ordered
// by date ascending. Dates with no record are simply absent - the
// store never synthesizes gap rows.
func (s *SQLiteStore) GetRange(ctx context.Context, start, end types.Date) ([]*types.DailyRecord, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM daily_metrics
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`, dailyColumns), start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query daily range: %w", err)
	}
	defer rows.Close()

	return scanDailyRows(rows)
}

// AllRecords returns stored records ordered by date ascending,
// optionally limited to the most recent limitDays rows.
func (s *SQLiteStore) AllRecords(ctx context.Context, limitDays int) ([]*types.DailyRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM daily_metrics ORDER BY date DESC`, dailyColumns)
	args := []interface{}{}
	if limitDays > 0 {
		query += " LIMIT ?"
		args = append(args, limitDays)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily records: %w", err)
	}
	defer rows.Close()

	records, err := scanDailyRows(rows)
	if err != nil {
		return nil, err
	}

	// Reverse into ascending order
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// CountDays returns the total number of stored daily records.
func (s *SQLiteStore) CountDays(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_metrics`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count daily records: %w", err)
	}
	return count, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanDaily.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDaily(sc scanner) (*types.DailyRecord, error) {
	var rec types.DailyRecord
	var dateStr string
	var sleepHours, weightKg sql.NullFloat64
	var sleepScore, steps, activeCal, restingCal, restingHR, avgStress, bbHigh, bbLow sql.NullInt64
	var sleepQuality sql.NullString

	err := sc.Scan(
		&dateStr, &sleepHours, &sleepScore, &sleepQuality, &steps,
		&activeCal, &restingCal, &restingHR, &avgStress,
		&bbHigh, &bbLow, &weightKg, &rec.SyncSuccess, &rec.SyncedAt,
	)
	if err != nil {
		return nil, err
	}

	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt date in daily_metrics: %w", err)
	}
	rec.Date = date

	if sleepHours.Valid {
		rec.SleepHours = &sleepHours.Float64
	}
	if sleepScore.Valid {
		v := int(sleepScore.Int64)
		rec.SleepScore = &v
	}
	if sleepQuality.Valid {
		rec.SleepQuality = sleepQuality.String
	}
	if steps.Valid {
		v := int(steps.Int64)
		rec.Steps = &v
	}
	if activeCal.Valid {
		v := int(activeCal.Int64)
		rec.ActiveCalories = &v
	}
	if restingCal.Valid {
		v := int(restingCal.Int64)
		rec.RestingCalories = &v
	}
	if restingHR.Valid {
		v := int(restingHR.Int64)
		rec.RestingHeartRate = &v
	}
	if avgStress.Valid {
		v := int(avgStress.Int64)
		rec.AvgStress = &v
	}
	if bbHigh.Valid {
		v := int(bbHigh.Int64)
		rec.BodyBatteryHigh = &v
	}
	if bbLow.Valid {
		v := int(bbLow.Int64)
		rec.BodyBatteryLow = &v
	}
	if weightKg.Valid {
		rec.WeightKg = &weightKg.Float64
	}

	return &rec, nil
}

func scanDailyRows(rows *sql.Rows) ([]*types.DailyRecord, error) {
	var records []*types.DailyRecord
	for rows.Next() {
		rec, err := scanDaily(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily rows: %w", err)
	}
	return records, nil
}
