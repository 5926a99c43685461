package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/jmcorreia/vitals/internal/types"
)

// AddFoodEntries stores food entries for a day inside one transaction
// and returns the assigned row IDs in input order.
func (s *SQLiteStore) AddFoodEntries(ctx context.Context, date types.Date, entries []*types.FoodEntry) ([]int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	ids := make([]int64, 0, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, fmt.Errorf("invalid food entry: %w", err)
		}

		source := entry.Source
		if source == "" {
			source = "manual"
		}
		unit := entry.Unit
		if unit == "" {
			unit = "un"
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO food_entries (
				date, name, quantity, unit, calories, protein_g,
				fat_g, carbs_g, fiber_g, source, barcode, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, date.String(), entry.Name, entry.Quantity, unit,
			entry.Calories, entry.ProteinG, entry.FatG, entry.CarbsG, entry.FiberG,
			source, nullString(entry.Barcode), now)
		if err != nil {
			return nil, fmt.Errorf("failed to insert food entry %q: %w", entry.Name, err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get food entry id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit food entries: %w", err)
	}
	return ids, nil
}

// FoodEntries returns all entries for a day ordered by creation time.
func (s *SQLiteStore) FoodEntries(ctx context.Context, date types.Date) ([]*types.FoodEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, name, quantity, unit, calories, protein_g,
		       fat_g, carbs_g, fiber_g, source, barcode, created_at
		FROM food_entries
		WHERE date = ?
		ORDER BY created_at ASC, id ASC
	`, date.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query food entries: %w", err)
	}
	defer rows.Close()

	return scanFoodRows(rows)
}

// FoodEntriesRange returns entries between start and end inclusive,
// ordered by date then creation time.
func (s *SQLiteStore) FoodEntriesRange(ctx context.Context, start, end types.Date) ([]*types.FoodEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, name, quantity, unit, calories, protein_g,
		       fat_g, carbs_g, fiber_g, source, barcode, created_at
		FROM food_entries
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, created_at ASC, id ASC
	`, start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query food entry range: %w", err)
	}
	defer rows.Close()

	return scanFoodRows(rows)
}

// DeleteLastFoodEntry removes the most recently created entry for the
// day and returns it, or nil when the day has no entries. This is the
// only hard delete in the store.
func (s *SQLiteStore) DeleteLastFoodEntry(ctx context.Context, date types.Date) (*types.FoodEntry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT id, date, name, quantity, unit, calories, protein_g,
		       fat_g, carbs_g, fiber_g, source, barcode, created_at
		FROM food_entries
		WHERE date = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, date.String())

	entry, err := scanFood(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find last food entry: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM food_entries WHERE id = ?`, entry.ID); err != nil {
		return nil, fmt.Errorf("failed to delete food entry %d: %w", entry.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit food entry delete: %w", err)
	}
	return entry, nil
}

// DailyNutrition returns summed macro totals for the day. All totals
// are zero when nothing was logged.
func (s *SQLiteStore) DailyNutrition(ctx context.Context, date types.Date) (*types.NutritionTotals, error) {
	var totals types.NutritionTotals
	var calories, protein, fat, carbs, fiber sql.NullFloat64

	err := s.db.QueryRowContext(ctx, `
		SELECT SUM(calories), SUM(protein_g), SUM(fat_g), SUM(carbs_g),
		       SUM(fiber_g), COUNT(id)
		FROM food_entries
		WHERE date = ?
	`, date.String()).Scan(&calories, &protein, &fat, &carbs, &fiber, &totals.EntryCount)
	if err != nil {
		return nil, fmt.Errorf("failed to sum daily nutrition: %w", err)
	}

	totals.Calories = calories.Float64
	totals.ProteinG = protein.Float64
	totals.FatG = fat.Float64
	totals.CarbsG = carbs.Float64
	totals.FiberG = fiber.Float64
	return &totals, nil
}

// WeeklyNutrition returns per-day macro averages over the 7 days
// ending on end, averaged over days that actually have entries.
func (s *SQLiteStore) WeeklyNutrition(ctx context.Context, end types.Date) (*types.NutritionAverages, error) {
	start := end.AddDays(-6)

	var calories, protein, fat, carbs, fiber sql.NullFloat64
	var daysWithData int

	err := s.db.QueryRowContext(ctx, `
		SELECT SUM(calories), SUM(protein_g), SUM(fat_g), SUM(carbs_g),
		       SUM(fiber_g), COUNT(DISTINCT date)
		FROM food_entries
		WHERE date >= ? AND date <= ?
	`, start.String(), end.String()).Scan(&calories, &protein, &fat, &carbs, &fiber, &daysWithData)
	if err != nil {
		return nil, fmt.Errorf("failed to sum weekly nutrition: %w", err)
	}

	days := daysWithData
	if days == 0 {
		days = 1
	}
	avg := func(v sql.NullFloat64) float64 {
		return round1(v.Float64 / float64(days))
	}

	return &types.NutritionAverages{
		AvgCalories:  avg(calories),
		AvgProteinG:  avg(protein),
		AvgFatG:      avg(fat),
		AvgCarbsG:    avg(carbs),
		AvgFiberG:    avg(fiber),
		DaysWithData: daysWithData,
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func scanFood(sc scanner) (*types.FoodEntry, error) {
	var entry types.FoodEntry
	var dateStr string
	var calories, protein, fat, carbs, fiber sql.NullFloat64
	var barcode sql.NullString

	err := sc.Scan(
		&entry.ID, &dateStr, &entry.Name, &entry.Quantity, &entry.Unit,
		&calories, &protein, &fat, &carbs, &fiber,
		&entry.Source, &barcode, &entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt date in food_entries: %w", err)
	}
	entry.Date = date

	if calories.Valid {
		entry.Calories = &calories.Float64
	}
	if protein.Valid {
		entry.ProteinG = &protein.Float64
	}
	if fat.Valid {
		entry.FatG = &fat.Float64
	}
	if carbs.Valid {
		entry.CarbsG = &carbs.Float64
	}
	if fiber.Valid {
		entry.FiberG = &fiber.Float64
	}
	if barcode.Valid {
		entry.Barcode = barcode.String
	}
	return &entry, nil
}

func scanFoodRows(rows *sql.Rows) ([]*types.FoodEntry, error) {
	var entries []*types.FoodEntry
	for rows.Next() {
		entry, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating food rows: %w", err)
	}
	return entries, nil
}
