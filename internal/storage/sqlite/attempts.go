package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmcorreia/vitals/internal/types"
)

// AppendAttempt records a sync or report attempt. The entry is
// timestamped at call time and never modified afterwards.
func (s *SQLiteStore) AppendAttempt(ctx context.Context, status types.AttemptStatus, errorMessage string) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid attempt status: %s", status)
	}

	var errMsg sql.NullString
	if errorMessage != "" {
		errMsg = sql.NullString{String: errorMessage, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_attempts (id, timestamp, status, error_message)
		VALUES (?, ?, ?, ?)
	`, uuid.New().String(), time.Now().UTC(), status, errMsg)
	if err != nil {
		return fmt.Errorf("failed to append attempt (status=%s): %w", status, err)
	}
	return nil
}

// HasAttemptToday reports whether an attempt with the given status was
// logged since the start of the current UTC day.
func (s *SQLiteStore) HasAttemptToday(ctx context.Context, status types.AttemptStatus) (bool, error) {
	todayStart := types.TodayUTC().Time()

	var exists int
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM sync_attempts
			WHERE status = ? AND timestamp >= ?
		)
	`, status, todayStart).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query attempts for today: %w", err)
	}
	return exists == 1, nil
}

// LastAttempt returns the most recent attempt with the given status,
// or nil if none exists. An empty status matches any attempt.
func (s *SQLiteStore) LastAttempt(ctx context.Context, status types.AttemptStatus) (*types.Attempt, error) {
	query := `
		SELECT id, timestamp, status, error_message
		FROM sync_attempts
	`
	args := []interface{}{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY timestamp DESC LIMIT 1"

	attempt, err := scanAttempt(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last attempt: %w", err)
	}
	return attempt, nil
}

// RecentAttempts returns the most recent attempts, newest first.
func (s *SQLiteStore) RecentAttempts(ctx context.Context, limit int) ([]*types.Attempt, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, status, error_message
		FROM sync_attempts
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*types.Attempt
	for rows.Next() {
		attempt, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attempt rows: %w", err)
	}
	return attempts, nil
}

func scanAttempt(sc scanner) (*types.Attempt, error) {
	var attempt types.Attempt
	var errMsg sql.NullString

	if err := sc.Scan(&attempt.ID, &attempt.Timestamp, &attempt.Status, &errMsg); err != nil {
		return nil, err
	}
	if errMsg.Valid {
		attempt.ErrorMessage = errMsg.String
	}
	return &attempt, nil
}
