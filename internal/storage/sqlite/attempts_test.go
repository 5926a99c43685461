package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcorreia/vitals/internal/types"
)

func TestAppendAndQueryAttempts(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)

	require.NoError(t, store.AppendAttempt(ctx, types.AttemptError, "provider timeout"))
	require.NoError(t, store.AppendAttempt(ctx, types.AttemptSuccess, ""))

	t.Run("HasAttemptToday", func(t *testing.T) {
		ok, err := store.HasAttemptToday(ctx, types.AttemptSuccess)
		require.NoError(t, err)
		assert.True(t, ok)

		// Report status is tracked independently of sync status
		ok, err = store.HasAttemptToday(ctx, types.AttemptReportSent)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("LastAttempt", func(t *testing.T) {
		last, err := store.LastAttempt(ctx, types.AttemptError)
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.Equal(t, "provider timeout", last.ErrorMessage)
		assert.NotEmpty(t, last.ID)

		none, err := store.LastAttempt(ctx, types.AttemptPartial)
		require.NoError(t, err)
		assert.Nil(t, none)
	})

	t.Run("RecentAttempts", func(t *testing.T) {
		attempts, err := store.RecentAttempts(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, attempts, 2)
	})
}

func TestAppendAttemptRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)

	err := store.AppendAttempt(ctx, types.AttemptStatus("retried"), "")
	assert.Error(t, err)
}
