package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcorreia/vitals/internal/types"
)

func TestBackupSnapshotIsReadable(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	date, err := types.ParseDate("2026-03-01")
	require.NoError(t, err)
	require.NoError(t, store.UpsertDaily(ctx, date, &types.DailyPatch{Steps: types.Ptr(8200)}))

	dir := filepath.Join(t.TempDir(), "backups")
	path, err := store.Backup(ctx, dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)

	snapshot, err := New(path)
	require.NoError(t, err)
	defer snapshot.Close()

	rec, err := snapshot.GetDaily(ctx, date)
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.NotNil(t, rec.Steps)
	assert.Equal(t, 8200, *rec.Steps)
}

func TestBackupPrunesOldSnapshots(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	dir := t.TempDir()
	for i := 0; i < 9; i++ {
		name := fmt.Sprintf("vitals-20260101-0000%02d.db", i)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("stale"), 0644))
	}
	// An unrelated file is never pruned.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0644))

	_, err := store.Backup(ctx, dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var snapshots int
	for _, e := range entries {
		if e.Name() == "notes.txt" {
			continue
		}
		snapshots++
	}
	assert.Equal(t, backupRetention, snapshots)
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))

	// The oldest fakes are the ones pruned.
	_, err = os.Stat(filepath.Join(dir, "vitals-20260101-000000.db"))
	assert.True(t, os.IsNotExist(err))
}
