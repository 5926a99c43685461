package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// backupRetention is how many snapshots survive a prune.
const backupRetention = 7

// Backup writes a consistent snapshot of the database into dir and
// prunes old snapshots down to the newest seven. VACUUM INTO copies
// through the sqlite engine, so a snapshot is valid even while the
// WAL has uncheckpointed pages.
func (s *SQLiteStore) Backup(ctx context.Context, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := fmt.Sprintf("vitals-%s.db", time.Now().UTC().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", path); err != nil {
		return "", fmt.Errorf("failed to back up database: %w", err)
	}

	if err := pruneBackups(dir); err != nil {
		return path, fmt.Errorf("failed to prune old backups: %w", err)
	}
	return path, nil
}

// pruneBackups deletes the oldest snapshots beyond the retention
// count. Timestamped names sort chronologically.
func pruneBackups(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), "vitals-") && strings.HasSuffix(e.Name(), ".db") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for len(names) > backupRetention {
		if err := os.Remove(filepath.Join(dir, names[0])); err != nil {
			return err
		}
		names = names[1:]
	}
	return nil
}
