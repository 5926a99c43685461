package liveness

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcorreia/vitals/internal/storage/sqlite"
	"github.com/jmcorreia/vitals/internal/types"
)

func setupServer(t *testing.T) (*Server, *sqlite.SQLiteStore) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "vitals.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewServer(store), store
}

func TestCheckNeverSynced(t *testing.T) {
	srv, _ := setupServer(t)
	status := srv.Check(context.Background())
	assert.False(t, status.OK)
	assert.Empty(t, status.LastSync)
}

func TestCheckRecentSyncIsHealthy(t *testing.T) {
	ctx := context.Background()
	srv, store := setupServer(t)

	require.NoError(t, store.AppendAttempt(ctx, types.AttemptSuccess, ""))

	status := srv.Check(ctx)
	assert.True(t, status.OK)
	assert.NotEmpty(t, status.LastSync)
}

func TestCheckDegradesAfter48Hours(t *testing.T) {
	ctx := context.Background()
	srv, store := setupServer(t)

	require.NoError(t, store.AppendAttempt(ctx, types.AttemptSuccess, ""))

	srv.now = func() time.Time { return time.Now().Add(49 * time.Hour) }
	status := srv.Check(ctx)
	assert.False(t, status.OK)

	srv.now = func() time.Time { return time.Now().Add(47 * time.Hour) }
	assert.True(t, srv.Check(ctx).OK)
}

func TestHealthEndpoint(t *testing.T) {
	ctx := context.Background()
	srv, store := setupServer(t)

	rec := httptest.NewRecorder()
	srv.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	require.NoError(t, store.AppendAttempt(ctx, types.AttemptSuccess, ""))

	rec = httptest.NewRecorder()
	srv.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var status Status
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.True(t, status.OK)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
