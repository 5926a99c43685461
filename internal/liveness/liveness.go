// Package liveness serves the /health probe for external monitoring.
package liveness

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/jmcorreia/vitals/internal/storage"
	"github.com/jmcorreia/vitals/internal/types"
)

// degradedAfter is how long the process may go without a successful
// sync before the probe reports unhealthy.
const degradedAfter = 48 * time.Hour

// Status is the probe response body.
type Status struct {
	OK            bool   `json:"ok"`
	LastSync      string `json:"last_sync,omitempty"`
	LastSyncAge   string `json:"last_sync_age,omitempty"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	StoredDays    int    `json:"stored_days"`
}

// Server is the liveness HTTP server. It exposes a single GET /health
// route returning 200 when healthy and 503 when degraded.
type Server struct {
	store   storage.Store
	started time.Time

	// now is injectable for tests.
	now func() time.Time

	httpServer *http.Server
}

// NewServer creates a Server over the given store.
func NewServer(store storage.Store) *Server {
	return &Server{
		store:   store,
		started: time.Now(),
		now:     time.Now,
	}
}

// Check computes the current health status. The verdict is degraded
// when no success attempt was appended within the last 48 hours.
func (s *Server) Check(ctx context.Context) Status {
	status := Status{
		UptimeSeconds: int64(s.now().Sub(s.started).Seconds()),
	}

	if days, err := s.store.CountDays(ctx); err == nil {
		status.StoredDays = days
	}

	last, err := s.store.LastAttempt(ctx, types.AttemptSuccess)
	if err != nil {
		log.Printf("liveness: attempt lookup failed: %v", err)
		return status
	}
	if last == nil {
		return status
	}

	age := s.now().Sub(last.Timestamp)
	status.OK = age < degradedAfter
	status.LastSync = last.Timestamp.UTC().Format(time.RFC3339)
	status.LastSyncAge = age.Truncate(time.Second).String()
	return status
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.Check(r.Context())
	code := http.StatusOK
	if !status.OK {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		log.Printf("liveness: response write failed: %v", err)
	}
}

// Start begins serving on the given port. Returns once the listener
// is bound; serving continues until Shutdown.
func (s *Server) Start(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("bind health port %d: %w", port, err)
	}
	s.httpServer = &http.Server{Handler: mux}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("liveness: server failed: %v", err)
		}
	}()
	log.Printf("liveness: serving /health on port %d", port)
	return nil
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
