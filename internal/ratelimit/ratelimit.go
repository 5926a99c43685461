// Package ratelimit provides a keyed fixed-window limiter: at most
// one allowed action per key per window. State is explicit and the
// clock injectable, so callers own the lifetime instead of leaning on
// hidden process-wide maps.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter allows one action per key per window.
type Limiter struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time

	// now is injectable for tests.
	now func() time.Time
}

// New creates a Limiter with the given window.
func New(window time.Duration) *Limiter {
	return &Limiter{
		window: window,
		last:   map[string]time.Time{},
		now:    time.Now,
	}
}

// Allow reports whether the key may act now, and records the action
// when it may. The first call for a key always succeeds.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if last, ok := l.last[key]; ok && now.Sub(last) < l.window {
		return false
	}
	l.last[key] = now
	return true
}

// Remaining returns how long until the key may act again, zero when
// it may act now.
func (l *Limiter) Remaining(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	last, ok := l.last[key]
	if !ok {
		return 0
	}
	remaining := l.window - l.now().Sub(last)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Reset clears the key's record, re-allowing it immediately.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.last, key)
}
