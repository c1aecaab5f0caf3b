// Package window provides fixed-window counter stores for per-client
// rate limiting. A window is a count plus the instant it resets; the
// first request after the reset instant starts a fresh window.
package window

import (
	"context"
	"sync"
	"time"

	"gatekeeper/internal/admission/models"
	"gatekeeper/pkg/requestcontext"
)

// InMemoryStore implements WindowStore with a mutex-guarded map.
// Expired windows are replaced lazily on access; the cleanup worker
// sweeps the ones no client touches again.
type InMemoryStore struct {
	mu      sync.RWMutex
	windows map[string]*fixedWindow // key -> window state
}

type fixedWindow struct {
	count   int
	resetAt time.Time
}

func (w *fixedWindow) expired(now time.Time) bool {
	return now.After(w.resetAt)
}

// NewInMemoryStore creates an empty in-memory window store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		windows: make(map[string]*fixedWindow),
	}
}

// Allow increments the key's window counter and reports whether the
// request fits under the limit.
func (s *InMemoryStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	return s.AllowN(ctx, key, 1, limit, window)
}

// AllowN increments the key's window counter by cost. The counter keeps
// incrementing past the limit so GetCurrentCount reflects real traffic,
// but remaining never goes negative in the result.
func (s *InMemoryStore) AllowN(ctx context.Context, key string, cost, limit int, window time.Duration) (*models.RateLimitResult, error) {
	now := requestcontext.Now(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || w.expired(now) {
		w = &fixedWindow{resetAt: now.Add(window)}
		s.windows[key] = w
	}
	w.count += cost

	allowed := w.count <= limit
	remaining := limit - w.count
	if remaining < 0 {
		remaining = 0
	}

	return &models.RateLimitResult{
		Allowed:    allowed,
		Limit:      limit,
		Remaining:  remaining,
		ResetAt:    w.resetAt,
		RetryAfter: retryAfterSeconds(allowed, now, w.resetAt),
	}, nil
}

// Reset clears the window for a key.
func (s *InMemoryStore) Reset(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, key)
	return nil
}

// GetCurrentCount returns the live count for a key, zero when the
// window is absent or already past its reset instant.
func (s *InMemoryStore) GetCurrentCount(ctx context.Context, key string) (int, error) {
	now := requestcontext.Now(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.windows[key]
	if !ok || w.expired(now) {
		return 0, nil
	}
	return w.count, nil
}

// DeleteExpired removes windows past their reset instant and returns
// how many were removed. Called by the cleanup worker.
func (s *InMemoryStore) DeleteExpired(ctx context.Context) (int, error) {
	now := requestcontext.Now(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, w := range s.windows {
		if w.expired(now) {
			delete(s.windows, key)
			removed++
		}
	}
	return removed, nil
}

// Size returns the number of tracked windows, expired ones included.
func (s *InMemoryStore) Size(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.windows), nil
}

func retryAfterSeconds(allowed bool, now, resetAt time.Time) int {
	if allowed {
		return 0
	}
	seconds := int(resetAt.Sub(now).Seconds())
	if seconds < 1 {
		return 1
	}
	return seconds
}
