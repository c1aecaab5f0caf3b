package window

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"gatekeeper/internal/admission/models"
	dErrors "gatekeeper/pkg/domain-errors"
	"gatekeeper/pkg/platform/circuit"
)

// probeInterval limits how often an open circuit retries the backend.
const probeInterval = time.Second

// Store is the full backend interface the resilient wrapper fronts.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)
	AllowN(ctx context.Context, key string, cost, limit int, window time.Duration) (*models.RateLimitResult, error)
	Reset(ctx context.Context, key string) error
	GetCurrentCount(ctx context.Context, key string) (int, error)
	DeleteExpired(ctx context.Context) (int, error)
	Size(ctx context.Context) (int, error)
}

// ResilientStore wraps a backend store with a circuit breaker. When the
// backend fails repeatedly, calls short-circuit to an immediate error
// the admission service already treats as fail-open, so a down Redis
// does not add a connection timeout to every request. While open, one
// probe per second is let through so the breaker can close again.
type ResilientStore struct {
	backend   Store
	breaker   *circuit.Breaker
	logger    *slog.Logger
	lastProbe atomic.Int64 // unix nanos of the last probe while open
}

// NewResilientStore wraps backend with a breaker tripping after 5
// consecutive failures and recovering after 3 successful probes.
func NewResilientStore(backend Store, logger *slog.Logger) *ResilientStore {
	return &ResilientStore{
		backend: backend,
		breaker: circuit.New("window-store"),
		logger:  logger,
	}
}

var errCircuitOpen = dErrors.New(dErrors.CodeUnavailable, "window store circuit open")

// mayProbe reports whether an open circuit should try the backend now.
// Only one caller per interval wins the CAS.
func (s *ResilientStore) mayProbe() bool {
	now := time.Now().UnixNano()
	last := s.lastProbe.Load()
	if now-last < probeInterval.Nanoseconds() {
		return false
	}
	return s.lastProbe.CompareAndSwap(last, now)
}

func (s *ResilientStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	return s.AllowN(ctx, key, 1, limit, window)
}

func (s *ResilientStore) AllowN(ctx context.Context, key string, cost, limit int, window time.Duration) (*models.RateLimitResult, error) {
	if s.breaker.IsOpen() && !s.mayProbe() {
		return nil, errCircuitOpen
	}

	result, err := s.backend.AllowN(ctx, key, cost, limit, window)
	if err != nil {
		if _, change := s.breaker.RecordFailure(); change.Opened {
			s.logger.Error("window store circuit opened",
				"breaker", s.breaker.Name(),
				"error", err,
			)
		}
		return nil, err
	}

	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.Info("window store circuit closed", "breaker", s.breaker.Name())
	}
	return result, nil
}

func (s *ResilientStore) Reset(ctx context.Context, key string) error {
	if s.breaker.IsOpen() {
		return errCircuitOpen
	}
	return s.backend.Reset(ctx, key)
}

func (s *ResilientStore) GetCurrentCount(ctx context.Context, key string) (int, error) {
	if s.breaker.IsOpen() {
		return 0, errCircuitOpen
	}
	return s.backend.GetCurrentCount(ctx, key)
}

func (s *ResilientStore) DeleteExpired(ctx context.Context) (int, error) {
	if s.breaker.IsOpen() {
		return 0, nil
	}
	return s.backend.DeleteExpired(ctx)
}

func (s *ResilientStore) Size(ctx context.Context) (int, error) {
	if s.breaker.IsOpen() {
		return 0, nil
	}
	return s.backend.Size(ctx)
}
