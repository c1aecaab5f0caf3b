// Package cleanup runs the periodic sweep that drops expired windows
// and allowlist entries the lazy reads never touched again.
package cleanup

import (
	"context"
	"log/slog"
	"time"

	"gatekeeper/internal/admission/metrics"
)

// Result contains the outcome of one sweep.
type Result struct {
	WindowsRemoved   int
	AllowlistRemoved int
	ActiveWindows    int
	Duration         time.Duration
}

type WindowStore interface {
	DeleteExpired(ctx context.Context) (int, error)
	Size(ctx context.Context) (int, error)
}

type AllowlistStore interface {
	DeleteExpired(ctx context.Context) (int, error)
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

type Service struct {
	windows   WindowStore
	allowlist AllowlistStore
	logger    *slog.Logger
	interval  time.Duration
	metrics   *metrics.Metrics
}

func New(windows WindowStore, allowlist AllowlistStore, opts ...Option) *Service {
	service := &Service{
		windows:   windows,
		allowlist: allowlist,
		logger:    slog.Default(),
		interval:  time.Minute,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Start runs sweeps on a ticker until the context is cancelled.
func (s *Service) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			startTime := time.Now()
			res, err := s.RunOnce(ctx)
			duration := time.Since(startTime)

			if err != nil {
				s.logger.Error("admission_cleanup_failed",
					"error", err,
					"duration_ms", duration.Milliseconds(),
				)
				if s.metrics != nil {
					s.metrics.IncrementCleanupRuns("error")
					s.metrics.ObserveCleanupDuration(duration.Seconds())
				}
				continue
			}

			res.Duration = duration

			s.logger.Info("admission_cleanup_completed",
				"windows_removed", res.WindowsRemoved,
				"allowlist_removed", res.AllowlistRemoved,
				"active_windows", res.ActiveWindows,
				"duration_ms", duration.Milliseconds(),
			)

			if s.metrics != nil {
				s.metrics.AddCleanupRemoved("window", res.WindowsRemoved)
				s.metrics.AddCleanupRemoved("allowlist", res.AllowlistRemoved)
				s.metrics.SetActiveWindows(res.ActiveWindows)
				s.metrics.IncrementCleanupRuns("success")
				s.metrics.ObserveCleanupDuration(duration.Seconds())
			}

		case <-ctx.Done():
			s.logger.Info("admission cleanup worker stopping", "reason", ctx.Err())
			return ctx.Err()
		}
	}
}

// RunOnce executes a single sweep. Logging is handled by the caller (Start).
func (s *Service) RunOnce(ctx context.Context) (*Result, error) {
	windowsRemoved, err := s.windows.DeleteExpired(ctx)
	if err != nil {
		return nil, err
	}

	allowlistRemoved, err := s.allowlist.DeleteExpired(ctx)
	if err != nil {
		return nil, err
	}

	active, err := s.windows.Size(ctx)
	if err != nil {
		return nil, err
	}

	return &Result{
		WindowsRemoved:   windowsRemoved,
		AllowlistRemoved: allowlistRemoved,
		ActiveWindows:    active,
	}, nil
}
