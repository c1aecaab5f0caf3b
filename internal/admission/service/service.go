// Package service orchestrates the admission pipeline: the stateless
// header filter runs first, then the allowlist check, then the
// per-client fixed window.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gatekeeper/internal/admission/filter"
	"gatekeeper/internal/admission/metrics"
	"gatekeeper/internal/admission/models"
	"gatekeeper/internal/admission/tracer"
	"gatekeeper/internal/platform/privacy"
	dErrors "gatekeeper/pkg/domain-errors"
	"gatekeeper/pkg/requestcontext"
)

// WindowStore defines the persistence interface for fixed-window counters.
type WindowStore interface {
	// Allow checks if a request is allowed and increments the counter.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)

	// Reset clears the counter for a key.
	Reset(ctx context.Context, key string) error

	// GetCurrentCount returns the live count for a key.
	GetCurrentCount(ctx context.Context, key string) (int, error)
}

// AllowlistStore defines the read-only interface for checking
// allowlist membership.
type AllowlistStore interface {
	IsAllowlisted(ctx context.Context, identifier string) (bool, error)
}

// Decision is the outcome of the full admission pipeline for one request.
type Decision struct {
	Allowed   bool
	Reason    models.DenyReason
	RateLimit *models.RateLimitResult // nil when the filter denied or the store failed
}

// Service evaluates requests for admission.
type Service struct {
	filter    *filter.Filter
	windows   WindowStore
	allowlist AllowlistStore
	limit     int
	window    time.Duration
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    tracer.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(
	f *filter.Filter,
	windows WindowStore,
	allowlist AllowlistStore,
	limit int,
	window time.Duration,
	opts ...Option,
) (*Service, error) {
	if f == nil {
		return nil, fmt.Errorf("filter is required")
	}
	if windows == nil {
		return nil, fmt.Errorf("window store is required")
	}
	if allowlist == nil {
		return nil, fmt.Errorf("allowlist store is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if window <= 0 {
		return nil, fmt.Errorf("window must be positive, got %s", window)
	}

	svc := &Service{
		filter:    f,
		windows:   windows,
		allowlist: allowlist,
		limit:     limit,
		window:    window,
		logger:    slog.Default(),
		tracer:    tracer.NewNoop(),
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// Admit runs the full pipeline for one request. Store failures admit
// the request rather than taking the whole service down with the
// backend; the failure is logged and counted instead.
func (s *Service) Admit(ctx context.Context, ip, origin, userAgent string) Decision {
	ctx, span := s.tracer.Start(ctx, tracer.SpanAdmit,
		tracer.String(tracer.AttrClientIP, privacy.AnonymizeIP(ip)),
	)

	decision := s.admit(ctx, ip, origin, userAgent)

	span.SetAttributes(
		tracer.Bool(tracer.AttrAllowed, decision.Allowed),
		tracer.String(tracer.AttrReason, string(decision.Reason)),
	)
	span.End(nil)

	s.recordDecision(decision)
	return decision
}

func (s *Service) admit(ctx context.Context, ip, origin, userAgent string) Decision {
	_, filterSpan := s.tracer.Start(ctx, tracer.SpanFilter)
	fd := s.filter.Evaluate(origin, userAgent)
	filterSpan.SetAttributes(tracer.Bool(tracer.AttrAllowed, fd.Allowed))
	filterSpan.End(nil)
	if !fd.Allowed {
		s.logAudit(ctx, "request_filtered",
			"ip", privacy.AnonymizeIP(ip),
			"reason", string(fd.Reason),
		)
		return Decision{Allowed: false, Reason: fd.Reason}
	}

	_, rlSpan := s.tracer.Start(ctx, tracer.SpanRateLimit,
		tracer.Int(tracer.AttrLimit, s.limit),
	)
	defer rlSpan.End(nil)

	allowlisted, err := s.allowlist.IsAllowlisted(ctx, ip)
	if err != nil {
		// Treat an allowlist failure as a miss and fall through to
		// the window check.
		s.logger.ErrorContext(ctx, "allowlist check failed", "error", err)
		allowlisted = false
	}
	if allowlisted {
		if s.metrics != nil {
			s.metrics.IncrementAllowlistHits()
		}
		rlSpan.SetAttributes(tracer.Bool(tracer.AttrAllowlist, true))
		return Decision{
			Allowed: true,
			RateLimit: &models.RateLimitResult{
				Allowed:   true,
				Limit:     s.limit,
				Remaining: s.limit,
				ResetAt:   requestcontext.Now(ctx).Add(s.window),
			},
		}
	}

	key := models.NewWindowKey(ip)
	result, err := s.windows.Allow(ctx, key.String(), s.limit, s.window)
	if result != nil {
		rlSpan.SetAttributes(tracer.Int(tracer.AttrRemaining, result.Remaining))
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "window store unavailable, admitting request",
			"error", err,
			"ip", privacy.AnonymizeIP(ip),
		)
		if s.metrics != nil {
			s.metrics.IncrementStoreFailures()
		}
		return Decision{Allowed: true}
	}

	if !result.Allowed {
		s.logAudit(ctx, "rate_limit_exceeded",
			"ip", privacy.AnonymizeIP(ip),
			"limit", s.limit,
			"window_seconds", int(s.window.Seconds()),
			"retry_after", result.RetryAfter,
		)
		return Decision{Allowed: false, Reason: models.ReasonRateLimited, RateLimit: result}
	}

	return Decision{Allowed: true, RateLimit: result}
}

// ResetWindow clears the window for an identifier. Used by the admin
// surface after an allowlist change or an operator intervention.
func (s *Service) ResetWindow(ctx context.Context, identifier string) error {
	key := models.NewWindowKey(identifier)
	if err := s.windows.Reset(ctx, key.String()); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to reset window")
	}
	s.logAudit(ctx, "window_reset", "ip", privacy.AnonymizeIP(identifier))
	return nil
}

// WindowStatus reports the live window state for an identifier.
func (s *Service) WindowStatus(ctx context.Context, identifier string) (*models.WindowStatusResponse, error) {
	key := models.NewWindowKey(identifier)
	count, err := s.windows.GetCurrentCount(ctx, key.String())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read window")
	}

	remaining := s.limit - count
	if remaining < 0 {
		remaining = 0
	}

	return &models.WindowStatusResponse{
		Identifier: identifier,
		Count:      count,
		Limit:      s.limit,
		Remaining:  remaining,
		ResetAt:    requestcontext.Now(ctx).Add(s.window),
	}, nil
}

func (s *Service) recordDecision(d Decision) {
	if s.metrics == nil {
		return
	}
	if d.Allowed {
		s.metrics.RecordDecision("allowed", "")
		return
	}
	s.metrics.RecordDecision("denied", string(d.Reason))
}

func (s *Service) logAudit(ctx context.Context, event string, attrs ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attrs = append(attrs, "request_id", requestID)
	}
	args := append(attrs, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
}
