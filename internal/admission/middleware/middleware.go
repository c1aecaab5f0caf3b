// Package middleware exposes the admission pipeline as chi middleware.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"gatekeeper/internal/admission/models"
	"gatekeeper/internal/admission/service"
	"gatekeeper/pkg/platform/httputil"
	"gatekeeper/pkg/requestcontext"
)

// Admitter decides whether a request may proceed.
type Admitter interface {
	Admit(ctx context.Context, ip, origin, userAgent string) service.Decision
}

// Throttler caps aggregate request volume.
type Throttler interface {
	Allow() bool
}

// ThrottleMetrics counts requests shed by the instance throttle.
type ThrottleMetrics interface {
	IncrementThrottled()
}

type Middleware struct {
	admitter Admitter
	logger   *slog.Logger
}

func New(admitter Admitter, logger *slog.Logger) *Middleware {
	return &Middleware{
		admitter: admitter,
		logger:   logger,
	}
}

// Admit runs the filter and rate limit pipeline on every request.
// Filter denials return 403, window denials return 429 with the
// standard rate limit headers.
func (m *Middleware) Admit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)

		decision := m.admitter.Admit(ctx, ip, r.Header.Get("Origin"), r.Header.Get("User-Agent"))

		// Headers go out on allowed responses too so well-behaved
		// clients can pace themselves.
		addRateLimitHeaders(w, decision.RateLimit)

		if decision.Allowed {
			next.ServeHTTP(w, r)
			return
		}

		switch decision.Reason {
		case models.ReasonRateLimited:
			writeRateLimitExceeded(w, decision.RateLimit)
		default:
			writeForbidden(w, decision.Reason)
		}
	})
}

// GlobalThrottle sheds load with 503 before the pipeline runs.
// Each shed request is counted through metrics when one is provided.
func GlobalThrottle(throttler Throttler, metrics ThrottleMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !throttler.Allow() {
				if metrics != nil {
					metrics.IncrementThrottled()
				}
				writeServiceOverloaded(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.RateLimitResult) {
	if result == nil {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeRateLimitExceeded(w http.ResponseWriter, result *models.RateLimitResult) {
	retryAfter := 1
	if result != nil {
		retryAfter = result.RetryAfter
	}
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.RateLimitExceededResponse{
		Error:      "rate_limit_exceeded",
		Message:    "Too many requests from this IP address. Please try again later.",
		RetryAfter: retryAfter,
	})
}

func writeForbidden(w http.ResponseWriter, reason models.DenyReason) {
	httputil.WriteJSON(w, http.StatusForbidden, &models.ForbiddenResponse{
		Error:   "forbidden",
		Reason:  string(reason),
		Message: "Request blocked by security policy.",
	})
}

func writeServiceOverloaded(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "60")
	httputil.WriteJSON(w, http.StatusServiceUnavailable, &models.ServiceOverloadedResponse{
		Error:      "service_unavailable",
		Message:    "Service is temporarily overloaded. Please try again later.",
		RetryAfter: 60,
	})
}
