package models

import (
	"time"

	"github.com/google/uuid"

	dErrors "gatekeeper/pkg/domain-errors"
)

// DenyReason classifies why the admission layer rejected a request.
// Responses carry the reason class, never the matched rule itself.
type DenyReason string

const (
	ReasonOriginNotAllowed DenyReason = "origin_not_allowed"
	ReasonUserAgentBlocked DenyReason = "user_agent_blocked"
	ReasonBotDetected      DenyReason = "bot_detected"
	ReasonRateLimited      DenyReason = "rate_limited"
	ReasonThrottled        DenyReason = "throttled"
)

// FilterDecision is the outcome of the stateless header filter.
// It carries no per-request state beyond the verdict.
type FilterDecision struct {
	Allowed bool       `json:"allowed"`
	Reason  DenyReason `json:"reason,omitempty"`
}

// Allow is the accepting filter decision.
func Allow() FilterDecision {
	return FilterDecision{Allowed: true}
}

// Deny builds a rejecting filter decision with the given reason class.
func Deny(reason DenyReason) FilterDecision {
	return FilterDecision{Allowed: false, Reason: reason}
}

// RateLimitResult describes the state of a client's fixed window after a check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}

// AllowlistEntry exempts a client IP from rate limiting.
type AllowlistEntry struct {
	ID         string     `json:"id"`
	Identifier string     `json:"identifier"` // IP address
	Reason     string     `json:"reason"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	CreatedBy  string     `json:"created_by"` // operator name from the admin request
}

// NewAllowlistEntry creates an AllowlistEntry with domain invariant validation.
func NewAllowlistEntry(identifier, reason, createdBy string, expiresAt *time.Time) (*AllowlistEntry, error) {
	if identifier == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "identifier cannot be empty")
	}
	if reason == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "reason cannot be empty")
	}

	return &AllowlistEntry{
		ID:         uuid.NewString(),
		Identifier: identifier,
		Reason:     reason,
		ExpiresAt:  expiresAt,
		CreatedAt:  time.Now(),
		CreatedBy:  createdBy,
	}, nil
}

func (e *AllowlistEntry) IsExpired(now time.Time) bool {
	if e.ExpiresAt == nil {
		return false
	}
	return now.After(*e.ExpiresAt)
}
