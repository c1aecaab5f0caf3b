package models

import "time"

// RateLimitExceededResponse is the 429 body returned to throttled clients.
type RateLimitExceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"` // seconds
}

// ForbiddenResponse is the 403 body returned by the security filter.
// Reason carries the deny reason class, never the matched pattern.
type ForbiddenResponse struct {
	Error   string `json:"error"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// ServiceOverloadedResponse is the 503 body returned when the instance
// throttle sheds a request.
type ServiceOverloadedResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"` // seconds
}

// WindowStatusResponse reports the live window state for an identifier.
type WindowStatusResponse struct {
	Identifier string    `json:"identifier"`
	Count      int       `json:"count"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
}

// AllowlistResponse wraps the full allowlist for the admin listing.
type AllowlistResponse struct {
	Entries []AllowlistEntry `json:"entries"`
	Count   int              `json:"count"`
}
