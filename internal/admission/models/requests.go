package models

import (
	"net/netip"
	"strings"
	"time"

	dErrors "gatekeeper/pkg/domain-errors"
	"gatekeeper/pkg/platform/validation"
)

// AddAllowlistRequest is the admin request to exempt a client IP.
type AddAllowlistRequest struct {
	Identifier string     `json:"identifier"`
	Reason     string     `json:"reason"`
	CreatedBy  string     `json:"created_by"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

func (r *AddAllowlistRequest) Normalize() {
	r.Identifier = strings.TrimSpace(r.Identifier)
	r.Reason = strings.TrimSpace(r.Reason)
	r.CreatedBy = strings.TrimSpace(r.CreatedBy)
}

func (r *AddAllowlistRequest) Validate() error {
	// Size checks
	if err := validation.CheckStringLength("identifier", r.Identifier, validation.MaxIdentifierLength); err != nil {
		return err
	}
	if err := validation.CheckStringLength("reason", r.Reason, validation.MaxReasonLength); err != nil {
		return err
	}
	if err := validation.CheckStringLength("created_by", r.CreatedBy, validation.MaxCreatedByLength); err != nil {
		return err
	}

	// Required checks
	if r.Identifier == "" {
		return dErrors.New(dErrors.CodeValidation, "identifier is required")
	}
	if r.Reason == "" {
		return dErrors.New(dErrors.CodeValidation, "reason is required")
	}

	// Syntax checks
	if _, err := netip.ParseAddr(r.Identifier); err != nil {
		return dErrors.New(dErrors.CodeValidation, "identifier must be a valid IP address")
	}

	// Semantic checks
	if r.ExpiresAt != nil && r.ExpiresAt.Before(time.Now()) {
		return dErrors.New(dErrors.CodeValidation, "expires_at must be in the future")
	}

	return nil
}

// ResetWindowRequest is the admin request to clear a client's window.
type ResetWindowRequest struct {
	Identifier string `json:"identifier"`
}

func (r *ResetWindowRequest) Normalize() {
	r.Identifier = strings.TrimSpace(r.Identifier)
}

func (r *ResetWindowRequest) Validate() error {
	if err := validation.CheckStringLength("identifier", r.Identifier, validation.MaxIdentifierLength); err != nil {
		return err
	}
	if r.Identifier == "" {
		return dErrors.New(dErrors.CodeValidation, "identifier is required")
	}
	if _, err := netip.ParseAddr(r.Identifier); err != nil {
		return dErrors.New(dErrors.CodeValidation, "identifier must be a valid IP address")
	}
	return nil
}
