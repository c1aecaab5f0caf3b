// Package admin implements the operator surface of the admission
// module: allowlist management and window resets.
package admin

import (
	"context"
	"fmt"
	"log/slog"

	"gatekeeper/internal/admission/models"
	"gatekeeper/internal/platform/privacy"
	"gatekeeper/pkg/platform/httputil"
	"gatekeeper/pkg/requestcontext"
)

type AllowlistStore interface {
	Add(ctx context.Context, entry *models.AllowlistEntry) error
	Remove(ctx context.Context, identifier string) error
	List(ctx context.Context) ([]*models.AllowlistEntry, error)
}

type WindowStore interface {
	Reset(ctx context.Context, key string) error
}

type Service struct {
	allowlist AllowlistStore
	windows   WindowStore
	logger    *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(allowlist AllowlistStore, windows WindowStore, opts ...Option) (*Service, error) {
	if allowlist == nil {
		return nil, fmt.Errorf("allowlist store is required")
	}
	if windows == nil {
		return nil, fmt.Errorf("window store is required")
	}

	svc := &Service{
		allowlist: allowlist,
		windows:   windows,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// AddToAllowlist exempts an IP from rate limiting and clears any window
// it already accumulated, so the exemption takes effect immediately.
func (s *Service) AddToAllowlist(ctx context.Context, req *models.AddAllowlistRequest) (*models.AllowlistEntry, error) {
	if err := httputil.PrepareRequest(req); err != nil {
		return nil, err
	}

	entry, err := models.NewAllowlistEntry(req.Identifier, req.Reason, req.CreatedBy, req.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create allowlist entry: %w", err)
	}

	if err := s.allowlist.Add(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to add to allowlist: %w", err)
	}

	if err := s.windows.Reset(ctx, models.NewWindowKey(entry.Identifier).String()); err != nil {
		s.logger.WarnContext(ctx, "window reset after allowlist add failed", "error", err)
	}

	s.logAudit(ctx, "allowlist_entry_added",
		"identifier", privacy.AnonymizeIP(entry.Identifier),
		"expires_at", entry.ExpiresAt,
		"created_by", entry.CreatedBy,
	)
	return entry, nil
}

// RemoveFromAllowlist drops the exemption for an IP.
func (s *Service) RemoveFromAllowlist(ctx context.Context, identifier string) error {
	if identifier == "" {
		return fmt.Errorf("identifier is required")
	}

	if err := s.allowlist.Remove(ctx, identifier); err != nil {
		return fmt.Errorf("failed to remove from allowlist: %w", err)
	}

	s.logAudit(ctx, "allowlist_entry_removed",
		"identifier", privacy.AnonymizeIP(identifier),
	)
	return nil
}

// ListAllowlist returns all live allowlist entries.
func (s *Service) ListAllowlist(ctx context.Context) ([]*models.AllowlistEntry, error) {
	entries, err := s.allowlist.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list allowlist: %w", err)
	}
	return entries, nil
}

// ResetWindow clears the window for an IP.
func (s *Service) ResetWindow(ctx context.Context, req *models.ResetWindowRequest) error {
	if err := httputil.PrepareRequest(req); err != nil {
		return err
	}

	if err := s.windows.Reset(ctx, models.NewWindowKey(req.Identifier).String()); err != nil {
		return fmt.Errorf("failed to reset window: %w", err)
	}

	s.logAudit(ctx, "window_reset_by_admin",
		"identifier", privacy.AnonymizeIP(req.Identifier),
	)
	return nil
}

func (s *Service) logAudit(ctx context.Context, event string, attrs ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attrs = append(attrs, "request_id", requestID)
	}
	args := append(attrs, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
}
