// Package handler exposes the admission admin surface over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gatekeeper/internal/admission/models"
	dErrors "gatekeeper/pkg/domain-errors"
	"gatekeeper/pkg/platform/httputil"
	"gatekeeper/pkg/platform/validation"
	"gatekeeper/pkg/requestcontext"
)

// AdminService manages the allowlist and operator window resets.
type AdminService interface {
	AddToAllowlist(ctx context.Context, req *models.AddAllowlistRequest) (*models.AllowlistEntry, error)
	RemoveFromAllowlist(ctx context.Context, identifier string) error
	ListAllowlist(ctx context.Context) ([]*models.AllowlistEntry, error)
	ResetWindow(ctx context.Context, req *models.ResetWindowRequest) error
}

// StatusService reads the live window state for an identifier.
type StatusService interface {
	WindowStatus(ctx context.Context, identifier string) (*models.WindowStatusResponse, error)
}

type Handler struct {
	admin  AdminService
	status StatusService
	logger *slog.Logger
}

func New(admin AdminService, status StatusService, logger *slog.Logger) *Handler {
	return &Handler{
		admin:  admin,
		status: status,
		logger: logger,
	}
}

func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/admin/admission/allowlist", h.HandleListAllowlist)
	r.Post("/admin/admission/allowlist", h.HandleAddAllowlist)
	r.Delete("/admin/admission/allowlist/{identifier}", h.HandleRemoveAllowlist)
	r.Post("/admin/admission/reset", h.HandleResetWindow)
	r.Get("/admin/admission/status/{identifier}", h.HandleWindowStatus)
}

// HandleAddAllowlist implements POST /admin/admission/allowlist.
//
// Input: { "identifier": "203.0.113.7", "reason": "...", "expires_at": "..." }
// Output: the created entry.
func (h *Handler) HandleAddAllowlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, validation.MaxBodySize)

	req, ok := httputil.DecodeJSON[models.AddAllowlistRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	entry, err := h.admin.AddToAllowlist(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to add to allowlist",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, entry)
}

// HandleRemoveAllowlist implements DELETE /admin/admission/allowlist/{identifier}.
//
// Output: 204 No Content.
func (h *Handler) HandleRemoveAllowlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identifier := chi.URLParam(r, "identifier")
	if identifier == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "identifier is required"))
		return
	}

	if err := h.admin.RemoveFromAllowlist(ctx, identifier); err != nil {
		h.logger.ErrorContext(ctx, "failed to remove from allowlist",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListAllowlist implements GET /admin/admission/allowlist.
func (h *Handler) HandleListAllowlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := h.admin.ListAllowlist(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list allowlist",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	out := make([]models.AllowlistEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, *e)
	}
	httputil.WriteJSON(w, http.StatusOK, &models.AllowlistResponse{
		Entries: out,
		Count:   len(out),
	})
}

// HandleResetWindow implements POST /admin/admission/reset.
//
// Input: { "identifier": "203.0.113.7" }
// Output: 204 No Content.
func (h *Handler) HandleResetWindow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, validation.MaxBodySize)

	req, ok := httputil.DecodeJSON[models.ResetWindowRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}

	if err := h.admin.ResetWindow(ctx, req); err != nil {
		h.logger.ErrorContext(ctx, "failed to reset window",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleWindowStatus implements GET /admin/admission/status/{identifier}.
func (h *Handler) HandleWindowStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identifier := chi.URLParam(r, "identifier")
	if identifier == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "identifier is required"))
		return
	}

	status, err := h.status.WindowStatus(ctx, identifier)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read window status",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, status)
}
