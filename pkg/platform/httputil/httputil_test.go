package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "gatekeeper/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "rate limited maps to 429",
			err:        dErrors.New(dErrors.CodeRateLimited, "too many requests"),
			wantStatus: http.StatusTooManyRequests,
			wantCode:   "rate_limit_exceeded",
		},
		{
			name:       "forbidden maps to 403",
			err:        dErrors.New(dErrors.CodeForbidden, "origin not allowed"),
			wantStatus: http.StatusForbidden,
			wantCode:   "forbidden",
		},
		{
			name:       "unavailable maps to 503",
			err:        dErrors.New(dErrors.CodeUnavailable, "overloaded"),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "service_unavailable",
		},
		{
			name:       "plain error falls back to 500",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["error"])
		})
	}
}

type validatingRequest struct {
	IP string `json:"ip"`
}

func (r *validatingRequest) Validate() error {
	if r.IP == "" {
		return dErrors.New(dErrors.CodeValidation, "ip is required")
	}
	return nil
}

func TestDecodeJSON(t *testing.T) {
	logger := slog.New(discardHandler{})

	t.Run("successful decode", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"ip":"203.0.113.7"}`))
		w := httptest.NewRecorder()

		result, ok := DecodeJSON[validatingRequest](w, req, logger, req.Context(), "req-1")

		require.True(t, ok)
		assert.Equal(t, "203.0.113.7", result.IP)
	})

	t.Run("invalid JSON returns 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{not json`))
		w := httptest.NewRecorder()

		result, ok := DecodeJSON[validatingRequest](w, req, logger, req.Context(), "req-2")

		assert.False(t, ok)
		assert.Nil(t, result)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPrepareRequest(t *testing.T) {
	t.Run("validation failure preserves domain code", func(t *testing.T) {
		err := PrepareRequest(&validatingRequest{})

		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("valid request passes", func(t *testing.T) {
		assert.NoError(t, PrepareRequest(&validatingRequest{IP: "203.0.113.7"}))
	})
}

// discardHandler mirrors Go 1.24's slog.DiscardHandler for older toolchains.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }
