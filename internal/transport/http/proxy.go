package httptransport

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"gatekeeper/pkg/requestcontext"
)

// NewProxy builds the reverse proxy that carries admitted traffic to
// the upstream application. The request ID is forwarded so upstream
// logs correlate with the gateway's.
func NewProxy(upstream *url.URL, logger *slog.Logger) http.Handler {
	proxy := httputil.NewSingleHostReverseProxy(upstream)

	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		r.Host = upstream.Host
		if requestID := requestcontext.RequestID(r.Context()); requestID != "" {
			r.Header.Set("X-Request-ID", requestID)
		}
	}

	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.ErrorContext(r.Context(), "upstream request failed",
			"error", err,
			"path", r.URL.Path,
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"bad_gateway","message":"Upstream is unreachable."}`))
	}

	return proxy
}
