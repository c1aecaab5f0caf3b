// Package httptransport wires the admission pipeline, admin surface,
// and upstream proxy into a single chi router.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	admissionMW "gatekeeper/internal/admission/middleware"
	"gatekeeper/internal/platform/config"
	"gatekeeper/internal/platform/health"
	platformMW "gatekeeper/internal/platform/middleware"
	"gatekeeper/pkg/platform/middleware/metadata"
)

// Deps carries everything the router needs. Nil optional fields
// disable the matching surface.
type Deps struct {
	Config    config.Server
	Logger    *slog.Logger
	Admission *admissionMW.Middleware
	Throttler admissionMW.Throttler
	Metrics   admissionMW.ThrottleMetrics
	Health    *health.Handler

	// AdminRegister mounts the admin routes onto a guarded subrouter.
	AdminRegister func(chi.Router)

	// Proxy forwards admitted traffic upstream. Nil means the gateway
	// answers admitted requests with 404 outside its own endpoints.
	Proxy http.Handler
}

// NewRouter assembles the middleware chain. Order matters: client
// metadata must land in the context before the throttle and admission
// layers read it, and the throttle runs first so overload sheds work
// before any per-client state is touched.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(platformMW.Recovery(d.Logger))
	r.Use(platformMW.RequestID)
	r.Use(platformMW.Logger(d.Logger))
	r.Use(platformMW.Timeout(d.Config.RequestTimeout))

	meta := metadata.NewMiddleware(&metadata.Config{TrustedProxies: d.Config.TrustedProxies})
	r.Use(meta.Handler)

	// Operational endpoints bypass admission so probes and scrapes
	// keep working while the gateway sheds traffic.
	if d.Health != nil {
		d.Health.Register(r)
	}
	r.Handle("/metrics", promhttp.Handler())

	if d.AdminRegister != nil && d.Config.AdminTokenHash != "" {
		r.Group(func(admin chi.Router) {
			admin.Use(platformMW.RequireAdminToken(d.Config.AdminTokenHash, d.Logger))
			admin.Use(platformMW.ContentTypeJSON)
			d.AdminRegister(admin)
		})
	}

	// Everything else flows through throttle, filter, and rate limit,
	// then on to the upstream.
	r.Group(func(guarded chi.Router) {
		if d.Throttler != nil {
			guarded.Use(admissionMW.GlobalThrottle(d.Throttler, d.Metrics))
		}
		guarded.Use(d.Admission.Admit)

		if d.Proxy != nil {
			guarded.Handle("/*", d.Proxy)
		} else {
			guarded.HandleFunc("/*", http.NotFound)
		}
	})

	return r
}
