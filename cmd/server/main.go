// Package main wires the gateway: config, stores, the admission
// pipeline, admin surface, cleanup worker, and the HTTP server
// lifecycle. Business logic lives in the internal packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"gatekeeper/internal/admission/admin"
	"gatekeeper/internal/admission/filter"
	"gatekeeper/internal/admission/handler"
	"gatekeeper/internal/admission/metrics"
	admissionMW "gatekeeper/internal/admission/middleware"
	"gatekeeper/internal/admission/service"
	allowliststore "gatekeeper/internal/admission/store/allowlist"
	windowstore "gatekeeper/internal/admission/store/window"
	"gatekeeper/internal/admission/throttle"
	"gatekeeper/internal/admission/tracer"
	"gatekeeper/internal/admission/workers/cleanup"
	"gatekeeper/internal/platform/config"
	"gatekeeper/internal/platform/health"
	"gatekeeper/internal/platform/logger"
	"gatekeeper/internal/platform/redis"
	httptransport "gatekeeper/internal/transport/http"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logger.New(0).Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	log.Info("initializing gatekeeper",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"rate_limit", cfg.RateLimitMax,
		"rate_window", cfg.RateLimitWindow.String(),
	)

	redisClient, err := redis.New(cfg.RedisAddr)
	if err != nil {
		log.Error("redis connection failed", "error", err, "addr", cfg.RedisAddr)
		os.Exit(1)
	}

	var windows interface {
		service.WindowStore
		cleanup.WindowStore
	}
	if redisClient != nil {
		log.Info("using redis window store", "addr", cfg.RedisAddr)
		windows = windowstore.NewResilientStore(windowstore.NewRedisStore(redisClient.Client), log)
	} else {
		log.Info("using in-memory window store")
		windows = windowstore.NewInMemoryStore()
	}
	allowlist := allowliststore.NewInMemoryStore()

	m := metrics.New()

	svc, err := service.New(
		filter.New(filter.Config{
			AllowedOrigins:    cfg.AllowedOrigins,
			BlockedUserAgents: cfg.BlockedUserAgents,
			BlockBots:         cfg.BlockBots,
		}),
		windows,
		allowlist,
		cfg.RateLimitMax,
		cfg.RateLimitWindow,
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithTracer(tracer.NewOTel()),
	)
	if err != nil {
		log.Error("failed to build admission service", "error", err)
		os.Exit(1)
	}

	adminSvc, err := admin.New(allowlist, windows, admin.WithLogger(log))
	if err != nil {
		log.Error("failed to build admin service", "error", err)
		os.Exit(1)
	}
	adminHandler := handler.New(adminSvc, svc, log)

	healthHandler := health.New(cfg.Environment)
	if redisClient != nil {
		healthHandler.RegisterCheck("redis", redisClient.HealthCheck())
	}

	var proxy http.Handler
	if cfg.Upstream != nil {
		proxy = httptransport.NewProxy(cfg.Upstream, log)
		log.Info("proxying admitted traffic", "upstream", cfg.Upstream.String())
	} else {
		log.Warn("no upstream configured, serving admission endpoints only")
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Config:        cfg,
		Logger:        log,
		Admission:     admissionMW.New(svc, log),
		Throttler:     throttle.New(cfg.GlobalRPS, cfg.GlobalBurst),
		Metrics:       m,
		Health:        healthHandler,
		AdminRegister: func(r chi.Router) { adminHandler.RegisterAdmin(r) },
		Proxy:         proxy,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	sweeper := cleanup.New(windows, allowlist,
		cleanup.WithLogger(log),
		cleanup.WithInterval(cfg.CleanupInterval),
		cleanup.WithMetrics(m),
	)
	g.Go(func() error {
		if err := sweeper.Start(ctx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down server gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("gateway exited with error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
