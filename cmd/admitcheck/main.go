// Package main provides a CLI for dry-running the admission pipeline
// against the current configuration. Useful for verifying filter rules
// before a deploy: the tool reads the same environment variables as
// the server and prints the decision for a synthetic request.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gatekeeper/internal/admission/filter"
	"gatekeeper/internal/admission/models"
	"gatekeeper/internal/admission/service"
	allowliststore "gatekeeper/internal/admission/store/allowlist"
	windowstore "gatekeeper/internal/admission/store/window"
	"gatekeeper/internal/platform/config"
	"gatekeeper/internal/platform/logger"
)

type output struct {
	Allowed bool                    `json:"allowed"`
	Reason  string                  `json:"reason,omitempty"`
	Window  *models.RateLimitResult `json:"window,omitempty"`
}

func main() {
	ip := flag.String("ip", "203.0.113.7", "Client IP to evaluate")
	origin := flag.String("origin", "", "Origin header value")
	userAgent := flag.String("user-agent", "", "User-Agent header value")
	count := flag.Int("count", 1, "Number of requests to simulate")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	svc, err := service.New(
		filter.New(filter.Config{
			AllowedOrigins:    cfg.AllowedOrigins,
			BlockedUserAgents: cfg.BlockedUserAgents,
			BlockBots:         cfg.BlockBots,
		}),
		windowstore.NewInMemoryStore(),
		allowliststore.NewInMemoryStore(),
		cfg.RateLimitMax,
		cfg.RateLimitWindow,
		service.WithLogger(logger.New(slog.LevelWarn)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build pipeline: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var last service.Decision
	for i := 0; i < *count; i++ {
		last = svc.Admit(ctx, *ip, *origin, *userAgent)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(output{
		Allowed: last.Allowed,
		Reason:  string(last.Reason),
		Window:  last.RateLimit,
	})

	if !last.Allowed {
		os.Exit(2)
	}
}
