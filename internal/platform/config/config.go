package config

import (
	"fmt"
	"log/slog"
	"net/netip"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	platformStrings "gatekeeper/pkg/platform/strings"
)

// Server captures gateway level configuration.
type Server struct {
	Addr        string
	Environment string
	LogLevel    slog.Level

	// Upstream is the application the gateway fronts. Empty disables proxying
	// (the gateway still serves health, metrics, and admin endpoints).
	Upstream *url.URL

	// Admission filter rules.
	AllowedOrigins    []string
	BlockedUserAgents []string
	BlockBots         bool

	// Per-IP fixed-window limit.
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Global per-instance throttle (token bucket).
	GlobalRPS   int
	GlobalBurst int

	// Proxies allowed to set X-Forwarded-For.
	TrustedProxies []netip.Prefix

	// RedisAddr selects the Redis window store when non-empty.
	RedisAddr string

	// AdminTokenHash is the bcrypt hash admin requests are verified against.
	// Empty disables the admin surface entirely.
	AdminTokenHash string

	CleanupInterval time.Duration
	RequestTimeout  time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:            envOr("GATEKEEPER_ADDR", ":8080"),
		Environment:     envOr("GATEKEEPER_ENV", "development"),
		LogLevel:        parseLogLevel(os.Getenv("GATEKEEPER_LOG_LEVEL")),
		BlockBots:       os.Getenv("GATEKEEPER_BLOCK_BOTS") == "true",
		RateLimitMax:    envInt("GATEKEEPER_RATE_LIMIT_MAX", 100),
		RateLimitWindow: envDuration("GATEKEEPER_RATE_LIMIT_WINDOW", 15*time.Minute),
		GlobalRPS:       envInt("GATEKEEPER_GLOBAL_RPS", 1000),
		GlobalBurst:     envInt("GATEKEEPER_GLOBAL_BURST", 2000),
		RedisAddr:       os.Getenv("GATEKEEPER_REDIS_ADDR"),
		AdminTokenHash:  os.Getenv("GATEKEEPER_ADMIN_TOKEN_HASH"),
		CleanupInterval: envDuration("GATEKEEPER_CLEANUP_INTERVAL", time.Minute),
		RequestTimeout:  envDuration("GATEKEEPER_REQUEST_TIMEOUT", 30*time.Second),
	}

	cfg.AllowedOrigins = splitList(os.Getenv("GATEKEEPER_ALLOWED_ORIGINS"))
	cfg.BlockedUserAgents = splitList(os.Getenv("GATEKEEPER_BLOCKED_AGENTS"))

	if upstream := os.Getenv("GATEKEEPER_UPSTREAM"); upstream != "" {
		u, err := url.Parse(upstream)
		if err != nil {
			return Server{}, fmt.Errorf("parse GATEKEEPER_UPSTREAM: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return Server{}, fmt.Errorf("GATEKEEPER_UPSTREAM must be http or https, got %q", u.Scheme)
		}
		cfg.Upstream = u
	}

	for _, cidr := range splitList(os.Getenv("GATEKEEPER_TRUSTED_PROXIES")) {
		prefix, err := netip.ParsePrefix(cidr)
		if err != nil {
			return Server{}, fmt.Errorf("parse GATEKEEPER_TRUSTED_PROXIES entry %q: %w", cidr, err)
		}
		cfg.TrustedProxies = append(cfg.TrustedProxies, prefix)
	}

	if cfg.RateLimitMax <= 0 {
		return Server{}, fmt.Errorf("GATEKEEPER_RATE_LIMIT_MAX must be positive")
	}
	if cfg.RateLimitWindow <= 0 {
		return Server{}, fmt.Errorf("GATEKEEPER_RATE_LIMIT_WINDOW must be positive")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	out := platformStrings.DedupeAndTrim(strings.Split(raw, ","))
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
