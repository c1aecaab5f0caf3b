package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 1000, cfg.GlobalRPS)
	assert.Nil(t, cfg.Upstream)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("GATEKEEPER_ADDR", ":9090")
	t.Setenv("GATEKEEPER_RATE_LIMIT_MAX", "25")
	t.Setenv("GATEKEEPER_RATE_LIMIT_WINDOW", "1m")
	t.Setenv("GATEKEEPER_ALLOWED_ORIGINS", "app.example.com, *.example.org")
	t.Setenv("GATEKEEPER_BLOCKED_AGENTS", "curl,python-requests")
	t.Setenv("GATEKEEPER_TRUSTED_PROXIES", "10.0.0.0/8")
	t.Setenv("GATEKEEPER_UPSTREAM", "http://localhost:3000")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 25, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, []string{"app.example.com", "*.example.org"}, cfg.AllowedOrigins)
	assert.Equal(t, []string{"curl", "python-requests"}, cfg.BlockedUserAgents)
	require.Len(t, cfg.TrustedProxies, 1)
	assert.Equal(t, "10.0.0.0/8", cfg.TrustedProxies[0].String())
	require.NotNil(t, cfg.Upstream)
	assert.Equal(t, "localhost:3000", cfg.Upstream.Host)
}

func TestFromEnv_Invalid(t *testing.T) {
	t.Run("bad trusted proxy CIDR", func(t *testing.T) {
		t.Setenv("GATEKEEPER_TRUSTED_PROXIES", "not-a-cidr")
		_, err := FromEnv()
		assert.Error(t, err)
	})

	t.Run("bad upstream scheme", func(t *testing.T) {
		t.Setenv("GATEKEEPER_UPSTREAM", "ftp://example.com")
		_, err := FromEnv()
		assert.Error(t, err)
	})

	t.Run("zero rate limit rejected", func(t *testing.T) {
		t.Setenv("GATEKEEPER_RATE_LIMIT_MAX", "0")
		_, err := FromEnv()
		assert.Error(t, err)
	})
}
