package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "gatekeeper/pkg/domain-errors"
)

// =============================================================================
// Window Keys
// =============================================================================

func TestNewWindowKey(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		want string
	}{
		{name: "ipv4", ip: "203.0.113.7", want: "window:ip:203.0.113.7"},
		{name: "ipv6 colons escaped", ip: "2001:db8::1", want: "window:ip:2001_cdb8_c_c1"},
		{name: "underscore escaped", ip: "a_b", want: "window:ip:a__b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewWindowKey(tt.ip).String())
		})
	}
}

func TestWindowKey_NoCollisions(t *testing.T) {
	// Raw identifiers that would collide without escaping must not.
	a := NewWindowKey("a:b")
	b := NewWindowKey("a_cb")
	assert.NotEqual(t, a.String(), b.String())
}

// =============================================================================
// Allowlist Entries
// =============================================================================

func TestNewAllowlistEntry(t *testing.T) {
	t.Run("valid entry", func(t *testing.T) {
		exp := time.Now().Add(time.Hour)
		entry, err := NewAllowlistEntry("203.0.113.7", "load test", "ops", &exp)
		require.NoError(t, err)
		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, "203.0.113.7", entry.Identifier)
		assert.Equal(t, "ops", entry.CreatedBy)
		assert.False(t, entry.IsExpired(time.Now()))
	})

	t.Run("empty identifier rejected", func(t *testing.T) {
		_, err := NewAllowlistEntry("", "load test", "ops", nil)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("empty reason rejected", func(t *testing.T) {
		_, err := NewAllowlistEntry("203.0.113.7", "", "ops", nil)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func TestAllowlistEntry_IsExpired(t *testing.T) {
	now := time.Now()

	t.Run("no expiry never expires", func(t *testing.T) {
		e := AllowlistEntry{Identifier: "203.0.113.7"}
		assert.False(t, e.IsExpired(now.Add(24*365*time.Hour)))
	})

	t.Run("past expiry", func(t *testing.T) {
		exp := now.Add(-time.Minute)
		e := AllowlistEntry{Identifier: "203.0.113.7", ExpiresAt: &exp}
		assert.True(t, e.IsExpired(now))
	})
}
