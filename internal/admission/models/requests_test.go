package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAllowlistRequest_Normalize(t *testing.T) {
	r := AddAllowlistRequest{
		Identifier: "  203.0.113.7  ",
		Reason:     " load test ",
		CreatedBy:  " ops ",
	}
	r.Normalize()
	assert.Equal(t, "203.0.113.7", r.Identifier)
	assert.Equal(t, "load test", r.Reason)
	assert.Equal(t, "ops", r.CreatedBy)
}

func TestAddAllowlistRequest_Validate(t *testing.T) {
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	tests := []struct {
		name    string
		req     AddAllowlistRequest
		wantErr string
	}{
		{
			name: "valid ipv4",
			req:  AddAllowlistRequest{Identifier: "203.0.113.7", Reason: "load test"},
		},
		{
			name: "valid ipv6 with expiry",
			req:  AddAllowlistRequest{Identifier: "2001:db8::1", Reason: "partner", ExpiresAt: &future},
		},
		{
			name:    "missing identifier",
			req:     AddAllowlistRequest{Reason: "load test"},
			wantErr: "identifier is required",
		},
		{
			name:    "missing reason",
			req:     AddAllowlistRequest{Identifier: "203.0.113.7"},
			wantErr: "reason is required",
		},
		{
			name:    "identifier too long",
			req:     AddAllowlistRequest{Identifier: strings.Repeat("1", 65), Reason: "x"},
			wantErr: "identifier exceeds max length",
		},
		{
			name:    "not an ip",
			req:     AddAllowlistRequest{Identifier: "example.com", Reason: "x"},
			wantErr: "identifier must be a valid IP address",
		},
		{
			name:    "expiry in the past",
			req:     AddAllowlistRequest{Identifier: "203.0.113.7", Reason: "x", ExpiresAt: &past},
			wantErr: "expires_at must be in the future",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResetWindowRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     ResetWindowRequest
		wantErr bool
	}{
		{name: "valid", req: ResetWindowRequest{Identifier: "203.0.113.7"}},
		{name: "empty", req: ResetWindowRequest{}, wantErr: true},
		{name: "not an ip", req: ResetWindowRequest{Identifier: "nope"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
