package admin

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatekeeper/internal/admission/models"
	"gatekeeper/internal/admission/store/allowlist"
	"gatekeeper/internal/admission/store/window"
)

func newAdmin(t *testing.T) (*Service, *allowlist.InMemoryStore, *window.InMemoryStore) {
	t.Helper()
	al := allowlist.NewInMemoryStore()
	w := window.NewInMemoryStore()
	svc, err := New(al, w, WithLogger(slog.New(discardHandler{})))
	require.NoError(t, err)
	return svc, al, w
}

func TestAddToAllowlist(t *testing.T) {
	svc, al, w := newAdmin(t)
	ctx := context.Background()

	// Pre-existing window should be cleared when the exemption lands.
	_, err := w.Allow(ctx, models.NewWindowKey("203.0.113.7").String(), 5, time.Minute)
	require.NoError(t, err)

	entry, err := svc.AddToAllowlist(ctx, &models.AddAllowlistRequest{
		Identifier: " 203.0.113.7 ",
		Reason:     "load test",
		CreatedBy:  "ops",
	})
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.7", entry.Identifier)

	ok, err := al.IsAllowlisted(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, ok)

	count, err := w.GetCurrentCount(ctx, models.NewWindowKey("203.0.113.7").String())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAddToAllowlist_InvalidRequest(t *testing.T) {
	svc, _, _ := newAdmin(t)

	_, err := svc.AddToAllowlist(context.Background(), &models.AddAllowlistRequest{
		Identifier: "not-an-ip",
		Reason:     "x",
	})
	require.Error(t, err)
}

func TestRemoveFromAllowlist(t *testing.T) {
	svc, al, _ := newAdmin(t)
	ctx := context.Background()

	_, err := svc.AddToAllowlist(ctx, &models.AddAllowlistRequest{
		Identifier: "203.0.113.7",
		Reason:     "load test",
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFromAllowlist(ctx, "203.0.113.7"))

	ok, err := al.IsAllowlisted(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, ok)

	require.Error(t, svc.RemoveFromAllowlist(ctx, ""))
}

func TestListAllowlist(t *testing.T) {
	svc, _, _ := newAdmin(t)
	ctx := context.Background()

	entries, err := svc.ListAllowlist(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = svc.AddToAllowlist(ctx, &models.AddAllowlistRequest{Identifier: "203.0.113.7", Reason: "a"})
	require.NoError(t, err)
	_, err = svc.AddToAllowlist(ctx, &models.AddAllowlistRequest{Identifier: "198.51.100.9", Reason: "b"})
	require.NoError(t, err)

	entries, err = svc.ListAllowlist(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestResetWindow(t *testing.T) {
	svc, _, w := newAdmin(t)
	ctx := context.Background()

	key := models.NewWindowKey("203.0.113.7").String()
	for i := 0; i < 3; i++ {
		_, err := w.Allow(ctx, key, 5, time.Minute)
		require.NoError(t, err)
	}

	require.NoError(t, svc.ResetWindow(ctx, &models.ResetWindowRequest{Identifier: "203.0.113.7"}))

	count, err := w.GetCurrentCount(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestResetWindow_InvalidRequest(t *testing.T) {
	svc, _, _ := newAdmin(t)
	err := svc.ResetWindow(context.Background(), &models.ResetWindowRequest{Identifier: "nope"})
	require.Error(t, err)
}

// discardHandler mirrors Go 1.24's slog.DiscardHandler for older toolchains.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }
