package allowlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatekeeper/internal/admission/models"
	"gatekeeper/pkg/requestcontext"
)

func entry(t *testing.T, identifier string, expiresAt *time.Time) *models.AllowlistEntry {
	t.Helper()
	e, err := models.NewAllowlistEntry(identifier, "test", "ops", expiresAt)
	require.NoError(t, err)
	return e
}

func TestInMemoryStore_AddAndCheck(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	ok, err := s.IsAllowlisted(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Add(ctx, entry(t, "203.0.113.7", nil)))

	ok, err = s.IsAllowlisted(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.IsAllowlisted(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInMemoryStore_Remove(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(entry(t, "203.0.113.7", nil))

	require.NoError(t, s.Remove(ctx, "203.0.113.7"))

	ok, err := s.IsAllowlisted(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing again is a no-op.
	require.NoError(t, s.Remove(ctx, "203.0.113.7"))
}

func TestInMemoryStore_ExpiredEntriesIgnored(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	exp := base.Add(time.Minute)
	s := NewInMemoryStore(entry(t, "203.0.113.7", &exp))

	before := requestcontext.WithNow(context.Background(), base)
	ok, err := s.IsAllowlisted(before, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, ok)

	after := requestcontext.WithNow(context.Background(), base.Add(2*time.Minute))
	ok, err = s.IsAllowlisted(after, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInMemoryStore_List(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	exp := base.Add(-time.Minute)
	s := NewInMemoryStore(
		entry(t, "203.0.113.7", nil),
		entry(t, "198.51.100.9", &exp),
	)

	ctx := requestcontext.WithNow(context.Background(), base)
	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "203.0.113.7", entries[0].Identifier)
}

func TestInMemoryStore_DeleteExpired(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	exp := base.Add(-time.Minute)
	s := NewInMemoryStore(
		entry(t, "203.0.113.7", nil),
		entry(t, "198.51.100.9", &exp),
	)

	ctx := requestcontext.WithNow(context.Background(), base)
	removed, err := s.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
