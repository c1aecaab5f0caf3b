package window

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatekeeper/pkg/requestcontext"
)

func ctxAt(t time.Time) context.Context {
	return requestcontext.WithNow(context.Background(), t)
}

func TestInMemoryStore_Allow(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	const key = "window:ip:203.0.113.7"

	t.Run("requests under the limit pass", func(t *testing.T) {
		s := NewInMemoryStore()
		ctx := ctxAt(base)

		for i := 0; i < 5; i++ {
			res, err := s.Allow(ctx, key, 5, time.Minute)
			require.NoError(t, err)
			assert.True(t, res.Allowed, "request %d should be allowed", i+1)
			assert.Equal(t, 5-(i+1), res.Remaining)
			assert.Equal(t, 0, res.RetryAfter)
		}
	})

	t.Run("request past the limit is denied with retry hint", func(t *testing.T) {
		s := NewInMemoryStore()
		ctx := ctxAt(base)

		for i := 0; i < 5; i++ {
			_, err := s.Allow(ctx, key, 5, time.Minute)
			require.NoError(t, err)
		}

		res, err := s.Allow(ctx, key, 5, time.Minute)
		require.NoError(t, err)
		assert.False(t, res.Allowed)
		assert.Equal(t, 0, res.Remaining)
		assert.Equal(t, base.Add(time.Minute), res.ResetAt)
		assert.Equal(t, 60, res.RetryAfter)
	})

	t.Run("window resets after its reset instant", func(t *testing.T) {
		s := NewInMemoryStore()

		for i := 0; i < 6; i++ {
			_, err := s.Allow(ctxAt(base), key, 5, time.Minute)
			require.NoError(t, err)
		}

		// Just past the boundary the counter starts over.
		res, err := s.Allow(ctxAt(base.Add(time.Minute+time.Second)), key, 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 4, res.Remaining)
	})

	t.Run("exactly at the reset instant the window still holds", func(t *testing.T) {
		s := NewInMemoryStore()

		for i := 0; i < 6; i++ {
			_, err := s.Allow(ctxAt(base), key, 5, time.Minute)
			require.NoError(t, err)
		}

		res, err := s.Allow(ctxAt(base.Add(time.Minute)), key, 5, time.Minute)
		require.NoError(t, err)
		assert.False(t, res.Allowed)
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := NewInMemoryStore()
		ctx := ctxAt(base)

		for i := 0; i < 5; i++ {
			_, err := s.Allow(ctx, key, 5, time.Minute)
			require.NoError(t, err)
		}

		res, err := s.Allow(ctx, "window:ip:198.51.100.9", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	})
}

func TestInMemoryStore_AllowN(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewInMemoryStore()
	ctx := ctxAt(base)

	res, err := s.AllowN(ctx, "k", 3, 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Remaining)

	res, err = s.AllowN(ctx, "k", 3, 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
}

func TestInMemoryStore_Reset(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewInMemoryStore()
	ctx := ctxAt(base)

	for i := 0; i < 5; i++ {
		_, err := s.Allow(ctx, "k", 5, time.Minute)
		require.NoError(t, err)
	}

	require.NoError(t, s.Reset(ctx, "k"))

	res, err := s.Allow(ctx, "k", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 4, res.Remaining)
}

func TestInMemoryStore_GetCurrentCount(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewInMemoryStore()

	count, err := s.GetCurrentCount(ctxAt(base), "k")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	for i := 0; i < 3; i++ {
		_, err := s.Allow(ctxAt(base), "k", 5, time.Minute)
		require.NoError(t, err)
	}

	count, err = s.GetCurrentCount(ctxAt(base), "k")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// Expired window reads as zero even before the sweep runs.
	count, err = s.GetCurrentCount(ctxAt(base.Add(2*time.Minute)), "k")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestInMemoryStore_DeleteExpired(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewInMemoryStore()

	_, err := s.Allow(ctxAt(base), "old", 5, time.Minute)
	require.NoError(t, err)
	_, err = s.Allow(ctxAt(base), "fresh", 5, time.Hour)
	require.NoError(t, err)

	removed, err := s.DeleteExpired(ctxAt(base.Add(5 * time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	size, err := s.Size(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}
