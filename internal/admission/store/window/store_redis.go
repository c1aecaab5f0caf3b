package window

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"gatekeeper/internal/admission/models"
	dErrors "gatekeeper/pkg/domain-errors"
	"gatekeeper/pkg/requestcontext"
)

// incrScript increments a window counter and pins its expiry on first
// touch, atomically. Returns the new count and the remaining TTL in
// milliseconds.
var incrScript = redis.NewScript(`
local count = redis.call("INCRBY", KEYS[1], ARGV[1])
if count == tonumber(ARGV[1]) then
  redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
local ttl = redis.call("PTTL", KEYS[1])
return {count, ttl}
`)

// RedisStore implements WindowStore on a shared Redis keyspace so all
// instances count against the same window. The key's TTL doubles as
// the window reset instant; Redis expiry replaces the cleanup sweep.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed window store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Allow increments the key's window counter and reports whether the
// request fits under the limit.
func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	return s.AllowN(ctx, key, 1, limit, window)
}

// AllowN increments the key's window counter by cost.
func (s *RedisStore) AllowN(ctx context.Context, key string, cost, limit int, window time.Duration) (*models.RateLimitResult, error) {
	now := requestcontext.Now(ctx)

	res, err := incrScript.Run(ctx, s.client, []string{key}, cost, window.Milliseconds()).Slice()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "window store increment failed")
	}
	if len(res) != 2 {
		return nil, dErrors.New(dErrors.CodeInternal, "window store returned malformed reply")
	}

	count, ok := res[0].(int64)
	if !ok {
		return nil, dErrors.New(dErrors.CodeInternal, "window store returned malformed count")
	}
	ttlMillis, ok := res[1].(int64)
	if !ok || ttlMillis < 0 {
		// PTTL of -1 means the expiry was lost; fall back to a full window.
		ttlMillis = window.Milliseconds()
	}

	resetAt := now.Add(time.Duration(ttlMillis) * time.Millisecond)
	allowed := int(count) <= limit
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return &models.RateLimitResult{
		Allowed:    allowed,
		Limit:      limit,
		Remaining:  remaining,
		ResetAt:    resetAt,
		RetryAfter: retryAfterSeconds(allowed, now, resetAt),
	}, nil
}

// Reset clears the window for a key.
func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "window store reset failed")
	}
	return nil
}

// GetCurrentCount returns the live count for a key.
func (s *RedisStore) GetCurrentCount(ctx context.Context, key string) (int, error) {
	count, err := s.client.Get(ctx, key).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeUnavailable, "window store read failed")
	}
	return count, nil
}

// DeleteExpired is a no-op; Redis evicts windows via key TTL.
func (s *RedisStore) DeleteExpired(ctx context.Context) (int, error) {
	return 0, nil
}

// Size reports zero; the shared keyspace is not enumerated.
func (s *RedisStore) Size(ctx context.Context) (int, error) {
	return 0, nil
}
