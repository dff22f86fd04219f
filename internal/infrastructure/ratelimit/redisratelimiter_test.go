package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	addr := os.Getenv("ATICKET_TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestLimits_Enabled(t *testing.T) {
	assert.False(t, Limits{}.Enabled())
	assert.True(t, Limits{RequestsPerMinute: 1}.Enabled())
	assert.True(t, Limits{RequestsPerHour: 1}.Enabled())
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	tests := []struct {
		name    string
		limits  Limits
		allowed int
	}{
		{"per minute", Limits{RequestsPerMinute: 5}, 5},
		{"per hour", Limits{RequestsPerHour: 3}, 3},
		{"tighter window wins", Limits{RequestsPerMinute: 5, RequestsPerHour: 2}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "user:" + tt.name
			for i := 0; i < tt.allowed; i++ {
				ok, err := limiter.Allow(ctx, key, tt.limits)
				require.NoError(t, err)
				assert.True(t, ok, "request %d should be allowed", i+1)
			}

			ok, err := limiter.Allow(ctx, key, tt.limits)
			require.NoError(t, err)
			assert.False(t, ok, "request %d should be denied", tt.allowed+1)
		})
	}
}

func TestRedisRateLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	ctx := context.Background()
	limits := Limits{RequestsPerMinute: 1}

	ok, err := limiter.Allow(ctx, "user:1", limits)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = limiter.Allow(ctx, "user:1", limits)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = limiter.Allow(ctx, "user:2", limits)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	ctx := context.Background()
	limits := Limits{RequestsPerMinute: 1}

	_, err := limiter.Allow(ctx, "user:7", limits)
	require.NoError(t, err)
	ok, err := limiter.Allow(ctx, "user:7", limits)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, limiter.Reset(ctx, "user:7"))

	ok, err = limiter.Allow(ctx, "user:7", limits)
	require.NoError(t, err)
	assert.True(t, ok, "should be allowed after reset")
}

func TestRedisRateLimiter_SlidingWindow(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	ctx := context.Background()
	limits := Limits{RequestsPerMinute: 2}

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return base }
	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "user:9", limits)
		require.NoError(t, err)
		require.True(t, ok)
	}

	limiter.now = func() time.Time { return base.Add(30 * time.Second) }
	ok, err := limiter.Allow(ctx, "user:9", limits)
	require.NoError(t, err)
	assert.False(t, ok, "still inside the window")

	limiter.now = func() time.Time { return base.Add(2 * time.Minute) }
	ok, err = limiter.Allow(ctx, "user:9", limits)
	require.NoError(t, err)
	assert.True(t, ok, "older requests slid out of the window")
}

func TestRedisRateLimiter_ZeroLimits(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))

	ok, err := limiter.Allow(context.Background(), "user:0", Limits{})
	require.NoError(t, err)
	assert.True(t, ok, "zero limits allow every request")
}
