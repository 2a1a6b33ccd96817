package services

import (
	"context"
	"testing"
	"time"

	"sustainability-analytics-api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalCache(t *testing.T) {
	cache := NewLocalCacheService(time.Minute, zap.NewNop())
	ctx := context.Background()
	assert.False(t, cache.Available())
	assert.NoError(t, cache.Ping(ctx))

	var got []string
	assert.ErrorIs(t, cache.Get(ctx, "k", &got), ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, "k", []string{"a", "b"}, time.Minute))
	require.NoError(t, cache.Get(ctx, "k", &got))
	assert.Equal(t, []string{"a", "b"}, got)

	require.NoError(t, cache.Delete(ctx, "k"))
	assert.ErrorIs(t, cache.Get(ctx, "k", &got), ErrCacheMiss)

	assert.NoError(t, cache.Publish(ctx, PredictionChannel, "ignored"))
	assert.NoError(t, cache.Close())
}

func TestLocalCacheExpiry(t *testing.T) {
	cache := NewLocalCacheService(time.Minute, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "short", 1, 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	var v int
	assert.ErrorIs(t, cache.Get(ctx, "short", &v), ErrCacheMiss)
}

func TestNewCacheServiceDisabled(t *testing.T) {
	cache, err := NewCacheService(context.Background(), config.RedisConfig{Enabled: false, LocalTTL: time.Minute}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, cache.Available())
}

func TestNewCacheServiceUnreachableFallsBack(t *testing.T) {
	cfg := config.RedisConfig{
		Enabled:      true,
		Host:         "127.0.0.1",
		Port:         1,
		PingAttempts: 2,
		PingBackoff:  time.Millisecond,
		LocalTTL:     time.Minute,
	}
	cache, err := NewCacheService(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
	require.NotNil(t, cache)
	assert.False(t, cache.Available())

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))
	var got string
	require.NoError(t, cache.Get(ctx, "k", &got))
	assert.Equal(t, "v", got)
}
