package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sustainability-analytics-api/config"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// CacheService stores JSON values in Redis. When Redis is disabled or
// unreachable at startup it keeps values in process memory instead and
// publishing becomes a no-op.
type CacheService struct {
	client *redis.Client
	local  *gocache.Cache
	logger *zap.Logger
}

func NewCacheService(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*CacheService, error) {
	local := gocache.New(cfg.LocalTTL, 2*cfg.LocalTTL)
	if !cfg.Enabled {
		logger.Info("redis disabled, using in-process cache")
		return &CacheService{local: local, logger: logger}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	var lastErr error
	for i := 0; i < cfg.PingAttempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		lastErr = client.Ping(pingCtx).Err()
		cancel()
		if lastErr == nil {
			logger.Info("redis connected", zap.String("addr", client.Options().Addr))
			return &CacheService{client: client, local: local, logger: logger}, nil
		}
		logger.Warn("redis ping failed",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", cfg.PingAttempts),
			zap.Error(lastErr))
		select {
		case <-ctx.Done():
			_ = client.Close()
			return &CacheService{local: local, logger: logger}, ctx.Err()
		case <-time.After(cfg.PingBackoff):
		}
	}

	_ = client.Close()
	return &CacheService{local: local, logger: logger},
		fmt.Errorf("redis ping failed after %d attempts: %w", cfg.PingAttempts, lastErr)
}

// NewLocalCacheService returns a CacheService backed only by process memory.
func NewLocalCacheService(ttl time.Duration, logger *zap.Logger) *CacheService {
	return &CacheService{local: gocache.New(ttl, 2*ttl), logger: logger}
}

func (s *CacheService) Available() bool {
	return s.client != nil
}

func (s *CacheService) Ping(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Ping(ctx).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	if s.client == nil {
		v, ok := s.local.Get(key)
		if !ok {
			return ErrCacheMiss
		}
		return json.Unmarshal(v.([]byte), dest)
	}
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(val, dest)
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if s.client == nil {
		s.local.Set(key, data, ttl)
		return nil
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		s.local.Delete(key)
		return nil
	}
	return s.client.Del(ctx, key).Err()
}

func (s *CacheService) Publish(ctx context.Context, channel string, message interface{}) error {
	if s.client == nil {
		return nil
	}
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, channel, data).Err()
}

func (s *CacheService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
