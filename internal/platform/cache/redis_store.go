package cache

import (
	"context"
	"errors"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/hoopscheduler/internal/platform/resilience"
)

// RedisStore is the CACHE_DRIVER=redis implementation of Interface, for
// deployments running more than one API instance against a shared cache.
// Values are JSON-encoded with sonic, matching the HTTP layer's codec.
type RedisStore struct {
	client     *redis.Client
	defaultTTL time.Duration
	flight     resilience.SingleFlight
}

func NewRedisStore(client *redis.Client, defaultTTL time.Duration) *RedisStore {
	return &RedisStore{client: client, defaultTTL: defaultTTL}
}

func (s *RedisStore) Get(ctx context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var value any
	if err := sonic.Unmarshal(raw, &value); err != nil {
		return nil, false
	}
	return value, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if key == "" {
		return
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	raw, err := sonic.Marshal(value)
	if err != nil {
		return
	}
	_ = s.client.Set(ctx, key, raw, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) {
	if key == "" {
		return
	}
	_ = s.client.Del(ctx, key).Err()
}

// DeletePrefix uses SCAN rather than KEYS to avoid blocking the server on
// large keyspaces.
func (s *RedisStore) DeletePrefix(ctx context.Context, prefix string) {
	if prefix == "" {
		return
	}
	iter := s.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if len(keys) == 0 {
		return
	}
	_ = s.client.Del(ctx, keys...).Err()
}

func (s *RedisStore) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, errors.New("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}
	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}
	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}
		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded, ttl)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}
