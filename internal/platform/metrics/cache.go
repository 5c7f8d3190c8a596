package metrics

import (
	"context"
	"time"

	"github.com/riskibarqy/hoopscheduler/internal/platform/cache"
)

// InstrumentedCache wraps a cache.Interface to record hit/miss counters
// without changing its stampede-protection or TTL semantics.
type InstrumentedCache struct {
	next     cache.Interface
	registry *Registry
}

// NewInstrumentedCache wraps next so every Get/GetOrLoad call is counted
// against registry's cache hit/miss collectors.
func NewInstrumentedCache(next cache.Interface, registry *Registry) *InstrumentedCache {
	return &InstrumentedCache{next: next, registry: registry}
}

func (c *InstrumentedCache) Get(ctx context.Context, key string) (any, bool) {
	value, ok := c.next.Get(ctx, key)
	if ok {
		c.registry.recordCacheHit()
	} else {
		c.registry.recordCacheMiss()
	}
	return value, ok
}

func (c *InstrumentedCache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	c.next.Set(ctx, key, value, ttl)
}

func (c *InstrumentedCache) Delete(ctx context.Context, key string) {
	c.next.Delete(ctx, key)
}

func (c *InstrumentedCache) DeletePrefix(ctx context.Context, prefix string) {
	c.next.DeletePrefix(ctx, prefix)
}

func (c *InstrumentedCache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader func(context.Context) (any, error)) (any, error) {
	if _, ok := c.next.Get(ctx, key); ok {
		c.registry.recordCacheHit()
	} else {
		c.registry.recordCacheMiss()
	}
	return c.next.GetOrLoad(ctx, key, ttl, loader)
}
