package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryCache is an in-process Cache backed by ttlcache. It is used when no
// Redis URL is configured, e.g. for a single dashboard instance.
type MemoryCache struct {
	items    *ttlcache.Cache[string, []byte]
	counters *ttlcache.Cache[string, int64]
	mu       sync.Mutex // serializes counter read-modify-write
}

// NewMemoryCache creates a MemoryCache and starts its expiry loops.
func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{
		items: ttlcache.New(
			ttlcache.WithDisableTouchOnHit[string, []byte](),
		),
		counters: ttlcache.New(
			ttlcache.WithDisableTouchOnHit[string, int64](),
		),
	}
	go c.items.Start()
	go c.counters.Start()
	return c
}

func (c *MemoryCache) Ping(_ context.Context) error {
	return nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.items.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	item := c.items.Get(key)
	if item == nil {
		return nil, false, nil
	}
	return append([]byte(nil), item.Value()...), true, nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.items.Delete(key)
	return nil
}

// IncrWithExpiry mirrors the Redis INCR+EXPIRE pipeline: every increment
// resets the key's expiry.
func (c *MemoryCache) IncrWithExpiry(_ context.Context, key string, expiry time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64 = 1
	if item := c.counters.Get(key); item != nil {
		n = item.Value() + 1
	}
	c.counters.Set(key, n, expiry)
	return n, nil
}

func (c *MemoryCache) Close() error {
	c.items.Stop()
	c.counters.Stop()
	return nil
}
