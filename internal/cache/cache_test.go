package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kiranshivaraju/latencybench/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis spins up a Redis container and returns a connected RedisCache.
func setupRedis(t *testing.T) *cache.RedisCache {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, container.Terminate(ctx)) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	rc, err := cache.NewRedisCache("redis://" + host + ":" + port.Port())
	require.NoError(t, err)
	t.Cleanup(func() { rc.Close() })

	return rc
}

func setupMemory(t *testing.T) *cache.MemoryCache {
	t.Helper()
	mc := cache.NewMemoryCache()
	t.Cleanup(func() { mc.Close() })
	return mc
}

// forEachCache runs fn against the in-process cache and, unless -short is
// set, against a real Redis.
func forEachCache(t *testing.T, fn func(t *testing.T, c cache.Cache)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, setupMemory(t))
	})
	t.Run("redis", func(t *testing.T) {
		if testing.Short() {
			t.Skip("skipping integration test")
		}
		fn(t, setupRedis(t))
	})
}

// --- Ping ---

func TestPing(t *testing.T) {
	forEachCache(t, func(t *testing.T, c cache.Cache) {
		assert.NoError(t, c.Ping(context.Background()))
	})
}

// --- Set / Get ---

func TestSetGet_Roundtrip(t *testing.T) {
	forEachCache(t, func(t *testing.T, c cache.Cache) {
		ctx := context.Background()

		require.NoError(t, c.Set(ctx, "test:key", []byte("hello"), 10*time.Second))

		val, found, err := c.Get(ctx, "test:key")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte("hello"), val)
	})
}

func TestGet_NotFound(t *testing.T) {
	forEachCache(t, func(t *testing.T, c cache.Cache) {
		val, found, err := c.Get(context.Background(), "nonexistent:key")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, val)
	})
}

func TestSet_TTLExpiry(t *testing.T) {
	forEachCache(t, func(t *testing.T, c cache.Cache) {
		ctx := context.Background()

		require.NoError(t, c.Set(ctx, "expiry:key", []byte("temp"), 1*time.Second))

		_, found, err := c.Get(ctx, "expiry:key")
		require.NoError(t, err)
		assert.True(t, found)

		time.Sleep(1500 * time.Millisecond)

		_, found, err = c.Get(ctx, "expiry:key")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestMemoryCache_ValueIsCopied(t *testing.T) {
	mc := setupMemory(t)
	ctx := context.Background()
	buf := []byte("abc")

	require.NoError(t, mc.Set(ctx, "k", buf, time.Minute))
	buf[0] = 'z'

	val, _, err := mc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), val)
}

// --- Delete ---

func TestDelete(t *testing.T) {
	forEachCache(t, func(t *testing.T, c cache.Cache) {
		ctx := context.Background()

		require.NoError(t, c.Set(ctx, "del:key", []byte("bye"), 10*time.Second))
		require.NoError(t, c.Delete(ctx, "del:key"))

		_, found, err := c.Get(ctx, "del:key")
		require.NoError(t, err)
		assert.False(t, found)

		assert.NoError(t, c.Delete(ctx, "does:not:exist"))
	})
}

// --- IncrWithExpiry ---

func TestIncrWithExpiry(t *testing.T) {
	forEachCache(t, func(t *testing.T, c cache.Cache) {
		ctx := context.Background()
		key := cache.RateLimitKey("test-" + uuid.NewString()[:8])

		for want := int64(1); want <= 3; want++ {
			val, err := c.IncrWithExpiry(ctx, key, 10*time.Second)
			require.NoError(t, err)
			assert.Equal(t, want, val)
		}
	})
}

func TestIncrWithExpiry_Expires(t *testing.T) {
	forEachCache(t, func(t *testing.T, c cache.Cache) {
		ctx := context.Background()
		key := cache.RateLimitKey("expiry-" + uuid.NewString()[:8])

		_, err := c.IncrWithExpiry(ctx, key, 1*time.Second)
		require.NoError(t, err)

		time.Sleep(1500 * time.Millisecond)

		val, err := c.IncrWithExpiry(ctx, key, 10*time.Second)
		require.NoError(t, err)
		assert.Equal(t, int64(1), val)
	})
}

func TestMemoryCache_IncrConcurrent(t *testing.T) {
	mc := setupMemory(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = mc.IncrWithExpiry(ctx, "ratelimit:burst", time.Minute)
		}()
	}
	wg.Wait()

	val, err := mc.IncrWithExpiry(ctx, "ratelimit:burst", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(51), val)
}

// --- Cache Key Builders ---

func TestSnapshotKey(t *testing.T) {
	assert.Equal(t, "latency:snapshot:30d", cache.SnapshotKey(30))
}

func TestRateLimitKey(t *testing.T) {
	assert.Equal(t, "ratelimit:203.0.113.7", cache.RateLimitKey("203.0.113.7"))
}

func TestKeyBuilders_NonColliding(t *testing.T) {
	keys := map[string]bool{
		cache.SnapshotKey(30):    true,
		cache.SnapshotKey(7):     true,
		cache.RateLimitKey("30"): true,
	}
	assert.Len(t, keys, 3, "all keys should be unique")
}
