package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/yatube/config"
)

const ttl = 20 * time.Second

// counter renders "v<n>" and counts calls.
type counter struct {
	mu sync.Mutex
	n  int
}

func (c *counter) render(context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return []byte(fmt.Sprintf("v%d", c.n)), nil
}

func (c *counter) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// backend 把两种实现放进同一组用例
type backend struct {
	name    string
	cache   PageCache
	expire  func()
	metrics *Metrics
}

func backends(t *testing.T) []backend {
	mr, client := newRedis(t)
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	redisMetrics := NewMetrics(prometheus.NewRegistry())
	memMetrics := NewMetrics(prometheus.NewRegistry())
	return []backend{
		{
			name:    "redis",
			cache:   NewRedisPageCache(client, ttl, redisMetrics),
			expire:  func() { mr.FastForward(ttl + time.Second) },
			metrics: redisMetrics,
		},
		{
			name:    "memory",
			cache:   NewMemoryPageCache(ttl, clock.now, memMetrics),
			expire:  func() { clock.advance(ttl + time.Second) },
			metrics: memMetrics,
		},
	}
}

func TestPageCache_ServesCachedBytesWithinTTL(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			r := &counter{}

			first, err := b.cache.GetOrRender(ctx, "index", r.render)
			require.NoError(t, err)
			second, err := b.cache.GetOrRender(ctx, "index", r.render)
			require.NoError(t, err)

			assert.Equal(t, first, second)
			assert.Equal(t, 1, r.calls())
			assert.Equal(t, 1.0, promtest.ToFloat64(b.metrics.lookups.WithLabelValues("hit")))
			assert.Equal(t, 1.0, promtest.ToFloat64(b.metrics.lookups.WithLabelValues("miss")))
		})
	}
}

func TestPageCache_RendersAgainAfterTTL(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			r := &counter{}

			first, err := b.cache.GetOrRender(ctx, "index", r.render)
			require.NoError(t, err)
			b.expire()
			second, err := b.cache.GetOrRender(ctx, "index", r.render)
			require.NoError(t, err)

			assert.Equal(t, "v1", string(first))
			assert.Equal(t, "v2", string(second))
		})
	}
}

func TestPageCache_InvalidateAllClearsEveryKey(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			r := &counter{}

			_, err := b.cache.GetOrRender(ctx, "index:page=1", r.render)
			require.NoError(t, err)
			_, err = b.cache.GetOrRender(ctx, "index:page=2", r.render)
			require.NoError(t, err)

			require.NoError(t, b.cache.InvalidateAll(ctx))

			again, err := b.cache.GetOrRender(ctx, "index:page=1", r.render)
			require.NoError(t, err)
			assert.Equal(t, "v3", string(again))
			assert.Equal(t, 1.0, promtest.ToFloat64(b.metrics.invalidations))
		})
	}
}

func TestPageCache_RenderErrorIsNotCached(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			boom := errors.New("boom")

			_, err := b.cache.GetOrRender(ctx, "index", func(context.Context) ([]byte, error) { return nil, boom })
			assert.ErrorIs(t, err, boom)

			r := &counter{}
			got, err := b.cache.GetOrRender(ctx, "index", r.render)
			require.NoError(t, err)
			assert.Equal(t, "v1", string(got))
		})
	}
}

func TestRedisPageCache_UsesPrefixAndTTL(t *testing.T) {
	mr, client := newRedis(t)
	c := NewRedisPageCache(client, ttl, nil)
	ctx := context.Background()

	require.NoError(t, mr.Set("unrelated", "keep"))
	_, err := c.GetOrRender(ctx, "index", (&counter{}).render)
	require.NoError(t, err)

	assert.True(t, mr.Exists("page:index"))
	assert.Equal(t, ttl, mr.TTL("page:index"))

	require.NoError(t, c.InvalidateAll(ctx))
	assert.False(t, mr.Exists("page:index"))
	assert.True(t, mr.Exists("unrelated"))
}

func TestRedisPageCache_InvalidateAllManyKeys(t *testing.T) {
	mr, client := newRedis(t)
	c := NewRedisPageCache(client, ttl, nil)
	ctx := context.Background()

	for i := 0; i < 250; i++ {
		_, err := c.GetOrRender(ctx, fmt.Sprintf("index:page=%d", i), (&counter{}).render)
		require.NoError(t, err)
	}
	require.NoError(t, c.InvalidateAll(ctx))
	assert.Equal(t, []string{generationKey}, mr.Keys())
}

func TestRedisPageCache_DegradesWhenRedisIsDown(t *testing.T) {
	mr, client := newRedis(t)
	c := NewRedisPageCache(client, ttl, nil)
	mr.Close()

	got, err := c.GetOrRender(context.Background(), "index", (&counter{}).render)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))
}

func TestMemoryPageCache_ReplacesExpiredEntry(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	c := NewMemoryPageCache(ttl, clock.now, nil)
	ctx := context.Background()

	_, err := c.GetOrRender(ctx, "index", (&counter{}).render)
	require.NoError(t, err)
	clock.advance(ttl)
	_, err = c.GetOrRender(ctx, "index", (&counter{}).render)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.InvalidateAll(ctx))
	assert.Zero(t, c.Len())
}

func TestNew_SelectsBackend(t *testing.T) {
	_, client := newRedis(t)
	cfg := &config.Config{Feed: config.FeedConfig{PageSize: 10, IndexCacheTTL: ttl}}

	cfg.Cache.Driver = "memory"
	c, err := New(cfg, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryPageCache{}, c)

	cfg.Cache.Driver = "redis"
	c, err = New(cfg, client, nil)
	require.NoError(t, err)
	assert.IsType(t, &RedisPageCache{}, c)

	_, err = New(cfg, nil, nil)
	assert.Error(t, err)
}

func TestMemoryPageCache_SweepsExpiredKeys(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryPageCache(ttl, clock.now, nil)
	ctx := context.Background()

	for i := 1; i <= 5000; i++ {
		_, err := c.GetOrRender(ctx, fmt.Sprintf("index:page=%d", i), (&counter{}).render)
		require.NoError(t, err)
	}
	require.Equal(t, 5000, c.Len())

	clock.advance(time.Hour)
	_, err := c.GetOrRender(ctx, "index:page=1", (&counter{}).render)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryPageCache_BoundedByMaxEntries(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewMemoryPageCache(ttl, clock.now, nil).WithMaxEntries(3)
	ctx := context.Background()

	for i := 1; i <= 10; i++ {
		got, err := c.GetOrRender(ctx, fmt.Sprintf("index:page=%d", i), (&counter{}).render)
		require.NoError(t, err)
		assert.Equal(t, "v1", string(got))
	}
	assert.Equal(t, 3, c.Len())

	// 过期后腾出空间
	clock.advance(ttl)
	_, err := c.GetOrRender(ctx, "index:page=11", (&counter{}).render)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestPageCache_RenderSpanningInvalidationIsDropped(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			started := make(chan struct{})
			release := make(chan struct{})
			done := make(chan []byte)

			go func() {
				got, err := b.cache.GetOrRender(ctx, "index", func(context.Context) ([]byte, error) {
					close(started)
					<-release
					return []byte("old"), nil
				})
				assert.NoError(t, err)
				done <- got
			}()

			<-started
			require.NoError(t, b.cache.InvalidateAll(ctx))
			close(release)
			assert.Equal(t, "old", string(<-done))

			got, err := b.cache.GetOrRender(ctx, "index", func(context.Context) ([]byte, error) {
				return []byte("new"), nil
			})
			require.NoError(t, err)
			assert.Equal(t, "new", string(got))
		})
	}
}
