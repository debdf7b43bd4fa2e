package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultMaxEntries bounds a MemoryPageCache when no limit is given.
const DefaultMaxEntries = 10000

type entry struct {
	data    []byte
	expires time.Time
}

// MemoryPageCache is a process-local PageCache.
//
// Expired entries are swept at most once per TTL when a new page is stored,
// and the map never grows past maxEntries.
type MemoryPageCache struct {
	mu         sync.Mutex
	entries    map[string]entry
	ttl        time.Duration
	now        func() time.Time
	metrics    *Metrics
	maxEntries int
	nextSweep  time.Time
	// generation 每次 InvalidateAll 自增，渲染跨越失效时丢弃结果
	generation uint64
}

// NewMemoryPageCache uses now as its clock; pass time.Now outside tests.
func NewMemoryPageCache(ttl time.Duration, now func() time.Time, metrics *Metrics) *MemoryPageCache {
	return &MemoryPageCache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		now:        now,
		metrics:    metrics,
		maxEntries: DefaultMaxEntries,
	}
}

// WithMaxEntries sets the entry limit; n <= 0 keeps the default.
func (c *MemoryPageCache) WithMaxEntries(n int) *MemoryPageCache {
	if n > 0 {
		c.maxEntries = n
	}
	return c
}

func (c *MemoryPageCache) GetOrRender(ctx context.Context, key string, render Renderer) ([]byte, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && c.now().Before(e.expires) {
		c.mu.Unlock()
		c.metrics.hit()
		return e.data, nil
	}
	if ok {
		delete(c.entries, key)
	}
	gen := c.generation
	c.mu.Unlock()
	c.metrics.miss()

	// 渲染期间不持锁
	data, err := render(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return data, nil
	}
	now := c.now()
	if !now.Before(c.nextSweep) || len(c.entries) >= c.maxEntries {
		c.sweep(now)
	}
	if len(c.entries) < c.maxEntries {
		c.entries[key] = entry{data: data, expires: now.Add(c.ttl)}
	}
	return data, nil
}

// sweep drops expired entries; the caller holds mu.
func (c *MemoryPageCache) sweep(now time.Time) {
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
		}
	}
	c.nextSweep = now.Add(c.ttl)
}

func (c *MemoryPageCache) InvalidateAll(_ context.Context) error {
	c.metrics.invalidated()
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.generation++
	c.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryPageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
