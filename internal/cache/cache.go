// Package cache memoizes rendered pages for a fixed TTL.
//
// Entries are populated on the first read after they expire or are
// invalidated, and cleared only by TTL expiry or InvalidateAll. There is no
// per-entry invalidation: after a post changes, readers keep getting the
// cached bytes until one of those two things happens. Concurrent renders of
// the same key are last-writer-wins.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/yatube/config"
)

// Renderer produces the fresh page bytes on a cache miss.
type Renderer func(ctx context.Context) ([]byte, error)

// PageCache is shared by every request of the process.
type PageCache interface {
	// GetOrRender returns the cached bytes for key, rendering and storing
	// them first when absent or expired. Render errors are returned and
	// nothing is stored.
	GetOrRender(ctx context.Context, key string, render Renderer) ([]byte, error)
	// InvalidateAll drops every entry immediately.
	InvalidateAll(ctx context.Context) error
}

// Metrics counts cache traffic. A nil *Metrics records nothing.
type Metrics struct {
	lookups       *prometheus.CounterVec
	invalidations prometheus.Counter
}

// NewMetrics registers the counters on reg; pass nil to keep them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yatube",
			Subsystem: "page_cache",
			Name:      "lookups_total",
			Help:      "Page cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		invalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "yatube",
			Subsystem: "page_cache",
			Name:      "invalidations_total",
			Help:      "Number of InvalidateAll calls.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.lookups, m.invalidations)
	}
	return m
}

func (m *Metrics) hit() {
	if m != nil {
		m.lookups.WithLabelValues("hit").Inc()
	}
}

func (m *Metrics) miss() {
	if m != nil {
		m.lookups.WithLabelValues("miss").Inc()
	}
}

func (m *Metrics) failed() {
	if m != nil {
		m.lookups.WithLabelValues("error").Inc()
	}
}

func (m *Metrics) invalidated() {
	if m != nil {
		m.invalidations.Inc()
	}
}

// New picks the backend named by cfg.Cache.Driver.
func New(cfg *config.Config, client *redis.Client, metrics *Metrics) (PageCache, error) {
	ttl := cfg.Feed.IndexCacheTTL
	switch cfg.Cache.Driver {
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("cache driver redis requires a redis client")
		}
		return NewRedisPageCache(client, ttl, metrics), nil
	case "memory":
		return NewMemoryPageCache(ttl, time.Now, metrics), nil
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.Cache.Driver)
	}
}
