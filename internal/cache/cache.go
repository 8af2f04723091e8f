// Package cache keeps short-lived copies of public backend reads.
package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"

	"github.com/georgemunganga/pharmacy-storefront/internal/backend"
)

type entry[V any] struct {
	value   V
	expires time.Time
}

// Cache is a bounded, expiring read-through cache. Concurrent misses for the
// same key share one load.
type Cache[V any] struct {
	name    string
	entries *lru.Cache
	group   singleflight.Group
	ttl     time.Duration
	metrics *backend.Metrics
	now     func() time.Time
}

// New returns a cache holding up to size keys for ttl each. metrics may be
// nil.
func New[V any](name string, size int, ttl time.Duration, metrics *backend.Metrics) (*Cache[V], error) {
	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{name: name, entries: entries, ttl: ttl, metrics: metrics, now: time.Now}, nil
}

// Get returns the cached value for key or calls load. Failed loads are not
// cached.
func (c *Cache[V]) Get(ctx context.Context, key string, load func(context.Context) (V, error)) (V, error) {
	if v, ok := c.entries.Get(key); ok {
		e := v.(entry[V])
		if c.now().Before(e.expires) {
			c.metrics.CacheResult(c.name, true)
			return e.value, nil
		}
		c.entries.Remove(key)
	}
	c.metrics.CacheResult(c.name, false)

	// The shared load outlives any one caller; each caller still stops
	// waiting when its own ctx ends.
	ch := c.group.DoChan(key, func() (interface{}, error) {
		value, err := load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.entries.Add(key, entry[V]{value: value, expires: c.now().Add(c.ttl)})
		return value, nil
	})
	var zero V
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	}
}

func (c *Cache[V]) Remove(key string) { c.entries.Remove(key) }

func (c *Cache[V]) Purge() { c.entries.Purge() }
