package api

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/randalmurphal/remedy/internal/registry"
	"github.com/randalmurphal/remedy/internal/stats"
)

// statsCache provides a TTL-based cache for the aggregate overview,
// with singleflight coalescing so concurrent dashboard reads share a
// single registry scan.
type statsCache struct {
	mu       sync.RWMutex
	overview *stats.Overview
	loadedAt time.Time
	ttl      time.Duration
	group    singleflight.Group
	reg      *registry.Registry
}

func newStatsCache(reg *registry.Registry, ttl time.Duration) *statsCache {
	return &statsCache{
		reg: reg,
		ttl: ttl,
	}
}

// Overview returns the cached overview or recomputes it from a fresh
// registry snapshot.
func (c *statsCache) Overview() (stats.Overview, error) {
	c.mu.RLock()
	if c.overview != nil && time.Since(c.loadedAt) < c.ttl {
		ov := *c.overview
		c.mu.RUnlock()
		return ov, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.group.Do("overview", func() (any, error) {
		// Double-check after acquiring the singleflight slot
		c.mu.RLock()
		if c.overview != nil && time.Since(c.loadedAt) < c.ttl {
			ov := *c.overview
			c.mu.RUnlock()
			return ov, nil
		}
		c.mu.RUnlock()

		ov, err := stats.ComputeOverview(c.reg.GetAll())
		if err != nil {
			return stats.Overview{}, err
		}

		c.mu.Lock()
		c.overview = &ov
		c.loadedAt = time.Now()
		c.mu.Unlock()

		return ov, nil
	})
	if err != nil {
		return stats.Overview{}, err
	}
	return result.(stats.Overview), nil
}

// Invalidate clears the cache, forcing the next Overview() call to
// recompute. Called whenever a merge changes task state.
func (c *statsCache) Invalidate() {
	c.mu.Lock()
	c.overview = nil
	c.loadedAt = time.Time{}
	c.mu.Unlock()
}
