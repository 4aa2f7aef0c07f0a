package container

import (
	"time"

	"github.com/dgraph-io/ristretto"
)

// DecodeCache caches decoded meshes by container id so repeat reads of
// the same blob skip DecompressMG2 entirely.
type DecodeCache struct {
	cache  *ristretto.Cache
	ttl    time.Duration
	hits   int64
	misses int64
}

// NewDecodeCache builds a decode cache with the given cost budget (bytes
// of decoded mesh data, approximately) and per-entry TTL.
func NewDecodeCache(maxCost int64, ttl time.Duration) (*DecodeCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxCost / 10,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &DecodeCache{cache: cache, ttl: ttl}, nil
}

// Get returns the cached mesh for id, if present.
func (c *DecodeCache) Get(id string) (*DecodedMesh, bool) {
	v, ok := c.cache.Get(id)
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	return v.(*DecodedMesh), true
}

// Set stores a decoded mesh under id, costed by its approximate memory
// footprint.
func (c *DecodeCache) Set(id string, mesh *DecodedMesh, cost int64) {
	c.cache.SetWithTTL(id, mesh, cost, c.ttl)
	c.cache.Wait()
}

// Invalidate drops a cached entry, e.g. after the underlying blob is
// overwritten.
func (c *DecodeCache) Invalidate(id string) {
	c.cache.Del(id)
}

// Metrics reports cache hit/miss counters.
func (c *DecodeCache) Metrics() CacheMetrics {
	total := c.hits + c.misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(c.hits) / float64(total) * 100
	}
	return CacheMetrics{Hits: c.hits, Misses: c.misses, HitRate: hitRate}
}

// CacheMetrics summarizes decode cache performance.
type CacheMetrics struct {
	Hits    int64
	Misses  int64
	HitRate float64
}

// Close releases cache resources.
func (c *DecodeCache) Close() {
	c.cache.Close()
}
