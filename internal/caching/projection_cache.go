package caching

import (
	"container/list"
	"sync"
	"time"

	"navhub/internal/navigation"
)

// projectionEntry is keyed by fingerprint alone; the store version rides
// inside the entry. A version mismatch on lookup counts as a miss and the
// recomputed projection replaces the stale one, so old versions never
// accumulate.
type projectionEntry struct {
	fingerprint string
	version     uint64
	projection  navigation.Projection
	expiresAt   time.Time
}

// ProjectionCacheConfig bounds the cache. Capacity <= 0 disables caching
// entirely: every call computes. TTL zero means entries only die by
// eviction or version change.
type ProjectionCacheConfig struct {
	Capacity int
	TTL      time.Duration
}

// ProjectionCache memoizes projections per permission-set fingerprint,
// bounded LRU over entries. It is an optimization only: results are
// identical with the cache disabled. Cached projections are shared between
// callers and must be treated as immutable.
type ProjectionCache struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	items     map[string]*list.Element
	evictList *list.List

	hits      uint64
	misses    uint64
	evictions uint64
}

// ProjectionCacheStats is a point-in-time counter snapshot.
type ProjectionCacheStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Entries   int
}

// HitRate returns hits over total lookups, 0 when the cache is cold.
func (s ProjectionCacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

func NewProjectionCache(config ProjectionCacheConfig) *ProjectionCache {
	return &ProjectionCache{
		capacity:  config.Capacity,
		ttl:       config.TTL,
		items:     make(map[string]*list.Element),
		evictList: list.New(),
	}
}

// Enabled reports whether the cache stores anything at all.
func (c *ProjectionCache) Enabled() bool {
	return c.capacity > 0
}

// GetOrCompute returns the cached projection for fingerprint when its
// stored version matches version and it has not expired; otherwise it runs
// compute and replaces the entry. compute runs outside the lock, so two
// callers racing on the same fingerprint may both compute — the last store
// wins, which is harmless because both computed from the same snapshot
// inputs.
func (c *ProjectionCache) GetOrCompute(fingerprint string, version uint64, compute func() (navigation.Projection, error)) (navigation.Projection, error) {
	if !c.Enabled() {
		return compute()
	}

	c.mu.Lock()
	if elem, ok := c.items[fingerprint]; ok {
		ent := elem.Value.(*projectionEntry)
		if ent.version == version && !c.expired(ent) {
			c.evictList.MoveToFront(elem)
			c.hits++
			projection := ent.projection
			c.mu.Unlock()
			return projection, nil
		}
	}
	c.misses++
	c.mu.Unlock()

	projection, err := compute()
	if err != nil {
		return nil, err
	}

	c.store(fingerprint, version, projection)
	return projection, nil
}

func (c *ProjectionCache) store(fingerprint string, version uint64, projection navigation.Projection) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = time.Now().Add(c.ttl)
	}

	if elem, ok := c.items[fingerprint]; ok {
		ent := elem.Value.(*projectionEntry)
		ent.version = version
		ent.projection = projection
		ent.expiresAt = expiresAt
		c.evictList.MoveToFront(elem)
		return
	}

	elem := c.evictList.PushFront(&projectionEntry{
		fingerprint: fingerprint,
		version:     version,
		projection:  projection,
		expiresAt:   expiresAt,
	})
	c.items[fingerprint] = elem

	for c.evictList.Len() > c.capacity {
		oldest := c.evictList.Back()
		if oldest == nil {
			break
		}
		c.removeElement(oldest)
		c.evictions++
	}
}

func (c *ProjectionCache) expired(ent *projectionEntry) bool {
	return c.ttl > 0 && time.Now().After(ent.expiresAt)
}

// removeElement must be called with the lock held.
func (c *ProjectionCache) removeElement(elem *list.Element) {
	c.evictList.Remove(elem)
	ent := elem.Value.(*projectionEntry)
	delete(c.items, ent.fingerprint)
}

// Stats returns current counters for the cache statistics job.
func (c *ProjectionCache) Stats() ProjectionCacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ProjectionCacheStats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Entries:   c.evictList.Len(),
	}
}
