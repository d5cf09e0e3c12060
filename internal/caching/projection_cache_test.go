package caching

import (
	"errors"
	"testing"
	"time"

	"navhub/internal/navigation"

	"github.com/stretchr/testify/assert"
)

func projectionOf(ids ...int64) navigation.Projection {
	p := make(navigation.Projection, 0, len(ids))
	for _, id := range ids {
		p = append(p, navigation.MenuEntry{ID: id, Title: "menu", Submenus: []navigation.SubmenuEntry{}})
	}
	return p
}

// countingCompute returns a compute func that tracks invocations.
func countingCompute(result navigation.Projection, calls *int) func() (navigation.Projection, error) {
	return func() (navigation.Projection, error) {
		*calls++
		return result, nil
	}
}

func TestProjectionCache_HitSkipsCompute(t *testing.T) {
	cache := NewProjectionCache(ProjectionCacheConfig{Capacity: 4})
	calls := 0
	compute := countingCompute(projectionOf(1), &calls)

	first, err := cache.GetOrCompute("fp-a", 1, compute)
	assert.NoError(t, err)
	second, err := cache.GetOrCompute("fp-a", 1, compute)
	assert.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}

func TestProjectionCache_VersionMismatchRecomputes(t *testing.T) {
	cache := NewProjectionCache(ProjectionCacheConfig{Capacity: 4})
	calls := 0

	_, err := cache.GetOrCompute("fp-a", 1, countingCompute(projectionOf(1), &calls))
	assert.NoError(t, err)

	// Same fingerprint, newer store version: the stale entry counts as a
	// miss and is replaced in place.
	fresh, err := cache.GetOrCompute("fp-a", 2, countingCompute(projectionOf(1, 2), &calls))
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, fresh, 2)

	// The replacement is now served for version 2.
	again, err := cache.GetOrCompute("fp-a", 2, countingCompute(nil, &calls))
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, fresh, again)

	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(2), stats.Misses)
	assert.Equal(t, 1, stats.Entries, "stale versions are replaced, never accumulated")
}

func TestProjectionCache_TTLExpiry(t *testing.T) {
	cache := NewProjectionCache(ProjectionCacheConfig{Capacity: 4, TTL: 10 * time.Millisecond})
	calls := 0
	compute := countingCompute(projectionOf(1), &calls)

	_, err := cache.GetOrCompute("fp-a", 1, compute)
	assert.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = cache.GetOrCompute("fp-a", 1, compute)
	assert.NoError(t, err)
	assert.Equal(t, 2, calls, "expired entry must recompute")
}

func TestProjectionCache_LRUEviction(t *testing.T) {
	cache := NewProjectionCache(ProjectionCacheConfig{Capacity: 2})
	calls := 0

	_, _ = cache.GetOrCompute("fp-a", 1, countingCompute(projectionOf(1), &calls))
	_, _ = cache.GetOrCompute("fp-b", 1, countingCompute(projectionOf(2), &calls))

	// Touch fp-a so fp-b becomes the eviction candidate.
	_, _ = cache.GetOrCompute("fp-a", 1, countingCompute(nil, &calls))
	_, _ = cache.GetOrCompute("fp-c", 1, countingCompute(projectionOf(3), &calls))

	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.Evictions)
	assert.Equal(t, 2, stats.Entries)

	// fp-a survived, fp-b did not.
	_, _ = cache.GetOrCompute("fp-a", 1, countingCompute(nil, &calls))
	before := calls
	_, _ = cache.GetOrCompute("fp-b", 1, countingCompute(projectionOf(2), &calls))
	assert.Equal(t, before+1, calls, "evicted entry must recompute")
}

func TestProjectionCache_DisabledAlwaysComputes(t *testing.T) {
	cache := NewProjectionCache(ProjectionCacheConfig{Capacity: 0})
	assert.False(t, cache.Enabled())

	calls := 0
	compute := countingCompute(projectionOf(1), &calls)

	first, err := cache.GetOrCompute("fp-a", 1, compute)
	assert.NoError(t, err)
	second, err := cache.GetOrCompute("fp-a", 1, compute)
	assert.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, first, second, "disabled cache must not change results")

	stats := cache.Stats()
	assert.Equal(t, uint64(0), stats.Hits)
	assert.Equal(t, 0, stats.Entries)
}

func TestProjectionCache_DisabledMatchesEnabledResults(t *testing.T) {
	enabled := NewProjectionCache(ProjectionCacheConfig{Capacity: 8})
	disabled := NewProjectionCache(ProjectionCacheConfig{Capacity: 0})

	compute := func() (navigation.Projection, error) {
		return projectionOf(1, 2, 3), nil
	}

	fromEnabled, err := enabled.GetOrCompute("fp-a", 7, compute)
	assert.NoError(t, err)
	fromEnabledHit, err := enabled.GetOrCompute("fp-a", 7, compute)
	assert.NoError(t, err)
	fromDisabled, err := disabled.GetOrCompute("fp-a", 7, compute)
	assert.NoError(t, err)

	assert.Equal(t, fromEnabled, fromDisabled)
	assert.Equal(t, fromEnabledHit, fromDisabled)
}

func TestProjectionCache_ComputeErrorNotStored(t *testing.T) {
	cache := NewProjectionCache(ProjectionCacheConfig{Capacity: 4})
	boom := errors.New("snapshot unavailable")

	_, err := cache.GetOrCompute("fp-a", 1, func() (navigation.Projection, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, cache.Stats().Entries)

	// A later successful compute for the same key stores normally.
	calls := 0
	_, err = cache.GetOrCompute("fp-a", 1, countingCompute(projectionOf(1), &calls))
	assert.NoError(t, err)
	assert.Equal(t, 1, cache.Stats().Entries)
}

func TestProjectionCacheStats_HitRate(t *testing.T) {
	assert.Equal(t, float64(0), ProjectionCacheStats{}.HitRate())
	assert.Equal(t, 0.75, ProjectionCacheStats{Hits: 3, Misses: 1}.HitRate())
}
