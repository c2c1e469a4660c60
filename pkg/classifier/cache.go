package classifier

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/aretw0/statusmap/pkg/domain"
	"github.com/aretw0/statusmap/pkg/graph"
)

// DefaultCacheSize is the number of entries kept per query kind.
const DefaultCacheSize = 512

// KindStats holds the counters of one query kind.
type KindStats struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
	Len       int    `json:"len"`
	Capacity  int    `json:"capacity"`
}

// CacheStats is a snapshot of the reachability cache counters.
type CacheStats struct {
	Ancestors   KindStats `json:"ancestors"`
	Descendants KindStats `json:"descendants"`
}

// Hits sums hits over both kinds.
func (s CacheStats) Hits() uint64 { return s.Ancestors.Hits + s.Descendants.Hits }

// Misses sums misses over both kinds.
func (s CacheStats) Misses() uint64 { return s.Ancestors.Misses + s.Descendants.Misses }

type kindCache struct {
	entries   *lru.Cache[domain.Status, graph.Set]
	capacity  int
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

func (k *kindCache) stats() KindStats {
	return KindStats{
		Hits:      k.hits.Load(),
		Misses:    k.misses.Load(),
		Evictions: k.evictions.Load(),
		Len:       k.entries.Len(),
		Capacity:  k.capacity,
	}
}

// ReachCache memoizes ancestor and descendant sets of one graph.
// It is safe for concurrent use. Two goroutines missing on the same key may
// both compute the set; the second store wins and the result is identical.
type ReachCache struct {
	ancestors   *kindCache
	descendants *kindCache
}

// NewReachCache creates a cache holding up to size entries per query kind.
func NewReachCache(size int) (*ReachCache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cache size must be positive, got %d", size)
	}

	newKind := func() (*kindCache, error) {
		entries, err := lru.New[domain.Status, graph.Set](size)
		if err != nil {
			return nil, err
		}
		return &kindCache{entries: entries, capacity: size}, nil
	}

	anc, err := newKind()
	if err != nil {
		return nil, fmt.Errorf("failed to create ancestors cache: %w", err)
	}
	desc, err := newKind()
	if err != nil {
		return nil, fmt.Errorf("failed to create descendants cache: %w", err)
	}

	return &ReachCache{ancestors: anc, descendants: desc}, nil
}

func (c *ReachCache) kind(kind domain.QueryKind) *kindCache {
	if kind == domain.QueryAncestors {
		return c.ancestors
	}
	return c.descendants
}

// Lookup returns the cached set for (kind, status), computing and storing it
// on a miss. The second result reports whether it was a hit.
func (c *ReachCache) Lookup(kind domain.QueryKind, status domain.Status, compute func(domain.Status) graph.Set) (graph.Set, bool) {
	k := c.kind(kind)

	if set, ok := k.entries.Get(status); ok {
		k.hits.Add(1)
		return set, true
	}

	k.misses.Add(1)
	set := compute(status)
	if evicted := k.entries.Add(status, set); evicted {
		k.evictions.Add(1)
	}
	return set, false
}

// Clear drops every entry. Counters are kept.
func (c *ReachCache) Clear() {
	c.ancestors.entries.Purge()
	c.descendants.entries.Purge()
}

// Stats returns a snapshot of the counters.
func (c *ReachCache) Stats() CacheStats {
	return CacheStats{
		Ancestors:   c.ancestors.stats(),
		Descendants: c.descendants.stats(),
	}
}
