package soccermarkets

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// CacheStats tracks hit/miss counts for a CachingContext. It is addable as
// a monoid, mirroring the original engine's CacheStats (model/cache_stats.rs
// in original_source) and the teacher's own plain aggregate-struct style
// (Team, SimulationResult in types.go).
type CacheStats struct {
	Hits   int
	Misses int
}

// Add returns the element-wise sum of two CacheStats.
func (s CacheStats) Add(other CacheStats) CacheStats {
	return CacheStats{Hits: s.Hits + other.Hits, Misses: s.Misses + other.Misses}
}

// AddHit records one cache hit.
func (s CacheStats) AddHit() CacheStats {
	return CacheStats{Hits: s.Hits + 1, Misses: s.Misses}
}

// AddMiss records one cache miss.
func (s CacheStats) AddMiss() CacheStats {
	return CacheStats{Hits: s.Hits, Misses: s.Misses + 1}
}

// CachingContext memoizes Explore calls keyed by the canonical encoding of
// (Config, IntervalRange). It is single-owner and not safe for concurrent
// use from multiple goroutines, matching the single-threaded/deterministic
// engine model (see SPEC_FULL.md Concurrency).
type CachingContext struct {
	entries map[string]Exploration
	Stats   CacheStats
}

// NewCachingContext returns an empty cache.
func NewCachingContext() *CachingContext {
	return &CachingContext{entries: make(map[string]Exploration)}
}

// Explore returns the Exploration for (cfg, include), computing and caching
// it on a miss. The canonical key is built the same way the original
// engine builds its bincode-encoded Vec<u8> key (model/cache.rs in
// original_source): encode the full argument tuple, and use the resulting
// bytes -- converted to a string, Go's idiomatic hashable/comparable
// wrapper around a byte slice -- as the map key.
func (c *CachingContext) Explore(cfg Config, include IntervalRange) Exploration {
	key, err := cacheKey(cfg, include)
	if err != nil {
		panic(fmt.Sprintf("cache: failed to encode key: %v", err))
	}
	if cached, ok := c.entries[key]; ok {
		c.Stats = c.Stats.AddHit()
		return cached
	}
	exploration := Explore(cfg, include)
	c.entries[key] = exploration
	c.Stats = c.Stats.AddMiss()
	return exploration
}

func cacheKey(cfg Config, include IntervalRange) (string, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(cfg); err != nil {
		return "", err
	}
	if err := enc.Encode(include); err != nil {
		return "", err
	}
	return buf.String(), nil
}
