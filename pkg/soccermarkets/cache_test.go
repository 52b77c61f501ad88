package soccermarkets

import "testing"

func TestCachingContextHitsOnRepeatedConfig(t *testing.T) {
	cache := NewCachingContext()
	cfg := Config{
		Intervals: 10,
		TeamProbs: simpleTeamProbs(),
		Prune:     PruneThresholds{MaxTotalGoals: 15, MinProb: 0},
	}

	first := cache.Explore(cfg, FullRange(cfg))
	second := cache.Explore(cfg, FullRange(cfg))

	if cache.Stats.Misses != 1 || cache.Stats.Hits != 1 {
		t.Errorf("Stats = %+v, want 1 miss and 1 hit", cache.Stats)
	}
	if abs(first.SurvivalMass()-second.SurvivalMass()) > 1e-12 {
		t.Errorf("cached exploration diverged from original: %f vs %f",
			first.SurvivalMass(), second.SurvivalMass())
	}
}

func TestCachingContextMissesOnDifferentConfig(t *testing.T) {
	cache := NewCachingContext()
	base := Config{Intervals: 10, TeamProbs: simpleTeamProbs(), Prune: PruneThresholds{MaxTotalGoals: 15}}
	other := base
	other.Intervals = 20

	cache.Explore(base, FullRange(base))
	cache.Explore(other, FullRange(other))

	if cache.Stats.Misses != 2 || cache.Stats.Hits != 0 {
		t.Errorf("Stats = %+v, want 2 misses and 0 hits for distinct configs", cache.Stats)
	}
}

func TestCacheStatsAdd(t *testing.T) {
	a := CacheStats{Hits: 3, Misses: 1}
	b := CacheStats{Hits: 2, Misses: 5}
	sum := a.Add(b)
	if sum != (CacheStats{Hits: 5, Misses: 6}) {
		t.Errorf("Add() = %+v, want {5 6}", sum)
	}
}
