package soccermarkets

// IntervalRange is a half-open [From, To) subrange of a match's slices; only
// slices in this subrange are actually simulated. Slices outside the range
// leave the score and every player stat unchanged for that tick, which lets
// a fitter re-explore a single half without re-walking the whole match.
type IntervalRange struct {
	From uint8
	To   uint8
}

// FullRange returns the IntervalRange covering every slice of a Config.
func FullRange(cfg Config) IntervalRange {
	return IntervalRange{From: 0, To: cfg.Intervals}
}

// Explore runs the forward interval-expansion engine: it decomposes a match
// into cfg.Intervals equal slices and, for every slice inside include,
// expands the surviving prospect distribution under the step kernel.
//
// Generalizes the teacher's kernel.go ScoreMatrix -- which built one static
// full-match Poisson grid in a single pass -- into a genuine multi-slice
// forward walk carrying per-player goal/assist attribution alongside the
// team score, with the active Expansions controlling how much of that
// attribution is actually branched on.
func Explore(cfg Config, include IntervalRange) Exploration {
	lookup := buildPlayerLookup(cfg.PlayerProbs)

	prospects := Prospects{{FirstScorer: noFirstScorer}: 1.0}

	for i := uint8(0); i < cfg.Intervals; i++ {
		if i < include.From || i >= include.To {
			continue
		}
		isFirstHalf := i < cfg.Intervals/2
		probs := h1OrH2(cfg.TeamProbs, i, cfg.Intervals)
		prospects = stepSlice(prospects, probs, isFirstHalf, cfg, lookup)
		prospects = prune(prospects, cfg.Prune)
	}

	return Exploration{PlayerLookup: lookup, Prospects: coarsen(prospects, cfg.Expansions)}
}

// h1OrH2 selects the BivariateProbs governing slice i: slice i belongs to
// the first half iff i < intervals/2 (integer division, floor) -- the
// boundary slice of an odd interval count falls in the second half.
func h1OrH2(tp TeamProbs, slice, intervals uint8) BivariateProbs {
	if slice < intervals/2 {
		return tp.H1Goals
	}
	return tp.H2Goals
}

// buildPlayerLookup assigns each PlayerRating a stable index in the order
// given, generalizing the teacher's simulator.go getTeamIndex map+slice
// idiom via the generic HashLookup[Player] (see hashlookup.go).
func buildPlayerLookup(ratings []PlayerRating) HashLookup[Player] {
	lookup := NewHashLookup[Player](len(ratings))
	for _, r := range ratings {
		lookup.Push(r.Player)
	}
	if lookup.Len() > MaxTrackedPlayers {
		panic("too many tracked players for one ProspectKey")
	}
	return lookup
}

// branch is one weighted outcome produced while attributing the goal(s) of
// a single sub-event.
type branch struct {
	Key  ProspectKey
	Prob float64
}

// stepSlice expands every surviving prospect under the four-way step
// kernel partition (no goal, home-only, away-only, coincident pair) and
// merges children with identical content by summation.
func stepSlice(in Prospects, probs BivariateProbs, isFirstHalf bool, cfg Config, lookup HashLookup[Player]) Prospects {
	out := make(Prospects, len(in))
	noGoalProb := 1 - probs.Home - probs.Away - probs.Common

	for key, weight := range in {
		if weight <= 0 {
			continue
		}
		if noGoalProb > 0 {
			addProspect(out, key, weight*noGoalProb)
		}
		if probs.Home > 0 {
			bumped := bumpScore(key, isFirstHalf, 1, 0)
			for _, b := range expandGoal(bumped, Home, isFirstHalf, cfg, lookup) {
				addProspect(out, b.Key, weight*probs.Home*b.Prob)
			}
		}
		if probs.Away > 0 {
			bumped := bumpScore(key, isFirstHalf, 0, 1)
			for _, b := range expandGoal(bumped, Away, isFirstHalf, cfg, lookup) {
				addProspect(out, b.Key, weight*probs.Away*b.Prob)
			}
		}
		if probs.Common > 0 {
			bumped := bumpScore(key, isFirstHalf, 1, 1)
			// Home resolved before away so a coincident pair's first-scorer
			// tie-break always favors the home scorer.
			for _, hb := range expandGoal(bumped, Home, isFirstHalf, cfg, lookup) {
				for _, ab := range expandGoal(hb.Key, Away, isFirstHalf, cfg, lookup) {
					addProspect(out, ab.Key, weight*probs.Common*hb.Prob*ab.Prob)
				}
			}
		}
	}
	return out
}

func addProspect(m Prospects, key ProspectKey, weight float64) {
	if weight <= 0 {
		return
	}
	m[key] += weight
}

// bumpScore applies one goal's score delta. FTScore always accumulates;
// HTScore only accumulates while the slice is still in the first half, so
// it naturally freezes at kickoff of the second half.
func bumpScore(key ProspectKey, isFirstHalf bool, dHome, dAway uint8) ProspectKey {
	next := key
	next.FTScore.Home += dHome
	next.FTScore.Away += dAway
	if isFirstHalf {
		next.HTScore.Home += dHome
		next.HTScore.Away += dAway
	}
	return next
}

// expandGoal attributes one goal already reflected in key's score to a
// scorer (and, independently, an assister) on the given side. key must
// already carry the post-goal score. Returns one branch per fully-specified
// attribution; if no attribution is required by the active Expansions, it
// collapses to a single unbranched outcome.
func expandGoal(key ProspectKey, side Side, isFirstHalf bool, cfg Config, lookup HashLookup[Player]) []branch {
	needsScorerDraw := cfg.Expansions.PlayerGoalStats ||
		cfg.Expansions.TracksAssists() ||
		(cfg.Expansions.FirstGoalscorer && key.FirstScorer == noFirstScorer)

	if !needsScorerDraw {
		return []branch{{Key: key, Prob: 1.0}}
	}

	candidates := goalCandidates(side, cfg, lookup)
	if len(candidates) == 0 {
		panic("no goal-probability entries for side " + side.String())
	}

	var out []branch
	for _, c := range candidates {
		child := key
		if cfg.Expansions.PlayerGoalStats {
			incrementGoal(&child, c.Index, isFirstHalf)
		}
		if cfg.Expansions.FirstGoalscorer && child.FirstScorer == noFirstScorer {
			child.FirstScorer = c.Index
		}
		if cfg.Expansions.TracksAssists() {
			for _, ab := range expandAssist(child, side, isFirstHalf, cfg, lookup, c.Index) {
				out = append(out, branch{Key: ab.Key, Prob: c.Prob * ab.Prob})
			}
		} else {
			out = append(out, branch{Key: child, Prob: c.Prob})
		}
	}
	return out
}

// expandAssist independently draws whether this goal was assisted and, if
// so, by whom. An assister is never the goalscorer on the same goal when
// both are named: a collision re-credits the assist to the Other bucket for
// that side rather than dropping it.
func expandAssist(key ProspectKey, side Side, isFirstHalf bool, cfg Config, lookup HashLookup[Player], scorerIndex int) []branch {
	assistProb := sideAssistProb(cfg.TeamProbs.Assists, side)
	if assistProb <= 0 {
		return []branch{{Key: key, Prob: 1}}
	}

	otherIndex, ok := lookup.IndexOf(OtherPlayer(side))
	if !ok {
		panic("no Other player entry for side " + side.String())
	}

	weightByIndex := make(map[int]float64)
	for _, c := range assistCandidates(side, cfg, lookup) {
		idx := c.Index
		if idx == scorerIndex && idx != otherIndex {
			idx = otherIndex
		}
		weightByIndex[idx] += c.Prob
	}

	out := []branch{{Key: key, Prob: 1 - assistProb}}
	for idx, p := range weightByIndex {
		if p <= 0 {
			continue
		}
		child := key
		incrementAssist(&child, idx, isFirstHalf)
		out = append(out, branch{Key: child, Prob: assistProb * p})
	}
	return out
}

func incrementGoal(key *ProspectKey, index int, isFirstHalf bool) {
	if isFirstHalf {
		key.Stats[index].H1.Goals++
	} else {
		key.Stats[index].H2.Goals++
	}
}

func incrementAssist(key *ProspectKey, index int, isFirstHalf bool) {
	if isFirstHalf {
		key.Stats[index].H1.Assists++
	} else {
		key.Stats[index].H2.Assists++
	}
}

type indexedProb struct {
	Index int
	Prob  float64
}

func goalCandidates(side Side, cfg Config, lookup HashLookup[Player]) []indexedProb {
	var out []indexedProb
	for _, r := range cfg.PlayerProbs {
		if r.Player.Side != side || r.Probs.Goal == nil {
			continue
		}
		idx, ok := lookup.IndexOf(r.Player)
		if !ok {
			continue
		}
		out = append(out, indexedProb{Index: idx, Prob: *r.Probs.Goal})
	}
	return out
}

func assistCandidates(side Side, cfg Config, lookup HashLookup[Player]) []indexedProb {
	var out []indexedProb
	for _, r := range cfg.PlayerProbs {
		if r.Player.Side != side || r.Probs.Assist == nil {
			continue
		}
		idx, ok := lookup.IndexOf(r.Player)
		if !ok {
			continue
		}
		out = append(out, indexedProb{Index: idx, Prob: *r.Probs.Assist})
	}
	return out
}

func sideAssistProb(up UnivariateProbs, side Side) float64 {
	if side == Home {
		return up.Home
	}
	return up.Away
}

// prune drops every prospect whose total goals exceed the configured
// ceiling or whose weight is below the minimum probability floor. Discarded
// mass is not renormalized.
func prune(in Prospects, thresholds PruneThresholds) Prospects {
	out := make(Prospects, len(in))
	for key, w := range in {
		if w <= 0 {
			continue
		}
		if uint16(key.FTScore.Total()) > thresholds.MaxTotalGoals {
			continue
		}
		if w < thresholds.MinProb {
			continue
		}
		out[key] += w
	}
	return out
}

// coarsen zero-fills every ProspectKey field the active Expansions does not
// track and merges the resulting duplicate keys by summation, so two
// prospects that differ only in a coarsened-out attribute collapse into one
// (see DESIGN.md, "ProspectKey coarsening").
func coarsen(in Prospects, exp Expansions) Prospects {
	out := make(Prospects, len(in))
	for key, w := range in {
		ck := key
		if !exp.HTScore {
			ck.HTScore = Score{}
		}
		if !exp.FTScore {
			ck.FTScore = Score{}
		}
		for i := range ck.Stats {
			ck.Stats[i] = coarsenPlayerStats(ck.Stats[i], exp)
		}
		if !exp.FirstGoalscorer {
			ck.FirstScorer = noFirstScorer
		}
		out[ck] += w
	}
	return out
}

func coarsenPlayerStats(s PlayerStats, exp Expansions) PlayerStats {
	h1Goals, h2Goals := s.H1.Goals, s.H2.Goals
	h1Assists, h2Assists := s.H1.Assists, s.H2.Assists
	if !exp.PlayerGoalStats {
		h1Goals, h2Goals = 0, 0
	}
	if !exp.TracksAssists() {
		h1Assists, h2Assists = 0, 0
	}
	if !exp.PlayerSplitGoalStats {
		h1Goals += h2Goals
		h2Goals = 0
		h1Assists += h2Assists
		h2Assists = 0
	}
	return PlayerStats{
		H1: GoalsAssists{Goals: h1Goals, Assists: h1Assists},
		H2: GoalsAssists{Goals: h2Goals, Assists: h2Assists},
	}
}
