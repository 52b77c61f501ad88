package soccermarkets

import "fmt"

// querySpecKind discriminates the QuerySpec tagged union.
type querySpecKind int

const (
	qsNone querySpecKind = iota
	qsGeneric
	qsPlayerLookup
	qsNoFirstGoalscorer
	qsNoAnytimeGoalscorer
	qsNoAnytimeAssist
)

// QuerySpec captures, ahead of time, the shape a filter call needs: any
// Player reference is resolved to a stable lookup index once in prepare
// rather than on every prospect. Mirrors the original engine's QuerySpec
// enum (see interval/query.rs in original_source) in Go's tagged-struct
// idiom. qsNoAnytimeAssist extends that original set by one variant: the
// spec describes AnytimeAssist's "no assister" selection as "analogous"
// to AnytimeGoalscorer's NoAnytimeGoalscorer case, which needs its own
// discriminant since it is a different offer type (see DESIGN.md).
type QuerySpec struct {
	kind        querySpecKind
	Outcome     Outcome
	PlayerIndex int
}

func genericQuery(outcome Outcome) QuerySpec     { return QuerySpec{kind: qsGeneric, Outcome: outcome} }
func playerLookupQuery(index int) QuerySpec      { return QuerySpec{kind: qsPlayerLookup, PlayerIndex: index} }
func noFirstGoalscorerQuery() QuerySpec          { return QuerySpec{kind: qsNoFirstGoalscorer} }
func noAnytimeGoalscorerQuery() QuerySpec        { return QuerySpec{kind: qsNoAnytimeGoalscorer} }
func noAnytimeAssistQuery() QuerySpec            { return QuerySpec{kind: qsNoAnytimeAssist} }

// Requirements returns the minimum Expansions an offer type needs tracked.
// Callers union these across every offer they intend to query before
// calling Explore.
func Requirements(offerType OfferType) Expansions {
	switch offerType.kind {
	case offerHeadToHead, offerTotalGoals, offerCorrectScore:
		return scoreRequirements(offerType.Period)
	case offerFirstGoalscorer:
		return Expansions{FirstGoalscorer: true}
	case offerAnytimeGoalscorer:
		return Expansions{PlayerGoalStats: true}
	case offerAnytimeAssist:
		return Expansions{PlayerGoalStats: true, MaxPlayerAssists: 1}
	case offerDrawNoBet, offerPlayerShotsOnTarget:
		return Expansions{}
	default:
		panic(fmt.Sprintf("requirements: unhandled offer type %s", offerType))
	}
}

// scoreRequirements mirrors head_to_head.rs's per-period Expansions in
// original_source: FirstHalf only needs the HT score, SecondHalf needs
// both (since the second-half score is derived as FT-HT), FullTime only
// needs FT.
func scoreRequirements(period Period) Expansions {
	switch period {
	case FirstHalf:
		return Expansions{HTScore: true}
	case SecondHalf:
		return Expansions{HTScore: true, FTScore: true}
	case FullTime:
		return Expansions{FTScore: true}
	default:
		panic(fmt.Sprintf("scoreRequirements: unhandled period %s", period))
	}
}

// UnionRequirements reduces the Requirements of every given offer type to
// the minimal Expansions that satisfies all of them.
func UnionRequirements(offerTypes []OfferType) Expansions {
	var exp Expansions
	for _, ot := range offerTypes {
		exp = exp.Union(Requirements(ot))
	}
	return exp
}

// Prepare resolves outcome against offerType into a QuerySpec, looking up
// any Player reference against lookup.
func Prepare(offerType OfferType, outcome Outcome, lookup HashLookup[Player]) QuerySpec {
	switch offerType.kind {
	case offerHeadToHead, offerTotalGoals, offerCorrectScore:
		return genericQuery(outcome)
	case offerFirstGoalscorer:
		if outcome.kind == outcomeNone {
			return noFirstGoalscorerQuery()
		}
		return playerLookupQuery(mustIndex(lookup, outcome.Player))
	case offerAnytimeGoalscorer:
		if outcome.kind == outcomeNone {
			return noAnytimeGoalscorerQuery()
		}
		return playerLookupQuery(mustIndex(lookup, outcome.Player))
	case offerAnytimeAssist:
		if outcome.kind == outcomeNone {
			return noAnytimeAssistQuery()
		}
		return playerLookupQuery(mustIndex(lookup, outcome.Player))
	case offerDrawNoBet, offerPlayerShotsOnTarget:
		panic(fmt.Sprintf("Prepare: unsupported offer type %s", offerType))
	default:
		panic(fmt.Sprintf("Prepare: unhandled offer type %s", offerType))
	}
}

func mustIndex(lookup HashLookup[Player], player Player) int {
	idx, ok := lookup.IndexOf(player)
	if !ok {
		panic(fmt.Sprintf("Prepare: player %s not present in lookup", player))
	}
	return idx
}

// projectScore reads the scoreline relevant to period from a ProspectKey:
// the half-time score for FirstHalf, the derived second-half score for
// SecondHalf, or the full-time score for FullTime.
func projectScore(period Period, key ProspectKey) Score {
	switch period {
	case FirstHalf:
		return key.HTScore
	case SecondHalf:
		return key.H2Score()
	case FullTime:
		return key.FTScore
	default:
		panic(fmt.Sprintf("projectScore: unhandled period %s", period))
	}
}

// Filter is the pure, side-effect-free predicate that decides whether a
// prospect belongs to one (offerType, spec) selection. A mismatch between
// offerType and spec's shape is a programmer error and panics, exactly as
// the original engine's filter dispatch does for an unsupported QuerySpec.
func Filter(offerType OfferType, spec QuerySpec, key ProspectKey) bool {
	switch offerType.kind {
	case offerHeadToHead:
		return filterHeadToHead(offerType, spec, key)
	case offerTotalGoals:
		return filterTotalGoals(offerType, spec, key)
	case offerCorrectScore:
		return filterCorrectScore(offerType, spec, key)
	case offerFirstGoalscorer:
		return filterFirstGoalscorer(spec, key)
	case offerAnytimeGoalscorer:
		return filterAnytimeGoalscorer(spec, key)
	case offerAnytimeAssist:
		return filterAnytimeAssist(spec, key)
	case offerDrawNoBet, offerPlayerShotsOnTarget:
		panic(fmt.Sprintf("Filter: unsupported offer type %s", offerType))
	default:
		panic(fmt.Sprintf("Filter: unhandled offer type %s", offerType))
	}
}

func filterHeadToHead(offerType OfferType, spec QuerySpec, key ProspectKey) bool {
	if spec.kind != qsGeneric {
		panic(fmt.Sprintf("Filter: %v unsupported for %s", spec, offerType))
	}
	score := projectScore(offerType.Period, key)
	switch spec.Outcome.kind {
	case outcomeWin:
		if spec.Outcome.Side == Home {
			return score.Home > score.Away
		}
		return score.Away > score.Home
	case outcomeDraw:
		return score.Home == score.Away
	default:
		panic(fmt.Sprintf("Filter: outcome %v unsupported for %s", spec.Outcome, offerType))
	}
}

func filterTotalGoals(offerType OfferType, spec QuerySpec, key ProspectKey) bool {
	if spec.kind != qsGeneric {
		panic(fmt.Sprintf("Filter: %v unsupported for %s", spec, offerType))
	}
	total := projectScore(offerType.Period, key).Total()
	switch spec.Outcome.kind {
	case outcomeOver:
		return total > int(spec.Outcome.Threshold)
	case outcomeUnder:
		return total < int(spec.Outcome.Threshold)
	default:
		panic(fmt.Sprintf("Filter: outcome %v unsupported for %s", spec.Outcome, offerType))
	}
}

func filterCorrectScore(offerType OfferType, spec QuerySpec, key ProspectKey) bool {
	if spec.kind != qsGeneric || spec.Outcome.kind != outcomeScore {
		panic(fmt.Sprintf("Filter: %v unsupported for %s", spec, offerType))
	}
	return projectScore(offerType.Period, key) == spec.Outcome.Score
}

func filterFirstGoalscorer(spec QuerySpec, key ProspectKey) bool {
	switch spec.kind {
	case qsPlayerLookup:
		return key.FirstScorer == spec.PlayerIndex
	case qsNoFirstGoalscorer:
		return key.FirstScorer == noFirstScorer
	default:
		panic(fmt.Sprintf("Filter: %v unsupported for FirstGoalscorer", spec))
	}
}

func filterAnytimeGoalscorer(spec QuerySpec, key ProspectKey) bool {
	switch spec.kind {
	case qsPlayerLookup:
		return key.TotalGoalsForPlayer(spec.PlayerIndex) > 0
	case qsNoAnytimeGoalscorer:
		for i := range key.Stats {
			if key.TotalGoalsForPlayer(i) > 0 {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("Filter: %v unsupported for AnytimeGoalscorer", spec))
	}
}

func filterAnytimeAssist(spec QuerySpec, key ProspectKey) bool {
	switch spec.kind {
	case qsPlayerLookup:
		return key.TotalAssistsForPlayer(spec.PlayerIndex) > 0
	case qsNoAnytimeAssist:
		for i := range key.Stats {
			if key.TotalAssistsForPlayer(i) > 0 {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("Filter: %v unsupported for AnytimeAssist", spec))
	}
}

// Isolate returns the sum of prospect weights matching (offerType, outcome).
func Isolate(offerType OfferType, outcome Outcome, prospects Prospects, lookup HashLookup[Player]) float64 {
	spec := Prepare(offerType, outcome, lookup)
	var sum float64
	for key, w := range prospects {
		if Filter(offerType, spec, key) {
			sum += w
		}
	}
	return sum
}

// IsolateBatch returns the sum of prospect weights matching at least one of
// the given outcomes for offerType -- the union of matches, for parlay-style
// OR queries.
func IsolateBatch(offerType OfferType, outcomes []Outcome, prospects Prospects, lookup HashLookup[Player]) float64 {
	specs := make([]QuerySpec, len(outcomes))
	for i, o := range outcomes {
		specs[i] = Prepare(offerType, o, lookup)
	}
	var sum float64
	for key, w := range prospects {
		for _, spec := range specs {
			if Filter(offerType, spec, key) {
				sum += w
				break
			}
		}
	}
	return sum
}
