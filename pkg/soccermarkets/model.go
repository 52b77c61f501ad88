package soccermarkets

import "log"

// FitOptions bundles every tunable the fitters and the search primitives
// they drive need. Exposed as one struct so cmd/fit can build it from
// --key=value CLI flags or a JSON request, following the teacher's
// SimulationRequest convention of collecting solver tunables on one type.
type FitOptions struct {
	Intervals          uint8
	Prune              PruneThresholds
	PeriodSearch       HypergridSearchConfig
	PlayerGoalSearch   UnivariateDescentConfig
	PlayerAssistSearch UnivariateDescentConfig
	ScoreLineSearch    HypergridSearchConfig
}

// DefaultFitOptions returns the numerical tolerances named in SPEC_FULL.md
// §6: min_prob 1e-6, fit residuals from 1e-6 to 1e-12 depending on fitter.
func DefaultFitOptions() FitOptions {
	return FitOptions{
		Intervals: 90,
		Prune:     PruneThresholds{MaxTotalGoals: 15, MinProb: 1e-6},
		PeriodSearch: HypergridSearchConfig{
			MaxSteps:           12,
			AcceptableResidual: 1e-9,
			Bounds:             [][2]float64{{0, 1}, {0, 1}, {0, 1}},
			Resolution:         6,
			LogInterval:        4,
		},
		PlayerGoalSearch: UnivariateDescentConfig{
			InitValue:          0.1,
			InitStep:           0.05,
			MinStep:            1e-6,
			MaxSteps:           60,
			AcceptableResidual: 1e-9,
		},
		PlayerAssistSearch: UnivariateDescentConfig{
			InitValue:          0.1,
			InitStep:           0.05,
			MinStep:            1e-6,
			MaxSteps:           60,
			AcceptableResidual: 1e-9,
		},
		ScoreLineSearch: HypergridSearchConfig{
			MaxSteps:           6,
			AcceptableResidual: 1e-10,
			Bounds:             [][2]float64{{0, 1}, {0, 1}, {0, 1}},
			Resolution:         4,
		},
	}
}

// Model holds the primary parameters under fit (or already fitted) plus the
// observed offers that drive and validate fitting, following the original
// engine's Model (model.rs in original_source: goal_probs, assist_probs,
// player_probs, offers) restated with Go-native maps.
type Model struct {
	TeamProbs   *TeamProbs
	PlayerProbs map[Player]*PlayerProbs
	Offers      map[OfferType]Offer
}

// NewModel returns an empty Model ready to receive offers.
func NewModel() *Model {
	return &Model{PlayerProbs: make(map[Player]*PlayerProbs)}
}

// SetOffer records an observed offer.
func (m *Model) SetOffer(offer Offer) {
	if m.Offers == nil {
		m.Offers = make(map[OfferType]Offer)
	}
	m.Offers[offer.OfferType] = offer
}

// getOrCreatePlayer returns the mutable PlayerProbs for p, creating a zero
// entry on first reference.
func (m *Model) getOrCreatePlayer(p Player) *PlayerProbs {
	if pp, ok := m.PlayerProbs[p]; ok {
		return pp
	}
	pp := &PlayerProbs{}
	m.PlayerProbs[p] = pp
	return pp
}

// BuildConfig assembles a Config from the model's currently-fitted
// parameters plus the caller's intervals/prune/expansions choice. Missing
// TeamProbs halves are left zeroed (meaning "no goals expected") rather
// than causing an error, since an in-progress fit legitimately has one half
// fitted and the other not yet.
func (m *Model) BuildConfig(intervals uint8, prune PruneThresholds, exp Expansions) Config {
	var tp TeamProbs
	if m.TeamProbs != nil {
		tp = *m.TeamProbs
	}
	ratings := make([]PlayerRating, 0, len(m.PlayerProbs))
	for p, pp := range m.PlayerProbs {
		ratings = append(ratings, PlayerRating{Player: p, Probs: *pp})
	}
	sortPlayerRatings(ratings)
	return Config{
		Intervals:   intervals,
		TeamProbs:   tp,
		PlayerProbs: ratings,
		Prune:       prune,
		Expansions:  exp,
	}
}

// sortPlayerRatings imposes a stable, deterministic order (side, then name,
// Other last per side) on the otherwise map-derived ratings slice, since
// §5 requires fixed player-lookup order for reproducible floating-point
// results across runs.
func sortPlayerRatings(ratings []PlayerRating) {
	for i := 1; i < len(ratings); i++ {
		for j := i; j > 0 && ratingLess(ratings[j], ratings[j-1]); j-- {
			ratings[j], ratings[j-1] = ratings[j-1], ratings[j]
		}
	}
}

func ratingLess(a, b PlayerRating) bool {
	if a.Player.Side != b.Player.Side {
		return a.Player.Side < b.Player.Side
	}
	if a.Player.IsOther() != b.Player.IsOther() {
		return !a.Player.IsOther()
	}
	return a.Player.Name < b.Player.Name
}

// Fit drives every fitter against model in the required order -- period,
// player-goal, player-assist, score-line -- writing fitted parameters into
// model as it goes. Reversing the order produces underdetermined
// intermediate objectives (see SPEC_FULL.md Design Notes).
func Fit(model *Model, opts FitOptions, cache *CachingContext) error {
	if err := fitPeriod(model, opts, cache); err != nil {
		return err
	}
	if err := fitPlayerGoal(model, opts, cache); err != nil {
		return err
	}
	if err := fitPlayerAssist(model, opts, cache); err != nil {
		return err
	}
	if err := fitScoreLine(model, opts, cache); err != nil {
		return err
	}
	log.Printf("fit complete: cache stats %+v", cache.Stats)
	return nil
}

// Price computes, for every requested OfferType, the modeled probability of
// each of its outcomes.
func Price(model *Model, offerTypes []OfferType, opts FitOptions, cache *CachingContext) (map[OfferType]map[Outcome]float64, error) {
	if model.TeamProbs == nil {
		panic("Price: model has no fitted team probabilities")
	}
	exp := UnionRequirements(offerTypes)
	cfg := model.BuildConfig(opts.Intervals, opts.Prune, exp)
	exploration := cache.Explore(cfg, FullRange(cfg))

	result := make(map[OfferType]map[Outcome]float64, len(offerTypes))
	for _, ot := range offerTypes {
		outcomes, err := outcomesFor(model, ot, exploration.PlayerLookup)
		if err != nil {
			return nil, err
		}
		priced := make(map[Outcome]float64, len(outcomes))
		for _, o := range outcomes {
			priced[o] = Isolate(ot, o, exploration.Prospects, exploration.PlayerLookup)
		}
		result[ot] = priced
	}
	return result, nil
}

// outcomesFor returns the full outcome set to price for an offer type: the
// observed offer's own outcomes when one was supplied (so pricing mirrors
// exactly what was quoted), otherwise the statically-enumerable set for
// score-shaped offers.
func outcomesFor(model *Model, offerType OfferType, lookup HashLookup[Player]) ([]Outcome, error) {
	if offer, ok := model.Offers[offerType]; ok {
		return offer.Outcomes.Items(), nil
	}
	switch offerType.kind {
	case offerHeadToHead:
		return []Outcome{WinOutcome(Home), WinOutcome(Away), DrawOutcome()}, nil
	default:
		return nil, &MissingOfferError{OfferType: offerType}
	}
}
