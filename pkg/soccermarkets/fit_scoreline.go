package soccermarkets

// scoreLineSearchRadius bounds how far the refinement pass may move a
// parameter away from the period fitter's estimate, keeping this a
// refinement rather than a re-fit from scratch.
const scoreLineSearchRadius = 0.05

// fitScoreLine refines TeamProbs against observed CorrectScore offers, which
// the period fitter does not consume on its own (SPEC_FULL.md §4.5): the
// period fitter recovers the marginal win/total-goals shape, while
// CorrectScore pins down the exact joint scoreline distribution. A narrow,
// seeded hypergrid search around the period fitter's result is a no-op when
// no CorrectScore offer was supplied.
func fitScoreLine(model *Model, opts FitOptions, cache *CachingContext) error {
	var offers []Offer
	for ot, offer := range model.Offers {
		if ot.kind == offerCorrectScore {
			offers = append(offers, offer)
		}
	}
	if len(offers) == 0 {
		return nil
	}
	if model.TeamProbs == nil {
		panic("fitScoreLine: requires team probabilities fitted by the period fitter first")
	}
	for _, offer := range offers {
		if err := ValidateOffer(offer, expectedOutcomesFor(offer)); err != nil {
			return err
		}
	}

	base := *model.TeamProbs
	seed := []float64{
		base.H1Goals.Home, base.H1Goals.Away, base.H1Goals.Common,
		base.H2Goals.Home, base.H2Goals.Away, base.H2Goals.Common,
	}

	cfg := opts.ScoreLineSearch
	cfg.Bounds = seededBounds(seed, scoreLineSearchRadius)

	constraint := func(v []float64) bool {
		return v[0]+v[1]+v[2] <= 1-periodEpsilon && v[3]+v[4]+v[5] <= 1-periodEpsilon
	}
	objective := func(v []float64) float64 {
		tp := base
		tp.H1Goals = BivariateProbs{Home: v[0], Away: v[1], Common: v[2]}
		tp.H2Goals = BivariateProbs{Home: v[3], Away: v[4], Common: v[5]}
		return scoreOffersResidual(tp, offers, cache)
	}

	outcome := HypergridSearch(cfg, constraint, objective)

	fitted := base
	fitted.H1Goals = BivariateProbs{Home: outcome.OptimalValues[0], Away: outcome.OptimalValues[1], Common: outcome.OptimalValues[2]}
	fitted.H2Goals = BivariateProbs{Home: outcome.OptimalValues[3], Away: outcome.OptimalValues[4], Common: outcome.OptimalValues[5]}
	model.TeamProbs = &fitted
	return nil
}

// seededBounds clamps a radius-wide window around each seed value to [0, 1].
func seededBounds(seed []float64, radius float64) [][2]float64 {
	out := make([][2]float64, len(seed))
	for i, v := range seed {
		lo, hi := v-radius, v+radius
		if lo < 0 {
			lo = 0
		}
		if hi > 1 {
			hi = 1
		}
		out[i] = [2]float64{lo, hi}
	}
	return out
}
