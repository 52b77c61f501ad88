package soccermarkets

// periodEpsilon keeps a fitted (home, away, common) triple strictly inside
// the probability simplex so the residual no-goal mass stays positive.
const periodEpsilon = 1e-9

// periodOfferKinds lists the offer kinds whose outcomes are entirely
// determined by a scoreline projection, i.e. everything the period fitter
// can use as evidence.
var periodOfferKinds = []offerKind{offerHeadToHead, offerTotalGoals, offerCorrectScore}

// fitPeriod recovers TeamProbs.H1Goals and H2Goals jointly from every
// observed HeadToHead/TotalGoals/CorrectScore offer in model.Offers, via a
// hypergrid search over the six free parameters (SPEC_FULL.md §4.5: hypergrid
// over (home, away, common) per half, constrained to home+away+common <=
// 1-epsilon). Fitting both halves in one joint search -- rather than one
// search per half in isolation -- lets a FullTime-only offer set (whose
// projected score mixes both halves) still drive the fit; a half with no
// offers referencing it is left at its previous value.
func fitPeriod(model *Model, opts FitOptions, cache *CachingContext) error {
	offers := scoreShapedOffers(model)
	if len(offers) == 0 {
		return &MissingOfferError{OfferType: HeadToHeadOffer(FullTime)}
	}
	for _, offer := range offers {
		if err := ValidateOffer(offer, expectedOutcomesFor(offer)); err != nil {
			return err
		}
	}

	cfg := opts.PeriodSearch
	cfg.Bounds = [][2]float64{{0, 1}, {0, 1}, {0, 1}, {0, 1}, {0, 1}, {0, 1}}

	base := TeamProbs{}
	if model.TeamProbs != nil {
		base = *model.TeamProbs
	}

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

// scoreShapedOffers returns every offer in model.Offers whose outcomes are a
// pure function of a scoreline projection.
func scoreShapedOffers(model *Model) []Offer {
	var out []Offer
	for ot, offer := range model.Offers {
		for _, k := range periodOfferKinds {
			if ot.kind == k {
				out = append(out, offer)
				break
			}
		}
	}
	return out
}

// scoreOffersResidual sums squared relative errors between tp's modeled
// outcome probabilities and every offer's observed ones.
func scoreOffersResidual(tp TeamProbs, offers []Offer, cache *CachingContext) float64 {
	offerTypes := make([]OfferType, len(offers))
	for i, o := range offers {
		offerTypes[i] = o.OfferType
	}
	exp := UnionRequirements(offerTypes)
	cfg := Config{Intervals: defaultScoreFitIntervals, TeamProbs: tp, Expansions: exp}
	exploration := cache.Explore(cfg, FullRange(cfg))

	var residual float64
	for _, offer := range offers {
		for _, outcome := range offer.Outcomes.Items() {
			observed, ok := offer.Probability(outcome)
			if !ok || observed <= 0 {
				continue
			}
			modeled := Isolate(offer.OfferType, outcome, exploration.Prospects, exploration.PlayerLookup)
			relErr := (modeled - observed) / observed
			residual += relErr * relErr
		}
	}
	return residual
}

// defaultScoreFitIntervals is the slice count used while fitting team-level
// scoring parameters, where no player attribution is tracked and a coarser
// walk is cheap and accurate enough to drive the search.
const defaultScoreFitIntervals = 40
