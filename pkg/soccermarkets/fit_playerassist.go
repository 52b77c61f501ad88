package soccermarkets

// fitPlayerAssist first recovers the side-level assist rate -- the
// conditional probability that a goal for a side is credited with an
// assist -- from the ratio of that side's AnytimeAssist booksum to its
// AnytimeGoalscorer booksum, then fits each named player's share of that
// side's assist mass against AnytimeAssist (SPEC_FULL.md §4.5). A no-op if
// no AnytimeAssist offer was supplied. Requires the goal fitter to have
// already run, since the per-player assist attribution competes with
// already-fitted goalscorers for the same goal event.
func fitPlayerAssist(model *Model, opts FitOptions, cache *CachingContext) error {
	assistOffer, hasAssist := model.Offers[AnytimeAssistOffer()]
	if !hasAssist {
		return nil
	}
	goalOffer, hasGoal := model.Offers[AnytimeGoalscorerOffer()]
	if !hasGoal {
		return &MissingOfferError{OfferType: AnytimeGoalscorerOffer()}
	}
	if model.TeamProbs == nil {
		panic("fitPlayerAssist: requires team probabilities fitted by the period fitter first")
	}
	if err := ValidateOffer(assistOffer, expectedOutcomesFor(assistOffer)); err != nil {
		return err
	}
	if err := ValidateOffer(goalOffer, expectedOutcomesFor(goalOffer)); err != nil {
		return err
	}

	homeRate := sideAssistRate(assistOffer, goalOffer, Home)
	awayRate := sideAssistRate(assistOffer, goalOffer, Away)
	model.TeamProbs.Assists = UnivariateProbs{Home: homeRate, Away: awayRate}

	current := make(map[Player]float64)
	for p, pp := range model.PlayerProbs {
		if pp.Assist != nil {
			current[p] = *pp.Assist
		}
	}

	for _, side := range []Side{Home, Away} {
		players := namedPlayersOnSide(assistOffer, side)
		fitPlayersAttribute(players, assistOffer, AnytimeAssistOffer(), side, current, 1.0,
			opts.PlayerAssistSearch, model, opts, cache, ratingsForAssistFit)
	}

	for p, v := range current {
		if p.IsOther() {
			continue
		}
		vv := v
		model.getOrCreatePlayer(p).Assist = &vv
	}
	return nil
}

// sideAssistRate divides side's observed assist booksum by its observed
// goal booksum, each restricted to that side's named-player mass (None and
// the opposite side excluded), mirroring the original engine's
// home_assister_booksum / home_goalscorer_booksum ratio.
func sideAssistRate(assistOffer, goalOffer Offer, side Side) float64 {
	goalBooksum := sideBooksum(goalOffer, side)
	if goalBooksum <= 0 {
		return 0
	}
	return clamp01(sideBooksum(assistOffer, side) / goalBooksum)
}

// sideBooksum sums offer's observed probability mass over named players on
// the given side (excluding None and the Other bucket).
func sideBooksum(offer Offer, side Side) float64 {
	var sum float64
	for _, o := range offer.Outcomes.Items() {
		if o.kind != outcomePlayer || o.Player.Side != side || o.Player.IsOther() {
			continue
		}
		if p, ok := offer.Probability(o); ok {
			sum += p
		}
	}
	return sum
}
