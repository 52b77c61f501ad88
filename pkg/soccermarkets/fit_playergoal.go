package soccermarkets

// fitPlayerGoal fits each named player's per-goal scoring probability
// against FirstGoalscorer, then against AnytimeGoalscorer for any player
// priced there but not in FirstGoalscorer, adjusted by
// first_booksum/anytime_booksum to account for the two markets' differing
// inclusiveness (SPEC_FULL.md §4.5; original engine: fit_first_goalscorer /
// fit_anytime_goalscorer_all in original_source). Requires the period fitter
// to have already set model.TeamProbs.
func fitPlayerGoal(model *Model, opts FitOptions, cache *CachingContext) error {
	firstOffer, hasFirst := model.Offers[FirstGoalscorerOffer()]
	anytimeOffer, hasAnytime := model.Offers[AnytimeGoalscorerOffer()]
	if !hasFirst && !hasAnytime {
		return nil
	}
	if model.TeamProbs == nil {
		panic("fitPlayerGoal: requires team probabilities fitted by the period fitter first")
	}
	if hasFirst {
		if err := ValidateOffer(firstOffer, expectedOutcomesFor(firstOffer)); err != nil {
			return err
		}
	}
	if hasAnytime {
		if err := ValidateOffer(anytimeOffer, expectedOutcomesFor(anytimeOffer)); err != nil {
			return err
		}
	}

	current := make(map[Player]float64)
	for p, pp := range model.PlayerProbs {
		if pp.Goal != nil {
			current[p] = *pp.Goal
		}
	}

	if hasFirst {
		for _, side := range []Side{Home, Away} {
			players := namedPlayersOnSide(firstOffer, side)
			fitPlayersAttribute(players, firstOffer, FirstGoalscorerOffer(), side, current, 1.0,
				opts.PlayerGoalSearch, model, opts, cache, ratingsForGoalFit)
		}
	}

	if hasAnytime {
		adjustment := 1.0
		if hasFirst {
			if anytimeBooksum := anytimeOffer.Booksum(); anytimeBooksum > 0 {
				adjustment = firstOffer.Booksum() / anytimeBooksum
			}
		}
		for _, side := range []Side{Home, Away} {
			players := anytimeOnlyPlayers(anytimeOffer, firstOffer, hasFirst, side)
			fitPlayersAttribute(players, anytimeOffer, AnytimeGoalscorerOffer(), side, current, adjustment,
				opts.PlayerGoalSearch, model, opts, cache, ratingsForGoalFit)
		}
	}

	for p, v := range current {
		if p.IsOther() {
			continue
		}
		vv := v
		model.getOrCreatePlayer(p).Goal = &vv
	}
	return nil
}

// anytimeOnlyPlayers returns the named AnytimeGoalscorer players on side
// that are not already priced in FirstGoalscorer, since those were already
// fit directly against the sharper first-goalscorer signal.
func anytimeOnlyPlayers(anytimeOffer, firstOffer Offer, hasFirst bool, side Side) []Player {
	var out []Player
	for _, p := range namedPlayersOnSide(anytimeOffer, side) {
		if hasFirst {
			if _, ok := firstOffer.Outcomes.IndexOf(PlayerOutcome(p)); ok {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}
