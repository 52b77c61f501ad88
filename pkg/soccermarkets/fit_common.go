package soccermarkets

// clamp01 restricts v to the closed unit interval, guarding against a
// descent step overshooting past a probability's valid range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func cloneFloatMap(m map[Player]float64) map[Player]float64 {
	out := make(map[Player]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// applyOtherResidual sets the Other bucket for side to whatever probability
// mass the named players on that side have not claimed, so the side's goal
// (or assist) probabilities stay normalized to at most 1 as each named
// player is fit in turn (SPEC_FULL.md §4.5: "one player at a time, keeping
// the rest of the side normalized").
func applyOtherResidual(m map[Player]float64, side Side) {
	var sum float64
	for p, v := range m {
		if p.Side == side && !p.IsOther() {
			sum += v
		}
	}
	residual := 1 - sum
	if residual < 0 {
		residual = 0
	}
	m[OtherPlayer(side)] = residual
}

// namedPlayersOnSide returns every non-Other player referenced by offer's
// outcomes on the given side, in lookup order for determinism.
func namedPlayersOnSide(offer Offer, side Side) []Player {
	var out []Player
	for _, o := range offer.Outcomes.Items() {
		if o.kind == outcomePlayer && o.Player.Side == side && !o.Player.IsOther() {
			out = append(out, o.Player)
		}
	}
	return out
}

// ratingsForGoalFit builds the PlayerRating slice for a trial Config during
// goal fitting: every player's Assist stays whatever the model currently
// holds (nil before the assist fitter runs), while Goal comes from
// overrides when present, else the model's current value.
func ratingsForGoalFit(model *Model, overrides map[Player]float64) []PlayerRating {
	return ratingsWithOverride(model, overrides, true)
}

// ratingsForAssistFit is ratingsForGoalFit's counterpart for the assist
// attribute.
func ratingsForAssistFit(model *Model, overrides map[Player]float64) []PlayerRating {
	return ratingsWithOverride(model, overrides, false)
}

func ratingsWithOverride(model *Model, overrides map[Player]float64, goalAttr bool) []PlayerRating {
	seen := make(map[Player]bool, len(model.PlayerProbs)+len(overrides))
	ratings := make([]PlayerRating, 0, len(model.PlayerProbs)+len(overrides))

	for p, pp := range model.PlayerProbs {
		probs := *pp
		if v, ok := overrides[p]; ok {
			vv := v
			if goalAttr {
				probs.Goal = &vv
			} else {
				probs.Assist = &vv
			}
		}
		ratings = append(ratings, PlayerRating{Player: p, Probs: probs})
		seen[p] = true
	}
	for p, v := range overrides {
		if seen[p] {
			continue
		}
		vv := v
		var probs PlayerProbs
		if goalAttr {
			probs.Goal = &vv
		} else {
			probs.Assist = &vv
		}
		ratings = append(ratings, PlayerRating{Player: p, Probs: probs})
	}
	return ratings
}

// fitPlayersAttribute runs one univariate descent per player in players
// against target probabilities read from offer, re-normalizing the Other
// residual for side after each player converges so later players fit
// against an up-to-date remainder.
func fitPlayersAttribute(
	players []Player,
	offer Offer,
	offerType OfferType,
	side Side,
	current map[Player]float64,
	adjustment float64,
	searchCfg UnivariateDescentConfig,
	model *Model,
	opts FitOptions,
	cache *CachingContext,
	buildRatings func(*Model, map[Player]float64) []PlayerRating,
) {
	exp := Requirements(offerType)
	for _, p := range players {
		target, ok := offer.Probability(PlayerOutcome(p))
		if !ok {
			continue
		}
		adjTarget := target * adjustment

		cfg := searchCfg
		cfg.InitValue = current[p]

		outcome := UnivariateDescent(cfg, func(g float64) float64 {
			trial := cloneFloatMap(current)
			trial[p] = clamp01(g)
			applyOtherResidual(trial, side)

			c := Config{
				Intervals:   opts.Intervals,
				TeamProbs:   *model.TeamProbs,
				PlayerProbs: buildRatings(model, trial),
				Prune:       opts.Prune,
				Expansions:  exp,
			}
			exploration := cache.Explore(c, FullRange(c))
			modeled := Isolate(offerType, PlayerOutcome(p), exploration.Prospects, exploration.PlayerLookup)

			diff := modeled - adjTarget
			if adjTarget != 0 {
				diff /= adjTarget
			}
			return diff * diff
		})

		current[p] = clamp01(outcome.OptimalValue)
		applyOtherResidual(current, side)
	}
}
