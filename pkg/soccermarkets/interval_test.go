package soccermarkets

import "testing"

func simpleTeamProbs() TeamProbs {
	half := BivariateProbs{Home: 0.03, Away: 0.02, Common: 0.002}
	return TeamProbs{H1Goals: half, H2Goals: half}
}

func TestExploreConservesMassWithoutPruning(t *testing.T) {
	cfg := Config{
		Intervals: 20,
		TeamProbs: simpleTeamProbs(),
		Prune:     PruneThresholds{MaxTotalGoals: 30, MinProb: 0},
	}
	exploration := Explore(cfg, FullRange(cfg))
	if mass := exploration.SurvivalMass(); abs(mass-1.0) > 1e-9 {
		t.Errorf("SurvivalMass() = %f, want ~1.0 with no pruning", mass)
	}
}

func TestExplorePruneDropsMass(t *testing.T) {
	cfg := Config{
		Intervals: 20,
		TeamProbs: simpleTeamProbs(),
		Prune:     PruneThresholds{MaxTotalGoals: 0, MinProb: 0},
	}
	exploration := Explore(cfg, FullRange(cfg))
	if mass := exploration.SurvivalMass(); mass >= 1.0 {
		t.Errorf("SurvivalMass() = %f, want < 1.0 after pruning all-but-0-goal prospects", mass)
	}
	for key := range exploration.Prospects {
		if key.FTScore.Total() != 0 {
			t.Errorf("pruned prospect with %d total goals survived", key.FTScore.Total())
		}
	}
}

func TestExploreHeadToHeadOutcomesSumToSurvivalMass(t *testing.T) {
	cfg := Config{
		Intervals:  30,
		TeamProbs:  simpleTeamProbs(),
		Prune:      PruneThresholds{MaxTotalGoals: 15, MinProb: 0},
		Expansions: Requirements(HeadToHeadOffer(FullTime)),
	}
	exploration := Explore(cfg, FullRange(cfg))
	offerType := HeadToHeadOffer(FullTime)
	home := Isolate(offerType, WinOutcome(Home), exploration.Prospects, exploration.PlayerLookup)
	away := Isolate(offerType, WinOutcome(Away), exploration.Prospects, exploration.PlayerLookup)
	draw := Isolate(offerType, DrawOutcome(), exploration.Prospects, exploration.PlayerLookup)
	if abs(home+away+draw-exploration.SurvivalMass()) > 1e-9 {
		t.Errorf("Win/Win/Draw sum to %f, want survival mass %f", home+away+draw, exploration.SurvivalMass())
	}
	if home <= away {
		t.Errorf("home win prob %f should exceed away win prob %f given higher home rate", home, away)
	}
}

func TestExploreSecondHalfFreezesHTScore(t *testing.T) {
	tp := TeamProbs{
		H1Goals: BivariateProbs{Home: 0.05, Away: 0.01, Common: 0},
		H2Goals: BivariateProbs{Home: 0.05, Away: 0.01, Common: 0},
	}
	cfg := Config{
		Intervals:  20,
		TeamProbs:  tp,
		Prune:      PruneThresholds{MaxTotalGoals: 30, MinProb: 0},
		Expansions: Expansions{HTScore: true, FTScore: true},
	}
	exploration := Explore(cfg, FullRange(cfg))
	for key := range exploration.Prospects {
		if key.HTScore.Total() > key.FTScore.Total() {
			t.Errorf("HTScore %v exceeds FTScore %v", key.HTScore, key.FTScore)
		}
	}
}

func TestExplorePlayerGoalAttribution(t *testing.T) {
	kane := NamedPlayer(Home, "Kane")
	goal := 0.6
	ratings := []PlayerRating{
		{Player: kane, Probs: PlayerProbs{Goal: &goal}},
		{Player: OtherPlayer(Home), Probs: PlayerProbs{Goal: floatPtr(0.4)}},
		{Player: OtherPlayer(Away), Probs: PlayerProbs{Goal: floatPtr(1.0)}},
	}
	cfg := Config{
		Intervals:   20,
		TeamProbs:   simpleTeamProbs(),
		PlayerProbs: ratings,
		Prune:       PruneThresholds{MaxTotalGoals: 15, MinProb: 0},
		Expansions:  Requirements(AnytimeGoalscorerOffer()),
	}
	exploration := Explore(cfg, FullRange(cfg))
	offerType := AnytimeGoalscorerOffer()
	scored := Isolate(offerType, PlayerOutcome(kane), exploration.Prospects, exploration.PlayerLookup)
	if scored <= 0 || scored >= 1 {
		t.Errorf("Isolate(Kane anytime) = %f, want a value strictly between 0 and 1", scored)
	}
	none := Isolate(offerType, NoneOutcome(), exploration.Prospects, exploration.PlayerLookup)
	if scored+none > exploration.SurvivalMass()+1e-9 {
		t.Errorf("scored+none = %f exceeds survival mass %f", scored+none, exploration.SurvivalMass())
	}
}

func TestExpandAssistCollisionCreditsOther(t *testing.T) {
	kane := NamedPlayer(Home, "Kane")
	goal := 1.0
	assist := 1.0
	ratings := []PlayerRating{
		{Player: kane, Probs: PlayerProbs{Goal: &goal, Assist: &assist}},
		{Player: OtherPlayer(Home), Probs: PlayerProbs{Goal: floatPtr(0), Assist: floatPtr(0)}},
		{Player: OtherPlayer(Away), Probs: PlayerProbs{Goal: floatPtr(1.0)}},
	}
	tp := TeamProbs{
		H1Goals: BivariateProbs{Home: 0.05, Away: 0, Common: 0},
		H2Goals: BivariateProbs{Home: 0.05, Away: 0, Common: 0},
		Assists: UnivariateProbs{Home: 1.0},
	}
	cfg := Config{
		Intervals:   20,
		TeamProbs:   tp,
		PlayerProbs: ratings,
		Prune:       PruneThresholds{MaxTotalGoals: 15, MinProb: 0},
		Expansions:  Requirements(AnytimeAssistOffer()).Union(Requirements(AnytimeGoalscorerOffer())),
	}
	exploration := Explore(cfg, FullRange(cfg))
	assisted := Isolate(AnytimeAssistOffer(), PlayerOutcome(kane), exploration.Prospects, exploration.PlayerLookup)
	if assisted != 0 {
		t.Errorf("Kane credited with assisting his own goal: %f", assisted)
	}
	otherAssisted := Isolate(AnytimeAssistOffer(), PlayerOutcome(OtherPlayer(Home)), exploration.Prospects, exploration.PlayerLookup)
	if otherAssisted <= 0 {
		t.Errorf("assist collision was not re-credited to Other: %f", otherAssisted)
	}
}

func floatPtr(v float64) *float64 { return &v }
