package soccermarkets

import "testing"

func TestRequirementsPerPeriod(t *testing.T) {
	cases := []struct {
		offerType OfferType
		want      Expansions
	}{
		{HeadToHeadOffer(FirstHalf), Expansions{HTScore: true}},
		{HeadToHeadOffer(SecondHalf), Expansions{HTScore: true, FTScore: true}},
		{HeadToHeadOffer(FullTime), Expansions{FTScore: true}},
		{FirstGoalscorerOffer(), Expansions{FirstGoalscorer: true}},
		{AnytimeGoalscorerOffer(), Expansions{PlayerGoalStats: true}},
		{AnytimeAssistOffer(), Expansions{PlayerGoalStats: true, MaxPlayerAssists: 1}},
	}
	for _, c := range cases {
		if got := Requirements(c.offerType); got != c.want {
			t.Errorf("Requirements(%s) = %+v, want %+v", c.offerType, got, c.want)
		}
	}
}

func TestUnionRequirementsCombinesAcrossOffers(t *testing.T) {
	exp := UnionRequirements([]OfferType{HeadToHeadOffer(FullTime), AnytimeAssistOffer()})
	if !exp.FTScore || !exp.PlayerGoalStats || exp.MaxPlayerAssists != 1 {
		t.Errorf("UnionRequirements = %+v, want FTScore+PlayerGoalStats+MaxPlayerAssists=1", exp)
	}
}

func TestFilterHeadToHead(t *testing.T) {
	key := ProspectKey{FTScore: Score{Home: 2, Away: 1}}
	lookup := NewHashLookup[Player](0)
	spec := Prepare(HeadToHeadOffer(FullTime), WinOutcome(Home), lookup)
	if !Filter(HeadToHeadOffer(FullTime), spec, key) {
		t.Error("home win not detected for 2:1 full-time score")
	}
	drawSpec := Prepare(HeadToHeadOffer(FullTime), DrawOutcome(), lookup)
	if Filter(HeadToHeadOffer(FullTime), drawSpec, key) {
		t.Error("draw incorrectly detected for 2:1 full-time score")
	}
}

func TestFilterTotalGoals(t *testing.T) {
	key := ProspectKey{FTScore: Score{Home: 2, Away: 1}}
	lookup := NewHashLookup[Player](0)
	over := Prepare(TotalGoalsOffer(FullTime, 2), OverOutcome(2), lookup)
	if !Filter(TotalGoalsOffer(FullTime, 2), over, key) {
		t.Error("3 total goals should satisfy Over(2)")
	}
	under := Prepare(TotalGoalsOffer(FullTime, 2), UnderOutcome(2), lookup)
	if Filter(TotalGoalsOffer(FullTime, 2), under, key) {
		t.Error("3 total goals should not satisfy Under(2)")
	}
}

func TestFilterCorrectScore(t *testing.T) {
	key := ProspectKey{FTScore: Score{Home: 1, Away: 1}}
	lookup := NewHashLookup[Player](0)
	spec := Prepare(CorrectScoreOffer(FullTime), ScoreOutcome(Score{Home: 1, Away: 1}), lookup)
	if !Filter(CorrectScoreOffer(FullTime), spec, key) {
		t.Error("1:1 scoreline should match ScoreOutcome{1,1}")
	}
}

func TestFilterFirstGoalscorer(t *testing.T) {
	kane := NamedPlayer(Home, "Kane")
	lookup := HashLookupFrom([]Player{kane})
	scoredKey := ProspectKey{FirstScorer: 0}
	noneKey := ProspectKey{FirstScorer: noFirstScorer}

	namedSpec := Prepare(FirstGoalscorerOffer(), PlayerOutcome(kane), lookup)
	if !Filter(FirstGoalscorerOffer(), namedSpec, scoredKey) {
		t.Error("FirstScorer index 0 should match Kane's lookup index")
	}
	if Filter(FirstGoalscorerOffer(), namedSpec, noneKey) {
		t.Error("no-first-scorer key should not match a named player")
	}

	noneSpec := Prepare(FirstGoalscorerOffer(), NoneOutcome(), lookup)
	if !Filter(FirstGoalscorerOffer(), noneSpec, noneKey) {
		t.Error("NoneOutcome should match the no-first-scorer key")
	}
}

func TestFilterAnytimeGoalscorerNone(t *testing.T) {
	lookup := HashLookupFrom([]Player{NamedPlayer(Home, "Kane"), OtherPlayer(Home)})
	key := ProspectKey{}
	spec := Prepare(AnytimeGoalscorerOffer(), NoneOutcome(), lookup)
	if !Filter(AnytimeGoalscorerOffer(), spec, key) {
		t.Error("all-zero stats should satisfy the no-anytime-goalscorer query")
	}
	key.Stats[0].H1.Goals = 1
	if Filter(AnytimeGoalscorerOffer(), spec, key) {
		t.Error("a player with a recorded goal should fail the no-anytime-goalscorer query")
	}
}

func TestIsolateBatchIsUnionOfMatches(t *testing.T) {
	prospects := Prospects{
		{FTScore: Score{Home: 1, Away: 0}}: 0.4,
		{FTScore: Score{Home: 0, Away: 1}}: 0.3,
		{FTScore: Score{Home: 0, Away: 0}}: 0.3,
	}
	lookup := NewHashLookup[Player](0)
	got := IsolateBatch(HeadToHeadOffer(FullTime), []Outcome{WinOutcome(Home), WinOutcome(Away)}, prospects, lookup)
	if abs(got-0.7) > 1e-12 {
		t.Errorf("IsolateBatch(home or away win) = %f, want 0.7", got)
	}
}

func TestPrepareUnsupportedOfferPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Prepare did not panic for an unsupported offer type")
		}
	}()
	Prepare(DrawNoBetOffer(), DrawOutcome(), NewHashLookup[Player](0))
}
