package soccermarkets

import "testing"

func TestNewModelSetOfferAndGetOrCreatePlayer(t *testing.T) {
	model := NewModel()
	offer := Offer{OfferType: HeadToHeadOffer(FullTime), Market: Market{Probs: []float64{0.5, 0.3, 0.2}}}
	model.SetOffer(offer)
	if got, ok := model.Offers[HeadToHeadOffer(FullTime)]; !ok || got.Market.Probs[0] != 0.5 {
		t.Errorf("SetOffer did not record the offer correctly: %+v", got)
	}

	kane := NamedPlayer(Home, "Kane")
	pp := model.getOrCreatePlayer(kane)
	if pp.Goal != nil {
		t.Error("newly created PlayerProbs should have a nil Goal")
	}
	goal := 0.4
	pp.Goal = &goal
	if model.getOrCreatePlayer(kane).Goal != &goal {
		t.Error("getOrCreatePlayer did not return the same entry on a second call")
	}
}

func TestBuildConfigOrdersPlayersDeterministically(t *testing.T) {
	model := NewModel()
	names := []string{"Zidane", "Kane", "Ali"}
	for _, n := range names {
		model.getOrCreatePlayer(NamedPlayer(Home, n))
	}
	model.getOrCreatePlayer(OtherPlayer(Home))
	model.getOrCreatePlayer(NamedPlayer(Away, "Messi"))
	model.getOrCreatePlayer(OtherPlayer(Away))

	cfg := model.BuildConfig(90, PruneThresholds{MaxTotalGoals: 15, MinProb: 1e-6}, Expansions{})

	var order []string
	for _, r := range cfg.PlayerProbs {
		order = append(order, r.Player.String())
	}
	for i := 1; i < len(cfg.PlayerProbs); i++ {
		if ratingLess(cfg.PlayerProbs[i], cfg.PlayerProbs[i-1]) {
			t.Fatalf("BuildConfig player order not sorted: %v", order)
		}
	}
	last := cfg.PlayerProbs[len(cfg.PlayerProbs)-1]
	if !last.Player.IsOther() {
		t.Errorf("Other bucket should sort last within its side, got order %v", order)
	}
}

func TestPriceRequiresFittedTeamProbs(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Price did not panic with an unfitted model")
		}
	}()
	model := NewModel()
	Price(model, []OfferType{HeadToHeadOffer(FullTime)}, DefaultFitOptions(), NewCachingContext())
}

func TestFitAndPriceEndToEnd(t *testing.T) {
	model := NewModel()
	model.SetOffer(Offer{
		OfferType: HeadToHeadOffer(FullTime),
		Outcomes:  HashLookupFrom(headToHeadOutcomes()),
		Market:    Market{Probs: []float64{0.45, 0.3, 0.25}},
	})

	opts := DefaultFitOptions()
	opts.Intervals = 20
	opts.PeriodSearch.MaxSteps = 4
	opts.PeriodSearch.Resolution = 4

	priced, stats, err := FitAndPrice(model, []OfferType{HeadToHeadOffer(FullTime)}, &opts)
	if err != nil {
		t.Fatalf("FitAndPrice failed: %v", err)
	}
	if stats.Misses == 0 {
		t.Error("expected at least one cache miss")
	}
	outcomes := priced[HeadToHeadOffer(FullTime)]
	var sum float64
	for _, p := range outcomes {
		sum += p
	}
	if abs(sum-1.0) > 0.05 {
		t.Errorf("priced HeadToHead outcomes sum to %f, want ~1.0", sum)
	}
	if model.TeamProbs == nil {
		t.Error("Fit did not populate model.TeamProbs")
	}
}
