package soccermarkets

import "testing"

func headToHeadOutcomes() []Outcome {
	return []Outcome{WinOutcome(Home), WinOutcome(Away), DrawOutcome()}
}

func TestValidateOfferAccepts(t *testing.T) {
	offer := Offer{
		OfferType: HeadToHeadOffer(FullTime),
		Outcomes:  HashLookupFrom(headToHeadOutcomes()),
		Market:    Market{Probs: []float64{0.5, 0.3, 0.2}},
	}
	if err := ValidateOffer(offer, headToHeadOutcomes()); err != nil {
		t.Errorf("ValidateOffer rejected a well-formed offer: %v", err)
	}
}

func TestValidateOfferDetectsMissingOutcome(t *testing.T) {
	offer := Offer{
		OfferType: HeadToHeadOffer(FullTime),
		Outcomes:  HashLookupFrom([]Outcome{WinOutcome(Home), WinOutcome(Away)}),
		Market:    Market{Probs: []float64{0.5, 0.5}},
	}
	err := ValidateOffer(offer, headToHeadOutcomes())
	if err == nil {
		t.Fatal("expected an error for a missing outcome")
	}
	ve, ok := err.(*ValidationErrors)
	if !ok {
		t.Fatalf("expected *ValidationErrors, got %T", err)
	}
	found := false
	for _, e := range ve.Errors {
		if _, ok := e.(*MissingOutcomeError); ok {
			found = true
		}
	}
	if !found {
		t.Errorf("missing-outcome error not reported: %v", ve.Errors)
	}
}

func TestValidateOfferDetectsExtraneousOutcome(t *testing.T) {
	offer := Offer{
		OfferType: HeadToHeadOffer(FullTime),
		Outcomes:  HashLookupFrom([]Outcome{WinOutcome(Home), WinOutcome(Away), DrawOutcome(), OverOutcome(2)}),
		Market:    Market{Probs: []float64{0.4, 0.3, 0.2, 0.1}},
	}
	err := ValidateOffer(offer, headToHeadOutcomes())
	if err == nil {
		t.Fatal("expected an error for an extraneous outcome")
	}
}

func TestValidateOfferDetectsWrongBooksum(t *testing.T) {
	offer := Offer{
		OfferType: HeadToHeadOffer(FullTime),
		Outcomes:  HashLookupFrom(headToHeadOutcomes()),
		Market:    Market{Probs: []float64{0.5, 0.3, 0.3}},
	}
	err := ValidateOffer(offer, headToHeadOutcomes())
	if err == nil {
		t.Fatal("expected a wrong-booksum error")
	}
}

func TestValidateOfferDetectsMisalignment(t *testing.T) {
	offer := Offer{
		OfferType: HeadToHeadOffer(FullTime),
		Outcomes:  HashLookupFrom(headToHeadOutcomes()),
		Market:    Market{Probs: []float64{0.5, 0.5}},
	}
	err := ValidateOffer(offer, headToHeadOutcomes())
	if _, ok := err.(*ValidationErrors); !ok {
		t.Fatalf("expected *ValidationErrors, got %T", err)
	}
	if _, ok := err.(*ValidationErrors).Errors[0].(*MisalignedOfferError); !ok {
		t.Errorf("expected a MisalignedOfferError, got %v", err)
	}
}

func TestRequireOffer(t *testing.T) {
	offers := map[OfferType]Offer{HeadToHeadOffer(FullTime): {OfferType: HeadToHeadOffer(FullTime)}}
	if _, err := RequireOffer(offers, HeadToHeadOffer(FullTime)); err != nil {
		t.Errorf("RequireOffer failed on a present offer: %v", err)
	}
	if _, err := RequireOffer(offers, HeadToHeadOffer(FirstHalf)); err == nil {
		t.Error("RequireOffer did not error on a missing offer")
	}
}
