package soccermarkets

import "fmt"

// BooksumTolerance is the default acceptable deviation of an offer's
// booksum from 1.0.
const BooksumTolerance = 1e-6

// MissingOfferError reports that Model.Offers has no entry for an offer
// type a fitter needed.
type MissingOfferError struct {
	OfferType OfferType
}

func (e *MissingOfferError) Error() string {
	return fmt.Sprintf("missing offer: %s", e.OfferType)
}

// MissingOutcomeError reports that an offer's outcome set is missing an
// outcome the fitter expected.
type MissingOutcomeError struct {
	OfferType OfferType
	Outcome   Outcome
}

func (e *MissingOutcomeError) Error() string {
	return fmt.Sprintf("missing outcome: %s %s", e.OfferType, e.Outcome)
}

// ExtraneousOutcomeError reports that an offer's outcome set contains an
// outcome that does not belong to that offer type.
type ExtraneousOutcomeError struct {
	OfferType OfferType
	Outcome   Outcome
}

func (e *ExtraneousOutcomeError) Error() string {
	return fmt.Sprintf("extraneous outcome: %s %s", e.OfferType, e.Outcome)
}

// MisalignedOfferError reports that an offer's Outcomes and Market.Probs
// have different lengths.
type MisalignedOfferError struct {
	OfferType      OfferType
	NumOutcomes    int
	NumProbs       int
}

func (e *MisalignedOfferError) Error() string {
	return fmt.Sprintf("misaligned offer: %d outcomes, %d probabilities mapped for %s",
		e.NumOutcomes, e.NumProbs, e.OfferType)
}

// WrongBooksumError reports that an offer's booksum falls outside the
// acceptable range.
type WrongBooksumError struct {
	OfferType OfferType
	Expected  float64
	Tolerance float64
	Actual    float64
}

func (e *WrongBooksumError) Error() string {
	return fmt.Sprintf("wrong booksum for %s: expected %.6f ± %.6f, got %.6f",
		e.OfferType, e.Expected, e.Tolerance, e.Actual)
}

// ValidationErrors aggregates one or more validation failures, following
// jhw-outrights-mle/pkg/outrights-mle/validation.go's ValidationErrors
// aggregate-and-join idiom so a fitter can report every shape problem in one
// pass instead of failing at the first.
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:", len(e.Errors))
	for _, err := range e.Errors {
		msg += "\n  - " + err.Error()
	}
	return msg
}

// Add appends err to the aggregate if err is non-nil.
func (e *ValidationErrors) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors reports whether any error has been recorded.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// AsError returns e if it holds any errors, otherwise nil -- so callers can
// write `return nil, errs.AsError()`.
func (e *ValidationErrors) AsError() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// ValidateOffer checks that offer.Outcomes exactly matches expectedOutcomes
// (no missing, no extraneous), that Outcomes and Market.Probs are aligned,
// and that the booksum falls within tolerance of 1.0.
func ValidateOffer(offer Offer, expectedOutcomes []Outcome) error {
	errs := &ValidationErrors{}

	if offer.Outcomes.Len() != len(offer.Market.Probs) {
		errs.Add(&MisalignedOfferError{
			OfferType:   offer.OfferType,
			NumOutcomes: offer.Outcomes.Len(),
			NumProbs:    len(offer.Market.Probs),
		})
		return errs.AsError()
	}

	expected := make(map[Outcome]bool, len(expectedOutcomes))
	for _, o := range expectedOutcomes {
		expected[o] = true
	}
	for _, o := range offer.Outcomes.Items() {
		if !expected[o] {
			errs.Add(&ExtraneousOutcomeError{OfferType: offer.OfferType, Outcome: o})
		}
	}
	for o := range expected {
		if _, ok := offer.Outcomes.IndexOf(o); !ok {
			errs.Add(&MissingOutcomeError{OfferType: offer.OfferType, Outcome: o})
		}
	}

	booksum := offer.Booksum()
	if diff := booksum - 1.0; diff > BooksumTolerance || diff < -BooksumTolerance {
		errs.Add(&WrongBooksumError{
			OfferType: offer.OfferType,
			Expected:  1.0,
			Tolerance: BooksumTolerance,
			Actual:    booksum,
		})
	}

	return errs.AsError()
}

// expectedOutcomesFor returns the outcome set ValidateOffer should check
// offer against. HeadToHead and TotalGoals have a fixed shape known from
// offer.OfferType alone; CorrectScore and the player-attribution offers are
// data-driven (whichever scorelines or players the caller priced), so they
// validate alignment and booksum against the offer's own declared outcomes
// rather than a fixed universe -- there is no fixed roster to compare
// against ahead of time.
func expectedOutcomesFor(offer Offer) []Outcome {
	switch offer.OfferType.kind {
	case offerHeadToHead:
		return []Outcome{WinOutcome(Home), WinOutcome(Away), DrawOutcome()}
	case offerTotalGoals:
		return []Outcome{OverOutcome(offer.OfferType.Threshold), UnderOutcome(offer.OfferType.Threshold)}
	default:
		return offer.Outcomes.Items()
	}
}

// RequireOffer returns the offer of the given type from offers, or a
// MissingOfferError.
func RequireOffer(offers map[OfferType]Offer, offerType OfferType) (Offer, error) {
	offer, ok := offers[offerType]
	if !ok {
		return Offer{}, &MissingOfferError{OfferType: offerType}
	}
	return offer, nil
}
