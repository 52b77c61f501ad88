package soccermarkets

// FitAndPrice is the single-call convenience entrypoint a CLI or service
// handler reaches for first: apply DefaultFitOptions (or the caller's
// override), run Fit over whatever offers have already been recorded on
// model, then Price the requested offer types against the fitted model.
// Mirrors the teacher's api.go Simulate/ProcessSimulation split -- one
// defaults-and-orchestrate wrapper around the lower-level pipeline stages
// (Fit, Price) that remain independently callable for finer control.
func FitAndPrice(model *Model, priceTypes []OfferType, opts *FitOptions) (map[OfferType]map[Outcome]float64, CacheStats, error) {
	resolved := DefaultFitOptions()
	if opts != nil {
		resolved = *opts
	}

	cache := NewCachingContext()
	if err := Fit(model, resolved, cache); err != nil {
		return nil, cache.Stats, err
	}

	priced, err := Price(model, priceTypes, resolved, cache)
	if err != nil {
		return nil, cache.Stats, err
	}
	return priced, cache.Stats, nil
}
