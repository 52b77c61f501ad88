package soccermarkets

import "testing"

func TestUnivariateDescentFindsMinimum(t *testing.T) {
	cfg := UnivariateDescentConfig{
		InitValue:          0,
		InitStep:           0.5,
		MinStep:            1e-8,
		MaxSteps:           200,
		AcceptableResidual: 1e-12,
	}
	outcome := UnivariateDescent(cfg, func(x float64) float64 {
		d := x - 0.37
		return d * d
	})
	if abs(outcome.OptimalValue-0.37) > 1e-3 {
		t.Errorf("UnivariateDescent found %f, want ~0.37", outcome.OptimalValue)
	}
}

func TestUnivariateDescentStopsAtAcceptableResidual(t *testing.T) {
	cfg := UnivariateDescentConfig{
		InitValue:          0.37,
		InitStep:           0.5,
		MinStep:            1e-8,
		MaxSteps:           200,
		AcceptableResidual: 1,
	}
	outcome := UnivariateDescent(cfg, func(x float64) float64 {
		d := x - 0.37
		return d * d
	})
	if !outcome.Converged {
		t.Error("expected Converged=true when starting value already satisfies the residual")
	}
	if outcome.Steps != 0 {
		t.Errorf("Steps = %d, want 0", outcome.Steps)
	}
}

func TestHypergridSearchFindsMinimum(t *testing.T) {
	cfg := HypergridSearchConfig{
		MaxSteps:           8,
		AcceptableResidual: 1e-9,
		Bounds:             [][2]float64{{0, 1}, {0, 1}},
		Resolution:         5,
	}
	outcome := HypergridSearch(cfg, func([]float64) bool { return true }, func(v []float64) float64 {
		dx := v[0] - 0.3
		dy := v[1] - 0.7
		return dx*dx + dy*dy
	})
	if abs(outcome.OptimalValues[0]-0.3) > 0.05 || abs(outcome.OptimalValues[1]-0.7) > 0.05 {
		t.Errorf("HypergridSearch found %v, want ~(0.3, 0.7)", outcome.OptimalValues)
	}
}

func TestHypergridSearchRespectsConstraint(t *testing.T) {
	cfg := HypergridSearchConfig{
		MaxSteps:           4,
		AcceptableResidual: 1e-9,
		Bounds:             [][2]float64{{0, 1}},
		Resolution:         5,
	}
	constraint := func(v []float64) bool { return v[0] >= 0.5 }
	outcome := HypergridSearch(cfg, constraint, func(v []float64) float64 {
		return v[0] * v[0]
	})
	if outcome.OptimalValues[0] < 0.5 {
		t.Errorf("HypergridSearch violated constraint: chose %f", outcome.OptimalValues[0])
	}
}

func TestLinspaceEndpoints(t *testing.T) {
	points := linspace(0, 1, 5)
	if points[0] != 0 || points[len(points)-1] != 1 {
		t.Errorf("linspace endpoints = %v, want first=0 last=1", points)
	}
}
