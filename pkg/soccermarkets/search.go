package soccermarkets

import (
	"log"
	"math"
	"sync"
)

// UnivariateDescentConfig parameterizes a bracketed step-halving descent on
// a scalar residual. Field names mirror the original engine's
// UnivariateDescentConfig exactly (brumby/src/opt/tests.rs in
// original_source) for grounding fidelity.
type UnivariateDescentConfig struct {
	InitValue          float64
	InitStep           float64
	MinStep            float64
	MaxSteps           int
	AcceptableResidual float64
}

// UnivariateDescentOutcome is the result of a UnivariateDescent run.
type UnivariateDescentOutcome struct {
	OptimalValue float64
	Residual     float64
	Steps        int
	Converged    bool
}

// UnivariateDescent starts at cfg.InitValue with step cfg.InitStep,
// reversing direction and halving the step whenever a candidate step
// worsens the residual, and terminating when the step shrinks below
// cfg.MinStep, cfg.MaxSteps is reached, or the residual falls at or below
// cfg.AcceptableResidual.
func UnivariateDescent(cfg UnivariateDescentConfig, objective func(float64) float64) UnivariateDescentOutcome {
	value := cfg.InitValue
	step := cfg.InitStep
	residual := objective(value)
	steps := 0

	for steps < cfg.MaxSteps {
		if residual <= cfg.AcceptableResidual {
			break
		}
		if math.Abs(step) < cfg.MinStep {
			break
		}
		candidate := value + step
		candidateResidual := objective(candidate)
		if candidateResidual < residual {
			value = candidate
			residual = candidateResidual
		} else {
			step = -step / 2
		}
		steps++
	}

	return UnivariateDescentOutcome{
		OptimalValue: value,
		Residual:     residual,
		Steps:        steps,
		Converged:    residual <= cfg.AcceptableResidual,
	}
}

// HypergridSearchConfig parameterizes a regular-grid search over a product
// of closed intervals. Field names mirror the original engine's
// HypergridSearchConfig (brumby/src/opt/tests.rs, brumby/benches/
// cri_hypergrid.rs in original_source). LogInterval, if > 0, reports
// progress via log.Printf every LogInterval rounds, following the
// teacher's solver.go GeneticAlgorithm progress-logging cadence.
type HypergridSearchConfig struct {
	MaxSteps           int
	AcceptableResidual float64
	Bounds             [][2]float64
	Resolution         int
	LogInterval        int
}

// HypergridSearchOutcome is the result of a HypergridSearch run.
type HypergridSearchOutcome struct {
	OptimalValues []float64
	Residual      float64
	Steps         int
	Converged     bool
}

// HypergridSearch samples a regular grid of cfg.Resolution points per
// dimension, evaluates the residual at every grid point that satisfies
// constraint, and recurses by centering a same-resolution grid on the
// current best point with half-sized bounds. Each round's grid-point
// evaluations fan out across goroutines with a sync.WaitGroup barrier,
// generalizing the teacher's GeneticAlgorithm.optimize parallel-fitness-
// evaluation pattern (solver.go) to this search shape. The objective may be
// non-smooth; HypergridSearch never assumes a gradient.
func HypergridSearch(cfg HypergridSearchConfig, constraint func([]float64) bool, objective func([]float64) float64) HypergridSearchOutcome {
	dims := len(cfg.Bounds)
	bounds := make([][2]float64, dims)
	copy(bounds, cfg.Bounds)

	var best []float64
	bestResidual := math.Inf(1)
	steps := 0

	for steps < cfg.MaxSteps {
		points := gridPoints(bounds, cfg.Resolution)
		residuals := make([]float64, len(points))

		var wg sync.WaitGroup
		for i, p := range points {
			if !constraint(p) {
				residuals[i] = math.Inf(1)
				continue
			}
			wg.Add(1)
			go func(i int, p []float64) {
				defer wg.Done()
				residuals[i] = objective(p)
			}(i, p)
		}
		wg.Wait()

		for i, r := range residuals {
			if r < bestResidual {
				bestResidual = r
				best = points[i]
			}
		}
		steps++

		if cfg.LogInterval > 0 && steps%cfg.LogInterval == 0 {
			log.Printf("hypergrid search: round %d, best residual %.10f", steps, bestResidual)
		}

		if bestResidual <= cfg.AcceptableResidual {
			break
		}
		bounds = recenter(cfg.Bounds, bounds, best)
	}

	return HypergridSearchOutcome{
		OptimalValues: best,
		Residual:      bestResidual,
		Steps:         steps,
		Converged:     bestResidual <= cfg.AcceptableResidual,
	}
}

// recenter halves every dimension's width and centers it on best, clamped
// to the original outer bounds.
func recenter(outer, current [][2]float64, best []float64) [][2]float64 {
	next := make([][2]float64, len(current))
	for d := range current {
		halfWidth := (current[d][1] - current[d][0]) / 4
		lo := best[d] - halfWidth
		hi := best[d] + halfWidth
		if lo < outer[d][0] {
			lo = outer[d][0]
		}
		if hi > outer[d][1] {
			hi = outer[d][1]
		}
		next[d] = [2]float64{lo, hi}
	}
	return next
}

// gridPoints enumerates the cartesian product of a `resolution`-point
// linearly-spaced grid along every bound.
func gridPoints(bounds [][2]float64, resolution int) [][]float64 {
	dims := len(bounds)
	axes := make([][]float64, dims)
	for d, b := range bounds {
		axes[d] = linspace(b[0], b[1], resolution)
	}

	total := 1
	for range axes {
		total *= resolution
	}

	points := make([][]float64, total)
	idx := make([]int, dims)
	for i := 0; i < total; i++ {
		p := make([]float64, dims)
		for d := 0; d < dims; d++ {
			p[d] = axes[d][idx[d]]
		}
		points[i] = p
		for d := dims - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < resolution {
				break
			}
			idx[d] = 0
		}
	}
	return points
}

func linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{(lo + hi) / 2}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		out[i] = lo + step*float64(i)
	}
	return out
}
