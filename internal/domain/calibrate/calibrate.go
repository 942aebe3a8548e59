// Package calibrate derives 2PL item parameters from target marginal
// probabilities. Calibration runs in two stages per item: a deterministic
// discrimination heuristic, then a difficulty solve that inverts the
// population-marginal endorsement probability.
package calibrate

import (
	"context"
	"fmt"
	"math"

	model "github.com/okian/theta/internal/domain/model"
	quadrature "github.com/okian/theta/internal/domain/quadrature"
	twopl "github.com/okian/theta/internal/domain/twopl"
)

// Discrimination heuristic and difficulty solver constants.
const (
	minDiscrimination   = 0.75
	maxDiscrimination   = 2.25
	discriminationSlope = 0.5

	// Difficulty bracket and bisection depth. The expectation is strictly
	// monotone in b, so 80 halvings of the 20-unit bracket converge past
	// float64 resolution.
	bracketLow          = -10.0
	bracketHigh         = 10.0
	bisectionIterations = 80
)

// Discrimination derives the 2PL slope for an item with target
// probability p: clamp(0.75 + 0.5*|logit(p)|, 0.75, 2.25). Items far from
// 0.5 get a steeper curve; items near 0.5 get the minimum slope. The
// formula is a fixed modeling choice, not an estimate from data, and
// downstream tables are defined relative to it.
func Discrimination(p float64) float64 {
	a := minDiscrimination + discriminationSlope*math.Abs(twopl.Logit(p))
	return math.Min(maxDiscrimination, math.Max(minDiscrimination, a))
}

// ExpectedProbability returns the population-marginal endorsement
// probability E[sigmoid(a*(Theta-b))] for Theta ~ N(0,1).
func ExpectedProbability(discrimination, difficulty float64) float64 {
	return quadrature.ExpectNormal(func(theta float64) float64 {
		return twopl.Prob(discrimination, difficulty, theta)
	})
}

// SolveDifficulty finds the difficulty b such that the population-marginal
// endorsement probability equals p, given discrimination a > 0. The
// expectation is strictly decreasing in b, so bisection over a fixed
// bracket always converges.
func SolveDifficulty(p, a float64) float64 {
	lo, hi := bracketLow, bracketHigh
	for i := 0; i < bisectionIterations; i++ {
		mid := (lo + hi) / 2.0
		if ExpectedProbability(a, mid) > p {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2.0
}

// Calibrate validates the ordered catalog inputs and calibrates each item.
// Probabilities at or beyond the open interval (0,1) have no finite
// difficulty and are rejected before any numeric work.
func Calibrate(ctx context.Context, inputs []model.ItemInput) ([]model.Item, error) {
	if len(inputs) == 0 {
		return nil, ErrNoItems
	}

	items := make([]model.Item, len(inputs))
	for i, in := range inputs {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("calibration canceled: %w", ctx.Err())
		default:
		}

		if in.Probability <= 0 || in.Probability >= 1 {
			return nil, fmt.Errorf("%w: item %q has probability %g", ErrProbabilityRange, in.ID, in.Probability)
		}

		a := Discrimination(in.Probability)
		b := SolveDifficulty(in.Probability, a)
		items[i] = model.Item{
			ID:             in.ID,
			Probability:    in.Probability,
			Discrimination: a,
			Difficulty:     b,
		}
	}
	return items, nil
}
