// Package estimate computes maximum-a-posteriori ability estimates for
// binary response patterns under a standard-normal prior and independent
// 2PL item likelihoods.
package estimate

import (
	"fmt"
	"math"

	model "github.com/okian/theta/internal/domain/model"
	twopl "github.com/okian/theta/internal/domain/twopl"
)

// Newton-Raphson configuration constants.
const (
	maxIterations = 40
	stepTolerance = 1e-8
)

// Result carries one MAP estimate and how much work it took.
type Result struct {
	Theta      float64
	Iterations int
}

// MAP computes the ability value maximizing prior x likelihood via
// Newton-Raphson on the log-posterior, starting at the prior mean.
// An empty response pattern returns theta 0 immediately: the prior mean,
// with no evidence to move it.
//
// The curvature is -1 minus a sum of non-negative terms, so it is always
// strictly negative and every Newton step is well defined. The check below
// guards the invariant anyway; a violation means corrupted item
// parameters, not a recoverable state.
func MAP(answers []bool, items []model.Item) (Result, error) {
	if len(answers) != len(items) {
		return Result{}, fmt.Errorf("%w: %d answers for %d items", ErrPatternMismatch, len(answers), len(items))
	}
	if len(answers) == 0 {
		return Result{}, nil
	}

	theta := 0.0
	iterations := 0
	for i := 0; i < maxIterations; i++ {
		iterations++

		// Standard-normal prior contributes -theta to the gradient and -1
		// to the curvature.
		grad := -theta
		curv := -1.0
		for j, item := range items {
			p := twopl.Prob(item.Discrimination, item.Difficulty, theta)
			y := 0.0
			if answers[j] {
				y = 1.0
			}
			grad += item.Discrimination * (y - p)
			curv -= item.Discrimination * item.Discrimination * p * (1.0 - p)
		}

		if curv >= 0 || math.IsNaN(curv) {
			return Result{}, fmt.Errorf("%w: curvature %g at theta %g", ErrDegenerateCurvature, curv, theta)
		}

		step := grad / curv
		theta -= step
		if math.Abs(step) < stepTolerance {
			break
		}
	}

	return Result{Theta: theta, Iterations: iterations}, nil
}
