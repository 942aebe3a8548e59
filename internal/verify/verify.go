// Package verify checks a persisted calibration artifact for internal
// consistency: array shape, provenance, parameter reproducibility and
// quantile table sanity.
package verify

import (
	"fmt"
	"math"

	calibrate "github.com/okian/theta/internal/domain/calibrate"
	model "github.com/okian/theta/internal/domain/model"
)

// Tolerances for recomputation checks. The difficulty round trip is looser
// than the serialization precision because stored parameters carry only six
// decimals.
const (
	discriminationTolerance = 1e-6
	roundTripTolerance      = 5e-4
)

// Failure describes one failed artifact check.
type Failure struct {
	Check  string
	Detail string
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: %s", f.Check, f.Detail)
}

// Artifact runs every check against the artifact and returns all failures.
// An empty slice means the artifact is consistent.
func Artifact(a model.Artifact) []Failure {
	var failures []Failure
	collect := func(check string, err error) {
		if err != nil {
			failures = append(failures, Failure{Check: check, Detail: err.Error()})
		}
	}

	collect("shape", Shape(a))
	collect("provenance", Provenance(a))
	collect("calibration", Calibration(a))
	collect("quantiles", Quantiles(a))
	return failures
}

// Shape verifies that all per-item arrays have matching lengths.
func Shape(a model.Artifact) error {
	n := len(a.QuestionIDs)
	if n == 0 {
		return fmt.Errorf("artifact has no items")
	}
	if len(a.Probabilities) != n {
		return fmt.Errorf("probabilities length %d does not match %d items", len(a.Probabilities), n)
	}
	if len(a.Discriminations) != n {
		return fmt.Errorf("discriminations length %d does not match %d items", len(a.Discriminations), n)
	}
	if len(a.Difficulties) != n {
		return fmt.Errorf("difficulties length %d does not match %d items", len(a.Difficulties), n)
	}
	return nil
}

// Provenance verifies the reproducibility metadata is present and sane.
func Provenance(a model.Artifact) error {
	if a.Version == "" {
		return fmt.Errorf("missing version tag")
	}
	if a.GeneratedAt == "" {
		return fmt.Errorf("missing generation date")
	}
	if a.PopulationSize <= 0 {
		return fmt.Errorf("population size %d is not positive", a.PopulationSize)
	}
	if a.QuantileStep <= 0 || a.QuantileStep > 100 {
		return fmt.Errorf("quantile step %g outside (0, 100]", a.QuantileStep)
	}
	return nil
}

// Calibration recomputes each item's parameters from its stored probability
// and compares against the persisted values. Discriminations must match the
// heuristic exactly; difficulties must reproduce the target probability
// through the population-marginal expectation.
func Calibration(a model.Artifact) error {
	if err := Shape(a); err != nil {
		return err
	}
	for i, id := range a.QuestionIDs {
		p := a.Probabilities[i]
		if p <= 0 || p >= 1 {
			return fmt.Errorf("item %q: probability %g outside (0, 1)", id, p)
		}

		want := calibrate.Discrimination(p)
		if math.Abs(a.Discriminations[i]-want) > discriminationTolerance {
			return fmt.Errorf("item %q: discrimination %g, heuristic gives %g", id, a.Discriminations[i], want)
		}

		back := calibrate.ExpectedProbability(a.Discriminations[i], a.Difficulties[i])
		if math.Abs(back-p) > roundTripTolerance {
			return fmt.Errorf("item %q: difficulty %g reproduces probability %g, expected %g",
				id, a.Difficulties[i], back, p)
		}
	}
	return nil
}

// Quantiles verifies the theta table length and monotonicity.
func Quantiles(a model.Artifact) error {
	if a.QuantileStep <= 0 {
		return fmt.Errorf("quantile step %g is not positive", a.QuantileStep)
	}
	want := int(math.Floor(100/a.QuantileStep)) + 1
	if len(a.ThetaQuantiles) != want {
		return fmt.Errorf("table has %d entries, step %g requires %d", len(a.ThetaQuantiles), a.QuantileStep, want)
	}
	for i := 1; i < len(a.ThetaQuantiles); i++ {
		if a.ThetaQuantiles[i] < a.ThetaQuantiles[i-1] {
			return fmt.Errorf("table not monotone at index %d: %g < %g",
				i, a.ThetaQuantiles[i], a.ThetaQuantiles[i-1])
		}
	}
	for i, v := range a.ThetaQuantiles {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("table entry %d is not finite", i)
		}
	}
	return nil
}
