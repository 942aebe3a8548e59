// Package quantile compresses a sample of ability estimates into a
// fixed-resolution percentile lookup table.
package quantile

import (
	"fmt"
	"math"
	"sort"
)

// Table maps percentiles to ability values at a fixed step.
// Values[i] is the ability at percentile i*Step; the slice is monotone
// non-decreasing and immutable once built.
type Table struct {
	Step   float64
	Values []float64
}

// Build sorts the sample ascending and computes the quantile at each
// percentile i*step for i = 0..100/step, interpolating linearly between
// order statistics. The input slice is not modified.
func Build(sample []float64, step float64) (*Table, error) {
	if len(sample) == 0 {
		return nil, ErrEmptySample
	}
	steps, err := stepCount(step)
	if err != nil {
		return nil, err
	}

	sorted := append([]float64(nil), sample...)
	sort.Float64s(sorted)

	n := len(sorted)
	values := make([]float64, steps+1)
	for i := 0; i <= steps; i++ {
		p := float64(i) * step / 100.0
		idx := p * float64(n-1)
		// Guard against float drift pushing p past 1 for steps like 0.2.
		if idx > float64(n-1) {
			idx = float64(n - 1)
		}
		lo := int(math.Floor(idx))
		hi := int(math.Ceil(idx))
		if lo == hi {
			values[i] = sorted[lo]
			continue
		}
		frac := idx - float64(lo)
		values[i] = sorted[lo]*(1.0-frac) + sorted[hi]*frac
	}

	return &Table{Step: step, Values: values}, nil
}

// Len returns the number of table entries.
func (t *Table) Len() int {
	return len(t.Values)
}

// Percentile returns the ability value at the table entry nearest to p,
// clamping p into [0, 100]. This is the O(1) lookup the runtime consumer
// performs against the serialized table.
func (t *Table) Percentile(p float64) float64 {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	i := int(math.Round(p / t.Step))
	if i >= len(t.Values) {
		i = len(t.Values) - 1
	}
	return t.Values[i]
}

// stepCount validates the percentile step and returns 100/step as a whole
// number of steps. A step that does not divide 100 evenly would break the
// length contract consumers index by.
func stepCount(step float64) (int, error) {
	if step <= 0 || step > 100 {
		return 0, fmt.Errorf("%w: step %g not in (0, 100]", ErrInvalidStep, step)
	}
	steps := 100.0 / step
	rounded := math.Round(steps)
	if math.Abs(steps-rounded) > 1e-9 {
		return 0, fmt.Errorf("%w: step %g does not divide 100 evenly", ErrInvalidStep, step)
	}
	return int(rounded), nil
}
