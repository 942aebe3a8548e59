package population

import (
	"math"
	"math/rand"
)

// substreamSeed mixes the run seed with a respondent index through a
// splitmix64 finalizer. Each respondent gets its own seeded stream, so
// output is identical for any worker count and any scheduling order.
func substreamSeed(seed int64, index int) int64 {
	z := uint64(seed) + uint64(index)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return int64(z)
}

// newSubstream returns the deterministic random stream for one respondent.
func newSubstream(seed int64, index int) *rand.Rand {
	return rand.New(rand.NewSource(substreamSeed(seed, index))) //nolint:gosec // deterministic seed required for reproducible tables
}

// normal draws a standard normal variate via the Box-Muller transform.
func normal(rng *rand.Rand) float64 {
	u1 := rng.Float64()
	for u1 == 0 {
		// Float64 can return exactly 0; log(0) is -Inf.
		u1 = rng.Float64()
	}
	u2 := rng.Float64()
	return math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
}
