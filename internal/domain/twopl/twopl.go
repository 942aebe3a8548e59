// Package twopl implements the two-parameter logistic response model:
// the probability of a positive response is
// sigmoid(discrimination * (ability - difficulty)).
package twopl

import "math"

// Sigmoid returns 1 / (1 + e^-x).
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// Logit returns ln(p / (1-p)), the inverse of Sigmoid.
// p must be strictly inside (0, 1).
func Logit(p float64) float64 {
	return math.Log(p / (1.0 - p))
}

// Prob returns the 2PL endorsement probability for a respondent with the
// given ability on an item with the given discrimination and difficulty.
func Prob(discrimination, difficulty, ability float64) float64 {
	return Sigmoid(discrimination * (ability - difficulty))
}
