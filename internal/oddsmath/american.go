package oddsmath

import (
	"fmt"
	"math"
)

// AmericanToDecimal converts American odds to decimal odds.
// +150 -> 2.50, -150 -> 1.67.
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("invalid American odds: cannot be 0")
	}
	if american > 0 {
		return (float64(american) / 100.0) + 1.0, nil
	}
	return (100.0 / float64(-american)) + 1.0, nil
}

// AmericanToImpliedProbability converts an American price to the probability it
// encodes, vig included. Positive p -> 100/(p+100); negative p -> |p|/(|p|+100).
func AmericanToImpliedProbability(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("invalid American odds: cannot be 0")
	}
	if american > 0 {
		return 100.0 / (float64(american) + 100.0), nil
	}
	abs := math.Abs(float64(american))
	return abs / (abs + 100.0), nil
}
