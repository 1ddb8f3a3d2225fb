package oddsmath

import "math"

// NormalCDF evaluates the standard normal CDF at z via the error function:
// Phi(z) = (1 + erf(z/sqrt(2))) / 2. One formula serves both spread and total
// evaluation so the two markets stay numerically consistent.
func NormalCDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

// ProbAbove is the probability that a normal(mean, stdDev) variable exceeds x.
func ProbAbove(x, mean, stdDev float64) float64 {
	if stdDev <= 0 {
		if mean > x {
			return 1
		}
		return 0
	}
	return 1 - NormalCDF((x-mean)/stdDev)
}
