package oddsmath

// KellyFraction is the multiplier applied to full Kelly. Quarter Kelly keeps
// variance tolerable when the model probability is itself an estimate.
const KellyFraction = 0.25

// KellyUnits sizes a stake for a bet at the given American price and model
// probability. Full Kelly is (b*p - q)/b with b = decimal - 1; the result is
// scaled by KellyFraction and expressed in bankroll-percentage units (x100).
// A negative raw Kelly value clamps to zero: when the CDF approximation and
// the edge computation disagree, no stake beats a negative one.
func KellyUnits(american int, modelProb float64) float64 {
	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0
	}
	b := decimal - 1
	if b <= 0 {
		return 0
	}
	q := 1 - modelProb
	kelly := (b*modelProb - q) / b
	if kelly < 0 {
		return 0
	}
	return kelly * KellyFraction * 100
}
