package aggregate

// FatigueContext flags the scheduling situations that degrade a team's legs.
type FatigueContext struct {
	BackToBack  bool `json:"backToBack"`
	ThreeInFour bool `json:"threeInFour"`
	IsRoad      bool `json:"isRoad"`
}

// Fatigue penalty constants. Tunable policy, not structural invariants; keep
// every magnitude here so adjustments stay in one place.
const (
	backToBackPacePenalty  = 1.8
	backToBackDefPenalty   = 2.0
	threeInFourPacePenalty = 0.9
	threeInFourDefPenalty  = 1.0
	roadDefPenalty         = 0.7
)

// ApplyFatigue returns a copy of perf with deterministic schedule penalties
// applied to pace and defensive rating. The raw aggregate is left untouched so
// callers can surface pre/post values in simulation diagnostics.
func ApplyFatigue(perf TeamPerformance, ctx FatigueContext) TeamPerformance {
	adjusted := perf
	if ctx.BackToBack {
		adjusted.Pace -= backToBackPacePenalty
		adjusted.DefRating += backToBackDefPenalty
	}
	if ctx.ThreeInFour {
		adjusted.Pace -= threeInFourPacePenalty
		adjusted.DefRating += threeInFourDefPenalty
	}
	if ctx.IsRoad {
		adjusted.DefRating += roadDefPenalty
	}
	adjusted.NetRating = adjusted.OffRating - adjusted.DefRating
	return adjusted
}
