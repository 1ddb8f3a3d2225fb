package aggregate

import "nba-apex-engine/internal/domain/players"

// PlayerMinutes pairs one player's efficiency profile with projected minutes.
type PlayerMinutes struct {
	Profile players.EfficiencyProfile
	Minutes float64
}

// FourFactors is the composite of the dimensions that explain most scoring
// efficiency variance.
type FourFactors struct {
	EffectiveFG   float64 `json:"efgPct"`
	TurnoverRate  float64 `json:"tovPct"`
	OffRebRate    float64 `json:"orbPct"`
	DefRebRate    float64 `json:"drbPct"`
	FreeThrowRate float64 `json:"ftr"`
}

// TeamPerformance is the projected team-level summary consumed by the simulator.
// Derived on every roster change, never persisted.
type TeamPerformance struct {
	OffRating   float64     `json:"ortg"`
	DefRating   float64     `json:"drtg"`
	Pace        float64     `json:"pace"`
	ThreeRate   float64     `json:"threeRate"`
	NetRating   float64     `json:"netRating"`
	FourFactors FourFactors `json:"fourFactors"`
}

// Project collapses (profile, minutes) pairs into one TeamPerformance.
//
// Two weighting bases are used. Time-on-court metrics (defensive rating, pace)
// are minute-weighted. Efficiency metrics (offensive rating, four factors,
// three-point rate) are usage-weighted: weight = usage rate x minutes, the
// possession volume a player consumes. Entries with non-positive minutes are
// skipped. Zero weight totals fall back to 1, yielding a defined zero average
// instead of a divide-by-zero.
func Project(lineup []PlayerMinutes) TeamPerformance {
	var minuteTotal, usageTotal float64
	var ortg, drtg, pace, threeRate float64
	var efg, tov, orb, drb, ftr float64

	for _, pm := range lineup {
		if pm.Minutes <= 0 {
			continue
		}
		mw := pm.Minutes
		uw := pm.Profile.UsageRate * pm.Minutes
		minuteTotal += mw
		usageTotal += uw

		drtg += pm.Profile.DefRating * mw
		pace += pm.Profile.PaceImpact * mw

		ortg += pm.Profile.OffRating * uw
		threeRate += pm.Profile.ThreeRate * uw
		efg += pm.Profile.EffectiveFG * uw
		tov += pm.Profile.TurnoverRate * uw
		orb += pm.Profile.OffRebRate * uw
		drb += pm.Profile.DefRebRate * uw
		ftr += pm.Profile.FreeThrowRate * uw
	}

	minuteTotal = nonZero(minuteTotal)
	usageTotal = nonZero(usageTotal)

	perf := TeamPerformance{
		OffRating: ortg / usageTotal,
		DefRating: drtg / minuteTotal,
		Pace:      pace / minuteTotal,
		ThreeRate: threeRate / usageTotal,
		FourFactors: FourFactors{
			EffectiveFG:   efg / usageTotal,
			TurnoverRate:  tov / usageTotal,
			OffRebRate:    orb / usageTotal,
			DefRebRate:    drb / usageTotal,
			FreeThrowRate: ftr / usageTotal,
		},
	}
	perf.NetRating = perf.OffRating - perf.DefRating
	return perf
}

func nonZero(total float64) float64 {
	if total == 0 {
		return 1
	}
	return total
}
