package sim

import (
	"math"
	"math/rand"
	"time"

	"nba-apex-engine/internal/aggregate"
)

const (
	// DefaultTrials is the trial count for a full analysis pass.
	DefaultTrials = 10000
	// PreviewTrials is the reduced count used by interactive what-if recomputes,
	// trading precision for responsiveness.
	PreviewTrials = 2000

	// envCorrelation couples both offenses to a shared game-level factor
	// (fast/slow game, whistle rate) while keeping idiosyncratic variance.
	envCorrelation = 0.25
	paceStdDev     = 3.8
	ratingStdDev   = 11.5

	// subsampleCap bounds the scatter retained for plotting regardless of N.
	subsampleCap = 500
)

// TeamInput carries one side's raw and fatigue-adjusted aggregates. The
// simulator draws from Adjusted; Raw exists so diagnostics can show both.
type TeamInput struct {
	Raw      aggregate.TeamPerformance
	Adjusted aggregate.TeamPerformance
}

// ScorePair is one retained (home, away) trial outcome.
type ScorePair struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

// Debug exposes the inputs behind a projection so callers can audit why a
// number emerged. Explainability is a first-class requirement here.
type Debug struct {
	Trials          int                   `json:"trials"`
	HomeRawORtg     float64               `json:"homeRawOrtg"`
	HomeAdjORtg     float64               `json:"homeAdjOrtg"`
	HomeRawDRtg     float64               `json:"homeRawDrtg"`
	HomeAdjDRtg     float64               `json:"homeAdjDrtg"`
	AwayRawORtg     float64               `json:"awayRawOrtg"`
	AwayAdjORtg     float64               `json:"awayAdjOrtg"`
	AwayRawDRtg     float64               `json:"awayRawDrtg"`
	AwayAdjDRtg     float64               `json:"awayAdjDrtg"`
	HomePace        float64               `json:"homePace"`
	AwayPace        float64               `json:"awayPace"`
	HomeFourFactors aggregate.FourFactors `json:"homeFourFactors"`
	AwayFourFactors aggregate.FourFactors `json:"awayFourFactors"`
}

// Result summarizes the score distribution over N trials.
type Result struct {
	HomeWinPct      float64     `json:"homeWinPct"`
	ProjectedSpread float64     `json:"projectedSpread"` // mean away - home margin
	ProjectedTotal  float64     `json:"projectedTotal"`
	HomeScore       float64     `json:"homeScore"`
	AwayScore       float64     `json:"awayScore"`
	Sample          []ScorePair `json:"sample"`
	Debug           Debug       `json:"debug"`
}

// Simulator runs randomized game trials from a seeded source. Determinism
// between runs is not required; this is a statistical estimator.
type Simulator struct {
	rng *rand.Rand
}

// New constructs a Simulator seeded from the wall clock.
func New() *Simulator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource constructs a Simulator over a caller-supplied source, which
// tests use to make distributional assertions cheap to repeat.
func NewWithSource(src rand.Source) *Simulator {
	return &Simulator{rng: rand.New(src)}
}

// Run simulates trials games between home and away. Each trial draws a shared
// pace, then correlated offensive-rating draws: the away noise is
// rho*zHome + sqrt(1-rho^2)*zAway scaled by the rating sigma, the standard
// bivariate-normal construction. Scores are (pace/100) x rating draw.
func (s *Simulator) Run(home, away TeamInput, trials int) Result {
	if trials <= 0 {
		trials = DefaultTrials
	}

	basePace := (home.Adjusted.Pace + away.Adjusted.Pace) / 2
	crossTerm := sqrtOneMinusSq(envCorrelation)

	interval := trials / subsampleCap
	if interval < 1 {
		interval = 1
	}

	var homeWins int
	var marginSum, totalSum, homeSum, awaySum float64
	sample := make([]ScorePair, 0, subsampleCap)

	for i := 0; i < trials; i++ {
		zHome := s.rng.NormFloat64()
		zAway := s.rng.NormFloat64()

		pace := basePace + s.rng.NormFloat64()*paceStdDev
		homeRating := home.Adjusted.OffRating + zHome*ratingStdDev
		awayRating := away.Adjusted.OffRating + (envCorrelation*zHome+crossTerm*zAway)*ratingStdDev

		homeScore := (pace / 100) * homeRating
		awayScore := (pace / 100) * awayRating

		if homeScore > awayScore {
			homeWins++
		}
		marginSum += awayScore - homeScore
		totalSum += homeScore + awayScore
		homeSum += homeScore
		awaySum += awayScore

		if i%interval == 0 && len(sample) < subsampleCap {
			sample = append(sample, ScorePair{Home: homeScore, Away: awayScore})
		}
	}

	n := float64(trials)
	return Result{
		HomeWinPct:      float64(homeWins) / n,
		ProjectedSpread: marginSum / n,
		ProjectedTotal:  totalSum / n,
		HomeScore:       homeSum / n,
		AwayScore:       awaySum / n,
		Sample:          sample,
		Debug: Debug{
			Trials:          trials,
			HomeRawORtg:     home.Raw.OffRating,
			HomeAdjORtg:     home.Adjusted.OffRating,
			HomeRawDRtg:     home.Raw.DefRating,
			HomeAdjDRtg:     home.Adjusted.DefRating,
			AwayRawORtg:     away.Raw.OffRating,
			AwayAdjORtg:     away.Adjusted.OffRating,
			AwayRawDRtg:     away.Raw.DefRating,
			AwayAdjDRtg:     away.Adjusted.DefRating,
			HomePace:        home.Adjusted.Pace,
			AwayPace:        away.Adjusted.Pace,
			HomeFourFactors: home.Adjusted.FourFactors,
			AwayFourFactors: away.Adjusted.FourFactors,
		},
	}
}

func sqrtOneMinusSq(rho float64) float64 {
	v := 1 - rho*rho
	if v < 0 {
		return 0
	}
	return math.Sqrt(v)
}
