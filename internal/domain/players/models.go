package players

// Position is a standard five-position slot.
type Position string

const (
	PointGuard    Position = "PG"
	ShootingGuard Position = "SG"
	SmallForward  Position = "SF"
	PowerForward  Position = "PF"
	Center        Position = "C"
)

// Positions lists the five slots in depth-chart order.
func Positions() []Position {
	return []Position{PointGuard, ShootingGuard, SmallForward, PowerForward, Center}
}

// InjuryStatus mirrors the shared contract for player availability.
type InjuryStatus string

const (
	StatusActive   InjuryStatus = "ACTIVE"
	StatusOut      InjuryStatus = "OUT"
	StatusGTD      InjuryStatus = "GTD"
	StatusDoubtful InjuryStatus = "DOUBTFUL"
)

// Plays reports whether a player with this status is expected to take the floor.
// GTD players are assumed in until ruled out; OUT and DOUBTFUL sit.
func (s InjuryStatus) Plays() bool {
	return s == StatusActive || s == StatusGTD || s == ""
}

// EfficiencyProfile holds per-100-possession rate stats for one player-season.
// Produced by ingestion, consumed read-only by the aggregator.
type EfficiencyProfile struct {
	PointsPer100  float64 `json:"ptsPer100"`
	AssistsPer100 float64 `json:"astPer100"`
	StealsPer100  float64 `json:"stlPer100"`
	BlocksPer100  float64 `json:"blkPer100"`
	UsageRate     float64 `json:"usgPct"`
	EffectiveFG   float64 `json:"efgPct"`
	TurnoverRate  float64 `json:"tovPct"`
	OffRebRate    float64 `json:"orbPct"`
	DefRebRate    float64 `json:"drbPct"`
	FreeThrowRate float64 `json:"ftr"`
	ThreeRate     float64 `json:"threeRate"`
	OffRating     float64 `json:"ortg"`
	DefRating     float64 `json:"drtg"`
	PaceImpact    float64 `json:"paceImpact"`
	BoxPlusMinus  float64 `json:"bpm"`
}

// Player carries identity, rotation inputs, and the season efficiency profile.
type Player struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	TeamID         string            `json:"teamId"`
	Position       Position          `json:"position"`
	Status         InjuryStatus      `json:"status"`
	DepthRank      int               `json:"depthRank"`
	MinutesPerGame float64           `json:"minutesPerGame"`
	GamesPlayed    int               `json:"gamesPlayed"`
	Profile        EfficiencyProfile `json:"profile"`
}

// InjuryReport is one line of an inbound injury feed.
type InjuryReport struct {
	PlayerID string       `json:"playerId"`
	Status   InjuryStatus `json:"status"`
	Detail   string       `json:"detail"`
}
