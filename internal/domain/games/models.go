package games

import (
	"nba-apex-engine/internal/aggregate"
	"nba-apex-engine/internal/domain/odds"
	"nba-apex-engine/internal/domain/players"
	"nba-apex-engine/internal/rotation"
	"nba-apex-engine/internal/sim"
)

// ScheduledGame is the inbound schedule record for one matchup. Fatigue flags
// are optional; feeds that do not track scheduling situations leave them zero
// and the away side still gets the road flag during analysis.
type ScheduledGame struct {
	ID          string                   `json:"id"`
	Date        string                   `json:"date"` // YYYY-MM-DD
	StartTime   string                   `json:"startTime"`
	HomeID      string                   `json:"homeId"`
	AwayID      string                   `json:"awayId"`
	HomeName    string                   `json:"homeName"`
	AwayName    string                   `json:"awayName"`
	HomeFatigue aggregate.FatigueContext `json:"homeFatigue,omitempty"`
	AwayFatigue aggregate.FatigueContext `json:"awayFatigue,omitempty"`
}

// AnalyzedGame is the outbound record for one successfully processed game:
// both rosters and contexts, the projections behind the simulation, the market
// snapshot, and the ranked ticket list.
type AnalyzedGame struct {
	GameID          string                    `json:"gameId"`
	Matchup         string                    `json:"matchup"`
	StartTime       string                    `json:"startTime"`
	HomeRoster      []players.Player          `json:"homeRoster"`
	AwayRoster      []players.Player          `json:"awayRoster"`
	HomeRotation    rotation.Rotation         `json:"homeRotation"`
	AwayRotation    rotation.Rotation         `json:"awayRotation"`
	HomeFatigue     aggregate.FatigueContext  `json:"homeFatigue"`
	AwayFatigue     aggregate.FatigueContext  `json:"awayFatigue"`
	HomePerformance aggregate.TeamPerformance `json:"homePerformance"`
	AwayPerformance aggregate.TeamPerformance `json:"awayPerformance"`
	Simulation      sim.Result                `json:"simulation"`
	Market          odds.MarketOdds           `json:"market"`
	Tickets         []odds.BetTicket          `json:"tickets"`
	Injuries        []players.InjuryReport    `json:"injuries"`
}

// AnalysisResponse is the payload served for a full slate of analyzed games.
type AnalysisResponse struct {
	Date  string         `json:"date"`
	Games []AnalyzedGame `json:"games"`
}

// NewAnalysisResponse builds an AnalysisResponse payload.
func NewAnalysisResponse(date string, analyzed []AnalyzedGame) AnalysisResponse {
	return AnalysisResponse{Date: date, Games: analyzed}
}
