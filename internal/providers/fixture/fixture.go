package fixture

import (
	"context"
	"fmt"
	"time"

	domaingames "nba-apex-engine/internal/domain/games"
	"nba-apex-engine/internal/domain/odds"
	"nba-apex-engine/internal/domain/players"
	"nba-apex-engine/internal/domain/teams"
	"nba-apex-engine/internal/timeutil"
)

// Provider returns a static slate useful for local runs and bootstrapping.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{now: time.Now}
}

// NewWithClock creates a fixture provider with a fixed time source for tests.
func NewWithClock(now func() time.Time) *Provider {
	return &Provider{now: now}
}

var fixtureTeams = []struct {
	id   string
	ortg float64
	drtg float64
	pace float64
}{
	{"BOS", 119.0, 110.5, 99.2},
	{"NYK", 115.5, 111.8, 97.5},
	{"DEN", 117.2, 112.4, 98.8},
	{"LAL", 113.8, 113.5, 100.6},
}

// FetchSchedule returns two games for the requested date (or today when empty).
func (p *Provider) FetchSchedule(ctx context.Context, date string) ([]domaingames.ScheduledGame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if date == "" {
		date = timeutil.FormatDate(p.now().UTC())
	}
	return []domaingames.ScheduledGame{
		{
			ID: "fixture-1", Date: date, StartTime: date + "T19:30:00Z",
			HomeID: "BOS", AwayID: "NYK",
			HomeName: teams.Name("BOS"), AwayName: teams.Name("NYK"),
		},
		{
			ID: "fixture-2", Date: date, StartTime: date + "T22:00:00Z",
			HomeID: "DEN", AwayID: "LAL",
			HomeName: teams.Name("DEN"), AwayName: teams.Name("LAL"),
		},
	}, nil
}

// FetchPlayerStats returns ten players per fixture team, two deep at each
// position, with profiles scaled off the team baselines.
func (p *Provider) FetchPlayerStats(ctx context.Context) ([]players.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []players.Player
	for _, t := range fixtureTeams {
		out = append(out, teamRoster(t.id, t.ortg, t.drtg, t.pace)...)
	}
	return out, nil
}

// FetchMarketOdds prices the first fixture game and leaves the second without
// a market so the missing-market path stays exercised end to end.
func (p *Provider) FetchMarketOdds(ctx context.Context, date string) (map[string]odds.MarketOdds, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return map[string]odds.MarketOdds{
		"fixture-1": {
			GameID:      "fixture-1",
			SpreadLine:  -4.5,
			SpreadPrice: -110,
			TotalLine:   221.5,
			TotalPrice:  -110,
			HomeML:      -190,
			AwayML:      160,
			Sharp:       &odds.SharpLines{SpreadLine: -5.0, TotalLine: 221.0},
		},
	}, nil
}

// FetchInjuries lists one sidelined starter so rotation redistribution runs.
func (p *Provider) FetchInjuries(ctx context.Context) ([]players.InjuryReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []players.InjuryReport{
		{PlayerID: "NYK-SF-1", Status: players.StatusOut, Detail: "knee soreness"},
		{PlayerID: "BOS-C-2", Status: players.StatusGTD, Detail: "ankle sprain"},
	}, nil
}

func teamRoster(teamID string, ortg, drtg, pace float64) []players.Player {
	var roster []players.Player
	for _, pos := range players.Positions() {
		for depth := 1; depth <= 2; depth++ {
			// Bench players run lighter usage and slightly softer ratings.
			usage := 24.0 - float64(depth-1)*6.0
			drop := float64(depth-1) * 2.5
			roster = append(roster, players.Player{
				ID:             fmt.Sprintf("%s-%s-%d", teamID, pos, depth),
				Name:           fmt.Sprintf("%s %s%d", teamID, pos, depth),
				TeamID:         teamID,
				Position:       pos,
				Status:         players.StatusActive,
				DepthRank:      depth,
				MinutesPerGame: 34 - float64(depth-1)*14,
				GamesPlayed:    60,
				Profile: players.EfficiencyProfile{
					PointsPer100:  26 - drop,
					AssistsPer100: 6,
					StealsPer100:  1.8,
					BlocksPer100:  1.1,
					UsageRate:     usage,
					EffectiveFG:   0.55 - float64(depth-1)*0.02,
					TurnoverRate:  12.5,
					OffRebRate:    6.0,
					DefRebRate:    14.0,
					FreeThrowRate: 0.24,
					ThreeRate:     0.38,
					OffRating:     ortg - drop,
					DefRating:     drtg + drop,
					PaceImpact:    pace,
					BoxPlusMinus:  2.0 - drop,
				},
			})
		}
	}
	return roster
}
