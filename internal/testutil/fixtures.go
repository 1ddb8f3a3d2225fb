package testutil

import (
	"fmt"

	"nba-apex-engine/internal/domain/odds"
	"nba-apex-engine/internal/domain/players"
)

// SampleProfile returns a league-average efficiency profile.
func SampleProfile() players.EfficiencyProfile {
	return players.EfficiencyProfile{
		PointsPer100:  22.0,
		AssistsPer100: 5.0,
		UsageRate:     20.0,
		EffectiveFG:   0.54,
		TurnoverRate:  0.13,
		OffRebRate:    0.06,
		DefRebRate:    0.14,
		FreeThrowRate: 0.25,
		ThreeRate:     0.38,
		OffRating:     114.0,
		DefRating:     113.0,
		PaceImpact:    99.5,
	}
}

// SampleRoster builds a ten-man roster for teamID, two deep at every
// position, with starters at 32 minutes and backups at 16.
func SampleRoster(teamID string) []players.Player {
	roster := make([]players.Player, 0, 10)
	for _, pos := range players.Positions() {
		for depth := 1; depth <= 2; depth++ {
			minutes := 32.0
			if depth == 2 {
				minutes = 16.0
			}
			roster = append(roster, players.Player{
				ID:             fmt.Sprintf("%s-%s-%d", teamID, pos, depth),
				Name:           fmt.Sprintf("%s %s %d", teamID, pos, depth),
				TeamID:         teamID,
				Position:       pos,
				Status:         players.StatusActive,
				DepthRank:      depth,
				MinutesPerGame: minutes,
				GamesPlayed:    50,
				Profile:        SampleProfile(),
			})
		}
	}
	return roster
}

// SampleMarket returns a fully priced market for the given game.
func SampleMarket(gameID string) odds.MarketOdds {
	return odds.MarketOdds{
		GameID:      gameID,
		SpreadLine:  -4.5,
		SpreadPrice: -110,
		TotalLine:   221.5,
		TotalPrice:  -110,
		HomeML:      -190,
		AwayML:      160,
	}
}
