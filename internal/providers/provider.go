package providers

import (
	"context"

	domaingames "nba-apex-engine/internal/domain/games"
	"nba-apex-engine/internal/domain/odds"
	"nba-apex-engine/internal/domain/players"
)

// ScheduleProvider fetches the slate of games for a date.
// The date parameter, when provided, should be a YYYY-MM-DD string; providers
// should interpret an empty date as "today".
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, date string) ([]domaingames.ScheduledGame, error)
}

// PlayerStatsProvider fetches normalized players with efficiency profiles.
type PlayerStatsProvider interface {
	FetchPlayerStats(ctx context.Context) ([]players.Player, error)
}

// OddsProvider fetches market lines keyed by game identifier.
type OddsProvider interface {
	FetchMarketOdds(ctx context.Context, date string) (map[string]odds.MarketOdds, error)
}

// InjuryProvider fetches the current injury report.
type InjuryProvider interface {
	FetchInjuries(ctx context.Context) ([]players.InjuryReport, error)
}

// DataProvider combines all provider capabilities the engine needs.
type DataProvider interface {
	ScheduleProvider
	PlayerStatsProvider
	OddsProvider
	InjuryProvider
}
