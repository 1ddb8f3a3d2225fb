// Package file implements the manual-upload provider: a database JSON exported
// by the stats ingestion pipeline, plus optional odds and injury files dropped
// alongside it.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	domaingames "nba-apex-engine/internal/domain/games"
	"nba-apex-engine/internal/domain/odds"
	"nba-apex-engine/internal/domain/players"
	"nba-apex-engine/internal/domain/teams"
)

// Provider reads schedule and player data from a single uploaded database
// file, and market/injury data from optional sibling files. Files are re-read
// on every fetch so a fresh upload takes effect without a restart.
type Provider struct {
	dbPath     string
	oddsPath   string
	injuryPath string
}

// New constructs a file provider. oddsPath and injuryPath may be empty.
func New(dbPath, oddsPath, injuryPath string) *Provider {
	return &Provider{dbPath: dbPath, oddsPath: oddsPath, injuryPath: injuryPath}
}

type database struct {
	Metadata struct {
		GeneratedAt string `json:"generated_at"`
		Season      string `json:"season"`
	} `json:"metadata"`
	Games   []rawGame            `json:"games"`
	Players map[string]rawPlayer `json:"players"`
}

type rawGame struct {
	GameID     string `json:"gameId"`
	Date       string `json:"date"`
	HomeTeamID string `json:"homeTeamId"`
	AwayTeamID string `json:"awayTeamId"`
	HomeName   string `json:"homeName"`
	AwayName   string `json:"awayName"`
	Sequence   int    `json:"sequence"`
}

type rawPlayer struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Team     string   `json:"team"`
	Position string   `json:"position"`
	GP       int      `json:"gp"`
	Min      float64  `json:"min"`
	Stats    rawStats `json:"stats"`
}

type rawStats struct {
	PtsPer100 float64 `json:"pts_per_100"`
	AstPer100 float64 `json:"ast_per_100"`
	StlPer100 float64 `json:"stl_per_100"`
	BlkPer100 float64 `json:"blk_per_100"`
	ORtg      float64 `json:"ortg"`
	DRtg      float64 `json:"drtg"`
	UsgPct    float64 `json:"usg_pct"`
	EfgPct    float64 `json:"efg_pct"`
	TovPct    float64 `json:"tov_pct"`
	OrbPct    float64 `json:"orb_pct"`
	DrbPct    float64 `json:"drb_pct"`
	FTr       float64 `json:"ftr"`
	ThreeRate float64 `json:"three_rate"`
	Pace      float64 `json:"pace"`
	BPM       float64 `json:"bpm"`
}

func (p *Provider) loadDB() (database, error) {
	var db database
	data, err := os.ReadFile(p.dbPath)
	if err != nil {
		return db, fmt.Errorf("read database file: %w", err)
	}
	if err := json.Unmarshal(data, &db); err != nil {
		return db, fmt.Errorf("parse database file: %w", err)
	}
	return db, nil
}

// FetchSchedule returns the uploaded slate, optionally filtered by date.
func (p *Provider) FetchSchedule(ctx context.Context, date string) ([]domaingames.ScheduledGame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db, err := p.loadDB()
	if err != nil {
		return nil, err
	}
	var out []domaingames.ScheduledGame
	for _, g := range db.Games {
		if date != "" && g.Date != "" && g.Date[:min(10, len(g.Date))] != date {
			continue
		}
		home, away := g.HomeName, g.AwayName
		if home == "" {
			home = teams.Name(g.HomeTeamID)
		}
		if away == "" {
			away = teams.Name(g.AwayTeamID)
		}
		out = append(out, domaingames.ScheduledGame{
			ID:        g.GameID,
			Date:      g.Date,
			StartTime: g.Date,
			HomeID:    g.HomeTeamID,
			AwayID:    g.AwayTeamID,
			HomeName:  home,
			AwayName:  away,
		})
	}
	return out, nil
}

// FetchPlayerStats maps the uploaded player table to domain players. Depth
// ranks are not part of the upload; they are derived per team and position by
// ranking season minutes, 1 = most minutes historically.
func (p *Provider) FetchPlayerStats(ctx context.Context) ([]players.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	db, err := p.loadDB()
	if err != nil {
		return nil, err
	}

	out := make([]players.Player, 0, len(db.Players))
	for _, rp := range db.Players {
		out = append(out, mapPlayer(rp))
	}
	assignDepthRanks(out)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FetchMarketOdds reads the optional odds file; absence is an empty market
// set, not an error.
func (p *Provider) FetchMarketOdds(ctx context.Context, date string) (map[string]odds.MarketOdds, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.oddsPath == "" {
		return map[string]odds.MarketOdds{}, nil
	}
	data, err := os.ReadFile(p.oddsPath)
	if os.IsNotExist(err) {
		return map[string]odds.MarketOdds{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read odds file: %w", err)
	}
	var markets map[string]odds.MarketOdds
	if err := json.Unmarshal(data, &markets); err != nil {
		return nil, fmt.Errorf("parse odds file: %w", err)
	}
	return markets, nil
}

// FetchInjuries reads the optional injury file; absence means a clean report.
func (p *Provider) FetchInjuries(ctx context.Context) ([]players.InjuryReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.injuryPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(p.injuryPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read injury file: %w", err)
	}
	var reports []players.InjuryReport
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, fmt.Errorf("parse injury file: %w", err)
	}
	return reports, nil
}

func mapPlayer(rp rawPlayer) players.Player {
	return players.Player{
		ID:             rp.ID,
		Name:           rp.Name,
		TeamID:         rp.Team,
		Position:       players.Position(rp.Position),
		Status:         players.StatusActive,
		MinutesPerGame: rp.Min,
		GamesPlayed:    rp.GP,
		Profile: players.EfficiencyProfile{
			PointsPer100:  rp.Stats.PtsPer100,
			AssistsPer100: rp.Stats.AstPer100,
			StealsPer100:  rp.Stats.StlPer100,
			BlocksPer100:  rp.Stats.BlkPer100,
			UsageRate:     normalizePct(rp.Stats.UsgPct),
			EffectiveFG:   rp.Stats.EfgPct,
			TurnoverRate:  normalizePct(rp.Stats.TovPct),
			OffRebRate:    normalizePct(rp.Stats.OrbPct),
			DefRebRate:    normalizePct(rp.Stats.DrbPct),
			FreeThrowRate: rp.Stats.FTr,
			ThreeRate:     rp.Stats.ThreeRate,
			OffRating:     rp.Stats.ORtg,
			DefRating:     rp.Stats.DRtg,
			PaceImpact:    rp.Stats.Pace,
			BoxPlusMinus:  rp.Stats.BPM,
		},
	}
}

// normalizePct handles upstream feeds that flip between decimal (0.24) and
// whole-number (24.0) percentage encodings.
func normalizePct(v float64) float64 {
	if v > 0 && v < 1 {
		return v * 100
	}
	return v
}

func assignDepthRanks(all []players.Player) {
	type key struct {
		team string
		pos  players.Position
	}
	groups := make(map[key][]*players.Player)
	for i := range all {
		k := key{team: all[i].TeamID, pos: all[i].Position}
		groups[k] = append(groups[k], &all[i])
	}
	for _, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			return group[i].MinutesPerGame > group[j].MinutesPerGame
		})
		for rank, p := range group {
			p.DepthRank = rank + 1
		}
	}
}
