package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"nba-apex-engine/internal/aggregate"
	domaingames "nba-apex-engine/internal/domain/games"
	"nba-apex-engine/internal/domain/odds"
	"nba-apex-engine/internal/domain/players"
	"nba-apex-engine/internal/logging"
	"nba-apex-engine/internal/metrics"
	"nba-apex-engine/internal/providers"
	"nba-apex-engine/internal/rotation"
	"nba-apex-engine/internal/sim"
	"nba-apex-engine/internal/valuation"
)

// ErrInsufficientRoster marks a game that cannot be modeled because one side
// has fewer than five players. Such games are skipped quietly, not failed.
var ErrInsufficientRoster = errors.New("engine: roster has fewer than 5 players")

const minRosterSize = 5

// Engine runs the full analytical pipeline for a slate of games:
// rotation allocation, team aggregation, simulation, and market valuation.
type Engine struct {
	provider      providers.DataProvider
	simulator     *sim.Simulator
	logger        *slog.Logger
	metrics       *metrics.Recorder
	trials        int
	previewTrials int
}

// New constructs an Engine. Non-positive trial counts fall back to the
// simulator defaults.
func New(provider providers.DataProvider, logger *slog.Logger, recorder *metrics.Recorder, trials, previewTrials int) *Engine {
	if trials <= 0 {
		trials = sim.DefaultTrials
	}
	if previewTrials <= 0 {
		previewTrials = sim.PreviewTrials
	}
	return &Engine{
		provider:      provider,
		simulator:     sim.New(),
		logger:        logger,
		metrics:       recorder,
		trials:        trials,
		previewTrials: previewTrials,
	}
}

// slate bundles the four independently fetched inputs for one date.
type slate struct {
	schedule []domaingames.ScheduledGame
	stats    []players.Player
	markets  map[string]odds.MarketOdds
	injuries []players.InjuryReport
}

// AnalyzeDate fetches all inputs concurrently, then processes the slate
// strictly sequentially. A failure on one game never aborts the batch; the
// result is best-effort over the games that succeeded.
func (e *Engine) AnalyzeDate(ctx context.Context, date string) (domaingames.AnalysisResponse, error) {
	start := time.Now()

	s, err := e.fetchSlate(ctx, date)
	if err != nil {
		e.metrics.RecordAnalysisCycle(time.Since(start), 0, 0, err)
		return domaingames.AnalysisResponse{}, err
	}

	rosters := BuildRosters(s.stats, s.injuries)

	analyzed := make([]domaingames.AnalyzedGame, 0, len(s.schedule))
	skipped := 0
	for _, sg := range s.schedule {
		game, err := e.analyzeGame(sg, rosters, s.markets, s.injuries)
		if err != nil {
			skipped++
			if errors.Is(err, ErrInsufficientRoster) {
				logging.Info(e.logger, "game skipped: insufficient roster data",
					logging.FieldGameID, sg.ID)
			} else {
				logging.Error(e.logger, "game analysis failed", err,
					logging.FieldGameID, sg.ID)
			}
			continue
		}
		analyzed = append(analyzed, game)
	}

	e.metrics.RecordAnalysisCycle(time.Since(start), len(analyzed), skipped, nil)
	logging.Info(e.logger, "slate analyzed",
		logging.FieldDate, date,
		logging.FieldCount, len(analyzed),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return domaingames.NewAnalysisResponse(date, analyzed), nil
}

// fetchSlate issues the four fetches concurrently and awaits them jointly;
// they have no data dependency on each other. Schedule and player stats are
// required; odds and injuries degrade to empty sets with a warning.
func (e *Engine) fetchSlate(ctx context.Context, date string) (slate, error) {
	var (
		wg                                     sync.WaitGroup
		s                                      slate
		schedErr, statsErr, oddsErr, injuryErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		s.schedule, schedErr = e.provider.FetchSchedule(ctx, date)
	}()
	go func() {
		defer wg.Done()
		s.stats, statsErr = e.provider.FetchPlayerStats(ctx)
	}()
	go func() {
		defer wg.Done()
		s.markets, oddsErr = e.provider.FetchMarketOdds(ctx, date)
	}()
	go func() {
		defer wg.Done()
		s.injuries, injuryErr = e.provider.FetchInjuries(ctx)
	}()
	wg.Wait()

	if schedErr != nil {
		return slate{}, fmt.Errorf("fetch schedule: %w", schedErr)
	}
	if statsErr != nil {
		return slate{}, fmt.Errorf("fetch player stats: %w", statsErr)
	}
	if oddsErr != nil {
		logging.Warn(e.logger, "odds fetch failed, valuing nothing", "err", oddsErr)
		s.markets = map[string]odds.MarketOdds{}
	}
	if injuryErr != nil {
		logging.Warn(e.logger, "injury fetch failed, assuming full availability", "err", injuryErr)
		s.injuries = nil
	}
	if s.markets == nil {
		s.markets = map[string]odds.MarketOdds{}
	}
	return s, nil
}

func (e *Engine) analyzeGame(sg domaingames.ScheduledGame, rosters map[string][]players.Player, markets map[string]odds.MarketOdds, injuries []players.InjuryReport) (domaingames.AnalyzedGame, error) {
	homeRoster := rosters[sg.HomeID]
	awayRoster := rosters[sg.AwayID]
	if len(homeRoster) < minRosterSize || len(awayRoster) < minRosterSize {
		return domaingames.AnalyzedGame{}, ErrInsufficientRoster
	}

	homeFatigue := sg.HomeFatigue
	awayFatigue := sg.AwayFatigue
	awayFatigue.IsRoad = true

	market, hasMarket := markets[sg.ID]
	if !hasMarket {
		market = odds.MarketOdds{GameID: sg.ID}
	}

	proj, err := e.project(homeRoster, awayRoster, homeFatigue, awayFatigue, e.trials)
	if err != nil {
		return domaingames.AnalyzedGame{}, fmt.Errorf("game %s: %w", sg.ID, err)
	}

	var tickets []odds.BetTicket
	if hasMarket {
		tickets = valuation.Evaluate(proj.result, market, valuation.Matchup{
			GameID:   sg.ID,
			HomeName: sg.HomeName,
			AwayName: sg.AwayName,
		})
		e.metrics.RecordTickets(len(tickets))
	}

	return domaingames.AnalyzedGame{
		GameID:          sg.ID,
		Matchup:         sg.AwayName + " @ " + sg.HomeName,
		StartTime:       sg.StartTime,
		HomeRoster:      homeRoster,
		AwayRoster:      awayRoster,
		HomeRotation:    proj.homeRotation,
		AwayRotation:    proj.awayRotation,
		HomeFatigue:     homeFatigue,
		AwayFatigue:     awayFatigue,
		HomePerformance: proj.homeAdjusted,
		AwayPerformance: proj.awayAdjusted,
		Simulation:      proj.result,
		Market:          market,
		Tickets:         tickets,
		Injuries:        relevantInjuries(injuries, homeRoster, awayRoster),
	}, nil
}

// projection carries the intermediate outputs of one pipeline pass.
type projection struct {
	homeRotation rotation.Rotation
	awayRotation rotation.Rotation
	homeAdjusted aggregate.TeamPerformance
	awayAdjusted aggregate.TeamPerformance
	result       sim.Result
}

// project runs allocator -> aggregator -> simulator for both rosters.
func (e *Engine) project(homeRoster, awayRoster []players.Player, homeFatigue, awayFatigue aggregate.FatigueContext, trials int) (projection, error) {
	homeRotation, err := rotation.Allocate(homeRoster)
	if err != nil {
		return projection{}, fmt.Errorf("home rotation: %w", err)
	}
	awayRotation, err := rotation.Allocate(awayRoster)
	if err != nil {
		return projection{}, fmt.Errorf("away rotation: %w", err)
	}

	homeRaw := aggregate.Project(lineup(homeRoster, homeRotation))
	awayRaw := aggregate.Project(lineup(awayRoster, awayRotation))
	homeAdj := aggregate.ApplyFatigue(homeRaw, homeFatigue)
	awayAdj := aggregate.ApplyFatigue(awayRaw, awayFatigue)

	simStart := time.Now()
	result := e.simulator.Run(
		sim.TeamInput{Raw: homeRaw, Adjusted: homeAdj},
		sim.TeamInput{Raw: awayRaw, Adjusted: awayAdj},
		trials,
	)
	e.metrics.RecordSimulation(trials, time.Since(simStart))

	return projection{
		homeRotation: homeRotation,
		awayRotation: awayRotation,
		homeAdjusted: homeAdj,
		awayAdjusted: awayAdj,
		result:       result,
	}, nil
}

// WhatIf re-runs the aggregation, simulation, and valuation chain for one
// analyzed game with an edited active set, at the reduced preview trial count.
// Players missing from the active set are treated as out; everyone listed is
// treated as in regardless of their feed status.
func (e *Engine) WhatIf(game domaingames.AnalyzedGame, activeIDs map[string]bool) (domaingames.AnalyzedGame, error) {
	homeRoster := withAvailability(game.HomeRoster, activeIDs)
	awayRoster := withAvailability(game.AwayRoster, activeIDs)

	proj, err := e.project(homeRoster, awayRoster, game.HomeFatigue, game.AwayFatigue, e.previewTrials)
	if err != nil {
		return domaingames.AnalyzedGame{}, fmt.Errorf("what-if %s: %w", game.GameID, err)
	}

	var tickets []odds.BetTicket
	if !game.Market.IsZero() {
		matchup := splitMatchup(game)
		tickets = valuation.Evaluate(proj.result, game.Market, matchup)
	}

	updated := game
	updated.HomeRoster = homeRoster
	updated.AwayRoster = awayRoster
	updated.HomeRotation = proj.homeRotation
	updated.AwayRotation = proj.awayRotation
	updated.HomePerformance = proj.homeAdjusted
	updated.AwayPerformance = proj.awayAdjusted
	updated.Simulation = proj.result
	updated.Tickets = tickets
	return updated, nil
}

// BuildRosters groups players by team and folds the injury report into each
// player's availability status.
func BuildRosters(all []players.Player, injuries []players.InjuryReport) map[string][]players.Player {
	statusByID := make(map[string]players.InjuryStatus, len(injuries))
	for _, rep := range injuries {
		statusByID[rep.PlayerID] = rep.Status
	}

	rosters := make(map[string][]players.Player)
	for _, p := range all {
		if status, ok := statusByID[p.ID]; ok {
			p.Status = status
		} else if p.Status == "" {
			p.Status = players.StatusActive
		}
		rosters[p.TeamID] = append(rosters[p.TeamID], p)
	}
	return rosters
}

func lineup(roster []players.Player, rot rotation.Rotation) []aggregate.PlayerMinutes {
	profiles := make(map[string]players.EfficiencyProfile, len(roster))
	for _, p := range roster {
		profiles[p.ID] = p.Profile
	}
	pairs := make([]aggregate.PlayerMinutes, 0, len(rot.Entries))
	for _, entry := range rot.Entries {
		pairs = append(pairs, aggregate.PlayerMinutes{
			Profile: profiles[entry.PlayerID],
			Minutes: entry.ProjectedMinutes,
		})
	}
	return pairs
}

func withAvailability(roster []players.Player, activeIDs map[string]bool) []players.Player {
	out := make([]players.Player, len(roster))
	copy(out, roster)
	for i := range out {
		if activeIDs[out[i].ID] {
			out[i].Status = players.StatusActive
		} else {
			out[i].Status = players.StatusOut
		}
	}
	return out
}

func relevantInjuries(injuries []players.InjuryReport, homeRoster, awayRoster []players.Player) []players.InjuryReport {
	ids := make(map[string]bool, len(homeRoster)+len(awayRoster))
	for _, p := range homeRoster {
		ids[p.ID] = true
	}
	for _, p := range awayRoster {
		ids[p.ID] = true
	}
	var out []players.InjuryReport
	for _, rep := range injuries {
		if ids[rep.PlayerID] {
			out = append(out, rep)
		}
	}
	return out
}

func splitMatchup(game domaingames.AnalyzedGame) valuation.Matchup {
	m := valuation.Matchup{GameID: game.GameID, HomeName: "Home", AwayName: "Away"}
	// Matchup label is "Away @ Home".
	if away, home, ok := strings.Cut(game.Matchup, " @ "); ok {
		m.AwayName = away
		m.HomeName = home
	}
	return m
}
