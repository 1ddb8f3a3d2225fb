package valuation

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"nba-apex-engine/internal/domain/odds"
	"nba-apex-engine/internal/oddsmath"
	"nba-apex-engine/internal/sim"
)

const (
	// spreadStdDev is the margin-of-victory standard deviation used to turn the
	// simulator's mean margin into a cover probability.
	spreadStdDev = 13.5
	// totalStdDev plays the same role for combined points.
	totalStdDev = 18.0

	gradeAThreshold    = 0.05
	gradeBThreshold    = 0.03
	gradeBLowThreshold = 0.015
)

// Matchup labels the two sides for human-readable ticket descriptions.
type Matchup struct {
	GameID   string
	HomeName string
	AwayName string
}

// Evaluate compares simulation output against market prices and returns every
// wager with a strictly positive edge, sorted by descending edge. A zero-valued
// placeholder market yields no tickets: no valuation without real prices.
func Evaluate(result sim.Result, market odds.MarketOdds, m Matchup) []odds.BetTicket {
	if market.IsZero() {
		return nil
	}

	var tickets []odds.BetTicket
	tickets = append(tickets, moneylineTickets(result, market, m)...)
	if t, ok := spreadTicket(result, market, m); ok {
		tickets = append(tickets, t)
	}
	if t, ok := totalTicket(result, market, m); ok {
		tickets = append(tickets, t)
	}

	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].Edge > tickets[j].Edge
	})
	return tickets
}

// moneylineTickets evaluates both sides independently against their own
// prices. Vig makes the implied probabilities sum above 1, so in practice at
// most one side clears, but each check stands on its own.
func moneylineTickets(result sim.Result, market odds.MarketOdds, m Matchup) []odds.BetTicket {
	var tickets []odds.BetTicket
	if t, ok := buildTicket(odds.BetMoneyline, odds.SideHome, market.HomeML, result.HomeWinPct,
		fmt.Sprintf("%s ML", m.HomeName), m.GameID); ok {
		tickets = append(tickets, t)
	}
	if t, ok := buildTicket(odds.BetMoneyline, odds.SideAway, market.AwayML, 1-result.HomeWinPct,
		fmt.Sprintf("%s ML", m.AwayName), m.GameID); ok {
		tickets = append(tickets, t)
	}
	return tickets
}

// spreadTicket computes the side decision once so home and away cover tickets
// stay structurally mutually exclusive. Cover probabilities sum to 1 exactly.
func spreadTicket(result sim.Result, market odds.MarketOdds, m Matchup) (odds.BetTicket, bool) {
	if market.SpreadPrice == 0 {
		return odds.BetTicket{}, false
	}
	meanMargin := -result.ProjectedSpread // simulator reports away - home
	probHomeCover := oddsmath.ProbAbove(-market.SpreadLine, meanMargin, spreadStdDev)
	probAwayCover := 1 - probHomeCover

	implied, err := oddsmath.AmericanToImpliedProbability(market.SpreadPrice)
	if err != nil {
		return odds.BetTicket{}, false
	}

	side := odds.SideNone
	modelProb := 0.0
	desc := ""
	switch {
	case probHomeCover > implied:
		side, modelProb = odds.SideHome, probHomeCover
		desc = fmt.Sprintf("%s %+.1f", m.HomeName, market.SpreadLine)
	case probAwayCover > implied:
		side, modelProb = odds.SideAway, probAwayCover
		desc = fmt.Sprintf("%s %+.1f", m.AwayName, -market.SpreadLine)
	}
	if side == odds.SideNone {
		return odds.BetTicket{}, false
	}
	return newTicket(odds.BetSpread, side, market.SpreadPrice, modelProb, implied, desc, m.GameID), true
}

// totalTicket mirrors spreadTicket for the over/under market.
func totalTicket(result sim.Result, market odds.MarketOdds, m Matchup) (odds.BetTicket, bool) {
	if market.TotalPrice == 0 {
		return odds.BetTicket{}, false
	}
	probOver := oddsmath.ProbAbove(market.TotalLine, result.ProjectedTotal, totalStdDev)
	probUnder := 1 - probOver

	implied, err := oddsmath.AmericanToImpliedProbability(market.TotalPrice)
	if err != nil {
		return odds.BetTicket{}, false
	}

	side := odds.SideNone
	modelProb := 0.0
	desc := ""
	switch {
	case probOver > implied:
		side, modelProb = odds.SideOver, probOver
		desc = fmt.Sprintf("Over %.1f", market.TotalLine)
	case probUnder > implied:
		side, modelProb = odds.SideUnder, probUnder
		desc = fmt.Sprintf("Under %.1f", market.TotalLine)
	}
	if side == odds.SideNone {
		return odds.BetTicket{}, false
	}
	return newTicket(odds.BetTotal, side, market.TotalPrice, modelProb, implied, desc, m.GameID), true
}

func buildTicket(betType odds.BetType, side odds.Side, price int, modelProb float64, desc, gameID string) (odds.BetTicket, bool) {
	if price == 0 {
		return odds.BetTicket{}, false
	}
	implied, err := oddsmath.AmericanToImpliedProbability(price)
	if err != nil {
		return odds.BetTicket{}, false
	}
	if modelProb <= implied {
		return odds.BetTicket{}, false
	}
	return newTicket(betType, side, price, modelProb, implied, desc, gameID), true
}

func newTicket(betType odds.BetType, side odds.Side, price int, modelProb, implied float64, desc, gameID string) odds.BetTicket {
	return odds.BetTicket{
		ID:          uuid.NewString(),
		GameID:      gameID,
		Type:        betType,
		Side:        side,
		Description: desc,
		Price:       price,
		ImpliedProb: implied,
		ModelProb:   modelProb,
		Edge:        modelProb - implied,
		KellyUnits:  oddsmath.KellyUnits(price, modelProb),
		Grade:       gradeFor(modelProb - implied),
	}
}

// gradeFor maps edge magnitude onto the fixed threshold ladder. The 0.03 and
// 0.015 rungs map to the same B bucket; downstream displays depend on these
// exact thresholds, so the duplicate rung stays. Positive edges below 1.5%
// grade C.
func gradeFor(edge float64) odds.Grade {
	switch {
	case edge >= gradeAThreshold:
		return odds.GradeA
	case edge >= gradeBThreshold:
		return odds.GradeB
	case edge >= gradeBLowThreshold:
		return odds.GradeB
	default:
		return odds.GradeC
	}
}
