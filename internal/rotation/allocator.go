package rotation

import (
	"errors"
	"math"

	"nba-apex-engine/internal/domain/players"
)

const (
	// TeamMinutes is the regulation minute pool for one team (48 minutes x 5 slots).
	TeamMinutes = 240.0
	// PositionBudget is the minute pool each of the five positions distributes.
	PositionBudget = 48.0
	// MaxPlayerMinutes is a physical plausibility ceiling for one player.
	MaxPlayerMinutes = 42.0
	// correctionTolerance is how far the raw total may drift from 240 before rescaling.
	correctionTolerance = 0.1
)

// ErrNoActivePlayers is returned when a roster yields no rotation entries at all.
var ErrNoActivePlayers = errors.New("rotation: no active players on roster")

// Entry is one active player's share of the rotation.
type Entry struct {
	PlayerID         string           `json:"playerId"`
	Name             string           `json:"name"`
	Position         players.Position `json:"position"`
	ProjectedMinutes float64          `json:"projectedMinutes"`
	UsageShare       float64          `json:"usageShare"`
}

// Rotation is a full 240-minute distribution across a team's active players.
type Rotation struct {
	Entries      []Entry `json:"entries"`
	TotalMinutes float64 `json:"totalMinutes"`
}

// Allocate turns a roster into a 240-minute rotation. Each position group is
// allocated independently: active players split the position's 48 minutes
// proportionally to 1/depthRank, capped at 42 minutes per player. A position
// with no active players contributes nothing and its minutes are dropped in
// this pass; the final rescale pushes the grand total back to 240. This is a
// known limitation rather than a redistribution policy.
func Allocate(roster []players.Player) (Rotation, error) {
	var entries []Entry

	for _, pos := range players.Positions() {
		entries = append(entries, allocatePosition(roster, pos)...)
	}

	total := 0.0
	for _, e := range entries {
		total += e.ProjectedMinutes
	}
	if total == 0 {
		return Rotation{}, ErrNoActivePlayers
	}

	if math.Abs(total-TeamMinutes) > correctionTolerance {
		scale := TeamMinutes / total
		rescaled := 0.0
		largest := 0
		for i := range entries {
			entries[i].ProjectedMinutes = round2(entries[i].ProjectedMinutes * scale)
			rescaled += entries[i].ProjectedMinutes
			if entries[i].ProjectedMinutes > entries[largest].ProjectedMinutes {
				largest = i
			}
		}
		// Per-entry rounding can leave the sum a few hundredths off 240;
		// the largest share absorbs the residue.
		if residue := round2(TeamMinutes - rescaled); residue != 0 {
			entries[largest].ProjectedMinutes = round2(entries[largest].ProjectedMinutes + residue)
		}
	}

	total = 0.0
	for i := range entries {
		entries[i].UsageShare = usageShare(roster, entries[i])
		total += entries[i].ProjectedMinutes
	}

	return Rotation{Entries: entries, TotalMinutes: total}, nil
}

func allocatePosition(roster []players.Player, pos players.Position) []Entry {
	var active []players.Player
	weightTotal := 0.0
	for _, p := range roster {
		if p.Position != pos || !p.Status.Plays() {
			continue
		}
		active = append(active, p)
		weightTotal += depthWeight(p)
	}
	if len(active) == 0 || weightTotal == 0 {
		return nil
	}

	entries := make([]Entry, 0, len(active))
	for _, p := range active {
		minutes := PositionBudget * depthWeight(p) / weightTotal
		if minutes > MaxPlayerMinutes {
			// Capped minutes are not redistributed within the position;
			// the team-level rescale absorbs the shortfall.
			minutes = MaxPlayerMinutes
		}
		entries = append(entries, Entry{
			PlayerID:         p.ID,
			Name:             p.Name,
			Position:         pos,
			ProjectedMinutes: round2(minutes),
		})
	}
	return entries
}

func depthWeight(p players.Player) float64 {
	rank := p.DepthRank
	if rank < 1 {
		rank = 1
	}
	return 1.0 / float64(rank)
}

func usageShare(roster []players.Player, e Entry) float64 {
	for _, p := range roster {
		if p.ID == e.PlayerID {
			return p.Profile.UsageRate * (e.ProjectedMinutes / TeamMinutes)
		}
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
