package analysis

import (
	"testing"

	domaingames "nba-apex-engine/internal/domain/games"
	"nba-apex-engine/internal/domain/odds"
	"nba-apex-engine/internal/store"
)

func newSeededService() *Service {
	svc := NewService(store.NewMemoryStore())
	svc.ReplaceAnalysis(domaingames.AnalysisResponse{
		Date: "2026-01-15",
		Games: []domaingames.AnalyzedGame{
			{GameID: "game-1", Tickets: []odds.BetTicket{{ID: "t1", Edge: 0.04}}},
			{GameID: "game-2"},
		},
	})
	return svc
}

func TestAnalysisReturnsStoredSlate(t *testing.T) {
	svc := newSeededService()

	resp := svc.Analysis()
	if resp.Date != "2026-01-15" {
		t.Fatalf("expected stored date, got %s", resp.Date)
	}
	if len(resp.Games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(resp.Games))
	}
}

func TestGameByID(t *testing.T) {
	svc := newSeededService()

	if _, ok := svc.GameByID("game-1"); !ok {
		t.Fatal("expected game-1 present")
	}
	if _, ok := svc.GameByID("missing"); ok {
		t.Fatal("expected miss for unknown id")
	}
}

func TestTickets(t *testing.T) {
	svc := newSeededService()

	tickets := svc.Tickets()
	if len(tickets) != 1 || tickets[0].ID != "t1" {
		t.Fatalf("expected flattened tickets, got %+v", tickets)
	}
}
