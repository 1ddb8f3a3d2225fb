package ledger

import (
	"errors"
	"path/filepath"
	"testing"

	"nba-apex-engine/internal/domain/odds"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("failed to open ledger: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleTicket() odds.BetTicket {
	return odds.BetTicket{
		ID:          "ticket-1",
		GameID:      "game-1",
		Type:        odds.BetSpread,
		Side:        odds.SideHome,
		Description: "BOS -4.5",
		Price:       -110,
		ImpliedProb: 0.524,
		ModelProb:   0.58,
		Edge:        0.056,
		KellyUnits:  2.1,
		Grade:       odds.GradeA,
	}
}

func TestTrackCreatesPendingBet(t *testing.T) {
	s := newTestStore(t)

	bet, err := s.Track(sampleTicket())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bet.ID == "" || bet.TicketID != "ticket-1" {
		t.Fatalf("unexpected bet identity: %+v", bet)
	}
	if bet.Result != ResultPending {
		t.Fatalf("expected pending result, got %s", bet.Result)
	}
	if bet.PlacedAt.IsZero() {
		t.Fatal("expected placed timestamp")
	}

	bets, err := s.List("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bets) != 1 || bets[0].Description != "BOS -4.5" {
		t.Fatalf("expected tracked bet persisted, got %+v", bets)
	}
}

func TestGradeSettlesPendingBet(t *testing.T) {
	s := newTestStore(t)
	bet, err := s.Track(sampleTicket())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Grade(bet.ID, ResultWon, -115); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bets, err := s.List(ResultWon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bets) != 1 {
		t.Fatalf("expected 1 won bet, got %d", len(bets))
	}
	if bets[0].ClosingLine != -115 {
		t.Fatalf("expected closing line captured, got %v", bets[0].ClosingLine)
	}
	if bets[0].GradedAt == nil {
		t.Fatal("expected graded timestamp")
	}
}

func TestGradeRejectsSettledBet(t *testing.T) {
	s := newTestStore(t)
	bet, err := s.Track(sampleTicket())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Grade(bet.ID, ResultLost, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = s.Grade(bet.ID, ResultWon, 0)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double grade, got %v", err)
	}
}

func TestGradeUnknownBet(t *testing.T) {
	s := newTestStore(t)

	if err := s.Grade("missing", ResultPush, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListFiltersByResult(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Track(sampleTicket())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := sampleTicket()
	second.ID = "ticket-2"
	if _, err := s.Track(second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Grade(first.ID, ResultWon, -112); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, err := s.List(ResultPending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 || pending[0].TicketID != "ticket-2" {
		t.Fatalf("expected one pending bet, got %+v", pending)
	}

	all, err := s.List("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both bets, got %d", len(all))
	}
}

func TestStoreReopensExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.db")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to open ledger: %v", err)
	}
	if _, err := s.Track(sampleTicket()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to reopen ledger: %v", err)
	}
	defer reopened.Close()

	bets, err := reopened.List("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bets) != 1 {
		t.Fatalf("expected persisted bet after reopen, got %d", len(bets))
	}
}
