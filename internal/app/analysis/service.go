package analysis

import (
	domaingames "nba-apex-engine/internal/domain/games"
	"nba-apex-engine/internal/domain/odds"
)

// Store defines the contract for holding the latest analyzed slate.
type Store interface {
	ListAnalyzed() []domaingames.AnalyzedGame
	GetAnalyzed(id string) (domaingames.AnalyzedGame, bool)
	SetAnalysis(resp domaingames.AnalysisResponse)
	Date() string
	ListTickets() []odds.BetTicket
}

// Service coordinates analysis reads and writes using a Store.
type Service struct {
	store Store
}

// NewService constructs a Service with the provided Store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Analysis returns the current slate snapshot.
func (s *Service) Analysis() domaingames.AnalysisResponse {
	return domaingames.NewAnalysisResponse(s.store.Date(), s.store.ListAnalyzed())
}

// GameByID returns a single analyzed game if present.
func (s *Service) GameByID(id string) (domaingames.AnalyzedGame, bool) {
	return s.store.GetAnalyzed(id)
}

// ReplaceAnalysis swaps the stored slate with a new snapshot.
func (s *Service) ReplaceAnalysis(resp domaingames.AnalysisResponse) {
	s.store.SetAnalysis(resp)
}

// Tickets returns every current ticket ranked by descending edge.
func (s *Service) Tickets() []odds.BetTicket {
	return s.store.ListTickets()
}
