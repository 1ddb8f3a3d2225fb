package store

import (
	"sort"
	"sync"

	domaingames "nba-apex-engine/internal/domain/games"
	"nba-apex-engine/internal/domain/odds"
)

// MemoryStore keeps a thread-safe snapshot of the latest analyzed slate.
type MemoryStore struct {
	mu    sync.RWMutex
	date  string
	games map[string]domaingames.AnalyzedGame
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]domaingames.AnalyzedGame),
	}
}

// ListAnalyzed returns a copy of the current analyzed games, ordered by ID.
func (s *MemoryStore) ListAnalyzed() []domaingames.AnalyzedGame {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domaingames.AnalyzedGame, 0, len(s.games))
	for _, g := range s.games {
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].GameID < result[j].GameID })
	return result
}

// GetAnalyzed retrieves an analyzed game by ID.
func (s *MemoryStore) GetAnalyzed(id string) (domaingames.AnalyzedGame, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	return g, ok
}

// SetAnalysis replaces the existing slate with a new snapshot.
func (s *MemoryStore) SetAnalysis(resp domaingames.AnalysisResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.date = resp.Date
	s.games = make(map[string]domaingames.AnalyzedGame, len(resp.Games))
	for _, g := range resp.Games {
		s.games[g.GameID] = g
	}
}

// Date returns the date of the stored slate.
func (s *MemoryStore) Date() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.date
}

// ListTickets flattens every game's ranked tickets into one list sorted by
// descending edge.
func (s *MemoryStore) ListTickets() []odds.BetTicket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tickets []odds.BetTicket
	for _, g := range s.games {
		tickets = append(tickets, g.Tickets...)
	}
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].Edge > tickets[j].Edge })
	return tickets
}
