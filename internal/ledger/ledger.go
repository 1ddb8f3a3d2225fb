// Package ledger persists tracked bets in SQLite. Tickets themselves are
// immutable; tracking a ticket copies it into the ledger, which then owns the
// pending -> graded lifecycle and closing-line capture.
package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"nba-apex-engine/internal/domain/odds"
)

// ErrNotFound is returned when grading targets a bet that does not exist or
// is already settled.
var ErrNotFound = errors.New("no pending bet with that id")

// Result is the settled outcome of a tracked bet.
type Result string

const (
	ResultPending Result = "PENDING"
	ResultWon     Result = "WON"
	ResultLost    Result = "LOST"
	ResultPush    Result = "PUSH"
)

// TrackedBet is one ledger row.
type TrackedBet struct {
	ID          string    `json:"id"`
	TicketID    string    `json:"ticketId"`
	GameID      string    `json:"gameId"`
	Type        string    `json:"type"`
	Side        string    `json:"side"`
	Description string    `json:"description"`
	Price       int       `json:"price"`
	Edge        float64   `json:"edge"`
	KellyUnits  float64   `json:"kellyUnits"`
	Grade       string    `json:"grade"`
	Result      Result    `json:"result"`
	ClosingLine float64   `json:"closingLine"`
	PlacedAt    time.Time `json:"placedAt"`
	GradedAt    *time.Time `json:"gradedAt,omitempty"`
}

// Store provides SQLite-based bet tracking.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the ledger database at path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	// WAL keeps readers unblocked while the refresher writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate ledger: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tracked_bets (
		id TEXT PRIMARY KEY,
		ticket_id TEXT NOT NULL,
		game_id TEXT NOT NULL,
		bet_type TEXT NOT NULL,
		side TEXT NOT NULL,
		description TEXT NOT NULL,
		price INTEGER NOT NULL,
		edge REAL NOT NULL,
		kelly_units REAL NOT NULL,
		grade TEXT NOT NULL,
		result TEXT NOT NULL DEFAULT 'PENDING',
		closing_line REAL NOT NULL DEFAULT 0,
		placed_at DATETIME NOT NULL,
		graded_at DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_tracked_bets_game ON tracked_bets(game_id);
	CREATE INDEX IF NOT EXISTS idx_tracked_bets_result ON tracked_bets(result);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Track copies a ticket into the ledger as a pending bet and returns the row.
func (s *Store) Track(ticket odds.BetTicket) (TrackedBet, error) {
	bet := TrackedBet{
		ID:          uuid.NewString(),
		TicketID:    ticket.ID,
		GameID:      ticket.GameID,
		Type:        string(ticket.Type),
		Side:        string(ticket.Side),
		Description: ticket.Description,
		Price:       ticket.Price,
		Edge:        ticket.Edge,
		KellyUnits:  ticket.KellyUnits,
		Grade:       string(ticket.Grade),
		Result:      ResultPending,
		PlacedAt:    time.Now().UTC(),
	}

	_, err := s.db.Exec(`
		INSERT INTO tracked_bets
			(id, ticket_id, game_id, bet_type, side, description, price, edge, kelly_units, grade, result, placed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bet.ID, bet.TicketID, bet.GameID, bet.Type, bet.Side, bet.Description,
		bet.Price, bet.Edge, bet.KellyUnits, bet.Grade, string(bet.Result), bet.PlacedAt,
	)
	if err != nil {
		return TrackedBet{}, fmt.Errorf("track bet: %w", err)
	}
	return bet, nil
}

// Grade settles a pending bet with a result and the line at close; the
// closing line feeds CLV analysis independent of the outcome.
func (s *Store) Grade(id string, result Result, closingLine float64) error {
	now := time.Now().UTC()
	res, err := s.db.Exec(`
		UPDATE tracked_bets SET result = ?, closing_line = ?, graded_at = ?
		WHERE id = ? AND result = 'PENDING'`,
		string(result), closingLine, now, id,
	)
	if err != nil {
		return fmt.Errorf("grade bet: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("grade bet %s: %w", id, ErrNotFound)
	}
	return nil
}

// List returns tracked bets, newest first. Pass an empty result to list all.
func (s *Store) List(filter Result) ([]TrackedBet, error) {
	query := `
		SELECT id, ticket_id, game_id, bet_type, side, description, price, edge,
		       kelly_units, grade, result, closing_line, placed_at, graded_at
		FROM tracked_bets`
	args := []any{}
	if filter != "" {
		query += " WHERE result = ?"
		args = append(args, string(filter))
	}
	query += " ORDER BY placed_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bets: %w", err)
	}
	defer rows.Close()

	var bets []TrackedBet
	for rows.Next() {
		var bet TrackedBet
		var result string
		var gradedAt sql.NullTime
		if err := rows.Scan(
			&bet.ID, &bet.TicketID, &bet.GameID, &bet.Type, &bet.Side, &bet.Description,
			&bet.Price, &bet.Edge, &bet.KellyUnits, &bet.Grade, &result, &bet.ClosingLine,
			&bet.PlacedAt, &gradedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bet: %w", err)
		}
		bet.Result = Result(result)
		if gradedAt.Valid {
			t := gradedAt.Time
			bet.GradedAt = &t
		}
		bets = append(bets, bet)
	}
	return bets, rows.Err()
}
