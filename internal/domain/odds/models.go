package odds

// MarketOdds is one game's sportsbook lines, treated as a read-only snapshot.
// Spread and total carry a single price applied to either side (books quote
// both sides at the same juice in this feed). Prices are American odds.
type MarketOdds struct {
	GameID      string      `json:"gameId"`
	SpreadLine  float64     `json:"spreadLine"` // home handicap, e.g. -5.5
	SpreadPrice int         `json:"spreadPrice"`
	TotalLine   float64     `json:"totalLine"`
	TotalPrice  int         `json:"totalPrice"`
	HomeML      int         `json:"homeMl"`
	AwayML      int         `json:"awayMl"`
	Sharp       *SharpLines `json:"sharp,omitempty"`
}

// SharpLines are optional reference lines from a more efficient book.
type SharpLines struct {
	SpreadLine float64 `json:"spreadLine"`
	TotalLine  float64 `json:"totalLine"`
}

// IsZero reports whether this is the zero-valued placeholder market used when
// no real prices were available; valuation is skipped for such games.
func (m MarketOdds) IsZero() bool {
	return m.SpreadPrice == 0 && m.TotalPrice == 0 && m.HomeML == 0 && m.AwayML == 0
}

// BetType enumerates the supported market types.
type BetType string

const (
	BetSpread    BetType = "SPREAD"
	BetTotal     BetType = "TOTAL"
	BetMoneyline BetType = "MONEYLINE"
)

// Side tags which half of a two-way market a decision landed on. Computing the
// side once keeps spread/total tickets structurally mutually exclusive.
type Side string

const (
	SideHome  Side = "HOME"
	SideAway  Side = "AWAY"
	SideOver  Side = "OVER"
	SideUnder Side = "UNDER"
	SideNone  Side = "NONE"
)

// Grade buckets tickets by edge magnitude for display and staking discipline.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
)

// BetTicket is one candidate wager produced by the valuation engine.
// Tickets are never mutated; the ledger copies them into its own lifecycle.
type BetTicket struct {
	ID          string  `json:"id"`
	GameID      string  `json:"gameId"`
	Type        BetType `json:"type"`
	Side        Side    `json:"side"`
	Description string  `json:"description"`
	Price       int     `json:"price"`
	ImpliedProb float64 `json:"impliedProb"`
	ModelProb   float64 `json:"modelProb"`
	Edge        float64 `json:"edge"`
	KellyUnits  float64 `json:"kellyUnits"`
	Grade       Grade   `json:"grade"`
}
