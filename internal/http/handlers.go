package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	nethttp "net/http"
	"os"
	"strings"
	"time"

	"nba-apex-engine/internal/app/analysis"
	domaingames "nba-apex-engine/internal/domain/games"
	"nba-apex-engine/internal/domain/odds"
	"nba-apex-engine/internal/ledger"
	"nba-apex-engine/internal/refresher"
	"nba-apex-engine/internal/timeutil"
)

type nowFunc func() time.Time

// WhatIfRunner recomputes one game under an edited active roster.
type WhatIfRunner interface {
	WhatIf(game domaingames.AnalyzedGame, activeIDs map[string]bool) (domaingames.AnalyzedGame, error)
}

// BetLedger persists tracked bets and their settlement.
type BetLedger interface {
	Track(ticket odds.BetTicket) (ledger.TrackedBet, error)
	Grade(id string, result ledger.Result, closingLine float64) error
	List(filter ledger.Result) ([]ledger.TrackedBet, error)
}

// Readiness exposes refresher health for the readiness probe.
type Readiness interface {
	Status() refresher.Status
}

// History loads analysis snapshots for past dates.
type History interface {
	LoadAnalysis(date string) (domaingames.AnalysisResponse, error)
}

// Handler wires HTTP routes to the analysis service and its collaborators.
type Handler struct {
	svc     *analysis.Service
	whatIf  WhatIfRunner
	bets    BetLedger
	ready   Readiness
	history History
	logger  *slog.Logger
	now     nowFunc
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc *analysis.Service, whatIf WhatIfRunner, bets BetLedger, ready Readiness, history History, logger *slog.Logger) *Handler {
	return &Handler{
		svc:     svc,
		whatIf:  whatIf,
		bets:    bets,
		ready:   ready,
		history: history,
		logger:  logger,
		now:     time.Now,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether the refresher has produced a recent slate.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.ready == nil {
		h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"})
		return
	}
	status := h.ready.Status()
	payload := map[string]any{
		"ready":                status.IsReady(),
		"consecutive_failures": status.ConsecutiveFailures,
		"last_success":         status.LastSuccess,
	}
	if status.LastError != "" {
		payload["last_error"] = status.LastError
	}
	code := nethttp.StatusOK
	if !status.IsReady() {
		code = nethttp.StatusServiceUnavailable
	}
	h.writeJSON(w, code, payload)
}

// Analysis returns the current slate, or a snapshot when ?date= names a past day.
func (h *Handler) Analysis(w nethttp.ResponseWriter, r *nethttp.Request) {
	date := r.URL.Query().Get("date")
	if date == "" || date == h.svc.Analysis().Date {
		h.writeJSON(w, nethttp.StatusOK, h.svc.Analysis())
		return
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		h.writeError(w, nethttp.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if h.history == nil {
		h.writeError(w, nethttp.StatusNotFound, "no analysis for date")
		return
	}
	resp, err := h.history.LoadAnalysis(date)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			h.writeError(w, nethttp.StatusNotFound, "no analysis for date")
			return
		}
		h.logError(r, "snapshot load failed", err)
		h.writeError(w, nethttp.StatusInternalServerError, "failed to load analysis")
		return
	}
	h.writeJSON(w, nethttp.StatusOK, resp)
}

// AnalysisSubtree dispatches /analysis/{id} and /analysis/{id}/whatif.
func (h *Handler) AnalysisSubtree(w nethttp.ResponseWriter, r *nethttp.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/analysis/")
	if rest == "" {
		h.writeError(w, nethttp.StatusBadRequest, "missing game id")
		return
	}
	if id, ok := strings.CutSuffix(rest, "/whatif"); ok {
		h.WhatIf(w, r, id)
		return
	}
	if strings.Contains(rest, "/") {
		h.writeError(w, nethttp.StatusNotFound, "not found")
		return
	}
	h.GameByID(w, r, rest)
}

// GameByID returns a specific analyzed game if present.
func (h *Handler) GameByID(w nethttp.ResponseWriter, r *nethttp.Request, id string) {
	game, ok := h.svc.GameByID(id)
	if !ok {
		h.writeError(w, nethttp.StatusNotFound, "game not found")
		return
	}
	h.writeJSON(w, nethttp.StatusOK, game)
}

type whatIfRequest struct {
	ActivePlayers []string `json:"active_players"`
}

// WhatIf re-runs one game with an edited active roster. The preview is
// returned to the caller and never written back to the stored slate.
func (h *Handler) WhatIf(w nethttp.ResponseWriter, r *nethttp.Request, id string) {
	if r.Method != nethttp.MethodPost {
		h.writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.whatIf == nil {
		h.writeError(w, nethttp.StatusNotFound, "what-if unavailable")
		return
	}
	game, ok := h.svc.GameByID(id)
	if !ok {
		h.writeError(w, nethttp.StatusNotFound, "game not found")
		return
	}

	var req whatIfRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		h.writeError(w, nethttp.StatusBadRequest, "invalid request body")
		return
	}
	active := make(map[string]bool, len(req.ActivePlayers))
	for _, id := range req.ActivePlayers {
		active[id] = true
	}

	preview, err := h.whatIf.WhatIf(game, active)
	if err != nil {
		h.logError(r, "what-if failed", err)
		h.writeError(w, nethttp.StatusUnprocessableEntity, err.Error())
		return
	}
	h.writeJSON(w, nethttp.StatusOK, preview)
}

// Tickets returns every current ticket ranked by descending edge.
func (h *Handler) Tickets(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.writeJSON(w, nethttp.StatusOK, map[string]any{
		"date":    h.svc.Analysis().Date,
		"tickets": h.svc.Tickets(),
	})
}

// TicketsSubtree dispatches POST /tickets/{id}/track.
func (h *Handler) TicketsSubtree(w nethttp.ResponseWriter, r *nethttp.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/tickets/")
	id, ok := strings.CutSuffix(rest, "/track")
	if !ok || id == "" {
		h.writeError(w, nethttp.StatusNotFound, "not found")
		return
	}
	if r.Method != nethttp.MethodPost {
		h.writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.bets == nil {
		h.writeError(w, nethttp.StatusNotFound, "ledger unavailable")
		return
	}
	for _, ticket := range h.svc.Tickets() {
		if ticket.ID != id {
			continue
		}
		bet, err := h.bets.Track(ticket)
		if err != nil {
			h.logError(r, "track failed", err)
			h.writeError(w, nethttp.StatusInternalServerError, "failed to track ticket")
			return
		}
		h.writeJSON(w, nethttp.StatusCreated, bet)
		return
	}
	h.writeError(w, nethttp.StatusNotFound, "ticket not found")
}

// Bets lists tracked bets, optionally filtered with ?result=.
func (h *Handler) Bets(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.bets == nil {
		h.writeError(w, nethttp.StatusNotFound, "ledger unavailable")
		return
	}
	filter := ledger.Result(strings.ToUpper(r.URL.Query().Get("result")))
	bets, err := h.bets.List(filter)
	if err != nil {
		h.logError(r, "list bets failed", err)
		h.writeError(w, nethttp.StatusInternalServerError, "failed to list bets")
		return
	}
	h.writeJSON(w, nethttp.StatusOK, map[string]any{"bets": bets})
}

type gradeRequest struct {
	Result      string  `json:"result"`
	ClosingLine float64 `json:"closing_line"`
}

// BetsSubtree dispatches POST /bets/{id}/grade.
func (h *Handler) BetsSubtree(w nethttp.ResponseWriter, r *nethttp.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/bets/")
	id, ok := strings.CutSuffix(rest, "/grade")
	if !ok || id == "" {
		h.writeError(w, nethttp.StatusNotFound, "not found")
		return
	}
	if r.Method != nethttp.MethodPost {
		h.writeError(w, nethttp.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.bets == nil {
		h.writeError(w, nethttp.StatusNotFound, "ledger unavailable")
		return
	}

	var req gradeRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		h.writeError(w, nethttp.StatusBadRequest, "invalid request body")
		return
	}
	result := ledger.Result(strings.ToUpper(req.Result))
	switch result {
	case ledger.ResultWon, ledger.ResultLost, ledger.ResultPush:
	default:
		h.writeError(w, nethttp.StatusBadRequest, "result must be WON, LOST, or PUSH")
		return
	}

	if err := h.bets.Grade(id, result, req.ClosingLine); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			h.writeError(w, nethttp.StatusNotFound, "bet not found or already graded")
			return
		}
		h.logError(r, "grade failed", err)
		h.writeError(w, nethttp.StatusInternalServerError, "failed to grade bet")
		return
	}
	h.writeJSON(w, nethttp.StatusOK, map[string]string{"status": "graded"})
}

func decodeJSON(body io.Reader, dst any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func (h *Handler) logError(r *nethttp.Request, msg string, err error) {
	if h.logger == nil {
		return
	}
	h.logger.Error(msg, "error", err, "path", r.URL.Path)
}

func (h *Handler) writeJSON(w nethttp.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w nethttp.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
