package http

import nethttp "net/http"

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/analysis", handler.Analysis)
	mux.HandleFunc("/analysis/", handler.AnalysisSubtree)
	mux.HandleFunc("/tickets", handler.Tickets)
	mux.HandleFunc("/tickets/", handler.TicketsSubtree)
	mux.HandleFunc("/bets", handler.Bets)
	mux.HandleFunc("/bets/", handler.BetsSubtree)
	return mux
}
