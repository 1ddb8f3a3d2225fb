// Package server wires the analysis pipeline, refresher, and HTTP surface
// together and owns startup/shutdown ordering.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"nba-apex-engine/internal/app/analysis"
	"nba-apex-engine/internal/config"
	"nba-apex-engine/internal/engine"
	httpserver "nba-apex-engine/internal/http"
	"nba-apex-engine/internal/ledger"
	"nba-apex-engine/internal/logging"
	"nba-apex-engine/internal/metrics"
	"nba-apex-engine/internal/notify"
	"nba-apex-engine/internal/refresher"
	"nba-apex-engine/internal/snapshots"
	"nba-apex-engine/internal/store"
)

var metricsSetup = metrics.Setup

// Refresher is the minimal refresh-loop behavior needed by the server.
type Refresher interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() refresher.Status
}

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	service       *analysis.Service
	bets          *ledger.Store
	httpServer    httpServer
	metricsServer httpServer
	refresher     Refresher
	metricsStop   func(context.Context) error
}

// New constructs a server with default provider and refresher wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)

	provider := buildProvider(cfg, logger, recorder)
	eng := engine.New(provider, logger, recorder, cfg.Trials, cfg.PreviewTrials)

	memoryStore := store.NewMemoryStore()
	svc := analysis.NewService(memoryStore)

	bets, err := ledger.NewStore(cfg.LedgerPath)
	if err != nil {
		logging.Error(logger, "ledger unavailable, bet tracking disabled", err, "path", cfg.LedgerPath)
		bets = nil
	}

	notifier := notify.NewNotifier(cfg.Notify.SlackWebhookURL, cfg.Notify.DiscordWebhookURL, logger)
	writer := snapshots.NewWriter(cfg.Snapshots.Dir, cfg.Snapshots.RetentionDays)
	history := snapshots.NewFSStore(cfg.Snapshots.Dir)

	refr := refresher.New(eng, svc, writer, notifier, logger, cfg.RefreshSchedule)
	httpSrv := buildHTTPServer(cfg, svc, eng, bets, refr, history, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		service:       svc,
		bets:          bets,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		refresher:     refr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *analysis.Service, httpSrv httpServer, refr Refresher) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		service:    svc,
		httpServer: httpSrv,
		refresher:  refr,
	}
}

func buildHTTPServer(cfg config.Config, svc *analysis.Service, eng *engine.Engine, bets *ledger.Store, refr Refresher, history snapshots.Store, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	// A nil *ledger.Store must become a nil interface so handlers can detect it.
	var betLedger httpserver.BetLedger
	if bets != nil {
		betLedger = bets
	}

	handler := httpserver.NewHandler(svc, eng, betLedger, refr, history, logger)
	router := httpserver.NewRouter(handler)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := httpserver.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the refresher and HTTP server, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.refresher.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.refresher.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop refresher", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.bets != nil {
		if err := s.bets.Close(); err != nil {
			logging.Warn(s.logger, "ledger close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
