// Package refresher schedules full analysis passes and fans results out to
// the in-memory store, the snapshot writer, and the notifier.
package refresher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	domaingames "nba-apex-engine/internal/domain/games"
	"nba-apex-engine/internal/domain/odds"
	"nba-apex-engine/internal/logging"
	"nba-apex-engine/internal/timeutil"
)

// DefaultSchedule refreshes the slate every 30 minutes; injury news and line
// moves rarely warrant anything faster for a pre-game model.
const DefaultSchedule = "@every 30m"

// Analyzer runs the full pipeline for one date.
type Analyzer interface {
	AnalyzeDate(ctx context.Context, date string) (domaingames.AnalysisResponse, error)
}

// Sink receives each completed slate.
type Sink interface {
	ReplaceAnalysis(resp domaingames.AnalysisResponse)
}

// SnapshotWriter persists analysis snapshots to disk.
type SnapshotWriter interface {
	WriteAnalysisSnapshot(date string, snapshot domaingames.AnalysisResponse) error
}

// Notifier pushes alerts for top-grade tickets.
type Notifier interface {
	IsEnabled() bool
	TicketAlert(matchup string, t odds.BetTicket)
	SlateSummary(date string, games, tickets int)
}

// Refresher re-runs the engine on a cron schedule and tracks run health.
type Refresher struct {
	analyzer Analyzer
	sink     Sink
	writer   SnapshotWriter
	notifier Notifier
	logger   *slog.Logger
	schedule string
	now      func() time.Time

	cron     *cron.Cron
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the refresher has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Refresher with sane defaults. An invalid schedule falls
// back to DefaultSchedule at Start.
func New(analyzer Analyzer, sink Sink, writer SnapshotWriter, notifier Notifier, logger *slog.Logger, schedule string) *Refresher {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &Refresher{
		analyzer: analyzer,
		sink:     sink,
		writer:   writer,
		notifier: notifier,
		logger:   logger,
		schedule: schedule,
		now:      time.Now,
		cron:     cron.New(),
	}
}

// Start runs one immediate pass to warm data on boot, then schedules repeats
// until the context is cancelled or Stop is called.
func (r *Refresher) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	r.startMu.Unlock()

	r.runOnce(ctx)

	if _, err := r.cron.AddFunc(r.schedule, func() { r.runOnce(ctx) }); err != nil {
		logging.Error(r.logger, "invalid refresh schedule, using default", err, "schedule", r.schedule)
		_, _ = r.cron.AddFunc(DefaultSchedule, func() { r.runOnce(ctx) })
	}
	r.cron.Start()
	logging.Info(r.logger, "refresher started", "schedule", r.schedule)

	go func() {
		<-ctx.Done()
		_ = r.Stop(context.Background())
	}()
}

// Stop halts the schedule, waiting for an in-flight run to finish.
func (r *Refresher) Stop(ctx context.Context) error {
	r.stopOnce.Do(func() {
		stopCtx := r.cron.Stop()
		select {
		case <-stopCtx.Done():
		case <-ctx.Done():
		}
		logging.Info(r.logger, "refresher stopped")
	})
	return nil
}

func (r *Refresher) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	r.recordAttempt(start)

	date := timeutil.FormatDate(r.now().UTC())
	resp, err := r.analyzer.AnalyzeDate(ctx, date)
	if err != nil {
		logging.Error(r.logger, "refresh failed", err,
			logging.FieldDate, date,
			logging.FieldDurationMS, time.Since(start).Milliseconds())
		r.recordFailure(err, start)
		return
	}

	if r.sink != nil {
		r.sink.ReplaceAnalysis(resp)
	}
	if r.writer != nil {
		if writeErr := r.writer.WriteAnalysisSnapshot(date, resp); writeErr != nil {
			logging.Error(r.logger, "snapshot write failed", writeErr, logging.FieldDate, date)
		}
	}
	r.alert(resp)

	r.recordSuccess(start)
	logging.Info(r.logger, "slate refreshed",
		logging.FieldDate, date,
		logging.FieldCount, len(resp.Games),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

// alert pushes grade-A tickets individually plus a slate digest.
func (r *Refresher) alert(resp domaingames.AnalysisResponse) {
	if r.notifier == nil || !r.notifier.IsEnabled() {
		return
	}
	tickets := 0
	for _, game := range resp.Games {
		tickets += len(game.Tickets)
		for _, t := range game.Tickets {
			if t.Grade == odds.GradeA {
				r.notifier.TicketAlert(game.Matchup, t)
			}
		}
	}
	r.notifier.SlateSummary(resp.Date, len(resp.Games), tickets)
}

func (r *Refresher) recordAttempt(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
}

func (r *Refresher) recordSuccess(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
}

func (r *Refresher) recordFailure(err error, at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	if err != nil {
		r.status.LastError = err.Error()
	}
	r.status.LastAttempt = at
}

// Status returns a snapshot of the refresher's recent health.
func (r *Refresher) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}
