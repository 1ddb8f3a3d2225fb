package refresher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domaingames "nba-apex-engine/internal/domain/games"
	"nba-apex-engine/internal/domain/odds"
	"nba-apex-engine/internal/testutil"
)

type stubAnalyzer struct {
	mu    sync.Mutex
	resp  domaingames.AnalysisResponse
	err   error
	calls int
	dates []string
}

func (s *stubAnalyzer) AnalyzeDate(_ context.Context, date string) (domaingames.AnalysisResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.dates = append(s.dates, date)
	return s.resp, s.err
}

type stubSink struct {
	mu       sync.Mutex
	replaced []domaingames.AnalysisResponse
}

func (s *stubSink) ReplaceAnalysis(resp domaingames.AnalysisResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaced = append(s.replaced, resp)
}

type stubWriter struct {
	mu    sync.Mutex
	dates []string
	err   error
}

func (s *stubWriter) WriteAnalysisSnapshot(date string, _ domaingames.AnalysisResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dates = append(s.dates, date)
	return s.err
}

type stubNotifier struct {
	mu        sync.Mutex
	enabled   bool
	alerts    []string
	summaries int
}

func (s *stubNotifier) IsEnabled() bool { return s.enabled }

func (s *stubNotifier) TicketAlert(matchup string, _ odds.BetTicket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, matchup)
}

func (s *stubNotifier) SlateSummary(string, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries++
}

func sampleResponse() domaingames.AnalysisResponse {
	return domaingames.AnalysisResponse{
		Date: "2026-01-15",
		Games: []domaingames.AnalyzedGame{
			{
				GameID:  "game-1",
				Matchup: "NYK @ BOS",
				Tickets: []odds.BetTicket{
					{ID: "t1", Grade: odds.GradeA},
					{ID: "t2", Grade: odds.GradeC},
				},
			},
			{GameID: "game-2", Matchup: "LAL @ DEN"},
		},
	}
}

func newTestRefresher(analyzer *stubAnalyzer, sink *stubSink, writer *stubWriter, notifier *stubNotifier) *Refresher {
	r := New(analyzer, sink, writer, notifier, nil, DefaultSchedule)
	r.now = testutil.NowAt(testutil.MustParseRFC3339("2026-01-15T12:00:00Z"))
	return r
}

func TestRunOnceSuccess(t *testing.T) {
	analyzer := &stubAnalyzer{resp: sampleResponse()}
	sink := &stubSink{}
	writer := &stubWriter{}
	notifier := &stubNotifier{enabled: true}
	r := newTestRefresher(analyzer, sink, writer, notifier)

	r.runOnce(context.Background())

	if analyzer.calls != 1 || analyzer.dates[0] != "2026-01-15" {
		t.Fatalf("expected one analysis for 2026-01-15, got %d calls %v", analyzer.calls, analyzer.dates)
	}
	if len(sink.replaced) != 1 || sink.replaced[0].Date != "2026-01-15" {
		t.Fatalf("expected slate pushed to sink, got %+v", sink.replaced)
	}
	if len(writer.dates) != 1 || writer.dates[0] != "2026-01-15" {
		t.Fatalf("expected snapshot written, got %v", writer.dates)
	}

	status := r.Status()
	if !status.IsReady() {
		t.Fatalf("expected ready after success, got %+v", status)
	}
	if status.ConsecutiveFailures != 0 || status.LastError != "" {
		t.Fatalf("expected clean status, got %+v", status)
	}
	if status.LastSuccess.IsZero() || status.LastAttempt.IsZero() {
		t.Fatalf("expected timestamps recorded, got %+v", status)
	}
}

func TestRunOnceAlertsGradeATicketsOnly(t *testing.T) {
	analyzer := &stubAnalyzer{resp: sampleResponse()}
	notifier := &stubNotifier{enabled: true}
	r := newTestRefresher(analyzer, &stubSink{}, &stubWriter{}, notifier)

	r.runOnce(context.Background())

	if len(notifier.alerts) != 1 || notifier.alerts[0] != "NYK @ BOS" {
		t.Fatalf("expected single grade-A alert, got %v", notifier.alerts)
	}
	if notifier.summaries != 1 {
		t.Fatalf("expected one slate summary, got %d", notifier.summaries)
	}
}

func TestRunOnceSkipsDisabledNotifier(t *testing.T) {
	analyzer := &stubAnalyzer{resp: sampleResponse()}
	notifier := &stubNotifier{enabled: false}
	r := newTestRefresher(analyzer, &stubSink{}, &stubWriter{}, notifier)

	r.runOnce(context.Background())

	if len(notifier.alerts) != 0 || notifier.summaries != 0 {
		t.Fatalf("expected no notifications, got alerts=%v summaries=%d", notifier.alerts, notifier.summaries)
	}
}

func TestRunOnceFailureRecordsStatus(t *testing.T) {
	analyzer := &stubAnalyzer{err: errors.New("provider down")}
	sink := &stubSink{}
	r := newTestRefresher(analyzer, sink, &stubWriter{}, &stubNotifier{})

	r.runOnce(context.Background())
	r.runOnce(context.Background())

	if len(sink.replaced) != 0 {
		t.Fatal("expected sink untouched on failure")
	}
	status := r.Status()
	if status.ConsecutiveFailures != 2 {
		t.Fatalf("expected 2 consecutive failures, got %d", status.ConsecutiveFailures)
	}
	if status.LastError != "provider down" {
		t.Fatalf("expected last error recorded, got %q", status.LastError)
	}
	if status.IsReady() {
		t.Fatal("expected not ready without any success")
	}
}

func TestRunOnceSuccessResetsFailureCount(t *testing.T) {
	analyzer := &stubAnalyzer{err: errors.New("provider down")}
	r := newTestRefresher(analyzer, &stubSink{}, &stubWriter{}, &stubNotifier{})

	r.runOnce(context.Background())

	analyzer.mu.Lock()
	analyzer.err = nil
	analyzer.resp = sampleResponse()
	analyzer.mu.Unlock()

	r.runOnce(context.Background())

	status := r.Status()
	if status.ConsecutiveFailures != 0 || status.LastError != "" {
		t.Fatalf("expected failure state cleared, got %+v", status)
	}
	if !status.IsReady() {
		t.Fatal("expected ready after recovery")
	}
}

func TestStatusNotReadyAtThreeFailures(t *testing.T) {
	status := Status{
		LastSuccess:         time.Now(),
		ConsecutiveFailures: 3,
	}
	if status.IsReady() {
		t.Fatal("expected not ready at 3 consecutive failures")
	}
	status.ConsecutiveFailures = 2
	if !status.IsReady() {
		t.Fatal("expected ready below the failure threshold")
	}
}

func TestRunOnceSnapshotFailureDoesNotFailRun(t *testing.T) {
	analyzer := &stubAnalyzer{resp: sampleResponse()}
	writer := &stubWriter{err: errors.New("disk full")}
	r := newTestRefresher(analyzer, &stubSink{}, writer, &stubNotifier{})

	r.runOnce(context.Background())

	if !r.Status().IsReady() {
		t.Fatal("expected snapshot failure treated as non-fatal")
	}
}

func TestRunOnceHonoursCancelledContext(t *testing.T) {
	analyzer := &stubAnalyzer{resp: sampleResponse()}
	r := newTestRefresher(analyzer, &stubSink{}, &stubWriter{}, &stubNotifier{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r.runOnce(ctx)

	if analyzer.calls != 0 {
		t.Fatalf("expected no analysis after cancellation, got %d calls", analyzer.calls)
	}
}

func TestStartRunsImmediatelyAndStops(t *testing.T) {
	analyzer := &stubAnalyzer{resp: sampleResponse()}
	r := newTestRefresher(analyzer, &stubSink{}, &stubWriter{}, &stubNotifier{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r.Start(ctx)
	if analyzer.calls != 1 {
		t.Fatalf("expected immediate warm-up run, got %d calls", analyzer.calls)
	}

	// Start is idempotent.
	r.Start(ctx)
	if analyzer.calls != 1 {
		t.Fatalf("expected second Start ignored, got %d calls", analyzer.calls)
	}

	if err := r.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected stop error: %v", err)
	}
}
