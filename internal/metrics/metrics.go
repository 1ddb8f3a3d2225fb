package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

type engineStats struct {
	cycles         int
	cycleErrors    int
	gamesAnalyzed  int
	gamesSkipped   int
	ticketsEmitted int
	trialsRun      int64
	lastCycleTime  time.Duration
}

// Recorder captures lightweight, in-memory metrics about provider calls and
// analysis cycles. It is intentionally simple so it can be swapped for a real
// backend later.
type Recorder struct {
	mu           sync.Mutex
	stats        map[string]*providerStats
	engine       engineStats
	httpRequests int
	otel         *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the
// last observed latency. Attempts for one provider arrive concurrently during
// the slate fetch, so the counters only move under the lock.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordAnalysisCycle tracks one full engine pass over a slate.
func (r *Recorder) RecordAnalysisCycle(duration time.Duration, analyzed, skipped int, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.engine.cycles++
	r.engine.gamesAnalyzed += analyzed
	r.engine.gamesSkipped += skipped
	r.engine.lastCycleTime = duration
	if err != nil {
		r.engine.cycleErrors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordAnalysisCycle(duration, analyzed, skipped, err)
	}
}

// RecordSimulation tracks trials executed for one game simulation.
func (r *Recorder) RecordSimulation(trials int, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.engine.trialsRun += int64(trials)
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordSimulation(trials, duration)
	}
}

// RecordTickets tracks tickets emitted by a valuation pass.
func (r *Recorder) RecordTickets(count int) {
	if r == nil || count == 0 {
		return
	}
	r.mu.Lock()
	r.engine.ticketsEmitted += count
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordTickets(count)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.httpRequests++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordHTTPRequest(method, path, status, duration)
	}
}

// HTTPRequestCount returns the total HTTP requests recorded.
func (r *Recorder) HTTPRequestCount() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.httpRequests
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.ProviderSnapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.ProviderSnapshot(provider).Errors
}

// ProviderSnapshot is a copy of the current stats for one provider.
type ProviderSnapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) ProviderSnapshot(provider string) ProviderSnapshot {
	if r == nil {
		return ProviderSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.stats[provider]; ok && stats != nil {
		return ProviderSnapshot{
			Calls:           stats.calls,
			Errors:          stats.errors,
			LastCallLatency: stats.lastCallLatency,
		}
	}
	return ProviderSnapshot{}
}

// EngineSnapshot is a copy of the engine-level counters.
type EngineSnapshot struct {
	Cycles         int
	CycleErrors    int
	GamesAnalyzed  int
	GamesSkipped   int
	TicketsEmitted int
	TrialsRun      int64
	LastCycleTime  time.Duration
}

func (r *Recorder) EngineSnapshot() EngineSnapshot {
	if r == nil {
		return EngineSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return EngineSnapshot{
		Cycles:         r.engine.cycles,
		CycleErrors:    r.engine.cycleErrors,
		GamesAnalyzed:  r.engine.gamesAnalyzed,
		GamesSkipped:   r.engine.gamesSkipped,
		TicketsEmitted: r.engine.ticketsEmitted,
		TrialsRun:      r.engine.trialsRun,
		LastCycleTime:  r.engine.lastCycleTime,
	}
}
