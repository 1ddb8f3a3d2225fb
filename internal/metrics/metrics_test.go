package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRecordProviderAttempt(t *testing.T) {
	r := NewRecorder()

	r.RecordProviderAttempt("fixture", 10*time.Millisecond, nil)
	r.RecordProviderAttempt("fixture", 20*time.Millisecond, errors.New("boom"))
	r.RecordProviderAttempt("file", 5*time.Millisecond, nil)

	snapshot := r.ProviderSnapshot("fixture")
	if snapshot.Calls != 2 || snapshot.Errors != 1 {
		t.Fatalf("unexpected fixture stats: %+v", snapshot)
	}
	if snapshot.LastCallLatency != 20*time.Millisecond {
		t.Fatalf("expected last latency kept, got %v", snapshot.LastCallLatency)
	}
	if r.ProviderCalls("file") != 1 || r.ProviderErrors("file") != 0 {
		t.Fatalf("unexpected file stats: calls=%d errors=%d", r.ProviderCalls("file"), r.ProviderErrors("file"))
	}
	if r.ProviderCalls("unknown") != 0 {
		t.Fatal("expected zero stats for unknown provider")
	}
}

func TestRecordProviderAttemptConcurrent(t *testing.T) {
	r := NewRecorder()

	// The slate fetch issues four concurrent operations through one named
	// provider; every attempt must land on the shared counters safely.
	const goroutines = 4
	const attempts = 250

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(g int) {
			defer wg.Done()
			for i := 0; i < attempts; i++ {
				var err error
				if g == 0 {
					err = errors.New("boom")
				}
				r.RecordProviderAttempt("fixture", time.Millisecond, err)
			}
		}(g)
	}
	wg.Wait()

	snapshot := r.ProviderSnapshot("fixture")
	if snapshot.Calls != goroutines*attempts {
		t.Fatalf("expected %d calls, got %d", goroutines*attempts, snapshot.Calls)
	}
	if snapshot.Errors != attempts {
		t.Fatalf("expected %d errors, got %d", attempts, snapshot.Errors)
	}
}

func TestEngineSnapshot(t *testing.T) {
	r := NewRecorder()

	r.RecordAnalysisCycle(120*time.Millisecond, 8, 1, nil)
	r.RecordAnalysisCycle(90*time.Millisecond, 0, 0, errors.New("boom"))
	r.RecordSimulation(10000, 40*time.Millisecond)
	r.RecordSimulation(2000, 8*time.Millisecond)
	r.RecordTickets(3)
	r.RecordTickets(0)

	snapshot := r.EngineSnapshot()
	if snapshot.Cycles != 2 || snapshot.CycleErrors != 1 {
		t.Fatalf("unexpected cycle counts: %+v", snapshot)
	}
	if snapshot.GamesAnalyzed != 8 || snapshot.GamesSkipped != 1 {
		t.Fatalf("unexpected game counts: %+v", snapshot)
	}
	if snapshot.TrialsRun != 12000 {
		t.Fatalf("expected 12000 trials, got %d", snapshot.TrialsRun)
	}
	if snapshot.TicketsEmitted != 3 {
		t.Fatalf("expected 3 tickets, got %d", snapshot.TicketsEmitted)
	}
	if snapshot.LastCycleTime != 90*time.Millisecond {
		t.Fatalf("expected last cycle time kept, got %v", snapshot.LastCycleTime)
	}
}

func TestHTTPRequestCount(t *testing.T) {
	r := NewRecorder()

	r.RecordHTTPRequest("GET", "/analysis", 200, time.Millisecond)
	r.RecordHTTPRequest("POST", "/bets/abc/grade", 404, time.Millisecond)

	if got := r.HTTPRequestCount(); got != 2 {
		t.Fatalf("expected 2 requests, got %d", got)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder

	r.RecordProviderAttempt("fixture", time.Millisecond, nil)
	r.RecordAnalysisCycle(time.Millisecond, 1, 0, nil)
	r.RecordSimulation(100, time.Millisecond)
	r.RecordTickets(1)
	r.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)

	if r.ProviderCalls("fixture") != 0 {
		t.Fatal("expected zero calls from nil recorder")
	}
	if r.HTTPRequestCount() != 0 {
		t.Fatal("expected zero requests from nil recorder")
	}
	if snapshot := r.EngineSnapshot(); snapshot.Cycles != 0 {
		t.Fatalf("expected zero engine snapshot, got %+v", snapshot)
	}
}
