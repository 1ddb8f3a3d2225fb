package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	domaingames "nba-apex-engine/internal/domain/games"
	"nba-apex-engine/internal/domain/odds"
	"nba-apex-engine/internal/domain/players"
	"nba-apex-engine/internal/metrics"
)

type flakyProvider struct {
	failures int
	calls    int
}

func (f *flakyProvider) FetchSchedule(ctx context.Context, date string) ([]domaingames.ScheduledGame, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("transient failure")
	}
	return []domaingames.ScheduledGame{{ID: "game-1"}}, nil
}

func (f *flakyProvider) FetchPlayerStats(ctx context.Context) ([]players.Player, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("transient failure")
	}
	return []players.Player{{ID: "p1"}}, nil
}

func (f *flakyProvider) FetchMarketOdds(ctx context.Context, date string) (map[string]odds.MarketOdds, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("transient failure")
	}
	return map[string]odds.MarketOdds{}, nil
}

func (f *flakyProvider) FetchInjuries(ctx context.Context) ([]players.InjuryReport, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("transient failure")
	}
	return nil, nil
}

func TestRetryingProviderRecoversFromTransientErrors(t *testing.T) {
	inner := &flakyProvider{failures: 2}
	provider := NewRetryingProvider(inner, nil, nil, "flaky", 3, time.Millisecond)

	games, err := provider.FetchSchedule(context.Background(), "2026-01-15")
	if err != nil {
		t.Fatalf("expected recovery within retries, got %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected one game, got %d", len(games))
	}
	if inner.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", inner.calls)
	}
}

func TestRetryingProviderExhaustsAttempts(t *testing.T) {
	inner := &flakyProvider{failures: 10}
	provider := NewRetryingProvider(inner, nil, nil, "flaky", 3, time.Millisecond)

	if _, err := provider.FetchPlayerStats(context.Background()); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if inner.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", inner.calls)
	}
}

func TestRetryingProviderRecordsAttempts(t *testing.T) {
	inner := &flakyProvider{failures: 1}
	recorder := metrics.NewRecorder()
	provider := NewRetryingProvider(inner, nil, recorder, "flaky", 3, time.Millisecond)

	if _, err := provider.FetchInjuries(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := recorder.ProviderCalls("flaky"); got != 2 {
		t.Fatalf("expected 2 recorded attempts, got %d", got)
	}
	if got := recorder.ProviderErrors("flaky"); got != 1 {
		t.Fatalf("expected 1 recorded error, got %d", got)
	}
}

func TestRetryingProviderHonorsContextCancellation(t *testing.T) {
	inner := &flakyProvider{failures: 10}
	provider := NewRetryingProvider(inner, nil, nil, "flaky", 5, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := provider.FetchMarketOdds(ctx, "2026-01-15"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestRetryingProviderDefaults(t *testing.T) {
	inner := &flakyProvider{failures: 10}
	provider := NewRetryingProvider(inner, nil, nil, "flaky", 0, 0)

	start := time.Now()
	_, err := provider.FetchInjuries(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	// Default linear backoff: 200ms + 400ms between three attempts.
	if elapsed := time.Since(start); elapsed < 500*time.Millisecond {
		t.Fatalf("expected default backoff applied, finished in %v", elapsed)
	}
	if inner.calls != defaultRetryAttempts {
		t.Fatalf("expected %d attempts, got %d", defaultRetryAttempts, inner.calls)
	}
}
