package providers

import (
	"context"
	"log/slog"
	"time"

	domaingames "nba-apex-engine/internal/domain/games"
	"nba-apex-engine/internal/domain/odds"
	"nba-apex-engine/internal/domain/players"
	"nba-apex-engine/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a DataProvider with retry/backoff behavior on every
// fetch operation.
type retryingProvider struct {
	inner       DataProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	name        string
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		name:        name,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) FetchSchedule(ctx context.Context, date string) ([]domaingames.ScheduledGame, error) {
	return fetchWithRetry(ctx, r, "schedule", func() ([]domaingames.ScheduledGame, error) {
		return r.inner.FetchSchedule(ctx, date)
	})
}

func (r *retryingProvider) FetchPlayerStats(ctx context.Context) ([]players.Player, error) {
	return fetchWithRetry(ctx, r, "player_stats", func() ([]players.Player, error) {
		return r.inner.FetchPlayerStats(ctx)
	})
}

func (r *retryingProvider) FetchMarketOdds(ctx context.Context, date string) (map[string]odds.MarketOdds, error) {
	return fetchWithRetry(ctx, r, "market_odds", func() (map[string]odds.MarketOdds, error) {
		return r.inner.FetchMarketOdds(ctx, date)
	})
}

func (r *retryingProvider) FetchInjuries(ctx context.Context) ([]players.InjuryReport, error) {
	return fetchWithRetry(ctx, r, "injuries", func() ([]players.InjuryReport, error) {
		return r.inner.FetchInjuries(ctx)
	})
}

func fetchWithRetry[T any](ctx context.Context, r *retryingProvider, op string, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		result, err := fn()
		if r.metrics != nil {
			r.metrics.RecordProviderAttempt(r.name, time.Since(start), err)
		}
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}

		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider fetch retry",
			"op", op, "attempt", attempt, "max_attempts", r.maxAttempts, "err", err)

		// backoff with context awareness
		delay := r.backoffFn(attempt)
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider fetch failed",
		"op", op, "attempts", r.maxAttempts, "err", lastErr)
	return zero, lastErr
}
