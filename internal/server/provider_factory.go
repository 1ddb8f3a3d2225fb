package server

import (
	"fmt"
	"log/slog"
	"strings"

	"nba-apex-engine/internal/config"
	"nba-apex-engine/internal/metrics"
	"nba-apex-engine/internal/providers"
	"nba-apex-engine/internal/providers/file"
	"nba-apex-engine/internal/providers/fixture"
)

// buildProvider selects the configured data source and wraps it with retries.
func buildProvider(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) providers.DataProvider {
	base := selectProvider(cfg, logger)
	return providers.NewRetryingProvider(base, logger, recorder, normalizeProviderName(cfg.Provider, base), 0, 0)
}

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch cfg.Provider {
	case "fixture", "":
		return fixture.New()
	case "file":
		return file.New(cfg.Files.DataFile, cfg.Files.OddsFile, cfg.Files.InjuryFile)
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}

// normalizeProviderName returns a lower-cased provider name, deriving from the
// instance when not explicitly configured. Keeps naming consistent in
// metrics/logs.
func normalizeProviderName(raw string, provider providers.DataProvider) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
