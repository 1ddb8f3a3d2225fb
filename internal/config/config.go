package config

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	Provider        string
	Trials          int
	PreviewTrials   int
	RefreshSchedule string
	LedgerPath      string
	Files           FileProviderConfig
	Snapshots       SnapshotConfig
	Notify          NotifyConfig
	Metrics         MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		Provider:        envOrDefault(envProvider, defaultProvider),
		Trials:          intEnvOrDefault(envTrials, defaultTrials),
		PreviewTrials:   intEnvOrDefault(envPreviewTrials, defaultPreviewTrials),
		RefreshSchedule: envOrDefault(envRefreshSchedule, defaultRefreshSchedule),
		LedgerPath:      envOrDefault(envLedgerPath, defaultLedgerPath),
		Files:           loadFiles(),
		Snapshots:       loadSnapshots(),
		Notify:          loadNotify(),
		Metrics:         loadMetrics(),
	}
}
