package config

const (
	envPort            = "PORT"
	envProvider        = "PROVIDER"
	envTrials          = "SIM_TRIALS"
	envPreviewTrials   = "SIM_PREVIEW_TRIALS"
	envRefreshSchedule = "REFRESH_SCHEDULE"
	envLedgerPath      = "LEDGER_PATH"
	envDataFile        = "DATA_FILE"
	envOddsFile        = "ODDS_FILE"
	envInjuryFile      = "INJURY_FILE"
	envSnapshotDir     = "SNAPSHOT_DIR"
	envSnapshotDays    = "SNAPSHOT_RETENTION_DAYS"
	envSlackWebhook    = "SLACK_WEBHOOK_URL"
	envDiscordWebhook  = "DISCORD_WEBHOOK_URL"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort     = "4000"
	defaultProvider = "fixture"
	// Full-run trial count balances tail accuracy against slate latency;
	// the preview count keeps what-if requests interactive.
	defaultTrials        = 10000
	defaultPreviewTrials = 2000
	// Re-analysis cadence; injury news and line moves rarely warrant faster.
	defaultRefreshSchedule = "@every 30m"
	defaultLedgerPath      = "data/ledger.db"
	defaultDataFile        = "data/apex_db.json"
	defaultSnapshotDir     = "data/snapshots"
	defaultSnapshotDays    = 14
	defaultMetricsPort     = "9090"
)
