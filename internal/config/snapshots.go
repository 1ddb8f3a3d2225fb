package config

// SnapshotConfig controls on-disk analysis snapshot behavior.
type SnapshotConfig struct {
	Dir           string
	RetentionDays int
}

func loadSnapshots() SnapshotConfig {
	return SnapshotConfig{
		Dir:           envOrDefault(envSnapshotDir, defaultSnapshotDir),
		RetentionDays: intEnvOrDefault(envSnapshotDays, defaultSnapshotDays),
	}
}
