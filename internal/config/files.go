package config

// FileProviderConfig points the file provider at its input documents.
// The odds and injury files are optional; the provider degrades without them.
type FileProviderConfig struct {
	DataFile   string
	OddsFile   string
	InjuryFile string
}

func loadFiles() FileProviderConfig {
	return FileProviderConfig{
		DataFile:   envOrDefault(envDataFile, defaultDataFile),
		OddsFile:   envOrDefault(envOddsFile, ""),
		InjuryFile: envOrDefault(envInjuryFile, ""),
	}
}
