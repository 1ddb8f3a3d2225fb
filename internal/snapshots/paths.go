package snapshots

import (
	"fmt"
	"path/filepath"
)

// AnalysisSnapshotPath builds the path to an analysis snapshot for a given date.
func AnalysisSnapshotPath(basePath, date string) string {
	return filepath.Join(basePath, "analysis", fmt.Sprintf("%s.json", date))
}
