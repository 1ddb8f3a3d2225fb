package snapshots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	domaingames "nba-apex-engine/internal/domain/games"
	"nba-apex-engine/internal/timeutil"
)

// Writer persists per-date analysis snapshots with a rolling retention window.
type Writer struct {
	basePath      string
	retentionDays int
}

// NewWriter constructs a writer rooted at basePath.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = 14
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
	}
}

// BasePath exposes the writer root path (primarily for testing).
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteAnalysisSnapshot writes the analysis snapshot for the given date
// (YYYY-MM-DD) atomically and prunes snapshots outside the retention window.
func (w *Writer) WriteAnalysisSnapshot(date string, snapshot domaingames.AnalysisResponse) error {
	if w == nil {
		return fmt.Errorf("snapshot writer not configured")
	}
	if date == "" {
		return fmt.Errorf("date required")
	}
	if snapshot.Date == "" {
		snapshot.Date = date
	}
	sort.Slice(snapshot.Games, func(i, j int) bool {
		return snapshot.Games[i].GameID < snapshot.Games[j].GameID
	})

	target := AnalysisSnapshotPath(w.basePath, date)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	// Skip the write when nothing changed to keep mtimes meaningful.
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return nil
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		return err
	}

	return w.prune(date)
}

// prune removes snapshots older than the retention window relative to date.
func (w *Writer) prune(date string) error {
	anchor, err := timeutil.ParseDate(date)
	if err != nil {
		return nil
	}
	cutoff := anchor.AddDate(0, 0, -w.retentionDays)

	dir := filepath.Join(w.basePath, "analysis")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		name := entry.Name()
		if filepath.Ext(name) != ".json" {
			continue
		}
		day, err := timeutil.ParseDate(name[:len(name)-len(".json")])
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, name))
		}
	}
	return nil
}
