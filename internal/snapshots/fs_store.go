package snapshots

import (
	"encoding/json"
	"fmt"
	"os"

	domaingames "nba-apex-engine/internal/domain/games"
)

// Store loads previously written analysis snapshots.
type Store interface {
	LoadAnalysis(date string) (domaingames.AnalysisResponse, error)
}

// FSStore reads snapshots from the filesystem layout the Writer produces.
type FSStore struct {
	basePath string
}

// NewFSStore constructs a snapshot reader rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadAnalysis reads the snapshot for a date.
func (s *FSStore) LoadAnalysis(date string) (domaingames.AnalysisResponse, error) {
	var resp domaingames.AnalysisResponse
	if s == nil || s.basePath == "" {
		return resp, fmt.Errorf("snapshot store not configured")
	}
	data, err := os.ReadFile(AnalysisSnapshotPath(s.basePath, date))
	if err != nil {
		return resp, err
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return resp, fmt.Errorf("parse snapshot %s: %w", date, err)
	}
	return resp, nil
}
