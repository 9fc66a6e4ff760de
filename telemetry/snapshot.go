package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the arena state at a bookmark, for offline inspection.
type Snapshot struct {
	Version int    `json:"version"`
	RunID   string `json:"run_id"`
	Seed    int64  `json:"seed"`

	Time       float64 `json:"time"`
	State      string  `json:"state"`
	Health     int     `json:"health"`
	Difficulty int     `json:"difficulty"`

	Player   EntityState   `json:"player"`
	Hostiles []EntityState `json:"hostiles"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// EntityState holds one entity's transform and shape.
type EntityState struct {
	ID     uint32  `json:"id,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VelX   float64 `json:"vel_x"`
	VelY   float64 `json:"vel_y"`
	Radius float64 `json:"radius"`
	Scale  float64 `json:"scale,omitempty"`
	Rare   bool    `json:"rare,omitempty"`
}

// WriteSnapshot saves a snapshot under the snapshots/ subdirectory of the output directory.
// The file name is derived from the bookmark, or the snapshot time if there is none.
func (om *OutputManager) WriteSnapshot(s *Snapshot) (string, error) {
	if om == nil || s == nil {
		return "", nil
	}
	s.Version = SnapshotVersion
	s.RunID = om.runID

	dir := filepath.Join(om.dir, "snapshots")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating snapshot directory: %w", err)
	}

	path := filepath.Join(dir, snapshotName(s))
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing snapshot: %w", err)
	}
	return path, nil
}

func snapshotName(s *Snapshot) string {
	kind := "manual"
	if s.Bookmark != nil {
		kind = strings.ReplaceAll(string(s.Bookmark.Type), "_", "-")
	}
	return fmt.Sprintf("snap_%08.2f_%s.json", s.Time, kind)
}

// LoadSnapshot reads a snapshot file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", s.Version, SnapshotVersion)
	}
	return &s, nil
}
