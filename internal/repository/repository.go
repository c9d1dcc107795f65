package repository

import "fleetrent/internal/fleet"

// SnapshotStore persists and restores the full manager state.
type SnapshotStore interface {
	// Save writes the snapshot to path, replacing any previous content.
	Save(path string, snap *fleet.Snapshot) error
	// Load reads the snapshot at path. A missing file yields an empty
	// snapshot, not an error.
	Load(path string) (*fleet.Snapshot, error)
}
