package domain

import "time"

// SnapshotVersion tags exported snapshots.
const SnapshotVersion = "3.0.0"

// Snapshot is a complete export of the extraction store — active and
// soft-deleted records — suitable for later bulk re-ingestion.
type Snapshot struct {
	ExportedAt  time.Time    `json:"exported_at"`
	Total       int          `json:"total"`
	Version     string       `json:"version"`
	Extractions []Extraction `json:"extractions"`
}
