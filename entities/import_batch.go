package entities

import "time"

// ImportBatch records one CSV upload: who ran it, how many rows landed and
// which ones were skipped. It replaces per-session caching of upload state, so
// export and edit endpoints always read from the store.
type ImportBatch struct {
	BatchID      string    `gorm:"primaryKey" json:"batch_id"` // uuid
	Kind         string    `json:"kind"`                       // traits|schedule|snapshot
	FileName     string    `json:"file_name"`
	RowCount     int       `json:"row_count"`
	SkippedCount int       `json:"skipped_count"`
	Warnings     []string  `gorm:"serializer:json" json:"warnings,omitempty"`
	CreatedBy    *string   `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}
