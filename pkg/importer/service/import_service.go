package service

import (
	"io"

	"smartfield/entities"
	timeline "smartfield/pkg/timeline/service"
)

// TraitResult is what the upload screen shows after a trait CSV lands:
// the persisted batch, per-trait flag counts under the windowed policy, plot
// completeness buckets and the rebuild report.
type TraitResult struct {
	Batch         entities.ImportBatch      `json:"batch"`
	TraitSummary  map[string]map[string]int `json:"trait_summary"`
	PlotsComplete int                       `json:"plots_complete"`
	PlotsPartial  int                       `json:"plots_partial"`
	PlotsEmpty    int                       `json:"plots_empty"`
	Rebuild       *timeline.Report          `json:"rebuild,omitempty"`
}

type ImportService interface {
	// ImportTraitCSV ingests the wide per-plot sheet (plant_id, planting_date
	// and one column per trait), upserts plots and latest observations,
	// persists the batch and triggers a full timeline rebuild. Malformed rows
	// are skipped and reported, never fatal.
	ImportTraitCSV(r io.Reader, fileName string, actor *string) (*TraitResult, error)
	// ImportScheduleCSV replaces the whole trait schedule
	// (crop,trait,days_after_planting,active). Rows with negative or
	// non-numeric offsets are rejected individually.
	ImportScheduleCSV(r io.Reader, fileName string, actor *string) (*entities.ImportBatch, error)
	// ImportSnapshotCSV ingests Trait,Value pairs for one plot.
	ImportSnapshotCSV(plantID string, r io.Reader, fileName string, actor *string) (*entities.ImportBatch, error)
	Batches(page, pageSize int) ([]entities.ImportBatch, int64, error)
	Batch(batchID string) (*entities.ImportBatch, error)
}
