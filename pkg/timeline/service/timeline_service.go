package service

import (
	"errors"
	"time"

	"smartfield/entities"
)

// ErrRebuildInProgress is returned when a rebuild is requested while another
// one is still running. The whole table is replaced per run, so two
// interleaved runs would leave it half-built; callers must retry.
var ErrRebuildInProgress = errors.New("timeline rebuild already in progress")

// Report summarizes one rebuild run: what was generated, what was skipped and
// why. Row-level problems never abort the run; they end up in Warnings.
type Report struct {
	Plots        int      `json:"plots"`
	SkippedPlots int      `json:"skipped_plots"`
	Rows         int      `json:"rows"`
	Warnings     []string `json:"warnings,omitempty"`
	TookMS       int64    `json:"took_ms"`
}

// MatrixRow is one line of the plants-by-traits status table.
type MatrixRow struct {
	PlantID string            `json:"plant_id"`
	Flags   map[string]string `json:"flags"`
}

type Matrix struct {
	Traits []string    `json:"traits"`
	Rows   []MatrixRow `json:"rows"`
}

type TimelineService interface {
	// Rebuild recomputes the whole timeline table from plots, schedule and
	// observations. Safe to re-run at any time; not safe to run concurrently
	// with itself (ErrRebuildInProgress).
	Rebuild(today time.Time, actor *string) (*Report, error)
	// SetActual is the manual correction path: update actual date and note on
	// one (plot, trait) row and re-derive its status only.
	SetActual(plantID, trait string, actualDate *time.Time, note *string, actor *string) (*entities.TraitTimeline, error)
	Matrix() (*Matrix, error)
}
