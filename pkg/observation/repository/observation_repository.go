package repository

import "smartfield/entities"

// Key identifies one (plot, trait) pair in lookups.
type Key struct {
	PlantID string
	Trait   string
}

type ObservationRepository interface {
	// UpsertLatest overwrites the newest row for (plant_id, trait), creating
	// it when absent. Bulk flows go through this.
	UpsertLatest(obs *entities.PlantTraitData) error
	// Append always adds a history row.
	Append(obs *entities.PlantTraitData) error
	// History returns all rows for a plot, grouped by trait, newest first.
	History(plantID string) ([]entities.PlantTraitData, error)
	// Latest returns the newest row per (plot, trait) for the recompute job.
	Latest() (map[Key]entities.PlantTraitData, error)
	List(trait string, page, pageSize int) ([]entities.PlantTraitData, int64, error)
	ValuesForTrait(trait string) ([]string, error)
}
