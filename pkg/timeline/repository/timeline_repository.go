package repository

import "smartfield/entities"

// Key identifies one timeline row; the table is unique per (plant_id, trait).
type Key struct {
	PlantID string
	Trait   string
}

type TimelineRepository interface {
	ListAll() ([]entities.TraitTimeline, error)
	List(trait, statusFlag string, page, pageSize int) ([]entities.TraitTimeline, int64, error)
	Find(plantID, trait string) (*entities.TraitTimeline, error)
	// Reconcile replaces the table contents with rows in one transaction:
	// existing keys are updated in place, new keys inserted, and keys not
	// present in rows deleted. Rebuilding this way instead of delete-then-
	// insert keeps row identity stable for surviving pairs.
	Reconcile(rows []entities.TraitTimeline) error
	Save(row *entities.TraitTimeline) error
	// Update runs fn on the current committed row for (plantID, trait) and
	// saves the result, all inside one transaction.
	Update(plantID, trait string, fn func(*entities.TraitTimeline) error) (*entities.TraitTimeline, error)
	DistinctTraits() ([]string, error)
	DistinctPlants() ([]string, error)
	CountByFlag() (map[string]int64, error)
}
