package repository

import "smartfield/entities"

type ScheduleRepository interface {
	// ReplaceAll swaps the whole schedule in one transaction: delete then
	// bulk-insert. There is no partial update path.
	ReplaceAll(rows []entities.TraitSchedule) error
	List(crop string, activeOnly bool) ([]entities.TraitSchedule, error)
	// ActiveOffsets maps trait name to days-after-planting for active rows.
	// Duplicate active rows for one trait are not deduplicated here; keeping
	// the schedule clean is the loader's job.
	ActiveOffsets() (map[string]int, error)
	Crops() ([]string, error)
	SetActive(scheduleID uint, active bool) error
}
