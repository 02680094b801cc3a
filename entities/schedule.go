package entities

import "time"

// TraitSchedule defines when a trait becomes due for a crop: the trait is
// expected DaysAfterPlanting days after a plot's planting date. Only active
// rows participate in timeline recomputation. The schedule is replace-only:
// loading a new one deletes the old rows and bulk-inserts the new set.
type TraitSchedule struct {
	ScheduleID        uint   `gorm:"primaryKey" json:"schedule_id"`
	Crop              string `gorm:"index" json:"crop"`
	Trait             string `gorm:"index" json:"trait"`
	DaysAfterPlanting int    `json:"days_after_planting"`
	Active            bool   `json:"active"`

	CreatedAt time.Time
}
