package entities

import "time"

// TraitTimeline is the denormalized per-(plot, trait) due/actual/status
// snapshot. The whole table is a cache: the recompute job rebuilds it from
// FieldPlot + TraitSchedule + PlantTraitData. Manual edits to ActualDate and
// Note survive a rebuild; ExpectedDate and StatusFlag are always re-derived.
type TraitTimeline struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	PlantID      string     `gorm:"uniqueIndex:idx_timeline_plant_trait" json:"plant_id"`
	Trait        string     `gorm:"uniqueIndex:idx_timeline_plant_trait" json:"trait"`
	ExpectedDate *time.Time `json:"expected_date"`
	ActualDate   *time.Time `json:"actual_date"`
	StatusFlag   string     `gorm:"index" json:"status_flag"` // one of status.Flag values
	Note         string     `json:"note"`
	EnteredBy    *string    `json:"entered_by"`
	UpdatedOn    time.Time  `gorm:"autoUpdateTime" json:"updated_on"`
}
