package entities

import "time"

// FieldPlot is one physical trial plot. PlantID is the stable external
// identifier used by uploads, exports and the BrAPI surface.
type FieldPlot struct {
	PlantID      string     `gorm:"primaryKey" json:"plant_id"`
	Latitude     *float64   `json:"latitude"`
	Longitude    *float64   `json:"longitude"`
	PlantingDate *time.Time `json:"planting_date"` // nil: plot excluded from timeline rebuild
	Status       string     `json:"status"`        // cached label, non-authoritative
	Location     string     `json:"location"`
	Block        string     `json:"block"`
	Row          string     `json:"row"`
	Column       string     `json:"column"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
