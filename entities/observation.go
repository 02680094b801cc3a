package entities

import "time"

// PlantTraitData is one recorded value for a (plot, trait) pair. History rows
// are allowed; bulk flows upsert the latest row per (plant_id, trait) and the
// history view orders by timestamp descending.
type PlantTraitData struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlantID    string    `gorm:"index:idx_obs_plant_trait" json:"plant_id"`
	Trait      string    `gorm:"index:idx_obs_plant_trait" json:"trait"`
	Value      string    `json:"value"`
	Timestamp  time.Time `gorm:"autoUpdateTime" json:"timestamp"`
	UploadedBy *string   `json:"uploaded_by"`
}
