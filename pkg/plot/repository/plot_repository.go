package repository

import "smartfield/entities"

type PlotRepository interface {
	UpsertBatch(plots []entities.FieldPlot) error
	List(status, location string, page, pageSize int) ([]entities.FieldPlot, int64, error)
	FindByID(plantID string) (*entities.FieldPlot, error)
	AssignGPS(plantID string, lat, lon float64) error
	SetStatus(plantID, status string) error
}
