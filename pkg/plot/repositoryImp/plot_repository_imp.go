package repositoryImp

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smartfield/entities"
	"smartfield/pkg/plot/repository"
)

type plotRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlotRepository { return &plotRepo{db} }

// UpsertBatch inserts or refreshes plots keyed by plant_id. Existing GPS
// coordinates are kept (roster CSVs usually carry no coordinates), and a
// stored planting date is kept when the incoming row has none: a re-import
// with a missing or unparseable date must not degrade stored state.
func (r *plotRepo) UpsertBatch(plots []entities.FieldPlot) error {
	if len(plots) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "plant_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"planting_date": gorm.Expr(`COALESCE(excluded.planting_date, planting_date)`),
			"location":      gorm.Expr(`excluded.location`),
			"block":         gorm.Expr(`excluded.block`),
			"row":           gorm.Expr(`excluded."row"`),
			"column":        gorm.Expr(`excluded."column"`),
			"updated_at":    gorm.Expr(`excluded.updated_at`),
		}),
	}).Create(&plots).Error
}

func (r *plotRepo) List(status, location string, page, pageSize int) ([]entities.FieldPlot, int64, error) {
	q := r.db.Model(&entities.FieldPlot{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if location != "" {
		q = q.Where("location = ?", location)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []entities.FieldPlot
	if pageSize > 0 {
		q = q.Limit(pageSize).Offset(page * pageSize)
	}
	if err := q.Order("plant_id ASC").Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *plotRepo) FindByID(plantID string) (*entities.FieldPlot, error) {
	var p entities.FieldPlot
	if err := r.db.Where("plant_id = ?", plantID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *plotRepo) AssignGPS(plantID string, lat, lon float64) error {
	return r.db.Model(&entities.FieldPlot{}).Where("plant_id = ?", plantID).
		Updates(map[string]any{"latitude": lat, "longitude": lon}).Error
}

func (r *plotRepo) SetStatus(plantID, status string) error {
	return r.db.Model(&entities.FieldPlot{}).Where("plant_id = ?", plantID).
		Update("status", status).Error
}
