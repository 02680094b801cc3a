package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"smartfield/entities"
	"smartfield/pkg/observation/repository"
)

type obsRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ObservationRepository { return &obsRepo{db} }

func (r *obsRepo) UpsertLatest(obs *entities.PlantTraitData) error {
	var existing entities.PlantTraitData
	err := r.db.Where("plant_id = ? AND trait = ?", obs.PlantID, obs.Trait).
		Order("timestamp DESC").First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(obs).Error
	}
	if err != nil {
		return err
	}
	obs.ID = existing.ID
	return r.db.Save(obs).Error
}

func (r *obsRepo) Append(obs *entities.PlantTraitData) error {
	return r.db.Create(obs).Error
}

func (r *obsRepo) History(plantID string) ([]entities.PlantTraitData, error) {
	var out []entities.PlantTraitData
	err := r.db.Where("plant_id = ?", plantID).
		Order("trait ASC, timestamp DESC").Find(&out).Error
	return out, err
}

func (r *obsRepo) Latest() (map[repository.Key]entities.PlantTraitData, error) {
	var rows []entities.PlantTraitData
	if err := r.db.Order("timestamp ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	// Ascending order means the last row seen per key is the newest.
	latest := make(map[repository.Key]entities.PlantTraitData, len(rows))
	for _, row := range rows {
		latest[repository.Key{PlantID: row.PlantID, Trait: row.Trait}] = row
	}
	return latest, nil
}

func (r *obsRepo) List(trait string, page, pageSize int) ([]entities.PlantTraitData, int64, error) {
	q := r.db.Model(&entities.PlantTraitData{})
	if trait != "" {
		q = q.Where("trait = ?", trait)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []entities.PlantTraitData
	if pageSize > 0 {
		q = q.Limit(pageSize).Offset(page * pageSize)
	}
	if err := q.Order("timestamp DESC").Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *obsRepo) ValuesForTrait(trait string) ([]string, error) {
	var out []string
	err := r.db.Model(&entities.PlantTraitData{}).Where("trait = ?", trait).
		Pluck("value", &out).Error
	return out, err
}
