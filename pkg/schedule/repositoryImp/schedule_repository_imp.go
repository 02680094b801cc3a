package repositoryImp

import (
	"gorm.io/gorm"

	"smartfield/entities"
	"smartfield/pkg/schedule/repository"
)

type schedRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ScheduleRepository { return &schedRepo{db} }

func (r *schedRepo) ReplaceAll(rows []entities.TraitSchedule) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&entities.TraitSchedule{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func (r *schedRepo) List(crop string, activeOnly bool) ([]entities.TraitSchedule, error) {
	q := r.db.Model(&entities.TraitSchedule{})
	if crop != "" {
		q = q.Where("crop = ?", crop)
	}
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var out []entities.TraitSchedule
	if err := q.Order("crop ASC, days_after_planting ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *schedRepo) ActiveOffsets() (map[string]int, error) {
	rows, err := r.List("", true)
	if err != nil {
		return nil, err
	}
	offsets := make(map[string]int, len(rows))
	for _, s := range rows {
		offsets[s.Trait] = s.DaysAfterPlanting
	}
	return offsets, nil
}

func (r *schedRepo) Crops() ([]string, error) {
	var out []string
	err := r.db.Model(&entities.TraitSchedule{}).Distinct("crop").Order("crop ASC").Pluck("crop", &out).Error
	return out, err
}

func (r *schedRepo) SetActive(scheduleID uint, active bool) error {
	return r.db.Model(&entities.TraitSchedule{}).Where("schedule_id = ?", scheduleID).
		Update("active", active).Error
}
