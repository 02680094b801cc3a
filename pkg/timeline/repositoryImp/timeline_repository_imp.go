package repositoryImp

import (
	"gorm.io/gorm"

	"smartfield/entities"
	"smartfield/pkg/timeline/repository"
)

type timelineRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.TimelineRepository { return &timelineRepo{db} }

func (r *timelineRepo) ListAll() ([]entities.TraitTimeline, error) {
	var out []entities.TraitTimeline
	err := r.db.Order("plant_id ASC, trait ASC").Find(&out).Error
	return out, err
}

func (r *timelineRepo) List(trait, statusFlag string, page, pageSize int) ([]entities.TraitTimeline, int64, error) {
	q := r.db.Model(&entities.TraitTimeline{})
	if trait != "" {
		q = q.Where("trait = ?", trait)
	}
	if statusFlag != "" {
		q = q.Where("status_flag = ?", statusFlag)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []entities.TraitTimeline
	if pageSize > 0 {
		q = q.Limit(pageSize).Offset(page * pageSize)
	}
	if err := q.Order("plant_id ASC, trait ASC").Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *timelineRepo) Find(plantID, trait string) (*entities.TraitTimeline, error) {
	var row entities.TraitTimeline
	if err := r.db.Where("plant_id = ? AND trait = ?", plantID, trait).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *timelineRepo) Reconcile(rows []entities.TraitTimeline) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing []entities.TraitTimeline
		if err := tx.Find(&existing).Error; err != nil {
			return err
		}
		idByKey := make(map[repository.Key]uint, len(existing))
		for _, e := range existing {
			idByKey[repository.Key{PlantID: e.PlantID, Trait: e.Trait}] = e.ID
		}

		kept := make(map[uint]bool, len(rows))
		for i := range rows {
			row := &rows[i]
			if id, ok := idByKey[repository.Key{PlantID: row.PlantID, Trait: row.Trait}]; ok {
				row.ID = id
				kept[id] = true
			}
			if err := tx.Save(row).Error; err != nil {
				return err
			}
		}

		var stale []uint
		for _, e := range existing {
			if !kept[e.ID] {
				stale = append(stale, e.ID)
			}
		}
		if len(stale) > 0 {
			if err := tx.Delete(&entities.TraitTimeline{}, stale).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *timelineRepo) Save(row *entities.TraitTimeline) error {
	return r.db.Save(row).Error
}

func (r *timelineRepo) Update(plantID, trait string, fn func(*entities.TraitTimeline) error) (*entities.TraitTimeline, error) {
	var row entities.TraitTimeline
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plant_id = ? AND trait = ?", plantID, trait).First(&row).Error; err != nil {
			return err
		}
		if err := fn(&row); err != nil {
			return err
		}
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *timelineRepo) DistinctTraits() ([]string, error) {
	var out []string
	err := r.db.Model(&entities.TraitTimeline{}).Distinct("trait").Order("trait ASC").Pluck("trait", &out).Error
	return out, err
}

func (r *timelineRepo) DistinctPlants() ([]string, error) {
	var out []string
	err := r.db.Model(&entities.TraitTimeline{}).Distinct("plant_id").Order("plant_id ASC").Pluck("plant_id", &out).Error
	return out, err
}

func (r *timelineRepo) CountByFlag() (map[string]int64, error) {
	type bucket struct {
		StatusFlag string
		N          int64
	}
	var buckets []bucket
	err := r.db.Model(&entities.TraitTimeline{}).
		Select("status_flag, count(*) as n").Group("status_flag").Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		counts[b.StatusFlag] = b.N
	}
	return counts, nil
}
