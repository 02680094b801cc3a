package repositoryImp

import (
	"gorm.io/gorm"

	"smartfield/entities"
	"smartfield/pkg/importer/repository"
)

type batchRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.BatchRepository { return &batchRepo{db} }

func (r *batchRepo) Save(b *entities.ImportBatch) error { return r.db.Create(b).Error }

func (r *batchRepo) List(page, pageSize int) ([]entities.ImportBatch, int64, error) {
	var total int64
	if err := r.db.Model(&entities.ImportBatch{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	q := r.db.Order("created_at DESC")
	if pageSize > 0 {
		q = q.Limit(pageSize).Offset(page * pageSize)
	}
	var out []entities.ImportBatch
	if err := q.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *batchRepo) Find(batchID string) (*entities.ImportBatch, error) {
	var b entities.ImportBatch
	if err := r.db.Where("batch_id = ?", batchID).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}
