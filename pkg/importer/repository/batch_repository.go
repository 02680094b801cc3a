package repository

import "smartfield/entities"

type BatchRepository interface {
	Save(b *entities.ImportBatch) error
	List(page, pageSize int) ([]entities.ImportBatch, int64, error)
	Find(batchID string) (*entities.ImportBatch, error)
}
