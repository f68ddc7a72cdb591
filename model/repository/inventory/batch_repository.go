package inventory

import (
	"gorm.io/gorm"

	inventoryEntity "inventify.GO/model/entity/inventory"
)

type BatchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// ListByItem returns an item's batches in receipt order (FIFO order).
func (r *BatchRepository) ListByItem(itemID string) ([]inventoryEntity.Batch, error) {
	var batches []inventoryEntity.Batch
	err := r.db.Where("item_id = ?", itemID).Order("received_at ASC, id ASC").Find(&batches).Error
	return batches, err
}

func (r *BatchRepository) Create(b *inventoryEntity.Batch) error {
	return r.db.Create(b).Error
}

// SumRemaining sums remaining quantity across an item's batches.
func (r *BatchRepository) SumRemaining(itemID string) (int, error) {
	var total int64
	err := r.db.Model(&inventoryEntity.Batch{}).
		Where("item_id = ?", itemID).
		Select("COALESCE(SUM(remaining_qty), 0)").
		Scan(&total).Error
	return int(total), err
}
