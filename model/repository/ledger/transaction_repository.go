package ledger

import (
	"time"

	"gorm.io/gorm"

	ledgerEntity "inventify.GO/model/entity/ledger"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// QueryRange returns transaction records newest-first. itemID narrows to one
// item; zero times disable the corresponding bound. Restarting the sequence
// is a re-query, so callers always observe a fresh snapshot.
func (r *TransactionRepository) QueryRange(itemID string, from, to time.Time) ([]ledgerEntity.TransactionRecord, error) {
	q := r.db.Model(&ledgerEntity.TransactionRecord{})
	if itemID != "" {
		q = q.Where("item_id = ?", itemID)
	}
	if !from.IsZero() {
		q = q.Where("timestamp >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("timestamp <= ?", to)
	}
	var records []ledgerEntity.TransactionRecord
	err := q.Order("timestamp DESC, id DESC").Find(&records).Error
	return records, err
}

// CountByItem returns how many records exist for one item.
func (r *TransactionRepository) CountByItem(itemID string) (int64, error) {
	var n int64
	err := r.db.Model(&ledgerEntity.TransactionRecord{}).Where("item_id = ?", itemID).Count(&n).Error
	return n, err
}
