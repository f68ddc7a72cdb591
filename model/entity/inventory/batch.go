package inventory

import "time"

// Batch represents the inventory_batch table: one receipt of stock.
// OriginalQty never changes after creation; RemainingQty only decreases, down
// to 0 when the batch is exhausted. Exhausted batches are kept for cost/age
// history, and batches of a deleted item stay behind as orphaned history.
type Batch struct {
	ID           string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ItemID       string    `gorm:"column:item_id;type:varchar(36);not null;index:idx_batch_item_received,priority:1" json:"item_id"`
	OriginalQty  int       `gorm:"column:original_qty;not null" json:"original_qty"`
	RemainingQty int       `gorm:"column:remaining_qty;not null" json:"remaining_qty"`
	ReceivedAt   time.Time `gorm:"column:received_at;not null;index:idx_batch_item_received,priority:2" json:"received_at"`
}

func (Batch) TableName() string {
	return "inventory_batch"
}

// Exhausted reports whether the batch has been fully consumed.
func (b *Batch) Exhausted() bool {
	return b.RemainingQty == 0
}
