package ledger

import "time"

// Movement directions for a transaction record.
const (
	DirectionIn  = "IN"
	DirectionOut = "OUT"
)

// TransactionRecord represents the stock_transaction table: an immutable,
// append-only record of one net stock movement. ItemName is a snapshot taken
// at write time — a later rename does not rewrite history, and records of
// deleted items keep working. ItemID is kept alongside for range queries.
type TransactionRecord struct {
	ID              uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ItemID          string    `gorm:"column:item_id;type:varchar(36);index:idx_txn_item_ts,priority:1" json:"item_id"`
	ItemName        string    `gorm:"column:item_name;type:varchar(255);not null" json:"item_name"`
	Direction       string    `gorm:"column:direction;type:varchar(8);not null" json:"direction"`
	QuantityChanged int       `gorm:"column:quantity_changed;not null" json:"quantity_changed"`
	Timestamp       time.Time `gorm:"column:timestamp;not null;index:idx_txn_item_ts,priority:2" json:"timestamp"`
}

func (TransactionRecord) TableName() string {
	return "stock_transaction"
}
