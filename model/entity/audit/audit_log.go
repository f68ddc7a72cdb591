package audit

import (
	"time"

	"gorm.io/datatypes"
)

// Action kinds recorded in the local audit trail.
const (
	ActionCreate       = "CREATE"
	ActionUpdate       = "UPDATE"
	ActionDelete       = "DELETE"
	ActionStockIn      = "STOCK_IN"
	ActionStockOut     = "STOCK_OUT"
	ActionManualAdjust = "MANUAL_ADJUST"
)

// AuditLog represents the audit_logs table in the device-local database.
// It is a forensic trail, not a ledger dimension: rows reference items only
// by name snapshot and are never joined back to the remote store. Details
// carries free-form JSON (delta, resulting quantity) for later inspection.
type AuditLog struct {
	ID        uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Action    string         `gorm:"column:action;type:varchar(32);not null" json:"action"`
	ItemName  string         `gorm:"column:item_name;type:varchar(255)" json:"item_name"`
	Details   datatypes.JSON `gorm:"column:details" json:"details,omitempty"`
	Timestamp time.Time      `gorm:"column:timestamp;not null;index" json:"timestamp"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
