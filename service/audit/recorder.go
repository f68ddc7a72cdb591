package audit

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	auditEntity "inventify.GO/model/entity/audit"
)

// Recorder is the device-local audit trail. It owns its own database with a
// separate lifecycle from the remote ledger; the two are never coordinated.
// Each Record call is one single-row insert wrapped in its own transaction,
// matching the source app's local sqlite helper.
type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) (*Recorder, error) {
	if err := db.AutoMigrate(&auditEntity.AuditLog{}); err != nil {
		return nil, err
	}
	return &Recorder{db: db}, nil
}

// Record appends one audit entry. The insert is atomic on its own; it is not
// part of any ledger transaction.
func (r *Recorder) Record(action, itemName string, details map[string]interface{}) error {
	entry := auditEntity.AuditLog{
		Action:    action,
		ItemName:  itemName,
		Timestamp: time.Now(),
	}
	if len(details) > 0 {
		if data, err := json.Marshal(details); err == nil {
			entry.Details = datatypes.JSON(data)
		}
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&entry).Error
	})
}

// List returns all audit entries newest-first.
func (r *Recorder) List() ([]auditEntity.AuditLog, error) {
	var entries []auditEntity.AuditLog
	err := r.db.Order("timestamp DESC, id DESC").Find(&entries).Error
	return entries, err
}

// Close releases the underlying local database handle.
func (r *Recorder) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
