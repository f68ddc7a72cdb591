package audit

import (
	"encoding/json"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	auditEntity "inventify.GO/model/entity/audit"
)

func localTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestNewRecorder_MigratesSchema(t *testing.T) {
	db := localTestDB(t)
	r, err := NewRecorder(db)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	if r == nil {
		t.Fatal("NewRecorder returned nil")
	}
	if !db.Migrator().HasTable(&auditEntity.AuditLog{}) {
		t.Error("audit_logs table not created")
	}
}

func TestRecorder_RecordAndList(t *testing.T) {
	db := localTestDB(t)
	r, err := NewRecorder(db)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	err = r.Record(auditEntity.ActionStockIn, "Widget", map[string]interface{}{
		"item_id": "widget", "delta": 3, "quantity": 3,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := r.Record(auditEntity.ActionManualAdjust, "Widget", nil); err != nil {
		t.Fatalf("Record without details: %v", err)
	}

	entries, err := r.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Action != auditEntity.ActionManualAdjust {
		t.Errorf("entries[0].Action = %q, want MANUAL_ADJUST", entries[0].Action)
	}
	if entries[1].ItemName != "Widget" {
		t.Errorf("ItemName = %q, want Widget", entries[1].ItemName)
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("timestamp not set")
	}

	var details map[string]interface{}
	if err := json.Unmarshal(entries[1].Details, &details); err != nil {
		t.Fatalf("details not valid JSON: %v", err)
	}
	if details["delta"] != float64(3) {
		t.Errorf("details.delta = %v, want 3", details["delta"])
	}
}

func TestRecorder_RecordAfterClose(t *testing.T) {
	db := localTestDB(t)
	r, err := NewRecorder(db)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := r.Record(auditEntity.ActionDelete, "Widget", nil); err == nil {
		t.Error("Record after Close should fail")
	}
}
