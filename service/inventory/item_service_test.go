package inventory

import (
	"errors"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	auditEntity "inventify.GO/model/entity/audit"
	inventoryEntity "inventify.GO/model/entity/inventory"
	ledgerEntity "inventify.GO/model/entity/ledger"
	"inventify.GO/service/ledger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&inventoryEntity.InventoryItem{},
		&inventoryEntity.Batch{},
		&ledgerEntity.TransactionRecord{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type memorySink struct {
	mu      sync.Mutex
	actions []string
}

func (s *memorySink) Record(action, itemName string, details map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, action)
	return nil
}

func newService(t *testing.T, db *gorm.DB, sink ledger.AuditSink) *ItemService {
	t.Helper()
	svc, err := NewItemService(db, sink)
	if err != nil {
		t.Fatalf("NewItemService: %v", err)
	}
	return svc
}

func TestCreate_WithInitialQuantity(t *testing.T) {
	db := testDB(t)
	sink := &memorySink{}
	svc := newService(t, db, sink)

	item := &inventoryEntity.InventoryItem{Name: "Widget", Quantity: 9}
	if err := svc.Create(item); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.ID == "" {
		t.Error("ID not assigned")
	}
	if item.DateAdded == "" {
		t.Error("DateAdded not defaulted")
	}

	// The initial quantity arrives as one batch.
	var batch inventoryEntity.Batch
	if err := db.Where("item_id = ?", item.ID).First(&batch).Error; err != nil {
		t.Fatalf("initial batch: %v", err)
	}
	if batch.OriginalQty != 9 || batch.RemainingQty != 9 {
		t.Errorf("batch = %d/%d, want 9/9", batch.RemainingQty, batch.OriginalQty)
	}

	if len(sink.actions) != 1 || sink.actions[0] != auditEntity.ActionCreate {
		t.Errorf("audit actions = %v, want [CREATE]", sink.actions)
	}
}

func TestCreate_ZeroQuantityHasNoBatch(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db, nil)

	item := &inventoryEntity.InventoryItem{Name: "Empty"}
	if err := svc.Create(item); err != nil {
		t.Fatalf("Create: %v", err)
	}

	var count int64
	db.Model(&inventoryEntity.Batch{}).Where("item_id = ?", item.ID).Count(&count)
	if count != 0 {
		t.Errorf("batches = %d, want 0", count)
	}
}

func TestCreate_Validation(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db, nil)

	if err := svc.Create(&inventoryEntity.InventoryItem{Quantity: 1}); !errors.Is(err, ledger.ErrValidation) {
		t.Errorf("nameless create: err = %v, want ErrValidation", err)
	}
	if err := svc.Create(&inventoryEntity.InventoryItem{Name: "X", Quantity: -1}); !errors.Is(err, ledger.ErrValidation) {
		t.Errorf("negative quantity: err = %v, want ErrValidation", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db, nil)

	if _, err := svc.Get("ghost"); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdate_IgnoresQuantity(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db, nil)

	item := &inventoryEntity.InventoryItem{Name: "Widget", Quantity: 5}
	if err := svc.Create(item); err != nil {
		t.Fatalf("Create: %v", err)
	}

	edit := &inventoryEntity.InventoryItem{
		ID:       item.ID,
		Name:     "Widget Pro",
		Category: "Tools",
		Price:    19.99,
		MinStock: 2,
		Quantity: 999,
	}
	if err := svc.Update(edit); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := svc.Get(item.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Widget Pro" || got.Category != "Tools" || got.Price != 19.99 {
		t.Errorf("attributes not updated: %+v", got)
	}
	if got.Quantity != 5 {
		t.Errorf("quantity = %d, want 5 (only the ledger changes quantity)", got.Quantity)
	}
}

func TestDelete_LeavesHistoryBehind(t *testing.T) {
	db := testDB(t)
	sink := &memorySink{}
	svc := newService(t, db, sink)

	item := &inventoryEntity.InventoryItem{Name: "Widget", Quantity: 7}
	if err := svc.Create(item); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := svc.Get(item.ID); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("deleted item still readable: %v", err)
	}

	// Batches survive as orphaned history.
	var batches int64
	db.Model(&inventoryEntity.Batch{}).Where("item_id = ?", item.ID).Count(&batches)
	if batches != 1 {
		t.Errorf("batches = %d, want 1", batches)
	}

	// A final OUT record snapshots the quantity under the deleted label.
	var record ledgerEntity.TransactionRecord
	if err := db.Where("item_id = ?", item.ID).First(&record).Error; err != nil {
		t.Fatalf("final record: %v", err)
	}
	if record.ItemName != "Deleted: Widget" {
		t.Errorf("ItemName = %q, want %q", record.ItemName, "Deleted: Widget")
	}
	if record.Direction != ledgerEntity.DirectionOut || record.QuantityChanged != 7 {
		t.Errorf("record = %+v, want OUT 7", record)
	}

	want := []string{auditEntity.ActionCreate, auditEntity.ActionDelete}
	if len(sink.actions) != 2 || sink.actions[0] != want[0] || sink.actions[1] != want[1] {
		t.Errorf("audit actions = %v, want %v", sink.actions, want)
	}
}

func TestLowStock(t *testing.T) {
	db := testDB(t)
	svc := newService(t, db, nil)

	for _, seed := range []struct {
		name     string
		qty      int
		minStock int
	}{
		{"Plenty", 50, 5},
		{"AtEdge", 5, 5},
		{"Below", 1, 5},
	} {
		item := &inventoryEntity.InventoryItem{Name: seed.name, Quantity: seed.qty, MinStock: seed.minStock}
		if err := svc.Create(item); err != nil {
			t.Fatalf("Create %s: %v", seed.name, err)
		}
	}

	low, err := svc.LowStock()
	if err != nil {
		t.Fatalf("LowStock: %v", err)
	}
	if len(low) != 2 {
		t.Fatalf("low stock items = %d, want 2", len(low))
	}
	// Ordered by quantity ascending.
	if low[0].Name != "Below" || low[1].Name != "AtEdge" {
		t.Errorf("low = [%s, %s], want [Below, AtEdge]", low[0].Name, low[1].Name)
	}
}
