package reconcile

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	inventoryEntity "inventify.GO/model/entity/inventory"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&inventoryEntity.InventoryItem{}, &inventoryEntity.Batch{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCheck_ReportsOnlyDriftedItems(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	// Consistent: quantity 8, batches 5 + 3.
	db.Create(&inventoryEntity.InventoryItem{ID: "ok", Name: "Fine", Quantity: 8})
	db.Create(&inventoryEntity.Batch{ID: "ok-1", ItemID: "ok", OriginalQty: 5, RemainingQty: 5, ReceivedAt: now})
	db.Create(&inventoryEntity.Batch{ID: "ok-2", ItemID: "ok", OriginalQty: 3, RemainingQty: 3, ReceivedAt: now})

	// Drifted: quantity says 10, batches hold 4.
	db.Create(&inventoryEntity.InventoryItem{ID: "bad", Name: "Drifted", Quantity: 10})
	db.Create(&inventoryEntity.Batch{ID: "bad-1", ItemID: "bad", OriginalQty: 4, RemainingQty: 4, ReceivedAt: now})

	// Drifted: quantity with no batches at all.
	db.Create(&inventoryEntity.InventoryItem{ID: "empty", Name: "NoBatches", Quantity: 2})

	drifts, err := Check(db)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(drifts) != 2 {
		t.Fatalf("drifts = %d, want 2: %+v", len(drifts), drifts)
	}

	byID := map[string]Drift{}
	for _, d := range drifts {
		byID[d.ItemID] = d
	}
	if d, ok := byID["bad"]; !ok || d.Quantity != 10 || d.BatchSum != 4 {
		t.Errorf("bad drift = %+v, want quantity 10 batch_sum 4", byID["bad"])
	}
	if d, ok := byID["empty"]; !ok || d.Quantity != 2 || d.BatchSum != 0 {
		t.Errorf("empty drift = %+v, want quantity 2 batch_sum 0", byID["empty"])
	}
}

func TestCheck_CleanLedger(t *testing.T) {
	db := testDB(t)
	db.Create(&inventoryEntity.InventoryItem{ID: "zero", Name: "Zero", Quantity: 0})

	drifts, err := Check(db)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(drifts) != 0 {
		t.Errorf("drifts = %+v, want none", drifts)
	}
}
