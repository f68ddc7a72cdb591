package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	inventoryEntity "inventify.GO/model/entity/inventory"
	ledgerEntity "inventify.GO/model/entity/ledger"
	inventorySvc "inventify.GO/service/inventory"
)

func testService(t *testing.T) (*inventorySvc.ItemService, *gorm.DB) {
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
	svc, err := inventorySvc.NewItemService(db, nil)
	if err != nil {
		t.Fatalf("NewItemService: %v", err)
	}
	return svc, db
}

func TestDecodeItem_WeakTypingAndDefaults(t *testing.T) {
	item, err := DecodeItem(map[string]interface{}{
		"name":     "  Soap  ",
		"quantity": "42",
		"price":    "3.50",
	})
	if err != nil {
		t.Fatalf("DecodeItem: %v", err)
	}
	if item.Name != "Soap" {
		t.Errorf("Name = %q, want Soap", item.Name)
	}
	if item.Quantity != 42 {
		t.Errorf("Quantity = %d, want 42 (weak string decode)", item.Quantity)
	}
	if item.Price != 3.5 {
		t.Errorf("Price = %v, want 3.5", item.Price)
	}
	if item.MinStock != DefaultMinStock {
		t.Errorf("MinStock = %d, want default %d", item.MinStock, DefaultMinStock)
	}
	if item.DateAdded != time.Now().Format("2006-01-02") {
		t.Errorf("DateAdded = %q, want today", item.DateAdded)
	}
}

func TestDecodeItem_ExplicitZeroMinStockKept(t *testing.T) {
	item, err := DecodeItem(map[string]interface{}{
		"name":      "Soap",
		"min_stock": 0,
	})
	if err != nil {
		t.Fatalf("DecodeItem: %v", err)
	}
	if item.MinStock != 0 {
		t.Errorf("MinStock = %d, want 0 (explicit zero is not a missing field)", item.MinStock)
	}
}

func TestDecodeItem_MissingName(t *testing.T) {
	if _, err := DecodeItem(map[string]interface{}{"quantity": 1}); err == nil {
		t.Error("expected error for document without name")
	}
	if _, err := DecodeItem(map[string]interface{}{"name": "   "}); err == nil {
		t.Error("expected error for blank name")
	}
}

func TestDecodeItem_NegativeQuantity(t *testing.T) {
	if _, err := DecodeItem(map[string]interface{}{"name": "Soap", "quantity": -3}); err == nil {
		t.Error("expected error for negative quantity")
	}
}

func TestImportDocuments_SkipsBadDocs(t *testing.T) {
	svc, db := testService(t)

	res := ImportDocuments(svc, []map[string]interface{}{
		{"name": "Soap", "quantity": 10},
		{"quantity": 5},
		{"name": "Brush", "quantity": "not-a-number"},
		{"name": "Towel"},
	})
	if res.Imported != 2 {
		t.Errorf("Imported = %d, want 2", res.Imported)
	}
	if res.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", res.Skipped)
	}
	if len(res.Warnings) != 2 {
		t.Errorf("Warnings = %v, want 2 entries", res.Warnings)
	}

	var count int64
	db.Model(&inventoryEntity.InventoryItem{}).Count(&count)
	if count != 2 {
		t.Errorf("items persisted = %d, want 2", count)
	}

	// Initial quantity arrives as a batch, so the ledger starts consistent.
	var batch inventoryEntity.Batch
	var soap inventoryEntity.InventoryItem
	db.Where("name = ?", "Soap").First(&soap)
	if err := db.Where("item_id = ?", soap.ID).First(&batch).Error; err != nil {
		t.Fatalf("initial batch: %v", err)
	}
	if batch.RemainingQty != 10 {
		t.Errorf("initial batch remaining = %d, want 10", batch.RemainingQty)
	}
}

func TestImportCSV(t *testing.T) {
	svc, db := testService(t)

	csvData := strings.Join([]string{
		"name,category,quantity,price,min_stock",
		"Soap,Bath,12,2.5,3",
		"Towel,Bath,,4.0,",
		",Bath,1,1.0,1",
	}, "\n")

	res, err := ImportCSV(svc, strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if res.Imported != 2 {
		t.Errorf("Imported = %d, want 2", res.Imported)
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1 (nameless row)", res.Skipped)
	}

	var soap inventoryEntity.InventoryItem
	if err := db.Where("name = ?", "Soap").First(&soap).Error; err != nil {
		t.Fatalf("Soap not imported: %v", err)
	}
	if soap.Quantity != 12 || soap.MinStock != 3 || soap.Category != "Bath" {
		t.Errorf("Soap = %+v, want qty 12, min_stock 3, category Bath", soap)
	}

	var towel inventoryEntity.InventoryItem
	if err := db.Where("name = ?", "Towel").First(&towel).Error; err != nil {
		t.Fatalf("Towel not imported: %v", err)
	}
	if towel.Quantity != 0 {
		t.Errorf("Towel quantity = %d, want 0 (empty cell)", towel.Quantity)
	}
	if towel.MinStock != DefaultMinStock {
		t.Errorf("Towel min_stock = %d, want default %d", towel.MinStock, DefaultMinStock)
	}
}

func TestImportCSV_BadHeader(t *testing.T) {
	svc, _ := testService(t)
	if _, err := ImportCSV(svc, strings.NewReader("")); err == nil {
		t.Error("expected error for empty CSV stream")
	}
}
