package inventory

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	auditEntity "inventify.GO/model/entity/audit"
	inventoryEntity "inventify.GO/model/entity/inventory"
	ledgerEntity "inventify.GO/model/entity/ledger"
	inventoryRepo "inventify.GO/model/repository/inventory"
	"inventify.GO/service/ledger"
)

// SearchIndex is the optional search backend hook. Indexing is best-effort:
// failures are logged, never returned to the caller.
type SearchIndex interface {
	IndexItem(item *inventoryEntity.InventoryItem) error
	DeleteItem(id string) error
}

// ItemService owns the item lifecycle: creation with its initial batch,
// attribute edits, and deletion. Quantity changes are not its business —
// those go through the stock ledger only.
type ItemService struct {
	db    *gorm.DB
	items *inventoryRepo.ItemRepository
	audit ledger.AuditSink
	Index SearchIndex
}

func NewItemService(db *gorm.DB, sink ledger.AuditSink) (*ItemService, error) {
	items, err := inventoryRepo.NewItemRepository(db)
	if err != nil {
		return nil, err
	}
	return &ItemService{db: db, items: items, audit: sink}, nil
}

// Create persists a new item and, when the initial quantity is positive, its
// first batch — both in one transaction so the reconciliation invariant holds
// from the very first write.
func (s *ItemService) Create(item *inventoryEntity.InventoryItem) error {
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", ledger.ErrValidation)
	}
	if item.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be non-negative", ledger.ErrValidation)
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.DateAdded == "" {
		item.DateAdded = time.Now().Format("2006-01-02")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		if item.Quantity > 0 {
			batch := inventoryEntity.Batch{
				ID:           uuid.NewString(),
				ItemID:       item.ID,
				OriginalQty:  item.Quantity,
				RemainingQty: item.Quantity,
				ReceivedAt:   time.Now(),
			}
			if err := tx.Create(&batch).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrStorageUnavailable, err)
	}

	s.recordAudit(auditEntity.ActionCreate, item.Name, map[string]interface{}{
		"item_id": item.ID, "quantity": item.Quantity,
	})
	s.reindex(item)
	return nil
}

// Get returns one item.
func (s *ItemService) Get(id string) (*inventoryEntity.InventoryItem, error) {
	item, err := s.items.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ledger.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ledger.ErrStorageUnavailable, err)
	}
	return item, nil
}

// List returns all items.
func (s *ItemService) List() ([]inventoryEntity.InventoryItem, error) {
	return s.items.FindAll()
}

// LowStock returns items at or below their minimum-stock threshold.
func (s *ItemService) LowStock() ([]inventoryEntity.InventoryItem, error) {
	return s.items.FindLowStock()
}

// Update writes the editable attributes (name, category, pricing, threshold,
// barcode). The on-hand quantity is ignored even if the caller set it.
func (s *ItemService) Update(item *inventoryEntity.InventoryItem) error {
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", ledger.ErrValidation)
	}
	current, err := s.Get(item.ID)
	if err != nil {
		return err
	}
	if err := s.items.UpdateAttributes(item); err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrStorageUnavailable, err)
	}

	s.recordAudit(auditEntity.ActionUpdate, item.Name, map[string]interface{}{
		"item_id": item.ID,
	})
	item.Quantity = current.Quantity
	s.reindex(item)
	return nil
}

// Delete retires an item. The row goes away; its batches stay behind as
// orphaned history. A final OUT record snapshots the quantity that was on
// hand, under the "Deleted: <name>" label the source app used.
func (s *ItemService) Delete(id string) error {
	item, err := s.Get(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Delete(&inventoryEntity.InventoryItem{}).Error; err != nil {
			return err
		}
		record := ledgerEntity.TransactionRecord{
			ItemID:          item.ID,
			ItemName:        "Deleted: " + item.Name,
			Direction:       ledgerEntity.DirectionOut,
			QuantityChanged: item.Quantity,
			Timestamp:       time.Now(),
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrStorageUnavailable, err)
	}

	s.recordAudit(auditEntity.ActionDelete, item.Name, map[string]interface{}{
		"item_id": item.ID, "quantity": item.Quantity,
	})
	if s.Index != nil {
		if err := s.Index.DeleteItem(id); err != nil {
			log.Printf("inventory: search delete %s: %v", id, err)
		}
	}
	return nil
}

func (s *ItemService) recordAudit(action, name string, details map[string]interface{}) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(action, name, details); err != nil {
		log.Printf("inventory: audit write diverged for %q (%s): %v", name, action, err)
	}
}

func (s *ItemService) reindex(item *inventoryEntity.InventoryItem) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexItem(item); err != nil {
		log.Printf("inventory: search index %s: %v", item.ID, err)
	}
}
