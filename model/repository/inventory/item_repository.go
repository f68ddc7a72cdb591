package inventory

import (
	"database/sql"

	"gorm.io/gorm"

	inventoryEntity "inventify.GO/model/entity/inventory"
)

type ItemRepository struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

func NewItemRepository(db *gorm.DB) (*ItemRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &ItemRepository{db: db, sqlDB: sqlDB}, nil
}

// FindByID returns the item or gorm.ErrRecordNotFound.
func (r *ItemRepository) FindByID(id string) (*inventoryEntity.InventoryItem, error) {
	var item inventoryEntity.InventoryItem
	if err := r.db.Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindAll returns all items ordered by date added (the source lists newest
// screens the same way).
func (r *ItemRepository) FindAll() ([]inventoryEntity.InventoryItem, error) {
	var items []inventoryEntity.InventoryItem
	err := r.db.Order("date_added").Find(&items).Error
	return items, err
}

// GetQuantity returns the on-hand quantity for an item.
// Uses raw SQL for minimal overhead
func (r *ItemRepository) GetQuantity(id string) (int, bool) {
	const query = `SELECT quantity FROM inventory_item WHERE id = ? LIMIT 1`
	var qty sql.NullInt64
	if err := r.sqlDB.QueryRow(query, id).Scan(&qty); err != nil || !qty.Valid {
		return 0, false
	}
	return int(qty.Int64), true
}

func (r *ItemRepository) Create(item *inventoryEntity.InventoryItem) error {
	return r.db.Create(item).Error
}

// UpdateAttributes writes the editable attributes. Quantity and Version are
// deliberately excluded: those belong to the ledger.
func (r *ItemRepository) UpdateAttributes(item *inventoryEntity.InventoryItem) error {
	return r.db.Model(&inventoryEntity.InventoryItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":       item.Name,
			"category":   item.Category,
			"price":      item.Price,
			"sale":       item.Sale,
			"min_stock":  item.MinStock,
			"date_added": item.DateAdded,
			"barcode":    item.Barcode,
		}).Error
}

// Delete removes the item row only. Batches stay behind as orphaned history.
func (r *ItemRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&inventoryEntity.InventoryItem{}).Error
}

// FindLowStock returns items at or below their minimum-stock threshold.
func (r *ItemRepository) FindLowStock() ([]inventoryEntity.InventoryItem, error) {
	var items []inventoryEntity.InventoryItem
	err := r.db.Where("quantity <= min_stock").Order("quantity").Find(&items).Error
	return items, err
}
