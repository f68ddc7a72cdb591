package inventory

// InventoryItem represents the inventory_item table. Quantity is the
// authoritative on-hand count and is only ever changed through the stock
// ledger; Version fences concurrent ledger writes (compare-and-swap on
// update, bumped on every committed mutation).
type InventoryItem struct {
	ID        string  `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Name      string  `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Category  string  `gorm:"column:category;type:varchar(128)" json:"category"`
	Quantity  int     `gorm:"column:quantity;not null;default:0" json:"quantity"`
	Price     float64 `gorm:"column:price;type:decimal(12,2);not null;default:0" json:"price"`
	Sale      float64 `gorm:"column:sale;type:decimal(12,2);not null;default:0" json:"sale"`
	MinStock  int     `gorm:"column:min_stock;not null;default:5" json:"min_stock"`
	DateAdded string  `gorm:"column:date_added;type:varchar(32)" json:"date_added"`
	Barcode   string  `gorm:"column:barcode;type:varchar(64)" json:"barcode"`
	Version   uint    `gorm:"column:version;not null;default:0" json:"-"`
}

func (InventoryItem) TableName() string {
	return "inventory_item"
}

// DisplayCategory returns the category with the UI fallback applied.
func (i *InventoryItem) DisplayCategory() string {
	if i.Category == "" {
		return "Uncategorized"
	}
	return i.Category
}

// LowStock reports whether on-hand quantity is at or below the threshold.
func (i *InventoryItem) LowStock() bool {
	return i.Quantity <= i.MinStock
}
