package jobs

import (
	"log"
	"sync"

	"gorm.io/gorm"

	inventoryRepo "inventify.GO/model/repository/inventory"
	"inventify.GO/service/reconcile"
	"inventify.GO/service/search"
)

var (
	mu sync.Mutex
	db *gorm.DB
)

// Init hands the jobs their ledger DB handle. Call once at startup before
// the scheduler runs.
func Init(ledgerDB *gorm.DB) {
	mu.Lock()
	defer mu.Unlock()
	db = ledgerDB
}

func ledgerDB() *gorm.DB {
	mu.Lock()
	defer mu.Unlock()
	return db
}

// ReconcileJob checks the quantity-vs-batch-sum invariant across all items
// and reports offenders to the operator log.
func ReconcileJob(args ...string) {
	d := ledgerDB()
	if d == nil {
		log.Println("cron: reconcile: DB not initialized")
		return
	}
	drifts, err := reconcile.Check(d)
	if err != nil {
		log.Printf("cron: reconcile: %v", err)
		return
	}
	if len(drifts) == 0 {
		log.Println("cron: reconcile: all items consistent")
		return
	}
	for _, drift := range drifts {
		log.Printf("cron: reconcile: DRIFT item %s (%s): quantity=%d batch_sum=%d",
			drift.ItemID, drift.Name, drift.Quantity, drift.BatchSum)
	}
}

// LowStockJob logs items at or below their minimum-stock threshold.
func LowStockJob(args ...string) {
	d := ledgerDB()
	if d == nil {
		log.Println("cron: lowstock: DB not initialized")
		return
	}
	repo, err := inventoryRepo.NewItemRepository(d)
	if err != nil {
		log.Printf("cron: lowstock: %v", err)
		return
	}
	items, err := repo.FindLowStock()
	if err != nil {
		log.Printf("cron: lowstock: %v", err)
		return
	}
	for _, item := range items {
		log.Printf("cron: lowstock: %s (%s) quantity=%d min_stock=%d",
			item.Name, item.ID, item.Quantity, item.MinStock)
	}
	log.Printf("cron: lowstock: %d item(s) below threshold", len(items))
}

// SearchSyncJob reindexes every item into the search backend.
func SearchSyncJob(args ...string) {
	idx := search.GetIndexer()
	if !idx.Enabled() {
		log.Println("cron: searchsync: elasticsearch not configured, skipping")
		return
	}
	d := ledgerDB()
	if d == nil {
		log.Println("cron: searchsync: DB not initialized")
		return
	}
	repo, err := inventoryRepo.NewItemRepository(d)
	if err != nil {
		log.Printf("cron: searchsync: %v", err)
		return
	}
	items, err := repo.FindAll()
	if err != nil {
		log.Printf("cron: searchsync: %v", err)
		return
	}
	n, err := idx.ReindexAll(items)
	if err != nil {
		log.Printf("cron: searchsync: indexed %d, stopped: %v", n, err)
		return
	}
	log.Printf("cron: searchsync: indexed %d item(s)", n)
}
