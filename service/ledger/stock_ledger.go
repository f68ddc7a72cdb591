package ledger

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	auditEntity "inventify.GO/model/entity/audit"
	inventoryEntity "inventify.GO/model/entity/inventory"
	ledgerEntity "inventify.GO/model/entity/ledger"
	inventoryRepo "inventify.GO/model/repository/inventory"
	ledgerRepo "inventify.GO/model/repository/ledger"
)

// DefaultMaxRetries bounds the optimistic-concurrency retry loop.
const DefaultMaxRetries = 5

// AuditSink receives high-level action notifications. It is a best-effort,
// independently-durable side channel: a failing sink never rolls back or
// blocks an already-committed ledger mutation.
type AuditSink interface {
	Record(action, itemName string, details map[string]interface{}) error
}

// Result describes one completed ledger mutation.
type Result struct {
	ItemID      string `json:"item_id"`
	ItemName    string `json:"item_name"`
	PreviousQty int    `json:"previous_qty"`
	Quantity    int    `json:"quantity"`
	Delta       int    `json:"delta"`
	Direction   string `json:"direction,omitempty"`
	BatchID     string `json:"batch_id,omitempty"`
	NoOp        bool   `json:"no_op,omitempty"`
	// AuditErr reports a failed audit write as a secondary condition.
	// The ledger mutation itself committed.
	AuditErr error `json:"-"`
}

// StockLedger is the single entry point for changing an item's on-hand
// quantity. One logical mutation updates the quantity, creates or FIFO-drains
// batches, and appends a transaction record — all in one per-item atomic unit
// fenced by the item's version column. Two different items never contend.
type StockLedger struct {
	db         *gorm.DB
	audit      AuditSink
	MaxRetries int

	auditFailures atomic.Uint64

	batches *inventoryRepo.BatchRepository
	txns    *ledgerRepo.TransactionRepository

	// afterRead runs between the item read and the conditional write of each
	// attempt. Tests use it to interleave competing writers deterministically.
	afterRead func(itemID string)
}

func NewStockLedger(db *gorm.DB, sink AuditSink) *StockLedger {
	return &StockLedger{
		db:         db,
		audit:      sink,
		MaxRetries: DefaultMaxRetries,
		batches:    inventoryRepo.NewBatchRepository(db),
		txns:       ledgerRepo.NewTransactionRepository(db),
	}
}

// ApplyDelta applies a signed quantity change (the ±1 stock in/out buttons).
// A zero delta is a caller bug and is rejected before any write.
func (l *StockLedger) ApplyDelta(itemID string, delta int) (*Result, error) {
	if delta == 0 {
		return nil, fmt.Errorf("%w: delta must be non-zero", ErrValidation)
	}
	action := auditEntity.ActionStockIn
	if delta < 0 {
		action = auditEntity.ActionStockOut
	}
	return l.mutate(itemID, action, func(current int) int {
		return current + delta
	})
}

// SetQuantity sets the absolute on-hand quantity (the typed-value path).
// The delta is computed against the current authoritative value inside the
// retry loop, so two racing callers cannot both win from the same base.
// Setting the current value is a no-op: no batch, no record, no audit entry.
func (l *StockLedger) SetQuantity(itemID string, quantity int) (*Result, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be non-negative", ErrValidation)
	}
	return l.mutate(itemID, auditEntity.ActionManualAdjust, func(current int) int {
		return quantity
	})
}

// ListBatches returns the item's batches in receipt order.
func (l *StockLedger) ListBatches(itemID string) ([]inventoryEntity.Batch, error) {
	return l.batches.ListByItem(itemID)
}

// ListTransactions returns transaction records newest-first, optionally
// narrowed to one item and a time range.
func (l *StockLedger) ListTransactions(itemID string, from, to time.Time) ([]ledgerEntity.TransactionRecord, error) {
	return l.txns.QueryRange(itemID, from, to)
}

// AuditFailures returns how many audit writes have diverged from committed
// mutations since startup.
func (l *StockLedger) AuditFailures() uint64 {
	return l.auditFailures.Load()
}

// mutate runs the read-compute-write cycle under the retry budget.
// Each attempt: read the item, compute the target, then commit quantity,
// batch effects and the transaction record in one DB transaction guarded by
// a conditional version update. A lost CAS means another writer got in
// between — re-read and try again.
func (l *StockLedger) mutate(itemID, action string, target func(current int) int) (*Result, error) {
	retries := l.MaxRetries
	if retries <= 0 {
		retries = DefaultMaxRetries
	}

	for attempt := 0; attempt < retries; attempt++ {
		var item inventoryEntity.InventoryItem
		if err := l.db.Where("id = ?", itemID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, itemID)
			}
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}

		newQty := target(item.Quantity)
		delta := newQty - item.Quantity
		if delta == 0 {
			return &Result{
				ItemID:      item.ID,
				ItemName:    item.Name,
				PreviousQty: item.Quantity,
				Quantity:    item.Quantity,
				NoOp:        true,
			}, nil
		}

		if l.afterRead != nil {
			l.afterRead(item.ID)
		}

		res := &Result{
			ItemID:      item.ID,
			ItemName:    item.Name,
			PreviousQty: item.Quantity,
			Quantity:    newQty,
			Delta:       delta,
		}

		err := l.db.Transaction(func(tx *gorm.DB) error {
			// Conditional write: succeeds only if nobody committed since our
			// read. The matched row stays locked until commit, so batch and
			// history writes below cannot interleave with another mutation
			// of the same item.
			cas := tx.Model(&inventoryEntity.InventoryItem{}).
				Where("id = ? AND version = ?", item.ID, item.Version).
				Updates(map[string]interface{}{
					"quantity": newQty,
					"version":  item.Version + 1,
				})
			if cas.Error != nil {
				return fmt.Errorf("%w: %v", ErrStorageUnavailable, cas.Error)
			}
			if cas.RowsAffected == 0 {
				return errStaleVersion
			}

			now := time.Now()
			if delta > 0 {
				batch := inventoryEntity.Batch{
					ID:           uuid.NewString(),
					ItemID:       item.ID,
					OriginalQty:  delta,
					RemainingQty: delta,
					ReceivedAt:   now,
				}
				if err := tx.Create(&batch).Error; err != nil {
					return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
				}
				res.BatchID = batch.ID
			} else {
				if err := consumeFIFO(tx, item.ID, -delta); err != nil {
					return err
				}
			}

			direction := ledgerEntity.DirectionIn
			if delta < 0 {
				direction = ledgerEntity.DirectionOut
			}
			res.Direction = direction
			record := ledgerEntity.TransactionRecord{
				ItemID:          item.ID,
				ItemName:        item.Name,
				Direction:       direction,
				QuantityChanged: abs(delta),
				Timestamp:       now,
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
			}
			return nil
		})

		if errors.Is(err, errStaleVersion) {
			continue
		}
		if err != nil {
			return nil, err
		}

		res.AuditErr = l.notifyAudit(action, res)
		return res, nil
	}

	return nil, fmt.Errorf("%w: item %s after %d attempts", ErrConflict, itemID, retries)
}

// errStaleVersion is internal: the CAS lost, retry the whole cycle.
var errStaleVersion = errors.New("stale item version")

// consumeFIFO drains abs(delta) units from the oldest non-exhausted batches.
// When the batches cannot cover the need the whole mutation is rejected —
// the only policy that keeps quantity equal to the batch sum. The legacy
// behavior (stop draining silently) is intentionally gone.
func consumeFIFO(tx *gorm.DB, itemID string, need int) error {
	var batches []inventoryEntity.Batch
	err := tx.Where("item_id = ? AND remaining_qty > 0", itemID).
		Order("received_at ASC, id ASC").
		Find(&batches).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	available := 0
	for _, b := range batches {
		available += b.RemainingQty
	}
	if available < need {
		return fmt.Errorf("%w: need %d, batches hold %d", ErrInsufficientBatchStock, need, available)
	}

	for _, b := range batches {
		if need == 0 {
			break
		}
		take := b.RemainingQty
		if take > need {
			take = need
		}
		err := tx.Model(&inventoryEntity.Batch{}).
			Where("id = ?", b.ID).
			Update("remaining_qty", b.RemainingQty-take).Error
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		need -= take
	}
	return nil
}

// notifyAudit signals the local audit trail after commit. Divergence is
// logged and counted, never propagated as a mutation failure.
func (l *StockLedger) notifyAudit(action string, res *Result) error {
	if l.audit == nil {
		return nil
	}
	err := l.audit.Record(action, res.ItemName, map[string]interface{}{
		"item_id":  res.ItemID,
		"delta":    res.Delta,
		"quantity": res.Quantity,
	})
	if err != nil {
		l.auditFailures.Add(1)
		log.Printf("ledger: audit write diverged for item %s (%s): %v", res.ItemID, action, err)
	}
	return err
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
