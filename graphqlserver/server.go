package graphqlserver

import (
	"net/http"
	"strconv"
	"time"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"inventify.GO/api"
	"inventify.GO/graphql"
	inventoryEntity "inventify.GO/model/entity/inventory"
	ledgerEntity "inventify.GO/model/entity/ledger"
)

// NewHandler parses the schema against the root resolver and returns the
// relay HTTP handler for /graphql.
func NewHandler(deps *api.Deps) http.Handler {
	schema := gql.MustParseSchema(graphql.Schema(), &RootResolver{deps: deps})
	return &relay.Handler{Schema: schema}
}

// RootResolver is the root for graphql-go. All queries are read-only
// projections of the ledger's persisted entities.
type RootResolver struct {
	deps *api.Deps
}

type itemArgs struct {
	ID gql.ID
}

func (r *RootResolver) Item(args itemArgs) (*ItemResolver, error) {
	item, err := r.deps.Items.Get(string(args.ID))
	if err != nil {
		return nil, err
	}
	return &ItemResolver{item: *item}, nil
}

func (r *RootResolver) Items() ([]*ItemResolver, error) {
	items, err := r.deps.Items.List()
	if err != nil {
		return nil, err
	}
	return wrapItems(items), nil
}

func (r *RootResolver) LowStock() ([]*ItemResolver, error) {
	items, err := r.deps.Items.LowStock()
	if err != nil {
		return nil, err
	}
	return wrapItems(items), nil
}

type batchesArgs struct {
	ItemID gql.ID
}

func (r *RootResolver) Batches(args batchesArgs) ([]*BatchResolver, error) {
	batches, err := r.deps.Ledger.ListBatches(string(args.ItemID))
	if err != nil {
		return nil, err
	}
	out := make([]*BatchResolver, len(batches))
	for i := range batches {
		out[i] = &BatchResolver{batch: batches[i]}
	}
	return out, nil
}

type transactionsArgs struct {
	ItemID *gql.ID
	From   *string
	To     *string
}

func (r *RootResolver) Transactions(args transactionsArgs) ([]*TransactionResolver, error) {
	itemID := ""
	if args.ItemID != nil {
		itemID = string(*args.ItemID)
	}
	var from, to time.Time
	if args.From != nil {
		t, err := time.Parse(time.RFC3339, *args.From)
		if err != nil {
			return nil, err
		}
		from = t
	}
	if args.To != nil {
		t, err := time.Parse(time.RFC3339, *args.To)
		if err != nil {
			return nil, err
		}
		to = t
	}

	records, err := r.deps.Ledger.ListTransactions(itemID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]*TransactionResolver, len(records))
	for i := range records {
		out[i] = &TransactionResolver{record: records[i]}
	}
	return out, nil
}

func wrapItems(items []inventoryEntity.InventoryItem) []*ItemResolver {
	out := make([]*ItemResolver, len(items))
	for i := range items {
		out[i] = &ItemResolver{item: items[i]}
	}
	return out
}

// --- Field resolvers ---

type ItemResolver struct {
	item inventoryEntity.InventoryItem
}

func (r *ItemResolver) ID() gql.ID        { return gql.ID(r.item.ID) }
func (r *ItemResolver) Name() string      { return r.item.Name }
func (r *ItemResolver) Category() string  { return r.item.DisplayCategory() }
func (r *ItemResolver) Quantity() int32   { return int32(r.item.Quantity) }
func (r *ItemResolver) Price() float64    { return r.item.Price }
func (r *ItemResolver) Sale() float64     { return r.item.Sale }
func (r *ItemResolver) MinStock() int32   { return int32(r.item.MinStock) }
func (r *ItemResolver) DateAdded() string { return r.item.DateAdded }
func (r *ItemResolver) Barcode() string   { return r.item.Barcode }
func (r *ItemResolver) LowStock() bool    { return r.item.LowStock() }

type BatchResolver struct {
	batch inventoryEntity.Batch
}

func (r *BatchResolver) ID() gql.ID          { return gql.ID(r.batch.ID) }
func (r *BatchResolver) ItemID() gql.ID      { return gql.ID(r.batch.ItemID) }
func (r *BatchResolver) OriginalQty() int32  { return int32(r.batch.OriginalQty) }
func (r *BatchResolver) RemainingQty() int32 { return int32(r.batch.RemainingQty) }
func (r *BatchResolver) ReceivedAt() string  { return r.batch.ReceivedAt.Format(time.RFC3339) }
func (r *BatchResolver) Exhausted() bool     { return r.batch.Exhausted() }

type TransactionResolver struct {
	record ledgerEntity.TransactionRecord
}

func (r *TransactionResolver) ID() gql.ID              { return gql.ID(strconv.FormatUint(uint64(r.record.ID), 10)) }
func (r *TransactionResolver) ItemID() string          { return r.record.ItemID }
func (r *TransactionResolver) ItemName() string        { return r.record.ItemName }
func (r *TransactionResolver) Direction() string       { return r.record.Direction }
func (r *TransactionResolver) QuantityChanged() int32  { return int32(r.record.QuantityChanged) }
func (r *TransactionResolver) Timestamp() string       { return r.record.Timestamp.Format(time.RFC3339) }
