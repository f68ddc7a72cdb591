package search

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"

	inventoryEntity "inventify.GO/model/entity/inventory"
)

var (
	indexerInstance *Indexer
	indexerOnce     sync.Once
)

// GetIndexer returns the singleton Indexer.
func GetIndexer() *Indexer {
	indexerOnce.Do(func() {
		indexerInstance = NewIndexer()
	})
	return indexerInstance
}

// Indexer mirrors items into Elasticsearch for the external search UI.
// Without ELASTICSEARCH_HOST it stays disabled and every call is a no-op
// error the callers log and move on from — search is never on the ledger's
// critical path.
type Indexer struct {
	client *elasticsearch.Client
	index  string
}

func NewIndexer() *Indexer {
	host := os.Getenv("ELASTICSEARCH_HOST")
	index := os.Getenv("ELASTICSEARCH_INDEX")
	if index == "" {
		index = "inventify_items"
	}
	if host == "" {
		return &Indexer{index: index}
	}

	cfg := elasticsearch.Config{
		Addresses: []string{host},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Printf("search: elasticsearch client: %v", err)
		return &Indexer{index: index}
	}
	return &Indexer{client: client, index: index}
}

// Enabled reports whether an Elasticsearch backend is configured.
func (s *Indexer) Enabled() bool {
	return s.client != nil
}

// IndexItem upserts one item document.
func (s *Indexer) IndexItem(item *inventoryEntity.InventoryItem) error {
	if s.client == nil {
		return fmt.Errorf("elasticsearch not configured")
	}
	doc := map[string]interface{}{
		"name":      item.Name,
		"category":  item.DisplayCategory(),
		"quantity":  item.Quantity,
		"price":     item.Price,
		"sale":      item.Sale,
		"barcode":   item.Barcode,
		"low_stock": item.LowStock(),
	}
	body, _ := json.Marshal(doc)
	res, err := s.client.Index(s.index, bytes.NewReader(body),
		s.client.Index.WithDocumentID(item.ID),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch error: %s", res.String())
	}
	return nil
}

// DeleteItem drops one item document. A missing document is fine.
func (s *Indexer) DeleteItem(id string) error {
	if s.client == nil {
		return fmt.Errorf("elasticsearch not configured")
	}
	res, err := s.client.Delete(s.index, id)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && !strings.Contains(res.String(), "not_found") {
		return fmt.Errorf("elasticsearch error: %s", res.String())
	}
	return nil
}

// ReindexAll pushes every item. Used by the searchsync cron job.
func (s *Indexer) ReindexAll(items []inventoryEntity.InventoryItem) (int, error) {
	if s.client == nil {
		return 0, fmt.Errorf("elasticsearch not configured")
	}
	indexed := 0
	for i := range items {
		if err := s.IndexItem(&items[i]); err != nil {
			return indexed, err
		}
		indexed++
	}
	return indexed, nil
}
