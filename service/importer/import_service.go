package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	inventoryEntity "inventify.GO/model/entity/inventory"
	inventorySvc "inventify.GO/service/inventory"
)

// DefaultMinStock is assigned when a document omits the threshold. Same
// fallback the source app used for snapshots with a missing minStock field.
const DefaultMinStock = 5

// itemDocument is the loosely-typed wire shape of one imported item.
// Pointer fields distinguish "absent" from zero so documented defaults are
// assigned exactly once, here at the boundary.
type itemDocument struct {
	ID        string   `mapstructure:"id"`
	Name      string   `mapstructure:"name"`
	Category  string   `mapstructure:"category"`
	Quantity  *int     `mapstructure:"quantity"`
	Price     *float64 `mapstructure:"price"`
	Sale      *float64 `mapstructure:"sale"`
	MinStock  *int     `mapstructure:"min_stock"`
	DateAdded string   `mapstructure:"date_added"`
	Barcode   string   `mapstructure:"barcode"`
}

// DecodeItem decodes one loose document (JSON object, CSV row map) into a
// typed item, weakly converting numerics the way document snapshots arrive,
// and applies the documented defaults for missing fields.
func DecodeItem(doc map[string]interface{}) (*inventoryEntity.InventoryItem, error) {
	var d itemDocument
	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &d,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("decode item document: %w", err)
	}
	if strings.TrimSpace(d.Name) == "" {
		return nil, fmt.Errorf("item document has no name")
	}

	item := &inventoryEntity.InventoryItem{
		ID:        d.ID,
		Name:      strings.TrimSpace(d.Name),
		Category:  strings.TrimSpace(d.Category),
		MinStock:  DefaultMinStock,
		DateAdded: d.DateAdded,
		Barcode:   strings.TrimSpace(d.Barcode),
	}
	if d.Quantity != nil {
		item.Quantity = *d.Quantity
	}
	if d.Price != nil {
		item.Price = *d.Price
	}
	if d.Sale != nil {
		item.Sale = *d.Sale
	}
	if d.MinStock != nil {
		item.MinStock = *d.MinStock
	}
	if item.DateAdded == "" {
		item.DateAdded = time.Now().Format("2006-01-02")
	}
	if item.Quantity < 0 {
		return nil, fmt.Errorf("item %q has negative quantity", item.Name)
	}
	return item, nil
}

// ImportResult holds counters from an import run.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

// ImportDocuments decodes and creates items one by one; bad documents are
// skipped with a warning, they don't abort the run.
func ImportDocuments(svc *inventorySvc.ItemService, docs []map[string]interface{}) *ImportResult {
	res := &ImportResult{}
	for i, doc := range docs {
		item, err := DecodeItem(doc)
		if err != nil {
			res.Skipped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("doc %d: %v", i, err))
			continue
		}
		if err := svc.Create(item); err != nil {
			res.Skipped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("doc %d (%s): %v", i, item.Name, err))
			continue
		}
		res.Imported++
	}
	return res
}

// ImportCSV reads a header-first CSV stream and imports each row through the
// same document decode as the JSON path.
func ImportCSV(svc *inventorySvc.ItemService, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var docs []map[string]interface{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		doc := make(map[string]interface{}, len(header))
		for i, col := range header {
			if i < len(row) && strings.TrimSpace(row[i]) != "" {
				doc[col] = strings.TrimSpace(row[i])
			}
		}
		docs = append(docs, doc)
	}
	return ImportDocuments(svc, docs), nil
}
