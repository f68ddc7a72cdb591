package inventory

import (
	"testing"
)

func TestInventoryItem_TableName(t *testing.T) {
	i := InventoryItem{}
	if got := i.TableName(); got != "inventory_item" {
		t.Errorf("InventoryItem.TableName() = %q, want inventory_item", got)
	}
}

func TestBatch_TableName(t *testing.T) {
	b := Batch{}
	if got := b.TableName(); got != "inventory_batch" {
		t.Errorf("Batch.TableName() = %q, want inventory_batch", got)
	}
}

func TestDisplayCategory(t *testing.T) {
	i := InventoryItem{Category: "Tools"}
	if got := i.DisplayCategory(); got != "Tools" {
		t.Errorf("DisplayCategory = %q, want Tools", got)
	}
	i.Category = ""
	if got := i.DisplayCategory(); got != "Uncategorized" {
		t.Errorf("DisplayCategory = %q, want Uncategorized", got)
	}
}

func TestLowStock(t *testing.T) {
	cases := []struct {
		qty, min int
		want     bool
	}{
		{0, 5, true},
		{5, 5, true},
		{6, 5, false},
	}
	for _, c := range cases {
		i := InventoryItem{Quantity: c.qty, MinStock: c.min}
		if got := i.LowStock(); got != c.want {
			t.Errorf("LowStock(qty=%d, min=%d) = %v, want %v", c.qty, c.min, got, c.want)
		}
	}
}

func TestBatch_Exhausted(t *testing.T) {
	b := Batch{OriginalQty: 5, RemainingQty: 1}
	if b.Exhausted() {
		t.Error("batch with remaining stock reported exhausted")
	}
	b.RemainingQty = 0
	if !b.Exhausted() {
		t.Error("drained batch not reported exhausted")
	}
}
