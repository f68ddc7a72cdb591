package cache

import (
	"testing"
	"time"
)

func TestNewCache(t *testing.T) {
	c := NewCache()
	if c == nil {
		t.Fatal("NewCache returned nil")
	}
}

func TestGetInstance(t *testing.T) {
	inst := GetInstance()
	if inst == nil {
		t.Fatal("GetInstance returned nil")
	}
	if GetInstance() != inst {
		t.Error("GetInstance should return same instance")
	}
}

func TestSet_Get(t *testing.T) {
	c := NewCache()
	c.Set("k", "val", 0, nil)
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("Get: want true")
	}
	if got != "val" {
		t.Errorf("Get = %v, want val", got)
	}
}

func TestGet_Missing(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("nonexistent-key-xyz"); ok {
		t.Error("Get missing key: want false")
	}
}

func TestGet_Expired(t *testing.T) {
	c := NewCache()
	c.Set("k", "val", 1, nil)
	// Force the entry past its deadline instead of sleeping.
	c.m.Store("k", cacheItem{Value: "val", ExpiresAt: time.Now().Add(-time.Second).UnixNano()})
	if _, ok := c.Get("k"); ok {
		t.Error("expired entry should not be returned")
	}
	if _, stillThere := c.m.Load("k"); stillThere {
		t.Error("expired entry should be evicted on read")
	}
}

func TestDelete(t *testing.T) {
	c := NewCache()
	c.Set("k", "x", 0, nil)
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("Delete: key should be gone")
	}
}

func TestSetN_GetN(t *testing.T) {
	c := NewCache()
	c.SetN([]interface{}{"batches", "widget"}, "composite-val", 0, nil)
	got, ok := c.GetN("batches", "widget")
	if !ok || got != "composite-val" {
		t.Errorf("GetN = %v, %v; want composite-val, true", got, ok)
	}
	if got, ok := c.Get("batches|widget"); !ok || got != "composite-val" {
		t.Errorf("composite key layout changed: %v, %v", got, ok)
	}
}

func TestTagKey_GetKeysByTag_DeleteByTag(t *testing.T) {
	c := NewCache()
	c.Set("k1", "v1", 0, []string{"t1"})
	c.Set("k2", "v2", 0, []string{"t1"})

	keys := c.GetKeysByTag("t1")
	if len(keys) != 2 {
		t.Errorf("GetKeysByTag = %d keys, want 2", len(keys))
	}

	c.DeleteByTag("t1")
	if _, ok := c.Get("k1"); ok {
		t.Error("DeleteByTag: k1 should be gone")
	}
	if _, ok := c.Get("k2"); ok {
		t.Error("DeleteByTag: k2 should be gone")
	}
	if keys := c.GetKeysByTag("t1"); len(keys) != 0 {
		t.Errorf("tag index survived DeleteByTag: %v", keys)
	}
}

func TestItemTag(t *testing.T) {
	if got := ItemTag("widget"); got != "item:widget" {
		t.Errorf("ItemTag = %q, want item:widget", got)
	}
}
