package cache

import (
	"context"
	"sort"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Fatal("New returned nil")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestSet_Get(t *testing.T) {
	c := New()
	c.Set("store|Shop A", uint(7), 0)
	got, ok := c.Get("store|Shop A")
	if !ok {
		t.Fatal("Get: want true")
	}
	if got != uint(7) {
		t.Errorf("Get = %v, want 7", got)
	}
}

func TestGet_Missing(t *testing.T) {
	c := New()
	if _, ok := c.Get("nonexistent-key"); ok {
		t.Error("Get missing key: want false")
	}
}

func TestSet_Overwrite_KeepsLen(t *testing.T) {
	c := New()
	c.Set("k", 1, 0)
	c.Set("k", 2, 0)
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
	if v, _ := c.Get("k"); v != 2 {
		t.Errorf("Get = %v, want 2", v)
	}
}

func TestDelete(t *testing.T) {
	c := New()
	c.Set("k", "x", 0)
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("Delete: key should be gone")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestTTL_Expires(t *testing.T) {
	c := New()
	c.Set("short", "v", time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get("short"); ok {
		t.Error("expired key: want false")
	}
}

func TestSetN_GetN(t *testing.T) {
	c := New()
	c.SetN([]interface{}{"supplier", "Acme"}, uint(3), 0)
	got, ok := c.GetN("supplier", "Acme")
	if !ok || got != uint(3) {
		t.Errorf("GetN = %v, %v; want 3, true", got, ok)
	}
	if Key("a", 1) != "a|1" {
		t.Errorf("Key = %q, want a|1", Key("a", 1))
	}
}

func TestTags(t *testing.T) {
	c := New()
	c.Set("store|A", uint(1), 0, "store")
	c.Set("store|B", uint(2), 0, "store")
	c.Set("category|Tools", uint(1), 0, "category")

	keys := c.KeysByTag("store")
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "store|A" || keys[1] != "store|B" {
		t.Errorf("KeysByTag = %v, want [store|A store|B]", keys)
	}

	c.DeleteByTag("store")
	if _, ok := c.Get("store|A"); ok {
		t.Error("DeleteByTag: store|A should be gone")
	}
	if _, ok := c.Get("category|Tools"); !ok {
		t.Error("DeleteByTag: category entry should survive")
	}
	if len(c.KeysByTag("store")) != 0 {
		t.Error("KeysByTag after DeleteByTag: want empty")
	}
}

func TestRedisListCache_NilClientIsNoop(t *testing.T) {
	c := NewRedisListCache(nil, time.Minute)
	ctx := context.Background()
	c.Set(ctx, "stores", []byte("[]"))
	if _, ok := c.Get(ctx, "stores"); ok {
		t.Error("Get with nil client: want false")
	}
	c.Invalidate(ctx, "stores")

	var nilCache *RedisListCache
	if _, ok := nilCache.Get(ctx, "stores"); ok {
		t.Error("nil cache Get: want false")
	}
}
