package cache

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Cache is a thread-safe key-value store with optional TTL and tag-based invalidation.
// The ETL loader keeps one per pass to memoize natural key -> surrogate id lookups.
type Cache struct {
	m sync.Map
	// tag -> *sync.Map of keys
	tagIndex sync.Map
	size     atomic.Int64
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{}
}

type item struct {
	value     interface{}
	expiresAt int64 // unix nanos, 0 = no expiry
}

func (i item) expired(now int64) bool {
	return i.expiresAt > 0 && now > i.expiresAt
}

// Set stores value under key. A zero ttl never expires.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration, tags ...string) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).UnixNano()
	}
	if _, loaded := c.m.Swap(key, item{value: value, expiresAt: expiresAt}); !loaded {
		c.size.Add(1)
	}
	for _, tag := range tags {
		v, _ := c.tagIndex.LoadOrStore(tag, &sync.Map{})
		v.(*sync.Map).Store(key, struct{}{})
	}
}

// Get returns the value for key if present and not expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	it := v.(item)
	if it.expired(time.Now().UnixNano()) {
		c.Delete(key)
		return nil, false
	}
	return it.value, true
}

// Delete removes key.
func (c *Cache) Delete(key string) {
	if _, loaded := c.m.LoadAndDelete(key); loaded {
		c.size.Add(-1)
	}
}

// Key joins parts into a composite key.
func Key(parts ...interface{}) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = fmt.Sprint(p)
	}
	return strings.Join(s, "|")
}

// SetN stores value under the composite key built from keys.
func (c *Cache) SetN(keys []interface{}, value interface{}, ttl time.Duration, tags ...string) {
	c.Set(Key(keys...), value, ttl, tags...)
}

// GetN reads a composite key.
func (c *Cache) GetN(keys ...interface{}) (interface{}, bool) {
	return c.Get(Key(keys...))
}

// KeysByTag returns every key tagged with tag.
func (c *Cache) KeysByTag(tag string) []string {
	var keys []string
	if v, ok := c.tagIndex.Load(tag); ok {
		v.(*sync.Map).Range(func(k, _ interface{}) bool {
			keys = append(keys, k.(string))
			return true
		})
	}
	return keys
}

// DeleteByTag removes every entry tagged with tag.
func (c *Cache) DeleteByTag(tag string) {
	v, ok := c.tagIndex.LoadAndDelete(tag)
	if !ok {
		return
	}
	v.(*sync.Map).Range(func(k, _ interface{}) bool {
		c.Delete(k.(string))
		return true
	})
}

// Len returns the number of stored entries, expired ones included until read.
func (c *Cache) Len() int {
	return int(c.size.Load())
}
