package ringcache

import (
	"sync"

	"ringcache/lru"
)

// syncCache wraps an lru.Cache with a mutex and the byte/hit/evict
// counters spec.md §4.3 requires. Values stored are clones of the
// ByteView handed to add; get hands back a further clone for the caller
// to release.
type syncCache struct {
	mu     sync.Mutex
	lru    *lru.Cache[ByteView]
	nget   int64
	nhit   int64
	nevict int64
}

func (c *syncCache) ensure() {
	if c.lru != nil {
		return
	}
	c.lru = lru.New[ByteView](0, func(key string, value ByteView) {
		c.nevict++
		value.Release()
	})
}

// add stores a clone of value under key, evicting nothing itself — the
// owning Group enforces the combined byte budget across caches.
func (c *syncCache) add(key string, value ByteView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensure()
	old, hadOld := c.lru.Add(key, value.Clone())
	if hadOld {
		old.Release()
	}
}

// get returns a clone of the stored value, or false if absent.
func (c *syncCache) get(key string) (ByteView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nget++
	if c.lru == nil {
		return ByteView{}, false
	}
	v, ok := c.lru.Get(key)
	if !ok {
		return ByteView{}, false
	}
	c.nhit++
	return v.Clone(), true
}

// removeOldest evicts the single least recently used entry, if any.
func (c *syncCache) removeOldest() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lru != nil {
		c.lru.RemoveOldest()
	}
}

func (c *syncCache) bytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lru == nil {
		return 0
	}
	return c.lru.Bytes()
}

func (c *syncCache) stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := 0
	if c.lru != nil {
		items = c.lru.Len()
	}
	bytes := int64(0)
	if c.lru != nil {
		bytes = c.lru.Bytes()
	}
	return CacheStats{
		Bytes:     bytes,
		Items:     int64(items),
		Gets:      c.nget,
		Hits:      c.nhit,
		Evictions: c.nevict,
	}
}
