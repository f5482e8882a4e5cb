package qtdoc

import (
	"container/list"
	"strings"
	"sync"
)

// LRU is the bounded in-memory tier of the document cache. Eviction order
// is an explicit recency list plus a hash index, so least-recently-used
// semantics are a verifiable invariant rather than a property of some
// library container.
//
// The mutex covers only the cache's own bookkeeping. Callers must never
// perform conversion or disk I/O while holding a reference into the cache;
// Get and Put copy nothing but the entry pointer.
type LRU struct {
	mu       sync.Mutex
	capacity int
	order    *list.List               // front = most recent
	index    map[string]*list.Element // key -> element in order
}

type lruEntry struct {
	key string
	doc *Document
}

// NewLRU creates an LRU with the given entry capacity. Capacities below
// one are raised to one.
func NewLRU(capacity int) *LRU {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element),
	}
}

// Get returns the cached document for key and refreshes its recency.
// The second return reports whether the key was present.
func (c *LRU) Get(key string) (*Document, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry).doc, true
}

// Put inserts or replaces the document for key as most recently used,
// evicting the least-recently-used entry under capacity pressure.
func (c *LRU) Put(key string, doc *Document) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		el.Value.(*lruEntry).doc = doc
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&lruEntry{key: key, doc: doc})
	c.index[key] = el

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.index, oldest.Value.(*lruEntry).key)
	}
}

// Remove drops the entry for key, if present.
func (c *LRU) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		c.order.Remove(el)
		delete(c.index, key)
	}
}

// RemovePrefix drops every entry whose key starts with prefix. Invalidation
// uses it to clear a page's whole-page entry together with any
// fragment-scoped views keyed under it.
func (c *LRU) RemovePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, el := range c.index {
		if strings.HasPrefix(key, prefix) {
			c.order.Remove(el)
			delete(c.index, key)
		}
	}
}

// Len returns the number of cached entries.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
