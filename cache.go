package genmapgrid

import "container/list"

// Cache is a bounded LRU map from cache keys to generated results. It
// is constructed once per worker with an injected capacity and is only
// ever touched by its owner, so it needs no locking.
type Cache[V any] struct {
	capacity int
	ll       *list.List
	items    map[string]*list.Element
}

type cacheEntry[V any] struct {
	key   string
	value V
}

// NewCache returns an empty cache holding at most capacity entries.
func NewCache[V any](capacity int) *Cache[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache[V]{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get returns the value stored under the given key and refreshes its
// recency.
func (c *Cache[V]) Get(key string) (V, bool) {
	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		return el.Value.(cacheEntry[V]).value, true
	}
	var zero V
	return zero, false
}

// Put stores the value under the given key, evicting the
// least-recently-touched entry if the cache is over capacity.
func (c *Cache[V]) Put(key string, value V) {
	if el, ok := c.items[key]; ok {
		el.Value = cacheEntry[V]{key: key, value: value}
		c.ll.MoveToFront(el)
		return
	}
	c.items[key] = c.ll.PushFront(cacheEntry[V]{key: key, value: value})
	if c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		c.ll.Remove(oldest)
		delete(c.items, oldest.Value.(cacheEntry[V]).key)
	}
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	return c.ll.Len()
}
