// Package lru is a size bounded map evicting least recently used entries.
// It is not safe for concurrent use, callers are expected to hold their own
// locks.
package lru

import "container/list"

type entry[K comparable, V any] struct {
	key   K
	value V
}

type Cache[K comparable, V any] struct {
	size    int
	order   *list.List
	items   map[K]*list.Element
	onEvict func(K, V)
}

// New creates cache holding at most size entries, onEvict (may be nil) is
// called for every entry pushed out.
func New[K comparable, V any](size int, onEvict func(K, V)) *Cache[K, V] {
	return &Cache[K, V]{
		size:    max(size, 1),
		order:   list.New(),
		items:   make(map[K]*list.Element),
		onEvict: onEvict,
	}
}

// Get returns value and marks it as recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	if e, ok := c.items[key]; ok {
		c.order.MoveToFront(e)
		return e.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Add stores value unless key is already present, in which case value kept
// in cache is returned and stays.
func (c *Cache[K, V]) Add(key K, value V) V {
	if e, ok := c.items[key]; ok {
		c.order.MoveToFront(e)
		return e.Value.(*entry[K, V]).value
	}
	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})
	for c.order.Len() > c.size {
		last := c.order.Back()
		c.order.Remove(last)
		ev := last.Value.(*entry[K, V])
		delete(c.items, ev.key)
		if c.onEvict != nil {
			c.onEvict(ev.key, ev.value)
		}
	}
	return value
}

// Remove drops key without calling onEvict.
func (c *Cache[K, V]) Remove(key K) {
	if e, ok := c.items[key]; ok {
		c.order.Remove(e)
		delete(c.items, key)
	}
}

func (c *Cache[K, V]) Len() int {
	return c.order.Len()
}
