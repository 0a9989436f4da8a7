package render

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"htmlview/utils/lru"
	"htmlview/view"
)

// Cache memoizes rendered documents keyed by source and renderer options,
// least recently used documents are evicted first.
type Cache struct {
	r *Renderer

	mu     sync.Mutex
	docs   *lru.Cache[uuid.UUID, *view.Document]
	hits   int
	misses int
}

func NewCache(r *Renderer, size int) *Cache {
	return &Cache{
		r: r,
		docs: lru.New(size, func(id uuid.UUID, _ *view.Document) {
			r.log.Debug("Rendered document evicted", zap.Stringer("id", id))
		}),
	}
}

// Document returns previously rendered document when neither source nor
// options changed, otherwise renders and remembers it. Parse failures are
// not remembered.
func (c *Cache) Document(src string) (*view.Document, error) {
	id := c.r.Fingerprint(src)

	c.mu.Lock()
	if doc, ok := c.docs.Get(id); ok {
		c.hits++
		c.mu.Unlock()
		return doc, nil
	}
	c.misses++
	c.mu.Unlock()

	doc, err := c.r.Document(src)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// when rendered concurrently first stored document wins
	return c.docs.Add(id, doc), nil
}

// Len returns number of remembered documents.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.docs.Len()
}

// Stats returns number of cache hits and misses so far.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
