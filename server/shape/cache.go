package shape

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultCacheSize is the capacity of a Cache created with a size of zero or
// less.
const DefaultCacheSize = 8

// Entry is resolved geometry of one shape in one orientation. Entries are
// never modified after they are added to a Cache.
type Entry struct {
	// Mesh is the rotated mesh. It must be cloned before it is handed out.
	Mesh *Mesh
	// Wicks are attachment points in the same frame as Mesh.
	Wicks []mgl32.Vec3
}

// Cache is a least recently used cache of Entries. It is not safe for
// concurrent use: every cache belongs to a single block entity.
type Cache struct {
	size    int
	entries *orderedmap.OrderedMap[string, Entry]
	metrics *Metrics
}

// NewCache creates a Cache holding at most size entries. Metrics may be nil.
func NewCache(size int, metrics *Metrics) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{size: size, entries: orderedmap.NewOrderedMap[string, Entry](), metrics: metrics}
}

// Get looks up the entry stored under key and marks it as most recently used.
func (c *Cache) Get(key string) (Entry, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		c.metrics.IncMisses()
		return Entry{}, false
	}
	c.entries.Delete(key)
	c.entries.Set(key, e)
	c.metrics.IncHits()
	return e, true
}

// Put stores an entry under key, evicting the least recently used entries if
// the cache grows beyond its size.
func (c *Cache) Put(key string, e Entry) {
	c.entries.Delete(key)
	c.entries.Set(key, e)
	for c.entries.Len() > c.size {
		oldest := c.entries.Front()
		c.entries.Delete(oldest.Key)
		c.metrics.IncEvictions()
	}
}

// Contains reports if an entry is stored under key without affecting its
// recency.
func (c *Cache) Contains(key string) bool {
	_, ok := c.entries.Get(key)
	return ok
}

// Keys returns the keys of all entries from least to most recently used.
func (c *Cache) Keys() []string {
	keys := make([]string, 0, c.entries.Len())
	for el := c.entries.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Key)
	}
	return keys
}

// Len returns the number of entries in the cache.
func (c *Cache) Len() int {
	return c.entries.Len()
}
