package puzzle

import (
	"container/list"
)

/*

The line-result cache

Every skim and scrub goes through this cache.  The key is the
engine, the clue list, and the packed possibility vector; the
value is the refined vector (or the fact that the line
contradicts).  Keys carry no orientation, so a row and a column
with the same clues and vector share an entry — that sharing is
what makes the disambiguator's replay loop affordable.

Single solves leave the cache unbounded.  The disambiguator
bounds it, and the bound is enforced with least-recently-used
replacement.

*/

// engine discriminators for cache keys.
const (
	engineSkim  = 'k'
	engineScrub = 'b'
)

// a cacheEntry is one memoized line result.
type cacheEntry struct {
	key   string
	cells []colorSet // refined vector; nil on contradiction
	ok    bool       // false means the line contradicted
}

// A lineCache memoizes line-solve results with optional LRU
// bounding.  It is owned by a single solver run (or a single
// disambiguator run); nothing else writes to it.
type lineCache struct {
	maxEntries int // zero means unbounded
	entries    map[string]*list.Element
	order      *list.List // front is most recently used
	hits       int
	misses     int
}

// newLineCache makes a cache bounded to maxEntries entries, or
// unbounded if maxEntries is zero.
func newLineCache(maxEntries int) *lineCache {
	return &lineCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
	}
}

// cacheKey builds the lookup key for a line operation.
func cacheKey(engine byte, clues []Clue, cells []colorSet) string {
	key := make([]byte, 0, 2+len(cells)+8*len(clues))
	key = append(key, engine)
	key = packClues(key, clues)
	key = packVector(key, cells)
	return string(key)
}

// lookup returns the memoized result for a key, if present.
// The returned cells are shared; callers must not modify them.
func (c *lineCache) lookup(key string) (cells []colorSet, ok bool, hit bool) {
	el, found := c.entries[key]
	if !found {
		c.misses++
		return nil, false, false
	}
	c.hits++
	c.order.MoveToFront(el)
	entry := el.Value.(*cacheEntry)
	return entry.cells, entry.ok, true
}

// store memoizes a result, evicting the least recently used
// entry if the cache is bounded and full.  The cells are copied.
func (c *lineCache) store(key string, cells []colorSet, ok bool) {
	if el, found := c.entries[key]; found {
		c.order.MoveToFront(el)
		return
	}
	entry := &cacheEntry{key: key, ok: ok}
	if ok {
		entry.cells = append([]colorSet(nil), cells...)
	}
	c.entries[key] = c.order.PushFront(entry)
	if c.maxEntries > 0 && c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

// hitRate returns the fraction of lookups served from the cache.
func (c *lineCache) hitRate() float64 {
	total := c.hits + c.misses
	if total == 0 {
		return 0
	}
	return float64(c.hits) / float64(total)
}
