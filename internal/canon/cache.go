package canon

import (
	"strconv"
	"strings"
	"sync"

	"github.com/anoma/Semitopology-Checker/internal/openset"
)

// DefaultCacheSize is the default of the enumerate command's
// --cache-size flag.
const DefaultCacheSize = 1 << 20

// Cache is a bounded map from a raw (n, family) pair to its canonical
// form. It is observationally pure: a hit always returns a
// value bit-identical to what Canonicalize would compute directly.
// Capacity 0 disables caching outright (every Get misses, every Put is a
// no-op). Eviction is FIFO, the cheapest policy sufficient here; it is
// guarded by a single mutex, even though the generator is the cache's
// only writer and writes never overlap within a size-level.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	entries  map[string]openset.Family
	order    []string
}

// NewCache constructs a cache with the given capacity. Capacity 0 means
// "no caching".
func NewCache(capacity int) *Cache {
	if capacity < 0 {
		capacity = 0
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]openset.Family, capacity),
	}
}

// Get returns the cached canonical form for (n, raw), if present.
func (c *Cache) Get(n int, raw openset.Family) (openset.Family, bool) {
	if c.capacity == 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key(n, raw)]
	return v, ok
}

// Put records the canonical form for (n, raw), evicting the oldest entry
// if the cache is at capacity.
func (c *Cache) Put(n int, raw, canonical openset.Family) {
	if c.capacity == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	k := key(n, raw)
	if _, exists := c.entries[k]; exists {
		c.entries[k] = canonical
		return
	}
	if len(c.entries) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[k] = canonical
	c.order = append(c.order, k)
}

// Len reports the number of entries currently cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Lookup canonicalizes raw via the cache, computing and storing a miss.
// This is the entry point every other package should use in preference
// to calling Canonicalize directly, so the cache stays coherent with
// its observationally-pure contract.
func (c *Cache) Lookup(n int, raw openset.Family) openset.Family {
	if hit, ok := c.Get(n, raw); ok {
		return hit
	}
	canonical := Canonicalize(n, raw)
	c.Put(n, raw, canonical)
	return canonical
}

func key(n int, f openset.Family) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(n))
	b.WriteByte(':')
	for i, o := range f {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(o), 10))
	}
	return b.String()
}
