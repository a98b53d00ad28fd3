package memo

import (
	"iter"

	"github.com/djdv/go-memo/internal/ring"
)

type (
	entry[Key comparable, Value any] = ring.Ring[Key, Value]
	// LRU is a capacity-bounded cache which evicts
	// the least recently used entry when full.
	// Concurrent access must be guarded by the caller.
	// Constructed by [NewLRU].
	LRU[Key comparable, Value any] struct {
		index map[Key]*entry[Key, Value]
		// newest is the most recently used entry;
		// newest.Next() is the least recently used.
		newest              *entry[Key, Value]
		capacity, evictions int
	}
)

// MinimumCapacity defines the lowest value supported by [NewLRU].
const MinimumCapacity = 1

// NewLRU creates an [LRU] with the given capacity.
func NewLRU[Key comparable, Value any](capacity int) (*LRU[Key, Value], error) {
	if capacity < MinimumCapacity {
		return nil, CapacityError(capacity)
	}
	return &LRU[Key, Value]{
		capacity: capacity,
		index:    make(map[Key]*entry[Key, Value], capacity),
	}, nil
}

// Load returns the cached value for key (if present). Otherwise, it calls fetch,
// inserts and returns the value on success.
// If fetch returns an error, the value is not cached.
func (c *LRU[Key, Value]) Load(key Key, fetch func() (Value, error)) (Value, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}
	value, err := fetch()
	if err != nil {
		return value, err
	}
	c.Set(key, value)
	return value, nil
}

// Get returns the Value for key if it is present
// in the cache, and marks it as most recently used;
// otherwise it returns the zero value and false.
func (c *LRU[Key, Value]) Get(key Key) (Value, bool) {
	if entry, ok := c.index[key]; ok {
		c.touch(entry)
		return entry.Value, true
	}
	var zero Value
	return zero, false
}

// Set inserts or updates key with value
// and marks it as most recently used.
// Inserting past capacity evicts the least recently used entry.
func (c *LRU[Key, Value]) Set(key Key, value Value) {
	if entry, ok := c.index[key]; ok {
		entry.Value = value
		c.touch(entry)
		return
	}
	if len(c.index) == c.capacity {
		c.evict()
	}
	c.push(&entry[Key, Value]{
		Key:   key,
		Value: value,
	})
}

// Remove deletes key from the cache,
// reporting whether it was present.
func (c *LRU[Key, _]) Remove(key Key) bool {
	entry, ok := c.index[key]
	if ok {
		c.unlink(entry)
	}
	return ok
}

// RemoveFunc deletes every entry whose key satisfies match
// and returns how many were removed.
// Every entry is visited.
func (c *LRU[Key, _]) RemoveFunc(match func(Key) bool) int {
	var removed int
	for key, entry := range c.index {
		if match(key) {
			c.unlink(entry)
			removed++
		}
	}
	return removed
}

// touch promotes entry to most recently used.
func (c *LRU[Key, Value]) touch(entry *entry[Key, Value]) {
	switch entry {
	case c.newest:
		return
	case c.newest.Next():
		// The oldest entry is already adjacent to newest;
		// advancing the ring is enough.
		c.newest = entry
		return
	}
	c.newest.Link(entry.Detach())
	c.newest = entry
}

// push links a new entry to the ring
// as well as the index.
func (c *LRU[Key, Value]) push(entry *entry[Key, Value]) {
	if c.newest != nil {
		c.newest.Link(entry)
	}
	c.newest = entry
	c.index[entry.Key] = entry
}

func (c *LRU[_, _]) evict() {
	if debugging {
		assert(c.newest != nil, "evicting from an empty cache")
	}
	c.unlink(c.newest.Next())
	c.evictions++
}

func (c *LRU[Key, Value]) unlink(entry *entry[Key, Value]) {
	delete(c.index, entry.Key)
	switch {
	case len(c.index) == 0:
		c.newest = nil
	case entry == c.newest:
		c.newest = entry.Prev()
	}
	entry.Detach()
}

// Len returns the number of cached entries.
func (c *LRU[_, _]) Len() int { return len(c.index) }

// Cap returns the capacity the cache was constructed with.
func (c *LRU[_, _]) Cap() int { return c.capacity }

// Evictions returns how many entries were removed
// to stay within capacity.
func (c *LRU[_, _]) Evictions() int { return c.evictions }

// Keys returns an iterator over the cached keys,
// from most to least recently used.
func (c *LRU[Key, _]) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for entry := range c.newest.Backward() {
			if !yield(entry.Key) {
				return
			}
		}
	}
}
