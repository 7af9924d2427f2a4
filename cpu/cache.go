package cpu

import (
	"iter"
	"maps"
	"slices"
)

// Cache is an address keyed cache in front of the memory bus.
//
// Entries are only stored while the cache is enabled, but they are kept when
// the cache is disabled. The cache is not invalidated by writes that bypass
// it, so it may disagree with memory.
type Cache struct {
	Enabled bool        // Set when the cache accepts new entries.
	Entry   map[int]int // Cached values, by address.
}

// Set caches value for address, if the cache is enabled.
func (cache *Cache) Set(address int, value int) {
	if !cache.Enabled {
		return
	}

	if cache.Entry == nil {
		cache.Entry = make(map[int]int)
	}
	cache.Entry[address] = value
}

// Get returns the cached value for address; ok is false on a miss.
func (cache *Cache) Get(address int) (value int, ok bool) {
	value, ok = cache.Entry[address]
	return
}

// Enable the cache.
func (cache *Cache) Enable() {
	cache.Enabled = true
}

// Disable the cache. Existing entries are retained.
func (cache *Cache) Disable() {
	cache.Enabled = false
}

// Flush removes all entries, whether or not the cache is enabled.
func (cache *Cache) Flush() {
	clear(cache.Entry)
}

// Reset flushes and disables the cache.
func (cache *Cache) Reset() {
	cache.Flush()
	cache.Disable()
}

// Len returns the number of cached entries.
func (cache *Cache) Len() int {
	return len(cache.Entry)
}

// All iterates over the cached entries in ascending address order.
func (cache *Cache) All() iter.Seq2[int, int] {
	return func(yield func(address int, value int) bool) {
		for _, address := range slices.Sorted(maps.Keys(cache.Entry)) {
			if !yield(address, cache.Entry[address]) {
				return
			}
		}
	}
}
