// Package memo provides the memoization table shared by the transform,
// evaluation and search layers. Keys are typed composite values; a table is
// owned by one engine session and is not safe for concurrent use.
package memo

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Stats reports table activity. Misses equals the number of computations
// Do performed.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
}

// Table maps keys to computed values. With a positive capacity the least
// recently used entry is evicted once the table is full; capacity 0 means
// unbounded. A nil *Table is valid and caches nothing.
type Table[K comparable, V any] struct {
	entries map[K]V          // unbounded tables
	bounded *lru.Cache[K, V] // tables with a capacity

	clearing                bool
	hits, misses, evictions uint64
}

// New creates a table holding at most capacity entries (0 = unbounded).
func New[K comparable, V any](capacity int) *Table[K, V] {
	t := &Table[K, V]{}
	if capacity <= 0 {
		t.entries = make(map[K]V)
		return t
	}
	// NewWithEvict only fails for a non-positive size.
	t.bounded, _ = lru.NewWithEvict[K, V](capacity, func(K, V) {
		if !t.clearing {
			t.evictions++
		}
	})
	return t
}

// Get returns the stored value for key.
func (t *Table[K, V]) Get(key K) (V, bool) {
	if t == nil {
		var zero V
		return zero, false
	}
	if t.bounded != nil {
		return t.bounded.Get(key)
	}
	v, ok := t.entries[key]
	return v, ok
}

// Put stores value under key, evicting the oldest entry if needed.
func (t *Table[K, V]) Put(key K, value V) {
	if t == nil {
		return
	}
	if t.bounded != nil {
		t.bounded.Add(key, value)
		return
	}
	t.entries[key] = value
}

// Do returns the value stored for key, calling compute and storing its
// result on a miss.
func (t *Table[K, V]) Do(key K, compute func() V) V {
	if t == nil {
		return compute()
	}
	if v, ok := t.Get(key); ok {
		t.hits++
		return v
	}
	t.misses++
	v := compute()
	t.Put(key, v)
	return v
}

// Len returns the number of stored entries.
func (t *Table[K, V]) Len() int {
	if t == nil {
		return 0
	}
	if t.bounded != nil {
		return t.bounded.Len()
	}
	return len(t.entries)
}

// Clear drops every entry. Counters are kept and dropped entries are not
// counted as evictions.
func (t *Table[K, V]) Clear() {
	if t == nil {
		return
	}
	if t.bounded != nil {
		t.clearing = true
		t.bounded.Purge()
		t.clearing = false
		return
	}
	clear(t.entries)
}

// Stats returns the activity counters.
func (t *Table[K, V]) Stats() Stats {
	if t == nil {
		return Stats{}
	}
	return Stats{
		Hits:      t.hits,
		Misses:    t.misses,
		Evictions: t.evictions,
		Size:      t.Len(),
	}
}

// Add returns the field-wise sum of two stats.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Hits:      s.Hits + o.Hits,
		Misses:    s.Misses + o.Misses,
		Evictions: s.Evictions + o.Evictions,
		Size:      s.Size + o.Size,
	}
}
