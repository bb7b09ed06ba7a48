// Package cache memoizes computed layouts so unchanged frames are not
// recomputed.
package cache

import (
	"sync"

	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/penwyp/go-timeline-view/internal/util"
)

// DefaultCapacity is the number of layouts kept when none is configured.
const DefaultCapacity = 64

// LayoutEntry is one cached layout.
type LayoutEntry struct {
	Layout       model.Layout
	LastAccessed int64 // logical clock, larger is more recent
}

// Stats reports cache effectiveness.
type Stats struct {
	Entries   int
	Hits      int64
	Misses    int64
	Evictions int64
}

// LayoutCache is a bounded memo of layouts keyed by Key. The least recently
// accessed entry is evicted first.
type LayoutCache struct {
	mu       sync.RWMutex
	entries  map[string]*LayoutEntry
	capacity int
	clock    int64

	hits      int64
	misses    int64
	evictions int64
}

// NewLayoutCache creates a cache holding at most capacity layouts.
func NewLayoutCache(capacity int) *LayoutCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &LayoutCache{
		entries:  make(map[string]*LayoutEntry, capacity),
		capacity: capacity,
	}
}

func (lc *LayoutCache) Set(key string, layout model.Layout) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.clock++
	if entry, ok := lc.entries[key]; ok {
		entry.Layout = layout
		entry.LastAccessed = lc.clock
		return
	}

	if len(lc.entries) >= lc.capacity {
		lc.evictOldest()
	}
	lc.entries[key] = &LayoutEntry{Layout: layout, LastAccessed: lc.clock}
}

func (lc *LayoutCache) Get(key string) (model.Layout, bool) {
	// Write lock: a hit updates LastAccessed.
	lc.mu.Lock()
	defer lc.mu.Unlock()

	entry, ok := lc.entries[key]
	if !ok {
		lc.misses++
		return model.Layout{}, false
	}
	lc.hits++
	lc.clock++
	entry.LastAccessed = lc.clock
	return entry.Layout, true
}

// Len returns the number of cached layouts.
func (lc *LayoutCache) Len() int {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	return len(lc.entries)
}

func (lc *LayoutCache) Stats() Stats {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	return Stats{
		Entries:   len(lc.entries),
		Hits:      lc.hits,
		Misses:    lc.misses,
		Evictions: lc.evictions,
	}
}

// Clear drops every entry. Counters are kept.
func (lc *LayoutCache) Clear() {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	n := len(lc.entries)
	lc.entries = make(map[string]*LayoutEntry, lc.capacity)
	if n > 0 {
		util.LogDebugf("LayoutCache: cleared %d entries", n)
	}
}

// evictOldest must be called with mu held.
func (lc *LayoutCache) evictOldest() {
	var oldestKey string
	oldest := int64(-1)
	for key, entry := range lc.entries {
		if oldest < 0 || entry.LastAccessed < oldest {
			oldest = entry.LastAccessed
			oldestKey = key
		}
	}
	if oldest >= 0 {
		delete(lc.entries, oldestKey)
		lc.evictions++
	}
}
