package timeline

import (
	"sort"

	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/penwyp/go-timeline-view/internal/util"
)

// Builder merges event sources into one normalized event list.
type Builder struct{}

// NewBuilder creates a new builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Merge combines sources into a deduplicated, sorted event list. Within
// primary sources a later event replaces an earlier one with the same id;
// supplementary events are only kept when no primary event has their id.
func (b *Builder) Merge(sources ...Source) []model.Event {
	var total int
	for _, src := range sources {
		total += len(src.Events)
	}

	merged := make([]model.Event, 0, total)
	index := make(map[string]int, total)

	// First pass: primary sources
	for _, src := range sources {
		if src.Supplementary {
			continue
		}
		for _, e := range src.Events {
			if e.ID == "" {
				continue
			}
			if i, ok := index[e.ID]; ok {
				merged[i] = e
				continue
			}
			index[e.ID] = len(merged)
			merged = append(merged, e)
		}
	}

	// Second pass: supplementary events that have no primary
	for _, src := range sources {
		if !src.Supplementary {
			continue
		}
		for _, e := range src.Events {
			if e.ID == "" {
				continue
			}
			if _, ok := index[e.ID]; ok {
				continue
			}
			index[e.ID] = len(merged)
			merged = append(merged, e)
		}
	}

	if dropped := total - len(merged); dropped > 0 {
		util.LogDebugf("timeline: merge dropped %d duplicate or anonymous events", dropped)
	}

	b.Sort(merged)
	return merged
}

// Sort orders events in place: timed events by start, display order and id,
// then untimed events by display order and id.
func (b *Builder) Sort(events []model.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, c := events[i], events[j]
		if a.IsTimed() != c.IsTimed() {
			return a.IsTimed()
		}
		if a.IsTimed() && a.Start() != c.Start() {
			return a.Start() < c.Start()
		}
		if a.DisplayOrder != c.DisplayOrder {
			return a.DisplayOrder < c.DisplayOrder
		}
		return a.ID < c.ID
	})
}
