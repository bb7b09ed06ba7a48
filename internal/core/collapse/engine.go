// Package collapse finds low-information gaps between events and compresses
// them to a fixed on-screen width.
package collapse

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/penwyp/go-timeline-view/internal/core/constants"
	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/penwyp/go-timeline-view/internal/util"
)

// Scale provides the pixel-per-time-unit factor of the current viewport.
// *transform.Transform satisfies it.
type Scale interface {
	PixelsPerTimeUnit() float64
}

// Engine derives collapsible segments from an event list and owns the set of
// segments the user has expanded. The expanded set is the only state that
// survives Compute; it starts empty, so every collapsible gap starts
// collapsed.
type Engine struct {
	expanded map[string]bool

	segments  []model.TimeSegment
	collapsed []model.TimeSegment // collapsed-variant segments, ascending
	scale     Scale
}

// NewEngine creates an engine with nothing expanded.
func NewEngine() *Engine {
	return &Engine{
		expanded: make(map[string]bool),
	}
}

// SegmentID derives the deterministic id of a collapsible range.
func SegmentID(start, end float64) string {
	return fmt.Sprintf("collapsed-%s-%s", roundedKey(start), roundedKey(end))
}

func roundedKey(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // normalize -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Compute rebuilds the segment list for events at the given scale and
// returns it. Untimed events are ignored. The input slice is not modified.
func (e *Engine) Compute(events []model.Event, scale Scale) []model.TimeSegment {
	if scale != nil {
		e.scale = scale
	}

	timed := SortedTimedEvents(events)
	segments := make([]model.TimeSegment, 0, len(timed)*2)
	collapsed := make([]model.TimeSegment, 0)

	if len(timed) == 0 {
		e.segments, e.collapsed = segments, collapsed
		return segments
	}

	// current is the event reaching furthest right so far, so a gap is never
	// opened inside a long event that overlaps its successors.
	current := timed[0]
	segments = append(segments, eventSegment(current))

	for _, next := range timed[1:] {
		curEnd, nextStart := current.End(), next.Start()

		if nextStart-curEnd > 0 {
			rangeStart := curEnd + constants.CollapsePaddingMult*current.Duration()
			rangeEnd := nextStart - constants.CollapsePaddingMult*next.Duration()

			if rangeEnd-rangeStart <= 0 {
				segments = append(segments, model.TimeSegment{
					Type:      model.SegmentGap,
					StartTime: curEnd,
					EndTime:   nextStart,
					Duration:  nextStart - curEnd,
				})
			} else {
				seg := e.collapsibleSegment(rangeStart, rangeEnd)
				segments = append(segments, seg)
				if seg.Type == model.SegmentCollapsed {
					collapsed = append(collapsed, seg)
				}
			}
		}

		segments = append(segments, eventSegment(next))
		if next.End() > current.End() {
			current = next
		}
	}

	e.segments, e.collapsed = segments, collapsed
	util.LogDebugf("collapse: %d events, %d segments, %d collapsed", len(timed), len(segments), len(collapsed))
	return segments
}

func (e *Engine) collapsibleSegment(start, end float64) model.TimeSegment {
	id := SegmentID(start, end)
	isCollapsed := !e.expanded[id]

	segType := model.SegmentCollapsed
	if !isCollapsed {
		segType = model.SegmentGap
	}

	return model.TimeSegment{
		Type:      segType,
		StartTime: start,
		EndTime:   end,
		Duration:  end - start,
		Collapsed: &model.CollapsedSegment{
			ID:          id,
			StartTime:   start,
			EndTime:     end,
			Duration:    end - start,
			IsCollapsed: isCollapsed,
		},
	}
}

func eventSegment(ev model.Event) model.TimeSegment {
	return model.TimeSegment{
		Type:      model.SegmentEvent,
		StartTime: ev.Start(),
		EndTime:   ev.End(),
		Duration:  ev.Duration(),
		EventID:   ev.ID,
	}
}

// SortedTimedEvents returns the timed events ordered by start time, then
// display order, then id.
func SortedTimedEvents(events []model.Event) []model.Event {
	timed := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if ev.IsTimed() {
			timed = append(timed, ev)
		}
	}
	sort.SliceStable(timed, func(i, j int) bool {
		if timed[i].Start() != timed[j].Start() {
			return timed[i].Start() < timed[j].Start()
		}
		if timed[i].DisplayOrder != timed[j].DisplayOrder {
			return timed[i].DisplayOrder < timed[j].DisplayOrder
		}
		return timed[i].ID < timed[j].ID
	})
	return timed
}

// ToggleSegmentCollapse flips the expanded state of id and reports whether
// the segment is now collapsed. Applying it twice restores the original state.
func (e *Engine) ToggleSegmentCollapse(id string) bool {
	collapsed := e.expanded[id]
	if collapsed {
		delete(e.expanded, id)
		util.LogDebugf("collapse: segment %s collapsed", id)
	} else {
		e.expanded[id] = true
		util.LogDebugf("collapse: segment %s expanded", id)
	}
	e.applyExpanded()
	return collapsed
}

// applyExpanded re-tags the current segments against the expanded set
// without re-deriving them. Segments handed out earlier are left untouched.
func (e *Engine) applyExpanded() {
	segments := make([]model.TimeSegment, len(e.segments))
	collapsed := make([]model.TimeSegment, 0, len(e.collapsed))
	for i, seg := range e.segments {
		if seg.Collapsed != nil {
			seg = e.collapsibleSegment(seg.StartTime, seg.EndTime)
			if seg.Type == model.SegmentCollapsed {
				collapsed = append(collapsed, seg)
			}
		}
		segments[i] = seg
	}
	e.segments, e.collapsed = segments, collapsed
}

// IsExpanded reports whether id is in the expanded set.
func (e *Engine) IsExpanded(id string) bool {
	return e.expanded[id]
}

// ExpandedIDs returns the expanded set in sorted order.
func (e *Engine) ExpandedIDs() []string {
	ids := make([]string, 0, len(e.expanded))
	for id := range e.expanded {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ExpandAll expands every collapsible segment of the last Compute.
func (e *Engine) ExpandAll() {
	for _, seg := range e.segments {
		if seg.Collapsed != nil {
			e.expanded[seg.Collapsed.ID] = true
		}
	}
	e.applyExpanded()
}

// CollapseAll clears the expanded set.
func (e *Engine) CollapseAll() {
	e.expanded = make(map[string]bool)
	e.applyExpanded()
}

// Segments returns the segment list of the last Compute.
func (e *Engine) Segments() []model.TimeSegment {
	return e.segments
}

// CollapsedSegments returns every collapsible segment of the last Compute,
// collapsed or expanded, in time order.
func (e *Engine) CollapsedSegments() []model.CollapsedSegment {
	out := make([]model.CollapsedSegment, 0)
	for _, seg := range e.segments {
		if seg.Collapsed != nil {
			out = append(out, *seg.Collapsed)
		}
	}
	return out
}
