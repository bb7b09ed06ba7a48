package transform

import (
	"github.com/penwyp/go-timeline-view/internal/core/model"
)

// CalculateAllElements positions events, collapsible-segment markers and
// ruler ticks in one pass against this transform's single adjusted-position
// function, so the three can never disagree about where a time lands.
func (t *Transform) CalculateAllElements(events []model.Event, segments []model.TimeSegment) model.Layout {
	layout := model.Layout{
		Viewport: t.Viewport(),
		EndTime:  t.ViewportEndTime(),
		Events:   make([]model.EventPosition, 0, len(events)),
		Markers:  make([]model.SegmentMarker, 0),
	}

	for _, e := range events {
		pos, ok := t.CalculateEventPosition(e)
		if !ok {
			continue
		}
		layout.Events = append(layout.Events, model.EventPosition{
			EventID:  e.ID,
			Title:    e.Title,
			Position: pos,
		})
	}

	for _, seg := range segments {
		if seg.Collapsed == nil {
			continue
		}
		layout.Markers = append(layout.Markers, model.SegmentMarker{
			Segment:  *seg.Collapsed,
			Position: t.CalculatePosition(seg.StartTime, seg.EndTime),
		})
	}

	layout.Ticks = t.GenerateTicks(events)
	return layout
}
