package transform

import (
	"testing"

	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNiceInterval(t *testing.T) {
	tests := []struct {
		target float64
		want   float64
	}{
		{0.93, 1},
		{1.4, 1},
		{1.6, 2},
		{3.4, 2},
		{3.6, 5},
		{8, 10},
		{0.0042, 0.005},
		{270, 200},
		{0, 0},
		{-5, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, NiceInterval(tt.target), 1e-12, "target=%v", tt.target)
	}
}

func TestGenerateTicksWithoutEvents(t *testing.T) {
	// 750px at 50px/day shows 15 days, so the interval is one day.
	tr := New(Params{ViewportStart: 0, Zoom: 1, Width: 750})

	ticks := tr.GenerateTicks([]model.Event{{ID: "untimed"}})
	require.Len(t, ticks, 16)
	for i, tick := range ticks {
		assert.InDelta(t, float64(i), tick.Time, 1e-9)
		assert.InDelta(t, float64(i)*50, tick.Pixel, 1e-9)
		assert.Empty(t, tick.SubLabel)
	}
	assert.Equal(t, "day 0", ticks[0].Label)
	assert.Equal(t, "day 15", ticks[15].Label)
}

func TestGenerateTicksStartsOnInterval(t *testing.T) {
	tr := New(Params{ViewportStart: 0.3, Zoom: 1, Width: 750})

	ticks := tr.GenerateTicks(nil)
	require.NotEmpty(t, ticks)
	assert.InDelta(t, 1.0, ticks[0].Time, 1e-9)
	assert.LessOrEqual(t, ticks[len(ticks)-1].Time, tr.ViewportEndTime())
}

func TestGenerateTicksSubDayLabelsCollide(t *testing.T) {
	// 1.5 days visible, so ticks every 0.1 day share date labels.
	tr := New(Params{ViewportStart: 0, Zoom: 10, Width: 750})

	ticks := tr.GenerateTicks(nil)
	require.NotEmpty(t, ticks)
	assert.Equal(t, "day 0", ticks[0].Label)
	assert.Equal(t, "00:00", ticks[0].SubLabel)
	for _, tick := range ticks {
		assert.NotEmpty(t, tick.SubLabel)
	}
}

func TestGenerateTicksFromEvents(t *testing.T) {
	tr := New(Params{ViewportStart: 0, Zoom: 1, Width: 1000})

	// candidates 0, 1, 2, 4, 6 land at 0, 50, 100, 200, 300px; 50px is too
	// close to 0px and is dropped.
	ticks := tr.GenerateTicks([]model.Event{timedEvent("a", 0, 2)})

	times := make([]float64, 0, len(ticks))
	for _, tick := range ticks {
		times = append(times, tick.Time)
	}
	assert.Equal(t, []float64{0, 2, 4, 6}, times)
}

func TestGenerateTicksFromEventsSkipsOffscreen(t *testing.T) {
	tr := New(Params{ViewportStart: 10, Zoom: 1, Width: 500})

	ticks := tr.GenerateTicks([]model.Event{
		timedEvent("before", 0, 1),
		timedEvent("inside", 12, 14),
	})

	require.NotEmpty(t, ticks)
	for _, tick := range ticks {
		assert.GreaterOrEqual(t, tick.Pixel, 0.0)
		assert.LessOrEqual(t, tick.Pixel, 500.0)
	}
}

func TestGenerateTicksMinimumSpacing(t *testing.T) {
	tr := New(Params{ViewportStart: 0, Zoom: 1, Width: 2000})
	events := []model.Event{
		timedEvent("a", 0, 0.5),
		timedEvent("b", 1, 1.2),
		timedEvent("c", 1.3, 4),
		{ID: "point", TimeStart: model.Float64Ptr(9)},
	}

	ticks := tr.GenerateTicks(events)
	require.NotEmpty(t, ticks)
	for i := 1; i < len(ticks); i++ {
		assert.GreaterOrEqual(t, ticks[i].Pixel-ticks[i-1].Pixel, 80.0)
	}
}

func TestCalculateAllElements(t *testing.T) {
	tr := New(Params{ViewportStart: 0, Zoom: 1, Width: 1000})
	events := []model.Event{
		timedEvent("a", 0, 2),
		{ID: "untimed"},
		timedEvent("b", 8, 9),
	}
	segments := []model.TimeSegment{
		{Type: model.SegmentEvent, StartTime: 0, EndTime: 2, Duration: 2, EventID: "a"},
		{Type: model.SegmentGap, StartTime: 2, EndTime: 8, Duration: 6},
		{
			Type: model.SegmentCollapsed, StartTime: 3, EndTime: 4, Duration: 1,
			Collapsed: &model.CollapsedSegment{ID: "collapsed-3-4", StartTime: 3, EndTime: 4, Duration: 1, IsCollapsed: true},
		},
	}

	layout := tr.CalculateAllElements(events, segments)

	require.Len(t, layout.Events, 2)
	assert.Equal(t, "a", layout.Events[0].EventID)
	assert.Equal(t, "b", layout.Events[1].EventID)
	require.Len(t, layout.Markers, 1)
	assert.Equal(t, "collapsed-3-4", layout.Markers[0].Segment.ID)
	assert.InDelta(t, 150.0, layout.Markers[0].Position.LeftPixel, 1e-9)
	assert.NotEmpty(t, layout.Ticks)
	assert.Equal(t, 20.0, layout.EndTime)
	assert.Equal(t, 1000.0, layout.Viewport.WidthPixels)
}
