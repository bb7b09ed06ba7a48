package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSegments() []model.TimeSegment {
	return []model.TimeSegment{
		{Type: model.SegmentEvent, StartTime: 0, EndTime: 10, Duration: 10, EventID: "A"},
		{Type: model.SegmentGap, StartTime: 10, EndTime: 30, Duration: 20},
		{
			Type: model.SegmentCollapsed, StartTime: 30, EndTime: 80, Duration: 50,
			Collapsed: &model.CollapsedSegment{ID: "gap-30-80", StartTime: 30, EndTime: 80, Duration: 50, IsCollapsed: true},
		},
		{Type: model.SegmentGap, StartTime: 80, EndTime: 100, Duration: 20},
		{Type: model.SegmentEvent, StartTime: 100, EndTime: 110, Duration: 10, EventID: "B"},
	}
}

func sampleLayout() model.Layout {
	return model.Layout{
		Viewport: model.Viewport{StartTime: 20.8, ZoomLevel: 1, WidthPixels: 1000},
		EndTime:  40.8,
		Events: []model.EventPosition{
			{EventID: "A", Title: "Kickoff", Position: model.PositionResult{LeftPixel: -1040, WidthPixel: 500, LeftPercent: -104}},
			{EventID: "B", Position: model.PositionResult{LeftPixel: 540, WidthPixel: 500, LeftPercent: 54, Visible: true}},
		},
		Markers: []model.SegmentMarker{{
			Segment:  model.CollapsedSegment{ID: "gap-30-80", StartTime: 30, EndTime: 80, IsCollapsed: true},
			Position: model.PositionResult{LeftPixel: 460, WidthPixel: 80, Visible: true},
		}},
		Ticks: []model.Tick{{Pixel: 0, Label: "day 20"}, {Pixel: 500, Label: "day 30", SubLabel: "12:00"}},
	}
}

func TestNew(t *testing.T) {
	for _, name := range []string{"", "text", "TABLE"} {
		f, err := New(name, nil)
		require.NoError(t, err, name)
		assert.IsType(t, &TableFormatter{}, f)
	}

	f, err := New("json", nil)
	require.NoError(t, err)
	assert.IsType(t, &JSONFormatter{}, f)

	_, err = New("csv", nil)
	assert.Error(t, err)
}

func TestTableFormatterSegments(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(nil).FormatSegments(&buf, sampleSegments()))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// top, header, separator, five rows, bottom, summary
	require.Len(t, lines, 10)
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
	assert.Contains(t, lines[1], "Duration")
	assert.Contains(t, lines[5], "gap-30-80")
	assert.Contains(t, lines[5], "collapsed")
	assert.Contains(t, lines[5], "day 30")
	assert.Contains(t, lines[3], "10d")
	assert.Equal(t, "5 segments, 1 collapsible", lines[9])

	// every table line has the same display width
	for _, line := range lines[:9] {
		assert.Equal(t, len([]rune(lines[0])), len([]rune(line)), line)
	}
}

func TestTableFormatterEmptySegments(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(nil).FormatSegments(&buf, nil))
	assert.Contains(t, buf.String(), "0 segments, 0 collapsible")
}

func TestTableFormatterLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(nil).FormatLayout(&buf, sampleLayout()))

	out := buf.String()
	assert.Contains(t, out, "Viewport day 20 → day 40  zoom 1x  width 1000px")
	assert.Contains(t, out, "Kickoff")
	assert.Contains(t, out, "-1040")
	assert.Contains(t, out, "2 events, 1 visible")
	assert.Contains(t, out, "gap-30-80")
	assert.Contains(t, out, "Ticks: day 20@0, day 30 12:00@500")
}

func TestTableFormatterRightAlignsNumbers(t *testing.T) {
	var buf bytes.Buffer
	rows := [][]string{{"a", "1"}, {"b", "100"}}
	var b strings.Builder
	writeTable(&b, []string{"Name", "Count"}, rows, []bool{false, true})
	buf.WriteString(b.String())

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "│ a    │     1 │", lines[3])
	assert.Equal(t, "│ b    │   100 │", lines[4])
}
