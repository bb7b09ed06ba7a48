package transform

import (
	"math"
	"testing"

	"github.com/penwyp/go-timeline-view/internal/core/constants"
	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timedEvent(id string, start, end float64) model.Event {
	return model.Event{ID: id, TimeStart: model.Float64Ptr(start), TimeEnd: model.Float64Ptr(end)}
}

func TestNewClampsZoom(t *testing.T) {
	tests := []struct {
		name string
		zoom float64
		want float64
	}{
		{"zero", 0, constants.MinZoom},
		{"negative", -3, constants.MinZoom},
		{"nan", math.NaN(), constants.MinZoom},
		{"tiny", 1e-9, constants.MinZoom},
		{"normal", 2.5, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(Params{Zoom: tt.zoom, Width: 500})
			assert.Equal(t, tt.want, tr.Zoom())
			assert.Equal(t, constants.BasePixelsPerDay*tt.want, tr.PixelsPerTimeUnit())
		})
	}
}

func TestRoundTripUncompressed(t *testing.T) {
	zooms := []float64{0.01, 0.5, 1, 3.7, 250}
	widths := []float64{1, 320, 1000, 2560}
	pixels := []float64{-400, 0, 0.5, 123.4, 999}

	for _, zoom := range zooms {
		for _, width := range widths {
			tr := New(Params{ViewportStart: -12.25, Zoom: zoom, Width: width})
			for _, p := range pixels {
				assert.InDelta(t, p, tr.TimeToPixel(tr.PixelToTime(p)), 1e-6,
					"zoom=%v width=%v p=%v", zoom, width, p)
			}
		}
	}
}

func TestPixelToTimeZeroWidth(t *testing.T) {
	tr := New(Params{ViewportStart: 42, Zoom: 1, Width: 0})

	assert.Equal(t, 42.0, tr.PixelToTime(300))
	assert.Equal(t, 0.0, tr.TimeToPercent(50))

	pos := tr.CalculatePosition(40, 45)
	assert.False(t, pos.Visible)
	assert.False(t, math.IsNaN(pos.LeftPercent))
	assert.False(t, math.IsInf(pos.WidthPercent, 0))
	assert.Empty(t, tr.GenerateTicks(nil))
}

func TestViewportEndTimeIsDerived(t *testing.T) {
	tr := New(Params{ViewportStart: 10, Zoom: 2, Width: 1000})

	assert.Equal(t, 100.0, tr.PixelsPerTimeUnit())
	assert.Equal(t, 10.0, tr.VisibleTimeWidth())
	assert.Equal(t, 20.0, tr.ViewportEndTime())
}

func TestTimeToPixelUsesAdjustedFunction(t *testing.T) {
	half := func(t float64) float64 { return t / 2 }
	tr := New(Params{ViewportStart: 4, Zoom: 1, Width: 1000, Adjust: half})

	// (10/2 - 4/2) * 50
	assert.InDelta(t, 150.0, tr.TimeToPixel(10), 1e-9)
	// the inverse stays on the unadjusted mapping
	assert.InDelta(t, 7.0, tr.PixelToTime(150), 1e-9)
}

func TestCalculatePosition(t *testing.T) {
	tr := New(Params{ViewportStart: 0, Zoom: 1, Width: 1000})

	pos := tr.CalculatePosition(2, 4)
	assert.InDelta(t, 100.0, pos.LeftPixel, 1e-9)
	assert.InDelta(t, 100.0, pos.WidthPixel, 1e-9)
	assert.InDelta(t, 10.0, pos.LeftPercent, 1e-9)
	assert.InDelta(t, 10.0, pos.WidthPercent, 1e-9)
	assert.True(t, pos.Visible)

	reversed := tr.CalculatePosition(4, 2)
	assert.InDelta(t, 200.0, reversed.LeftPixel, 1e-9)
	assert.Equal(t, constants.MinWidthPixel, reversed.WidthPixel)
}

func TestPointEventMinimumWidth(t *testing.T) {
	for _, zoom := range []float64{constants.MinZoom, 0.1, 1, 40, 1e6} {
		tr := New(Params{ViewportStart: -3, Zoom: zoom, Width: 1200})
		for _, tm := range []float64{-100, -3, 0, 17.3, 1e5} {
			pos := tr.CalculatePosition(tm, tm)
			assert.GreaterOrEqual(t, pos.WidthPercent, constants.MinWidthPercent)
			assert.GreaterOrEqual(t, pos.WidthPixel, constants.MinWidthPixel)
		}
	}
}

func TestIsVisibleBoundary(t *testing.T) {
	tests := []struct {
		name  string
		left  float64
		width float64
		want  bool
	}{
		// The boundary pairs are read as an element whose far edge sits
		// exactly on a margin (right edge at -10, left edge at 110). A
		// literal left=-10 with positive width satisfies the predicate.
		{"inside", 0, 10, true},
		{"right edge at minus margin", -20, 10, false},
		{"left edge at plus margin", 110, 5, false},
		{"partly in left margin", -15, 6, true},
		{"just inside right margin", 109.9, 1, true},
		{"far right", 250, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVisible(tt.left, tt.width))
		})
	}
}

func TestCalculateEventPositionSkipsUntimed(t *testing.T) {
	tr := New(Params{Zoom: 1, Width: 1000})

	_, ok := tr.CalculateEventPosition(model.Event{ID: "draft"})
	assert.False(t, ok)

	pos, ok := tr.CalculateEventPosition(model.Event{ID: "point", TimeStart: model.Float64Ptr(3)})
	require.True(t, ok)
	assert.InDelta(t, 150.0, pos.LeftPixel, 1e-9)
	assert.Equal(t, constants.MinWidthPixel, pos.WidthPixel)
}

func TestDayLabels(t *testing.T) {
	labels := DayLabels{}

	assert.Equal(t, "day 3", labels.DateLabel(3.75))
	assert.Equal(t, "day -1", labels.DateLabel(-0.5))
	assert.Equal(t, "18:00", labels.TimeLabel(3.75))
	assert.Equal(t, "12:00", labels.TimeLabel(-0.5))
	assert.Equal(t, "23:59", labels.TimeLabel(0.99999999))
}

func TestLabelFuncsFallback(t *testing.T) {
	f := LabelFuncs{Date: func(t float64) string { return "D" }}

	assert.Equal(t, "D", f.DateLabel(1))
	assert.Equal(t, "06:00", f.TimeLabel(1.25))
}
