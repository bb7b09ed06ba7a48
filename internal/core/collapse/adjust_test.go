package collapse

import (
	"testing"

	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func newSpecEngine(ppt float64) *Engine {
	engine := NewEngine()
	engine.Compute([]model.Event{ev("A", 0, 10), ev("B", 100, 110)}, fixedScale(ppt))
	return engine
}

func TestFixedCompressedTimeUnits(t *testing.T) {
	assert.InDelta(t, 1.6, FixedCompressedTimeUnits(50), 1e-12)
	assert.InDelta(t, 0.8, FixedCompressedTimeUnits(100), 1e-12)
	assert.Greater(t, FixedCompressedTimeUnits(0), 0.0)
}

func TestAdjustedPosition(t *testing.T) {
	// collapsed [30,80] at 50px/day is drawn 1.6 days wide, saving 48.4
	engine := newSpecEngine(50)

	tests := []struct {
		time float64
		want float64
	}{
		{-5, -5},
		{20, 20},
		{30, 30},
		{55, 30.8},
		{80, 31.6},
		{100, 51.6},
		{110, 61.6},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, engine.AdjustedPosition(tt.time), 1e-9, "t=%v", tt.time)
	}
}

func TestAdjustedPositionIsMonotonic(t *testing.T) {
	for _, ppt := range []float64{0.05, 0.5, 1, 50, 500} {
		engine := NewEngine()
		engine.Compute([]model.Event{
			ev("A", 0, 10),
			ev("B", 100, 110),
			{ID: "p", TimeStart: model.Float64Ptr(400)},
			ev("C", 401, 402),
			ev("D", 1000, 1500),
		}, fixedScale(ppt))

		prev := engine.AdjustedPosition(-10)
		for tm := -10.0; tm <= 2000; tm += 0.25 {
			cur := engine.AdjustedPosition(tm)
			assert.GreaterOrEqual(t, cur, prev, "ppt=%v t=%v", ppt, tm)
			prev = cur
		}
	}
}

func TestAdjustedPositionNarrowSegmentKeepsRealWidth(t *testing.T) {
	// 0.5px/day makes the fixed width 160 days, wider than the 50-day segment.
	engine := newSpecEngine(0.5)

	for _, tm := range []float64{0, 30, 55, 80, 200} {
		assert.InDelta(t, tm, engine.AdjustedPosition(tm), 1e-9)
	}
}

func TestInverseAdjustedPositionRoundTrip(t *testing.T) {
	engine := NewEngine()
	engine.Compute([]model.Event{ev("A", 0, 10), ev("B", 100, 110), ev("C", 300, 301)}, fixedScale(50))

	for tm := -20.0; tm <= 400; tm += 1.5 {
		a := engine.AdjustedPosition(tm)
		assert.InDelta(t, tm, engine.InverseAdjustedPosition(a), 1e-9, "t=%v", tm)
	}
}

func TestAdjustedPositionAtIgnoresStoredScale(t *testing.T) {
	engine := newSpecEngine(50)

	// at 100px/day the segment is 0.8 days wide
	assert.InDelta(t, 30.8, engine.AdjustedPositionAt(80, 100), 1e-9)
	assert.InDelta(t, 31.6, engine.AdjustedPosition(80), 1e-9)
	assert.InDelta(t, 80.0, engine.InverseAdjustedPositionAt(30.8, 100), 1e-9)
}

func TestSetScale(t *testing.T) {
	engine := newSpecEngine(50)
	engine.SetScale(fixedScale(100))

	assert.Equal(t, 100.0, engine.PixelsPerTimeUnit())
	assert.InDelta(t, 30.8, engine.AdjustedPosition(80), 1e-9)
}

func TestAdjustedViewportRange(t *testing.T) {
	engine := newSpecEngine(50)

	tests := []struct {
		name     string
		min, max float64
	}{
		{"whole timeline", 0, 110},
		{"inside segment", 40, 60},
		{"straddling start", 20, 50},
		{"straddling end", 70, 120},
		{"before segment", -10, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := engine.AdjustedPosition(tt.max) - engine.AdjustedPosition(tt.min)
			assert.InDelta(t, want, engine.AdjustedViewportRange(tt.min, tt.max), 1e-9)
		})
	}

	assert.InDelta(t, 0.64, engine.AdjustedViewportRange(40, 60), 1e-9)
	assert.Equal(t, 0.0, engine.AdjustedViewportRange(10, 10))
	assert.Equal(t, 0.0, engine.AdjustedViewportRange(10, 5))
}

func TestAdjustedPositionWithoutSegments(t *testing.T) {
	engine := NewEngine()

	assert.Equal(t, 12.5, engine.AdjustedPosition(12.5))
	assert.Equal(t, 12.5, engine.InverseAdjustedPosition(12.5))
	assert.Equal(t, 7.5, engine.AdjustedViewportRange(5, 12.5))
}
