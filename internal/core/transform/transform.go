// Package transform converts between time, pixel and percentage coordinates
// for a fixed-width timeline viewport. Everything here is a pure function of
// the construction parameters and the call arguments.
package transform

import (
	"math"

	"github.com/penwyp/go-timeline-view/internal/core/constants"
	"github.com/penwyp/go-timeline-view/internal/core/model"
)

// AdjustFunc maps an original time to its collapse-adjusted time.
type AdjustFunc func(t float64) float64

// Identity is the AdjustFunc used when nothing is collapsed.
func Identity(t float64) float64 {
	return t
}

// Params are the inputs a Transform is built from.
type Params struct {
	ViewportStart float64
	Zoom          float64
	Width         float64
	Adjust        AdjustFunc
	Labels        LabelFormatter
}

// Transform is an immutable coordinate mapping for one viewport state.
type Transform struct {
	start  float64
	zoom   float64
	width  float64
	adjust AdjustFunc
	labels LabelFormatter

	ppt         float64
	adjustedOrg float64
}

// New creates a Transform. A zoom at or below MinZoom is clamped, a negative
// or NaN width is treated as zero, and nil Adjust/Labels fall back to the
// identity mapping and DayLabels.
func New(p Params) *Transform {
	adjust := p.Adjust
	if adjust == nil {
		adjust = Identity
	}
	labels := p.Labels
	if labels == nil {
		labels = DayLabels{}
	}
	width := p.Width
	if width < 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		width = 0
	}
	zoom := ClampZoom(p.Zoom)

	return &Transform{
		start:       p.ViewportStart,
		zoom:        zoom,
		width:       width,
		adjust:      adjust,
		labels:      labels,
		ppt:         PixelsPerTimeUnit(zoom),
		adjustedOrg: adjust(p.ViewportStart),
	}
}

// ClampZoom keeps a zoom level strictly positive.
func ClampZoom(zoom float64) float64 {
	if math.IsNaN(zoom) || zoom <= constants.MinZoom {
		return constants.MinZoom
	}
	if math.IsInf(zoom, 1) {
		return math.MaxFloat64 / constants.BasePixelsPerDay
	}
	return zoom
}

// PixelsPerTimeUnit returns the scale for a zoom level.
func PixelsPerTimeUnit(zoom float64) float64 {
	return constants.BasePixelsPerDay * ClampZoom(zoom)
}

// VisibleTimeWidth returns how many (unadjusted) time units fit in width
// pixels at the given zoom.
func VisibleTimeWidth(width, zoom float64) float64 {
	if width <= 0 {
		return 0
	}
	return width / PixelsPerTimeUnit(zoom)
}

// PixelsPerTimeUnit returns the scale of this transform.
func (t *Transform) PixelsPerTimeUnit() float64 {
	return t.ppt
}

// Zoom returns the clamped zoom level.
func (t *Transform) Zoom() float64 {
	return t.zoom
}

// Width returns the viewport width in pixels.
func (t *Transform) Width() float64 {
	return t.width
}

// ViewportStartTime returns the time at pixel 0.
func (t *Transform) ViewportStartTime() float64 {
	return t.start
}

// VisibleTimeWidth returns the unadjusted time span of the viewport.
func (t *Transform) VisibleTimeWidth() float64 {
	return VisibleTimeWidth(t.width, t.zoom)
}

// ViewportEndTime is derived from start, zoom and width.
func (t *Transform) ViewportEndTime() float64 {
	return t.start + t.VisibleTimeWidth()
}

// Viewport returns the viewport this transform was built for.
func (t *Transform) Viewport() model.Viewport {
	return model.Viewport{
		StartTime:   t.start,
		ZoomLevel:   t.zoom,
		WidthPixels: t.width,
	}
}

// Labels returns the label formatter in use.
func (t *Transform) Labels() LabelFormatter {
	return t.labels
}

// TimeToPixel maps a time to a pixel offset from the viewport's left edge,
// through the adjusted-position function.
func (t *Transform) TimeToPixel(tm float64) float64 {
	return (t.adjust(tm) - t.adjustedOrg) * t.ppt
}

// PixelToTime inverts the unadjusted mapping only. Inside or beyond a
// collapsed region the result is not the time that TimeToPixel would place
// at p. A zero-width viewport returns the viewport start.
func (t *Transform) PixelToTime(p float64) float64 {
	if t.width <= 0 {
		return t.start
	}
	return t.start + p/t.ppt
}

// TimeToPercent maps a time to a percentage of the viewport width.
func (t *Transform) TimeToPercent(tm float64) float64 {
	return t.pixelToPercent(t.TimeToPixel(tm))
}

func (t *Transform) pixelToPercent(px float64) float64 {
	if t.width <= 0 {
		return 0
	}
	return px / t.width * 100
}
