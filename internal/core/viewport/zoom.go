package viewport

import (
	"math"

	"github.com/penwyp/go-timeline-view/internal/core/constants"
	"github.com/penwyp/go-timeline-view/internal/core/transform"
	"github.com/penwyp/go-timeline-view/internal/util"
)

// fitIterations bounds the refinement of ZoomToFit when collapsed segments
// make the adjusted span depend on the zoom being chosen.
const fitIterations = 4

// ZoomIn multiplies the zoom by ZoomStep around the viewport center.
func (c *Controller) ZoomIn() {
	c.applyZoom(c.zoom * constants.ZoomStep)
}

// ZoomOut divides the zoom by ZoomStep around the viewport center.
func (c *Controller) ZoomOut() {
	c.applyZoom(c.zoom / constants.ZoomStep)
}

// SetZoom sets an explicit zoom around the viewport center.
func (c *Controller) SetZoom(zoom float64) {
	if zoom <= 0 || math.IsNaN(zoom) {
		return
	}
	c.applyZoom(zoom)
}

// ZoomReset returns to 1x and re-enables auto-centering.
func (c *Controller) ZoomReset() {
	c.manual = false
	c.applyZoom(constants.DefaultZoom)
}

// ZoomToFit picks the zoom that shows the span of all timed events (or the
// overall range when none is timed) with FitPaddingRatio of padding, and
// centers on it. It re-enables auto-centering.
func (c *Controller) ZoomToFit() {
	if c.width <= 0 {
		return
	}

	r, ok := c.eventBounds()
	if !ok {
		if c.overallRange == nil {
			return
		}
		r = *c.overallRange
	}

	zoom := c.zoom
	atZoom1 := c.width / constants.BasePixelsPerDay
	for i := 0; i < fitIterations; i++ {
		ppt := transform.PixelsPerTimeUnit(zoom)
		span := c.compressor.AdjustedViewportRangeAt(r.Min, r.Max, ppt)
		padded := span * (1 + constants.FitPaddingRatio)
		if padded <= 0 {
			break
		}
		next := transform.ClampZoom(atZoom1 / padded)
		if math.Abs(next-zoom) <= 1e-9*zoom {
			zoom = next
			break
		}
		zoom = next
	}

	c.zoom = zoom
	c.manual = false
	c.start = c.centeredStart(r, zoom)
	util.LogDebugf("viewport: fit [%.4f, %.4f] zoom=%.6f start=%.4f", r.Min, r.Max, c.zoom, c.start)
}
