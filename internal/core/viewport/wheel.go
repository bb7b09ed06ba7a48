package viewport

import (
	"math"

	"github.com/penwyp/go-timeline-view/internal/core/constants"
)

// DeltaMode is the unit of a wheel delta.
type DeltaMode int

const (
	DeltaPixel DeltaMode = iota
	DeltaLine
	DeltaPage
)

// WheelEvent is one wheel or trackpad scroll step.
type WheelEvent struct {
	DeltaX    float64
	DeltaY    float64
	DeltaMode DeltaMode
	Ctrl      bool
	Meta      bool
	Shift     bool
}

func (ev WheelEvent) pixels() (dx, dy float64) {
	scale := 1.0
	switch ev.DeltaMode {
	case DeltaLine:
		scale = constants.WheelLineHeightPx
	case DeltaPage:
		scale = constants.WheelPageHeightPx
	}
	return ev.DeltaX * scale, ev.DeltaY * scale
}

// HandleWheel routes a wheel event. Ctrl or meta zooms (this is how
// trackpad pinch arrives), a mostly horizontal delta pans, and shift with a
// vertical delta zooms. Plain vertical scrolling is left to the host and
// reported as unhandled.
func (c *Controller) HandleWheel(ev WheelEvent) bool {
	if c.state != Idle {
		return false
	}

	dx, dy := ev.pixels()

	switch {
	case (ev.Ctrl || ev.Meta) && dy != 0:
		sensitivity := constants.WheelZoomSensitivity
		if c.platform == PlatformMac {
			sensitivity = constants.TrackpadZoomSensitivity
		}
		c.wheelZoom(dy, sensitivity)
		return true

	case dx != 0 && math.Abs(dx) > math.Abs(dy):
		c.PanBy(dx)
		return true

	case ev.Shift && dy != 0:
		c.wheelZoom(dy, constants.WheelZoomSensitivity)
		return true
	}

	return false
}

// wheelZoom zooms in for negative deltas (scrolling up) and out for
// positive ones.
func (c *Controller) wheelZoom(dy, sensitivity float64) {
	factor := math.Exp(-dy * sensitivity)
	limit := constants.MaxWheelZoomFactorPerEvent
	factor = math.Max(1/limit, math.Min(limit, factor))

	c.manual = true
	c.applyZoom(c.zoom * factor)
}
