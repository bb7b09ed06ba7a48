package viewport

import (
	"math"
	"time"

	"github.com/penwyp/go-timeline-view/internal/core/constants"
	"github.com/penwyp/go-timeline-view/internal/util"
)

// TouchPoint is one finger position in viewport pixels.
type TouchPoint struct {
	X float64
	Y float64
}

// TouchEvent carries the fingers still on the surface (Touches) and, for
// touch end, the fingers that were lifted (Changed).
type TouchEvent struct {
	Touches []TouchPoint
	Changed []TouchPoint
	Time    time.Time
}

// PointerDown starts a mouse drag. It returns false when the press was
// ignored.
func (c *Controller) PointerDown(x float64) bool {
	if c.creating || c.state == Pinching {
		return false
	}
	c.beginDrag(pointerMouse, x, 0, time.Time{})
	c.drag.panEngaged = true
	return true
}

// PointerMove pans the active mouse drag so the grabbed time stays under
// the pointer.
func (c *Controller) PointerMove(x float64) {
	if c.state != Dragging || c.drag.kind != pointerMouse {
		return
	}
	c.panTo(x)
}

// PointerUp finishes a mouse drag and marks the viewport manually
// positioned.
func (c *Controller) PointerUp(x float64) {
	if c.state != Dragging || c.drag.kind != pointerMouse {
		return
	}
	c.panTo(x)
	c.state = Idle
	c.manual = true
	util.LogDebugf("viewport: drag ended at start=%.4f", c.start)
}

// PointerLeave abandons a mouse drag that left the surface.
func (c *Controller) PointerLeave() {
	if c.state == Dragging && c.drag.kind == pointerMouse {
		c.Cancel()
	}
}

// TouchStart begins a touch pan (one finger) or pinch (two or more).
func (c *Controller) TouchStart(ev TouchEvent) {
	c.taps.Expire(ev.Time)

	switch {
	case len(ev.Touches) >= 2:
		c.beginPinch(ev.Touches[0], ev.Touches[1])
	case len(ev.Touches) == 1:
		if c.creating || c.state == Pinching {
			return
		}
		p := ev.Touches[0]
		c.beginDrag(pointerTouch, p.X, p.Y, ev.Time)
	}
}

// TouchMove updates the active pinch or touch pan. A touch pan engages only
// once the finger has travelled past the pan threshold.
func (c *Controller) TouchMove(ev TouchEvent) {
	switch c.state {
	case Pinching:
		if len(ev.Touches) < 2 || c.pinch.initialDistance <= 0 {
			return
		}
		dist := distance(ev.Touches[0], ev.Touches[1])
		c.pinchTo(dist / c.pinch.initialDistance)

	case Dragging:
		if c.drag.kind != pointerTouch || len(ev.Touches) == 0 {
			return
		}
		p := ev.Touches[0]
		c.drag.lastX, c.drag.lastY = p.X, p.Y
		if !c.drag.panEngaged {
			if math.Hypot(p.X-c.drag.originX, p.Y-c.drag.originY) <= constants.TouchPanThresholdPx {
				return
			}
			c.drag.panEngaged = true
		}
		c.panTo(p.X)
	}
}

// TouchEnd commits the active pinch or pan. A short touch that never
// engaged panning counts as a tap; two such taps close together invoke the
// create-at callback with the time under the second tap.
func (c *Controller) TouchEnd(ev TouchEvent) {
	switch c.state {
	case Pinching:
		if len(ev.Touches) >= 2 {
			return
		}
		c.state = Idle
		util.LogDebugf("viewport: pinch ended at zoom=%.4f", c.zoom)
		if c.pinch.originZoom > 1 && c.zoom < 1 {
			util.LogDebug("viewport: pinched out below 1x, re-enabling auto-centering")
			c.manual = false
			c.recenter()
			return
		}
		c.manual = true

	case Dragging:
		if c.drag.kind != pointerTouch {
			return
		}
		x, y := c.drag.lastX, c.drag.lastY
		if len(ev.Changed) > 0 {
			x, y = ev.Changed[0].X, ev.Changed[0].Y
		}
		engaged := c.drag.panEngaged
		quick := ev.Time.Sub(c.drag.startedAt) < constants.QuickTapMaxDuration
		c.state = Idle

		if engaged {
			c.manual = true
			c.taps.Reset()
			return
		}
		if !quick {
			c.taps.Reset()
			return
		}
		if c.taps.Tap(x, y, ev.Time) == DoubleTapFired && c.onCreateAt != nil {
			t := c.TimeAtPixel(x)
			util.LogDebugf("viewport: double tap at x=%.1f -> t=%.4f", x, t)
			c.onCreateAt(t)
		}
	}
}

// TouchCancel abandons the active touch gesture.
func (c *Controller) TouchCancel() {
	c.taps.Reset()
	c.Cancel()
}

func (c *Controller) beginDrag(kind pointerKind, x, y float64, now time.Time) {
	c.state = Dragging
	c.drag = dragState{
		kind:        kind,
		originX:     x,
		originY:     y,
		originStart: c.start,
		startedAt:   now,
		lastX:       x,
		lastY:       y,
	}
}

// beginPinch starts a pinch from the current viewport. A one-finger pan in
// progress is kept as the pinch's starting point, but cancelling rolls back
// to where the pan began.
func (c *Controller) beginPinch(a, b TouchPoint) {
	originStart, originZoom := c.start, c.zoom
	switch c.state {
	case Dragging:
		originStart = c.drag.originStart
	case Pinching:
		originStart, originZoom = c.pinch.originStart, c.pinch.originZoom
	}
	c.taps.Reset()
	c.state = Pinching
	c.pinch = pinchState{
		initialDistance: distance(a, b),
		initialZoom:     c.zoom,
		initialStart:    c.start,
		originStart:     originStart,
		originZoom:      originZoom,
	}
}

// panTo moves the viewport so the time grabbed at the drag origin sits
// under x. Panning works in unadjusted time.
func (c *Controller) panTo(x float64) {
	delta := x - c.drag.originX
	c.start = c.drag.originStart - delta/c.PixelsPerTimeUnit()
}

// pinchTo scales the pinch's initial zoom while keeping its initial center
// time fixed.
func (c *Controller) pinchTo(scale float64) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return
	}
	zoom := math.Max(constants.MinZoom, c.pinch.initialZoom*scale)
	c.start = c.startForZoom(c.pinch.initialStart, c.pinch.initialZoom, zoom)
	c.zoom = zoom
}

func distance(a, b TouchPoint) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
