// Package viewport holds the interactive zoom/pan state machine of the
// timeline. It turns pointer, touch and wheel input into viewport mutations
// and decides when to recenter on the event set.
package viewport

import (
	"math"
	"time"

	"github.com/penwyp/go-timeline-view/internal/core/constants"
	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/penwyp/go-timeline-view/internal/core/transform"
	"github.com/penwyp/go-timeline-view/internal/util"
)

// GestureState is the controller's interaction state.
type GestureState int

const (
	Idle GestureState = iota
	Dragging
	Pinching
)

func (s GestureState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Pinching:
		return "pinching"
	default:
		return "unknown"
	}
}

// Platform selects wheel sensitivity. Trackpads on macOS report pinch as
// ctrl+wheel with much smaller deltas than a mouse wheel.
type Platform int

const (
	PlatformOther Platform = iota
	PlatformMac
)

// CreateAtFunc is called when a double tap asks for a new event at a time.
type CreateAtFunc func(t float64)

// Options configure a new Controller.
type Options struct {
	Width        float64
	Zoom         float64
	Start        float64
	Platform     Platform
	OverallRange *model.TimeRange
	OnCreateAt   CreateAtFunc
	Compressor   Compressor
}

type pointerKind int

const (
	pointerMouse pointerKind = iota
	pointerTouch
)

type dragState struct {
	kind        pointerKind
	originX     float64
	originY     float64
	originStart float64
	panEngaged  bool
	startedAt   time.Time
	lastX       float64
	lastY       float64
}

type pinchState struct {
	initialDistance float64
	initialZoom     float64
	initialStart    float64
	originStart     float64
	originZoom      float64
}

// Controller owns zoom, pan and gesture state for one timeline view. All
// methods must be called from the same goroutine.
type Controller struct {
	start    float64
	zoom     float64
	width    float64
	platform Platform

	manual   bool
	creating bool

	state GestureState
	drag  dragState
	pinch pinchState
	taps  *TapTracker

	timed        []model.Event
	overallRange *model.TimeRange
	compressor   Compressor
	onCreateAt   CreateAtFunc
}

// NewController creates a controller in the Idle state.
func NewController(opts Options) *Controller {
	zoom := opts.Zoom
	if zoom == 0 {
		zoom = constants.DefaultZoom
	}
	c := &Controller{
		start:        opts.Start,
		zoom:         transform.ClampZoom(zoom),
		width:        sanitizeWidth(opts.Width),
		platform:     opts.Platform,
		taps:         NewTapTracker(),
		overallRange: opts.OverallRange,
		compressor:   opts.Compressor,
		onCreateAt:   opts.OnCreateAt,
	}
	if c.compressor == nil {
		c.compressor = identityCompressor{}
	}
	return c
}

func sanitizeWidth(w float64) float64 {
	if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return 0
	}
	return w
}

// Snapshot returns the current viewport.
func (c *Controller) Snapshot() model.Viewport {
	return model.Viewport{
		StartTime:   c.start,
		ZoomLevel:   c.zoom,
		WidthPixels: c.width,
	}
}

// State returns the current gesture state.
func (c *Controller) State() GestureState {
	return c.state
}

// TapState returns the double-tap tracker state.
func (c *Controller) TapState() TapState {
	return c.taps.State()
}

// IsManuallyPositioned reports whether auto-recentering is suspended.
func (c *Controller) IsManuallyPositioned() bool {
	return c.manual
}

// PixelsPerTimeUnit returns the current scale.
func (c *Controller) PixelsPerTimeUnit() float64 {
	return transform.PixelsPerTimeUnit(c.zoom)
}

// SetCompressor attaches the adjusted-position mapping; nil detaches it.
func (c *Controller) SetCompressor(comp Compressor) {
	if comp == nil {
		comp = identityCompressor{}
	}
	c.compressor = comp
}

// SetOnCreateAt replaces the double-tap callback.
func (c *Controller) SetOnCreateAt(fn CreateAtFunc) {
	c.onCreateAt = fn
}

// SetCreatingEvent toggles "creating event" mode, which blocks new drags.
func (c *Controller) SetCreatingEvent(creating bool) {
	c.creating = creating
}

// SetWidth updates the measured viewport width.
func (c *Controller) SetWidth(width float64) {
	c.width = sanitizeWidth(width)
	c.recenter()
}

// SetOverallRange sets the range to center on when no event has a time.
func (c *Controller) SetOverallRange(r *model.TimeRange) {
	c.overallRange = r
	c.recenter()
}

// SetEvents replaces the event set and recenters unless the viewport was
// positioned by the user.
func (c *Controller) SetEvents(events []model.Event) {
	timed := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.IsTimed() {
			timed = append(timed, e)
		}
	}
	c.timed = timed
	c.recenter()
}

// SetViewportStart moves the viewport to an explicit start time and marks
// it manually positioned.
func (c *Controller) SetViewportStart(t float64) {
	c.start = t
	c.manual = true
}

// PanBy pans by a pixel delta. Positive values reveal later times.
func (c *Controller) PanBy(deltaPixels float64) {
	c.start += deltaPixels / c.PixelsPerTimeUnit()
	c.manual = true
}

// ResetManualPositioning re-enables auto-recentering.
func (c *Controller) ResetManualPositioning() {
	c.manual = false
	c.recenter()
}

// Recenter re-runs auto-centering after the compressor's segments changed.
func (c *Controller) Recenter() {
	c.recenter()
}

// TimeAtPixel returns the time drawn at pixel x, inverting collapse
// compression.
func (c *Controller) TimeAtPixel(x float64) float64 {
	ppt := c.PixelsPerTimeUnit()
	origin := c.compressor.AdjustedPositionAt(c.start, ppt)
	return c.compressor.InverseAdjustedPositionAt(origin+x/ppt, ppt)
}

// eventBounds returns the combined span of all timed events.
func (c *Controller) eventBounds() (model.TimeRange, bool) {
	if len(c.timed) == 0 {
		return model.TimeRange{}, false
	}
	r := model.TimeRange{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, e := range c.timed {
		r.Min = math.Min(r.Min, e.Start())
		r.Max = math.Max(r.Max, e.End())
	}
	return r, true
}

// recenter places the midpoint of the events' combined span (or of the
// overall range when no event is timed) at the viewport center. It does
// nothing while a gesture is active or the viewport is manually positioned.
func (c *Controller) recenter() {
	if c.manual || c.state != Idle {
		return
	}

	r, ok := c.eventBounds()
	if !ok {
		if c.overallRange == nil {
			return
		}
		r = *c.overallRange
	}

	c.start = c.centeredStart(r, c.zoom)
}

// centeredStart returns the start time that centers r at zoom, measured on
// the adjusted axis.
func (c *Controller) centeredStart(r model.TimeRange, zoom float64) float64 {
	ppt := transform.PixelsPerTimeUnit(zoom)
	lo := c.compressor.AdjustedPositionAt(r.Min, ppt)
	hi := c.compressor.AdjustedPositionAt(r.Max, ppt)
	mid := (lo + hi) / 2
	half := transform.VisibleTimeWidth(c.width, zoom) / 2
	return c.compressor.InverseAdjustedPositionAt(mid-half, ppt)
}

// startForZoom returns the start time that keeps the time at the viewport
// center fixed when going from (fromStart, fromZoom) to toZoom.
func (c *Controller) startForZoom(fromStart, fromZoom, toZoom float64) float64 {
	oldPPT := transform.PixelsPerTimeUnit(fromZoom)
	newPPT := transform.PixelsPerTimeUnit(toZoom)

	centerAdj := c.compressor.AdjustedPositionAt(fromStart, oldPPT) +
		transform.VisibleTimeWidth(c.width, fromZoom)/2
	center := c.compressor.InverseAdjustedPositionAt(centerAdj, oldPPT)

	startAdj := c.compressor.AdjustedPositionAt(center, newPPT) -
		transform.VisibleTimeWidth(c.width, toZoom)/2
	return c.compressor.InverseAdjustedPositionAt(startAdj, newPPT)
}

// applyZoom is the single mutation site for zoom outside of pinch: it clamps,
// preserves the center, applies the below-1× heuristic and recenters.
func (c *Controller) applyZoom(newZoom float64) {
	prev := c.zoom
	newZoom = transform.ClampZoom(newZoom)

	c.start = c.startForZoom(c.start, prev, newZoom)
	c.zoom = newZoom

	if prev > 1 && newZoom < 1 && c.manual {
		util.LogDebug("viewport: zoomed out below 1x, re-enabling auto-centering")
		c.manual = false
	}
	c.recenter()
}

// Cancel abandons the active gesture and restores the viewport it started
// from.
func (c *Controller) Cancel() {
	switch c.state {
	case Dragging:
		c.start = c.drag.originStart
	case Pinching:
		c.zoom = c.pinch.originZoom
		c.start = c.pinch.originStart
	default:
		return
	}
	util.LogDebugf("viewport: %s cancelled", c.state)
	c.state = Idle
}
