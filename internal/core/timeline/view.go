package timeline

import (
	"math"

	"github.com/penwyp/go-timeline-view/internal/core/cache"
	"github.com/penwyp/go-timeline-view/internal/core/collapse"
	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/penwyp/go-timeline-view/internal/core/transform"
	"github.com/penwyp/go-timeline-view/internal/core/viewport"
	"github.com/penwyp/go-timeline-view/internal/util"
)

// ViewOptions configure a View.
type ViewOptions struct {
	Width        float64
	Zoom         float64
	Start        float64
	Platform     viewport.Platform
	Labels       transform.LabelFormatter
	OverallRange *model.TimeRange
	OnCreateAt   viewport.CreateAtFunc
	CacheSize    int
}

// View ties one event list to a viewport controller and a collapse engine.
// Mutators go through the View or its Controller; Layout only reads.
type View struct {
	builder    *Builder
	events     []model.Event
	eventsKey  string
	engine     *collapse.Engine
	controller *viewport.Controller
	labels     transform.LabelFormatter
	layouts    *cache.LayoutCache
}

// NewView creates an empty view.
func NewView(opts ViewOptions) *View {
	engine := collapse.NewEngine()
	labels := opts.Labels
	if labels == nil {
		labels = transform.DayLabels{}
	}

	v := &View{
		builder: NewBuilder(),
		engine:  engine,
		labels:  labels,
		layouts: cache.NewLayoutCache(opts.CacheSize),
	}
	v.controller = viewport.NewController(viewport.Options{
		Width:        opts.Width,
		Zoom:         opts.Zoom,
		Start:        opts.Start,
		Platform:     opts.Platform,
		OverallRange: opts.OverallRange,
		OnCreateAt:   opts.OnCreateAt,
		Compressor:   engine,
	})
	engine.SetScale(v.controller)
	v.eventsKey = cache.EventsFingerprint(nil)
	return v
}

// Controller exposes the viewport controller for gesture and zoom input.
func (v *View) Controller() *viewport.Controller {
	return v.controller
}

// Events returns the normalized event list.
func (v *View) Events() []model.Event {
	return v.events
}

// SetEvents replaces the event list, re-derives collapsible segments and
// lets the controller recenter.
func (v *View) SetEvents(events []model.Event) {
	v.SetSources(Source{Name: "view", Events: events})
}

// SetSources merges several event sources, primaries before
// supplementaries, and replaces the event list with the result.
func (v *View) SetSources(sources ...Source) {
	v.events = v.builder.Merge(sources...)
	v.eventsKey = cache.EventsFingerprint(v.events)
	segments := v.engine.Compute(v.events, v.controller)
	v.controller.SetEvents(v.events)
	util.LogDebugf("timeline: %d events, %d segments, %d collapsible",
		len(v.events), len(segments), len(v.engine.CollapsedSegments()))
}

// Segments returns the current segment list.
func (v *View) Segments() []model.TimeSegment {
	return v.engine.Segments()
}

// CollapsedSegments returns every collapsible segment with its state.
func (v *View) CollapsedSegments() []model.CollapsedSegment {
	return v.engine.CollapsedSegments()
}

// ToggleSegment flips a segment between collapsed and expanded and reports
// whether it is now collapsed.
func (v *View) ToggleSegment(id string) bool {
	collapsed := v.engine.ToggleSegmentCollapse(id)
	v.controller.Recenter()
	return collapsed
}

// Expand marks ids expanded. Ids with no current segment are remembered and
// apply once a segment with that id appears.
func (v *View) Expand(ids ...string) {
	changed := false
	for _, id := range ids {
		if id == "" || v.engine.IsExpanded(id) {
			continue
		}
		v.engine.ToggleSegmentCollapse(id)
		changed = true
	}
	if changed {
		v.controller.Recenter()
	}
}

// ExpandedIDs returns the ids of expanded segments in sorted order.
func (v *View) ExpandedIDs() []string {
	return v.engine.ExpandedIDs()
}

// ExpandAll expands every collapsible segment.
func (v *View) ExpandAll() {
	v.engine.ExpandAll()
	v.controller.Recenter()
}

// CollapseAll collapses every collapsible segment.
func (v *View) CollapseAll() {
	v.engine.CollapseAll()
	v.controller.Recenter()
}

// NearestSegment returns the collapsible segment closest to time t.
func (v *View) NearestSegment(t float64) (model.CollapsedSegment, bool) {
	var best model.CollapsedSegment
	bestDist := math.Inf(1)
	for _, seg := range v.engine.CollapsedSegments() {
		dist := 0.0
		switch {
		case t < seg.StartTime:
			dist = seg.StartTime - t
		case t > seg.EndTime:
			dist = t - seg.EndTime
		}
		if dist < bestDist {
			best, bestDist = seg, dist
		}
	}
	return best, !math.IsInf(bestDist, 1)
}

// CenterTime returns the time drawn at the middle of the viewport.
func (v *View) CenterTime() float64 {
	return v.controller.TimeAtPixel(v.controller.Snapshot().WidthPixels / 2)
}

// Transform returns the coordinate transform of the current viewport.
func (v *View) Transform() *transform.Transform {
	vp := v.controller.Snapshot()
	ppt := transform.PixelsPerTimeUnit(vp.ZoomLevel)
	engine := v.engine
	return transform.New(transform.Params{
		ViewportStart: vp.StartTime,
		Zoom:          vp.ZoomLevel,
		Width:         vp.WidthPixels,
		Adjust: func(t float64) float64 {
			return engine.AdjustedPositionAt(t, ppt)
		},
		Labels: v.labels,
	})
}

// Layout computes event positions, segment markers and ticks for the
// current state. It has no side effects besides memoization.
func (v *View) Layout() model.Layout {
	key := cache.Key(v.eventsKey, v.controller.Snapshot(), v.engine.ExpandedIDs())
	if layout, ok := v.layouts.Get(key); ok {
		return layout
	}

	layout := v.Transform().CalculateAllElements(v.events, v.engine.Segments())
	v.layouts.Set(key, layout)
	return layout
}

// CacheStats reports layout memoization effectiveness.
func (v *View) CacheStats() cache.Stats {
	return v.layouts.Stats()
}
