package view

import (
	"fmt"
	"path/filepath"

	"github.com/penwyp/go-timeline-view/internal/core/timeline"
	"github.com/penwyp/go-timeline-view/internal/core/transform"
	"github.com/penwyp/go-timeline-view/internal/util"
)

// NewTimelineView creates a view of the given pixel width configured from c.
func NewTimelineView(c *Config, width float64, labels transform.LabelFormatter) *timeline.View {
	return timeline.NewView(timeline.ViewOptions{
		Width:    width,
		Zoom:     c.Zoom,
		Platform: c.ViewportPlatform(),
		Labels:   labels,
	})
}

// ApplyConfig applies the initial expand, fit and start settings once events
// are loaded. Fit wins over zoom; an explicit start wins over centering.
func ApplyConfig(v *timeline.View, c *Config) {
	if len(c.Expand) > 0 {
		v.Expand(c.Expand...)
	}

	ctrl := v.Controller()
	if c.Fit {
		ctrl.ZoomToFit()
	}
	if c.Start != nil {
		ctrl.SetViewportStart(*c.Start)
	}

	vp := ctrl.Snapshot()
	util.LogDebugf("initial viewport start=%.4f zoom=%.4f width=%.0f expanded=%v",
		vp.StartTime, vp.ZoomLevel, vp.WidthPixels, v.ExpandedIDs())
}

// Title names a set of loaded files for headers: the base name of a single
// file, otherwise the count.
func Title(files []string) string {
	if len(files) == 1 {
		return filepath.Base(files[0])
	}
	return fmt.Sprintf("%d files", len(files))
}
