package commands

import (
	"github.com/spf13/cobra"

	"github.com/penwyp/go-timeline-view/internal/application/view"
	"github.com/penwyp/go-timeline-view/internal/presentation/display"
)

// viewportFlags holds the viewport settings a command accepts. Each command
// owns its own set so defaults can differ between them.
type viewportFlags struct {
	width     float64
	cellWidth float64
	zoom      float64
	start     float64
	fit       bool
	expand    []string
	platform  string
}

// register adds the viewport flags to cmd. The width and start flags only
// make sense for one-shot output; the viewer takes both from the terminal
// and the user.
func (f *viewportFlags) register(cmd *cobra.Command, fixedWidth bool) {
	if fixedWidth {
		cmd.Flags().Float64Var(&f.width, "width", view.DefaultWidth,
			"Viewport width in pixels")
		cmd.Flags().Float64Var(&f.start, "start", 0,
			"Viewport start on the time axis; disables centering")
	}
	cmd.Flags().Float64Var(&f.cellWidth, "cell-width", display.DefaultCellWidth,
		"Pixels per terminal column")
	cmd.Flags().Float64Var(&f.zoom, "zoom", 1,
		"Zoom level (1 = 50 pixels per day)")
	cmd.Flags().BoolVar(&f.fit, "fit", false,
		"Zoom to fit all events")
	cmd.Flags().StringSliceVar(&f.expand, "expand", nil,
		"Id of a collapsed gap to draw to scale; repeatable")
	cmd.Flags().StringVar(&f.platform, "platform", "auto",
		"Wheel tuning (auto, mac, other)")
}

func (f *viewportFlags) apply(cmd *cobra.Command, cfg *view.Config) {
	has := func(name string) bool { return cmd.Flags().Lookup(name) != nil }

	if has("width") && flagApplies(cmd, "width") {
		cfg.Width = f.width
	}
	// --start has no neutral default: only an explicit value pins the viewport
	if has("start") && cmd.Flags().Changed("start") {
		start := f.start
		cfg.Start = &start
	}
	if flagApplies(cmd, "cell-width") {
		cfg.CellWidth = f.cellWidth
	}
	if flagApplies(cmd, "zoom") {
		cfg.Zoom = f.zoom
	}
	if flagApplies(cmd, "fit") {
		cfg.Fit = f.fit
	}
	if flagApplies(cmd, "expand") {
		cfg.Expand = append([]string(nil), f.expand...)
	}
	if flagApplies(cmd, "platform") {
		cfg.Platform = f.platform
	}
}
