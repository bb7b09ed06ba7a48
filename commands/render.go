package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-timeline-view/internal/application/view"
	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/penwyp/go-timeline-view/internal/core/timeline"
	"github.com/penwyp/go-timeline-view/internal/core/transform"
	"github.com/penwyp/go-timeline-view/internal/data/parser"
	"github.com/penwyp/go-timeline-view/internal/presentation/display"
	"github.com/penwyp/go-timeline-view/internal/presentation/formatter"
)

var (
	renderViewport viewportFlags

	// Output
	renderOutput    string
	renderColor     bool
	renderMaxEvents int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the layout of one viewport",
	Long: `Computes event positions, gap markers and axis ticks for a single viewport
and prints them as tables (text), JSON, or a drawing of the timeline (chart).

Without --start the viewport is centered on the events; --fit picks the zoom
that shows all of them.`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderViewport.register(renderCmd, true)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "text",
		"Output format (text, json, chart)")
	renderCmd.Flags().BoolVar(&renderColor, "color", false,
		"Use ANSI colors in chart output")
	renderCmd.Flags().IntVar(&renderMaxEvents, "max-events", 0,
		"Limit chart rows (0 = unlimited)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	renderViewport.apply(cmd, cfg)
	if flagApplies(cmd, "output") {
		cfg.Output = renderOutput
	}
	if flagApplies(cmd, "color") {
		cfg.Color = renderColor
	}
	if flagApplies(cmd, "max-events") {
		cfg.MaxEvents = renderMaxEvents
	}
	if err := initRuntime(cfg, true); err != nil {
		return err
	}

	labels, days := timeAxis(cfg)
	tv, files, err := loadView(cfg, labels, days)
	if err != nil {
		return err
	}
	layout := tv.Layout()

	out := cmd.OutOrStdout()
	if cfg.Output == "chart" {
		return writeChart(out, layout, cfg, labels, view.Title(files))
	}

	f, err := formatter.New(cfg.Output, labels)
	if err != nil {
		return err
	}
	return f.FormatLayout(out, layout)
}

// loadView loads the configured files into a view at the configured width
// and applies the initial viewport settings.
func loadView(cfg *view.Config, labels transform.LabelFormatter, days parser.DayConverter) (*timeline.View, []string, error) {
	loader := view.NewDataLoader(cfg, days)
	sources, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}

	tv := view.NewTimelineView(cfg, cfg.Width, labels)
	tv.SetSources(sources...)
	view.ApplyConfig(tv, cfg)
	return tv, loader.Files(), nil
}

func writeChart(w io.Writer, layout model.Layout, cfg *view.Config, labels transform.LabelFormatter, title string) error {
	lines := display.Render(layout, display.RenderOptions{
		CellWidth: cfg.CellWidth,
		Gutter:    display.DefaultGutter,
		MaxEvents: cfg.MaxEvents,
		Title:     title,
		Color:     cfg.Color,
		Labels:    labels,
	})
	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}
