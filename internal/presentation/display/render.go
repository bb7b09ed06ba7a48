package display

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/penwyp/go-timeline-view/internal/core/transform"
	"github.com/penwyp/go-timeline-view/internal/util"
)

const (
	DefaultCellWidth = 10.0
	DefaultGutter    = 16

	barGlyph       = '█'
	collapsedGlyph = '≋'
	expandedGlyph  = '┄'
	axisGlyph      = '─'
	tickGlyph      = '┬'
	offLeftGlyph   = '◂'
	offRightGlyph  = '▸'
)

// RenderOptions control how a layout is drawn into terminal cells.
type RenderOptions struct {
	// CellWidth is how many viewport pixels one terminal column covers.
	CellWidth float64
	// Gutter is the width of the title column left of the timeline.
	Gutter    int
	MaxEvents int
	Title     string
	Status    string
	Color     bool
	Labels    transform.LabelFormatter
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.CellWidth <= 0 || math.IsNaN(o.CellWidth) {
		o.CellWidth = DefaultCellWidth
	}
	if o.Gutter <= 0 {
		o.Gutter = DefaultGutter
	}
	if o.Labels == nil {
		o.Labels = transform.DayLabels{}
	}
	if o.Title == "" {
		o.Title = "timeline"
	}
	return o
}

// Columns is the number of terminal columns a viewport of widthPixels spans.
func Columns(widthPixels, cellWidth float64) int {
	if widthPixels <= 0 || cellWidth <= 0 {
		return 0
	}
	return int(math.Round(widthPixels / cellWidth))
}

// Render draws a layout as plain lines. It has no side effects; the same
// layout and options always produce the same lines.
func Render(layout model.Layout, opts RenderOptions) []string {
	opts = opts.withDefaults()
	cols := Columns(layout.Viewport.WidthPixels, opts.CellWidth)
	gutter := strings.Repeat(" ", opts.Gutter)

	lines := make([]string, 0, len(layout.Events)+8)
	lines = append(lines, renderHeader(layout, opts))
	lines = append(lines, opts.paint(util.ColorDim, strings.Repeat("─", opts.Gutter+cols)))

	axis, labels, subLabels := renderRuler(layout.Ticks, cols, opts)
	lines = append(lines, gutter+axis.String(opts.Color))
	lines = append(lines, gutter+labels.String(opts.Color))
	if subLabels != nil {
		lines = append(lines, gutter+subLabels.String(opts.Color))
	}

	if len(layout.Markers) > 0 {
		markers := renderMarkers(layout.Markers, cols, opts)
		lines = append(lines, util.PadToWidth("gaps", opts.Gutter)+markers.String(opts.Color))
	}

	events := layout.Events
	hidden := 0
	if opts.MaxEvents > 0 && len(events) > opts.MaxEvents {
		hidden = len(events) - opts.MaxEvents
		events = events[:opts.MaxEvents]
	}
	for _, ev := range events {
		title := ev.Title
		if title == "" {
			title = ev.EventID
		}
		bar := renderEventBar(ev.Position, cols, opts)
		lines = append(lines, util.PadToWidth(title, opts.Gutter-1)+" "+bar.String(opts.Color))
	}
	if hidden > 0 {
		lines = append(lines, opts.paint(util.ColorDim, fmt.Sprintf("… %d more", hidden)))
	}
	if len(layout.Events) == 0 {
		lines = append(lines, opts.paint(util.ColorDim, "no timed events"))
	}

	if opts.Status != "" {
		lines = append(lines, "", opts.Status)
	}
	return lines
}

func renderHeader(layout model.Layout, opts RenderOptions) string {
	vp := layout.Viewport
	title := opts.Title
	if opts.Color {
		title = util.FormatHeaderTitle(title)
	}
	return fmt.Sprintf("%s  zoom %s  span %s  [%s → %s]",
		title,
		util.FormatZoom(vp.ZoomLevel),
		util.FormatSpan(layout.EndTime-vp.StartTime),
		opts.Labels.DateLabel(vp.StartTime),
		opts.Labels.DateLabel(layout.EndTime),
	)
}

func renderRuler(ticks []model.Tick, cols int, opts RenderOptions) (*cellRow, *cellRow, *cellRow) {
	axis := newCellRow(cols, axisGlyph)
	labels := newCellRow(cols, ' ')
	var subLabels *cellRow

	nextFree := 0
	nextFreeSub := 0
	for _, tick := range ticks {
		col := int(math.Floor(tick.Pixel / opts.CellWidth))
		if col < 0 || col >= cols {
			continue
		}
		axis.set(col, tickGlyph, util.ColorDim)

		if col < nextFree {
			continue
		}
		nextFree = labels.text(col, tick.Label, "") + 2

		if tick.SubLabel == "" {
			continue
		}
		if subLabels == nil {
			subLabels = newCellRow(cols, ' ')
		}
		if col >= nextFreeSub {
			nextFreeSub = subLabels.text(col, tick.SubLabel, util.ColorDim) + 2
		}
	}
	return axis, labels, subLabels
}

func renderMarkers(markers []model.SegmentMarker, cols int, opts RenderOptions) *cellRow {
	row := newCellRow(cols, ' ')
	for _, m := range markers {
		if !m.Position.Visible {
			continue
		}
		from, to, ok := columnSpan(m.Position, cols, opts.CellWidth)
		if !ok {
			continue
		}
		if m.Segment.IsCollapsed {
			row.fill(from, to, collapsedGlyph, util.ColorYellow)
		} else {
			row.fill(from, to, expandedGlyph, util.ColorDim)
		}
	}
	return row
}

func renderEventBar(pos model.PositionResult, cols int, opts RenderOptions) *cellRow {
	row := newCellRow(cols, ' ')
	from, to, ok := columnSpan(pos, cols, opts.CellWidth)
	if ok {
		row.fill(from, to, barGlyph, util.ColorCyan)
		return row
	}
	if cols == 0 {
		return row
	}
	if pos.LeftPixel < 0 {
		row.set(0, offLeftGlyph, util.ColorDim)
	} else {
		row.set(cols-1, offRightGlyph, util.ColorDim)
	}
	return row
}

// columnSpan maps a pixel range to an inclusive column range clipped to the
// row. ok is false when nothing of the range is on screen.
func columnSpan(pos model.PositionResult, cols int, cellWidth float64) (int, int, bool) {
	left := pos.LeftPixel
	right := pos.LeftPixel + pos.WidthPixel
	if math.IsNaN(left) || math.IsNaN(right) || cols == 0 {
		return 0, 0, false
	}

	fromF := math.Floor(left / cellWidth)
	toF := math.Ceil(right/cellWidth) - 1
	if toF < fromF {
		toF = fromF
	}
	if toF < 0 || fromF >= float64(cols) {
		return 0, 0, false
	}
	from := int(math.Max(fromF, 0))
	to := int(math.Min(toF, float64(cols-1)))
	return from, to, true
}

func (o RenderOptions) paint(color, s string) string {
	if !o.Color || s == "" {
		return s
	}
	return color + s + util.ColorReset
}

// cellRow is one line of fixed-width terminal cells. A zero rune marks the
// trailing half of a wide rune.
type cellRow struct {
	cells  []rune
	colors []string
}

func newCellRow(cols int, fill rune) *cellRow {
	r := &cellRow{cells: make([]rune, cols), colors: make([]string, cols)}
	for i := range r.cells {
		r.cells[i] = fill
	}
	return r
}

func (r *cellRow) set(col int, ch rune, color string) {
	if col < 0 || col >= len(r.cells) {
		return
	}
	r.cells[col] = ch
	r.colors[col] = color
}

func (r *cellRow) fill(from, to int, ch rune, color string) {
	for c := from; c <= to; c++ {
		r.set(c, ch, color)
	}
}

// text writes s from col and returns the last column written. Text that
// would run past the row is cut.
func (r *cellRow) text(col int, s string, color string) int {
	last := col - 1
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if last+w >= len(r.cells) {
			break
		}
		r.set(last+1, ch, color)
		if w == 2 {
			r.set(last+2, 0, color)
		}
		last += w
	}
	return last
}

func (r *cellRow) String(color bool) string {
	var b strings.Builder
	current := ""
	for i, ch := range r.cells {
		if ch == 0 {
			continue
		}
		if color && r.colors[i] != current {
			if current != "" {
				b.WriteString(util.ColorReset)
			}
			b.WriteString(r.colors[i])
			current = r.colors[i]
		}
		b.WriteRune(ch)
	}
	if color && current != "" {
		b.WriteString(util.ColorReset)
	}
	return b.String()
}
