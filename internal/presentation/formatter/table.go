package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/penwyp/go-timeline-view/internal/core/transform"
	"github.com/penwyp/go-timeline-view/internal/util"
)

var (
	segmentHeaders = []string{"#", "Type", "Start", "End", "Duration", "Date", "ID", "State"}
	eventHeaders   = []string{"Event", "Title", "Left px", "Width px", "Left %", "Visible"}
	markerHeaders  = []string{"Gap", "Start", "End", "Left px", "Width px", "State"}
)

type TableFormatter struct {
	labels transform.LabelFormatter
}

func NewTableFormatter(labels transform.LabelFormatter) *TableFormatter {
	if labels == nil {
		labels = transform.DayLabels{}
	}
	return &TableFormatter{labels: labels}
}

func (f *TableFormatter) FormatSegments(w io.Writer, segments []model.TimeSegment) error {
	rows := make([][]string, 0, len(segments))
	for i, seg := range segments {
		id, state := seg.EventID, ""
		if seg.Collapsed != nil {
			id = seg.Collapsed.ID
			state = collapseState(seg.Collapsed.IsCollapsed)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			string(seg.Type),
			util.FormatAxis(seg.StartTime),
			util.FormatAxis(seg.EndTime),
			util.FormatSpan(seg.Duration),
			f.labels.DateLabel(seg.StartTime),
			id,
			state,
		})
	}

	var b strings.Builder
	writeTable(&b, segmentHeaders, rows, []bool{true, false, true, true, true, false, false, false})
	fmt.Fprintf(&b, "%d segments, %d collapsible\n", len(segments), countCollapsible(segments))
	_, err := io.WriteString(w, b.String())
	return err
}

func (f *TableFormatter) FormatLayout(w io.Writer, layout model.Layout) error {
	var b strings.Builder
	vp := layout.Viewport
	fmt.Fprintf(&b, "Viewport %s → %s  zoom %s  width %spx\n",
		f.labels.DateLabel(vp.StartTime),
		f.labels.DateLabel(layout.EndTime),
		util.FormatZoom(vp.ZoomLevel),
		util.FormatAxis(vp.WidthPixels),
	)

	eventRows := make([][]string, 0, len(layout.Events))
	for _, ev := range layout.Events {
		eventRows = append(eventRows, []string{
			ev.EventID,
			ev.Title,
			util.FormatAxis(ev.Position.LeftPixel),
			util.FormatAxis(ev.Position.WidthPixel),
			util.FormatAxis(ev.Position.LeftPercent),
			yesNo(ev.Position.Visible),
		})
	}
	writeTable(&b, eventHeaders, eventRows, []bool{false, false, true, true, true, false})
	fmt.Fprintf(&b, "%s events, %s visible\n",
		util.FormatNumber(len(layout.Events)), util.FormatNumber(countVisible(layout.Events)))

	if len(layout.Markers) > 0 {
		markerRows := make([][]string, 0, len(layout.Markers))
		for _, m := range layout.Markers {
			markerRows = append(markerRows, []string{
				m.Segment.ID,
				util.FormatAxis(m.Segment.StartTime),
				util.FormatAxis(m.Segment.EndTime),
				util.FormatAxis(m.Position.LeftPixel),
				util.FormatAxis(m.Position.WidthPixel),
				collapseState(m.Segment.IsCollapsed),
			})
		}
		writeTable(&b, markerHeaders, markerRows, []bool{false, true, true, true, true, false})
	}

	if len(layout.Ticks) > 0 {
		labels := make([]string, 0, len(layout.Ticks))
		for _, tick := range layout.Ticks {
			label := tick.Label
			if tick.SubLabel != "" {
				label += " " + tick.SubLabel
			}
			labels = append(labels, fmt.Sprintf("%s@%s", label, util.FormatAxis(tick.Pixel)))
		}
		fmt.Fprintf(&b, "Ticks: %s\n", strings.Join(labels, ", "))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// writeTable draws a boxed table. rightAlign marks numeric columns.
func writeTable(b *strings.Builder, headers []string, rows [][]string, rightAlign []bool) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = util.GetDisplayWidth(h)
	}
	for _, row := range rows {
		for i, v := range row {
			if w := util.GetDisplayWidth(v); w > widths[i] {
				widths[i] = w
			}
		}
	}

	writeBorder(b, widths, "top")
	writeRow(b, headers, widths, nil)
	writeBorder(b, widths, "middle")
	for _, row := range rows {
		writeRow(b, row, widths, rightAlign)
	}
	writeBorder(b, widths, "bottom")
}

func writeBorder(b *strings.Builder, widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right + "\n")
}

func writeRow(b *strings.Builder, values []string, widths []int, rightAlign []bool) {
	b.WriteString("│")
	for i, value := range values {
		pad := strings.Repeat(" ", widths[i]-util.GetDisplayWidth(value))
		if rightAlign != nil && rightAlign[i] {
			b.WriteString(" " + pad + value + " │")
		} else {
			b.WriteString(" " + value + pad + " │")
		}
	}
	b.WriteString("\n")
}

func collapseState(collapsed bool) string {
	if collapsed {
		return "collapsed"
	}
	return "expanded"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func countVisible(events []model.EventPosition) int {
	n := 0
	for _, ev := range events {
		if ev.Position.Visible {
			n++
		}
	}
	return n
}

func countCollapsible(segments []model.TimeSegment) int {
	n := 0
	for _, seg := range segments {
		if seg.Collapsed != nil {
			n++
		}
	}
	return n
}
