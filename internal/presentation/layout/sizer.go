package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-timeline-view/internal/util"
	"golang.org/x/term"
)

const (
	fallbackColumns = 80
	fallbackRows    = 24
	minColumns      = 20
)

// SizeFunc reports the size of the terminal behind fd.
type SizeFunc func(fd int) (width, height int, err error)

// Sizer measures the terminal and converts columns to viewport pixels.
type Sizer struct {
	getSize SizeFunc
	fd      int
}

// NewSizer measures stdout.
func NewSizer() *Sizer {
	return &Sizer{getSize: term.GetSize, fd: int(os.Stdout.Fd())}
}

// NewSizerWith uses a custom size source, mainly for tests.
func NewSizerWith(getSize SizeFunc) *Sizer {
	return &Sizer{getSize: getSize}
}

// TerminalSize returns columns and rows, falling back to 80x24 when the
// output is not a terminal.
func (s *Sizer) TerminalSize() (int, int) {
	cols, rows, err := s.getSize(s.fd)
	if err != nil || cols <= 0 || rows <= 0 {
		util.LogDebugf("terminal size unavailable (%v), using %dx%d", err, fallbackColumns, fallbackRows)
		return fallbackColumns, fallbackRows
	}
	if cols < minColumns {
		cols = minColumns
	}
	return cols, rows
}

// TimelineColumns is the number of columns left for the timeline once the
// title gutter is taken.
func (s *Sizer) TimelineColumns(gutter int) int {
	cols, _ := s.TerminalSize()
	if cols-gutter < 1 {
		return 1
	}
	return cols - gutter
}

// ViewportPixels converts a column count to a viewport width in pixels.
func ViewportPixels(columns int, cellWidth float64) float64 {
	if columns <= 0 || cellWidth <= 0 {
		return 0
	}
	return float64(columns) * cellWidth
}

// PadString pads a string to a specific display width, handling wide runes correctly
func (s *Sizer) PadString(str string, width int, leftAlign bool) string {
	actualWidth := runewidth.StringWidth(str)
	if actualWidth >= width {
		return str
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return str + padding
	}
	return padding + str
}
