package display

import (
	"bufio"
	"io"
	"strings"

	"github.com/penwyp/go-timeline-view/internal/util"
)

// TerminalDisplay draws frames into the alternate screen, rewriting only the
// lines that changed since the previous frame so text selection survives
// redraws.
type TerminalDisplay struct {
	out               io.Writer
	inAlternateScreen bool
	mouse             bool
	previousScreen    []string
}

func NewTerminalDisplay(out io.Writer, mouse bool) *TerminalDisplay {
	return &TerminalDisplay{
		out:   out,
		mouse: mouse,
	}
}

// EnterAlternateScreen switches to alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	if td.inAlternateScreen {
		return
	}
	seq := util.EnterAltScreen + util.ClearScreen + util.ClearScrollback +
		util.ResetScrollRegion + util.HideCursor + util.MoveCursorHome
	if td.mouse {
		seq += util.EnableMouse
	}
	io.WriteString(td.out, seq)
	td.inAlternateScreen = true
	td.previousScreen = nil
}

// ExitAlternateScreen returns to normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	if !td.inAlternateScreen {
		return
	}
	seq := ""
	if td.mouse {
		seq += util.DisableMouse
	}
	seq += util.ClearScreen + util.MoveCursorHome + util.ShowCursor + util.ExitAltScreen
	io.WriteString(td.out, seq)
	td.inAlternateScreen = false
}

// Invalidate forgets the previous frame so the next Draw repaints
// everything, e.g. after a resize.
func (td *TerminalDisplay) Invalidate() {
	td.previousScreen = nil
	io.WriteString(td.out, util.ClearScreen+util.MoveCursorHome)
}

// Draw writes a frame, touching only lines that differ from the last one.
func (td *TerminalDisplay) Draw(lines []string) error {
	w := bufio.NewWriter(td.out)

	for i, line := range lines {
		if i < len(td.previousScreen) && td.previousScreen[i] == line {
			continue
		}
		w.WriteString(util.MoveCursor(i+1, 1))
		w.WriteString(util.ClearLine)
		w.WriteString(line)
	}
	for i := len(lines); i < len(td.previousScreen); i++ {
		w.WriteString(util.MoveCursor(i+1, 1))
		w.WriteString(util.ClearLine)
	}

	td.previousScreen = append(td.previousScreen[:0], lines...)
	return w.Flush()
}

// HelpLines is the key reference shown by the interactive viewer.
func HelpLines(width int) []string {
	if width <= 0 {
		width = 60
	}
	rule := strings.Repeat("═", width)
	return []string{
		"Timeline Viewer - Help",
		rule,
		"",
		"Keyboard:",
		"  ←/→ h/l     - Pan by a tenth of the view",
		"  +/- ↑/↓     - Zoom in / out around the center",
		"  0           - Reset zoom to 1x and re-center",
		"  f           - Zoom to fit all events",
		"  c           - Expand or collapse the gap nearest the center",
		"  e / a       - Expand all / collapse all gaps",
		"  r           - Reload event files",
		"  ?           - Toggle this help",
		"  q/Esc       - Quit",
		"",
		"Mouse:",
		"  drag        - Pan",
		"  Ctrl+wheel  - Zoom",
		"  Shift+wheel - Zoom",
		"",
		"Gaps:",
		"  ≋ collapsed, drawn at a fixed width",
		"  ┄ expanded, drawn to scale",
		rule,
		"Press '?' to return...",
	}
}
