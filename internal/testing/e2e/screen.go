package e2e

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// StripANSI removes CSI escape sequences from s.
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// Screen is a virtual terminal that replays the subset of escape sequences
// the viewer emits: cursor positioning, screen and line clears, and private
// modes, which are ignored.
type Screen struct {
	rows, cols int
	cells      [][]rune
	x, y       int
}

func NewScreen(rows, cols int) *Screen {
	s := &Screen{rows: rows, cols: cols, cells: make([][]rune, rows)}
	for i := range s.cells {
		s.cells[i] = blankRow(cols)
	}
	return s
}

// ParseScreen replays output on a rows×cols screen.
func ParseScreen(output string, rows, cols int) *Screen {
	s := NewScreen(rows, cols)
	s.Write(output)
	return s
}

// Write replays output onto the screen.
func (s *Screen) Write(output string) {
	runes := []rune(output)
	for i := 0; i < len(runes); {
		switch r := runes[i]; {
		case r == '\x1b' && i+1 < len(runes) && runes[i+1] == '[':
			i = s.csi(runes, i+2)
		case r == '\r':
			s.x = 0
			i++
		case r == '\n':
			s.lineFeed()
			i++
		case r == '\b':
			if s.x > 0 {
				s.x--
			}
			i++
		default:
			s.put(r)
			i++
		}
	}
}

// csi consumes one control sequence starting after "ESC [" and returns the
// index just past it.
func (s *Screen) csi(runes []rune, i int) int {
	private := false
	if i < len(runes) && runes[i] == '?' {
		private = true
		i++
	}

	var params []int
	current := 0
	for ; i < len(runes); i++ {
		switch r := runes[i]; {
		case r >= '0' && r <= '9':
			current = current*10 + int(r-'0')
		case r == ';':
			params = append(params, current)
			current = 0
		default:
			params = append(params, current)
			if !private {
				s.command(r, params)
			}
			return i + 1
		}
	}
	return i
}

func (s *Screen) command(cmd rune, params []int) {
	arg := func(n, def int) int {
		if n < len(params) && params[n] > 0 {
			return params[n]
		}
		return def
	}

	switch cmd {
	case 'H', 'f':
		s.y = min(arg(0, 1), s.rows) - 1
		s.x = min(arg(1, 1), s.cols) - 1
	case 'J':
		if arg(0, 0) == 2 {
			for i := range s.cells {
				s.cells[i] = blankRow(s.cols)
			}
			return
		}
		s.clearLine(s.x, s.cols)
		for i := s.y + 1; i < s.rows; i++ {
			s.cells[i] = blankRow(s.cols)
		}
	case 'K':
		switch arg(0, 0) {
		case 1:
			s.clearLine(0, s.x+1)
		case 2:
			s.clearLine(0, s.cols)
		default:
			s.clearLine(s.x, s.cols)
		}
	case 'A':
		s.y = max(0, s.y-arg(0, 1))
	case 'B':
		s.y = min(s.rows-1, s.y+arg(0, 1))
	case 'C':
		s.x = min(s.cols-1, s.x+arg(0, 1))
	case 'D':
		s.x = max(0, s.x-arg(0, 1))
	}
	// SGR (m) and anything else does not move text
}

// put writes r at the cursor. Wide runes take two cells; the second holds 0.
func (s *Screen) put(r rune) {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return
	}
	if s.x+w > s.cols {
		s.x = 0
		s.lineFeed()
	}
	s.cells[s.y][s.x] = r
	if w == 2 {
		s.cells[s.y][s.x+1] = 0
	}
	s.x += w
}

func (s *Screen) lineFeed() {
	s.x = 0
	if s.y < s.rows-1 {
		s.y++
		return
	}
	copy(s.cells, s.cells[1:])
	s.cells[s.rows-1] = blankRow(s.cols)
}

func (s *Screen) clearLine(from, to int) {
	for j := max(from, 0); j < min(to, s.cols); j++ {
		s.cells[s.y][j] = ' '
	}
}

// Line returns row n without trailing spaces.
func (s *Screen) Line(n int) string {
	if n < 0 || n >= s.rows {
		return ""
	}
	var b strings.Builder
	for _, r := range s.cells[n] {
		if r != 0 {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// String renders the whole screen, one line per row.
func (s *Screen) String() string {
	lines := make([]string, s.rows)
	for i := range lines {
		lines[i] = s.Line(i)
	}
	return strings.Join(lines, "\n")
}

func (s *Screen) Contains(text string) bool {
	return strings.Contains(s.String(), text)
}

func blankRow(cols int) []rune {
	row := make([]rune, cols)
	for j := range row {
		row[j] = ' '
	}
	return row
}
