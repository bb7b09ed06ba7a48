package util

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset   = "\033[0m"
	ColorCyan    = "\033[36m"
	ColorYellow  = "\033[33m"
	ColorMagenta = "\033[35m"
	ColorBold    = "\033[1m"
	ColorDim     = "\033[2m"

	ClearScreen       = "\033[2J"     // Clear entire screen
	ClearLine         = "\033[2K"     // Clear entire line
	ClearScrollback   = "\033[3J"     // Clear scrollback buffer
	ResetScrollRegion = "\033[r"      // Reset scroll region
	MoveCursorHome    = "\033[H"      // Move cursor to home position
	HideCursor        = "\033[?25l"   // Hide cursor
	ShowCursor        = "\033[?25h"   // Show cursor
	EnterAltScreen    = "\033[?1049h" // Switch to the alternate screen buffer
	ExitAltScreen     = "\033[?1049l" // Return to the normal screen buffer

	// xterm mouse reporting: button-event tracking with SGR encoding
	EnableMouse  = "\033[?1002h\033[?1006h"
	DisableMouse = "\033[?1006l\033[?1002l"
)

// GetDisplayWidth calculates the actual display width of a string, accounting for emojis
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// TruncateToWidth cuts text to at most width cells, marking the cut with an
// ellipsis.
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}

// PadToWidth pads text with spaces to exactly width cells, truncating when
// it is longer.
func PadToWidth(text string, width int) string {
	return runewidth.FillRight(TruncateToWidth(text, width), width)
}

// FormatHeaderTitle formats main header titles (Magenta + Bold)
func FormatHeaderTitle(title string) string {
	return fmt.Sprintf("%s%s%s%s", ColorBold, ColorMagenta, title, ColorReset)
}

// MoveCursor returns ANSI sequence to move cursor to specific position
func MoveCursor(row, col int) string {
	return fmt.Sprintf("\033[%d;%dH", row, col)
}
