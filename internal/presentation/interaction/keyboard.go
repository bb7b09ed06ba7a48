package interaction

import (
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/penwyp/go-timeline-view/internal/util"
)

// KeyType represents the type of key pressed
type KeyType int

const (
	KeyChar KeyType = iota
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// KeyEvent represents a keyboard event
type KeyEvent struct {
	Key  rune
	Type KeyType
}

// MouseAction says what a mouse report was.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMotion
	MouseWheel
)

// MouseEvent is one xterm SGR mouse report. X and Y are zero-based cells.
// Wheel reports carry WheelX/WheelY of -1 or +1 notches.
type MouseEvent struct {
	Action MouseAction
	Button int
	X, Y   int
	WheelX int
	WheelY int
	Shift  bool
	Meta   bool
	Ctrl   bool
}

// IsInterrupt reports Ctrl+C.
func (k KeyEvent) IsInterrupt() bool {
	return k.Type == KeyChar && k.Key == keyCtrlC
}

// InputEvent carries exactly one of Key or Mouse.
type InputEvent struct {
	Key   *KeyEvent
	Mouse *MouseEvent
}

const (
	keyCtrlC = 3
	keyEsc   = 27
)

// KeyboardReader reads keys and mouse reports from a terminal in raw mode.
type KeyboardReader struct {
	src     io.Reader
	restore func() error
	input   chan InputEvent
	stop    chan struct{}
}

// NewKeyboardReader puts stdin in raw mode and starts reading it.
func NewKeyboardReader() (*KeyboardReader, error) {
	restore, err := enableRawMode(int(os.Stdin.Fd()))
	if err != nil {
		return nil, err
	}
	kr := newReader(os.Stdin)
	kr.restore = restore
	go kr.readInput()
	return kr, nil
}

// NewReaderFrom parses input from r without touching terminal modes.
func NewReaderFrom(r io.Reader) *KeyboardReader {
	kr := newReader(r)
	go kr.readInput()
	return kr
}

func newReader(r io.Reader) *KeyboardReader {
	return &KeyboardReader{
		src:   r,
		input: make(chan InputEvent, 64),
		stop:  make(chan struct{}),
	}
}

// readInput reads input in a goroutine until EOF or Close.
func (kr *KeyboardReader) readInput() {
	buf := make([]byte, 256)
	var pending []byte

	for {
		select {
		case <-kr.stop:
			return
		default:
		}

		n, err := kr.src.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			events, rest := parseInput(pending)
			pending = append(pending[:0], rest...)
			for _, ev := range events {
				select {
				case kr.input <- ev:
				case <-kr.stop:
					return
				}
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				util.LogDebugf("input read failed: %v", err)
			}
			close(kr.input)
			return
		}
	}
}

// Events returns the input event channel. It is closed when the input ends.
func (kr *KeyboardReader) Events() <-chan InputEvent {
	return kr.input
}

// Close stops the reader and restores the terminal
func (kr *KeyboardReader) Close() error {
	select {
	case <-kr.stop:
		return nil
	default:
		close(kr.stop)
	}
	if kr.restore == nil {
		return nil
	}
	return kr.restore()
}

// parseInput splits raw bytes into events. An escape sequence cut off at the
// end of buf is returned as rest so the next read can complete it.
func parseInput(buf []byte) (events []InputEvent, rest []byte) {
	for i := 0; i < len(buf); {
		b := buf[i]
		if b != keyEsc {
			events = append(events, keyEvent(rune(b), KeyChar))
			i++
			continue
		}

		// a lone trailing ESC is the Escape key; terminals send whole
		// sequences in one write
		if i+1 >= len(buf) {
			events = append(events, keyEvent(keyEsc, KeyEscape))
			break
		}
		next := buf[i+1]
		if next != '[' && next != 'O' {
			events = append(events, keyEvent(keyEsc, KeyEscape))
			i++
			continue
		}

		if next == 'O' {
			if i+2 >= len(buf) {
				return events, buf[i:]
			}
			if ev, ok := arrowKey(buf[i+2]); ok {
				events = append(events, ev)
			}
			i += 3
			continue
		}

		end := csiEnd(buf, i+2)
		if end < 0 {
			return events, buf[i:]
		}
		if ev, ok := parseCSI(buf[i+2 : end+1]); ok {
			events = append(events, ev)
		}
		i = end + 1
	}
	return events, nil
}

// csiEnd finds the final byte of a CSI sequence starting at from.
func csiEnd(buf []byte, from int) int {
	for j := from; j < len(buf); j++ {
		if buf[j] >= 0x40 && buf[j] <= 0x7e {
			return j
		}
	}
	return -1
}

func parseCSI(seq []byte) (InputEvent, bool) {
	if len(seq) == 0 {
		return InputEvent{}, false
	}
	if seq[0] == '<' {
		mouse, ok := parseSGRMouse(seq[1:])
		if !ok {
			return InputEvent{}, false
		}
		return InputEvent{Mouse: &mouse}, true
	}
	if len(seq) == 1 {
		return arrowKey(seq[0])
	}
	return InputEvent{}, false
}

func arrowKey(final byte) (InputEvent, bool) {
	switch final {
	case 'A':
		return keyEvent(0, KeyUp), true
	case 'B':
		return keyEvent(0, KeyDown), true
	case 'C':
		return keyEvent(0, KeyRight), true
	case 'D':
		return keyEvent(0, KeyLeft), true
	}
	return InputEvent{}, false
}

// parseSGRMouse decodes "b;x;yM" or "b;x;ym".
func parseSGRMouse(seq []byte) (MouseEvent, bool) {
	if len(seq) < 6 {
		return MouseEvent{}, false
	}
	final := seq[len(seq)-1]
	if final != 'M' && final != 'm' {
		return MouseEvent{}, false
	}

	var params [3]int
	field := 0
	start := 0
	body := seq[:len(seq)-1]
	for j := 0; j <= len(body); j++ {
		if j < len(body) && body[j] != ';' {
			continue
		}
		if field > 2 {
			return MouseEvent{}, false
		}
		v, err := strconv.Atoi(string(body[start:j]))
		if err != nil {
			return MouseEvent{}, false
		}
		params[field] = v
		field++
		start = j + 1
	}
	if field != 3 {
		return MouseEvent{}, false
	}

	code := params[0]
	ev := MouseEvent{
		Button: code & 3,
		X:      params[1] - 1,
		Y:      params[2] - 1,
		Shift:  code&4 != 0,
		Meta:   code&8 != 0,
		Ctrl:   code&16 != 0,
	}

	switch {
	case code&64 != 0:
		ev.Action = MouseWheel
		switch code & 3 {
		case 0:
			ev.WheelY = -1
		case 1:
			ev.WheelY = 1
		case 2:
			ev.WheelX = -1
		case 3:
			ev.WheelX = 1
		}
	case final == 'm':
		ev.Action = MouseRelease
	case code&32 != 0:
		ev.Action = MouseMotion
	default:
		ev.Action = MousePress
	}
	return ev, true
}

func keyEvent(key rune, typ KeyType) InputEvent {
	return InputEvent{Key: &KeyEvent{Key: key, Type: typ}}
}
