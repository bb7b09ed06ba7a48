package interaction

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInputKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []KeyEvent
	}{
		{"regular_char", "a", []KeyEvent{{Key: 'a', Type: KeyChar}}},
		{"escape", "\x1b", []KeyEvent{{Key: 27, Type: KeyEscape}}},
		{"ctrl_c", "\x03", []KeyEvent{{Key: 3, Type: KeyChar}}},
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []KeyEvent{
			{Type: KeyUp}, {Type: KeyDown}, {Type: KeyRight}, {Type: KeyLeft},
		}},
		{"application_arrows", "\x1bOC", []KeyEvent{{Type: KeyRight}}},
		{"several_chars", "+-0", []KeyEvent{
			{Key: '+', Type: KeyChar}, {Key: '-', Type: KeyChar}, {Key: '0', Type: KeyChar},
		}},
		{"escape_then_char", "\x1bq", []KeyEvent{{Key: 27, Type: KeyEscape}, {Key: 'q', Type: KeyChar}}},
		{"unknown_csi_skipped", "\x1b[2~x", []KeyEvent{{Key: 'x', Type: KeyChar}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, rest := parseInput([]byte(tt.input))
			assert.Empty(t, rest)
			require.Len(t, events, len(tt.expected))
			for i, ev := range events {
				require.NotNil(t, ev.Key)
				assert.Equal(t, tt.expected[i], *ev.Key)
			}
		})
	}
}

func TestParseInputKeepsPartialSequence(t *testing.T) {
	events, rest := parseInput([]byte("a\x1b[<0;12"))
	require.Len(t, events, 1)
	assert.Equal(t, []byte("\x1b[<0;12"), rest)

	events, rest = parseInput(append(rest, []byte(";3M")...))
	assert.Empty(t, rest)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].Mouse)
	assert.Equal(t, 11, events[0].Mouse.X)
}

func TestParseSGRMouse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected MouseEvent
	}{
		{"left_press", "\x1b[<0;10;5M", MouseEvent{Action: MousePress, Button: 0, X: 9, Y: 4}},
		{"left_release", "\x1b[<0;10;5m", MouseEvent{Action: MouseRelease, Button: 0, X: 9, Y: 4}},
		{"drag_motion", "\x1b[<32;20;5M", MouseEvent{Action: MouseMotion, Button: 0, X: 19, Y: 4}},
		{"wheel_up", "\x1b[<64;1;1M", MouseEvent{Action: MouseWheel, Button: 0, WheelY: -1}},
		{"wheel_down", "\x1b[<65;1;1M", MouseEvent{Action: MouseWheel, Button: 1, WheelY: 1}},
		{"wheel_right", "\x1b[<67;1;1M", MouseEvent{Action: MouseWheel, Button: 3, WheelX: 1}},
		{"ctrl_wheel", "\x1b[<80;3;2M", MouseEvent{Action: MouseWheel, Button: 0, X: 2, Y: 1, WheelY: -1, Ctrl: true}},
		{"shift_meta_wheel", "\x1b[<77;3;2M", MouseEvent{Action: MouseWheel, Button: 1, X: 2, Y: 1, WheelY: 1, Shift: true, Meta: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, _ := parseInput([]byte(tt.input))
			require.Len(t, events, 1)
			require.NotNil(t, events[0].Mouse)
			assert.Equal(t, tt.expected, *events[0].Mouse)
		})
	}
}

func TestParseSGRMouseRejectsGarbage(t *testing.T) {
	for _, input := range []string{"\x1b[<0;1M", "\x1b[<a;1;1M", "\x1b[<0;1;1;1M"} {
		events, rest := parseInput([]byte(input))
		assert.Empty(t, events, input)
		assert.Empty(t, rest, input)
	}
}

func TestKeyEventIsInterrupt(t *testing.T) {
	assert.True(t, KeyEvent{Key: 3, Type: KeyChar}.IsInterrupt())
	assert.False(t, KeyEvent{Key: 'q', Type: KeyChar}.IsInterrupt())
}

func TestReaderFrom(t *testing.T) {
	kr := NewReaderFrom(strings.NewReader("f\x1b[<0;5;1M\x1b[<0;5;1m"))
	defer kr.Close()

	var got []InputEvent
	timeout := time.After(5 * time.Second)
	for done := false; !done; {
		select {
		case ev, ok := <-kr.Events():
			if !ok {
				done = true
				continue
			}
			got = append(got, ev)
		case <-timeout:
			t.Fatal("reader did not finish")
		}
	}

	require.Len(t, got, 3)
	assert.Equal(t, 'f', got[0].Key.Key)
	assert.Equal(t, MousePress, got[1].Mouse.Action)
	assert.Equal(t, MouseRelease, got[2].Mouse.Action)
}

func TestReaderCloseIsIdempotent(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	kr := NewReaderFrom(r)
	assert.NoError(t, kr.Close())
	assert.NoError(t, kr.Close())
}
