package viewport

import (
	"math"
	"time"

	"github.com/penwyp/go-timeline-view/internal/core/constants"
)

// TapState is the double-tap recognizer state.
type TapState int

const (
	TapIdle TapState = iota
	TapPending
)

func (s TapState) String() string {
	if s == TapPending {
		return "pending"
	}
	return "idle"
}

// TapResult reports what a recorded tap did to the recognizer.
type TapResult int

const (
	TapRecorded TapResult = iota
	DoubleTapFired
)

// TapTracker recognizes two quick taps close together in time and space.
// Timeouts are evaluated lazily against the timestamps of incoming taps, so
// the tracker never needs a timer.
type TapTracker struct {
	state    TapState
	lastTime time.Time
	lastX    float64
	lastY    float64
}

// NewTapTracker returns a tracker in TapIdle.
func NewTapTracker() *TapTracker {
	return &TapTracker{}
}

// State returns the current state.
func (t *TapTracker) State() TapState {
	return t.state
}

// Expire drops a pending tap older than the double-tap window.
func (t *TapTracker) Expire(now time.Time) {
	if t.state == TapPending && now.Sub(t.lastTime) >= constants.DoubleTapWindow {
		t.state = TapIdle
	}
}

// Tap records a quick tap at (x, y).
func (t *TapTracker) Tap(x, y float64, now time.Time) TapResult {
	t.Expire(now)

	if t.state == TapPending &&
		math.Hypot(x-t.lastX, y-t.lastY) < constants.DoubleTapMaxDistance {
		t.state = TapIdle
		return DoubleTapFired
	}

	t.state = TapPending
	t.lastTime = now
	t.lastX = x
	t.lastY = y
	return TapRecorded
}

// Reset forgets any pending tap.
func (t *TapTracker) Reset() {
	t.state = TapIdle
}
