package transform

import (
	"math"
	"sort"

	"github.com/penwyp/go-timeline-view/internal/core/constants"
	"github.com/penwyp/go-timeline-view/internal/core/model"
)

// GenerateTicks builds ruler ticks. Without timed events the ruler uses a
// regular "nice" interval across the viewport; otherwise ticks are derived
// from the events themselves and thinned to keep them readable.
func (t *Transform) GenerateTicks(events []model.Event) []model.Tick {
	if t.width <= 0 {
		return []model.Tick{}
	}

	var ticks []model.Tick
	if hasTimedEvents(events) {
		ticks = t.eventTicks(events)
	} else {
		ticks = t.intervalTicks()
	}

	t.disambiguateLabels(ticks)
	return ticks
}

func hasTimedEvents(events []model.Event) bool {
	for _, e := range events {
		if e.IsTimed() {
			return true
		}
	}
	return false
}

// NiceInterval rounds target to the nearest 1, 2 or 5 times a power of ten.
// Non-positive or non-finite targets yield 0.
func NiceInterval(target float64) float64 {
	if target <= 0 || math.IsNaN(target) || math.IsInf(target, 0) {
		return 0
	}

	magnitude := math.Pow(10, math.Floor(math.Log10(target)))
	normalized := target / magnitude

	best := 1.0
	bestDiff := math.Inf(1)
	for _, step := range []float64{1, 2, 5, 10} {
		if diff := math.Abs(normalized - step); diff < bestDiff {
			best, bestDiff = step, diff
		}
	}
	return best * magnitude
}

func (t *Transform) intervalTicks() []model.Tick {
	rangeWidth := t.VisibleTimeWidth()
	interval := NiceInterval(rangeWidth / constants.TargetTickCount)
	if interval == 0 {
		return []model.Tick{}
	}

	end := t.ViewportEndTime()
	first := math.Ceil(t.start/interval) * interval

	ticks := make([]model.Tick, 0, constants.TargetTickCount+2)
	for i := 0; i < constants.MaxGeneratedTicks; i++ {
		tm := first + float64(i)*interval
		if tm > end {
			break
		}
		ticks = append(ticks, t.newTick(tm))
	}
	return ticks
}

// eventTicks collects {start, end, mid, end+dur, end+2·dur} per event and
// greedily keeps candidates at least MinTickSpacingPx apart.
func (t *Transform) eventTicks(events []model.Event) []model.Tick {
	candidates := make([]float64, 0, len(events)*5)
	for _, e := range events {
		if !e.IsTimed() {
			continue
		}
		start, end, dur := e.Start(), e.End(), e.Duration()
		candidates = append(candidates,
			start,
			end,
			start+dur/2,
			end+dur,
			end+2*dur,
		)
	}
	sort.Float64s(candidates)

	ticks := make([]model.Tick, 0)
	lastPixel := math.Inf(-1)
	for _, tm := range candidates {
		px := t.TimeToPixel(tm)
		if px < 0 || px > t.width {
			continue
		}
		if px-lastPixel < constants.MinTickSpacingPx {
			continue
		}
		ticks = append(ticks, t.newTick(tm))
		lastPixel = px
	}
	return ticks
}

func (t *Transform) newTick(tm float64) model.Tick {
	px := t.TimeToPixel(tm)
	return model.Tick{
		Time:    tm,
		Pixel:   px,
		Percent: t.pixelToPercent(px),
		Label:   t.labels.DateLabel(tm),
	}
}

// disambiguateLabels adds a time-of-day line to every tick whose date label
// is shared with another tick.
func (t *Transform) disambiguateLabels(ticks []model.Tick) {
	counts := make(map[string]int, len(ticks))
	for _, tick := range ticks {
		counts[tick.Label]++
	}
	for i := range ticks {
		if counts[ticks[i].Label] > 1 {
			ticks[i].SubLabel = t.labels.TimeLabel(ticks[i].Time)
		}
	}
}
