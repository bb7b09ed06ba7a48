package transform

import (
	"github.com/penwyp/go-timeline-view/internal/core/constants"
	"github.com/penwyp/go-timeline-view/internal/core/model"
)

// CalculatePosition converts a time range to a PositionResult. Pass
// end == start for an instantaneous event; the width is floored so that it
// still shows as a sliver at any zoom.
func (t *Transform) CalculatePosition(start, end float64) model.PositionResult {
	if end < start {
		end = start
	}

	leftPx := t.TimeToPixel(start)
	widthPx := t.TimeToPixel(end) - leftPx

	leftPct := t.pixelToPercent(leftPx)
	widthPct := t.pixelToPercent(widthPx)

	if widthPct < constants.MinWidthPercent {
		widthPct = constants.MinWidthPercent
	}
	if widthPx < constants.MinWidthPixel {
		widthPx = constants.MinWidthPixel
	}

	return model.PositionResult{
		LeftPercent:  leftPct,
		WidthPercent: widthPct,
		LeftPixel:    leftPx,
		WidthPixel:   widthPx,
		Visible:      t.width > 0 && IsVisible(leftPct, widthPct),
	}
}

// CalculateEventPosition positions an event. The second result is false for
// untimed events, which take no part in layout.
func (t *Transform) CalculateEventPosition(e model.Event) (model.PositionResult, bool) {
	if !e.IsTimed() {
		return model.PositionResult{}, false
	}
	return t.CalculatePosition(e.Start(), e.End()), true
}

// IsVisible applies the viewport visibility predicate with a margin on both
// sides, so elements sliding in during a pan do not pop in abruptly.
func IsVisible(leftPercent, widthPercent float64) bool {
	return leftPercent < 100+constants.VisibilityMarginPercent &&
		leftPercent+widthPercent > -constants.VisibilityMarginPercent
}
