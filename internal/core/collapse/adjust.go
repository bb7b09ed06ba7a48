package collapse

import (
	"math"

	"github.com/penwyp/go-timeline-view/internal/core/constants"
)

// FixedCompressedTimeUnits is the time span a collapsed segment occupies on
// screen at the given scale: CollapsedPixelWidth converted to time units.
func FixedCompressedTimeUnits(pixelsPerTimeUnit float64) float64 {
	if pixelsPerTimeUnit <= 0 || math.IsNaN(pixelsPerTimeUnit) {
		pixelsPerTimeUnit = constants.BasePixelsPerDay * constants.MinZoom
	}
	return constants.CollapsedPixelWidth / pixelsPerTimeUnit
}

// compressedWidth is the adjusted span of a collapsed segment. A segment
// already narrower than the fixed width keeps its real width, which keeps the
// adjusted function monotonic.
func compressedWidth(duration, fixed float64) float64 {
	return math.Min(duration, fixed)
}

// SetScale makes AdjustedPosition and friends follow scale. The scale is
// read on every call, so a zoom change needs no re-derivation of segments.
func (e *Engine) SetScale(scale Scale) {
	if scale != nil {
		e.scale = scale
	}
}

// PixelsPerTimeUnit returns the current value of the engine's scale, or the
// zoom 1 scale when none was given.
func (e *Engine) PixelsPerTimeUnit() float64 {
	if e.scale == nil {
		return constants.BasePixelsPerDay
	}
	return e.scale.PixelsPerTimeUnit()
}

// AdjustedPosition maps an original time onto the compressed axis using the
// engine's current scale.
func (e *Engine) AdjustedPosition(t float64) float64 {
	return e.AdjustedPositionAt(t, e.PixelsPerTimeUnit())
}

// AdjustedPositionAt maps an original time onto the compressed axis at an
// explicit scale. Every collapsed segment fully behind t contributes its
// savings; a t inside a collapsed segment is interpolated across the
// segment's compressed width.
func (e *Engine) AdjustedPositionAt(t, pixelsPerTimeUnit float64) float64 {
	fixed := FixedCompressedTimeUnits(pixelsPerTimeUnit)
	compression := 0.0

	for _, seg := range e.collapsed {
		if t <= seg.StartTime {
			break
		}
		width := compressedWidth(seg.Duration, fixed)
		if t < seg.EndTime {
			frac := (t - seg.StartTime) / seg.Duration
			return seg.StartTime - compression + frac*width
		}
		compression += seg.Duration - width
	}

	return t - compression
}

// InverseAdjustedPosition maps a compressed-axis value back to original time
// using the engine's current scale.
func (e *Engine) InverseAdjustedPosition(a float64) float64 {
	return e.InverseAdjustedPositionAt(a, e.PixelsPerTimeUnit())
}

// InverseAdjustedPositionAt is the exact inverse of AdjustedPositionAt.
func (e *Engine) InverseAdjustedPositionAt(a, pixelsPerTimeUnit float64) float64 {
	fixed := FixedCompressedTimeUnits(pixelsPerTimeUnit)
	compression := 0.0

	for _, seg := range e.collapsed {
		adjustedStart := seg.StartTime - compression
		if a <= adjustedStart {
			break
		}
		width := compressedWidth(seg.Duration, fixed)
		if a < adjustedStart+width {
			frac := (a - adjustedStart) / width
			return seg.StartTime + frac*seg.Duration
		}
		compression += seg.Duration - width
	}

	return a + compression
}

// AdjustedViewportRange returns (maxTime - minTime) minus the savings of the
// part of every collapsed segment that overlaps [minTime, maxTime]. It always
// equals AdjustedPosition(maxTime) - AdjustedPosition(minTime).
func (e *Engine) AdjustedViewportRange(minTime, maxTime float64) float64 {
	return e.AdjustedViewportRangeAt(minTime, maxTime, e.PixelsPerTimeUnit())
}

// AdjustedViewportRangeAt is AdjustedViewportRange at an explicit scale.
func (e *Engine) AdjustedViewportRangeAt(minTime, maxTime, pixelsPerTimeUnit float64) float64 {
	if maxTime <= minTime {
		return 0
	}

	fixed := FixedCompressedTimeUnits(pixelsPerTimeUnit)
	savings := 0.0
	for _, seg := range e.collapsed {
		overlap := math.Min(seg.EndTime, maxTime) - math.Max(seg.StartTime, minTime)
		if overlap <= 0 {
			continue
		}
		width := compressedWidth(seg.Duration, fixed)
		savings += overlap - overlap/seg.Duration*width
	}

	return (maxTime - minTime) - savings
}
