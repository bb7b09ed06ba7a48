package viewport

import "math"

// Compressor is the adjusted-position mapping the controller centers and
// fits against. *collapse.Engine satisfies it.
type Compressor interface {
	AdjustedPositionAt(t, pixelsPerTimeUnit float64) float64
	InverseAdjustedPositionAt(a, pixelsPerTimeUnit float64) float64
	AdjustedViewportRangeAt(minTime, maxTime, pixelsPerTimeUnit float64) float64
}

type identityCompressor struct{}

func (identityCompressor) AdjustedPositionAt(t, _ float64) float64 {
	return t
}

func (identityCompressor) InverseAdjustedPositionAt(a, _ float64) float64 {
	return a
}

func (identityCompressor) AdjustedViewportRangeAt(minTime, maxTime, _ float64) float64 {
	return math.Max(0, maxTime-minTime)
}
