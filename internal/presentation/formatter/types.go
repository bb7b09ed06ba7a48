package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/penwyp/go-timeline-view/internal/core/transform"
)

// Formatter writes non-interactive snapshots of the timeline.
type Formatter interface {
	FormatLayout(w io.Writer, layout model.Layout) error
	FormatSegments(w io.Writer, segments []model.TimeSegment) error
}

// New returns the formatter for an output name ("text" or "json").
func New(output string, labels transform.LabelFormatter) (Formatter, error) {
	switch strings.ToLower(output) {
	case "", "text", "table":
		return NewTableFormatter(labels), nil
	case "json":
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q: want text or json", output)
	}
}
