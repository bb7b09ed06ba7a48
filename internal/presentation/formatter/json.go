package formatter

import (
	"io"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-timeline-view/internal/core/model"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) FormatLayout(w io.Writer, layout model.Layout) error {
	if layout.Events == nil {
		layout.Events = []model.EventPosition{}
	}
	if layout.Markers == nil {
		layout.Markers = []model.SegmentMarker{}
	}
	if layout.Ticks == nil {
		layout.Ticks = []model.Tick{}
	}
	return f.write(w, layout)
}

func (f *JSONFormatter) FormatSegments(w io.Writer, segments []model.TimeSegment) error {
	if segments == nil {
		segments = []model.TimeSegment{}
	}
	return f.write(w, segments)
}

func (f *JSONFormatter) write(w io.Writer, v interface{}) error {
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
