package model

// Event is a time-stamped item placed on the timeline.
// Times are dimensionless floats (days relative to a caller-chosen epoch).
type Event struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title,omitempty" yaml:"title,omitempty"`
	TimeStart     *float64 `json:"time_start,omitempty" yaml:"time_start,omitempty"`
	TimeEnd       *float64 `json:"time_end,omitempty" yaml:"time_end,omitempty"`
	ParentEventID string   `json:"parent_event_id,omitempty" yaml:"parent_event_id,omitempty"`
	DisplayOrder  int      `json:"display_order,omitempty" yaml:"display_order,omitempty"`
}

// IsTimed reports whether the event has a start time and takes part in layout.
func (e Event) IsTimed() bool {
	return e.TimeStart != nil
}

// Start returns the start time, or 0 for untimed events.
func (e Event) Start() float64 {
	if e.TimeStart == nil {
		return 0
	}
	return *e.TimeStart
}

// End returns the end time. Instantaneous events end where they start, and
// an end before the start is treated as instantaneous.
func (e Event) End() float64 {
	start := e.Start()
	if e.TimeEnd == nil || *e.TimeEnd < start {
		return start
	}
	return *e.TimeEnd
}

// Duration returns End() - Start().
func (e Event) Duration() float64 {
	return e.End() - e.Start()
}

// Viewport is the visible window onto the time axis.
// The end time is always derived from the other three fields.
type Viewport struct {
	StartTime   float64 `json:"start_time"`
	ZoomLevel   float64 `json:"zoom_level"`
	WidthPixels float64 `json:"width_pixels"`
}

// SegmentType tags a TimeSegment variant.
type SegmentType string

const (
	SegmentEvent     SegmentType = "event"
	SegmentGap       SegmentType = "gap"
	SegmentCollapsed SegmentType = "collapsed"
)

// CollapsedSegment is a padded sub-range of a gap that can be drawn at a
// constant pixel width.
type CollapsedSegment struct {
	ID          string  `json:"id"`
	StartTime   float64 `json:"start_time"`
	EndTime     float64 `json:"end_time"`
	Duration    float64 `json:"duration"`
	IsCollapsed bool    `json:"is_collapsed"`
}

// TimeSegment is one ordered piece of the timeline.
// Collapsible gaps carry a Collapsed reference whether or not they are
// currently collapsed; Type tells which way they are drawn.
type TimeSegment struct {
	Type      SegmentType       `json:"type"`
	StartTime float64           `json:"start_time"`
	EndTime   float64           `json:"end_time"`
	Duration  float64           `json:"duration"`
	EventID   string            `json:"event_id,omitempty"`
	Collapsed *CollapsedSegment `json:"collapsed,omitempty"`
}

// PositionResult locates a time range inside the viewport.
type PositionResult struct {
	LeftPercent  float64 `json:"left_percent"`
	WidthPercent float64 `json:"width_percent"`
	LeftPixel    float64 `json:"left_pixel"`
	WidthPixel   float64 `json:"width_pixel"`
	Visible      bool    `json:"visible"`
}

// Tick is a ruler mark. SubLabel is only set when the date label alone
// would be ambiguous.
type Tick struct {
	Time     float64 `json:"time"`
	Pixel    float64 `json:"pixel"`
	Percent  float64 `json:"percent"`
	Label    string  `json:"label"`
	SubLabel string  `json:"sub_label,omitempty"`
}

// EventPosition pairs an event with its computed position.
type EventPosition struct {
	EventID  string         `json:"event_id"`
	Title    string         `json:"title,omitempty"`
	Position PositionResult `json:"position"`
}

// SegmentMarker is the on-screen position of a collapsible segment.
type SegmentMarker struct {
	Segment  CollapsedSegment `json:"segment"`
	Position PositionResult   `json:"position"`
}

// Layout is everything a renderer needs for one frame.
type Layout struct {
	Viewport Viewport        `json:"viewport"`
	EndTime  float64         `json:"end_time"`
	Events   []EventPosition `json:"events"`
	Markers  []SegmentMarker `json:"markers"`
	Ticks    []Tick          `json:"ticks"`
}

// TimeRange is a closed interval on the time axis.
type TimeRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Mid returns the midpoint of the range.
func (r TimeRange) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 {
	return &v
}
