package cache

import (
	"sort"
	"strconv"
	"strings"

	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/penwyp/go-timeline-view/internal/util"
)

// EventsFingerprint summarizes the layout-relevant fields of events.
func EventsFingerprint(events []model.Event) string {
	var b strings.Builder
	for _, e := range events {
		b.WriteString(e.ID)
		b.WriteByte(0)
		b.WriteString(e.Title)
		b.WriteByte(0)
		writeOptional(&b, e.TimeStart)
		writeOptional(&b, e.TimeEnd)
		b.WriteString(strconv.Itoa(e.DisplayOrder))
		b.WriteByte('\n')
	}
	return strconv.Itoa(len(events)) + "-" + util.Checksum([]byte(b.String()))
}

func writeOptional(b *strings.Builder, v *float64) {
	if v == nil {
		b.WriteString("-")
	} else {
		b.WriteString(strconv.FormatFloat(*v, 'g', -1, 64))
	}
	b.WriteByte(0)
}

// Key identifies a layout by everything it is computed from: the event
// fingerprint, the viewport and the expanded segment ids.
func Key(eventsFingerprint string, vp model.Viewport, expandedIDs []string) string {
	ids := append([]string(nil), expandedIDs...)
	sort.Strings(ids)

	parts := []string{
		eventsFingerprint,
		strconv.FormatFloat(vp.StartTime, 'g', -1, 64),
		strconv.FormatFloat(vp.ZoomLevel, 'g', -1, 64),
		strconv.FormatFloat(vp.WidthPixels, 'g', -1, 64),
		strings.Join(ids, ","),
	}
	return strings.Join(parts, "|")
}
