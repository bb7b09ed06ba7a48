package timeline

import (
	"github.com/penwyp/go-timeline-view/internal/core/model"
)

// Source is one batch of events, typically one file.
type Source struct {
	Name   string
	Events []model.Event
	// Supplementary sources only contribute events whose id no primary
	// source defines.
	Supplementary bool
}
