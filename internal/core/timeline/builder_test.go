package timeline

import (
	"testing"

	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func ev(id string, start, end float64) model.Event {
	return model.Event{ID: id, TimeStart: model.Float64Ptr(start), TimeEnd: model.Float64Ptr(end)}
}

func ids(events []model.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestBuilderMerge(t *testing.T) {
	b := NewBuilder()

	merged := b.Merge(
		Source{Name: "main", Events: []model.Event{ev("b", 5, 6), ev("a", 1, 2), {Title: "anonymous"}}},
		Source{Name: "extra", Supplementary: true, Events: []model.Event{ev("a", 50, 60), ev("c", 3, 4)}},
		Source{Name: "override", Events: []model.Event{ev("b", 7, 8), {ID: "draft"}}},
	)

	assert.Equal(t, []string{"a", "c", "b", "draft"}, ids(merged))
	assert.Equal(t, 1.0, merged[0].Start(), "primary wins over supplementary")
	assert.Equal(t, 7.0, merged[2].Start(), "later primary wins")
}

func TestBuilderSort(t *testing.T) {
	b := NewBuilder()
	events := []model.Event{
		{ID: "u2", DisplayOrder: 1},
		{ID: "u1", DisplayOrder: 1},
		{ID: "t2", TimeStart: model.Float64Ptr(1), DisplayOrder: 2},
		{ID: "t1", TimeStart: model.Float64Ptr(1), DisplayOrder: 1},
		{ID: "t0", TimeStart: model.Float64Ptr(-3)},
	}

	b.Sort(events)

	assert.Equal(t, []string{"t0", "t1", "t2", "u1", "u2"}, ids(events))
}
