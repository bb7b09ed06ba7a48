package transform

import (
	"fmt"
	"math"
)

// LabelFormatter turns a time value into ruler labels. Callers encapsulate
// any "day zero" arithmetic here; the transform only sees floats.
type LabelFormatter interface {
	// DateLabel is the primary, calendar-date line.
	DateLabel(t float64) string
	// TimeLabel is the time-of-day line used to disambiguate equal dates.
	TimeLabel(t float64) string
}

// LabelFuncs adapts two functions to a LabelFormatter.
type LabelFuncs struct {
	Date func(t float64) string
	Time func(t float64) string
}

func (f LabelFuncs) DateLabel(t float64) string {
	if f.Date == nil {
		return DayLabels{}.DateLabel(t)
	}
	return f.Date(t)
}

func (f LabelFuncs) TimeLabel(t float64) string {
	if f.Time == nil {
		return DayLabels{}.TimeLabel(t)
	}
	return f.Time(t)
}

// DayLabels formats times as "day N" and "HH:MM" of that day.
type DayLabels struct{}

func (DayLabels) DateLabel(t float64) string {
	return fmt.Sprintf("day %d", int64(math.Floor(t)))
}

func (DayLabels) TimeLabel(t float64) string {
	frac := t - math.Floor(t)
	minutes := int(math.Round(frac * 24 * 60))
	if minutes >= 24*60 {
		minutes = 24*60 - 1
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
