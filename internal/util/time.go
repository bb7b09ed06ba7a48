package util

import (
	"fmt"
	"math"
	"sync"
	"time"
)

const (
	day = 24 * time.Hour
	// maxLabelDays keeps epoch offsets inside time.Duration's ±292 years.
	maxLabelDays = 106000.0
)

// TimeProvider maps between wall-clock time and the timeline's day axis.
// Axis value 0 is the epoch; one unit is one day. Labels are rendered in
// the configured timezone.
type TimeProvider struct {
	location *time.Location
	epoch    time.Time
	mu       sync.RWMutex
}

var (
	globalTimeProvider *TimeProvider
	mu                 sync.Mutex
)

// NewTimeProvider creates a provider for timezone with the Unix epoch as day 0.
func NewTimeProvider(timezone string) (*TimeProvider, error) {
	provider := &TimeProvider{epoch: time.Unix(0, 0).UTC()}
	if err := provider.SetTimezone(timezone); err != nil {
		return nil, err
	}
	return provider, nil
}

// InitializeTimeProvider initializes the global time provider with the specified timezone
func InitializeTimeProvider(timezone string) error {
	mu.Lock()
	defer mu.Unlock()

	provider, err := NewTimeProvider(timezone)
	if err != nil {
		return err
	}

	globalTimeProvider = provider
	return nil
}

// GetTimeProvider returns the global time provider instance
// If not initialized, it defaults to Local timezone
func GetTimeProvider() *TimeProvider {
	mu.Lock()
	initialized := globalTimeProvider != nil
	mu.Unlock()
	if !initialized {
		InitializeTimeProvider("Local")
	}
	return globalTimeProvider
}

// SetTimezone updates the timezone for the time provider
func (tp *TimeProvider) SetTimezone(timezone string) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, America/New_York, Asia/Shanghai, Europe/London, Australia/Sydney", timezone, err)
		}
		loc = l
	}
	tp.location = loc
	return nil
}

// SetEpoch sets the instant that maps to axis value 0.
func (tp *TimeProvider) SetEpoch(epoch time.Time) {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	tp.epoch = epoch
}

// Epoch returns the instant at axis value 0.
func (tp *TimeProvider) Epoch() time.Time {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.epoch
}

// ParseEpoch accepts a date (2006-01-02) in the provider's timezone or an
// RFC3339 timestamp.
func (tp *TimeProvider) ParseEpoch(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	tp.mu.RLock()
	loc := tp.location
	tp.mu.RUnlock()
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid epoch %q: want YYYY-MM-DD or RFC3339", value)
	}
	return t, nil
}

// Now returns the current time in the configured timezone
func (tp *TimeProvider) Now() time.Time {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return time.Now().In(tp.location)
}

// In converts a time to the configured timezone
func (tp *TimeProvider) In(t time.Time) time.Time {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return t.In(tp.location)
}

// DaysAt converts a wall-clock time to an axis value.
func (tp *TimeProvider) DaysAt(t time.Time) float64 {
	return float64(t.Sub(tp.Epoch())) / float64(day)
}

// TimeAt converts an axis value to a wall-clock time in the configured
// timezone. Values beyond the range of time.Duration are clamped.
func (tp *TimeProvider) TimeAt(days float64) time.Time {
	if math.IsNaN(days) {
		days = 0
	}
	days = math.Max(-maxLabelDays, math.Min(maxLabelDays, days))
	return tp.In(tp.Epoch().Add(time.Duration(days * float64(day))))
}

// DateLabel renders the calendar date of an axis value.
func (tp *TimeProvider) DateLabel(days float64) string {
	return tp.TimeAt(days).Format("Jan 2 2006")
}

// TimeLabel renders the time of day of an axis value.
func (tp *TimeProvider) TimeLabel(days float64) string {
	return tp.TimeAt(days).Format("15:04")
}
