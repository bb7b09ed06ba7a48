package util

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeTimeProvider(t *testing.T) {
	mu.Lock()
	globalTimeProvider = nil
	mu.Unlock()

	tests := []struct {
		timezone string
		wantErr  bool
	}{
		{"Local", false},
		{"UTC", false},
		{"Asia/Shanghai", false},
		{"", false},
		{"Invalid/Timezone", true},
	}

	for _, tt := range tests {
		t.Run(tt.timezone, func(t *testing.T) {
			err := InitializeTimeProvider(tt.timezone)
			if tt.wantErr {
				assert.ErrorContains(t, err, "invalid timezone")
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, globalTimeProvider)
		})
	}
}

func TestGetTimeProvider(t *testing.T) {
	// Reset global provider
	mu.Lock()
	globalTimeProvider = nil
	mu.Unlock()

	// First call should initialize with Local timezone
	provider := GetTimeProvider()
	assert.NotNil(t, provider)

	// Second call should return the same instance
	provider2 := GetTimeProvider()
	assert.Equal(t, provider, provider2)
}

func TestTimeProvider_SetTimezone(t *testing.T) {
	provider := &TimeProvider{}

	for _, tz := range []string{"UTC", "Asia/Tokyo", "Local", ""} {
		assert.NoError(t, provider.SetTimezone(tz), tz)
	}
	assert.Error(t, provider.SetTimezone("Not/A/Timezone"))
}

func TestTimeProvider_Now(t *testing.T) {
	provider, err := NewTimeProvider("UTC")
	require.NoError(t, err)

	before := time.Now().UTC()
	now := provider.Now()
	after := time.Now().UTC()

	// The provider's Now() should be between before and after
	assert.True(t, now.After(before) || now.Equal(before))
	assert.True(t, now.Before(after) || now.Equal(after))
	
	// Should be in UTC timezone
	assert.Equal(t, "UTC", now.Location().String())
}

func TestTimeProvider_Concurrency(t *testing.T) {
	provider, err := NewTimeProvider("UTC")
	require.NoError(t, err)

	// Test concurrent access
	var wg sync.WaitGroup
	errors := make(chan error, 100)

	// Concurrent reads
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = provider.Now()
			_ = provider.In(time.Now())
			_ = provider.DateLabel(19000.5)
			_ = provider.TimeLabel(19000.5)
		}()
	}

	// Concurrent timezone changes
	timezones := []string{"UTC", "Asia/Shanghai", "America/New_York", "Europe/London"}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			tz := timezones[idx%len(timezones)]
			if err := provider.SetTimezone(tz); err != nil {
				errors <- err
			}
		}(i)
	}

	wg.Wait()
	close(errors)

	// Check for any errors
	for err := range errors {
		t.Errorf("Concurrent operation error: %v", err)
	}
}

func TestTimeProvider_LabelsAcrossTimezones(t *testing.T) {
	// Axis value 0.5 is noon UTC on the epoch date
	epoch := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		timezone string
		date     string
		clock    string
	}{
		{"UTC", "Jun 15 2024", "12:00"},
		{"America/New_York", "Jun 15 2024", "08:00"},
		{"Asia/Tokyo", "Jun 15 2024", "21:00"},
		{"Pacific/Kiritimati", "Jun 16 2024", "02:00"},
		{"Pacific/Pago_Pago", "Jun 15 2024", "01:00"},
	}

	for _, tt := range tests {
		t.Run(tt.timezone, func(t *testing.T) {
			provider, err := NewTimeProvider(tt.timezone)
			require.NoError(t, err)
			provider.SetEpoch(epoch)

			assert.Equal(t, tt.date, provider.DateLabel(0.5))
			assert.Equal(t, tt.clock, provider.TimeLabel(0.5))
		})
	}
}

func TestInitializeTimeProvider_ErrorMessage(t *testing.T) {
	// Test that error message includes helpful examples
	err := InitializeTimeProvider("Invalid/Zone")
	require.Error(t, err)
	
	assert.Contains(t, err.Error(), "invalid timezone 'Invalid/Zone'")
	assert.Contains(t, err.Error(), "Valid examples:")
	assert.Contains(t, err.Error(), "America/New_York")
	assert.Contains(t, err.Error(), "Asia/Shanghai")
}
func TestTimeProvider_DayAxis(t *testing.T) {
	provider, err := NewTimeProvider("UTC")
	require.NoError(t, err)

	epoch, err := provider.ParseEpoch("2024-03-01")
	require.NoError(t, err)
	provider.SetEpoch(epoch)

	noon := time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)
	assert.InDelta(t, 2.5, provider.DaysAt(noon), 1e-12)
	assert.True(t, provider.TimeAt(2.5).Equal(noon))

	assert.Equal(t, "Mar 3 2024", provider.DateLabel(2.5))
	assert.Equal(t, "12:00", provider.TimeLabel(2.5))
	assert.Equal(t, "Feb 29 2024", provider.DateLabel(-0.25))
	assert.Equal(t, "18:00", provider.TimeLabel(-0.25))
}

func TestTimeProvider_LabelsFollowTimezone(t *testing.T) {
	provider, err := NewTimeProvider("Asia/Shanghai")
	require.NoError(t, err)
	provider.SetEpoch(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "Jan 1 2024", provider.DateLabel(0.5))
	assert.Equal(t, "20:00", provider.TimeLabel(0.5))
}

func TestTimeProvider_ParseEpoch(t *testing.T) {
	provider, err := NewTimeProvider("UTC")
	require.NoError(t, err)

	rfc, err := provider.ParseEpoch("2024-03-01T06:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 6, rfc.Hour())

	_, err = provider.ParseEpoch("yesterday")
	assert.Error(t, err)
}

func TestTimeProvider_TimeAtClampsHugeValues(t *testing.T) {
	provider, err := NewTimeProvider("UTC")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		provider.DateLabel(1e12)
		provider.DateLabel(-1e12)
	})
	assert.True(t, provider.TimeAt(1e12).After(provider.TimeAt(1e4)))
}
