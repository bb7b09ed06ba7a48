package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected string
	}{
		{"zero", 0, "0"},
		{"hundreds", 999, "999"},
		{"exactly 1000", 1000, "1.0K"},
		{"thousands", 1500, "1.5K"},
		{"exactly 1 million", 1000000, "1.0M"},
		{"millions", 2500000, "2.5M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatNumber(tt.input))
		})
	}
}

func TestFormatSpan(t *testing.T) {
	tests := []struct {
		name     string
		days     float64
		expected string
	}{
		{"zero", 0, "0m"},
		{"minutes", 30.0 / (24 * 60), "30m"},
		{"hours and minutes", 1.5 / 24, "1h 30m"},
		{"whole days", 3, "3d"},
		{"days and hours", 2.25, "2d 6h"},
		{"years", 730, "2.0y"},
		{"negative", -1.5, "-1d 12h"},
		{"infinite", math.Inf(1), "∞"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSpan(tt.days))
		})
	}
}

func TestFormatZoom(t *testing.T) {
	assert.Equal(t, "1x", FormatZoom(1))
	assert.Equal(t, "1.5x", FormatZoom(1.5))
	assert.Equal(t, "0.143x", FormatZoom(1.0/7))
	assert.Equal(t, "0.001x", FormatZoom(1e-3))
}

func TestFormatAxis(t *testing.T) {
	assert.Equal(t, "30", FormatAxis(30))
	assert.Equal(t, "1.235", FormatAxis(1.23456))
	assert.Equal(t, "0", FormatAxis(-0.0001))
	assert.Equal(t, "-2.5", FormatAxis(-2.5))
}
