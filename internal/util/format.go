package util

import (
	"fmt"
	"math"
	"strconv"
)

// FormatNumber abbreviates large counts.
func FormatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	} else {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
}

// FormatSpan renders a span given in days with the two largest units.
func FormatSpan(days float64) string {
	if math.IsNaN(days) || math.IsInf(days, 0) {
		return "∞"
	}
	sign := ""
	if days < 0 {
		sign = "-"
		days = -days
	}

	minutes := int64(math.Round(days * 24 * 60))
	d := minutes / (24 * 60)
	h := (minutes / 60) % 24
	m := minutes % 60

	switch {
	case d >= 365:
		return fmt.Sprintf("%s%.1fy", sign, days/365)
	case d > 0 && h > 0:
		return fmt.Sprintf("%s%dd %dh", sign, d, h)
	case d > 0:
		return fmt.Sprintf("%s%dd", sign, d)
	case h > 0:
		return fmt.Sprintf("%s%dh %dm", sign, h, m)
	default:
		return fmt.Sprintf("%s%dm", sign, m)
	}
}

// FormatZoom renders a zoom level such as "1.5x" or "0.004x".
func FormatZoom(zoom float64) string {
	return strconv.FormatFloat(zoom, 'g', 3, 64) + "x"
}

// FormatAxis renders an axis value with three decimals, dropping trailing
// zeros.
func FormatAxis(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
