package utils

import (
	"fmt"
	"math"
)

// Round rounds x half away from zero to the given number of decimals.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// Round1 rounds to one decimal place, the precision of every reported score.
func Round1(x float64) float64 { return Round(x, 1) }

// FormatScore formats a score with one decimal.
func FormatScore(x float64) string {
	return fmt.Sprintf("%.1f", x)
}

// FormatOffset formats a solar-time offset in minutes, e.g. "+32.0분".
func FormatOffset(minutes float64) string {
	return fmt.Sprintf("%+.1f분", minutes)
}

// FormatPct formats a ratio as a percentage string with one decimal.
func FormatPct(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}
