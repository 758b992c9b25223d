package utils

import (
	"math"
	"time"
)

// KST is Korea Standard Time (UTC+9). Solar-term tables and civil birth
// times are interpreted in this zone. A fixed offset is used rather than
// the tz database so historical charts do not shift with DST rules.
var KST = time.FixedZone("KST", 9*60*60)

// NowKST returns the current time in KST.
func NowKST() time.Time {
	return time.Now().In(KST)
}

// CivilTime builds a wall-clock instant in loc.
func CivilTime(year, month, day, hour, minute int, loc *time.Location) time.Time {
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
}

// DaysInMonth returns the number of days of a Gregorian month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ValidDate reports whether year-month-day exists in the Gregorian calendar.
func ValidDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= DaysInMonth(year, month)
}

// DaysSince counts whole calendar days from anchor to the date of t,
// ignoring the time of day. Negative when t precedes anchor.
func DaysSince(anchor time.Time, year, month, day int) int {
	a := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return int(math.Round(d.Sub(a).Hours() / 24))
}

// FractionalDays returns the signed span b − a in days.
func FractionalDays(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}

// MinuteOfDay returns minutes elapsed since local midnight.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// FormatDateTimeKST formats a time.Time to "2006-01-02 15:04 KST".
func FormatDateTimeKST(t time.Time) string {
	return t.In(KST).Format("2006-01-02 15:04 KST")
}
