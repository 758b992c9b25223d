package calendar

import (
	"math"
	"time"
)

// Low-precision solar position after Meeus, "Astronomical Algorithms"
// ch. 25. Accurate to roughly 0.01°, i.e. well under a quarter hour of
// solar-term time over 1900–2100.

const (
	j2000         = 2451545.0
	unixEpochJD   = 2440587.5
	tropicalYear  = 365.2422
	secondsPerDay = 86400.0
)

// apparentLongitude returns the apparent geocentric ecliptic longitude of
// the Sun in degrees [0, 360) at Julian Ephemeris Day jde.
func apparentLongitude(jde float64) float64 {
	t := (jde - j2000) / 36525
	l0 := 280.46646 + 36000.76983*t + 0.0003032*t*t
	m := rad(357.52911 + 35999.05029*t - 0.0001537*t*t)
	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(m) +
		(0.019993-0.000101*t)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)
	omega := rad(125.04 - 1934.136*t)
	return normDeg(l0 + c - 0.00569 - 0.00478*math.Sin(omega))
}

// deltaT estimates TT − UT in seconds with the long-term parabola
// −20 + 32u², u = (year − 1820)/100.
func deltaT(year int) float64 {
	u := (float64(year) - 1820) / 100
	return -20 + 32*u*u
}

// approximateTerm finds the instant in the given Gregorian year at which
// the Sun reaches the term's longitude.
func approximateTerm(year int, term SolarTerm) time.Time {
	target := term.Longitude()
	// 소한 falls near January 6; successive terms are ~15.22 days apart.
	jde := julianDay(year, 1, 6) + float64(term)*tropicalYear/TermCount
	for i := 0; i < 20; i++ {
		diff := wrapDeg(target - apparentLongitude(jde))
		jde += diff * tropicalYear / 360
		if math.Abs(diff) < 1e-9 {
			break
		}
	}
	jd := jde - deltaT(year)/secondsPerDay
	sec := (jd - unixEpochJD) * secondsPerDay
	return time.Unix(int64(math.Round(sec)), 0)
}

// julianDay returns the Julian Day of 0h UT on a Gregorian date.
func julianDay(year, month, day int) float64 {
	if month <= 2 {
		year--
		month += 12
	}
	a := year / 100
	b := 2 - a + a/4
	return math.Floor(365.25*float64(year+4716)) + math.Floor(30.6001*float64(month+1)) +
		float64(day+b) - 1524.5
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }

func normDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// wrapDeg maps an angle difference into (−180, 180].
func wrapDeg(d float64) float64 {
	d = normDeg(d)
	if d > 180 {
		d -= 360
	}
	return d
}
