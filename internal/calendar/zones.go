package calendar

import "sort"

// Mean solar-time offsets in minutes: how far the zone's standard meridian
// runs ahead of local mean solar time at its reference city. Subtracting
// the offset from civil time yields local solar time.
var solarOffsets = map[string]float64{
	"Asia/Seoul":          32.0,
	"Asia/Tokyo":          -18.8,
	"Asia/Shanghai":       -5.9,
	"Asia/Hong_Kong":      22.1,
	"Asia/Singapore":      23.5,
	"Asia/Bangkok":        0.8,
	"Asia/Taipei":         22.0,
	"America/New_York":    0,
	"America/Los_Angeles": 0,
	"Europe/London":       0,
	"Europe/Paris":        9.3,
	"Australia/Sydney":    -37.2,
	"Asia/Kolkata":        21.3,
	"Asia/Dubai":          -13.2,
	"Europe/Berlin":       7.9,
	"America/Chicago":     0,
	"Asia/Manila":         1.2,
}

// SolarOffset returns the preset offset of a named zone.
func SolarOffset(zone string) (float64, bool) {
	v, ok := solarOffsets[zone]
	return v, ok
}

// Zones lists the preset zone names alphabetically.
func Zones() []string {
	out := make([]string, 0, len(solarOffsets))
	for z := range solarOffsets {
		out = append(out, z)
	}
	sort.Strings(out)
	return out
}
