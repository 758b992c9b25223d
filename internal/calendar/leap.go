package calendar

import "time"

// LeapMonth is an intercalary lunar month (윤달) with the inclusive
// Gregorian date range it covers.
type LeapMonth struct {
	Year  int       `json:"year"`  // lunar year
	Month int       `json:"month"` // number of the month being repeated
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type leapEntry struct {
	year, month            int
	startY, startM, startD int
	endY, endM, endD       int
}

// Korean lunisolar calendar, 1984–2036.
var leapRegistry = []leapEntry{
	{1984, 10, 1984, 11, 23, 1984, 12, 21},
	{1987, 6, 1987, 7, 26, 1987, 8, 23},
	{1990, 5, 1990, 6, 23, 1990, 7, 21},
	{1993, 3, 1993, 4, 22, 1993, 5, 20},
	{1995, 8, 1995, 9, 25, 1995, 10, 23},
	{1998, 5, 1998, 6, 24, 1998, 7, 22},
	{2001, 4, 2001, 5, 23, 2001, 6, 20},
	{2004, 2, 2004, 3, 21, 2004, 4, 18},
	{2006, 7, 2006, 8, 24, 2006, 9, 21},
	{2009, 5, 2009, 6, 23, 2009, 7, 21},
	{2012, 3, 2012, 4, 21, 2012, 5, 20},
	{2014, 9, 2014, 10, 24, 2014, 11, 21},
	{2017, 5, 2017, 6, 24, 2017, 7, 22},
	{2020, 4, 2020, 5, 23, 2020, 6, 20},
	{2023, 2, 2023, 3, 22, 2023, 4, 19},
	{2025, 6, 2025, 7, 25, 2025, 8, 22},
	{2028, 5, 2028, 6, 23, 2028, 7, 21},
	{2031, 3, 2031, 4, 22, 2031, 5, 20},
	{2033, 11, 2033, 12, 22, 2034, 1, 19},
	{2036, 6, 2036, 7, 23, 2036, 8, 21},
}

func (e leapEntry) resolve(loc *time.Location) LeapMonth {
	return LeapMonth{
		Year:  e.year,
		Month: e.month,
		Start: time.Date(e.startY, time.Month(e.startM), e.startD, 0, 0, 0, 0, loc),
		End:   time.Date(e.endY, time.Month(e.endM), e.endD, 0, 0, 0, 0, loc),
	}
}

func dateKey(y, m, d int) int { return y*10000 + m*100 + d }

// LeapMonths returns the registry in chronological order.
func (t *Tables) LeapMonths() []LeapMonth {
	out := make([]LeapMonth, 0, len(leapRegistry))
	for _, e := range leapRegistry {
		out = append(out, e.resolve(t.loc))
	}
	return out
}

// LeapMonthAt reports the intercalary month covering a Gregorian date. An
// intercalary month late in a lunar year can spill into January, so the
// previous year's entry is checked too.
func (t *Tables) LeapMonthAt(year, month, day int) (LeapMonth, bool) {
	key := dateKey(year, month, day)
	for _, e := range leapRegistry {
		if e.year != year && e.year != year-1 {
			continue
		}
		if key >= dateKey(e.startY, e.startM, e.startD) && key <= dateKey(e.endY, e.endM, e.endD) {
			return e.resolve(t.loc), true
		}
	}
	return LeapMonth{}, false
}
