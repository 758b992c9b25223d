// Package almanac imports tabulated solar-term instants: it scrapes
// almanac web pages, and reads and writes the YAML data file that
// calendar.WithExactTerms consumes.
package almanac

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/seenimoa/sajuai/internal/calendar"
	"github.com/seenimoa/sajuai/pkg/utils"
)

// Terms maps Gregorian year → term → instant.
type Terms = map[int]map[calendar.SolarTerm]time.Time

// ErrNoTerms is returned when a page or file yields no solar terms.
var ErrNoTerms = fmt.Errorf("no solar terms found")

var (
	numberRe = regexp.MustCompile(`\d+`)
	clockRe  = regexp.MustCompile(`(\d{1,2})\s*[:시]\s*(\d{1,2})`)
)

// ParseHTML extracts the solar terms of year from an almanac page. Every
// table row whose first cell starts with a term name is read as
// name, date, time; dates may be "2024-02-04", "02월 04일" or "2.4", and
// times "17:27" or "17시 27분". Times are KST.
func ParseHTML(r io.Reader, year int) (map[calendar.SolarTerm]time.Time, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse almanac HTML: %w", err)
	}

	out := make(map[calendar.SolarTerm]time.Time)
	var rowErr error
	doc.Find("table tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		cells := tr.Find("td, th").Map(func(_ int, s *goquery.Selection) string {
			return strings.TrimSpace(s.Text())
		})
		if len(cells) < 3 {
			return true
		}
		term, ok := termPrefix(cells[0])
		if !ok {
			return true
		}
		at, err := parseInstant(year, cells[1], cells[2])
		if err != nil {
			rowErr = fmt.Errorf("%s row: %w", term, err)
			return false
		}
		out[term] = at
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("year %d: %w", year, ErrNoTerms)
	}
	return out, nil
}

// termPrefix resolves a cell such as "입춘(立春)" to its term.
func termPrefix(cell string) (calendar.SolarTerm, bool) {
	for t := calendar.Sohan; t < calendar.TermCount; t++ {
		if strings.HasPrefix(cell, t.String()) {
			return t, true
		}
	}
	return 0, false
}

func parseInstant(year int, dateCell, timeCell string) (time.Time, error) {
	nums := numberRe.FindAllString(dateCell, -1)
	if len(nums) < 2 {
		return time.Time{}, fmt.Errorf("unreadable date %q", dateCell)
	}
	if len(nums) >= 3 {
		y, _ := strconv.Atoi(nums[len(nums)-3])
		if y != year {
			return time.Time{}, fmt.Errorf("date %q outside year %d", dateCell, year)
		}
	}
	month, _ := strconv.Atoi(nums[len(nums)-2])
	day, _ := strconv.Atoi(nums[len(nums)-1])
	if !utils.ValidDate(year, month, day) {
		return time.Time{}, fmt.Errorf("invalid date %q", dateCell)
	}

	m := clockRe.FindStringSubmatch(timeCell)
	if m == nil {
		return time.Time{}, fmt.Errorf("unreadable time %q", timeCell)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid time %q", timeCell)
	}
	return utils.CivilTime(year, month, day, hour, minute, utils.KST), nil
}
