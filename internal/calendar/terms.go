package calendar

import (
	"sort"
	"sync"
	"time"

	"github.com/seenimoa/sajuai/pkg/models"
	"github.com/seenimoa/sajuai/pkg/utils"
)

// Supported Gregorian year range.
const (
	MinYear = 1900
	MaxYear = 2100
)

// Tables resolves solar-term instants. Tabulated instants take precedence
// over the astronomical approximation term by term. A Tables value is safe
// for concurrent use and never changes after New returns; approximated
// years are computed lazily and cached.
type Tables struct {
	loc    *time.Location
	exact  map[int]map[SolarTerm]time.Time
	approx sync.Map // year → *[TermCount]time.Time
}

type options struct {
	loc   *time.Location
	exact []map[int]map[SolarTerm]time.Time
}

// Option configures New.
type Option func(*options)

// WithLocation sets the zone in which civil times are interpreted.
// Defaults to KST.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithExactTerms overlays tabulated instants on the built-in data. Later
// options win for the same year and term.
func WithExactTerms(years map[int]map[SolarTerm]time.Time) Option {
	return func(o *options) {
		o.exact = append(o.exact, years)
	}
}

// New builds the tables.
func New(opts ...Option) *Tables {
	o := options{loc: utils.KST}
	for _, opt := range opts {
		opt(&o)
	}
	t := &Tables{
		loc:   o.loc,
		exact: builtinExactTimes(o.loc),
	}
	for _, years := range o.exact {
		for year, terms := range years {
			m, ok := t.exact[year]
			if !ok {
				m = make(map[SolarTerm]time.Time, len(terms))
				t.exact[year] = m
			}
			for term, at := range terms {
				m[term] = at.In(o.loc)
			}
		}
	}
	return t
}

// Location returns the zone civil times are interpreted in.
func (t *Tables) Location() *time.Location { return t.loc }

// ExactYears returns the years with at least one tabulated term, ascending.
func (t *Tables) ExactYears() []int {
	years := make([]int, 0, len(t.exact))
	for y := range t.exact {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// ExactCount returns how many of the year's 24 terms are tabulated.
func (t *Tables) ExactCount(year int) int { return len(t.exact[year]) }

// Term returns the instant the term begins in the given Gregorian year.
func (t *Tables) Term(year int, term SolarTerm) TermInstant {
	if at, ok := t.exact[year][term]; ok {
		return TermInstant{Term: term, Time: at, Precision: models.PrecisionExact}
	}
	return TermInstant{Term: term, Time: t.approximated(year)[term], Precision: models.PrecisionApproximate}
}

// YearTerms returns all 24 terms of a Gregorian year in order.
func (t *Tables) YearTerms(year int) []TermInstant {
	out := make([]TermInstant, TermCount)
	for i := range out {
		out[i] = t.Term(year, SolarTerm(i))
	}
	return out
}

// Lichun returns 입춘 of the given year.
func (t *Tables) Lichun(year int) TermInstant { return t.Term(year, Ipchun) }

// SectionalAround returns the latest sectional term at or before at and the
// first one after it.
func (t *Tables) SectionalAround(at time.Time) (prev, next TermInstant) {
	year := at.In(t.loc).Year()
	candidates := make([]TermInstant, 0, 3*TermCount/2)
	for y := year - 1; y <= year+1; y++ {
		for _, term := range SectionalTerms() {
			candidates = append(candidates, t.Term(y, term))
		}
	}
	i := sort.Search(len(candidates), func(i int) bool {
		return candidates[i].Time.After(at)
	})
	// candidates span January of year−1 to December of year+1, so both
	// neighbours exist for any instant inside year.
	return candidates[i-1], candidates[i]
}

// MonthBranch resolves the month branch of an instant. The precision is
// exact only when both bracketing sectional terms are tabulated.
func (t *Tables) MonthBranch(at time.Time) (models.Branch, models.Precision) {
	prev, next := t.SectionalAround(at)
	return prev.Term.MonthBranch(), prev.Precision.Combine(next.Precision)
}

func (t *Tables) approximated(year int) *[TermCount]time.Time {
	if v, ok := t.approx.Load(year); ok {
		return v.(*[TermCount]time.Time)
	}
	var terms [TermCount]time.Time
	for i := range terms {
		terms[i] = approximateTerm(year, SolarTerm(i)).In(t.loc)
	}
	v, _ := t.approx.LoadOrStore(year, &terms)
	return v.(*[TermCount]time.Time)
}
