// Package fortune derives the ten-year great-fortune (대운) timeline of a
// chart.
package fortune

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/seenimoa/sajuai/internal/calendar"
	"github.com/seenimoa/sajuai/pkg/models"
	"github.com/seenimoa/sajuai/pkg/utils"
)

// DefaultPeriods is the number of ten-year periods produced.
const DefaultPeriods = 8

const (
	daysPerYearOfAge = 3.0
	minStartAge      = 1.0
	maxStartAge      = 10.0
)

// Timeline computes great-fortune sequences against fixed tables.
type Timeline struct {
	tables  *calendar.Tables
	periods int
	log     zerolog.Logger
}

// NewTimeline creates a timeline producing the given number of periods;
// non-positive means DefaultPeriods.
func NewTimeline(tables *calendar.Tables, periods int, log zerolog.Logger) *Timeline {
	if periods <= 0 {
		periods = DefaultPeriods
	}
	return &Timeline{tables: tables, periods: periods, log: log}
}

// Direction runs forward for a yang year stem with a male subject or a yin
// year stem with a female subject, and backward otherwise.
func Direction(yearStem models.Stem, sex models.Sex) models.Direction {
	yang := yearStem.Polarity() == models.Yang
	if yang == sex.IsMale() {
		return models.Forward
	}
	return models.Backward
}

// GreatFortune builds the timeline. Period i takes the month pillar
// stepped i+1 positions in the timeline's direction.
func (t *Timeline) GreatFortune(c *models.Chart, sex models.Sex, mode models.StartAgeMode) (models.GreatFortune, error) {
	if sex != models.SexMale && sex != models.SexFemale {
		return models.GreatFortune{}, fmt.Errorf("unknown sex %q", sex)
	}
	dir := Direction(c.Year.Stem, sex)

	var startAge float64
	precision := c.Birth.Precision
	switch mode {
	case models.StartAgePrecise:
		var used models.Precision
		startAge, used = t.preciseStartAge(c, dir)
		precision = precision.Combine(used)
	case models.StartAgeSimplified:
		startAge = simplifiedStartAge(c.Birth.Day, dir)
	default:
		return models.GreatFortune{}, fmt.Errorf("unknown start age mode %q", mode)
	}

	out := models.GreatFortune{
		Direction: dir,
		Mode:      mode,
		Precision: precision,
		StartAge:  startAge,
		Periods:   make([]models.GreatFortunePeriod, 0, t.periods),
	}
	for i := 0; i < t.periods; i++ {
		start := c.Birth.Year + int(math.Round(startAge+10*float64(i)))
		out.Periods = append(out.Periods, models.GreatFortunePeriod{
			Index:     i,
			StartAge:  utils.Round1(startAge + 10*float64(i)),
			Pillar:    c.Month.Shift((i + 1) * dir.Sign()),
			StartYear: start,
			EndYear:   start + 9,
			Direction: dir,
		})
	}
	t.log.Debug().
		Str("direction", string(dir)).
		Float64("start_age", startAge).
		Str("precision", string(precision)).
		Msg("great fortune computed")
	return out, nil
}

// preciseStartAge converts the span between birth and the adjacent
// sectional term into years of age at three days per year.
func (t *Timeline) preciseStartAge(c *models.Chart, dir models.Direction) (float64, models.Precision) {
	days, term := t.DaysToTerm(c, dir)
	age := math.Max(minStartAge, math.Min(maxStartAge, days/daysPerYearOfAge))
	return utils.Round1(age), term.Precision
}

// simplifiedStartAge is the fixed 6 ± 1 rule keyed on the day of month.
func simplifiedStartAge(day int, dir models.Direction) float64 {
	late := day > 15
	if dir == models.Forward {
		if late {
			return 5
		}
		return 7
	}
	if late {
		return 7
	}
	return 5
}

// DaysToTerm returns the fractional days between birth and the sectional
// term the timeline counts from, with that term.
func (t *Timeline) DaysToTerm(c *models.Chart, dir models.Direction) (float64, calendar.TermInstant) {
	prev, next := t.tables.SectionalAround(c.Birth.CivilTime)
	if dir == models.Forward {
		return utils.FractionalDays(c.Birth.CivilTime, next.Time), next
	}
	return utils.FractionalDays(prev.Time, c.Birth.CivilTime), prev
}
