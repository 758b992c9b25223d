// Package chart converts a birth date-time into the four pillars.
package chart

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/seenimoa/sajuai/internal/calendar"
	"github.com/seenimoa/sajuai/pkg/models"
	"github.com/seenimoa/sajuai/pkg/utils"
)

// BirthInput is the raw request. Month and Day are Gregorian; IsLeapMonth
// marks a birth recorded in an intercalary lunar month.
type BirthInput struct {
	Year               int        `json:"year" yaml:"year" validate:"gte=1000,lte=9999"`
	Month              int        `json:"month" yaml:"month" validate:"gte=1,lte=12"`
	Day                int        `json:"day" yaml:"day" validate:"gte=1,lte=31"`
	Hour               int        `json:"hour" yaml:"hour" validate:"gte=0,lte=23"`
	Minute             int        `json:"minute" yaml:"minute" validate:"gte=0,lte=59"`
	Sex                models.Sex `json:"sex" yaml:"sex" validate:"oneof=male female"`
	IsLeapMonth        bool       `json:"is_leap_month" yaml:"is_leap_month"`
	SolarOffsetMinutes float64    `json:"solar_offset_minutes" yaml:"solar_offset_minutes" validate:"gte=-720,lte=720"`
	Zone               string     `json:"zone,omitempty" yaml:"zone,omitempty"`
}

// YearBoundary selects when the year pillar changes.
type YearBoundary string

const (
	YearBoundaryCalendar YearBoundary = "calendar" // January 1
	YearBoundaryLichun   YearBoundary = "lichun"   // 입춘
)

// PrecisionPolicy decides whether approximated solar terms are acceptable.
type PrecisionPolicy string

const (
	PrecisionAllow  PrecisionPolicy = "allow"
	PrecisionStrict PrecisionPolicy = "strict"
)

// Options tunes chart construction.
type Options struct {
	YearBoundary YearBoundary
	Precision    PrecisionPolicy
}

// DefaultOptions returns calendar-year boundaries with approximation allowed.
func DefaultOptions() Options {
	return Options{YearBoundary: YearBoundaryCalendar, Precision: PrecisionAllow}
}

// dayAnchor is 1900-01-01, a 갑술 day.
var (
	dayAnchor       = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	dayAnchorPillar = models.Pillar{Stem: models.StemGap, Branch: models.BranchSul}
)

// 1984 is a 갑자 year.
const cycleBaseYear = 1984

var validate = validator.New()

// Builder constructs charts against a fixed set of calendrical tables.
type Builder struct {
	tables *calendar.Tables
	opts   Options
	log    zerolog.Logger
}

// NewBuilder creates a builder. Zero-valued option fields take defaults.
func NewBuilder(tables *calendar.Tables, opts Options, log zerolog.Logger) *Builder {
	def := DefaultOptions()
	if opts.YearBoundary == "" {
		opts.YearBoundary = def.YearBoundary
	}
	if opts.Precision == "" {
		opts.Precision = def.Precision
	}
	return &Builder{tables: tables, opts: opts, log: log}
}

// Options returns the effective options.
func (b *Builder) Options() Options { return b.opts }

// Build computes the chart of one birth.
func (b *Builder) Build(in BirthInput) (*models.Chart, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	offset, err := solarOffset(in)
	if err != nil {
		return nil, err
	}

	loc := b.tables.Location()
	civil := utils.CivilTime(in.Year, in.Month, in.Day, in.Hour, in.Minute, loc)
	corrected := civil.Add(-time.Duration(offset * float64(time.Minute)))

	year, yearPrecision := b.yearPillar(civil, in.Year)

	probe := civil
	if in.IsLeapMonth {
		probe = leapProbe(in, loc)
	}
	monthBranch, monthPrecision := b.tables.MonthBranch(probe)
	month := models.Pillar{Stem: calendar.MonthStem(year.Stem, monthBranch), Branch: monthBranch}

	day := dayPillar(in.Year, in.Month, in.Day)
	hour := hourPillar(day.Stem, corrected)

	precision := monthPrecision.Combine(yearPrecision)
	if b.opts.Precision == PrecisionStrict && precision != models.PrecisionExact {
		return nil, fmt.Errorf("%w: no tabulated solar terms around %s", ErrUnsupportedYear, utils.FormatDateTimeKST(probe))
	}

	c := &models.Chart{
		Year:  year,
		Month: month,
		Day:   day,
		Hour:  hour,
		Birth: models.BirthInfo{
			Year:               in.Year,
			Month:              in.Month,
			Day:                in.Day,
			Hour:               in.Hour,
			Minute:             in.Minute,
			Sex:                in.Sex,
			IsLeapMonth:        in.IsLeapMonth,
			Zone:               in.Zone,
			SolarOffsetMinutes: offset,
			CivilTime:          civil,
			CorrectedTime:      corrected,
			Precision:          precision,
		},
	}
	b.log.Debug().
		Str("chart", c.String()).
		Str("precision", string(precision)).
		Float64("offset_min", offset).
		Msg("chart built")
	return c, nil
}

// BuildAuto sets IsLeapMonth from the leap-month registry before building.
func (b *Builder) BuildAuto(in BirthInput) (*models.Chart, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	if lm, ok := b.tables.LeapMonthAt(in.Year, in.Month, in.Day); ok {
		b.log.Debug().Int("lunar_year", lm.Year).Int("leap_month", lm.Month).Msg("leap month detected")
		in.IsLeapMonth = true
	} else {
		in.IsLeapMonth = false
	}
	return b.Build(in)
}

func checkInput(in BirthInput) error {
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &InputError{
				Field:  fe.Field(),
				Value:  fe.Value(),
				Reason: fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param()),
			}
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if in.Year < calendar.MinYear || in.Year > calendar.MaxYear {
		return fmt.Errorf("%w: %d outside %d-%d", ErrUnsupportedYear, in.Year, calendar.MinYear, calendar.MaxYear)
	}
	if !utils.ValidDate(in.Year, in.Month, in.Day) {
		return &InputError{
			Field:  "Day",
			Value:  in.Day,
			Reason: fmt.Sprintf("%04d-%02d has %d days", in.Year, in.Month, utils.DaysInMonth(in.Year, in.Month)),
		}
	}
	return nil
}

// solarOffset returns the explicit offset, or the zone preset when the
// explicit offset is zero.
func solarOffset(in BirthInput) (float64, error) {
	if in.Zone == "" {
		return in.SolarOffsetMinutes, nil
	}
	preset, ok := calendar.SolarOffset(in.Zone)
	if !ok {
		return 0, &InputError{Field: "Zone", Value: in.Zone, Reason: "no solar-time preset for zone"}
	}
	if in.SolarOffsetMinutes != 0 {
		return in.SolarOffsetMinutes, nil
	}
	return preset, nil
}

func (b *Builder) yearPillar(civil time.Time, year int) (models.Pillar, models.Precision) {
	precision := models.PrecisionExact
	if b.opts.YearBoundary == YearBoundaryLichun {
		lichun := b.tables.Lichun(year)
		precision = lichun.Precision
		if civil.Before(lichun.Time) {
			year--
		}
	}
	return YearPillar(year), precision
}

// YearPillar returns the sexagenary pillar of a year counted from 1984 갑자.
func YearPillar(year int) models.Pillar {
	return models.Pillar{}.Shift(year - cycleBaseYear)
}

// leapProbe returns day 15 of the preceding month at the same clock time.
func leapProbe(in BirthInput, loc *time.Location) time.Time {
	year, month := in.Year, in.Month-1
	if month == 0 {
		year, month = year-1, 12
	}
	return utils.CivilTime(year, month, 15, in.Hour, in.Minute, loc)
}

func dayPillar(year, month, day int) models.Pillar {
	return dayAnchorPillar.Shift(utils.DaysSince(dayAnchor, year, month, day))
}

// hourPillar buckets corrected minutes-of-day into two-hour windows
// starting at 23:00.
func hourPillar(dayStem models.Stem, corrected time.Time) models.Pillar {
	window := (utils.MinuteOfDay(corrected) + 60) / 120 % models.BranchCount
	return models.Pillar{
		Stem:   calendar.HourStemStart(dayStem).Shift(window),
		Branch: models.Branch(window),
	}
}
