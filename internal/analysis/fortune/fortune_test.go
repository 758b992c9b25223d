package fortune

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenimoa/sajuai/internal/calendar"
	"github.com/seenimoa/sajuai/internal/chart"
	"github.com/seenimoa/sajuai/pkg/models"
)

var tables = calendar.New()

func build(t *testing.T, y, m, d, h, min int, sex models.Sex) *models.Chart {
	t.Helper()
	b := chart.NewBuilder(tables, chart.DefaultOptions(), zerolog.Nop())
	c, err := b.Build(chart.BirthInput{Year: y, Month: m, Day: d, Hour: h, Minute: min, Sex: sex})
	require.NoError(t, err)
	return c
}

func pillars(gf models.GreatFortune) []string {
	out := make([]string, len(gf.Periods))
	for i, p := range gf.Periods {
		out[i] = p.Pillar.String()
	}
	return out
}

func TestDirection(t *testing.T) {
	assert.Equal(t, models.Forward, Direction(models.StemGap, models.SexMale))
	assert.Equal(t, models.Backward, Direction(models.StemGap, models.SexFemale))
	assert.Equal(t, models.Backward, Direction(models.StemEul, models.SexMale))
	assert.Equal(t, models.Forward, Direction(models.StemEul, models.SexFemale))
}

func TestGreatFortuneMaleReference(t *testing.T) {
	c := build(t, 1995, 8, 26, 10, 15, models.SexMale)
	tl := NewTimeline(tables, 0, zerolog.Nop())

	days, term := tl.DaysToTerm(c, models.Backward)
	assert.Equal(t, calendar.Ipchu, term.Term)
	assert.InDelta(t, 18.43, days, 0.01)

	gf, err := tl.GreatFortune(c, models.SexMale, models.StartAgePrecise)
	require.NoError(t, err)
	assert.Equal(t, models.Backward, gf.Direction)
	assert.Equal(t, 6.1, gf.StartAge)
	assert.Equal(t, models.PrecisionExact, gf.Precision)
	assert.Equal(t, []string{"계미", "임오", "신사", "경진", "기묘", "무인", "정축", "병자"}, pillars(gf))

	first := gf.Periods[0]
	assert.Equal(t, 2001, first.StartYear)
	assert.Equal(t, 2010, first.EndYear)
	assert.Equal(t, 6.1, first.StartAge)
	assert.Equal(t, 16.1, gf.Periods[1].StartAge)
	assert.Equal(t, 2011, gf.Periods[1].StartYear)
	for _, p := range gf.Periods {
		assert.Equal(t, models.Backward, p.Direction)
	}
}

func TestGreatFortuneFemaleReference(t *testing.T) {
	c := build(t, 1995, 8, 26, 10, 15, models.SexFemale)
	tl := NewTimeline(tables, DefaultPeriods, zerolog.Nop())

	days, term := tl.DaysToTerm(c, models.Forward)
	assert.Equal(t, calendar.Baengno, term.Term)
	assert.InDelta(t, 12.82, days, 0.01)

	gf, err := tl.GreatFortune(c, models.SexFemale, models.StartAgePrecise)
	require.NoError(t, err)
	assert.Equal(t, models.Forward, gf.Direction)
	assert.Equal(t, 4.3, gf.StartAge)
	require.Len(t, gf.Periods, 8)
	assert.Equal(t, []string{"을유", "병술", "정해", "무자"}, pillars(gf)[:4])
	assert.Equal(t, 1999, gf.Periods[0].StartYear)
}

func TestSimplifiedStartAge(t *testing.T) {
	c := build(t, 1995, 8, 26, 10, 15, models.SexMale)
	gf, err := NewTimeline(tables, 0, zerolog.Nop()).GreatFortune(c, models.SexMale, models.StartAgeSimplified)
	require.NoError(t, err)
	assert.Equal(t, 7.0, gf.StartAge)
	assert.Equal(t, 2002, gf.Periods[0].StartYear)

	assert.Equal(t, 5.0, simplifiedStartAge(16, models.Forward))
	assert.Equal(t, 7.0, simplifiedStartAge(15, models.Forward))
	assert.Equal(t, 7.0, simplifiedStartAge(16, models.Backward))
	assert.Equal(t, 5.0, simplifiedStartAge(15, models.Backward))
}

func TestStartAgeClamped(t *testing.T) {
	tl := NewTimeline(tables, 0, zerolog.Nop())

	// One hour after 백로: backward span is tiny.
	c := build(t, 1995, 9, 8, 7, 0, models.SexMale)
	gf, err := tl.GreatFortune(c, models.SexMale, models.StartAgePrecise)
	require.NoError(t, err)
	assert.Equal(t, models.Backward, gf.Direction)
	assert.Equal(t, 1.0, gf.StartAge)

	// Forward from the same instant: ~30 days to 한로.
	gf, err = tl.GreatFortune(c, models.SexFemale, models.StartAgePrecise)
	require.NoError(t, err)
	assert.Equal(t, models.Forward, gf.Direction)
	assert.Equal(t, 10.0, gf.StartAge)
}

func TestPeriodCount(t *testing.T) {
	c := build(t, 1995, 8, 26, 10, 15, models.SexMale)
	gf, err := NewTimeline(tables, 3, zerolog.Nop()).GreatFortune(c, models.SexMale, models.StartAgePrecise)
	require.NoError(t, err)
	assert.Len(t, gf.Periods, 3)
}

func TestApproximatePrecisionPropagates(t *testing.T) {
	c := build(t, 2050, 6, 20, 12, 0, models.SexMale)
	gf, err := NewTimeline(tables, 0, zerolog.Nop()).GreatFortune(c, models.SexMale, models.StartAgePrecise)
	require.NoError(t, err)
	assert.Equal(t, models.PrecisionApproximate, gf.Precision)
}

func TestGreatFortuneRejectsBadArguments(t *testing.T) {
	c := build(t, 1995, 8, 26, 10, 15, models.SexMale)
	tl := NewTimeline(tables, 0, zerolog.Nop())
	_, err := tl.GreatFortune(c, models.Sex("other"), models.StartAgePrecise)
	assert.Error(t, err)
	_, err = tl.GreatFortune(c, models.SexMale, models.StartAgeMode("lunar"))
	assert.Error(t, err)
}
