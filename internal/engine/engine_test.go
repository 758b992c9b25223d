package engine

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenimoa/sajuai/internal/calendar"
	"github.com/seenimoa/sajuai/internal/chart"
	"github.com/seenimoa/sajuai/pkg/models"
)

var referenceInput = chart.BirthInput{Year: 1995, Month: 8, Day: 26, Hour: 10, Minute: 15, Sex: models.SexMale}

func newEngine(cfg Config) *Engine {
	e := New(calendar.New(), cfg, zerolog.Nop())
	e.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	return e
}

func TestAnalyzeReference(t *testing.T) {
	a, err := newEngine(DefaultConfig()).Analyze(referenceInput)
	require.NoError(t, err)

	assert.Equal(t, "을해 갑신 기축 기사", a.Chart.String())
	assert.Equal(t, models.ElementScores{2.3, 0.7, 2.9, 1.0, 1.1}, a.RawScores)
	assert.Equal(t, models.ElementScores{2, 1, 3, 1, 1}, a.SimpleScores)
	assert.Equal(t, models.StrengthWeak, a.Strength.Label)
	assert.Equal(t, models.Backward, a.Fortune.Direction)
	assert.Equal(t, 6.1, a.Fortune.StartAge)
	assert.Len(t, a.Fortune.Periods, 8)
	assert.Len(t, a.Relations.Combinations, 1)
	assert.Equal(t, []models.Branch{models.BranchSin}, a.Spirits[models.SpiritHeavenlyNoble])
	assert.Equal(t, models.StageOfficer, a.Stages[models.PositionYear])
	assert.Equal(t, "갈등이 생기기 쉬우니 원만한 소통 필요", a.Reading.Relationships)
	assert.Len(t, a.ElementReading, 5)
}

func TestAnalyzeDeterministic(t *testing.T) {
	e := newEngine(DefaultConfig())
	first, err := e.Analyze(referenceInput)
	require.NoError(t, err)
	second, err := e.Analyze(referenceInput)
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Analyze not deterministic (-first +second):\n%s", diff)
	}
}

func TestAnalysisJSONRoundtrip(t *testing.T) {
	want, err := newEngine(DefaultConfig()).Analyze(referenceInput)
	require.NoError(t, err)

	data, err := json.Marshal(want)
	require.NoError(t, err)
	var got models.SajuAnalysis
	require.NoError(t, json.Unmarshal(data, &got))

	// time.Time compares with Equal, so the decoded zone name may differ.
	if diff := cmp.Diff(want, &got); diff != "" {
		t.Errorf("analysis JSON round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeWrapsErrors(t *testing.T) {
	e := newEngine(DefaultConfig())

	bad := referenceInput
	bad.Month = 13
	_, err := e.Analyze(bad)
	assert.ErrorIs(t, err, chart.ErrInvalidInput)

	old := referenceInput
	old.Year = 1850
	_, err = e.Analyze(old)
	assert.ErrorIs(t, err, chart.ErrUnsupportedYear)
}

func TestStrictPrecisionConfig(t *testing.T) {
	e := newEngine(Config{Precision: chart.PrecisionStrict})
	_, err := e.Analyze(chart.BirthInput{Year: 2060, Month: 3, Day: 1, Hour: 9, Sex: models.SexFemale})
	assert.ErrorIs(t, err, chart.ErrUnsupportedYear)

	_, err = e.Analyze(referenceInput)
	assert.NoError(t, err)
}

func TestSimplifiedStartAgeConfig(t *testing.T) {
	a, err := newEngine(Config{StartAgeMode: models.StartAgeSimplified, Periods: 4}).Analyze(referenceInput)
	require.NoError(t, err)
	assert.Equal(t, 7.0, a.Fortune.StartAge)
	assert.Len(t, a.Fortune.Periods, 4)
}

func TestNewAppliesDefaults(t *testing.T) {
	e := newEngine(Config{})
	cfg := e.Config()
	assert.Equal(t, models.StartAgePrecise, cfg.StartAgeMode)
	assert.Equal(t, 8, cfg.Periods)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
	assert.NotNil(t, e.Tables())
}

func TestAnalyzeAuto(t *testing.T) {
	a, err := newEngine(DefaultConfig()).AnalyzeAuto(chart.BirthInput{Year: 2020, Month: 5, Day: 28, Hour: 12, Sex: models.SexMale})
	require.NoError(t, err)
	assert.True(t, a.Chart.Birth.IsLeapMonth)
	assert.Equal(t, models.BranchJin, a.Chart.Month.Branch)
}

func TestAnalyzeBatch(t *testing.T) {
	e := newEngine(Config{Concurrency: 2})
	bad := referenceInput
	bad.Day = 32
	inputs := []chart.BirthInput{
		referenceInput,
		bad,
		{Year: 2024, Month: 2, Day: 10, Hour: 0, Minute: 30, Sex: models.SexFemale},
		{Year: 1988, Month: 3, Day: 14, Hour: 4, Minute: 40, Sex: models.SexMale},
	}

	results, err := e.AnalyzeBatch(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, inputs[i], r.Input)
	}
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "을해 갑신 기축 기사", results[0].Analysis.Chart.String())
	assert.ErrorIs(t, results[1].Err, chart.ErrInvalidInput)
	assert.Nil(t, results[1].Analysis)
	assert.NoError(t, results[2].Err)
	assert.Equal(t, "갑진", results[2].Analysis.Chart.Day.String())
	assert.NoError(t, results[3].Err)
}

func TestAnalyzeBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newEngine(DefaultConfig()).AnalyzeBatch(ctx, []chart.BirthInput{referenceInput, referenceInput})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeBatchEmpty(t *testing.T) {
	results, err := newEngine(DefaultConfig()).AnalyzeBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
