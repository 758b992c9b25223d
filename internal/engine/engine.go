// Package engine runs the full analysis pipeline over a birth input:
// chart construction followed by every analyzer, bundled into one
// models.SajuAnalysis.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/sajuai/internal/analysis/elements"
	"github.com/seenimoa/sajuai/internal/analysis/fortune"
	"github.com/seenimoa/sajuai/internal/analysis/relations"
	"github.com/seenimoa/sajuai/internal/calendar"
	"github.com/seenimoa/sajuai/internal/chart"
	"github.com/seenimoa/sajuai/pkg/models"
)

// DefaultConcurrency bounds AnalyzeBatch when Config.Concurrency is unset.
const DefaultConcurrency = 4

// Config selects the engine's policies.
type Config struct {
	YearBoundary chart.YearBoundary
	Precision    chart.PrecisionPolicy
	StartAgeMode models.StartAgeMode
	Periods      int
	Concurrency  int
}

// DefaultConfig returns calendar-year boundaries, approximation allowed,
// precise start ages and eight periods.
func DefaultConfig() Config {
	return Config{
		YearBoundary: chart.YearBoundaryCalendar,
		Precision:    chart.PrecisionAllow,
		StartAgeMode: models.StartAgePrecise,
		Periods:      fortune.DefaultPeriods,
		Concurrency:  DefaultConcurrency,
	}
}

// Engine is safe for concurrent use.
type Engine struct {
	tables   *calendar.Tables
	builder  *chart.Builder
	timeline *fortune.Timeline
	cfg      Config
	log      zerolog.Logger
	now      func() time.Time
}

// New wires an engine over the given tables.
func New(tables *calendar.Tables, cfg Config, log zerolog.Logger) *Engine {
	def := DefaultConfig()
	if cfg.StartAgeMode == "" {
		cfg.StartAgeMode = def.StartAgeMode
	}
	if cfg.Periods <= 0 {
		cfg.Periods = def.Periods
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = def.Concurrency
	}
	return &Engine{
		tables:   tables,
		builder:  chart.NewBuilder(tables, chart.Options{YearBoundary: cfg.YearBoundary, Precision: cfg.Precision}, log),
		timeline: fortune.NewTimeline(tables, cfg.Periods, log),
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// Tables returns the calendrical tables the engine was built with.
func (e *Engine) Tables() *calendar.Tables { return e.tables }

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Analyze builds the chart for in and runs every analyzer on it.
func (e *Engine) Analyze(in chart.BirthInput) (*models.SajuAnalysis, error) {
	c, err := e.builder.Build(in)
	if err != nil {
		return nil, fmt.Errorf("building chart: %w", err)
	}
	return e.AnalyzeChart(c)
}

// AnalyzeAuto is Analyze with leap-month auto-detection.
func (e *Engine) AnalyzeAuto(in chart.BirthInput) (*models.SajuAnalysis, error) {
	c, err := e.builder.BuildAuto(in)
	if err != nil {
		return nil, fmt.Errorf("building chart: %w", err)
	}
	return e.AnalyzeChart(c)
}

// AnalyzeChart runs every analyzer on an already built chart.
func (e *Engine) AnalyzeChart(c *models.Chart) (*models.SajuAnalysis, error) {
	season := elements.MustScore(c, models.ModeSeasonWeighted)
	tenGods := relations.TenGods(c)
	summary := relations.Summary(tenGods)
	strength := relations.DayMasterStrength(c)
	branchRel := relations.BranchRelationships(c)

	gf, err := e.timeline.GreatFortune(c, c.Birth.Sex, e.cfg.StartAgeMode)
	if err != nil {
		return nil, fmt.Errorf("great fortune: %w", err)
	}

	a := &models.SajuAnalysis{
		Chart:          c,
		RawScores:      elements.MustScore(c, models.ModeRaw),
		SeasonScores:   season,
		SimpleScores:   elements.MustScore(c, models.ModeSimplified),
		ElementReading: elements.Interpret(season),
		TenGods:        tenGods,
		TenGodSummary:  summary,
		Strength:       strength,
		Relations:      branchRel,
		Spirits:        relations.Spirits(c),
		Stages:         relations.TwelveStages(c),
		Fortune:        gf,
		Reading:        relations.Interpret(strength, summary, season, branchRel),
		GeneratedAt:    e.now(),
	}
	e.log.Debug().Str("chart", c.String()).Str("strength", string(strength.Label)).Msg("analysis complete")
	return a, nil
}

// BatchResult is the outcome of one batch item. Exactly one of Analysis
// and Err is set.
type BatchResult struct {
	Index    int
	Input    chart.BirthInput
	Analysis *models.SajuAnalysis
	Err      error
}

// AnalyzeBatch analyzes inputs concurrently, at most Config.Concurrency at
// a time. Per-item failures are reported in the results and do not stop
// the batch; only context cancellation returns an error. Results keep
// input order.
func (e *Engine) AnalyzeBatch(ctx context.Context, inputs []chart.BirthInput) ([]BatchResult, error) {
	results := make([]BatchResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Concurrency)

	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, err := e.Analyze(in)
			// each goroutine owns results[i]
			results[i] = BatchResult{Index: i, Input: in, Analysis: a, Err: err}
			if err != nil {
				e.log.Warn().Err(err).Int("index", i).Msg("batch item failed")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
