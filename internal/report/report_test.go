package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenimoa/sajuai/internal/calendar"
	"github.com/seenimoa/sajuai/internal/chart"
	"github.com/seenimoa/sajuai/internal/engine"
	"github.com/seenimoa/sajuai/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Test Helpers
// ════════════════════════════════════════════════════════════════════

func sampleAnalysis(t *testing.T) *models.SajuAnalysis {
	t.Helper()
	e := engine.New(calendar.New(), engine.DefaultConfig(), zerolog.Nop())
	a, err := e.Analyze(chart.BirthInput{Year: 1995, Month: 8, Day: 26, Hour: 10, Minute: 15, Sex: models.SexMale})
	require.NoError(t, err)
	a.GeneratedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return a
}

// ════════════════════════════════════════════════════════════════════
// Text
// ════════════════════════════════════════════════════════════════════

func TestGenerateTextAllSections(t *testing.T) {
	out, err := GenerateText(sampleAnalysis(t), DefaultReportConfig())
	require.NoError(t, err)

	for _, want := range []string{
		"사주 분석 리포트",
		"Generated: 2026-01-01 09:00 KST",
		"사주: 을해 갑신 기축 기사",
		"■ 사주 원국",
		"1995-08-26 10:15",
		"■ 오행 분석 (계절 가중)",
		"■ 일간 강약",
		"판정: 신약",
		"■ 십신",
		"■ 지지 관계",
		"신-사 수합",
		"■ 신살",
		"천을귀인: 신",
		"■ 12운성",
		"■ 대운",
		"역행 · 대운수 6.1",
		"■ 종합 해석",
		"■ 참고: 오행 점수 변형",
		"raw: 목 2.3 · 화 0.7 · 토 2.9 · 금 1.0 · 수 1.1",
	} {
		assert.Contains(t, out, want)
	}
}

func TestGenerateTextExtremesAndShare(t *testing.T) {
	a := sampleAnalysis(t)
	a.SeasonScores = models.ElementScores{1.2, 0.3, 3.1, 2.0, 1.4}
	a.Strength.Supporting = 1.5
	a.Strength.Draining = 4.5

	out, err := GenerateText(a, ReportConfig{Sections: []ReportSection{SectionElements, SectionStrength}})
	require.NoError(t, err)
	assert.Contains(t, out, "가장 강한 오행: 토 · 가장 약한 오행: 화")
	assert.Contains(t, out, "세력 비중: 25.0%")

	html, err := GenerateHTML(a, DefaultReportConfig())
	require.NoError(t, err)
	assert.Contains(t, html, "가장 강한 오행 토")
	assert.Contains(t, html, "세력 비중 25.0%")
}

func TestGenerateTextSectionFilter(t *testing.T) {
	cfg := DefaultReportConfig()
	cfg.Sections = []ReportSection{SectionFortune}
	cfg.Title = "Custom"

	out, err := GenerateText(sampleAnalysis(t), cfg)
	require.NoError(t, err)

	assert.Contains(t, out, "Custom")
	assert.Contains(t, out, "■ 대운")
	assert.NotContains(t, out, "■ 사주 원국")
	assert.NotContains(t, out, "■ 오행 분석")
	assert.NotContains(t, out, "■ 십신")
	// the chart summary line is always present
	assert.Contains(t, out, "을해 갑신 기축 기사")
}

func TestGenerateTextPeriodsInOrder(t *testing.T) {
	a := sampleAnalysis(t)
	out, err := GenerateText(a, ReportConfig{Sections: []ReportSection{SectionFortune}})
	require.NoError(t, err)

	last := -1
	for _, p := range a.Fortune.Periods {
		idx := strings.Index(out, p.Pillar.String()+"  ")
		require.GreaterOrEqual(t, idx, 0, "period %s missing", p.Pillar)
		assert.Greater(t, idx, last)
		last = idx
	}
}

func TestGenerateNilAnalysis(t *testing.T) {
	_, err := GenerateText(nil, DefaultReportConfig())
	assert.Error(t, err)
	_, err = GenerateHTML(nil, DefaultReportConfig())
	assert.Error(t, err)
	_, err = GenerateJSON(&models.SajuAnalysis{})
	assert.Error(t, err)
}

// ════════════════════════════════════════════════════════════════════
// JSON / HTML
// ════════════════════════════════════════════════════════════════════

func TestGenerateJSON(t *testing.T) {
	out, err := GenerateJSON(sampleAnalysis(t))
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	for _, key := range []string{"chart", "raw_scores", "ten_gods", "strength", "relations", "spirits", "twelve_stages", "great_fortune", "reading"} {
		assert.Contains(t, doc, key)
	}

	var raw map[string]float64
	require.NoError(t, json.Unmarshal(doc["raw_scores"], &raw))
	assert.Equal(t, 2.3, raw["목"])
	assert.Equal(t, 2.9, raw["토"])

	var rel map[string][]any
	require.NoError(t, json.Unmarshal(doc["relations"], &rel))
	assert.NotNil(t, rel["harms"], "empty relation kinds encode as [] not null")
}

func TestGenerateHTML(t *testing.T) {
	out, err := GenerateHTML(sampleAnalysis(t), DefaultReportConfig())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "오행 점수 (계절 가중)")
	assert.Contains(t, out, "<td class=\"glyph\">을</td>")
	assert.Contains(t, out, "<h2>대운</h2>")
}

func TestGenerateDispatch(t *testing.T) {
	a := sampleAnalysis(t)

	out, err := Generate(a, ReportConfig{Format: FormatJSON})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"))

	out, err = Generate(a, ReportConfig{Sections: AllSections()})
	require.NoError(t, err)
	assert.Contains(t, out, "■ 사주 원국")

	_, err = Generate(a, ReportConfig{Format: "pdf"})
	assert.Error(t, err)
}

// ════════════════════════════════════════════════════════════════════
// Config parsing
// ════════════════════════════════════════════════════════════════════

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ReportFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{" JSON ", FormatJSON, false},
		{"html", FormatHTML, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseSections(t *testing.T) {
	got, err := ParseSections(nil)
	require.NoError(t, err)
	assert.Equal(t, AllSections(), got)

	got, err = ParseSections([]string{"Chart", "fortune"})
	require.NoError(t, err)
	assert.Equal(t, []ReportSection{SectionChart, SectionFortune}, got)

	_, err = ParseSections([]string{"risk"})
	assert.Error(t, err)
}

// ════════════════════════════════════════════════════════════════════
// Helpers
// ════════════════════════════════════════════════════════════════════

func TestScoreBar(t *testing.T) {
	assert.Equal(t, "", scoreBar(0, 3, 20))
	assert.Equal(t, strings.Repeat("█", 20), scoreBar(3, 3, 20))
	assert.Equal(t, strings.Repeat("█", 10), scoreBar(1.5, 3, 20))
	assert.Equal(t, "█", scoreBar(0.01, 3, 20))
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "0.53", formatRatio(0.53))
	assert.Equal(t, "∞", formatRatio(999))
}

func TestStrengthShare(t *testing.T) {
	assert.Equal(t, 50.0, StrengthShare(models.StrengthAnalysis{}))
	assert.InDelta(t, 25.0, StrengthShare(models.StrengthAnalysis{Supporting: 1, Draining: 3}), 1e-9)
}

func TestCharts(t *testing.T) {
	empty := HorizontalBarChart(nil, DefaultChartConfig())
	assert.Contains(t, empty, "데이터 없음")

	bars := HorizontalBarChart(ElementBars(models.ElementScores{2, 1, 3, 1, 1}), ChartConfig{Title: "a<b"})
	assert.Contains(t, bars, "a&lt;b")
	assert.Equal(t, 5, strings.Count(bars, "<rect x=\"60\""))
	assert.Contains(t, bars, ElementColor(models.Earth))

	g := GaugeChart(150, "x", 0)
	assert.Contains(t, g, ">100</text>")
	assert.Contains(t, g, ElementColor(models.Fire))
	assert.Equal(t, 3, strings.Count(g, "<path "))

	assert.Contains(t, GaugeChart(20, "weak", 0), ElementColor(models.Water))
	assert.Contains(t, GaugeChart(50, "balanced", 0), ElementColor(models.Earth))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "30.0s", FormatDuration(30*time.Second))
	assert.Equal(t, "1.5m", FormatDuration(90*time.Second))
	assert.Equal(t, "2.0h", FormatDuration(2*time.Hour))
}
