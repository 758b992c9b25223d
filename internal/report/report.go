package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/seenimoa/sajuai/internal/analysis/elements"
	"github.com/seenimoa/sajuai/pkg/models"
	"github.com/seenimoa/sajuai/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Report Generator
// ════════════════════════════════════════════════════════════════════

// ReportFormat specifies the output format.
type ReportFormat string

const (
	FormatText ReportFormat = "text"
	FormatJSON ReportFormat = "json"
	FormatHTML ReportFormat = "html"
)

// ParseFormat resolves a format name; the empty string means text.
func ParseFormat(s string) (ReportFormat, error) {
	switch f := ReportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text, json or html)", s)
	}
}

// ReportSection identifies a section to include/exclude.
type ReportSection string

const (
	SectionChart     ReportSection = "chart"
	SectionElements  ReportSection = "elements"
	SectionStrength  ReportSection = "strength"
	SectionTenGods   ReportSection = "tengods"
	SectionRelations ReportSection = "relations"
	SectionSpirits   ReportSection = "spirits"
	SectionStages    ReportSection = "stages"
	SectionFortune   ReportSection = "fortune"
	SectionReading   ReportSection = "reading"
	SectionVariants  ReportSection = "variants"
)

// AllSections returns all report sections in display order.
func AllSections() []ReportSection {
	return []ReportSection{
		SectionChart,
		SectionElements,
		SectionStrength,
		SectionTenGods,
		SectionRelations,
		SectionSpirits,
		SectionStages,
		SectionFortune,
		SectionReading,
		SectionVariants,
	}
}

// ParseSections resolves section names. An empty list selects every section.
func ParseSections(names []string) ([]ReportSection, error) {
	if len(names) == 0 {
		return AllSections(), nil
	}
	known := make(map[ReportSection]bool)
	for _, s := range AllSections() {
		known[s] = true
	}
	out := make([]ReportSection, 0, len(names))
	for _, n := range names {
		s := ReportSection(strings.ToLower(strings.TrimSpace(n)))
		if !known[s] {
			return nil, fmt.Errorf("unknown report section %q", n)
		}
		out = append(out, s)
	}
	return out, nil
}

// ReportConfig controls report generation behaviour.
type ReportConfig struct {
	Format   ReportFormat    // output format (default: text)
	Sections []ReportSection // sections to include (default: all)
	Title    string          // custom report title (optional)
	ChartCfg ChartConfig     // chart rendering config (html only)
}

// DefaultReportConfig returns sensible defaults.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Format:   FormatText,
		Sections: AllSections(),
		ChartCfg: DefaultChartConfig(),
	}
}

// hasSection returns true if the section is included in the config.
func (rc ReportConfig) hasSection(s ReportSection) bool {
	for _, sec := range rc.Sections {
		if sec == s {
			return true
		}
	}
	return false
}

// ════════════════════════════════════════════════════════════════════
// Report Data: flattened for rendering
// ════════════════════════════════════════════════════════════════════

// ReportData is the view model shared by the text and HTML renderers.
type ReportData struct {
	Title       string
	GeneratedAt string

	// Birth
	Summary   string // "을해 갑신 기축 기사"
	Birth     string
	Corrected string
	Offset    string
	Sex       string
	Precision string
	LeapMonth bool
	Pillars   []PillarRow

	Elements      []ElementRow
	ElementsChart template.HTML
	Strongest     string
	Weakest       string

	// Strength
	DayMaster     string
	StrengthLabel string
	Supporting    string
	Draining      string
	Ratio         string
	Share         string // supporting / (supporting + draining)
	Favorable     string
	Unfavorable   string
	Primary       string
	StrengthGauge template.HTML

	TenGodSummary []TenGodRow
	TenGodDetail  []DetailRow
	Relations     []DetailRow
	Spirits       []DetailRow
	Stages        []DetailRow

	// Great fortune
	Direction        string
	StartAge         string
	StartAgeMode     string
	FortunePrecision string
	Periods          []PeriodRow

	Reading  []DetailRow
	Variants []DetailRow

	// Section flags
	ShowChart     bool
	ShowElements  bool
	ShowStrength  bool
	ShowTenGods   bool
	ShowRelations bool
	ShowSpirits   bool
	ShowStages    bool
	ShowFortune   bool
	ShowReading   bool
	ShowVariants  bool
}

// PillarRow is one column of the chart table.
type PillarRow struct {
	Position string
	Stem     string
	Branch   string
	Elements string // "토/토"
}

// ElementRow is one element score with its reading.
type ElementRow struct {
	Element string
	Score   string
	Level   string
	Bar     string
	Color   string
}

// TenGodRow is one line of the ten-gods summary.
type TenGodRow struct {
	God   string
	Score string
	Stars string
	Level string
}

// DetailRow is a generic label/value line.
type DetailRow struct {
	Label string
	Value string
}

// PeriodRow is one great-fortune period.
type PeriodRow struct {
	Index  int
	Age    string
	Pillar string
	Years  string
}

// ════════════════════════════════════════════════════════════════════
// Generate Report
// ════════════════════════════════════════════════════════════════════

// Generate renders the analysis in cfg.Format.
func Generate(analysis *models.SajuAnalysis, cfg ReportConfig) (string, error) {
	switch cfg.Format {
	case FormatJSON:
		return GenerateJSON(analysis)
	case FormatHTML:
		return GenerateHTML(analysis, cfg)
	case FormatText, "":
		return GenerateText(analysis, cfg)
	default:
		return "", fmt.Errorf("unknown report format %q", cfg.Format)
	}
}

// GenerateText generates a plain-text report (terminal / CLI friendly).
func GenerateText(analysis *models.SajuAnalysis, cfg ReportConfig) (string, error) {
	if analysis == nil || analysis.Chart == nil {
		return "", fmt.Errorf("analysis is nil")
	}
	return renderTextReport(buildReportData(analysis, cfg)), nil
}

// GenerateHTML generates a standalone HTML report with embedded SVG charts.
func GenerateHTML(analysis *models.SajuAnalysis, cfg ReportConfig) (string, error) {
	if analysis == nil || analysis.Chart == nil {
		return "", fmt.Errorf("analysis is nil")
	}

	data := buildReportData(analysis, cfg)

	tmpl, err := template.New("report").Parse(ReportTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// GenerateJSON renders the whole aggregate as indented JSON. Section
// selection does not apply.
func GenerateJSON(analysis *models.SajuAnalysis) (string, error) {
	if analysis == nil || analysis.Chart == nil {
		return "", fmt.Errorf("analysis is nil")
	}
	b, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding analysis: %w", err)
	}
	return string(b), nil
}

// ════════════════════════════════════════════════════════════════════
// Internal: build report data
// ════════════════════════════════════════════════════════════════════

func buildReportData(a *models.SajuAnalysis, cfg ReportConfig) ReportData {
	c := a.Chart
	b := c.Birth

	title := cfg.Title
	if title == "" {
		title = "사주 분석 리포트"
	}
	generated := ReportTimestamp()
	if !a.GeneratedAt.IsZero() {
		generated = utils.FormatDateTimeKST(a.GeneratedAt)
	}
	if cfg.ChartCfg.Width == 0 {
		cfg.ChartCfg = DefaultChartConfig()
	}

	d := ReportData{
		Title:       title,
		GeneratedAt: generated,
		Summary:     c.String(),
		Birth:       fmt.Sprintf("%04d-%02d-%02d %02d:%02d", b.Year, b.Month, b.Day, b.Hour, b.Minute),
		Corrected:   utils.FormatDateTimeKST(b.CorrectedTime),
		Offset:      utils.FormatOffset(-b.SolarOffsetMinutes),
		Sex:         b.Sex.Label(),
		Precision:   precisionLabel(b.Precision),
		LeapMonth:   b.IsLeapMonth,

		ShowChart:     cfg.hasSection(SectionChart),
		ShowElements:  cfg.hasSection(SectionElements),
		ShowStrength:  cfg.hasSection(SectionStrength),
		ShowTenGods:   cfg.hasSection(SectionTenGods),
		ShowRelations: cfg.hasSection(SectionRelations),
		ShowSpirits:   cfg.hasSection(SectionSpirits),
		ShowStages:    cfg.hasSection(SectionStages),
		ShowFortune:   cfg.hasSection(SectionFortune),
		ShowReading:   cfg.hasSection(SectionReading),
		ShowVariants:  cfg.hasSection(SectionVariants),
	}

	for _, pos := range models.Positions() {
		p := c.Pillar(pos)
		d.Pillars = append(d.Pillars, PillarRow{
			Position: pos.Label(),
			Stem:     p.Stem.String(),
			Branch:   p.Branch.String(),
			Elements: p.Stem.Element().String() + "/" + p.Branch.Element().String(),
		})
		d.Stages = append(d.Stages, DetailRow{Label: pos.Label(), Value: stageOf(a.Stages, pos)})
		d.TenGodDetail = append(d.TenGodDetail, DetailRow{Label: pos.Label(), Value: joinEntries(a.TenGods[pos])})
	}

	// Elements (season-weighted)
	maxScore := 0.0
	for _, e := range models.AllElements() {
		maxScore = max(maxScore, a.SeasonScores.Get(e))
	}
	for _, e := range models.AllElements() {
		level, ok := a.ElementReading[e]
		if !ok {
			level = models.LevelBalanced
		}
		d.Elements = append(d.Elements, ElementRow{
			Element: e.String(),
			Score:   utils.FormatScore(a.SeasonScores.Get(e)),
			Level:   level.Label(),
			Bar:     scoreBar(a.SeasonScores.Get(e), maxScore, 20),
			Color:   ElementColor(e),
		})
	}
	chartCfg := cfg.ChartCfg
	chartCfg.Title = "오행 점수 (계절 가중)"
	d.ElementsChart = template.HTML(HorizontalBarChart(ElementBars(a.SeasonScores), chartCfg))
	d.Strongest = elements.Strongest(a.SeasonScores).String()
	d.Weakest = elements.Weakest(a.SeasonScores).String()

	// Strength
	s := a.Strength
	d.DayMaster = fmt.Sprintf("%s(%s)", s.DayMaster, s.Element)
	d.StrengthLabel = s.Label.Label()
	d.Supporting = utils.FormatScore(s.Supporting)
	d.Draining = utils.FormatScore(s.Draining)
	d.Ratio = formatRatio(s.Ratio)
	d.Share = utils.FormatPct(StrengthShare(s) / 100)
	d.Favorable = joinElements(s.Favorable)
	d.Unfavorable = joinElements(s.Unfavorable)
	if s.PrimaryFavorable != nil {
		d.Primary = s.PrimaryFavorable.String()
	}
	d.StrengthGauge = template.HTML(GaugeChart(StrengthShare(s), "일간 세력 "+s.Label.Label(), 200))

	for _, it := range a.TenGodSummary {
		d.TenGodSummary = append(d.TenGodSummary, TenGodRow{
			God:   it.God.String(),
			Score: utils.FormatScore(it.Score),
			Stars: it.Stars,
			Level: it.Level,
		})
	}

	for _, r := range a.Relations.All() {
		d.Relations = append(d.Relations, DetailRow{Label: r.Kind.Label(), Value: r.String()})
	}

	for _, sp := range models.Spirits() {
		v := "없음"
		if bs := a.Spirits[sp]; len(bs) > 0 {
			v = joinBranches(bs)
		}
		d.Spirits = append(d.Spirits, DetailRow{Label: sp.Label(), Value: v})
	}

	// Great fortune
	gf := a.Fortune
	d.Direction = gf.Direction.Label()
	d.StartAge = utils.FormatScore(gf.StartAge)
	d.StartAgeMode = string(gf.Mode)
	d.FortunePrecision = precisionLabel(gf.Precision)
	for _, p := range gf.Periods {
		d.Periods = append(d.Periods, PeriodRow{
			Index:  p.Index,
			Age:    utils.FormatScore(p.StartAge),
			Pillar: p.Pillar.String(),
			Years:  fmt.Sprintf("%d-%d", p.StartYear, p.EndYear),
		})
	}

	r := a.Reading
	d.Reading = []DetailRow{
		{Label: "성격", Value: r.Personality},
		{Label: "재물", Value: r.Wealth},
		{Label: "직업", Value: r.Career},
		{Label: "건강", Value: r.Health},
		{Label: "인간관계", Value: r.Relationships},
	}

	d.Variants = []DetailRow{
		{Label: string(models.ModeRaw), Value: formatScores(a.RawScores)},
		{Label: string(models.ModeSeasonWeighted), Value: formatScores(a.SeasonScores)},
		{Label: string(models.ModeSimplified), Value: formatScores(a.SimpleScores)},
	}
	return d
}

func precisionLabel(p models.Precision) string {
	if p == models.PrecisionApproximate {
		return "근사 (천문 계산)"
	}
	return "정밀 (절기 표)"
}

func stageOf(stages models.TwelveStages, pos models.PillarPosition) string {
	st, ok := stages[pos]
	if !ok {
		return "-"
	}
	return st.String()
}

func joinEntries(entries []models.TenGodEntry) string {
	if len(entries) == 0 {
		return "-"
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func joinElements(es []models.Element) string {
	if len(es) == 0 {
		return "-"
	}
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func joinBranches(bs []models.Branch) string {
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = b.String()
	}
	return strings.Join(parts, ", ")
}

func formatScores(s models.ElementScores) string {
	parts := make([]string, 0, 5)
	for _, e := range models.AllElements() {
		parts = append(parts, e.String()+" "+utils.FormatScore(s.Get(e)))
	}
	return strings.Join(parts, " · ")
}

func formatRatio(r float64) string {
	if r >= 999 {
		return "∞"
	}
	return fmt.Sprintf("%.2f", r)
}

// scoreBar draws a block bar of at most width cells proportional to v/maxV.
func scoreBar(v, maxV float64, width int) string {
	if maxV <= 0 || v <= 0 {
		return ""
	}
	n := int(utils.Round(v/maxV*float64(width), 0))
	return strings.Repeat("█", min(max(n, 1), width))
}

// ════════════════════════════════════════════════════════════════════
// Plain-text renderer
// ════════════════════════════════════════════════════════════════════

func renderTextReport(d ReportData) string {
	var sb strings.Builder
	line := strings.Repeat("═", 60)
	thinLine := strings.Repeat("─", 60)

	sb.WriteString("\n" + line + "\n")
	sb.WriteString(fmt.Sprintf("  %s\n", d.Title))
	sb.WriteString(fmt.Sprintf("  Generated: %s\n", d.GeneratedAt))
	sb.WriteString(line + "\n\n")

	sb.WriteString(fmt.Sprintf("  사주: %s\n", d.Summary))
	sb.WriteString(thinLine + "\n")

	if d.ShowChart {
		sb.WriteString("\n  ■ 사주 원국\n")
		leap := ""
		if d.LeapMonth {
			leap = " (윤달)"
		}
		sb.WriteString(fmt.Sprintf("  출생: %s%s · %s\n", d.Birth, leap, d.Sex))
		sb.WriteString(fmt.Sprintf("  보정 시각: %s (%s)\n", d.Corrected, d.Offset))
		sb.WriteString(fmt.Sprintf("  절기 정밀도: %s\n\n", d.Precision))
		row := func(label string, cell func(PillarRow) string) {
			sb.WriteString(fmt.Sprintf("    %-6s", label))
			for _, p := range d.Pillars {
				sb.WriteString(fmt.Sprintf("  %-6s", cell(p)))
			}
			sb.WriteString("\n")
		}
		row("", func(p PillarRow) string { return p.Position })
		row("천간", func(p PillarRow) string { return p.Stem })
		row("지지", func(p PillarRow) string { return p.Branch })
		row("오행", func(p PillarRow) string { return p.Elements })
		sb.WriteString(thinLine + "\n")
	}

	if d.ShowElements {
		sb.WriteString("\n  ■ 오행 분석 (계절 가중)\n")
		for _, e := range d.Elements {
			sb.WriteString(fmt.Sprintf("    %s %5s  %-20s  %s\n", e.Element, e.Score, e.Bar, e.Level))
		}
		sb.WriteString(fmt.Sprintf("  가장 강한 오행: %s · 가장 약한 오행: %s\n", d.Strongest, d.Weakest))
		sb.WriteString(thinLine + "\n")
	}

	if d.ShowStrength {
		sb.WriteString("\n  ■ 일간 강약\n")
		sb.WriteString(fmt.Sprintf("  일간: %s · 판정: %s\n", d.DayMaster, d.StrengthLabel))
		sb.WriteString(fmt.Sprintf("  돕는 힘: %s · 빼는 힘: %s · 비율: %s · 세력 비중: %s\n", d.Supporting, d.Draining, d.Ratio, d.Share))
		sb.WriteString(fmt.Sprintf("  용신 후보: %s · 기신: %s\n", d.Favorable, d.Unfavorable))
		if d.Primary != "" {
			sb.WriteString(fmt.Sprintf("  주 용신: %s\n", d.Primary))
		}
		sb.WriteString(thinLine + "\n")
	}

	if d.ShowTenGods {
		sb.WriteString("\n  ■ 십신\n")
		for _, g := range d.TenGodSummary {
			sb.WriteString(fmt.Sprintf("    %s %5s  %s %s\n", g.God, g.Score, g.Stars, g.Level))
		}
		sb.WriteString("\n")
		for _, r := range d.TenGodDetail {
			sb.WriteString(fmt.Sprintf("    %s: %s\n", r.Label, r.Value))
		}
		sb.WriteString(thinLine + "\n")
	}

	if d.ShowRelations {
		sb.WriteString("\n  ■ 지지 관계\n")
		if len(d.Relations) == 0 {
			sb.WriteString("    특별한 합충형해 없음\n")
		}
		for _, r := range d.Relations {
			sb.WriteString(fmt.Sprintf("    [%s] %s\n", r.Label, r.Value))
		}
		sb.WriteString(thinLine + "\n")
	}

	writeRows := func(title string, show bool, rows []DetailRow) {
		if !show {
			return
		}
		sb.WriteString(fmt.Sprintf("\n  ■ %s\n", title))
		for _, r := range rows {
			sb.WriteString(fmt.Sprintf("    %s: %s\n", r.Label, r.Value))
		}
		sb.WriteString(thinLine + "\n")
	}

	writeRows("신살", d.ShowSpirits, d.Spirits)
	writeRows("12운성", d.ShowStages, d.Stages)

	if d.ShowFortune {
		sb.WriteString("\n  ■ 대운\n")
		sb.WriteString(fmt.Sprintf("  %s · 대운수 %s (%s, %s)\n", d.Direction, d.StartAge, d.StartAgeMode, d.FortunePrecision))
		for _, p := range d.Periods {
			sb.WriteString(fmt.Sprintf("    %d. %5s세  %s  %s\n", p.Index, p.Age, p.Pillar, p.Years))
		}
		sb.WriteString(thinLine + "\n")
	}

	writeRows("종합 해석", d.ShowReading, d.Reading)
	writeRows("참고: 오행 점수 변형", d.ShowVariants, d.Variants)

	sb.WriteString("\n" + line + "\n")
	sb.WriteString("  참고용 전통 역법 계산 결과입니다.\n")
	sb.WriteString(line + "\n")

	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// Utility: Timestamp
// ════════════════════════════════════════════════════════════════════

// ReportTimestamp returns current KST time formatted for report headers.
func ReportTimestamp() string {
	return utils.FormatDateTimeKST(utils.NowKST())
}

// FormatDuration formats a duration for display.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
	return fmt.Sprintf("%.1fh", d.Hours())
}
