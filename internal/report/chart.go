// Package report renders a SajuAnalysis as a terminal text report, an HTML
// page with embedded SVG charts, or indented JSON.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/seenimoa/sajuai/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// SVG Chart Generator
// ════════════════════════════════════════════════════════════════════

// ChartConfig holds rendering parameters for SVG charts.
type ChartConfig struct {
	Width        int    // SVG width in pixels (default: 560)
	Height       int    // SVG height in pixels (default: 240)
	MarginTop    int    // top margin (default: 40)
	MarginRight  int    // right margin (default: 60)
	MarginBottom int    // bottom margin (default: 20)
	MarginLeft   int    // left margin (default: 60)
	BgColor      string // background color (default: "#ffffff")
	TextColor    string // label color (default: "#333333")
	FontSize     int    // label font size (default: 12)
	Title        string // chart title
}

// DefaultChartConfig returns sensible defaults for chart rendering.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:        560,
		Height:       240,
		MarginTop:    40,
		MarginRight:  60,
		MarginBottom: 20,
		MarginLeft:   60,
		BgColor:      "#ffffff",
		TextColor:    "#333333",
		FontSize:     12,
	}
}

// plotArea returns the usable drawing area dimensions.
func (c ChartConfig) plotArea() (x, y, w, h int) {
	return c.MarginLeft, c.MarginTop,
		c.Width - c.MarginLeft - c.MarginRight,
		c.Height - c.MarginTop - c.MarginBottom
}

var elementColors = [...]string{"#4caf50", "#ef5350", "#c8a046", "#9e9e9e", "#2196f3"}

// ElementColor returns the conventional display color of e.
func ElementColor(e models.Element) string {
	if !e.Valid() {
		return "#999999"
	}
	return elementColors[e]
}

// ════════════════════════════════════════════════════════════════════
// Horizontal Bar Chart (element scores)
// ════════════════════════════════════════════════════════════════════

// BarItem represents a single bar in a bar chart.
type BarItem struct {
	Label string
	Value float64
	Color string // optional
}

// ElementBars converts scores into one bar per element in generative order.
func ElementBars(s models.ElementScores) []BarItem {
	items := make([]BarItem, 0, 5)
	for _, e := range models.AllElements() {
		items = append(items, BarItem{Label: e.String(), Value: s.Get(e), Color: ElementColor(e)})
	}
	return items
}

// HorizontalBarChart generates an SVG horizontal bar chart. Values are
// expected to be non-negative.
func HorizontalBarChart(items []BarItem, cfg ChartConfig) string {
	if len(items) == 0 {
		return emptySVG(cfg, "데이터 없음")
	}
	if cfg.Width == 0 {
		title := cfg.Title
		cfg = DefaultChartConfig()
		cfg.Title = title
	}

	px, py, pw, ph := cfg.plotArea()

	maxVal := 0.0
	for _, item := range items {
		maxVal = math.Max(maxVal, item.Value)
	}
	if maxVal < 0.001 {
		maxVal = 1
	}

	barH := math.Min(float64(ph)/float64(len(items))*0.7, 30)
	gap := (float64(ph) - barH*float64(len(items))) / float64(len(items)+1)

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	sb.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`,
		cfg.Width, cfg.Height, cfg.BgColor))
	if cfg.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="20" font-size="14" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
			cfg.Width/2, cfg.TextColor, escapeXML(cfg.Title)))
	}

	for i, item := range items {
		by := float64(py) + gap + float64(i)*(barH+gap)
		bw := math.Max(item.Value, 0) / maxVal * float64(pw)
		color := item.Color
		if color == "" {
			color = "#2196f3"
		}
		sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%.1f" width="%.1f" height="%.1f" fill="%s" rx="2"/>`,
			px, by, bw, barH, color))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%.1f" font-size="%d" fill="%s" text-anchor="end">%s</text>`,
			px-8, by+barH/2+4, cfg.FontSize, cfg.TextColor, escapeXML(item.Label)))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%d" fill="%s">%.1f</text>`,
			float64(px)+bw+5, by+barH/2+4, cfg.FontSize, cfg.TextColor, item.Value))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// Gauge Chart (day-master strength)
// ════════════════════════════════════════════════════════════════════

// StrengthShare maps a strength analysis to 0-100: the supporting share of
// supporting plus draining power.
func StrengthShare(s models.StrengthAnalysis) float64 {
	total := s.Supporting + s.Draining
	if total <= 0 {
		return 50
	}
	return math.Max(0, math.Min(100, s.Supporting/total*100))
}

// Strength gauge zones as supporting shares: S > 1.2·D reads strong,
// S < 0.8·D reads weak.
var (
	weakShare   = 100 * 0.8 / 1.8
	strongShare = 100 * 1.2 / 2.2
)

// GaugeChart draws a half-dial over 0-100 with the weak, balanced and strong
// zones as colored arcs and a needle at value (clamped).
func GaugeChart(value float64, label string, width int) string {
	if width == 0 {
		width = 200
	}
	height := width/2 + 30
	value = math.Max(0, math.Min(100, value))

	cx := float64(width) / 2
	cy := float64(width)/2 - 10
	r := float64(width)/2 - 20

	// point on the dial for a share in 0-100, left to right
	at := func(v, radius float64) (float64, float64) {
		a := math.Pi * (1 - v/100)
		return cx + radius*math.Cos(a), cy - radius*math.Sin(a)
	}
	arc := func(sb *strings.Builder, from, to float64, color string) {
		x1, y1 := at(from, r)
		x2, y2 := at(to, r)
		fmt.Fprintf(sb, `<path d="M%.1f,%.1f A%.1f,%.1f 0 0,1 %.1f,%.1f" fill="none" stroke="%s" stroke-width="10"/>`,
			x1, y1, r, r, x2, y2, color)
	}

	color := ElementColor(models.Earth)
	switch {
	case value < weakShare:
		color = ElementColor(models.Water)
	case value > strongShare:
		color = ElementColor(models.Fire)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`,
		width, height, width, height)
	arc(&sb, 0, weakShare, "#bbdefb")
	arc(&sb, weakShare, strongShare, "#fff3c4")
	arc(&sb, strongShare, 100, "#ffcdd2")

	nx, ny := at(value, r*0.8)
	fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="3"/>`, cx, cy, nx, ny, color)
	fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>`, cx, cy, color)
	fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" font-size="20" font-weight="bold" fill="%s" text-anchor="middle">%.0f</text>`,
		cx, cy+24, color, value)
	fmt.Fprintf(&sb, `<text x="%.1f" y="%d" font-size="11" fill="#666" text-anchor="middle">%s</text>`,
		cx, height-4, escapeXML(label))
	sb.WriteString("</svg>")
	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// SVG Helpers
// ════════════════════════════════════════════════════════════════════

func svgHeader(cfg ChartConfig) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height)
}

func emptySVG(cfg ChartConfig, msg string) string {
	if cfg.Width == 0 {
		cfg.Width = 400
	}
	if cfg.Height == 0 {
		cfg.Height = 200
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"><rect width="%d" height="%d" fill="#f5f5f5"/><text x="%d" y="%d" text-anchor="middle" fill="#999" font-size="14">%s</text></svg>`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height, cfg.Width/2, cfg.Height/2, escapeXML(msg))
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
