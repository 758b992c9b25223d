package report

// ReportTemplate is the HTML template for the chart report. It is embedded
// as a constant so rendering needs no external files.
const ReportTemplate = `<!DOCTYPE html>
<html lang="ko">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
  :root {
    --bg: #ffffff;
    --text: #1a1a2e;
    --muted: #6b7280;
    --border: #e5e7eb;
    --accent: #8b5a2b;
    --section-bg: #faf7f2;
  }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: 'Noto Sans KR', -apple-system, 'Segoe UI', sans-serif;
    color: var(--text);
    background: var(--bg);
    line-height: 1.6;
    max-width: 900px;
    margin: 0 auto;
    padding: 20px;
  }
  h1 { font-size: 1.5rem; color: var(--accent); }
  h2 { font-size: 1.2rem; margin: 24px 0 12px; padding-bottom: 6px; border-bottom: 2px solid var(--accent); }
  .muted { color: var(--muted); font-size: 0.85rem; }
  .header { border-bottom: 3px solid var(--accent); padding-bottom: 12px; margin-bottom: 16px; }
  .summary { font-size: 1.4rem; font-weight: 700; letter-spacing: 0.2em; }
  table { width: 100%; border-collapse: collapse; margin: 8px 0; font-size: 0.9rem; }
  th, td { padding: 6px 8px; border-bottom: 1px solid var(--border); text-align: left; }
  th { background: var(--section-bg); font-weight: 600; }
  .pillars td, .pillars th { text-align: center; }
  .pillars .glyph { font-size: 1.6rem; font-weight: 700; }
  .section { margin-bottom: 20px; }
  .swatch { display: inline-block; width: 10px; height: 10px; border-radius: 2px; margin-right: 6px; }
  .chart-container { text-align: center; margin: 12px 0; }
  .footer { margin-top: 32px; padding-top: 12px; border-top: 1px solid var(--border); font-size: 0.75rem; color: var(--muted); }
  @media print {
    body { max-width: 100%; padding: 10px; }
    .section { page-break-inside: avoid; }
  }
</style>
</head>
<body>

<!-- ═══════ HEADER ═══════ -->
<div class="header">
  <h1>{{.Title}}</h1>
  <p class="summary">{{.Summary}}</p>
  <p class="muted">{{.GeneratedAt}}</p>
</div>

<!-- ═══════ CHART ═══════ -->
{{if .ShowChart}}
<div class="section">
  <h2>사주 원국</h2>
  <p>출생 {{.Birth}}{{if .LeapMonth}} (윤달){{end}} · {{.Sex}}</p>
  <p class="muted">보정 시각 {{.Corrected}} ({{.Offset}}) · {{.Precision}}</p>
  <table class="pillars">
    <thead><tr><th></th>{{range .Pillars}}<th>{{.Position}}</th>{{end}}</tr></thead>
    <tbody>
    <tr><th>천간</th>{{range .Pillars}}<td class="glyph">{{.Stem}}</td>{{end}}</tr>
    <tr><th>지지</th>{{range .Pillars}}<td class="glyph">{{.Branch}}</td>{{end}}</tr>
    <tr><th>오행</th>{{range .Pillars}}<td>{{.Elements}}</td>{{end}}</tr>
    </tbody>
  </table>
</div>
{{end}}

<!-- ═══════ ELEMENTS ═══════ -->
{{if .ShowElements}}
<div class="section">
  <h2>오행 분석</h2>
  <div class="chart-container">{{.ElementsChart}}</div>
  <table>
    <thead><tr><th>오행</th><th>점수</th><th>판정</th></tr></thead>
    <tbody>
    {{range .Elements}}
    <tr><td><span class="swatch" style="background: {{.Color}}"></span>{{.Element}}</td><td>{{.Score}}</td><td>{{.Level}}</td></tr>
    {{end}}
    </tbody>
  </table>
  <p>가장 강한 오행 {{.Strongest}} · 가장 약한 오행 {{.Weakest}}</p>
</div>
{{end}}

<!-- ═══════ STRENGTH ═══════ -->
{{if .ShowStrength}}
<div class="section">
  <h2>일간 강약</h2>
  <div class="chart-container">{{.StrengthGauge}}</div>
  <table>
    <tbody>
    <tr><th>일간</th><td>{{.DayMaster}}</td></tr>
    <tr><th>판정</th><td>{{.StrengthLabel}}</td></tr>
    <tr><th>돕는 힘 / 빼는 힘</th><td>{{.Supporting}} / {{.Draining}} (비율 {{.Ratio}}, 세력 비중 {{.Share}})</td></tr>
    <tr><th>용신 후보</th><td>{{.Favorable}}{{if .Primary}} (주 용신 {{.Primary}}){{end}}</td></tr>
    <tr><th>기신</th><td>{{.Unfavorable}}</td></tr>
    </tbody>
  </table>
</div>
{{end}}

<!-- ═══════ TEN GODS ═══════ -->
{{if .ShowTenGods}}
<div class="section">
  <h2>십신</h2>
  <table>
    <thead><tr><th>십신</th><th>점수</th><th>강도</th><th>판정</th></tr></thead>
    <tbody>
    {{range .TenGodSummary}}
    <tr><td>{{.God}}</td><td>{{.Score}}</td><td>{{.Stars}}</td><td>{{.Level}}</td></tr>
    {{end}}
    </tbody>
  </table>
  <table>
    <tbody>
    {{range .TenGodDetail}}<tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>{{end}}
    </tbody>
  </table>
</div>
{{end}}

<!-- ═══════ RELATIONS ═══════ -->
{{if .ShowRelations}}
<div class="section">
  <h2>지지 관계</h2>
  {{if .Relations}}
  <table>
    <tbody>
    {{range .Relations}}<tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>{{end}}
    </tbody>
  </table>
  {{else}}
  <p class="muted">특별한 합충형해 없음</p>
  {{end}}
</div>
{{end}}

<!-- ═══════ SPIRITS ═══════ -->
{{if .ShowSpirits}}
<div class="section">
  <h2>신살</h2>
  <table>
    <tbody>
    {{range .Spirits}}<tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>{{end}}
    </tbody>
  </table>
</div>
{{end}}

<!-- ═══════ STAGES ═══════ -->
{{if .ShowStages}}
<div class="section">
  <h2>12운성</h2>
  <table>
    <tbody>
    {{range .Stages}}<tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>{{end}}
    </tbody>
  </table>
</div>
{{end}}

<!-- ═══════ GREAT FORTUNE ═══════ -->
{{if .ShowFortune}}
<div class="section">
  <h2>대운</h2>
  <p>{{.Direction}} · 대운수 {{.StartAge}} <span class="muted">({{.StartAgeMode}}, {{.FortunePrecision}})</span></p>
  <table>
    <thead><tr><th>#</th><th>나이</th><th>간지</th><th>기간</th></tr></thead>
    <tbody>
    {{range .Periods}}
    <tr><td>{{.Index}}</td><td>{{.Age}}</td><td>{{.Pillar}}</td><td>{{.Years}}</td></tr>
    {{end}}
    </tbody>
  </table>
</div>
{{end}}

<!-- ═══════ READING ═══════ -->
{{if .ShowReading}}
<div class="section">
  <h2>종합 해석</h2>
  <table>
    <tbody>
    {{range .Reading}}<tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>{{end}}
    </tbody>
  </table>
</div>
{{end}}

<!-- ═══════ VARIANTS ═══════ -->
{{if .ShowVariants}}
<div class="section">
  <h2>참고: 오행 점수 변형</h2>
  <table>
    <tbody>
    {{range .Variants}}<tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>{{end}}
    </tbody>
  </table>
</div>
{{end}}

<!-- ═══════ FOOTER ═══════ -->
<div class="footer">
  <p>참고용 전통 역법 계산 결과입니다. Generated on {{.GeneratedAt}}</p>
</div>

</body>
</html>`
