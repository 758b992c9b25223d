package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenimoa/sajuai/internal/almanac"
	"github.com/seenimoa/sajuai/internal/calendar"
)

// run executes the CLI with an isolated config file and returns stdout.
func run(t *testing.T, configBody string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configBody), 0o644))

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return stdout.String(), err
}

const quietConfig = "logging:\n  level: error\n"

func TestVersion(t *testing.T) {
	out, err := run(t, quietConfig, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sajuai dev")
}

func TestChartText(t *testing.T) {
	out, err := run(t, quietConfig, "chart", "--date", "1995-08-26", "--time", "10:15", "--sex", "male")
	require.NoError(t, err)
	assert.Contains(t, out, "을해 갑신 기축 기사")
	assert.Contains(t, out, "■ 대운")
}

func TestChartJSONSections(t *testing.T) {
	out, err := run(t, quietConfig, "chart", "--date", "1995-08-26", "--time", "10:15", "--sex", "male", "--format", "json")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "great_fortune")
}

func TestChartConfigSections(t *testing.T) {
	out, err := run(t, quietConfig+"report:\n  sections: [fortune]\n",
		"chart", "--date", "1995-08-26", "--time", "10:15", "--sex", "male")
	require.NoError(t, err)
	assert.Contains(t, out, "■ 대운")
	assert.NotContains(t, out, "■ 십신")
}

func TestChartOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.html")
	_, err := run(t, quietConfig, "chart", "--date", "1995-08-26", "--time", "10:15", "--sex", "male", "--format", "html", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")
}

func TestChartErrors(t *testing.T) {
	_, err := run(t, quietConfig, "chart", "--date", "26/08/1995", "--sex", "male")
	assert.ErrorContains(t, err, "invalid --date")

	_, err = run(t, quietConfig, "chart", "--date", "1995-02-30", "--sex", "male")
	assert.Error(t, err)

	_, err = run(t, quietConfig, "chart", "--date", "1995-08-26", "--sex", "male", "--format", "pdf")
	assert.Error(t, err)

	_, err = run(t, quietConfig, "chart", "--date", "1995-08-26")
	assert.Error(t, err, "--sex is required")
}

func TestBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "births.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- {year: 1995, month: 8, day: 26, hour: 10, minute: 15, sex: male}
- {year: 1995, month: 13, day: 1, hour: 0, minute: 0, sex: male}
`), 0o644))

	out, err := run(t, quietConfig, "batch", path, "--sections", "chart")
	assert.ErrorContains(t, err, "1 of 2 items failed")
	assert.Contains(t, out, "[#1]")
	assert.Contains(t, out, "을해 갑신 기축 기사")
	assert.Contains(t, out, "[#2] error:")
}

func TestBatchJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "births.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- {year: 1995, month: 8, day: 26, hour: 10, minute: 15, sex: male}
- {year: 2024, month: 2, day: 4, hour: 18, minute: 0, sex: female, zone: Asia/Seoul}
`), 0o644))

	out, err := run(t, quietConfig, "batch", path, "--format", "json", "--concurrency", "2")
	require.NoError(t, err)

	var items []batchItem
	require.NoError(t, json.Unmarshal([]byte(out), &items))
	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].Index)
	assert.Empty(t, items[1].Error)
	assert.Equal(t, "Asia/Seoul", items[1].Input.Zone)
}

func TestBatchEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("[]\n"), 0o644))
	_, err := run(t, quietConfig, "batch", path)
	assert.Error(t, err)
}

func TestTerms(t *testing.T) {
	out, err := run(t, quietConfig, "terms", "2024")
	require.NoError(t, err)
	assert.Contains(t, out, "2024년 24절기")
	assert.Contains(t, out, "입춘")
	assert.Contains(t, out, "exact")

	out, err = run(t, quietConfig, "terms", "2030", "--sectional")
	require.NoError(t, err)
	assert.NotContains(t, out, "우수")
	assert.Contains(t, out, "approximate")

	_, err = run(t, quietConfig, "terms", "1800")
	assert.Error(t, err)
}

const importPage = `<table>
<tr><td>입춘</td><td>%d-02-04</td><td>10:08</td></tr>
<tr><td>경칩</td><td>03월 05일</td><td>04:03</td></tr>
</table>`

func TestImportTermsFromHTML(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "2030.html")
	require.NoError(t, os.WriteFile(page, []byte(fmt.Sprintf(importPage, 2030)), 0o644))
	outPath := filepath.Join(dir, "terms.yaml")

	out, err := run(t, quietConfig, "import-terms", "--html", page, "--year", "2030", "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 2 terms for 1 year(s)")

	terms, err := almanac.LoadFile(outPath)
	require.NoError(t, err)
	assert.Len(t, terms[2030], 2)

	// the imported file now drives the tables
	cfg := quietConfig + "almanac:\n  terms_file: " + outPath + "\n"
	out, err = run(t, cfg, "terms", "2030", "--sectional")
	require.NoError(t, err)
	assert.Contains(t, out, "2030-02-04 10:08")
}

func TestImportTermsFetchMerges(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var year int
		_, _ = fmt.Sscanf(r.URL.Path, "/%d", &year)
		fmt.Fprintf(w, importPage, year)
	}))
	defer srv.Close()

	outPath := filepath.Join(t.TempDir(), "terms.yaml")
	require.NoError(t, almanac.WriteFile(outPath, almanac.Terms{
		2029: {calendar.Ipchun: calendar.New().Term(2029, calendar.Ipchun).Time},
	}))

	cfg := quietConfig + "almanac:\n  source_url: " + srv.URL + "/{year}\n  requests_per_sec: -1\n"
	_, err := run(t, cfg, "import-terms", "--from", "2030", "--to", "2031", "--out", outPath)
	require.NoError(t, err)

	terms, err := almanac.LoadFile(outPath)
	require.NoError(t, err)
	assert.Len(t, terms, 3, "existing year kept")
	assert.Len(t, terms[2031], 2)
}

func TestImportTermsNeedsOutput(t *testing.T) {
	_, err := run(t, quietConfig, "import-terms", "--html", "x.html", "--year", "2030")
	assert.ErrorContains(t, err, "no output file")
}

func TestStatus(t *testing.T) {
	out, err := run(t, quietConfig+"engine:\n  zone: Asia/Seoul\n", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "1995: 22/24")
	assert.Contains(t, out, "2024: 24/24")
	assert.Contains(t, out, "Zone presets:  17")
	assert.Contains(t, out, "engine.zone")
	assert.Contains(t, out, "Asia/Seoul")
}
