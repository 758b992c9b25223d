package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/seenimoa/sajuai/internal/chart"
	"github.com/seenimoa/sajuai/internal/engine"
	"github.com/seenimoa/sajuai/internal/report"
	"github.com/seenimoa/sajuai/pkg/models"
)

// --- Batch Command ---

func newBatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [inputs.yaml]",
		Short: "Analyze a YAML list of births concurrently",
		Long: `Analyze every birth listed in a YAML file:

  - {year: 1995, month: 8, day: 26, hour: 10, minute: 15, sex: male}
  - {year: 2024, month: 2, day: 4, hour: 18, minute: 0, sex: female, zone: Asia/Seoul}

Failed items are reported individually; the command fails if any item did.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readBatchFile(args[0])
			if err != nil {
				return err
			}
			for i := range inputs {
				a.applyZone(&inputs[i])
			}

			format, _ := cmd.Flags().GetString("format")
			sections, _ := cmd.Flags().GetStringSlice("sections")
			rc, err := a.reportConfig(format, sections)
			if err != nil {
				return err
			}
			if c, _ := cmd.Flags().GetInt("concurrency"); c > 0 {
				a.cfg.Batch.Concurrency = c
			}

			eng, err := a.engine()
			if err != nil {
				return err
			}
			results, err := eng.AnalyzeBatch(cmd.Context(), inputs)
			if err != nil {
				return err
			}

			out, failed, err := renderBatch(results, rc)
			if err != nil {
				return err
			}
			output, _ := cmd.Flags().GetString("output")
			if err := writeOutput(cmd, output, out); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d items failed", failed, len(results))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.String("format", "", "report format: text, json or html (default from config)")
	f.StringSlice("sections", nil, "report sections (default: all)")
	f.Int("concurrency", 0, "parallel analyses (default from config)")
	f.StringP("output", "o", "", "write the reports to a file instead of stdout")
	return cmd
}

func readBatchFile(path string) ([]chart.BirthInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}
	var inputs []chart.BirthInput
	if err := yaml.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("parsing batch file %s: %w", path, err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("batch file %s lists no births", path)
	}
	return inputs, nil
}

// batchItem is the JSON shape of one batch result.
type batchItem struct {
	Index    int                  `json:"index"`
	Input    chart.BirthInput     `json:"input"`
	Analysis *models.SajuAnalysis `json:"analysis,omitempty"`
	Error    string               `json:"error,omitempty"`
}

// renderBatch renders results in input order and counts failures. JSON
// yields one array; other formats concatenate per-item reports.
func renderBatch(results []engine.BatchResult, rc report.ReportConfig) (string, int, error) {
	failed := 0
	if rc.Format == report.FormatJSON {
		items := make([]batchItem, len(results))
		for i, r := range results {
			items[i] = batchItem{Index: r.Index, Input: r.Input, Analysis: r.Analysis}
			if r.Err != nil {
				items[i].Error = r.Err.Error()
				failed++
			}
		}
		b, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return "", 0, fmt.Errorf("encoding batch: %w", err)
		}
		return string(b), failed, nil
	}

	var sb strings.Builder
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(&sb, "\n[#%d] error: %v\n", r.Index+1, r.Err)
			continue
		}
		out, err := report.Generate(r.Analysis, rc)
		if err != nil {
			return "", 0, err
		}
		fmt.Fprintf(&sb, "\n[#%d]", r.Index+1)
		sb.WriteString(out)
	}
	return sb.String(), failed, nil
}
