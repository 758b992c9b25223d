package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/seenimoa/sajuai/internal/chart"
	"github.com/seenimoa/sajuai/internal/report"
	"github.com/seenimoa/sajuai/pkg/models"
)

// --- Chart Command ---

func newChartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Compute and report the chart of one birth",
		Example: `  sajuai chart --date 1995-08-26 --time 10:15 --sex male
  sajuai chart --date 1995-08-26 --time 10:15 --sex female --zone Asia/Seoul --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := birthInputFromFlags(cmd)
			if err != nil {
				return err
			}
			a.applyZone(&in)

			format, _ := cmd.Flags().GetString("format")
			sections, _ := cmd.Flags().GetStringSlice("sections")
			rc, err := a.reportConfig(format, sections)
			if err != nil {
				return err
			}

			eng, err := a.engine()
			if err != nil {
				return err
			}

			start := time.Now()
			autoLeap, _ := cmd.Flags().GetBool("auto-leap")
			var analysis *models.SajuAnalysis
			if autoLeap {
				analysis, err = eng.AnalyzeAuto(in)
			} else {
				analysis, err = eng.Analyze(in)
			}
			if err != nil {
				return err
			}
			a.log.Debug().Str("elapsed", report.FormatDuration(time.Since(start))).Msg("chart analyzed")

			out, err := report.Generate(analysis, rc)
			if err != nil {
				return err
			}
			output, _ := cmd.Flags().GetString("output")
			return writeOutput(cmd, output, out)
		},
	}

	f := cmd.Flags()
	f.String("date", "", "birth date, YYYY-MM-DD (required)")
	f.String("time", "12:00", "birth time, HH:MM")
	f.String("sex", "", "male or female (required)")
	f.Bool("leap", false, "birth recorded in an intercalary lunar month")
	f.Bool("auto-leap", false, "detect intercalary months from the registry")
	f.String("zone", "", "solar-time zone preset, e.g. Asia/Seoul")
	f.Float64("offset", 0, "explicit solar-time offset in minutes")
	f.String("format", "", "report format: text, json or html (default from config)")
	f.StringSlice("sections", nil, "report sections (default: all)")
	f.StringP("output", "o", "", "write the report to a file instead of stdout")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("sex")
	return cmd
}

// birthInputFromFlags assembles a BirthInput; range checks are left to the
// chart builder.
func birthInputFromFlags(cmd *cobra.Command) (chart.BirthInput, error) {
	f := cmd.Flags()
	dateStr, _ := f.GetString("date")
	timeStr, _ := f.GetString("time")
	sex, _ := f.GetString("sex")
	leap, _ := f.GetBool("leap")
	zone, _ := f.GetString("zone")
	offset, _ := f.GetFloat64("offset")

	var in chart.BirthInput
	if _, err := fmt.Sscanf(dateStr, "%d-%d-%d", &in.Year, &in.Month, &in.Day); err != nil {
		return in, fmt.Errorf("invalid --date %q (want YYYY-MM-DD)", dateStr)
	}
	if _, err := fmt.Sscanf(timeStr, "%d:%d", &in.Hour, &in.Minute); err != nil {
		return in, fmt.Errorf("invalid --time %q (want HH:MM)", timeStr)
	}
	in.Sex = models.Sex(strings.ToLower(sex))
	in.IsLeapMonth = leap
	in.Zone = zone
	in.SolarOffsetMinutes = offset
	return in, nil
}

// writeOutput prints s to stdout, or to path when non-empty.
func writeOutput(cmd *cobra.Command, path, s string) error {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	if path == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), s)
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "report written to %s\n", path)
	return nil
}
