// sajuai computes four-pillar (사주) charts and their analyses.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/seenimoa/sajuai/internal/almanac"
	"github.com/seenimoa/sajuai/internal/analysis/fortune"
	"github.com/seenimoa/sajuai/internal/calendar"
	"github.com/seenimoa/sajuai/internal/chart"
	"github.com/seenimoa/sajuai/internal/config"
	"github.com/seenimoa/sajuai/internal/engine"
	"github.com/seenimoa/sajuai/internal/logging"
	"github.com/seenimoa/sajuai/internal/report"
	"github.com/seenimoa/sajuai/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries the state resolved once by the root command.
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "sajuai",
		Short: "sajuai: four-pillars chart calculation engine",
		Long: `sajuai computes the four pillars (사주팔자) of a birth moment and
analyzes them: five-element balance, ten gods, day-master strength, branch
relationships, spirits, twelve stages and the great-fortune timeline.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			configFile, _ := cmd.Flags().GetString("config")
			if configFile != "" {
				a.cfg, err = config.LoadFromFile(configFile)
			} else {
				a.cfg, err = config.Load()
			}
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
				a.cfg.Logging.Level = lvl
			}
			a.log = logging.New(logging.Config{
				Level:  a.cfg.Logging.Level,
				Format: a.cfg.Logging.Format,
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	root.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newVersionCmd(),
		newChartCmd(a),
		newBatchCmd(a),
		newTermsCmd(a),
		newImportTermsCmd(a),
		newStatusCmd(a),
	)
	return root
}

// tables builds the solar-term tables, overlaying the configured data file.
func (a *app) tables() (*calendar.Tables, error) {
	t, err := almanac.Tables(a.cfg.Almanac.TermsFile)
	if err != nil {
		return nil, fmt.Errorf("loading solar terms: %w", err)
	}
	return t, nil
}

// engine wires an analysis engine from the configuration.
func (a *app) engine() (*engine.Engine, error) {
	t, err := a.tables()
	if err != nil {
		return nil, err
	}
	ec := a.cfg.Engine
	return engine.New(t, engine.Config{
		YearBoundary: chart.YearBoundary(ec.YearBoundary),
		Precision:    chart.PrecisionPolicy(ec.Precision),
		StartAgeMode: models.StartAgeMode(ec.StartAgeMode),
		Periods:      ec.Periods,
		Concurrency:  a.cfg.Batch.Concurrency,
	}, a.log), nil
}

// reportConfig resolves format and sections, letting non-empty flag values
// override the configuration.
func (a *app) reportConfig(format string, sections []string) (report.ReportConfig, error) {
	if format == "" {
		format = a.cfg.Report.Format
	}
	if len(sections) == 0 {
		sections = a.cfg.Report.Sections
	}
	f, err := report.ParseFormat(format)
	if err != nil {
		return report.ReportConfig{}, err
	}
	secs, err := report.ParseSections(sections)
	if err != nil {
		return report.ReportConfig{}, err
	}
	rc := report.DefaultReportConfig()
	rc.Format = f
	rc.Sections = secs
	return rc, nil
}

// applyZone fills in the configured default zone for inputs without one.
func (a *app) applyZone(in *chart.BirthInput) {
	if in.Zone == "" && in.SolarOffsetMinutes == 0 {
		in.Zone = a.cfg.Engine.Zone
	}
}

// --- Version Command ---

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "sajuai %s\n", version)
			fmt.Fprintf(w, "  commit:  %s\n", commit)
			fmt.Fprintf(w, "  built:   %s\n", date)
		},
	}
}

// --- Status Command ---

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show data coverage and effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.tables()
			if err != nil {
				return err
			}
			writeStatus(cmd.OutOrStdout(), a.cfg, t)
			return nil
		},
	}
}

func writeStatus(w io.Writer, cfg *config.Config, t *calendar.Tables) {
	line := "═══════════════════════════════════════"
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "  sajuai: System Status")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "  Version:       %s (%s)\n", version, commit)
	fmt.Fprintf(w, "  Time (KST):    %s\n", report.ReportTimestamp())
	fmt.Fprintf(w, "  Year range:    %d-%d\n", calendar.MinYear, calendar.MaxYear)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  Solar terms (tabulated):")
	for _, y := range t.ExactYears() {
		fmt.Fprintf(w, "    %d: %d/%d\n", y, t.ExactCount(y), calendar.TermCount)
	}
	fmt.Fprintf(w, "  Leap months:   %d registered\n", len(t.LeapMonths()))
	fmt.Fprintf(w, "  Zone presets:  %d\n", len(calendar.Zones()))
	fmt.Fprintf(w, "  Periods:       %d (default %d)\n", cfg.Engine.Periods, fortune.DefaultPeriods)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  Configuration:")
	for _, s := range config.CheckSettings(cfg) {
		val := s.Value
		if val == "" {
			val = "-"
		}
		fmt.Fprintf(w, "    %-26s %-20s (%s)\n", s.Key, val, s.Source)
	}
	fmt.Fprintln(w, line)
}
