package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/seenimoa/sajuai/internal/almanac"
	"github.com/seenimoa/sajuai/internal/calendar"
	"github.com/seenimoa/sajuai/pkg/utils"
)

// --- Terms Command ---

func newTermsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "terms [year]",
		Short: "List the 24 solar terms of a year with their precision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil || year < calendar.MinYear || year > calendar.MaxYear {
				return fmt.Errorf("year must be %d-%d, got %q", calendar.MinYear, calendar.MaxYear, args[0])
			}
			t, err := a.tables()
			if err != nil {
				return err
			}
			sectional, _ := cmd.Flags().GetBool("sectional")
			writeTerms(cmd.OutOrStdout(), t, year, sectional)
			return nil
		},
	}
	cmd.Flags().Bool("sectional", false, "only the twelve month-opening terms")
	return cmd
}

func writeTerms(w io.Writer, t *calendar.Tables, year int, sectionalOnly bool) {
	fmt.Fprintf(w, "%d년 24절기 (%s)\n", year, t.Location())
	for _, ti := range t.YearTerms(year) {
		if sectionalOnly && !ti.Term.IsSectional() {
			continue
		}
		month := ""
		if ti.Term.IsSectional() {
			month = ti.Term.MonthBranch().String() + "월"
		}
		fmt.Fprintf(w, "  %s  %s  %-4s %s\n", ti.Term, ti.Time.In(t.Location()).Format("2006-01-02 15:04"), month, ti.Precision)
	}
}

// --- Import Terms Command ---

func newImportTermsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-terms",
		Short: "Import tabulated solar terms into the YAML data file",
		Long: `Import solar-term instants from almanac pages, either fetched from the
configured source URL (almanac.source_url, containing {year}) or parsed from
a saved HTML file, and merge them into the terms data file.`,
		Example: `  sajuai import-terms --from 2025 --to 2030 --out terms.yaml
  sajuai import-terms --html 2025.html --year 2025`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = a.cfg.Almanac.TermsFile
			}
			if out == "" {
				return fmt.Errorf("no output file: pass --out or set almanac.terms_file")
			}

			imported, err := a.importTerms(cmd)
			if err != nil {
				return err
			}

			existing, err := almanac.LoadFile(out)
			switch {
			case err == nil:
			case errors.Is(err, os.ErrNotExist):
				existing = nil
			default:
				return err
			}
			merged := almanac.Merge(existing, imported)
			if err := almanac.WriteFile(out, merged); err != nil {
				return err
			}

			n := 0
			for _, terms := range imported {
				n += len(terms)
			}
			a.log.Info().Int("years", len(imported)).Int("terms", n).Str("file", out).Msg("solar terms imported")
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d terms for %d year(s) into %s\n", n, len(imported), out)
			return nil
		},
	}

	f := cmd.Flags()
	f.Int("from", 0, "first year to fetch")
	f.Int("to", 0, "last year to fetch (default: --from)")
	f.String("url", "", "source URL template override, containing {year}")
	f.String("html", "", "parse a saved almanac page instead of fetching")
	f.Int("year", 0, "year of the page given with --html")
	f.String("out", "", "terms data file (default: almanac.terms_file)")
	return cmd
}

func (a *app) importTerms(cmd *cobra.Command) (almanac.Terms, error) {
	f := cmd.Flags()
	if page, _ := f.GetString("html"); page != "" {
		year, _ := f.GetInt("year")
		if year == 0 {
			return nil, fmt.Errorf("--html needs --year")
		}
		file, err := os.Open(page)
		if err != nil {
			return nil, fmt.Errorf("opening page: %w", err)
		}
		defer file.Close()
		terms, err := almanac.ParseHTML(file, year)
		if err != nil {
			return nil, err
		}
		return almanac.Terms{year: terms}, nil
	}

	from, _ := f.GetInt("from")
	to, _ := f.GetInt("to")
	if from == 0 {
		from = utils.NowKST().Year()
	}
	if to == 0 {
		to = from
	}
	url, _ := f.GetString("url")
	if url == "" {
		url = a.cfg.Almanac.SourceURL
	}

	fetcher := almanac.NewFetcher(almanac.FetcherConfig{
		URLTemplate:    url,
		CacheTTL:       a.cfg.Almanac.CacheDuration(),
		RequestsPerSec: a.cfg.Almanac.RequestsPerSec,
	}, a.log)
	return fetcher.FetchRange(cmd.Context(), from, to)
}
