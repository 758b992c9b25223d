package almanac

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/seenimoa/sajuai/internal/calendar"
)

// fileDoc is the on-disk layout:
//
//	years:
//	  1995:
//	    입춘: "1995-02-04T09:14:00+09:00"
type fileDoc struct {
	Years map[int]map[string]string `yaml:"years"`
}

// Decode reads a terms document. Every instant must fall in the year it
// is filed under.
func Decode(r io.Reader) (Terms, error) {
	var doc fileDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, ErrNoTerms
		}
		return nil, fmt.Errorf("decode terms: %w", err)
	}
	if len(doc.Years) == 0 {
		return nil, ErrNoTerms
	}

	out := make(Terms, len(doc.Years))
	for year, terms := range doc.Years {
		if year < calendar.MinYear || year > calendar.MaxYear {
			return nil, fmt.Errorf("year %d outside %d-%d", year, calendar.MinYear, calendar.MaxYear)
		}
		m := make(map[calendar.SolarTerm]time.Time, len(terms))
		for name, stamp := range terms {
			term, err := calendar.ParseSolarTerm(name)
			if err != nil {
				return nil, fmt.Errorf("year %d: %w", year, err)
			}
			at, err := time.Parse(time.RFC3339, stamp)
			if err != nil {
				return nil, fmt.Errorf("year %d %s: %w", year, name, err)
			}
			if at.Year() != year {
				return nil, fmt.Errorf("year %d %s: instant %s filed under the wrong year", year, name, stamp)
			}
			m[term] = at
		}
		out[year] = m
	}
	return out, nil
}

// Encode writes terms as a YAML document with years ascending and terms in
// calendar order.
func Encode(w io.Writer, terms Terms) error {
	years := make([]int, 0, len(terms))
	for y := range terms {
		years = append(years, y)
	}
	sort.Ints(years)

	yearsNode := &yaml.Node{Kind: yaml.MappingNode}
	for _, y := range years {
		termNode := &yaml.Node{Kind: yaml.MappingNode}
		for t := calendar.Sohan; t < calendar.TermCount; t++ {
			at, ok := terms[y][t]
			if !ok {
				continue
			}
			termNode.Content = append(termNode.Content,
				scalar(t.String(), 0),
				scalar(at.Format(time.RFC3339), yaml.DoubleQuotedStyle),
			)
		}
		yearsNode.Content = append(yearsNode.Content, scalar(strconv.Itoa(y), 0), termNode)
	}
	root := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{scalar("years", 0), yearsNode}}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode terms: %w", err)
	}
	return enc.Close()
}

func scalar(v string, style yaml.Style) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v, Style: style}
}

// LoadFile reads a terms file.
func LoadFile(path string) (Terms, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open terms file: %w", err)
	}
	defer f.Close()

	terms, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return terms, nil
}

// WriteFile writes terms to path, creating parent directories.
func WriteFile(path string, terms Terms) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create terms dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create terms file: %w", err)
	}
	if err := Encode(f, terms); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Merge overlays src on dst term by term and returns dst.
func Merge(dst, src Terms) Terms {
	if dst == nil {
		dst = make(Terms, len(src))
	}
	for y, terms := range src {
		m, ok := dst[y]
		if !ok {
			m = make(map[calendar.SolarTerm]time.Time, len(terms))
			dst[y] = m
		}
		for t, at := range terms {
			m[t] = at
		}
	}
	return dst
}

// Tables builds calendar tables with the file at path overlaid on the
// built-in data. An empty path yields the built-in tables.
func Tables(path string, opts ...calendar.Option) (*calendar.Tables, error) {
	if path == "" {
		return calendar.New(opts...), nil
	}
	terms, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return calendar.New(append(opts, calendar.WithExactTerms(terms))...), nil
}
