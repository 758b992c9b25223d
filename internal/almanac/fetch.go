package almanac

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/seenimoa/sajuai/internal/calendar"
	"github.com/seenimoa/sajuai/internal/infra"
)

// YearPlaceholder is replaced by the requested year in a URL template.
const YearPlaceholder = "{year}"

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "sajuai-almanac/1.0"

// ErrNoSource is returned when no URL template is configured.
var ErrNoSource = fmt.Errorf("almanac source URL not configured")

// ErrHTTP wraps an HTTP error with status code.
type ErrHTTP struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// FetcherConfig configures a Fetcher.
type FetcherConfig struct {
	URLTemplate    string        // e.g. "https://example.org/terms?year={year}"
	CacheTTL       time.Duration // default: 24h
	RequestsPerSec float64       // default: 1; negative disables limiting
	Timeout        time.Duration // default: 30s
}

// DefaultFetcherConfig returns conservative defaults without a source URL.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		CacheTTL:       24 * time.Hour,
		RequestsPerSec: 1,
		Timeout:        30 * time.Second,
	}
}

// Fetcher downloads and parses almanac pages, one per year.
type Fetcher struct {
	cfg     FetcherConfig
	client  *http.Client
	cache   *infra.Cache[map[calendar.SolarTerm]time.Time]
	limiter *infra.RateLimiter
	log     zerolog.Logger
}

// NewFetcher creates a Fetcher. Zero fields of cfg take their defaults.
func NewFetcher(cfg FetcherConfig, log zerolog.Logger) *Fetcher {
	def := DefaultFetcherConfig()
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = def.CacheTTL
	}
	if cfg.RequestsPerSec == 0 {
		cfg.RequestsPerSec = def.RequestsPerSec
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &Fetcher{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		cache:   infra.NewCache[map[calendar.SolarTerm]time.Time](cfg.CacheTTL),
		limiter: infra.NewRateLimiter(cfg.RequestsPerSec, 1),
		log:     log.With().Str("component", "almanac").Logger(),
	}
}

// URL returns the page address for year.
func (f *Fetcher) URL(year int) string {
	return strings.ReplaceAll(f.cfg.URLTemplate, YearPlaceholder, strconv.Itoa(year))
}

// Fetch returns the solar terms of one year, from cache when possible.
func (f *Fetcher) Fetch(ctx context.Context, year int) (map[calendar.SolarTerm]time.Time, error) {
	if f.cfg.URLTemplate == "" {
		return nil, ErrNoSource
	}
	if year < calendar.MinYear || year > calendar.MaxYear {
		return nil, fmt.Errorf("year %d outside %d-%d", year, calendar.MinYear, calendar.MaxYear)
	}

	cacheKey := "terms:" + strconv.Itoa(year)
	if cached, ok := f.cache.Get(cacheKey); ok {
		return cached, nil
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := f.URL(year)
	body, err := f.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("almanac %d: %w", year, err)
	}
	defer body.Close()

	terms, err := ParseHTML(body, year)
	if err != nil {
		return nil, fmt.Errorf("almanac %d: %w", year, err)
	}
	f.log.Debug().Int("year", year).Int("terms", len(terms)).Str("url", url).Msg("fetched solar terms")

	f.cache.Set(cacheKey, terms)
	return terms, nil
}

// FetchRange fetches every year from..to inclusive, in order. It stops at
// the first failure. Expired pages are evicted from the cache first.
func (f *Fetcher) FetchRange(ctx context.Context, from, to int) (Terms, error) {
	if from > to {
		return nil, fmt.Errorf("invalid year range %d-%d", from, to)
	}
	if n := f.cache.Cleanup(); n > 0 {
		f.log.Debug().Int("evicted", n).Int("cached", f.cache.Len()).Msg("dropped expired almanac pages")
	}
	out := make(Terms, to-from+1)
	for y := from; y <= to; y++ {
		terms, err := f.Fetch(ctx, y)
		if err != nil {
			return nil, err
		}
		out[y] = terms
	}
	return out, nil
}

// get performs a GET request; the caller closes the returned body.
func (f *Fetcher) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "text/html")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET %s: %w", url, err)
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &ErrHTTP{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}
	return resp.Body, nil
}
