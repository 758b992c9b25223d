package config

import (
	"fmt"
	"os"
	"strings"
)

// SettingSource represents where an effective setting comes from.
type SettingSource string

const (
	SourceEnv     SettingSource = "env"
	SourceConfig  SettingSource = "config"
	SourceDefault SettingSource = "default"
)

// SettingStatus describes one effective setting.
type SettingStatus struct {
	Key    string        `json:"key"`
	Value  string        `json:"value"`
	Source SettingSource `json:"source"`
}

// EnvVar returns the environment variable overriding key, e.g.
// "engine.zone" → "SAJUAI_ENGINE_ZONE".
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// CheckSettings reports every setting of cfg with its source. A value
// that differs from the default without an environment override is
// attributed to the config file.
func CheckSettings(cfg *Config) []SettingStatus {
	def := Default()
	rows := []struct {
		key      string
		val, dfl any
	}{
		{"engine.zone", cfg.Engine.Zone, def.Engine.Zone},
		{"engine.year_boundary", cfg.Engine.YearBoundary, def.Engine.YearBoundary},
		{"engine.precision", cfg.Engine.Precision, def.Engine.Precision},
		{"engine.start_age_mode", cfg.Engine.StartAgeMode, def.Engine.StartAgeMode},
		{"engine.periods", cfg.Engine.Periods, def.Engine.Periods},
		{"almanac.terms_file", cfg.Almanac.TermsFile, def.Almanac.TermsFile},
		{"almanac.source_url", cfg.Almanac.SourceURL, def.Almanac.SourceURL},
		{"almanac.cache_ttl", cfg.Almanac.CacheTTL, def.Almanac.CacheTTL},
		{"almanac.requests_per_sec", cfg.Almanac.RequestsPerSec, def.Almanac.RequestsPerSec},
		{"batch.concurrency", cfg.Batch.Concurrency, def.Batch.Concurrency},
		{"report.format", cfg.Report.Format, def.Report.Format},
		{"report.sections", strings.Join(cfg.Report.Sections, ","), strings.Join(def.Report.Sections, ",")},
		{"logging.level", cfg.Logging.Level, def.Logging.Level},
		{"logging.format", cfg.Logging.Format, def.Logging.Format},
	}

	out := make([]SettingStatus, 0, len(rows))
	for _, r := range rows {
		val := fmt.Sprint(r.val)
		src := SourceDefault
		switch {
		case os.Getenv(EnvVar(r.key)) != "":
			src = SourceEnv
		case val != fmt.Sprint(r.dfl):
			src = SourceConfig
		}
		out = append(out, SettingStatus{Key: r.key, Value: val, Source: src})
	}
	return out
}
