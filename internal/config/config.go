// Package config handles configuration loading for sajuai.
// It supports YAML config files with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SAJUAI_ENGINE_ZONE.
const EnvPrefix = "SAJUAI"

// Config represents the complete application configuration.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"  yaml:"engine"`
	Almanac AlmanacConfig `mapstructure:"almanac" yaml:"almanac"`
	Batch   BatchConfig   `mapstructure:"batch"   yaml:"batch"`
	Report  ReportConfig  `mapstructure:"report"  yaml:"report"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// EngineConfig holds chart construction and analysis policies.
type EngineConfig struct {
	// Zone is the solar-time preset applied to inputs that name none.
	Zone         string `mapstructure:"zone"           yaml:"zone"`
	YearBoundary string `mapstructure:"year_boundary"  yaml:"year_boundary"  validate:"oneof=calendar lichun"`
	Precision    string `mapstructure:"precision"      yaml:"precision"      validate:"oneof=allow strict"`
	StartAgeMode string `mapstructure:"start_age_mode" yaml:"start_age_mode" validate:"oneof=precise simplified"`
	Periods      int    `mapstructure:"periods"        yaml:"periods"        validate:"gte=1,lte=12"`
}

// AlmanacConfig holds solar-term data settings.
type AlmanacConfig struct {
	TermsFile string `mapstructure:"terms_file" yaml:"terms_file"`
	// SourceURL is a page template containing {year}.
	SourceURL string `mapstructure:"source_url" yaml:"source_url"`
	CacheTTL  int    `mapstructure:"cache_ttl"  yaml:"cache_ttl" validate:"gte=0"` // seconds
	// RequestsPerSec limits fetches; negative disables limiting.
	RequestsPerSec float64 `mapstructure:"requests_per_sec" yaml:"requests_per_sec"`
}

// CacheDuration returns CacheTTL as a duration.
func (a AlmanacConfig) CacheDuration() time.Duration {
	return time.Duration(a.CacheTTL) * time.Second
}

// BatchConfig holds batch analysis settings.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency" validate:"gte=1,lte=256"`
}

// ReportConfig holds report rendering settings. Empty Sections selects
// every section.
type ReportConfig struct {
	Format   string   `mapstructure:"format"   yaml:"format" validate:"oneof=text json html"`
	Sections []string `mapstructure:"sections" yaml:"sections"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`                             // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"` // "text" or "json"
}

var validate = validator.New()

// Validate checks enumerated and ranged settings.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config %s=%v (%s %s)", strings.ToLower(fe.Namespace()), fe.Value(), fe.Tag(), fe.Param())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.sajuai/config.yaml (home directory)
//  3. /etc/sajuai/config.yaml (system)
//
// Environment variables override config file values.
// Format: SAJUAI_<SECTION>_<KEY>, e.g., SAJUAI_ENGINE_YEAR_BOUNDARY
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".sajuai"))
	v.AddConfigPath("/etc/sajuai")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Almanac.TermsFile = expandHome(cfg.Almanac.TermsFile)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration without reading files or
// the environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// defaults always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Engine defaults
	v.SetDefault("engine.zone", "")
	v.SetDefault("engine.year_boundary", "calendar")
	v.SetDefault("engine.precision", "allow")
	v.SetDefault("engine.start_age_mode", "precise")
	v.SetDefault("engine.periods", 8)

	// Almanac defaults
	v.SetDefault("almanac.terms_file", "")
	v.SetDefault("almanac.source_url", "")
	v.SetDefault("almanac.cache_ttl", 86400) // 1 day
	v.SetDefault("almanac.requests_per_sec", 1.0)

	// Batch defaults
	v.SetDefault("batch.concurrency", 4)

	// Report defaults
	v.SetDefault("report.format", "text")
	v.SetDefault("report.sections", []string{})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// expandHome resolves a leading "~/" against the home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
