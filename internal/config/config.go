// Package config handles configuration loading for filingscan. It supports
// YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/quantfold/filingscan/internal/extract/confidence"
	"github.com/quantfold/filingscan/internal/forms"
	"github.com/quantfold/filingscan/internal/forms/holdings"
)

// Config represents the complete application configuration.
type Config struct {
	Scoring ScoringConfig `mapstructure:"scoring" yaml:"scoring"`
	Diff    DiffConfig    `mapstructure:"diff"    yaml:"diff"`
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract"`
	Batch   BatchConfig   `mapstructure:"batch"   yaml:"batch"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ScoringConfig holds the confidence-scoring thresholds.
type ScoringConfig struct {
	BaseConfidence    float64 `mapstructure:"base_confidence"    yaml:"base_confidence"`
	DefaultConfidence float64 `mapstructure:"default_confidence" yaml:"default_confidence"`
}

// DiffConfig holds holdings-differencer tuning.
type DiffConfig struct {
	ChangeThresholdPct float64 `mapstructure:"change_threshold_pct" yaml:"change_threshold_pct"`
	MaxPositions       int     `mapstructure:"max_positions"        yaml:"max_positions"`
}

// ExtractConfig holds text-extraction caps.
type ExtractConfig struct {
	MaxSummaryChars int `mapstructure:"max_summary_chars" yaml:"max_summary_chars"`
	MaxPurposeChars int `mapstructure:"max_purpose_chars" yaml:"max_purpose_chars"`
}

// BatchConfig holds concurrent-extraction settings.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // "debug" or "info"
}

// Scorer builds the confidence policy the configuration describes.
func (c *Config) Scorer() confidence.Scorer {
	return confidence.Scorer{
		Base:     c.Scoring.BaseConfidence,
		Fallback: c.Scoring.DefaultConfidence,
	}
}

// Caps builds the excerpt caps the configuration describes.
func (c *Config) Caps() forms.Caps {
	return forms.Caps{
		SummaryChars: c.Extract.MaxSummaryChars,
		PurposeChars: c.Extract.MaxPurposeChars,
	}
}

// Differencer builds a holdings differencer from the configured tuning.
func (c *Config) Differencer() holdings.Differencer {
	return holdings.Differencer{
		ChangeThresholdPct: c.Diff.ChangeThresholdPct,
		MaxPositions:       c.Diff.MaxPositions,
	}
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.filingscan/config.yaml (home directory)
//  3. /etc/filingscan/config.yaml (system)
//
// Environment variables override config file values.
// Format: FILINGSCAN_<SECTION>_<KEY>, e.g., FILINGSCAN_DIFF_MAX_POSITIONS
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".filingscan"))
	v.AddConfigPath("/etc/filingscan")

	v.SetEnvPrefix("FILINGSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file not existing is fine, defaults plus env vars apply.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("FILINGSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets the shipped defaults for all config values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("scoring.base_confidence", 0.85)
	v.SetDefault("scoring.default_confidence", 0.5)

	v.SetDefault("diff.change_threshold_pct", 5.0)
	v.SetDefault("diff.max_positions", 20)

	v.SetDefault("extract.max_summary_chars", 500)
	v.SetDefault("extract.max_purpose_chars", 500)

	v.SetDefault("batch.concurrency", 4)

	v.SetDefault("logging.level", "info")
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
