package config

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/bbanting/budgettool/internal/period"
)

// FileName is the config file name, expected in the ledger root.
const FileName = "bt.yaml"

// Config represents the top-level bt.yaml configuration.
type Config struct {
	Records RecordsConfig `yaml:"records"`
	Display DisplayConfig `yaml:"display"`
	Git     GitConfig     `yaml:"git"`
}

// RecordsConfig locates and shapes the record files.
type RecordsConfig struct {
	Dir          string `yaml:"dir"`
	Granularity  string `yaml:"granularity"`   // "monthly" or "yearly"
	ActivePeriod string `yaml:"active_period"` // e.g. "2025-08"; empty = current
}

// DisplayConfig controls terminal output.
type DisplayConfig struct {
	Width      int  `yaml:"width"` // fallback when the terminal size is unknown
	PageHeight int  `yaml:"page_height"`
	Numbered   bool `yaml:"numbered"`
}

// GitConfig controls version control of the records directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Records),
		validation.Field(&c.Display),
	)
}

// Validate implements validation for the records section.
func (c RecordsConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.Granularity, validation.Required, validation.By(validGranularity)),
		validation.Field(&c.ActivePeriod, validation.By(validPeriod)),
	)
}

// Validate implements validation for the display section.
func (c DisplayConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Width, validation.Min(20)),
		validation.Field(&c.PageHeight, validation.Min(1)),
	)
}

func validGranularity(value interface{}) error {
	s, _ := value.(string)
	_, err := period.ParseGranularity(s)
	return err
}

func validPeriod(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	_, err := period.Parse(s)
	return err
}

// Granularity returns the parsed period granularity.
func (c *Config) Granularity() period.Granularity {
	g, err := period.ParseGranularity(c.Records.Granularity)
	if err != nil {
		return period.Monthly
	}
	return g
}

// ActivePeriod returns the configured default period, or ok=false when
// the current period should be used.
func (c *Config) ActivePeriod() (period.Period, bool) {
	if c.Records.ActivePeriod == "" {
		return period.Period{}, false
	}
	p, err := period.Parse(c.Records.ActivePeriod)
	if err != nil {
		return period.Period{}, false
	}
	return p, true
}

// Load reads and validates a bt.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(recordsDir string) *Config {
	return &Config{
		Records: RecordsConfig{
			Dir:         recordsDir,
			Granularity: "monthly",
		},
		Display: DisplayConfig{
			Width:      80,
			PageHeight: 20,
			Numbered:   true,
		},
		Git: GitConfig{
			AutoCommit: false,
			AuthorName: "bt",
		},
	}
}
