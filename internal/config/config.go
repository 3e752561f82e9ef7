package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"pss/internal/fsutil"
)

// ExcerptConfig describes the schedule excerpt written by `pss excerpt`.
type ExcerptConfig struct {
	// Path is the file the excerpt is written to.
	Path string `yaml:"path" json:"path"`

	// Format is "ics" (default) or "json".
	Format string `yaml:"format" json:"format"`

	// Period is one of "day", "week" (default) or "month".
	Period string `yaml:"period" json:"period"`

	// RefreshCron is a cron-style schedule string (e.g. "*/15 * * * *")
	// used by --watch to rewrite the excerpt periodically.
	RefreshCron string `yaml:"refresh" json:"refresh"`
}

// Config is the top-level application configuration.
type Config struct {
	// ScheduleFile is the JSON task file loaded before and saved after
	// every command.
	ScheduleFile string `yaml:"schedule_file" json:"schedule_file"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// WeekStart controls which weekday week excerpts start on. Supported
	// values:
	//   - "monday" (default)
	//   - "sunday"
	WeekStart string `yaml:"week_start" json:"week_start"`

	// HorizonDays is the default day count for `pss events`.
	HorizonDays int `yaml:"horizon_days" json:"horizon_days"`

	Excerpt ExcerptConfig `yaml:"excerpt" json:"excerpt"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		ScheduleFile: "schedule.json",
		LogLevel:     "info",
		WeekStart:    "monday",
		HorizonDays:  7,
		Excerpt: ExcerptConfig{
			Path:        "excerpt.ics",
			Format:      "ics",
			Period:      "week",
			RefreshCron: "*/15 * * * *",
		},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.ScheduleFile == "" {
		c.ScheduleFile = def.ScheduleFile
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = def.LogLevel
	}
	switch c.WeekStart {
	case "monday", "sunday":
	default:
		// Unknown value; fall back to monday.
		c.WeekStart = def.WeekStart
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = def.HorizonDays
	}

	if c.Excerpt.Path == "" {
		c.Excerpt.Path = def.Excerpt.Path
	}
	switch c.Excerpt.Format {
	case "ics", "json":
	default:
		c.Excerpt.Format = def.Excerpt.Format
	}
	switch c.Excerpt.Period {
	case "day", "week", "month":
	default:
		c.Excerpt.Period = def.Excerpt.Period
	}
	if c.Excerpt.RefreshCron == "" {
		c.Excerpt.RefreshCron = def.Excerpt.RefreshCron
	}
}

// FirstWeekday returns WeekStart as a time.Weekday.
func (c *Config) FirstWeekday() time.Weekday {
	if c.WeekStart == "sunday" {
		return time.Sunday
	}
	return time.Monday
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save normalizes cfg and writes it to path as YAML with 0600 perms.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0o600)
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
