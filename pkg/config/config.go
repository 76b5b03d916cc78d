// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/user/vidsnap/pkg/pipeline"
	"github.com/user/vidsnap/pkg/ports"
)

// EnvPrefix prefixes every environment override, e.g. VIDSNAP_MODE.
const EnvPrefix = "VIDSNAP_"

// Config represents the persisted settings for vidsnap.
type Config struct {
	// Output
	ExportPath string `yaml:"export_path" env:"EXPORT_PATH"`
	Project    string `yaml:"project,omitempty" env:"PROJECT"`

	// Sampling
	Mode            string `yaml:"mode" env:"MODE"`
	IntervalMs      int64  `yaml:"interval_ms" env:"INTERVAL_MS"`
	RandomCount     int    `yaml:"random_count" env:"RANDOM_COUNT"`
	OrthogonalCount int    `yaml:"orthogonal_count" env:"ORTHOGONAL_COUNT"`
	Seed            uint64 `yaml:"seed,omitempty" env:"SEED"`

	// Images
	Format   string `yaml:"format" env:"FORMAT"`
	Quality  int    `yaml:"quality" env:"QUALITY"`
	Naming   string `yaml:"naming" env:"NAMING"`
	MaxWidth int    `yaml:"max_width,omitempty" env:"MAX_WIDTH"`
	Stamp    bool   `yaml:"stamp,omitempty" env:"STAMP"`

	// Capture
	SeekTimeoutMs int64  `yaml:"seek_timeout_ms" env:"SEEK_TIMEOUT_MS"`
	Workers       int    `yaml:"workers" env:"WORKERS"`
	Backend       string `yaml:"backend" env:"BACKEND"`
	FFmpegPath    string `yaml:"ffmpeg_path,omitempty" env:"FFMPEG_PATH"`

	// Logging
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		ExportPath: defaultExportPath(),

		Mode:            "equal",
		IntervalMs:      1000,
		RandomCount:     10,
		OrthogonalCount: 10,

		Format:  "jpg",
		Quality: 90,
		Naming:  "timestamp",

		SeekTimeoutMs: 10000,
		Workers:       1,
		Backend:       "auto",

		LogLevel: "info",
	}
}

func defaultExportPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Screenshots"
	}
	return filepath.Join(home, "Pictures", "Screenshots")
}

// DefaultPath returns the settings file location in the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "vidsnap.yaml"
	}
	return filepath.Join(dir, "vidsnap", "config.yaml")
}

// LoadFromFile loads configuration from a YAML file. Keys missing from the
// file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault loads path when it exists and returns the defaults otherwise.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := LoadFromFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	return cfg, err
}

// SaveToFile writes cfg to path as YAML, creating parent directories.
func SaveToFile(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from VIDSNAP_* environment variables.
// Unset variables leave the current values alone.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("%w: environment: %w", pipeline.ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks every field. Errors wrap pipeline.ErrInvalidConfig.
func (c Config) Validate() error {
	_, err := c.job()
	return err
}

// ToJob converts the settings into an export job for video. A non-empty
// project overrides the configured one.
func (c Config) ToJob(video, project string) (pipeline.ExportJob, error) {
	job, err := c.job()
	if err != nil {
		return job, err
	}
	job.VideoPath = video
	if project != "" {
		job.ProjectName = project
	}
	return job, nil
}

func (c Config) job() (pipeline.ExportJob, error) {
	job := pipeline.DefaultExportJob()

	mode, err := pipeline.ParseMode(c.Mode)
	if err != nil {
		return job, err
	}
	naming, err := pipeline.ParseNaming(c.Naming)
	if err != nil {
		return job, err
	}
	format, ok := ports.ParseImageFormat(strings.ToLower(c.Format))
	if !ok {
		return job, invalid("unknown format %q", c.Format)
	}

	switch {
	case mode == pipeline.ModeEqualInterval && c.IntervalMs <= 0:
		return job, invalid("interval_ms must be positive, got %d", c.IntervalMs)
	case mode == pipeline.ModeRandom && c.RandomCount <= 0:
		return job, invalid("random_count must be positive, got %d", c.RandomCount)
	case mode == pipeline.ModeOrthogonal && c.OrthogonalCount <= 0:
		return job, invalid("orthogonal_count must be positive, got %d", c.OrthogonalCount)
	case format == ports.FormatJPEG && (c.Quality < 1 || c.Quality > 100):
		return job, invalid("quality must be within 1-100, got %d", c.Quality)
	case c.SeekTimeoutMs <= 0:
		return job, invalid("seek_timeout_ms must be positive, got %d", c.SeekTimeoutMs)
	case c.Workers < 1:
		return job, invalid("workers must be at least 1, got %d", c.Workers)
	case c.MaxWidth < 0:
		return job, invalid("max_width must not be negative, got %d", c.MaxWidth)
	}

	switch strings.ToLower(c.Backend) {
	case "", "auto", "ffmpeg", "mpeg":
	default:
		return job, invalid("unknown backend %q", c.Backend)
	}

	job.ExportDir = expandHome(c.ExportPath)
	job.ProjectName = c.Project
	job.Mode = mode
	job.Params = pipeline.PlanParams{
		IntervalMs:      c.IntervalMs,
		RandomCount:     c.RandomCount,
		OrthogonalCount: c.OrthogonalCount,
	}
	job.Format = format
	job.Quality = c.Quality
	job.Naming = naming
	job.SeekTimeout = time.Duration(c.SeekTimeoutMs) * time.Millisecond
	job.MaxWidth = c.MaxWidth
	job.Stamp = c.Stamp
	job.WriteWorkers = c.Workers
	job.Seed = c.Seed
	return job, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", pipeline.ErrInvalidConfig, fmt.Sprintf(format, args...))
}
