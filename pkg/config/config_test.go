package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/user/vidsnap/pkg/pipeline"
	"github.com/user/vidsnap/pkg/ports"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Mode != "equal" || cfg.IntervalMs != 1000 || cfg.RandomCount != 10 || cfg.OrthogonalCount != 10 {
		t.Errorf("unexpected sampling defaults %+v", cfg)
	}
	if filepath.Base(cfg.ExportPath) != "Screenshots" {
		t.Errorf("expected export path to end in Screenshots, got %s", cfg.ExportPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
export_path: /tmp/shots
mode: random
random_count: 25
format: png
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.ExportPath != "/tmp/shots" || cfg.Mode != "random" || cfg.RandomCount != 25 || cfg.Format != "png" {
		t.Errorf("unexpected config %+v", cfg)
	}
	// Unspecified keys keep defaults
	if cfg.IntervalMs != 1000 || cfg.Quality != 90 {
		t.Errorf("expected defaults for missing keys, got %+v", cfg)
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("mode: [unterminated"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadOrDefault_Missing(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if cfg != Defaults() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestSaveToFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Defaults()
	cfg.Mode = "orthogonal"
	cfg.OrthogonalCount = 7
	cfg.Seed = 99
	cfg.Stamp = true

	if err := SaveToFile(path, cfg); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}
	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if loaded != cfg {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("VIDSNAP_MODE", "random")
	t.Setenv("VIDSNAP_RANDOM_COUNT", "42")
	t.Setenv("VIDSNAP_STAMP", "true")

	cfg := Defaults()
	cfg.Format = "png"
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.Mode != "random" || cfg.RandomCount != 42 || !cfg.Stamp {
		t.Errorf("expected env overrides, got %+v", cfg)
	}
	if cfg.Format != "png" || cfg.IntervalMs != 1000 {
		t.Errorf("expected unset variables to keep values, got %+v", cfg)
	}
}

func TestApplyEnv_InvalidValue(t *testing.T) {
	t.Setenv("VIDSNAP_QUALITY", "high")

	cfg := Defaults()
	if err := ApplyEnv(&cfg); !errors.Is(err, pipeline.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"unknown mode", func(c *Config) { c.Mode = "zigzag" }},
		{"zero interval", func(c *Config) { c.IntervalMs = 0 }},
		{"zero random count", func(c *Config) { c.Mode = "random"; c.RandomCount = 0 }},
		{"zero orthogonal count", func(c *Config) { c.Mode = "2"; c.OrthogonalCount = 0 }},
		{"unknown format", func(c *Config) { c.Format = "gif" }},
		{"quality", func(c *Config) { c.Quality = 0 }},
		{"naming", func(c *Config) { c.Naming = "random" }},
		{"timeout", func(c *Config) { c.SeekTimeoutMs = 0 }},
		{"workers", func(c *Config) { c.Workers = 0 }},
		{"max width", func(c *Config) { c.MaxWidth = -1 }},
		{"backend", func(c *Config) { c.Backend = "vlc" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, pipeline.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidate_UnusedParameterIgnored(t *testing.T) {
	cfg := Defaults()
	cfg.Mode = "random"
	cfg.IntervalMs = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected interval to be ignored in random mode: %v", err)
	}
}

func TestToJob(t *testing.T) {
	cfg := Defaults()
	cfg.ExportPath = "/data/out"
	cfg.Project = "default"
	cfg.Mode = "orthogonal"
	cfg.OrthogonalCount = 5
	cfg.Format = "PNG"
	cfg.Naming = "sequence"
	cfg.SeekTimeoutMs = 2500
	cfg.Workers = 3

	job, err := cfg.ToJob("movie.mp4", "trip")
	if err != nil {
		t.Fatalf("ToJob failed: %v", err)
	}

	if job.VideoPath != "movie.mp4" || job.ProjectName != "trip" || job.ExportDir != "/data/out" {
		t.Errorf("unexpected paths %+v", job)
	}
	if job.Mode != pipeline.ModeOrthogonal || job.Params.OrthogonalCount != 5 {
		t.Errorf("unexpected mode %+v", job)
	}
	if job.Format != ports.FormatPNG || job.Naming != pipeline.NamingSequence {
		t.Errorf("unexpected output settings %+v", job)
	}
	if job.SeekTimeout != 2500*time.Millisecond || job.WriteWorkers != 3 {
		t.Errorf("unexpected capture settings %+v", job)
	}

	job, _ = cfg.ToJob("movie.mp4", "")
	if job.ProjectName != "default" {
		t.Errorf("expected configured project, got %q", job.ProjectName)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := expandHome("~/shots"); got != filepath.Join(home, "shots") {
		t.Errorf("expected %s, got %s", filepath.Join(home, "shots"), got)
	}
	if got := expandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("expected path unchanged, got %s", got)
	}
}
