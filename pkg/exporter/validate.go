package exporter

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/user/vidsnap/pkg/pipeline"
	"github.com/user/vidsnap/pkg/ports"
)

// validate checks job before any work starts. All errors wrap
// pipeline.ErrInvalidConfig.
func (c *Controller) validate(job pipeline.ExportJob) error {
	if err := ValidateJob(job); err != nil {
		return err
	}

	exists, err := c.fs.Exists(job.ExportDir)
	if err != nil {
		return fmt.Errorf("%w: export directory %s: %w", pipeline.ErrInvalidConfig, job.ExportDir, err)
	}
	if exists {
		isDir, err := c.fs.IsDir(job.ExportDir)
		if err != nil {
			return fmt.Errorf("%w: export directory %s: %w", pipeline.ErrInvalidConfig, job.ExportDir, err)
		}
		if !isDir {
			return fmt.Errorf("%w: export path %s is not a directory", pipeline.ErrInvalidConfig, job.ExportDir)
		}
	}
	return nil
}

// ValidateJob checks the parts of job that need no filesystem access.
func ValidateJob(job pipeline.ExportJob) error {
	if strings.TrimSpace(job.VideoPath) == "" {
		return invalid("no video selected")
	}
	if err := ValidateExportDir(job.ExportDir); err != nil {
		return err
	}
	if err := ValidateProjectName(job.ProjectName); err != nil {
		return err
	}

	switch job.Mode {
	case pipeline.ModeEqualInterval:
		if job.Params.IntervalMs <= 0 {
			return invalid("interval must be positive, got %d ms", job.Params.IntervalMs)
		}
	case pipeline.ModeRandom:
		if job.Params.RandomCount <= 0 {
			return invalid("random count must be positive, got %d", job.Params.RandomCount)
		}
	case pipeline.ModeOrthogonal:
		if job.Params.OrthogonalCount <= 0 {
			return invalid("orthogonal count must be positive, got %d", job.Params.OrthogonalCount)
		}
	default:
		return invalid("unknown mode %d", int(job.Mode))
	}

	switch job.Format {
	case ports.FormatJPEG:
		if job.Quality < 1 || job.Quality > 100 {
			return invalid("JPEG quality must be within 1-100, got %d", job.Quality)
		}
	case ports.FormatPNG, ports.FormatBMP, ports.FormatTIFF:
	default:
		return invalid("unknown image format %d", int(job.Format))
	}

	if job.DurationMs < 0 {
		return invalid("duration must not be negative, got %d ms", job.DurationMs)
	}
	if job.SeekTimeout < 0 {
		return invalid("seek timeout must not be negative, got %s", job.SeekTimeout)
	}
	if job.MaxWidth < 0 {
		return invalid("max width must not be negative, got %d", job.MaxWidth)
	}
	return nil
}

// ValidateExportDir rejects empty paths and parent directory traversal.
func ValidateExportDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return invalid("export directory is empty")
	}
	parts := strings.Split(filepath.ToSlash(dir), "/")
	if slices.Contains(parts, "..") {
		return invalid("export directory %s must not contain '..'", dir)
	}
	return nil
}

// ValidateProjectName rejects names that would not stay a single path
// element under the export directory.
func ValidateProjectName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return invalid("project name is empty")
	case name == "." || name == "..":
		return invalid("project name %q is reserved", name)
	case strings.ContainsAny(name, `/\`):
		return invalid("project name %q must not contain path separators", name)
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", pipeline.ErrInvalidConfig, fmt.Sprintf(format, args...))
}
