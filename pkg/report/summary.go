// Package report renders a human-readable summary of a finished export.
package report

import (
	"fmt"
	"time"

	"github.com/user/vidsnap/pkg/pipeline"
)

// Summary contains everything shown in an export report.
type Summary struct {
	GeneratedAt time.Time

	Video    VideoInfo
	Settings Settings
	Outcome  Outcome

	Files    []string
	Failures []FailureInfo
}

// VideoInfo describes the source video.
type VideoInfo struct {
	Path       string
	DurationMs int64
	Backend    string
}

// Settings contains the export configuration.
type Settings struct {
	Mode      string
	Parameter string // e.g. "3000 ms" or "10"
	Format    string
	Quality   int
	Naming    string
	ExportDir string
	Project   string
	Seed      uint64
}

// Outcome contains the counters of the result.
type Outcome struct {
	JobID     string
	State     string
	Planned   int
	Succeeded int
	Failed    int
	Elapsed   time.Duration
	Error     string
}

// FailureInfo describes one skipped capture.
type FailureInfo struct {
	TimestampMs int64
	Kind        string
	Message     string
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithVideo sets source video information.
func (b *Builder) WithVideo(path string, durationMs int64, backend string) *Builder {
	b.summary.Video = VideoInfo{
		Path:       path,
		DurationMs: durationMs,
		Backend:    backend,
	}
	return b
}

// WithJob sets the export settings from job.
func (b *Builder) WithJob(job pipeline.ExportJob) *Builder {
	b.summary.Settings = Settings{
		Mode:      job.Mode.String(),
		Parameter: modeParameter(job),
		Format:    job.Format.String(),
		Quality:   job.Quality,
		Naming:    job.Naming.String(),
		ExportDir: job.ExportDir,
		Project:   job.ProjectName,
		Seed:      job.Seed,
	}
	return b
}

// WithResult sets the outcome, written files and failures from result.
func (b *Builder) WithResult(result pipeline.ExportResult) *Builder {
	b.summary.Outcome = Outcome{
		JobID:     result.JobID,
		State:     result.State.String(),
		Planned:   result.Planned,
		Succeeded: result.Succeeded,
		Failed:    len(result.Failures),
		Elapsed:   result.Elapsed,
	}
	if result.Err != nil {
		b.summary.Outcome.Error = result.Err.Error()
	}

	b.summary.Files = append([]string(nil), result.Paths...)
	b.summary.Failures = make([]FailureInfo, len(result.Failures))
	for i, f := range result.Failures {
		msg := ""
		if f.Err != nil {
			msg = f.Err.Error()
		}
		b.summary.Failures[i] = FailureInfo{
			TimestampMs: f.TimestampMs,
			Kind:        f.Kind.String(),
			Message:     msg,
		}
	}
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}

func modeParameter(job pipeline.ExportJob) string {
	switch job.Mode {
	case pipeline.ModeEqualInterval:
		return fmt.Sprintf("%d ms", job.Params.IntervalMs)
	case pipeline.ModeRandom:
		return fmt.Sprintf("%d", job.Params.RandomCount)
	case pipeline.ModeOrthogonal:
		return fmt.Sprintf("%d", job.Params.OrthogonalCount)
	default:
		return "-"
	}
}
