package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/vidsnap/pkg/mocks"
	"github.com/user/vidsnap/pkg/pipeline"
)

func testSummary() *Summary {
	job := pipeline.DefaultExportJob()
	job.ExportDir = "exports"
	job.ProjectName = "trip"
	job.Params.IntervalMs = 3000
	job.Seed = 42

	result := pipeline.ExportResult{
		JobID:     "job-1",
		State:     pipeline.StateCompleted,
		Planned:   4,
		Succeeded: 3,
		Paths: []string{
			"exports/trip/trip_000000000.jpg",
			"exports/trip/trip_000006000.jpg",
			"exports/trip/trip_000009000.jpg",
		},
		Failures: []pipeline.FrameFailure{
			{Index: 1, TimestampMs: 3000, Kind: pipeline.KindSeekTimeout, Err: fmt.Errorf("%w: a|b", pipeline.ErrSeekTimeout)},
		},
		Elapsed: 1500 * time.Millisecond,
	}

	s := NewBuilder().
		WithVideo("movie.mp4", 12000, "ffmpeg").
		WithJob(job).
		WithResult(result).
		Build()
	s.GeneratedAt = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return s
}

func TestBuilder(t *testing.T) {
	s := testSummary()

	if s.Settings.Mode != "equal" || s.Settings.Parameter != "3000 ms" {
		t.Errorf("unexpected settings %+v", s.Settings)
	}
	if s.Outcome.Succeeded != 3 || s.Outcome.Failed != 1 || s.Outcome.State != "completed" {
		t.Errorf("unexpected outcome %+v", s.Outcome)
	}
	if len(s.Failures) != 1 || s.Failures[0].Kind != "SeekTimeout" {
		t.Errorf("unexpected failures %+v", s.Failures)
	}
}

func TestBuilder_ModeParameter(t *testing.T) {
	tests := []struct {
		mode   pipeline.Mode
		params pipeline.PlanParams
		want   string
	}{
		{pipeline.ModeEqualInterval, pipeline.PlanParams{IntervalMs: 500}, "500 ms"},
		{pipeline.ModeRandom, pipeline.PlanParams{RandomCount: 7}, "7"},
		{pipeline.ModeOrthogonal, pipeline.PlanParams{OrthogonalCount: 9}, "9"},
	}

	for _, tt := range tests {
		job := pipeline.DefaultExportJob()
		job.Mode = tt.mode
		job.Params = tt.params
		if got := NewBuilder().WithJob(job).Build().Settings.Parameter; got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.mode, tt.want, got)
		}
	}
}

func TestMarkdownFormatter_Format(t *testing.T) {
	result := NewMarkdownFormatter().Format(testSummary())

	checks := []string{
		"# Export Report",
		"2024-01-15T10:30:00Z",
		"movie.mp4",
		"0:00:12.000",
		"ffmpeg",
		"equal",
		"3000 ms",
		"jpg",
		filepath.Join("exports", "trip"),
		"job-1",
		"completed",
		"1.5s",
		"`exports/trip/trip_000006000.jpg`",
		"## Failures",
		"0:00:03.000",
		"SeekTimeout",
		`a\|b`,
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_NoFailuresSection(t *testing.T) {
	s := testSummary()
	s.Failures = nil

	if result := NewMarkdownFormatter().Format(s); strings.Contains(result, "## Failures") {
		t.Error("expected no failures section")
	}
}

func TestMarkdownFormatter_TruncatesFiles(t *testing.T) {
	s := testSummary()
	f := &MarkdownFormatter{MaxFiles: 2}

	result := f.Format(s)
	if strings.Contains(result, "trip_000009000.jpg") {
		t.Error("expected the third file to be omitted")
	}
	if !strings.Contains(result, "... and 1 more") {
		t.Error("expected a truncation note")
	}
}

func TestMarkdownFormatter_ShowsFatalError(t *testing.T) {
	s := NewBuilder().WithResult(pipeline.ExportResult{
		State: pipeline.StateFailed,
		Err:   fmt.Errorf("%w: moov atom not found", pipeline.ErrOpen),
	}).Build()

	result := NewMarkdownFormatter().Format(s)
	if !strings.Contains(result, "moov atom not found") || !strings.Contains(result, "failed") {
		t.Errorf("expected the fatal error in output:\n%s", result)
	}
}

func TestFormatFunc(t *testing.T) {
	f := FormatFunc(func(s *Summary) string { return s.Outcome.JobID })
	if got := f.Format(testSummary()); got != "job-1" {
		t.Errorf("expected job-1, got %q", got)
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(fs, FormatFunc(func(*Summary) string { return "content" }))

	path := filepath.Join("exports", "trip", "report.md")
	if err := w.Write(path, testSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, ok := fs.GetFile(path)
	if !ok || string(data) != "content" {
		t.Errorf("expected content at %s, got %q", path, data)
	}
	if fs.MkdirAllCalls != 1 {
		t.Errorf("expected parent directory creation, got %d calls", fs.MkdirAllCalls)
	}
}

func TestWriter_WriteError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileAtomicFunc = func(string, []byte) error { return errors.New("read-only") }
	w := NewWriter(fs, NewMarkdownFormatter())

	if err := w.Write("report.md", testSummary()); err == nil {
		t.Error("expected error")
	}
	if fs.MkdirAllCalls != 0 {
		t.Error("expected no directory creation for a bare file name")
	}
}
