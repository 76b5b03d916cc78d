package pipeline

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/user/vidsnap/pkg/ports"
)

// =============================================================================
// Sampling
// =============================================================================

// Mode selects how capture timestamps are distributed over the video.
type Mode int

const (
	// ModeEqualInterval captures at a fixed spacing.
	ModeEqualInterval Mode = iota
	// ModeRandom captures at uniformly random, distinct timestamps.
	ModeRandom
	// ModeOrthogonal captures one random timestamp per equal-width stratum.
	ModeOrthogonal
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeEqualInterval:
		return "equal"
	case ModeRandom:
		return "random"
	case ModeOrthogonal:
		return "orthogonal"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses a mode name. Numeric names follow the persisted
// settings encoding (0 equal, 1 random, 2 orthogonal).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "equal", "interval", "equal-interval", "0":
		return ModeEqualInterval, nil
	case "random", "1":
		return ModeRandom, nil
	case "orthogonal", "stratified", "2":
		return ModeOrthogonal, nil
	default:
		return ModeEqualInterval, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, s)
	}
}

// PlanParams carries the mode parameters. Only the field matching the
// selected mode is read.
type PlanParams struct {
	IntervalMs      int64 // Equal interval spacing in milliseconds
	RandomCount     int   // Number of random captures
	OrthogonalCount int   // Number of strata
}

// PlanInput is the input of the planning stage.
type PlanInput struct {
	DurationMs int64
	Mode       Mode
	Params     PlanParams
}

// SamplingPlan is the ordered list of capture timestamps for one job.
type SamplingPlan struct {
	Mode       Mode
	DurationMs int64
	Timestamps []int64 // Ascending, distinct, each in [0, DurationMs)
}

// Len returns the number of planned captures.
func (p SamplingPlan) Len() int {
	return len(p.Timestamps)
}

// =============================================================================
// Job
// =============================================================================

// Naming selects the variable part of exported file names.
type Naming int

const (
	// NamingTimestamp names files after the capture timestamp in milliseconds.
	NamingTimestamp Naming = iota
	// NamingSequence names files after the position in the plan.
	NamingSequence
)

// String returns the configuration name of the naming scheme.
func (n Naming) String() string {
	if n == NamingSequence {
		return "sequence"
	}
	return "timestamp"
}

// ParseNaming parses a naming scheme name.
func ParseNaming(s string) (Naming, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "timestamp", "time":
		return NamingTimestamp, nil
	case "sequence", "seq", "index":
		return NamingSequence, nil
	default:
		return NamingTimestamp, fmt.Errorf("%w: unknown naming %q", ErrInvalidConfig, s)
	}
}

// ExportJob describes one export. The controller copies it on start,
// so later changes by the caller have no effect.
type ExportJob struct {
	ID         string
	VideoPath  string
	DurationMs int64 // 0 means use the duration reported by the video source

	ExportDir   string
	ProjectName string

	Mode   Mode
	Params PlanParams

	Format      ports.ImageFormat
	Quality     int    // JPEG quality 1-100
	Naming      Naming
	SeekTimeout time.Duration
	MaxWidth    int  // Downscale wider frames; 0 keeps the source size
	Stamp       bool // Burn the timestamp into the image

	// WriteWorkers > 1 moves file writes to a bounded pool.
	WriteWorkers int

	// Seed for random modes; 0 picks a time-based seed.
	Seed uint64
}

// DefaultExportJob returns an ExportJob with default values.
func DefaultExportJob() ExportJob {
	return ExportJob{
		Mode:         ModeEqualInterval,
		Params:       PlanParams{IntervalMs: 1000, RandomCount: 10, OrthogonalCount: 10},
		Format:       ports.FormatJPEG,
		Quality:      90,
		Naming:       NamingTimestamp,
		SeekTimeout:  10 * time.Second,
		WriteWorkers: 1,
	}
}

// =============================================================================
// Capture
// =============================================================================

// CapturedFrame is a decoded frame on its way to the writer.
// It is handed over once and not retained afterwards.
type CapturedFrame struct {
	Index       int // Position of the timestamp in the plan
	Total       int // Plan length, used for name padding
	TimestampMs int64
	Image       image.Image
}

// Valid reports whether the frame holds a non-empty image.
func (f CapturedFrame) Valid() bool {
	if f.Image == nil {
		return false
	}
	b := f.Image.Bounds()
	return b.Dx() > 0 && b.Dy() > 0
}

// =============================================================================
// Result
// =============================================================================

// State is the lifecycle state of an export.
type State int32

const (
	StateIdle State = iota
	StatePlanning
	StateCapturing
	StateCompleted
	StateCancelled
	StateFailed
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlanning:
		return "planning"
	case StateCapturing:
		return "capturing"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions happen from s.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled || s == StateFailed
}

// FrameFailure records one skipped capture.
type FrameFailure struct {
	Index       int
	TimestampMs int64
	Kind        ErrorKind
	Err         error
}

// ExportResult is the outcome of one export.
type ExportResult struct {
	JobID      string
	State      State
	DurationMs int64 // Duration the plan was computed for
	Planned    int
	Succeeded  int
	Paths      []string       // Written files, in plan order
	Failures   []FrameFailure // Ordered by index
	Err        error          // Fatal cause, nil unless State is StateFailed
	Elapsed    time.Duration
}

// Completed returns the number of plan steps that finished either way.
func (r ExportResult) Completed() int {
	return r.Succeeded + len(r.Failures)
}

// FailedTimestamps lists the timestamps of all failed captures.
func (r ExportResult) FailedTimestamps() []int64 {
	out := make([]int64, len(r.Failures))
	for i, f := range r.Failures {
		out[i] = f.TimestampMs
	}
	return out
}
