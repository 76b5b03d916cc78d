// Package smartsource picks a decoding backend per video and delegates
// captures to it.
package smartsource

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"
	"time"

	"github.com/user/vidsnap/pkg/adapters/ffmpegsource"
	"github.com/user/vidsnap/pkg/adapters/mpegsource"
	"github.com/user/vidsnap/pkg/pipeline"
	"github.com/user/vidsnap/pkg/ports"
)

// Backend names a decoding backend.
type Backend string

const (
	// BackendAuto selects by file extension.
	BackendAuto Backend = "auto"
	// BackendFFmpeg runs the ffmpeg binary per capture.
	BackendFFmpeg Backend = "ffmpeg"
	// BackendMPEG decodes MPEG-1 in pure Go.
	BackendMPEG Backend = "mpeg"
)

// ErrUnknownBackend is returned for unsupported backend names.
var ErrUnknownBackend = errors.New("smartsource: unknown backend")

// ParseBackend parses a backend name. Empty means auto.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BackendAuto, nil
	case BackendAuto, BackendFFmpeg, BackendMPEG:
		return b, nil
	default:
		return BackendAuto, fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// Options configures backend selection.
type Options struct {
	Backend    Backend
	FFmpegPath string
}

// Select returns the backend used for path.
//
// The selection flow:
//   - explicit backend: use it
//   - MPEG-1 program stream: pure Go decoder
//   - anything else: ffmpeg
func Select(path string, backend Backend) Backend {
	if backend != "" && backend != BackendAuto {
		return backend
	}
	if mpegsource.IsMPEG(path) {
		return BackendMPEG
	}
	return BackendFFmpeg
}

// Source implements ports.VideoSource by delegating to the selected backend.
type Source struct {
	opts   Options
	logger ports.Logger

	newFFmpeg func() ports.VideoSource
	newMPEG   func() ports.VideoSource

	mu      sync.Mutex
	inner   ports.VideoSource
	backend Backend
}

// New creates a new backend-selecting source.
func New(opts Options, logger ports.Logger) *Source {
	return &Source{
		opts:   opts,
		logger: logger,
		newFFmpeg: func() ports.VideoSource {
			return ffmpegsource.New(ffmpegsource.Options{FFmpegPath: opts.FFmpegPath}, logger)
		},
		newMPEG: func() ports.VideoSource {
			return mpegsource.New(logger)
		},
	}
}

// Open selects a backend for path and opens the video with it.
func (s *Source) Open(ctx context.Context, path string) (int64, error) {
	backend := Select(path, s.opts.Backend)

	var inner ports.VideoSource
	switch backend {
	case BackendFFmpeg:
		inner = s.newFFmpeg()
	case BackendMPEG:
		inner = s.newMPEG()
	default:
		return 0, fmt.Errorf("%w: %w: %q", pipeline.ErrOpen, ErrUnknownBackend, string(backend))
	}
	s.logger.WithComponent("source").Debug("Using %s backend", string(backend))

	durationMs, err := inner.Open(ctx, path)
	if err != nil {
		inner.Close()
		return 0, err
	}

	s.mu.Lock()
	prev := s.inner
	s.inner = inner
	s.backend = backend
	s.mu.Unlock()
	if prev != nil {
		prev.Close()
	}

	return durationMs, nil
}

// SeekAndDecode delegates to the opened backend.
func (s *Source) SeekAndDecode(ctx context.Context, timestampMs int64, timeout time.Duration) (image.Image, error) {
	s.mu.Lock()
	inner := s.inner
	s.mu.Unlock()
	if inner == nil {
		return nil, fmt.Errorf("%w: video not open", pipeline.ErrDecode)
	}
	return inner.SeekAndDecode(ctx, timestampMs, timeout)
}

// Close releases the opened backend.
func (s *Source) Close() error {
	s.mu.Lock()
	inner := s.inner
	s.inner = nil
	s.mu.Unlock()
	if inner == nil {
		return nil
	}
	return inner.Close()
}

// Backend returns the backend chosen by the last successful Open.
func (s *Source) Backend() Backend {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend
}

// Ensure Source implements ports.VideoSource
var _ ports.VideoSource = (*Source)(nil)
