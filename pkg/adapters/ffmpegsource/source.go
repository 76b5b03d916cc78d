// Package ffmpegsource captures still frames by running the ffmpeg binary.
//
// Each capture is a separate ffmpeg process that seeks to the timestamp and
// pipes exactly one PNG frame to stdout, so any container and codec ffmpeg
// understands can be sampled.
package ffmpegsource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/user/vidsnap/pkg/adapters/mp4probe"
	"github.com/user/vidsnap/pkg/pipeline"
	"github.com/user/vidsnap/pkg/ports"
)

var (
	// ErrFFmpegNotFound is returned when the ffmpeg binary cannot be located.
	ErrFFmpegNotFound = errors.New("ffmpegsource: ffmpeg not found")
	// ErrNotOpen is returned when a capture is requested before Open.
	ErrNotOpen = errors.New("ffmpegsource: video not open")
)

// Runner executes an external command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Options configures the source.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
	// FFprobePath is an optional custom path to ffprobe. Defaults to the
	// ffprobe next to ffmpeg, then PATH.
	FFprobePath string
}

// Source implements ports.VideoSource on top of ffmpeg.
type Source struct {
	opts   Options
	logger ports.Logger
	run    Runner
	lookup func(custom string) (string, error)

	mu         sync.Mutex
	ffmpeg     string
	path       string
	durationMs int64
}

// New creates a new ffmpeg-backed source.
func New(opts Options, logger ports.Logger) *Source {
	return &Source{
		opts:   opts,
		logger: logger.WithComponent("ffmpeg"),
		run:    runCommand,
		lookup: findFFmpeg,
	}
}

// Open locates ffmpeg and determines the duration of the video at path.
func (s *Source) Open(ctx context.Context, path string) (int64, error) {
	if path == "" {
		return 0, fmt.Errorf("%w: empty path", pipeline.ErrOpen)
	}
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("%w: %w", pipeline.ErrOpen, err)
	}

	ffmpeg, err := s.lookup(s.opts.FFmpegPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", pipeline.ErrOpen, err)
	}
	s.logger.Debug("Found ffmpeg at %s", ffmpeg)

	durationMs, err := s.probeDuration(ctx, ffmpeg, path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", pipeline.ErrOpen, err)
	}

	s.mu.Lock()
	s.ffmpeg = ffmpeg
	s.path = path
	s.durationMs = durationMs
	s.mu.Unlock()

	return durationMs, nil
}

// probeDuration reads MP4 headers directly and falls back to ffprobe for
// other containers or when the headers carry no duration.
func (s *Source) probeDuration(ctx context.Context, ffmpeg, path string) (int64, error) {
	if mp4probe.IsMP4(path) {
		info, err := mp4probe.ProbeFile(path)
		if err == nil {
			s.logger.Debug("Probed %s: %s, %d ms", filepath.Base(path), string(info.Codec), info.DurationMs)
			return info.DurationMs, nil
		}
	}

	ffprobe := s.opts.FFprobePath
	if ffprobe == "" {
		ffprobe = siblingBinary(ffmpeg, "ffprobe")
	}
	out, err := s.run(ctx, ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}
	return parseProbeDuration(out)
}

// SeekAndDecode extracts the frame at timestampMs as an image.
func (s *Source) SeekAndDecode(ctx context.Context, timestampMs int64, timeout time.Duration) (image.Image, error) {
	s.mu.Lock()
	ffmpeg, path := s.ffmpeg, s.path
	s.mu.Unlock()
	if path == "" {
		return nil, fmt.Errorf("%w: %w", pipeline.ErrDecode, ErrNotOpen)
	}

	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	s.logger.Debug("Seeking to %d ms", timestampMs)
	out, err := s.run(runCtx, ffmpeg, frameArgs(path, timestampMs)...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: no frame at %d ms after %s", pipeline.ErrSeekTimeout, timestampMs, timeout)
		}
		return nil, fmt.Errorf("%w: %w", pipeline.ErrDecode, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no frame at %d ms", pipeline.ErrDecode, timestampMs)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pipeline.ErrDecode, err)
	}
	return img, nil
}

// Close forgets the opened video. No process outlives a capture call.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = ""
	s.durationMs = 0
	return nil
}

// frameArgs seeks on the input side, which is fast and accurate on modern
// ffmpeg builds.
func frameArgs(path string, timestampMs int64) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-ss", formatSeconds(timestampMs),
		"-i", path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	}
}

// formatSeconds renders milliseconds as a decimal seconds string.
func formatSeconds(ms int64) string {
	return fmt.Sprintf("%d.%03d", ms/1000, ms%1000)
}

func parseProbeDuration(out []byte) (int64, error) {
	var probe struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(out, &probe); err != nil {
		return 0, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if probe.Format.Duration == "" || probe.Format.Duration == "N/A" {
		return 0, errors.New("ffprobe reported no duration")
	}
	sec, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", probe.Format.Duration, err)
	}
	ms := int64(sec * 1000)
	if ms <= 0 {
		return 0, fmt.Errorf("non-positive duration %q", probe.Format.Duration)
	}
	return ms, nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

func siblingBinary(ffmpeg, name string) string {
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	candidate := filepath.Join(filepath.Dir(ffmpeg), name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	if p, err := exec.LookPath(name); err == nil {
		return p
	}
	return candidate
}

// findFFmpeg checks the custom path, then PATH, then common install locations.
func findFFmpeg(custom string) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, custom)
	}

	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var commonPaths []string
	if runtime.GOOS == "windows" {
		commonPaths = []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
		}
	} else {
		commonPaths = []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/opt/homebrew/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}
	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFmpegNotFound
}

// Available reports whether an ffmpeg binary can be located.
func Available(custom string) bool {
	_, err := findFFmpeg(custom)
	return err == nil
}

// Ensure Source implements ports.VideoSource
var _ ports.VideoSource = (*Source)(nil)
