// Package mpegsource decodes MPEG-1 program streams in pure Go using
// gen2brain/mpeg. It needs no external binaries.
package mpegsource

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gen2brain/mpeg"
	"golang.org/x/image/draw"

	"github.com/user/vidsnap/pkg/pipeline"
	"github.com/user/vidsnap/pkg/ports"
)

// ErrNotOpen is returned when a capture is requested before Open.
var ErrNotOpen = errors.New("mpegsource: video not open")

// IsMPEG reports whether path has an MPEG-1 program stream extension.
func IsMPEG(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mpg", ".mpeg", ".m1v":
		return true
	}
	return false
}

// Source implements ports.VideoSource with the gen2brain/mpeg decoder.
//
// The decoder is not reentrant, so every seek holds decodeMu. A seek that
// times out keeps running in the background; the next call waits for it
// before touching the decoder.
type Source struct {
	logger ports.Logger

	decodeMu sync.Mutex
	file     io.Closer
	dec      *mpeg.MPEG
}

// New creates a new MPEG-1 source.
func New(logger ports.Logger) *Source {
	return &Source{logger: logger.WithComponent("mpeg")}
}

// Open opens the program stream at path and reads its headers.
func (s *Source) Open(ctx context.Context, path string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", pipeline.ErrOpen, err)
	}

	dec, err := mpeg.New(f)
	if err != nil {
		f.Close()
		return 0, fmt.Errorf("%w: %w", pipeline.ErrOpen, err)
	}
	if !dec.HasHeaders() {
		f.Close()
		return 0, fmt.Errorf("%w: no MPEG headers in %s", pipeline.ErrOpen, path)
	}
	dec.SetAudioEnabled(false)

	durationMs := dec.Duration().Milliseconds()
	if durationMs <= 0 {
		f.Close()
		return 0, fmt.Errorf("%w: unknown duration", pipeline.ErrOpen)
	}

	s.decodeMu.Lock()
	s.closeLocked()
	s.file = f
	s.dec = dec
	s.decodeMu.Unlock()

	return durationMs, nil
}

type decodeResult struct {
	img image.Image
	err error
}

// SeekAndDecode seeks to the frame nearest timestampMs and returns a copy
// of it. The copy stays valid after the decoder advances.
func (s *Source) SeekAndDecode(ctx context.Context, timestampMs int64, timeout time.Duration) (image.Image, error) {
	done := make(chan decodeResult, 1)
	go func() {
		done <- s.decode(timestampMs)
	}()

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case r := <-done:
		return r.img, r.err
	case <-expired:
		return nil, fmt.Errorf("%w: no frame at %d ms after %s", pipeline.ErrSeekTimeout, timestampMs, timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Source) decode(timestampMs int64) decodeResult {
	s.decodeMu.Lock()
	defer s.decodeMu.Unlock()

	if s.dec == nil {
		return decodeResult{err: fmt.Errorf("%w: %w", pipeline.ErrDecode, ErrNotOpen)}
	}

	s.logger.Debug("Seeking to %d ms", timestampMs)
	frame := s.dec.SeekFrame(time.Duration(timestampMs)*time.Millisecond, true)
	if frame == nil {
		return decodeResult{err: fmt.Errorf("%w: no frame at %d ms", pipeline.ErrDecode, timestampMs)}
	}

	src := frame.YCbCr()
	if src == nil || src.Bounds().Empty() {
		return decodeResult{err: fmt.Errorf("%w: empty frame at %d ms", pipeline.ErrDecode, timestampMs)}
	}

	// Frame planes are reused by the decoder
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return decodeResult{img: dst}
}

// Close releases the decoder and the underlying file, waiting for any
// in-flight decode first.
func (s *Source) Close() error {
	s.decodeMu.Lock()
	defer s.decodeMu.Unlock()
	return s.closeLocked()
}

func (s *Source) closeLocked() error {
	s.dec = nil
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// Ensure Source implements ports.VideoSource
var _ ports.VideoSource = (*Source)(nil)
