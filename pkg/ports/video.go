// Package ports defines the interfaces the export engine depends on.
package ports

import (
	"context"
	"image"
	"time"
)

// VideoSource abstracts the decoding backend used to capture still frames.
// Implementations are used by a single goroutine at a time; backends are
// generally not reentrant across concurrent seeks.
type VideoSource interface {
	// Open loads the video and returns its duration in milliseconds.
	// Errors wrap pipeline.ErrOpen.
	Open(ctx context.Context, path string) (int64, error)

	// SeekAndDecode seeks to timestampMs and returns the decoded frame.
	// The call gives up after timeout and returns an error wrapping
	// pipeline.ErrSeekTimeout; other failures wrap pipeline.ErrDecode.
	SeekAndDecode(ctx context.Context, timestampMs int64, timeout time.Duration) (image.Image, error)

	// Close releases backend resources.
	Close() error
}
