package mocks

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/user/vidsnap/pkg/ports"
)

// VideoSource is a mock implementation of ports.VideoSource.
// Without SeekAndDecodeFunc every seek returns a small solid image.
type VideoSource struct {
	DurationMs int64

	OpenFunc          func(ctx context.Context, path string) (int64, error)
	SeekAndDecodeFunc func(ctx context.Context, timestampMs int64, timeout time.Duration) (image.Image, error)
	CloseFunc         func() error

	mu         sync.Mutex
	OpenedPath string
	Seeks      []int64
	Closed     bool
}

func (m *VideoSource) Open(ctx context.Context, path string) (int64, error) {
	m.mu.Lock()
	m.OpenedPath = path
	m.mu.Unlock()
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, path)
	}
	return m.DurationMs, nil
}

func (m *VideoSource) SeekAndDecode(ctx context.Context, timestampMs int64, timeout time.Duration) (image.Image, error) {
	m.mu.Lock()
	m.Seeks = append(m.Seeks, timestampMs)
	m.mu.Unlock()
	if m.SeekAndDecodeFunc != nil {
		return m.SeekAndDecodeFunc(ctx, timestampMs, timeout)
	}
	return image.NewRGBA(image.Rect(0, 0, 16, 9)), nil
}

func (m *VideoSource) Close() error {
	m.mu.Lock()
	m.Closed = true
	m.mu.Unlock()
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// SeekCount returns the number of SeekAndDecode calls so far.
func (m *VideoSource) SeekCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Seeks)
}

var _ ports.VideoSource = (*VideoSource)(nil)
