package mocks

import (
	"image"
	"sync"

	"github.com/user/vidsnap/pkg/ports"
)

// ImageCodec is a mock implementation of ports.ImageCodec.
type ImageCodec struct {
	EncodeImageFunc func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc func(img image.Image, width, height int) image.Image
	StampTextFunc   func(img image.Image, text string) image.Image

	mu          sync.Mutex
	StampedText []string
}

func (m *ImageCodec) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{0xFF, 0xD8, 0xFF}, nil
}

func (m *ImageCodec) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func (m *ImageCodec) StampText(img image.Image, text string) image.Image {
	m.mu.Lock()
	m.StampedText = append(m.StampedText, text)
	m.mu.Unlock()
	if m.StampTextFunc != nil {
		return m.StampTextFunc(img, text)
	}
	return img
}

var _ ports.ImageCodec = (*ImageCodec)(nil)
