package ports

import (
	"image"
)

// ImageCodec abstracts still-image processing for exported frames.
type ImageCodec interface {
	// EncodeImage encodes an image to the specified format.
	// quality is only used by lossy formats.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image

	// StampText draws a small label in the bottom-left corner of a copy of img.
	StampText(img image.Image, text string) image.Image
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
	FormatBMP
	FormatTIFF
)

// String returns the file extension used for the format.
func (f ImageFormat) String() string {
	switch f {
	case FormatJPEG:
		return "jpg"
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return "unknown"
	}
}

// ParseImageFormat parses a format name or file extension.
// The second result is false for unsupported names.
func ParseImageFormat(s string) (ImageFormat, bool) {
	switch s {
	case "jpg", "jpeg", ".jpg", ".jpeg":
		return FormatJPEG, true
	case "png", ".png":
		return FormatPNG, true
	case "bmp", ".bmp":
		return FormatBMP, true
	case "tif", "tiff", ".tif", ".tiff":
		return FormatTIFF, true
	default:
		return FormatJPEG, false
	}
}
