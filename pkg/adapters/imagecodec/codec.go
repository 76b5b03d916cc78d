// Package imagecodec encodes, scales and labels exported frames using gg
// and golang.org/x/image.
package imagecodec

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/user/vidsnap/pkg/ports"
)

const (
	stampPadding = 4.0
	stampMargin  = 8.0
)

var (
	stampBackground = color.RGBA{R: 0, G: 0, B: 0, A: 160}
	stampForeground = color.White
)

// Codec implements ports.ImageCodec.
type Codec struct {
	// FontPath optionally points at a TrueType font for stamps.
	// The built-in bitmap face is used when empty or unloadable.
	FontPath string
	FontSize float64
}

// New creates a new Codec.
func New() *Codec {
	return &Codec{FontSize: 14}
}

// EncodeImage encodes an image to the specified format.
func (c *Codec) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		if quality < 1 || quality > 100 {
			quality = jpeg.DefaultQuality
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	case ports.FormatBMP:
		if err := bmp.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode BMP: %w", err)
		}
	case ports.FormatTIFF:
		if err := tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return nil, fmt.Errorf("encode TIFF: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (c *Codec) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// StampText draws text on a translucent box in the bottom-left corner of a
// copy of img. The source image is not modified.
func (c *Codec) StampText(img image.Image, text string) image.Image {
	if text == "" {
		return img
	}

	dc := gg.NewContextForImage(img)
	if c.FontPath != "" {
		// Keep the default face when the font cannot be loaded
		_ = dc.LoadFontFace(c.FontPath, c.FontSize)
	}

	w, h := dc.MeasureString(text)
	boxW := w + 2*stampPadding
	boxH := h + 2*stampPadding
	x := stampMargin
	y := float64(dc.Height()) - stampMargin - boxH

	dc.SetColor(stampBackground)
	dc.DrawRectangle(x, y, boxW, boxH)
	dc.Fill()

	dc.SetColor(stampForeground)
	dc.DrawStringAnchored(text, x+stampPadding, y+boxH/2, 0, 0.5)

	return dc.Image()
}

// Ensure Codec implements ports.ImageCodec
var _ ports.ImageCodec = (*Codec)(nil)
