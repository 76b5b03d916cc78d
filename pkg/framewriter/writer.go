// Package framewriter turns captured frames into image files on disk.
package framewriter

import (
	"fmt"
	"image"
	"path/filepath"
	"strconv"

	"github.com/user/vidsnap/pkg/pipeline"
	"github.com/user/vidsnap/pkg/ports"
)

// timestampDigits covers videos up to ~277 hours.
const timestampDigits = 9

// Writer encodes frames and publishes them atomically.
type Writer struct {
	fs     ports.FileSystem
	codec  ports.ImageCodec
	logger ports.Logger
}

// New creates a new Writer.
func New(fs ports.FileSystem, codec ports.ImageCodec, logger ports.Logger) *Writer {
	return &Writer{
		fs:     fs,
		codec:  codec,
		logger: logger.WithComponent("writer"),
	}
}

// Write encodes frame according to job and stores it under the project
// directory. It returns the written path.
func (w *Writer) Write(frame pipeline.CapturedFrame, job pipeline.ExportJob) (string, error) {
	if !frame.Valid() {
		return "", fmt.Errorf("%w: empty image at %d ms", pipeline.ErrInvalidFrame, frame.TimestampMs)
	}

	dir := ProjectDir(job)
	if err := w.fs.MkdirAll(dir); err != nil {
		return "", fmt.Errorf("%w: create %s: %w", pipeline.ErrWrite, dir, err)
	}

	img := frame.Image
	if width, height, ok := scaledSize(img.Bounds(), job.MaxWidth); ok {
		img = w.codec.ResizeImage(img, width, height)
	}
	if job.Stamp {
		img = w.codec.StampText(img, FormatTimestamp(frame.TimestampMs))
	}

	data, err := w.codec.EncodeImage(img, job.Format, job.Quality)
	if err != nil {
		return "", fmt.Errorf("%w: encode: %w", pipeline.ErrWrite, err)
	}

	path := Path(job, frame)
	if err := w.fs.WriteFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("%w: %w", pipeline.ErrWrite, err)
	}

	w.logger.Debug("Saved %s", path)
	return path, nil
}

// ProjectDir returns the directory all files of job are written to.
func ProjectDir(job pipeline.ExportJob) string {
	return filepath.Join(job.ExportDir, job.ProjectName)
}

// Path returns the output path of frame, e.g. out/trip/trip_000012500.jpg.
// Keys are zero-padded so lexicographic order equals capture order.
func Path(job pipeline.ExportJob, frame pipeline.CapturedFrame) string {
	var key string
	switch job.Naming {
	case pipeline.NamingSequence:
		width := max(4, len(strconv.Itoa(frame.Total)))
		key = fmt.Sprintf("%0*d", width, frame.Index)
	default:
		key = fmt.Sprintf("%0*d", timestampDigits, frame.TimestampMs)
	}
	name := fmt.Sprintf("%s_%s.%s", job.ProjectName, key, job.Format)
	return filepath.Join(ProjectDir(job), name)
}

// FormatTimestamp renders milliseconds as HH:MM:SS.mmm.
func FormatTimestamp(ms int64) string {
	h := ms / 3600000
	m := ms / 60000 % 60
	s := ms / 1000 % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms%1000)
}

// scaledSize returns the size b scales to so it is at most maxWidth wide,
// keeping the aspect ratio. ok is false when no scaling is needed.
func scaledSize(b image.Rectangle, maxWidth int) (width, height int, ok bool) {
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return b.Dx(), b.Dy(), false
	}
	return maxWidth, max(b.Dy()*maxWidth/b.Dx(), 1), true
}
