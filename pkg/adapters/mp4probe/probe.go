// Package mp4probe reads codec and duration from MP4 containers without
// decoding media data.
package mp4probe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Eyevinn/mp4ff/mp4"
)

// Codec represents a video codec type.
type Codec string

const (
	CodecH264    Codec = "h264"
	CodecHEVC    Codec = "hevc"
	CodecAV1     Codec = "av1"
	CodecVP9     Codec = "vp9"
	CodecUnknown Codec = "unknown"
)

var (
	// ErrNoVideoTrack is returned when the container holds no video track.
	ErrNoVideoTrack = errors.New("mp4probe: no video track found")
	// ErrNoDuration is returned when neither the movie header nor the
	// track headers carry a duration.
	ErrNoDuration = errors.New("mp4probe: duration not available")
)

// Info is the probe result.
type Info struct {
	Codec      Codec
	DurationMs int64
	Fragmented bool
}

// IsMP4 reports whether path has an extension of the ISO BMFF family.
func IsMP4(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".m4v", ".mov", ".3gp":
		return true
	}
	return false
}

// ProbeFile probes the MP4 file at path.
func ProbeFile(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return Probe(f)
}

// ProbeBytes probes MP4 data held in memory.
func ProbeBytes(data []byte) (Info, error) {
	return Probe(bytes.NewReader(data))
}

// Probe reads the box structure from r. Media data is skipped.
func Probe(r io.ReadSeeker) (Info, error) {
	file, err := mp4.DecodeFile(r, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return Info{}, fmt.Errorf("decode mp4: %w", err)
	}

	moov := file.Moov
	if file.IsFragmented() && file.Init != nil && file.Init.Moov != nil {
		moov = file.Init.Moov
	}
	if moov == nil {
		return Info{}, fmt.Errorf("decode mp4: %w", ErrNoVideoTrack)
	}

	info := Info{Fragmented: file.IsFragmented()}

	video := videoTrack(moov)
	if video == nil {
		return Info{}, ErrNoVideoTrack
	}
	info.Codec = codecOf(video)

	info.DurationMs = movieDurationMs(moov)
	if info.DurationMs <= 0 {
		info.DurationMs = trackDurationMs(video)
	}
	if info.DurationMs <= 0 {
		return info, ErrNoDuration
	}
	return info, nil
}

func videoTrack(moov *mp4.MoovBox) *mp4.TrakBox {
	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
			continue
		}
		if trak.Mdia.Hdlr.HandlerType == "vide" {
			return trak
		}
	}
	return nil
}

func codecOf(trak *mp4.TrakBox) Codec {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return CodecUnknown
	}

	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		switch child.Type() {
		case "avc1", "avc3":
			return CodecH264
		case "hvc1", "hev1":
			return CodecHEVC
		case "av01":
			return CodecAV1
		case "vp09":
			return CodecVP9
		}
	}
	return CodecUnknown
}

// movieDurationMs prefers the fragment duration of fragmented files, which
// is the only place their total length is recorded up front.
func movieDurationMs(moov *mp4.MoovBox) int64 {
	if moov.Mvhd == nil || moov.Mvhd.Timescale == 0 {
		return 0
	}
	timescale := uint64(moov.Mvhd.Timescale)

	if moov.Mvex != nil && moov.Mvex.Mehd != nil && moov.Mvex.Mehd.FragmentDuration > 0 {
		return toMs(uint64(moov.Mvex.Mehd.FragmentDuration), timescale)
	}
	return toMs(moov.Mvhd.Duration, timescale)
}

func trackDurationMs(trak *mp4.TrakBox) int64 {
	if trak.Mdia == nil || trak.Mdia.Mdhd == nil || trak.Mdia.Mdhd.Timescale == 0 {
		return 0
	}
	return toMs(trak.Mdia.Mdhd.Duration, uint64(trak.Mdia.Mdhd.Timescale))
}

func toMs(units, timescale uint64) int64 {
	return int64(units * 1000 / timescale)
}
