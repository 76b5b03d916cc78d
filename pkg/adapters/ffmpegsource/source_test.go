package ffmpegsource

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/user/vidsnap/pkg/adapters/logger"
	"github.com/user/vidsnap/pkg/pipeline"
)

func newTestSource(t *testing.T, run Runner) (*Source, string) {
	t.Helper()
	video := filepath.Join(t.TempDir(), "clip.mkv")
	if err := os.WriteFile(video, []byte("not really a video"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	s := New(Options{FFprobePath: "ffprobe"}, logger.NewNoop())
	s.lookup = func(string) (string, error) { return "ffmpeg", nil }
	s.run = run
	return s, video
}

func pngFrame(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 6))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0.000"},
		{5, "0.005"},
		{1500, "1.500"},
		{3723004, "3723.004"},
	}

	for _, tt := range tests {
		if got := formatSeconds(tt.ms); got != tt.want {
			t.Errorf("formatSeconds(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestParseProbeDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"seconds", `{"format":{"duration":"12.345000"}}`, 12345, false},
		{"long", `{"format":{"duration":"3600.0"}}`, 3600000, false},
		{"missing", `{"format":{}}`, 0, true},
		{"not available", `{"format":{"duration":"N/A"}}`, 0, true},
		{"zero", `{"format":{"duration":"0.0"}}`, 0, true},
		{"not json", `duration=1.0`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProbeDuration([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestFrameArgs(t *testing.T) {
	args := frameArgs("/videos/a.mkv", 2500)

	idx := slices.Index(args, "-ss")
	if idx < 0 || args[idx+1] != "2.500" {
		t.Errorf("expected -ss 2.500 in %v", args)
	}
	if slices.Index(args, "-ss") > slices.Index(args, "-i") {
		t.Errorf("expected input seeking (-ss before -i) in %v", args)
	}
	if args[len(args)-1] != "-" {
		t.Errorf("expected output to stdout, got %v", args)
	}
}

func TestSource_OpenUsesFFprobe(t *testing.T) {
	var calls []string
	s, video := newTestSource(t, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, name)
		return []byte(`{"format":{"duration":"42.5"}}`), nil
	})

	d, err := s.Open(context.Background(), video)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if d != 42500 {
		t.Errorf("expected 42500 ms, got %d", d)
	}
	if len(calls) != 1 || calls[0] != "ffprobe" {
		t.Errorf("expected a single ffprobe call, got %v", calls)
	}
}

func TestSource_OpenErrors(t *testing.T) {
	s, video := newTestSource(t, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	})

	if _, err := s.Open(context.Background(), ""); !errors.Is(err, pipeline.ErrOpen) {
		t.Errorf("empty path: expected ErrOpen, got %v", err)
	}
	if _, err := s.Open(context.Background(), video+".missing"); !errors.Is(err, pipeline.ErrOpen) {
		t.Errorf("missing file: expected ErrOpen, got %v", err)
	}
	if _, err := s.Open(context.Background(), video); !errors.Is(err, pipeline.ErrOpen) {
		t.Errorf("probe failure: expected ErrOpen, got %v", err)
	}

	s.lookup = func(string) (string, error) { return "", ErrFFmpegNotFound }
	_, err := s.Open(context.Background(), video)
	if !errors.Is(err, pipeline.ErrOpen) || !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("no ffmpeg: expected ErrOpen wrapping ErrFFmpegNotFound, got %v", err)
	}
}

func TestSource_SeekAndDecode(t *testing.T) {
	frame := pngFrame(t)
	s, video := newTestSource(t, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		if name == "ffprobe" {
			return []byte(`{"format":{"duration":"10"}}`), nil
		}
		return frame, nil
	})

	if _, err := s.SeekAndDecode(context.Background(), 0, time.Second); !errors.Is(err, ErrNotOpen) {
		t.Errorf("expected ErrNotOpen before Open, got %v", err)
	}

	if _, err := s.Open(context.Background(), video); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	img, err := s.SeekAndDecode(context.Background(), 1000, time.Second)
	if err != nil {
		t.Fatalf("SeekAndDecode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("expected 8x6, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestSource_SeekAndDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		run     Runner
		timeout time.Duration
		want    error
	}{
		{
			name: "timeout",
			run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
			timeout: 20 * time.Millisecond,
			want:    pipeline.ErrSeekTimeout,
		},
		{
			name: "process failure",
			run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
				return nil, errors.New("exit status 1: invalid data")
			},
			timeout: time.Second,
			want:    pipeline.ErrDecode,
		},
		{
			name: "empty output",
			run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
				return nil, nil
			},
			timeout: time.Second,
			want:    pipeline.ErrDecode,
		},
		{
			name: "corrupt frame",
			run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
				return []byte("garbage"), nil
			},
			timeout: time.Second,
			want:    pipeline.ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, video := newTestSource(t, func(ctx context.Context, name string, args ...string) ([]byte, error) {
				return []byte(`{"format":{"duration":"10"}}`), nil
			})
			if _, err := s.Open(context.Background(), video); err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			s.run = tt.run

			_, err := s.SeekAndDecode(context.Background(), 500, tt.timeout)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSource_SeekAndDecodeCancelled(t *testing.T) {
	s, video := newTestSource(t, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte(`{"format":{"duration":"10"}}`), nil
	})
	if _, err := s.Open(context.Background(), video); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	s.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.SeekAndDecode(ctx, 0, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFindFFmpeg_CustomPathMissing(t *testing.T) {
	_, err := findFFmpeg(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("expected ErrFFmpegNotFound, got %v", err)
	}
}
