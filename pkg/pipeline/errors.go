package pipeline

import (
	"context"
	"errors"
)

var (
	// ErrInvalidConfig is returned when job parameters are unusable.
	// It is fatal: the job stops before any capture.
	ErrInvalidConfig = errors.New("vidsnap: invalid config")

	// ErrOpen is returned when the video cannot be opened. Fatal.
	ErrOpen = errors.New("vidsnap: cannot open video")

	// ErrSeekTimeout is returned when a seek+decode exceeds its timeout.
	ErrSeekTimeout = errors.New("vidsnap: seek timeout")

	// ErrDecode is returned when a frame cannot be decoded.
	ErrDecode = errors.New("vidsnap: decode failed")

	// ErrInvalidFrame is returned when a decoded frame is empty or has zero size.
	ErrInvalidFrame = errors.New("vidsnap: invalid frame")

	// ErrWrite is returned when a frame cannot be written to disk.
	ErrWrite = errors.New("vidsnap: write failed")

	// ErrAlreadyStarted is returned when a controller is started twice.
	ErrAlreadyStarted = errors.New("vidsnap: export already started")
)

// ErrorKind classifies export errors.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindInvalidConfig
	KindOpen
	KindSeekTimeout
	KindDecode
	KindInvalidFrame
	KindWrite
	KindCancelled
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidConfig:
		return "InvalidConfig"
	case KindOpen:
		return "OpenError"
	case KindSeekTimeout:
		return "SeekTimeout"
	case KindDecode:
		return "DecodeError"
	case KindInvalidFrame:
		return "InvalidFrame"
	case KindWrite:
		return "WriteError"
	case KindCancelled:
		return "Cancelled"
	default:
		return "unknown"
	}
}

// Fatal reports whether errors of this kind abort the whole job.
func (k ErrorKind) Fatal() bool {
	return k == KindInvalidConfig || k == KindOpen
}

// KindOf maps err to its kind. Errors outside the taxonomy are
// treated as decode failures, since they come from the backend.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidConfig):
		return KindInvalidConfig
	case errors.Is(err, ErrOpen):
		return KindOpen
	case errors.Is(err, ErrSeekTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindSeekTimeout
	case errors.Is(err, ErrInvalidFrame):
		return KindInvalidFrame
	case errors.Is(err, ErrWrite):
		return KindWrite
	case errors.Is(err, context.Canceled):
		return KindCancelled
	default:
		return KindDecode
	}
}
