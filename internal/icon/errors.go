package icon

import (
	"errors"
	"fmt"
)

// Error kinds reported by Extract. Use errors.Is to test for them.
var (
	// ErrFileNotFound means the input path does not exist.
	ErrFileNotFound = errors.New("input file not found")

	// ErrUnreadableImage means the input exists but could not be opened or
	// decoded as a raster image.
	ErrUnreadableImage = errors.New("unreadable image")

	// ErrInvalidColorFormat means the target color is not "#RRGGBB".
	ErrInvalidColorFormat = errors.New("invalid color format")

	// ErrNoContentDetected means no pixel fell below the brightness
	// threshold. It is an expected outcome: nothing was written and the
	// caller may retry with a different threshold.
	ErrNoContentDetected = errors.New("no content detected")

	// ErrWriteFailure means the output file could not be created or written.
	ErrWriteFailure = errors.New("write failure")
)

// Error describes a failed extraction step.
//
// Kind is one of the Err* values above; Err is the underlying cause (nil for
// ErrNoContentDetected). errors.Is matches against both.
type Error struct {
	Op   string // "load", "parse color", "detect", "write"
	Path string // file involved, if any
	Kind error
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NoContentError is returned for ErrNoContentDetected. It carries the
// brightness analysis of the input so callers can suggest a new threshold
// without loading the image again.
type NoContentError struct {
	Threshold float64
	Analysis  *Analysis
}

func (e *NoContentError) Error() string {
	return fmt.Sprintf("detect: %v at threshold %g", ErrNoContentDetected, e.Threshold)
}

func (e *NoContentError) Is(target error) bool {
	return target == ErrNoContentDetected
}
