package audio

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrFFmpegNotFound   = errors.New("ffmpeg binary not found")
	ErrFFprobeNotFound  = errors.New("ffprobe binary not found")
	ErrInvalidAudioFile = errors.New("invalid or unsupported audio file")
	ErrUnknownOperation = errors.New("unknown transform operation")
)

// ProcessingError represents an error from the external audio engine.
type ProcessingError struct {
	Operation string // the engine step that failed (e.g. "probe", "trim")
	File      string // the file being processed
	Err       error  // the underlying error
	Stderr    string // stderr output from ffmpeg/ffprobe
}

func (e *ProcessingError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("audio engine %s failed for %s: %v (stderr: %s)", e.Operation, e.File, e.Err, e.Stderr)
	}
	return fmt.Sprintf("audio engine %s failed for %s: %v", e.Operation, e.File, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// NewProcessingError creates a new ProcessingError
func NewProcessingError(operation, file string, err error, stderr string) *ProcessingError {
	return &ProcessingError{
		Operation: operation,
		File:      file,
		Err:       err,
		Stderr:    stderr,
	}
}
