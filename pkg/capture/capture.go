// Package capture wraps a single external stream-to-file capture
// operation. Any adapter that writes a playable audio file to the given
// path satisfies the contract; the bundled implementation shells out to
// ffmpeg and stream-copies the source without re-encoding.
package capture

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"
)

// Adapter starts captures. One Session per (source, output) pair;
// concurrency control across sources is the caller's business.
type Adapter interface {
	Start(ctx context.Context, sourceURL, outputPath string) (Session, error)
}

// Session is a single in-flight capture.
type Session interface {
	// Stop terminates the capture and finalizes the output file. It is
	// safe to call more than once; later calls return the first result.
	Stop() error
	// Done is closed when the capture process has exited, for whatever
	// reason.
	Done() <-chan struct{}
}

// CaptureError reports a failed capture start or stop.
type CaptureError struct {
	Source string
	Output string
	Err    error
	Stderr string
}

func (e *CaptureError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("capture of %s failed: %v (stderr: %s)", e.Source, e.Err, e.Stderr)
	}
	return fmt.Sprintf("capture of %s failed: %v", e.Source, e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}

// FFmpegAdapter captures network audio streams with ffmpeg.
type FFmpegAdapter struct {
	ffmpegPath string
	stopGrace  time.Duration
}

// NewFFmpegAdapter creates an adapter using the given ffmpeg binary.
// stopGrace is how long Stop waits for ffmpeg to finalize the file
// after an interrupt before killing it.
func NewFFmpegAdapter(ffmpegPath string, stopGrace time.Duration) (*FFmpegAdapter, error) {
	resolved, err := exec.LookPath(ffmpegPath)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found at %s: %w", ffmpegPath, err)
	}
	if stopGrace <= 0 {
		stopGrace = 10 * time.Second
	}
	return &FFmpegAdapter{ffmpegPath: resolved, stopGrace: stopGrace}, nil
}

// Start begins capturing sourceURL into outputPath.
func (a *FFmpegAdapter) Start(ctx context.Context, sourceURL, outputPath string) (Session, error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, &CaptureError{Source: sourceURL, Output: outputPath, Err: err}
	}

	// -c copy keeps the stream's own encoding; finalizing on SIGINT is
	// what makes the file playable after Stop.
	cmd := exec.Command(a.ffmpegPath,
		"-hide_banner",
		"-nostdin",
		"-i", sourceURL,
		"-c", "copy",
		"-y", outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, &CaptureError{Source: sourceURL, Output: outputPath, Err: err, Stderr: stderr.String()}
	}

	s := &ffmpegSession{
		cmd:       cmd,
		stderr:    &stderr,
		source:    sourceURL,
		output:    outputPath,
		stopGrace: a.stopGrace,
		done:      make(chan struct{}),
	}
	go func() {
		s.waitErr = cmd.Wait()
		close(s.done)
	}()

	// Catch immediate failures (bad URL, unreachable host) so the caller
	// gets a start error instead of a silent dead session.
	select {
	case <-s.done:
		if s.waitErr != nil {
			return nil, &CaptureError{Source: sourceURL, Output: outputPath, Err: s.waitErr, Stderr: tail(stderr.String(), 512)}
		}
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-s.done
		return nil, &CaptureError{Source: sourceURL, Output: outputPath, Err: ctx.Err()}
	case <-time.After(2 * time.Second):
	}

	return s, nil
}

type ffmpegSession struct {
	cmd       *exec.Cmd
	stderr    *bytes.Buffer
	source    string
	output    string
	stopGrace time.Duration
	done      chan struct{}
	waitErr   error

	stopOnce sync.Once
	stopErr  error
}

func (s *ffmpegSession) Done() <-chan struct{} {
	return s.done
}

func (s *ffmpegSession) Stop() error {
	s.stopOnce.Do(func() {
		select {
		case <-s.done:
			// Process already exited; the capture died mid-slot.
			if s.waitErr != nil {
				s.stopErr = &CaptureError{Source: s.source, Output: s.output, Err: s.waitErr, Stderr: tail(s.stderr.String(), 512)}
			}
			return
		default:
		}

		// Interrupt lets ffmpeg write trailers and close the file. Kill
		// only after the grace window.
		if err := s.cmd.Process.Signal(os.Interrupt); err != nil {
			_ = s.cmd.Process.Kill()
		}

		select {
		case <-s.done:
		case <-time.After(s.stopGrace):
			_ = s.cmd.Process.Kill()
			<-s.done
			s.stopErr = &CaptureError{
				Source: s.source,
				Output: s.output,
				Err:    fmt.Errorf("capture did not stop within %s, killed", s.stopGrace),
				Stderr: tail(s.stderr.String(), 512),
			}
		}
	})
	return s.stopErr
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
