package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Engine wraps the external ffmpeg/ffprobe binaries behind the audio
// engine boundary: Probe for duration metadata, Transform for the
// destructive edits. Transform always writes to a distinct output path;
// it never mutates the input in place.
type Engine struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
}

// New creates a new Engine instance
func New(ffmpegPath, ffprobePath string, timeout time.Duration) *Engine {
	return &Engine{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
	}
}

// ValidateBinaries checks if ffmpeg and ffprobe are available
func (e *Engine) ValidateBinaries() error {
	if _, err := exec.LookPath(e.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, e.ffmpegPath)
	}
	if _, err := exec.LookPath(e.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, e.ffprobePath)
	}
	return nil
}

// Transform applies op to inputPath and writes the result to outputPath.
// The external process is killed when the configured timeout elapses.
func (e *Engine) Transform(ctx context.Context, op Operation, inputPath, outputPath string, params TransformParams) error {
	args, err := e.buildTransformArgs(ctx, inputPath, outputPath, op, params)
	if err != nil {
		return err
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return NewProcessingError(string(op), inputPath, err, tail(stderr.String(), 512))
	}
	return nil
}

// buildTransformArgs assembles the ffmpeg argument list for an operation.
func (e *Engine) buildTransformArgs(ctx context.Context, inputPath, outputPath string, op Operation, params TransformParams) ([]string, error) {
	switch op {
	case OpTrim:
		if params.TrimEnd <= params.TrimStart {
			return nil, NewProcessingError(string(op), inputPath,
				fmt.Errorf("invalid trim range: start=%g end=%g", params.TrimStart, params.TrimEnd), "")
		}
		return []string{
			"-i", inputPath,
			"-ss", fmt.Sprintf("%g", params.TrimStart),
			"-to", fmt.Sprintf("%g", params.TrimEnd),
			"-c", "copy",
			"-y", outputPath,
		}, nil

	case OpFade:
		// The fade-out start offset depends on the file's duration.
		meta, err := e.Probe(ctx, inputPath)
		if err != nil {
			return nil, err
		}
		var filters []string
		if params.FadeIn > 0 {
			filters = append(filters, fmt.Sprintf("afade=t=in:st=0:d=%g", params.FadeIn))
		}
		if params.FadeOut > 0 {
			outStart := meta.Duration - params.FadeOut
			if outStart < 0 {
				outStart = 0
			}
			filters = append(filters, fmt.Sprintf("afade=t=out:st=%g:d=%g", outStart, params.FadeOut))
		}
		if len(filters) == 0 {
			return nil, NewProcessingError(string(op), inputPath,
				fmt.Errorf("no fade requested"), "")
		}
		filter := strings.Join(filters, ",")
		return []string{
			"-i", inputPath,
			"-af", filter,
			"-y", outputPath,
		}, nil

	case OpNormalize:
		return []string{
			"-i", inputPath,
			"-af", fmt.Sprintf("loudnorm=I=%g:TP=-1.5:LRA=11", params.TargetLoudness),
			"-y", outputPath,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
	}
}

// tail returns at most the last n bytes of s. ffmpeg stderr can be long
// and only the end carries the failure reason.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
