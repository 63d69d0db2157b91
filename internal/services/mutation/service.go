package mutation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Catskill909/radio-sub001/internal/models"
	"github.com/Catskill909/radio-sub001/internal/services/recordings"
	"github.com/Catskill909/radio-sub001/pkg/audio"
)

var (
	// ErrInvalidFilename means the recording's file path failed safety
	// validation and no filesystem operation was attempted.
	ErrInvalidFilename = errors.New("invalid recording filename")

	// ErrNotCompleted means the recording is not in the completed state.
	ErrNotCompleted = errors.New("recording is not completed")

	// ErrMutationInProgress means another mutation holds the file.
	ErrMutationInProgress = errors.New("another mutation is in progress for this file")

	// ErrBackupFailed means the backup copy could not be created; the
	// original file was not touched.
	ErrBackupFailed = errors.New("backup failed")

	// ErrRestoreFailed means a transform failed and the backup could
	// not be restored. The backup file is preserved for manual recovery.
	ErrRestoreFailed = errors.New("restore from backup failed")
)

// Transformer runs one audio transform from src into dst.
// Satisfied by *audio.Engine.
type Transformer interface {
	Transform(ctx context.Context, op audio.Operation, src, dst string, params audio.TransformParams) error
	Probe(ctx context.Context, filePath string) (*audio.Metadata, error)
}

// Service applies destructive edits to completed recordings. Every
// mutation follows the same discipline: validate the filename, copy
// the original aside, transform into a temp file, atomically replace
// the original, then re-probe and update the stored stats. On any
// failure after backup the original is restored from the copy.
type Service interface {
	Trim(ctx context.Context, recordingID uint, startSeconds, endSeconds float64) (*models.Recording, error)
	ApplyFade(ctx context.Context, recordingID uint, fadeInSeconds, fadeOutSeconds float64) (*models.Recording, error)
	Normalize(ctx context.Context, recordingID uint, targetLoudness float64) (*models.Recording, error)
}

// ServiceImpl implements Service.
type ServiceImpl struct {
	recordings    recordings.Service
	engine        Transformer
	recordingsDir string
	backupDir     string

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewService creates a mutation service. recordingsDir bounds which
// files may be edited; backupDir receives the pre-mutation copies.
func NewService(recordingSvc recordings.Service, engine Transformer, recordingsDir, backupDir string) *ServiceImpl {
	return &ServiceImpl{
		recordings:    recordingSvc,
		engine:        engine,
		recordingsDir: recordingsDir,
		backupDir:     backupDir,
		inFlight:      make(map[string]struct{}),
	}
}

// Trim cuts the file down to the [startSeconds, endSeconds) range.
func (s *ServiceImpl) Trim(ctx context.Context, recordingID uint, startSeconds, endSeconds float64) (*models.Recording, error) {
	if startSeconds < 0 || endSeconds <= startSeconds {
		return nil, fmt.Errorf("invalid trim range [%g, %g)", startSeconds, endSeconds)
	}
	return s.mutate(ctx, recordingID, audio.OpTrim, audio.TransformParams{
		TrimStart: startSeconds,
		TrimEnd:   endSeconds,
	})
}

// ApplyFade adds fade-in and/or fade-out ramps. A zero length skips
// that side; both zero is rejected.
func (s *ServiceImpl) ApplyFade(ctx context.Context, recordingID uint, fadeInSeconds, fadeOutSeconds float64) (*models.Recording, error) {
	if fadeInSeconds < 0 || fadeOutSeconds < 0 {
		return nil, fmt.Errorf("fade lengths must be non-negative")
	}
	if fadeInSeconds == 0 && fadeOutSeconds == 0 {
		return nil, fmt.Errorf("at least one fade length must be positive")
	}
	return s.mutate(ctx, recordingID, audio.OpFade, audio.TransformParams{
		FadeIn:  fadeInSeconds,
		FadeOut: fadeOutSeconds,
	})
}

// Normalize re-encodes the file to the target integrated loudness.
func (s *ServiceImpl) Normalize(ctx context.Context, recordingID uint, targetLoudness float64) (*models.Recording, error) {
	if targetLoudness > -5 || targetLoudness < -70 {
		return nil, fmt.Errorf("target loudness %g LUFS out of range [-70, -5]", targetLoudness)
	}
	return s.mutate(ctx, recordingID, audio.OpNormalize, audio.TransformParams{
		TargetLoudness: targetLoudness,
	})
}

func (s *ServiceImpl) mutate(ctx context.Context, recordingID uint, op audio.Operation, params audio.TransformParams) (*models.Recording, error) {
	recording, err := s.recordings.Get(ctx, recordingID)
	if err != nil {
		return nil, err
	}
	if recording.Status != models.RecordingStatusCompleted {
		return nil, fmt.Errorf("%w: recording %d is %s", ErrNotCompleted, recordingID, recording.Status)
	}

	filePath, err := s.validatePath(recording.FilePath)
	if err != nil {
		return nil, err
	}

	if !s.acquire(filePath) {
		return nil, fmt.Errorf("%w: %s", ErrMutationInProgress, filepath.Base(filePath))
	}
	defer s.release(filePath)

	if err := s.mutateLocked(ctx, op, filePath, params); err != nil {
		return nil, err
	}

	// The file changed shape; the stored stats must follow.
	info, statErr := os.Stat(filePath)
	meta, probeErr := s.engine.Probe(ctx, filePath)
	if statErr != nil || probeErr != nil {
		return nil, fmt.Errorf("re-probing after %s: %w", op, errors.Join(statErr, probeErr))
	}
	if err := s.recordings.UpdateFileStats(ctx, recordingID, info.Size(), meta.Duration); err != nil {
		return nil, err
	}

	return s.recordings.Get(ctx, recordingID)
}

// mutateLocked runs the backup/transform/replace sequence. The caller
// holds the per-file lock.
func (s *ServiceImpl) mutateLocked(ctx context.Context, op audio.Operation, filePath string, params audio.TransformParams) error {
	backupPath, err := s.backup(filePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackupFailed, err)
	}

	tmpPath := filePath + ".tmp" + filepath.Ext(filePath)
	defer os.Remove(tmpPath)

	if err := s.engine.Transform(ctx, op, filePath, tmpPath, params); err != nil {
		return s.rollback(filePath, backupPath, err)
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		return s.rollback(filePath, backupPath, fmt.Errorf("replacing original: %w", err))
	}

	// Commit: the mutated file is in place, the backup is no longer
	// needed.
	os.Remove(backupPath)
	return nil
}

// rollback puts the backup copy back over the (possibly damaged)
// original. If that also fails, both errors surface together and the
// backup file stays on disk.
func (s *ServiceImpl) rollback(filePath, backupPath string, cause error) error {
	if err := os.Rename(backupPath, filePath); err != nil {
		return errors.Join(cause, fmt.Errorf("%w: %v", ErrRestoreFailed, err))
	}
	return cause
}

// backup copies the original into the backup directory before any
// write touches it.
func (s *ServiceImpl) backup(filePath string) (string, error) {
	if err := os.MkdirAll(s.backupDir, 0755); err != nil {
		return "", err
	}
	backupPath := filepath.Join(s.backupDir, filepath.Base(filePath)+".bak")

	src, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(backupPath)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(backupPath)
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(backupPath)
		return "", err
	}
	return backupPath, nil
}

// validatePath rejects anything that could escape the recordings
// directory before a single filesystem call is made.
func (s *ServiceImpl) validatePath(filePath string) (string, error) {
	base := filepath.Base(filePath)
	if base == "" || base == "." || base == ".." || base != filePath && filepath.Dir(filePath) != filepath.Clean(s.recordingsDir) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, filePath)
	}
	if strings.ContainsAny(base, "\x00") || strings.HasPrefix(base, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, filePath)
	}
	clean := filepath.Join(filepath.Clean(s.recordingsDir), base)
	if _, err := os.Stat(clean); err != nil {
		return "", fmt.Errorf("recording file missing: %w", err)
	}
	return clean, nil
}

func (s *ServiceImpl) acquire(filePath string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[filePath]; busy {
		return false
	}
	s.inFlight[filePath] = struct{}{}
	return true
}

func (s *ServiceImpl) release(filePath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, filePath)
}
