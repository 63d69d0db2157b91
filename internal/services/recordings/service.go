package recordings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Catskill909/radio-sub001/internal/models"
)

// Service errors
var (
	ErrNotTerminal = errors.New("recording is still in progress")
)

// Service manages recording rows through their lifecycle:
// recording -> completed | error. Rows are created when capture starts
// and only ever mutated by the recorder loop or (size/duration) by the
// mutation pipeline.
type Service interface {
	// Begin creates a new row in the recording state.
	Begin(ctx context.Context, params BeginParams) (*models.Recording, error)

	// Complete finishes a capture normally.
	Complete(ctx context.Context, id uint, endTime time.Time, sizeBytes int64, durationSeconds float64) error

	// Fail marks a capture as failed with the captured error text.
	Fail(ctx context.Context, id uint, endTime time.Time, message string) error

	Get(ctx context.Context, id uint) (*models.Recording, error)
	GetByFilePath(ctx context.Context, filePath string) (*models.Recording, error)
	List(ctx context.Context, filters ListFilters) ([]models.Recording, error)

	// Stale returns rows still in the recording state; after an unclean
	// restart these are the rows the recorder must reconcile.
	Stale(ctx context.Context) ([]models.Recording, error)

	// UpdateFileStats refreshes size/duration after a file mutation.
	UpdateFileStats(ctx context.Context, id uint, sizeBytes int64, durationSeconds float64) error

	// Delete removes a recording row. Explicit operator cleanup only;
	// the recorder never deletes rows.
	Delete(ctx context.Context, id uint) error
}

// BeginParams describes a new capture attempt. SlotID is nil for ad hoc
// recordings.
type BeginParams struct {
	SlotID    *uint
	ShowID    *uint
	SourceURL string
	FilePath  string
	StartTime time.Time
}

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repo Repository
}

// NewService creates a new recording service
func NewService(repo Repository) Service {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Begin(ctx context.Context, params BeginParams) (*models.Recording, error) {
	if params.FilePath == "" {
		return nil, fmt.Errorf("file path is required")
	}
	recording := &models.Recording{
		SlotID:    params.SlotID,
		ShowID:    params.ShowID,
		SourceURL: params.SourceURL,
		FilePath:  params.FilePath,
		StartTime: params.StartTime.UTC(),
		Status:    models.RecordingStatusRecording,
	}
	if err := s.repo.Create(ctx, recording); err != nil {
		return nil, err
	}
	return recording, nil
}

func (s *ServiceImpl) Complete(ctx context.Context, id uint, endTime time.Time, sizeBytes int64, durationSeconds float64) error {
	return s.repo.MarkCompleted(ctx, id, endTime, sizeBytes, durationSeconds)
}

func (s *ServiceImpl) Fail(ctx context.Context, id uint, endTime time.Time, message string) error {
	return s.repo.MarkError(ctx, id, endTime, message)
}

func (s *ServiceImpl) Get(ctx context.Context, id uint) (*models.Recording, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) GetByFilePath(ctx context.Context, filePath string) (*models.Recording, error) {
	return s.repo.GetByFilePath(ctx, filePath)
}

func (s *ServiceImpl) List(ctx context.Context, filters ListFilters) ([]models.Recording, error) {
	return s.repo.List(ctx, filters)
}

func (s *ServiceImpl) Stale(ctx context.Context) ([]models.Recording, error) {
	return s.repo.ListByStatus(ctx, models.RecordingStatusRecording)
}

func (s *ServiceImpl) UpdateFileStats(ctx context.Context, id uint, sizeBytes int64, durationSeconds float64) error {
	return s.repo.UpdateFileStats(ctx, id, sizeBytes, durationSeconds)
}

func (s *ServiceImpl) Delete(ctx context.Context, id uint) error {
	recording, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !recording.Status.Terminal() {
		return ErrNotTerminal
	}
	return s.repo.Delete(ctx, id)
}
