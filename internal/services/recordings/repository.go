package recordings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Catskill909/radio-sub001/internal/models"
	"gorm.io/gorm"
)

// Repository errors
var (
	ErrRecordingNotFound = errors.New("recording not found")
	// ErrAlreadyTerminal means a completed or error row was asked to
	// transition again. Terminal statuses are frozen.
	ErrAlreadyTerminal = errors.New("recording is already in a terminal state")
)

// Repository defines the persistence interface for recordings.
type Repository interface {
	Create(ctx context.Context, recording *models.Recording) error
	Get(ctx context.Context, id uint) (*models.Recording, error)
	GetByFilePath(ctx context.Context, filePath string) (*models.Recording, error)
	List(ctx context.Context, filters ListFilters) ([]models.Recording, error)
	ListByStatus(ctx context.Context, status models.RecordingStatus) ([]models.Recording, error)
	MarkCompleted(ctx context.Context, id uint, endTime time.Time, sizeBytes int64, durationSeconds float64) error
	MarkError(ctx context.Context, id uint, endTime time.Time, message string) error
	UpdateFileStats(ctx context.Context, id uint, sizeBytes int64, durationSeconds float64) error
	Delete(ctx context.Context, id uint) error
}

// ListFilters narrows List results.
type ListFilters struct {
	Status models.RecordingStatus
	ShowID uint
	Limit  int
	Offset int
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new recording repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, recording *models.Recording) error {
	if err := r.db.WithContext(ctx).Create(recording).Error; err != nil {
		return fmt.Errorf("creating recording: %w", err)
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id uint) (*models.Recording, error) {
	var recording models.Recording
	err := r.db.WithContext(ctx).First(&recording, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordingNotFound
		}
		return nil, fmt.Errorf("getting recording: %w", err)
	}
	return &recording, nil
}

func (r *repository) GetByFilePath(ctx context.Context, filePath string) (*models.Recording, error) {
	var recording models.Recording
	err := r.db.WithContext(ctx).Where("file_path = ?", filePath).First(&recording).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordingNotFound
		}
		return nil, fmt.Errorf("getting recording by file path: %w", err)
	}
	return &recording, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]models.Recording, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.ShowID != 0 {
		query = query.Where("show_id = ?", filters.ShowID)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var recordings []models.Recording
	if err := query.Find(&recordings).Error; err != nil {
		return nil, fmt.Errorf("listing recordings: %w", err)
	}
	return recordings, nil
}

func (r *repository) ListByStatus(ctx context.Context, status models.RecordingStatus) ([]models.Recording, error) {
	var recordings []models.Recording
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&recordings).Error
	if err != nil {
		return nil, fmt.Errorf("listing recordings by status: %w", err)
	}
	return recordings, nil
}

func (r *repository) MarkCompleted(ctx context.Context, id uint, endTime time.Time, sizeBytes int64, durationSeconds float64) error {
	updates := map[string]interface{}{
		"status":           models.RecordingStatusCompleted,
		"end_time":         endTime.UTC(),
		"size_bytes":       sizeBytes,
		"duration_seconds": durationSeconds,
	}
	return r.transition(ctx, id, updates)
}

func (r *repository) MarkError(ctx context.Context, id uint, endTime time.Time, message string) error {
	updates := map[string]interface{}{
		"status":        models.RecordingStatusError,
		"end_time":      endTime.UTC(),
		"error_message": message,
	}
	return r.transition(ctx, id, updates)
}

func (r *repository) UpdateFileStats(ctx context.Context, id uint, sizeBytes int64, durationSeconds float64) error {
	updates := map[string]interface{}{
		"size_bytes":       sizeBytes,
		"duration_seconds": durationSeconds,
	}
	return r.update(ctx, id, updates)
}

// transition applies a status change and only matches rows still in
// the recording state, so a terminal row can never be re-marked.
func (r *repository) transition(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.Recording{}).
		Where("id = ? AND status = ?", id, models.RecordingStatusRecording).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("updating recording: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}
		return ErrAlreadyTerminal
	}
	return nil
}

func (r *repository) update(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.Recording{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("updating recording: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordingNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Recording{}, id)
	if result.Error != nil {
		return fmt.Errorf("deleting recording: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordingNotFound
	}
	return nil
}
