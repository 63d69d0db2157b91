package episodes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Catskill909/radio-sub001/internal/models"
	"github.com/Catskill909/radio-sub001/internal/services/recordings"
)

var (
	// ErrEpisodeNotFound means no episode exists with the given id.
	ErrEpisodeNotFound = errors.New("episode not found")

	// ErrRecordingNotCompleted means the recording cannot be published
	// because it never finished successfully.
	ErrRecordingNotCompleted = errors.New("recording is not completed")

	// ErrAlreadyPublished means the recording already has an episode.
	ErrAlreadyPublished = errors.New("recording is already published")
)

// PublishParams carries the metadata for a new episode.
type PublishParams struct {
	RecordingID uint
	Title       string
	Description string
	Tags        string
}

// UpdateParams carries an episode metadata update. Nil fields are left
// unchanged.
type UpdateParams struct {
	Title       *string
	Description *string
	Tags        *string
}

// Service publishes completed recordings as feed episodes. An episode
// is a 1:1 metadata layer over a recording; unpublishing never touches
// the audio file.
type Service interface {
	Publish(ctx context.Context, params PublishParams) (*models.Episode, error)
	Get(ctx context.Context, id uint) (*models.Episode, error)
	List(ctx context.Context) ([]models.Episode, error)
	Update(ctx context.Context, id uint, params UpdateParams) (*models.Episode, error)
	Unpublish(ctx context.Context, id uint) error
}

// ServiceImpl implements Service on gorm.
type ServiceImpl struct {
	db         *gorm.DB
	recordings recordings.Service
}

// NewService creates an episodes service.
func NewService(db *gorm.DB, recordingSvc recordings.Service) *ServiceImpl {
	return &ServiceImpl{db: db, recordings: recordingSvc}
}

// Publish creates an episode over a completed recording. The unique
// index on recording id enforces the 1:1 mapping at the database level;
// the precheck here exists only for a friendlier error.
func (s *ServiceImpl) Publish(ctx context.Context, params PublishParams) (*models.Episode, error) {
	if params.Title == "" {
		return nil, fmt.Errorf("episode title is required")
	}

	recording, err := s.recordings.Get(ctx, params.RecordingID)
	if err != nil {
		return nil, err
	}
	if recording.Status != models.RecordingStatusCompleted {
		return nil, fmt.Errorf("%w: recording %d is %s", ErrRecordingNotCompleted, recording.ID, recording.Status)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Episode{}).Where("recording_id = ?", params.RecordingID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("checking existing episode: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: recording %d", ErrAlreadyPublished, params.RecordingID)
	}

	episode := models.Episode{
		RecordingID: params.RecordingID,
		Title:       params.Title,
		Description: params.Description,
		Tags:        params.Tags,
		PublishedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&episode).Error; err != nil {
		return nil, fmt.Errorf("creating episode: %w", err)
	}
	episode.Recording = *recording
	return &episode, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id uint) (*models.Episode, error) {
	var episode models.Episode
	err := s.db.WithContext(ctx).Preload("Recording").First(&episode, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEpisodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading episode %d: %w", id, err)
	}
	return &episode, nil
}

// List returns all episodes newest-first with their recordings loaded,
// ready for feed generation.
func (s *ServiceImpl) List(ctx context.Context) ([]models.Episode, error) {
	var episodes []models.Episode
	if err := s.db.WithContext(ctx).Preload("Recording").Order("published_at DESC").Find(&episodes).Error; err != nil {
		return nil, fmt.Errorf("listing episodes: %w", err)
	}
	return episodes, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id uint, params UpdateParams) (*models.Episode, error) {
	episode, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		if *params.Title == "" {
			return nil, fmt.Errorf("episode title cannot be empty")
		}
		episode.Title = *params.Title
	}
	if params.Description != nil {
		episode.Description = *params.Description
	}
	if params.Tags != nil {
		episode.Tags = *params.Tags
	}

	if err := s.db.WithContext(ctx).Save(episode).Error; err != nil {
		return nil, fmt.Errorf("updating episode %d: %w", id, err)
	}
	return episode, nil
}

// Unpublish removes the episode row only. The recording and its file
// are untouched so the audio can be republished later. The delete is
// hard: a soft-deleted row would still hold the unique recording index
// and block republishing.
func (s *ServiceImpl) Unpublish(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Unscoped().Delete(&models.Episode{}, id)
	if result.Error != nil {
		return fmt.Errorf("deleting episode %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEpisodeNotFound
	}
	return nil
}
