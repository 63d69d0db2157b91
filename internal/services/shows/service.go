package shows

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Catskill909/radio-sub001/internal/models"
)

// ErrShowNotFound means no show exists with the given id.
var ErrShowNotFound = errors.New("show not found")

// CreateParams carries the fields for a new show.
type CreateParams struct {
	Title            string
	Host             string
	Description      string
	RecordingEnabled bool
	StreamURL        string
}

// UpdateParams carries a show update. Nil fields are left unchanged.
type UpdateParams struct {
	Title            *string
	Host             *string
	Description      *string
	RecordingEnabled *bool
	StreamURL        *string
}

// Service manages show definitions. Deleting a show removes its
// schedule slots in the same transaction; recordings are kept.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*models.Show, error)
	Get(ctx context.Context, id uint) (*models.Show, error)
	List(ctx context.Context) ([]models.Show, error)
	Update(ctx context.Context, id uint, params UpdateParams) (*models.Show, error)
	Delete(ctx context.Context, id uint) error
}

// ServiceImpl implements Service on gorm.
type ServiceImpl struct {
	db *gorm.DB
}

// NewService creates a shows service.
func NewService(db *gorm.DB) *ServiceImpl {
	return &ServiceImpl{db: db}
}

func (s *ServiceImpl) Create(ctx context.Context, params CreateParams) (*models.Show, error) {
	if params.Title == "" {
		return nil, fmt.Errorf("show title is required")
	}
	if params.RecordingEnabled && params.StreamURL == "" {
		return nil, fmt.Errorf("recording-enabled show needs a stream URL")
	}

	show := models.Show{
		Title:            params.Title,
		Host:             params.Host,
		Description:      params.Description,
		RecordingEnabled: params.RecordingEnabled,
		StreamURL:        params.StreamURL,
	}
	if err := s.db.WithContext(ctx).Create(&show).Error; err != nil {
		return nil, fmt.Errorf("creating show: %w", err)
	}
	return &show, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id uint) (*models.Show, error) {
	var show models.Show
	err := s.db.WithContext(ctx).Preload("Slots").First(&show, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrShowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading show %d: %w", id, err)
	}
	return &show, nil
}

func (s *ServiceImpl) List(ctx context.Context) ([]models.Show, error) {
	var shows []models.Show
	if err := s.db.WithContext(ctx).Order("title ASC").Find(&shows).Error; err != nil {
		return nil, fmt.Errorf("listing shows: %w", err)
	}
	return shows, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id uint, params UpdateParams) (*models.Show, error) {
	show, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		if *params.Title == "" {
			return nil, fmt.Errorf("show title cannot be empty")
		}
		show.Title = *params.Title
	}
	if params.Host != nil {
		show.Host = *params.Host
	}
	if params.Description != nil {
		show.Description = *params.Description
	}
	if params.RecordingEnabled != nil {
		show.RecordingEnabled = *params.RecordingEnabled
	}
	if params.StreamURL != nil {
		show.StreamURL = *params.StreamURL
	}
	if show.RecordingEnabled && show.StreamURL == "" {
		return nil, fmt.Errorf("recording-enabled show needs a stream URL")
	}

	if err := s.db.WithContext(ctx).Save(show).Error; err != nil {
		return nil, fmt.Errorf("updating show %d: %w", id, err)
	}
	return show, nil
}

// Delete removes the show and its slots atomically. Recordings keep
// their show id for historical display but are never deleted here.
func (s *ServiceImpl) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Show{}, id)
		if result.Error != nil {
			return fmt.Errorf("deleting show %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrShowNotFound
		}
		if err := tx.Where("show_id = ?", id).Delete(&models.ScheduleSlot{}).Error; err != nil {
			return fmt.Errorf("deleting slots for show %d: %w", id, err)
		}
		return nil
	})
}
