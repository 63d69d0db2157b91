package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Catskill909/radio-sub001/internal/models"
)

// ErrInvalidTimezone means the submitted zone is not a loadable IANA id.
var ErrInvalidTimezone = errors.New("invalid timezone")

// Defaults seeds the settings row the first time it is created. After
// that the row is owned by the API and config changes no longer apply.
type Defaults struct {
	Name        string
	Description string
	Timezone    string
}

// UpdateParams carries a settings update. Nil fields are left unchanged.
type UpdateParams struct {
	Name        *string
	Description *string
	Timezone    *string
}

// Service manages the singleton station settings row.
type Service interface {
	Get(ctx context.Context) (*models.StationSettings, error)
	Update(ctx context.Context, params UpdateParams) (*models.StationSettings, error)
	// Location resolves the station timezone, falling back to UTC if
	// the stored value no longer loads.
	Location(ctx context.Context) (*time.Location, error)
}

// ServiceImpl implements Service on gorm.
type ServiceImpl struct {
	db       *gorm.DB
	defaults Defaults
}

// NewService creates a settings service.
func NewService(db *gorm.DB, defaults Defaults) *ServiceImpl {
	if defaults.Timezone == "" {
		defaults.Timezone = "UTC"
	}
	if _, err := time.LoadLocation(defaults.Timezone); err != nil {
		defaults.Timezone = "UTC"
	}
	return &ServiceImpl{db: db, defaults: defaults}
}

// Get returns the settings row, creating it from the configured
// defaults on first access.
func (s *ServiceImpl) Get(ctx context.Context) (*models.StationSettings, error) {
	var settings models.StationSettings
	err := s.db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.StationSettings{
			Name:        s.defaults.Name,
			Description: s.defaults.Description,
			Timezone:    s.defaults.Timezone,
		}
		if err := s.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, fmt.Errorf("creating default settings: %w", err)
		}
		return &settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return &settings, nil
}

// Update applies the non-nil fields and persists the row. A timezone
// change is validated before anything is written.
func (s *ServiceImpl) Update(ctx context.Context, params UpdateParams) (*models.StationSettings, error) {
	if params.Timezone != nil {
		if _, err := time.LoadLocation(*params.Timezone); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, *params.Timezone)
		}
	}

	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		settings.Name = *params.Name
	}
	if params.Description != nil {
		settings.Description = *params.Description
	}
	if params.Timezone != nil {
		settings.Timezone = *params.Timezone
	}

	if err := s.db.WithContext(ctx).Save(settings).Error; err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}
	return settings, nil
}

// Location resolves the configured station timezone. Persistence is
// always UTC; this only governs presentation and recurrence expansion
// defaults.
func (s *ServiceImpl) Location(ctx context.Context) (*time.Location, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(settings.Timezone)
	if err != nil {
		return time.UTC, nil
	}
	return loc, nil
}
