package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Catskill909/radio-sub001/internal/models"
	"gorm.io/gorm"
)

// Repository defines the persistence interface for schedule slots.
type Repository interface {
	CreateSlots(ctx context.Context, slots []*models.ScheduleSlot) error
	GetSlot(ctx context.Context, id uint) (*models.ScheduleSlot, error)
	DeleteSlot(ctx context.Context, id uint) error

	// ListSlotsInRange returns slots whose interval intersects the
	// half-open range [from, to), ordered by start time.
	ListSlotsInRange(ctx context.Context, from, to time.Time) ([]models.ScheduleSlot, error)

	// SlotsOnAir returns the slots whose interval contains now.
	SlotsOnAir(ctx context.Context, now time.Time) ([]models.ScheduleSlot, error)

	SetSlotRecording(ctx context.Context, slotID, recordingID uint) error

	// PurgeCorruptSlots deletes zero-or-negative-duration rows and
	// returns how many were removed.
	PurgeCorruptSlots(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new schedule repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateSlots(ctx context.Context, slots []*models.ScheduleSlot) error {
	if len(slots) == 0 {
		return nil
	}
	// All-or-nothing: one transaction for the whole occurrence set.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, slot := range slots {
			if err := tx.Create(slot).Error; err != nil {
				return fmt.Errorf("creating slot: %w", err)
			}
		}
		return nil
	})
}

func (r *repository) GetSlot(ctx context.Context, id uint) (*models.ScheduleSlot, error) {
	var slot models.ScheduleSlot
	err := r.db.WithContext(ctx).Preload("Show").First(&slot, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("getting slot: %w", err)
	}
	return &slot, nil
}

func (r *repository) DeleteSlot(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ScheduleSlot{}, id)
	if result.Error != nil {
		return fmt.Errorf("deleting slot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func (r *repository) ListSlotsInRange(ctx context.Context, from, to time.Time) ([]models.ScheduleSlot, error) {
	var slots []models.ScheduleSlot
	// Half-open intersection: slot [s,e) meets range [from,to) iff
	// s < to AND e > from.
	err := r.db.WithContext(ctx).
		Preload("Show").
		Where("start_time < ? AND end_time > ?", to.UTC(), from.UTC()).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("listing slots: %w", err)
	}
	return slots, nil
}

func (r *repository) SlotsOnAir(ctx context.Context, now time.Time) ([]models.ScheduleSlot, error) {
	var slots []models.ScheduleSlot
	err := r.db.WithContext(ctx).
		Preload("Show").
		Where("start_time <= ? AND end_time > ?", now.UTC(), now.UTC()).
		Where("end_time > start_time"). // exclude corrupt rows from matching
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("finding on-air slots: %w", err)
	}
	return slots, nil
}

func (r *repository) SetSlotRecording(ctx context.Context, slotID, recordingID uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.ScheduleSlot{}).
		Where("id = ?", slotID).
		Update("recording_id", recordingID)
	if result.Error != nil {
		return fmt.Errorf("attaching recording to slot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func (r *repository) PurgeCorruptSlots(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("end_time <= start_time").
		Delete(&models.ScheduleSlot{})
	if result.Error != nil {
		return 0, fmt.Errorf("purging corrupt slots: %w", result.Error)
	}
	return result.RowsAffected, nil
}
