package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Catskill909/radio-sub001/internal/models"
)

// Service is the schedule store: the single write path for slot
// intervals, and therefore the single enforcement point of the
// no-overlap invariant.
type Service interface {
	// CreateSlot persists one slot after validation and conflict
	// checking. Returns ErrInvalidRange or *ConflictError.
	CreateSlot(ctx context.Context, params CreateSlotParams) (*models.ScheduleSlot, error)

	// CreateRecurringSlots expands a weekly request into materialized
	// occurrence rows. All-or-nothing: if any occurrence conflicts,
	// nothing is persisted.
	CreateRecurringSlots(ctx context.Context, params RecurringSlotParams) ([]models.ScheduleSlot, error)

	GetSlot(ctx context.Context, id uint) (*models.ScheduleSlot, error)
	DeleteSlot(ctx context.Context, id uint) error

	// ListSlots returns slots intersecting the half-open [from, to).
	ListSlots(ctx context.Context, from, to time.Time) ([]models.ScheduleSlot, error)

	// SlotsOnAir returns the valid slots whose interval contains now.
	SlotsOnAir(ctx context.Context, now time.Time) ([]models.ScheduleSlot, error)

	// AttachRecording records the back-reference from a slot to the
	// recording it spawned.
	AttachRecording(ctx context.Context, slotID, recordingID uint) error

	// PurgeCorruptSlots removes zero-or-negative-duration rows.
	PurgeCorruptSlots(ctx context.Context) (int64, error)
}

// CreateSlotParams describes a single slot request. Start and End are
// absolute instants (stored in UTC).
type CreateSlotParams struct {
	ShowID uint
	Start  time.Time
	End    time.Time
}

// RecurringSlotParams describes a weekly recurring request. LocalStart
// is interpreted as a wall clock in Timezone for every occurrence.
type RecurringSlotParams struct {
	ShowID      uint
	LocalStart  time.Time
	Duration    time.Duration
	Timezone    string
	Occurrences int
}

// DefaultMaxOccurrences caps a recurring request when no explicit
// limit is configured.
const DefaultMaxOccurrences = 52

// ServiceImpl implements the Service interface
type ServiceImpl struct {
	repo           Repository
	minDuration    time.Duration
	maxOccurrences int

	// Serializes overlap-check-and-insert so two concurrent writes for
	// conflicting intervals cannot both pass the check.
	mu sync.Mutex
}

// NewService creates a new schedule service. minDuration below zero is
// treated as zero (no policy minimum); maxOccurrences at or below zero
// falls back to DefaultMaxOccurrences.
func NewService(repo Repository, minDuration time.Duration, maxOccurrences int) Service {
	if minDuration < 0 {
		minDuration = 0
	}
	if maxOccurrences <= 0 {
		maxOccurrences = DefaultMaxOccurrences
	}
	return &ServiceImpl{repo: repo, minDuration: minDuration, maxOccurrences: maxOccurrences}
}

func (s *ServiceImpl) CreateSlot(ctx context.Context, params CreateSlotParams) (*models.ScheduleSlot, error) {
	iv := Interval{Start: params.Start.UTC(), End: params.End.UTC()}
	if err := s.validateInterval(iv); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkConflicts(ctx, []Interval{iv}); err != nil {
		return nil, err
	}

	slot := &models.ScheduleSlot{
		ShowID:    params.ShowID,
		StartTime: iv.Start,
		EndTime:   iv.End,
	}
	if err := s.repo.CreateSlots(ctx, []*models.ScheduleSlot{slot}); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *ServiceImpl) CreateRecurringSlots(ctx context.Context, params RecurringSlotParams) ([]models.ScheduleSlot, error) {
	if params.Duration < s.minDuration {
		return nil, fmt.Errorf("%w: duration %s is below the %s minimum",
			ErrInvalidRange, params.Duration, s.minDuration)
	}
	if params.Occurrences > s.maxOccurrences {
		return nil, fmt.Errorf("%w: %d occurrences exceeds the limit of %d",
			ErrTooManyOccurrences, params.Occurrences, s.maxOccurrences)
	}

	// A schedule write must fail hard on an unrecognized zone, never
	// fall back to UTC.
	intervals, err := ExpandWeekly(params.LocalStart, params.Duration, params.Timezone, params.Occurrences)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkConflicts(ctx, intervals); err != nil {
		return nil, err
	}

	slots := make([]*models.ScheduleSlot, 0, len(intervals))
	for _, iv := range intervals {
		slots = append(slots, &models.ScheduleSlot{
			ShowID:      params.ShowID,
			StartTime:   iv.Start,
			EndTime:     iv.End,
			IsRecurring: true,
		})
	}
	if err := s.repo.CreateSlots(ctx, slots); err != nil {
		return nil, err
	}

	out := make([]models.ScheduleSlot, len(slots))
	for i, slot := range slots {
		out[i] = *slot
	}
	return out, nil
}

func (s *ServiceImpl) GetSlot(ctx context.Context, id uint) (*models.ScheduleSlot, error) {
	return s.repo.GetSlot(ctx, id)
}

func (s *ServiceImpl) DeleteSlot(ctx context.Context, id uint) error {
	return s.repo.DeleteSlot(ctx, id)
}

func (s *ServiceImpl) ListSlots(ctx context.Context, from, to time.Time) ([]models.ScheduleSlot, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("%w: range end must be after range start", ErrInvalidRange)
	}
	return s.repo.ListSlotsInRange(ctx, from, to)
}

func (s *ServiceImpl) SlotsOnAir(ctx context.Context, now time.Time) ([]models.ScheduleSlot, error) {
	return s.repo.SlotsOnAir(ctx, now)
}

func (s *ServiceImpl) AttachRecording(ctx context.Context, slotID, recordingID uint) error {
	return s.repo.SetSlotRecording(ctx, slotID, recordingID)
}

func (s *ServiceImpl) PurgeCorruptSlots(ctx context.Context) (int64, error) {
	return s.repo.PurgeCorruptSlots(ctx)
}

func (s *ServiceImpl) validateInterval(iv Interval) error {
	if !iv.End.After(iv.Start) {
		return fmt.Errorf("%w: end %s is not after start %s",
			ErrInvalidRange, iv.End.Format(time.RFC3339), iv.Start.Format(time.RFC3339))
	}
	if iv.Duration() < s.minDuration {
		return fmt.Errorf("%w: duration %s is below the %s minimum",
			ErrInvalidRange, iv.Duration(), s.minDuration)
	}
	return nil
}

// checkConflicts loads every slot that could intersect the candidate
// window and runs the overlap detector. Caller must hold s.mu.
func (s *ServiceImpl) checkConflicts(ctx context.Context, candidates []Interval) error {
	window := candidates[0]
	for _, iv := range candidates[1:] {
		if iv.Start.Before(window.Start) {
			window.Start = iv.Start
		}
		if iv.End.After(window.End) {
			window.End = iv.End
		}
	}

	existing, err := s.repo.ListSlotsInRange(ctx, window.Start, window.End)
	if err != nil {
		return err
	}

	if conflict := FindConflict(existing, candidates); conflict != nil {
		return conflict
	}
	return nil
}
