package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/Catskill909/radio-sub001/internal/models"
)

// Sentinel errors returned by the schedule store.
var (
	// ErrInvalidRange means end <= start or the duration is below the
	// configured minimum.
	ErrInvalidRange = errors.New("invalid slot range")
	// ErrInvalidTimezone means the zone id is not a recognized IANA zone.
	ErrInvalidTimezone = errors.New("unrecognized timezone")
	ErrSlotNotFound    = errors.New("slot not found")
	ErrNoOccurrences   = errors.New("occurrence count must be at least 1")
	// ErrTooManyOccurrences means a recurring request asked for more
	// occurrences than the configured cap allows.
	ErrTooManyOccurrences = errors.New("too many occurrences")
)

// ConflictError is structured conflict data for the first overlapping
// occurrence found. Message formatting belongs to the caller.
type ConflictError struct {
	// Existing is the persisted slot that the candidate intersects.
	// Zero-valued when Self is true.
	Existing models.ScheduleSlot
	// ShowTitle is the title of the show owning the existing slot.
	ShowTitle string
	// OccurrenceIndex is which occurrence of the candidate request
	// failed (0-based; always 0 for single-slot requests).
	OccurrenceIndex int
	// Self is set when two occurrences of the same request overlap each
	// other rather than a persisted slot.
	Self bool

	CandidateStart time.Time
	CandidateEnd   time.Time
}

func (e *ConflictError) Error() string {
	if e.Self {
		return fmt.Sprintf("schedule conflict: occurrence %d [%s, %s) overlaps another occurrence of the same request",
			e.OccurrenceIndex,
			e.CandidateStart.UTC().Format(time.RFC3339),
			e.CandidateEnd.UTC().Format(time.RFC3339))
	}
	return fmt.Sprintf("schedule conflict: occurrence %d [%s, %s) overlaps %q slot [%s, %s)",
		e.OccurrenceIndex,
		e.CandidateStart.UTC().Format(time.RFC3339),
		e.CandidateEnd.UTC().Format(time.RFC3339),
		e.ShowTitle,
		e.Existing.StartTime.UTC().Format(time.RFC3339),
		e.Existing.EndTime.UTC().Format(time.RFC3339))
}
