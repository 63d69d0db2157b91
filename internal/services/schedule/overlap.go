package schedule

import (
	"time"

	"github.com/Catskill909/radio-sub001/internal/models"
)

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Boundary-touching intervals (e1 == s2, or e2 == s1) do not
// overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// FindConflict checks each candidate interval against the existing
// schedule, and against the earlier occurrences of the same candidate
// set, returning structured data for the first conflict found or nil.
//
// Corrupt existing rows (end <= start) are skipped; they can never
// match anything and are purged separately.
func FindConflict(existing []models.ScheduleSlot, candidates []Interval) *ConflictError {
	for i, cand := range candidates {
		for _, slot := range existing {
			if !slot.Valid() {
				continue
			}
			if Overlaps(cand.Start, cand.End, slot.StartTime, slot.EndTime) {
				return &ConflictError{
					Existing:        slot,
					ShowTitle:       slot.Show.Title,
					OccurrenceIndex: i,
					CandidateStart:  cand.Start,
					CandidateEnd:    cand.End,
				}
			}
		}

		// Occurrences of one weekly request are seven days apart, so
		// they can only collide with each other when the duration
		// reaches a week.
		if cand.Duration() < 7*24*time.Hour {
			continue
		}
		for j := 0; j < i; j++ {
			prev := candidates[j]
			if Overlaps(cand.Start, cand.End, prev.Start, prev.End) {
				return &ConflictError{
					OccurrenceIndex: i,
					Self:            true,
					CandidateStart:  cand.Start,
					CandidateEnd:    cand.End,
				}
			}
		}
	}
	return nil
}
