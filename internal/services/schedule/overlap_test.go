package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Catskill909/radio-sub001/internal/models"
)

func ts(h, m int) time.Time {
	return time.Date(2026, 9, 7, h, m, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical", ts(10, 0), ts(11, 0), ts(10, 0), ts(11, 0), true},
		{"contained", ts(10, 0), ts(11, 0), ts(10, 30), ts(10, 45), true},
		{"partial overlap", ts(10, 0), ts(11, 0), ts(10, 30), ts(11, 30), true},
		{"touching end to start", ts(10, 0), ts(11, 0), ts(11, 0), ts(12, 0), false},
		{"touching start to end", ts(11, 0), ts(12, 0), ts(10, 0), ts(11, 0), false},
		{"disjoint", ts(10, 0), ts(11, 0), ts(12, 0), ts(13, 0), false},
		{"one minute into", ts(10, 0), ts(11, 0), ts(10, 59), ts(12, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}

func TestFindConflict_ReportsFirstConflict(t *testing.T) {
	existing := []models.ScheduleSlot{
		{StartTime: ts(10, 0), EndTime: ts(11, 0), Show: models.Show{Title: "Morning Drive"}},
	}

	conflict := FindConflict(existing, []Interval{
		{Start: ts(9, 0), End: ts(10, 0)},    // touches, fine
		{Start: ts(10, 30), End: ts(10, 45)}, // contained, conflicts
	})
	require.NotNil(t, conflict)
	assert.Equal(t, 1, conflict.OccurrenceIndex)
	assert.Equal(t, "Morning Drive", conflict.ShowTitle)
	assert.False(t, conflict.Self)
	assert.Equal(t, ts(10, 30), conflict.CandidateStart)
}

func TestFindConflict_AdjacentSlotsAccepted(t *testing.T) {
	existing := []models.ScheduleSlot{
		{StartTime: ts(10, 0), EndTime: ts(11, 0), Show: models.Show{Title: "A"}},
	}

	conflict := FindConflict(existing, []Interval{
		{Start: ts(11, 0), End: ts(12, 0)},
	})
	assert.Nil(t, conflict)
}

func TestFindConflict_SkipsCorruptRows(t *testing.T) {
	// A row with end <= start can never genuinely occupy the timeline;
	// it must not block new slots.
	existing := []models.ScheduleSlot{
		{StartTime: ts(11, 0), EndTime: ts(10, 0)},
		{StartTime: ts(10, 0), EndTime: ts(10, 0)},
	}

	conflict := FindConflict(existing, []Interval{
		{Start: ts(9, 0), End: ts(12, 0)},
	})
	assert.Nil(t, conflict)
}

func TestFindConflict_SelfOverlapForWeekLongOccurrences(t *testing.T) {
	start := ts(10, 0)
	eightDays := 8 * 24 * time.Hour
	week := 7 * 24 * time.Hour

	conflict := FindConflict(nil, []Interval{
		{Start: start, End: start.Add(eightDays)},
		{Start: start.Add(week), End: start.Add(week + eightDays)},
	})
	require.NotNil(t, conflict)
	assert.True(t, conflict.Self)
	assert.Equal(t, 1, conflict.OccurrenceIndex)
}
