package schedule

import (
	"fmt"
	"time"
)

// Interval is a half-open [Start, End) pair of UTC instants.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns End - Start.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// ExpandWeekly resolves a station-local wall-clock start into a
// sequence of weekly UTC intervals.
//
// Each occurrence is computed by re-interpreting the SAME local wall
// clock in the target week under the station's timezone, not by adding
// 7*24h to the previous UTC instant. That is what keeps "every Tuesday
// at 18:00 local" stable across a Daylight-Saving transition, where the
// UTC offset of 18:00 local changes by an hour.
//
// localStart may be any instant; its wall clock is read in zone. A
// wall clock that falls inside a DST gap is normalized forward by the
// zone rules for that week only.
func ExpandWeekly(localStart time.Time, duration time.Duration, zone string, occurrences int) ([]Interval, error) {
	if occurrences < 1 {
		return nil, ErrNoOccurrences
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidRange)
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, zone)
	}

	base := localStart.In(loc)
	intervals := make([]Interval, 0, occurrences)
	for i := 0; i < occurrences; i++ {
		start := time.Date(
			base.Year(), base.Month(), base.Day()+7*i,
			base.Hour(), base.Minute(), base.Second(), 0,
			loc,
		)
		intervals = append(intervals, Interval{
			Start: start.UTC(),
			End:   start.Add(duration).UTC(),
		})
	}
	return intervals, nil
}
