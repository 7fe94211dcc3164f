// Package daterange implements half-open [Start, End) date intervals.
//
// Two stays that share a boundary day do not overlap: a guest checking out on
// the 5th frees the room for a guest checking in on the 5th.
package daterange

import (
	"fmt"
	"time"
)

const (
	Day        = 24 * time.Hour
	DateLayout = "2006-01-02"
)

type Range struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) Range {
	return Range{Start: start, End: end}
}

// Valid reports whether the range is non-empty.
func (r Range) Valid() bool {
	return r.Start.Before(r.End)
}

// Nights returns the number of whole days covered by the range.
func (r Range) Nights() int {
	if !r.Valid() {
		return 0
	}
	return int(r.End.Sub(r.Start) / Day)
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.UTC().Format(time.RFC3339), r.End.UTC().Format(time.RFC3339))
}

// Overlaps reports whether a and b share at least one instant.
func Overlaps(a, b Range) bool {
	return Overlap(a.Start, a.End, b.Start, b.End)
}

func Overlap(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && startB.Before(endA)
}

// DayKey returns the UTC calendar date of t, used to bucket bookings per day.
func DayKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate accepts RFC3339 timestamps or plain YYYY-MM-DD dates (read as UTC midnight).
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected RFC3339 or %s", value, DateLayout)
	}
	return t, nil
}
