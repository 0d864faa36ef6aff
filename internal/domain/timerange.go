package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateFormat  = "2006-01-02"
	ClockFormat = "15:04"
)

// Clock is a wall-clock time of day in minutes since midnight.
type Clock int

// ParseClock accepts "HH:MM" and "HH:MM:SS".
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	if len(s) == 8 {
		s = s[:5]
	}
	t, err := time.Parse(ClockFormat, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// EndOfDay is the first minute that no longer belongs to the day.
const EndOfDay = Clock(24 * 60)

// Add returns c shifted by minutes. ok is false when the result leaves the day.
func (c Clock) Add(minutes int) (Clock, bool) {
	out := Clock(int(c) + minutes)
	return out, out < EndOfDay
}

// TimeRange is a half-open [Start, End) interval within one day.
type TimeRange struct {
	Start Clock
	End   Clock
}

// NewTimeRange parses both bounds and requires End > Start.
func NewTimeRange(start, end string) (TimeRange, error) {
	s, err := ParseClock(start)
	if err != nil {
		return TimeRange{}, ValidationError{Field: "startTime", Msg: err.Error()}
	}
	e, err := ParseClock(end)
	if err != nil {
		return TimeRange{}, ValidationError{Field: "endTime", Msg: err.Error()}
	}
	if e <= s {
		return TimeRange{}, ValidationError{Field: "endTime", Msg: "must be after startTime"}
	}
	return TimeRange{Start: s, End: e}, nil
}

// Overlaps is false for ranges that only touch at an endpoint.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start < o.End && o.Start < r.End
}

func (r TimeRange) Minutes() int {
	return int(r.End - r.Start)
}

// ParseDate parses YYYY-MM-DD in local time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}
