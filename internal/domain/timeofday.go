package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeFormat and DateFormat are the wire-level layouts used across the API.
const (
	TimeFormat = "15:04"
	DateFormat = "2006-01-02"
)

// TimeOfDay is a clock time within a single day, stored as whole minutes
// since midnight. Reservations carry times as HH:MM, so a TimeOfDay is
// always minute-precise.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay parses a HH:MM string in 24-hour notation.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 2 || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}

	return NewTimeOfDay(hour, minute), nil
}

// TimeOfDayOf extracts the clock time of t, truncated to the minute.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// Minutes returns the offset from midnight in whole minutes.
func (t TimeOfDay) Minutes() int { return int(t) }

func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }
func (t TimeOfDay) After(other TimeOfDay) bool  { return t > other }

// Sub returns the number of minutes between t and earlier.
func (t TimeOfDay) Sub(earlier TimeOfDay) int { return int(t - earlier) }

// On anchors the clock time to the given calendar day.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("invalid time value %s", data)
	}

	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}
