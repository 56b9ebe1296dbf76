package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates (ISO, no timezone).
const DateLayout = "2006-01-02"

// ClockTime is a timezone-free time of day with second precision. It is the
// canonical representation for entry start and end times; calendar semantics
// ("09:00 on the 16th") never involve a timezone in this domain.
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

// ParseClockTime parses a 24-hour clock string. Both "HH:MM" and "HH:MM:SS"
// are accepted because model-produced arguments use either form.
func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return ClockTime{}, fmt.Errorf("invalid 24-hour time format: %q, expected 'HH:MM' or 'HH:MM:SS'", s)
}

// String renders the canonical "HH:MM:SS" form used by storage and tool tables.
func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Short renders the "HH:MM" form used in user-facing summaries.
func (t ClockTime) Short() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t ClockTime) seconds() int { return t.Hour*3600 + t.Minute*60 + t.Second }

// Before reports whether t is strictly earlier in the day than other.
func (t ClockTime) Before(other ClockTime) bool { return t.seconds() < other.seconds() }

// After reports whether t is strictly later in the day than other.
func (t ClockTime) After(other ClockTime) bool { return t.seconds() > other.seconds() }

// MarshalJSON encodes the time as its "HH:MM:SS" string form.
func (t ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts the same tolerant formats as ParseClockTime.
func (t *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Entry is one schedulable item: an appointment or note on a single calendar
// day. ID is zero until the storage layer assigns one. Selected is a transient
// UI flag and is never persisted.
//
// Invariant: EndTime is strictly after StartTime.
type Entry struct {
	ID        int64     `json:"entry_id"`
	Date      time.Time `json:"date"`
	StartTime ClockTime `json:"start_time"`
	EndTime   ClockTime `json:"end_time"`
	Title     string    `json:"title"`
	Provider  string    `json:"provider"`
	Note      string    `json:"note"`
	Selected  bool      `json:"is_selected"`
}

// ParseEntryDate parses a calendar date that may carry a time component.
// "YYYY-MM-DD" and "YYYY-MM-DD HH:MM:SS" are both accepted; any time portion
// is discarded because entry dates are plain calendar days.
func ParseEntryDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayout, DateLayout + " 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return NormalizeDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q, expected 'YYYY-MM-DD' or 'YYYY-MM-DD HH:MM:SS'", s)
}

// NormalizeDate strips the time-of-day component, leaving midnight UTC so
// date equality and ordering comparisons are exact.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateString renders the entry date in the ISO wire format.
func (e Entry) DateString() string { return e.Date.Format(DateLayout) }

// Validate checks the entry-level invariants before persistence.
func (e Entry) Validate() error {
	if e.Date.IsZero() {
		return fmt.Errorf("entry date is required")
	}
	if !e.EndTime.After(e.StartTime) {
		return fmt.Errorf("end_time must be strictly after start_time")
	}
	return nil
}
