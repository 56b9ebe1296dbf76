package core

import (
	"fmt"
	"strings"
	"time"
)

// DateRange is the inclusive [From, To] window the user is currently viewing.
// From <= To is expected but not enforced here; callers validate before use.
type DateRange struct {
	From time.Time `json:"date_from"`
	To   time.Time `json:"date_to"`
}

// NewDateRange builds a range from two points in time.
func NewDateRange(from, to time.Time) DateRange {
	return DateRange{From: from, To: to}
}

// ParseDateRange parses the bounds from strings. ISO dates, ISO date-times and
// the "YYYY-MM-DD HH:MM:SS" form are accepted, mirroring what session payloads
// and model arguments actually contain.
func ParseDateRange(from, to string) (DateRange, error) {
	f, err := parseRangeBound(from)
	if err != nil {
		return DateRange{}, fmt.Errorf("from_date: %w", err)
	}
	t, err := parseRangeBound(to)
	if err != nil {
		return DateRange{}, fmt.Errorf("to_date: %w", err)
	}
	return DateRange{From: f, To: t}, nil
}

func parseRangeBound(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, DateLayout + "T15:04:05", DateLayout + " 15:04:05", DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date-time: %q", s)
}

// ContainsDate reports whether the calendar day d falls inside the range,
// comparing at date granularity so partial-day bounds behave inclusively.
func (r DateRange) ContainsDate(d time.Time) bool {
	day := NormalizeDate(d)
	return !day.Before(NormalizeDate(r.From)) && !day.After(NormalizeDate(r.To))
}

// DateRangePrimitive is the flat string form of a DateRange, safe to place in
// a session payload or any other cross-boundary serialization.
type DateRangePrimitive struct {
	From string `json:"date_from"`
	To   string `json:"date_to"`
}

// ToPrimitive converts the range to its flat serializable form.
func (r DateRange) ToPrimitive() DateRangePrimitive {
	return DateRangePrimitive{
		From: r.From.Format(time.RFC3339),
		To:   r.To.Format(time.RFC3339),
	}
}

// DateRangeFromPrimitive restores a DateRange from its flat form.
func DateRangeFromPrimitive(p DateRangePrimitive) (DateRange, error) {
	return ParseDateRange(p.From, p.To)
}
