package tracking

import (
	"time"

	"ecobite/internal/apperr"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// ParseDate accepts only a strict, valid YYYY-MM-DD date.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, value)
	if err != nil || parsed.Format(DateLayout) != value {
		return time.Time{}, apperr.Invalid("date %q must be a valid YYYY-MM-DD value", value)
	}
	return parsed, nil
}

// WeekStart returns the Monday on or before date. Sunday belongs to the week
// that began six days earlier.
func WeekStart(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

// WeekStartOf is WeekStart for a YYYY-MM-DD string.
func WeekStartOf(value string) (string, error) {
	date, err := ParseDate(value)
	if err != nil {
		return "", err
	}
	return WeekStart(date).Format(DateLayout), nil
}

// Format renders t in DateLayout.
func Format(t time.Time) string {
	return t.Format(DateLayout)
}
