package gamification

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format completions are keyed by.
const DateLayout = "2006-01-02"

// Midnight returns the start of t's calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysBefore returns the calendar date n days before day.
func DaysBefore(day time.Time, n int) string {
	return FormatDate(day.AddDate(0, 0, -n))
}

// ParseDate validates s as YYYY-MM-DD and returns it normalized.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return FormatDate(t), nil
}
