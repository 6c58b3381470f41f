package state

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used in persisted documents.
const DateLayout = "2006-01-02"

// DateOf returns the calendar date of t in loc. A nil loc uses t's own location.
func DateOf(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

// NextDate returns the calendar date following date.
func NextDate(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, 1).Format(DateLayout), nil
}

// DaysBetween returns the number of calendar days from -> to.
func DaysBetween(from, to string) (int, error) {
	f, err := ParseDate(from)
	if err != nil {
		return 0, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return 0, err
	}
	return int(t.Sub(f).Hours() / 24), nil
}
