package model

import (
	"errors"
	"fmt"
	"time"
)

// DateKeyLayout is the only format used for calendar-day keys.
const DateKeyLayout = "2006-01-02"

// ErrInvalidDateKey is returned for strings that are not YYYY-MM-DD.
var ErrInvalidDateKey = errors.New("invalid date key")

// DateKey formats t as YYYY-MM-DD in t's own location.
// Callers convert t to the wanted location first.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// DayOf returns the date key of t as observed in loc.
func DayOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return DateKey(t.In(loc))
}

// ParseDateKey validates key and returns midnight of that day in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateKeyLayout, key, loc)
	if err != nil || DateKey(t) != key {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, key)
	}
	return t, nil
}

// DayBefore reports whether date key a falls strictly before date key b.
// Both keys must be in DateKeyLayout; zero-padded keys order lexicographically.
func DayBefore(a, b string) bool {
	return a < b
}
