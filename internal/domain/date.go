package domain

import (
	"fmt"
	"time"
)

// DateLayout is the fixed-width calendar date format used for Task.Date.
const DateLayout = "2006-01-02"

// lenientDateLayout accepts dates that are not zero-padded.
const lenientDateLayout = "2006-1-2"

// FormatDate formats t as a calendar date in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// IsWellFormedDate returns true if s is exactly a zero-padded YYYY-MM-DD date.
func IsWellFormedDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// CanonicalDate reformats s as a zero-padded date.
// Inputs like "2024-6-1" are accepted; anything else reports false.
func CanonicalDate(s string) (string, bool) {
	if IsWellFormedDate(s) {
		return s, true
	}
	d, err := time.Parse(lenientDateLayout, s)
	if err != nil {
		return "", false
	}
	return FormatDate(d), true
}

// Today returns the local calendar date of now.
func Today(now time.Time) string {
	return FormatDate(now.Local())
}
