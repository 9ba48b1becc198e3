package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/ballast/internal/constants"
)

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
// This ensures that "today" is determined by the user's configured timezone, not the system timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ParseDate parses a date string in the standard format (YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// AddDays returns the date string offset by n days from the given date string.
func AddDays(dateStr string, n int) (string, error) {
	d, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of
// minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinutes formats minutes from midnight as an HH:MM string.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// RangesOverlap reports whether two half-open minute ranges intersect.
func RangesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// MinutesBetween returns the minutes between two HH:MM strings, or an error
// if either is malformed.
func MinutesBetween(start, end string) (int, error) {
	s, err := ParseTimeToMinutes(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseTimeToMinutes(end)
	if err != nil {
		return 0, err
	}
	return e - s, nil
}
