package models

import "time"

// minutesBetween returns the minutes between two HH:MM times on the same day.
// Malformed times count as zero.
func minutesBetween(start, end string) int {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return 0
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return 0
	}
	return int(e.Sub(s).Minutes())
}
