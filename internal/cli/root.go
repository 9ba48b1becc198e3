package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ballast/internal/models"
	"github.com/julianstephens/ballast/internal/storage"
)

type Context struct {
	Store storage.Provider
}

// parseWindows parses "09:00-12:00,14:00-17:00" into time windows.
func parseWindows(s string) ([]models.TimeWindow, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var windows []models.TimeWindow
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		bounds := strings.Split(part, "-")
		if len(bounds) != 2 {
			return nil, fmt.Errorf("invalid time window %q, expected HH:MM-HH:MM", part)
		}
		start := strings.TrimSpace(bounds[0])
		end := strings.TrimSpace(bounds[1])
		if err := validateClock(start); err != nil {
			return nil, fmt.Errorf("invalid window start in %q: %w", part, err)
		}
		if err := validateClock(end); err != nil {
			return nil, fmt.Errorf("invalid window end in %q: %w", part, err)
		}
		windows = append(windows, models.TimeWindow{Start: start, End: end})
	}
	return windows, nil
}

func validateClock(s string) error {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return fmt.Errorf("expected HH:MM, got %q", s)
	}
	return nil
}

// parseCSV splits a comma-separated flag value, dropping empty entries.
func parseCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
