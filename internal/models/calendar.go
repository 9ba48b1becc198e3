package models

type BlackoutSource string

const (
	SourceCalendar BlackoutSource = "calendar"
	SourcePersonal BlackoutSource = "personal"
)

// CalendarEvent is a blackout entry from the calendar or personal-schedule
// source. An empty End means the entry occupies one hour from Start.
type CalendarEvent struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Date   string         `json:"date"`  // YYYY-MM-DD format
	Start  string         `json:"start"` // HH:MM format
	End    string         `json:"end,omitempty"`
	Source BlackoutSource `json:"source"`
}
