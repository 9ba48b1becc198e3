package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// MonthFormat is the format for monthly history buckets (YYYY-MM)
	MonthFormat = "2006-01"

	// DayStartHour and DayEndHour bound the schedulable day. Slots are only
	// generated for hours in [DayStartHour, DayEndHour).
	DayStartHour = 6
	DayEndHour   = 23

	// Business hours used for collaboration checks and conflict-risk rating
	BusinessStartHour = 9
	BusinessEndHour   = 17

	// EveningQuietHour is the hour after which conflict risk drops to low
	EveningQuietHour = 20
)
