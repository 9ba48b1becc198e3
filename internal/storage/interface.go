package storage

import "github.com/julianstephens/ballast/internal/models"

// Settings represents application-wide settings
type Settings struct {
	Timezone           string `json:"timezone"`             // IANA timezone name, or "Local" for the system timezone
	DefaultHorizonDays int    `json:"default_horizon_days"` // horizon used when plan is run without --days
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Profile
	GetProfile() (models.ResourceProfile, error)
	SaveProfile(models.ResourceProfile) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error

	// Calendar / personal-schedule blackouts
	AddEvent(models.CalendarEvent) error
	GetEventsForDate(date string) ([]models.CalendarEvent, error)
	GetAllEvents() ([]models.CalendarEvent, error)
	DeleteEvent(id string) error

	// Monthly history for forecasting
	AddSnapshot(models.MonthlySnapshot) error
	GetSnapshots() ([]models.MonthlySnapshot, error)

	// Generated results
	SaveSchedule(models.ScheduleResult) error
	GetLatestSchedule() (models.ScheduleResult, error)
	SavePrediction(models.FuturePrediction) error
	GetLatestPrediction() (models.FuturePrediction, error)

	// Utils
	GetConfigPath() string
}
