package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/julianstephens/ballast/internal/constants"
	"github.com/julianstephens/ballast/internal/models"
)

type document struct {
	Version     int                               `json:"version"`
	Settings    Settings                          `json:"settings"`
	Profile     *models.ResourceProfile           `json:"profile,omitempty"`
	Tasks       map[string]models.Task            `json:"tasks"`
	Events      map[string]models.CalendarEvent   `json:"events"`
	Snapshots   map[string]models.MonthlySnapshot `json:"snapshots"`
	Schedules   []models.ScheduleResult           `json:"schedules,omitempty"`
	Predictions []models.FuturePrediction         `json:"predictions,omitempty"`
}

type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func defaultDocument() *document {
	return &document{
		Version: 1,
		Settings: Settings{
			Timezone:           constants.DefaultTimezone,
			DefaultHorizonDays: constants.DefaultHorizonDays,
		},
		Tasks:     make(map[string]models.Task),
		Events:    make(map[string]models.CalendarEvent),
		Snapshots: make(map[string]models.MonthlySnapshot),
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = defaultDocument()
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'ballast init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.doc = &document{}
	if err := json.Unmarshal(data, s.doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.doc.Tasks == nil {
		s.doc.Tasks = make(map[string]models.Task)
	}
	if s.doc.Events == nil {
		s.doc.Events = make(map[string]models.CalendarEvent)
	}
	if s.doc.Snapshots == nil {
		s.doc.Snapshots = make(map[string]models.MonthlySnapshot)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) ensureLoaded() error {
	if s.doc == nil {
		return s.Load()
	}
	return nil
}

func (s *JSONStore) GetSettings() (Settings, error) {
	if err := s.ensureLoaded(); err != nil {
		return Settings{}, err
	}
	return s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(settings Settings) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.doc.Settings = settings
	return s.save()
}

func (s *JSONStore) GetProfile() (models.ResourceProfile, error) {
	if err := s.ensureLoaded(); err != nil {
		return models.ResourceProfile{}, err
	}
	if s.doc.Profile == nil {
		return models.ResourceProfile{}, fmt.Errorf("no profile configured, run 'ballast profile set' first")
	}
	return *s.doc.Profile, nil
}

func (s *JSONStore) SaveProfile(profile models.ResourceProfile) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.doc.Profile = &profile
	return s.save()
}

func (s *JSONStore) AddTask(task models.Task) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	if _, exists := s.doc.Tasks[task.ID]; exists {
		return fmt.Errorf("task %s already exists", task.ID)
	}
	s.doc.Tasks[task.ID] = task
	return s.save()
}

func (s *JSONStore) GetTask(id string) (models.Task, error) {
	if err := s.ensureLoaded(); err != nil {
		return models.Task{}, err
	}
	task, ok := s.doc.Tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("task %s not found", id)
	}
	return task, nil
}

func (s *JSONStore) GetAllTasks() ([]models.Task, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	tasks := make([]models.Task, 0, len(s.doc.Tasks))
	for _, t := range s.doc.Tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (s *JSONStore) UpdateTask(task models.Task) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Tasks[task.ID]; !ok {
		return fmt.Errorf("task %s not found", task.ID)
	}
	s.doc.Tasks[task.ID] = task
	return s.save()
}

func (s *JSONStore) DeleteTask(id string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Tasks[id]; !ok {
		return fmt.Errorf("task %s not found", id)
	}
	delete(s.doc.Tasks, id)
	return s.save()
}

func (s *JSONStore) AddEvent(event models.CalendarEvent) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.doc.Events[event.ID] = event
	return s.save()
}

func (s *JSONStore) GetEventsForDate(date string) ([]models.CalendarEvent, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	var events []models.CalendarEvent
	for _, ev := range s.doc.Events {
		if ev.Date == date {
			events = append(events, ev)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Start < events[j].Start })
	return events, nil
}

func (s *JSONStore) GetAllEvents() ([]models.CalendarEvent, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	events := make([]models.CalendarEvent, 0, len(s.doc.Events))
	for _, ev := range s.doc.Events {
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Start < events[j].Start
	})
	return events, nil
}

func (s *JSONStore) DeleteEvent(id string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Events[id]; !ok {
		return fmt.Errorf("event %s not found", id)
	}
	delete(s.doc.Events, id)
	return s.save()
}

func (s *JSONStore) AddSnapshot(snapshot models.MonthlySnapshot) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.doc.Snapshots[snapshot.Month] = snapshot
	return s.save()
}

func (s *JSONStore) GetSnapshots() ([]models.MonthlySnapshot, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	snapshots := make([]models.MonthlySnapshot, 0, len(s.doc.Snapshots))
	for _, snap := range s.doc.Snapshots {
		snapshots = append(snapshots, snap)
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].Month < snapshots[j].Month })
	return snapshots, nil
}

func (s *JSONStore) SaveSchedule(result models.ScheduleResult) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.doc.Schedules = append(s.doc.Schedules, result)
	return s.save()
}

func (s *JSONStore) GetLatestSchedule() (models.ScheduleResult, error) {
	if err := s.ensureLoaded(); err != nil {
		return models.ScheduleResult{}, err
	}
	if len(s.doc.Schedules) == 0 {
		return models.ScheduleResult{}, fmt.Errorf("no schedule generated yet")
	}
	return s.doc.Schedules[len(s.doc.Schedules)-1], nil
}

func (s *JSONStore) SavePrediction(prediction models.FuturePrediction) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.doc.Predictions = append(s.doc.Predictions, prediction)
	return s.save()
}

// GetLatestPrediction returns the most recent prediction, refusing one past
// its validity window so callers regenerate instead of reusing stale data.
func (s *JSONStore) GetLatestPrediction() (models.FuturePrediction, error) {
	if err := s.ensureLoaded(); err != nil {
		return models.FuturePrediction{}, err
	}
	if len(s.doc.Predictions) == 0 {
		return models.FuturePrediction{}, fmt.Errorf("no prediction generated yet")
	}
	latest := s.doc.Predictions[len(s.doc.Predictions)-1]
	if !latest.IsValidAt(time.Now()) {
		return models.FuturePrediction{}, fmt.Errorf("latest prediction expired %s, run 'ballast forecast' to regenerate", latest.ValidUntil.Format(constants.DateFormat))
	}
	return latest, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
