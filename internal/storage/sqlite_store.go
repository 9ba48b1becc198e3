package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/ballast/internal/constants"
	"github.com/julianstephens/ballast/internal/models"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS profile (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	data TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);
CREATE TABLE IF NOT EXISTS snapshots (
	month TEXT PRIMARY KEY,
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS schedules (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	generated_at TEXT NOT NULL,
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS predictions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	generated_at TEXT NOT NULL,
	valid_until TEXT NOT NULL,
	data TEXT NOT NULL
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := s.db.Exec(`INSERT OR IGNORE INTO meta (key, value) VALUES ('schema_version', ?)`, fmt.Sprint(schemaVersion)); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(); err != nil {
		defaults := Settings{
			Timezone:           constants.DefaultTimezone,
			DefaultHorizonDays: constants.DefaultHorizonDays,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'ballast init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	var version string
	err = s.db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&version)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version != fmt.Sprint(schemaVersion) {
		return fmt.Errorf("unsupported schema version %s (want %d)", version, schemaVersion)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) GetSettings() (Settings, error) {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = 'settings'`).Scan(&raw)
	if err != nil {
		return Settings{}, fmt.Errorf("settings not found: %w", err)
	}
	var settings Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO settings (key, value) VALUES ('settings', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, string(raw))
	return err
}

func (s *SQLiteStore) GetProfile() (models.ResourceProfile, error) {
	var raw string
	err := s.db.QueryRow(`SELECT data FROM profile WHERE id = 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return models.ResourceProfile{}, fmt.Errorf("no profile configured, run 'ballast profile set' first")
	}
	if err != nil {
		return models.ResourceProfile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	var profile models.ResourceProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return models.ResourceProfile{}, fmt.Errorf("failed to parse profile: %w", err)
	}
	return profile, nil
}

func (s *SQLiteStore) SaveProfile(profile models.ResourceProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to serialize profile: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO profile (id, data) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data`, string(raw))
	return err
}

func (s *SQLiteStore) AddTask(task models.Task) error {
	raw, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to serialize task: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO tasks (id, name, data) VALUES (?, ?, ?)`, task.ID, task.Name, string(raw))
	if err != nil {
		return fmt.Errorf("failed to add task %s: %w", task.ID, err)
	}
	return nil
}

func (s *SQLiteStore) GetTask(id string) (models.Task, error) {
	var raw string
	err := s.db.QueryRow(`SELECT data FROM tasks WHERE id = ?`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return models.Task{}, fmt.Errorf("task %s not found", id)
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to read task %s: %w", id, err)
	}
	var task models.Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		return models.Task{}, fmt.Errorf("failed to parse task %s: %w", id, err)
	}
	return task, nil
}

func (s *SQLiteStore) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`SELECT data FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var task models.Task
		if err := json.Unmarshal([]byte(raw), &task); err != nil {
			return nil, fmt.Errorf("failed to parse task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (s *SQLiteStore) UpdateTask(task models.Task) error {
	raw, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to serialize task: %w", err)
	}
	res, err := s.db.Exec(`UPDATE tasks SET name = ?, data = ? WHERE id = ?`, task.Name, string(raw), task.ID)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", task.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s not found", task.ID)
	}
	return nil
}

func (s *SQLiteStore) DeleteTask(id string) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s not found", id)
	}
	return nil
}

func (s *SQLiteStore) AddEvent(event models.CalendarEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO events (id, date, data) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET date = excluded.date, data = excluded.data`,
		event.ID, event.Date, string(raw))
	return err
}

func (s *SQLiteStore) GetEventsForDate(date string) ([]models.CalendarEvent, error) {
	return s.queryEvents(`SELECT data FROM events WHERE date = ? ORDER BY date, id`, date)
}

func (s *SQLiteStore) GetAllEvents() ([]models.CalendarEvent, error) {
	return s.queryEvents(`SELECT data FROM events ORDER BY date, id`)
}

func (s *SQLiteStore) queryEvents(query string, args ...interface{}) ([]models.CalendarEvent, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []models.CalendarEvent
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var ev models.CalendarEvent
		if err := json.Unmarshal([]byte(raw), &ev); err != nil {
			return nil, fmt.Errorf("failed to parse event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *SQLiteStore) DeleteEvent(id string) error {
	res, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("event %s not found", id)
	}
	return nil
}

func (s *SQLiteStore) AddSnapshot(snapshot models.MonthlySnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO snapshots (month, data) VALUES (?, ?)
		ON CONFLICT(month) DO UPDATE SET data = excluded.data`, snapshot.Month, string(raw))
	return err
}

func (s *SQLiteStore) GetSnapshots() ([]models.MonthlySnapshot, error) {
	rows, err := s.db.Query(`SELECT data FROM snapshots ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []models.MonthlySnapshot
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var snap models.MonthlySnapshot
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

func (s *SQLiteStore) SaveSchedule(result models.ScheduleResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to serialize schedule: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO schedules (generated_at, data) VALUES (?, ?)`,
		result.GeneratedAt.Format(time.RFC3339), string(raw))
	return err
}

func (s *SQLiteStore) GetLatestSchedule() (models.ScheduleResult, error) {
	var raw string
	err := s.db.QueryRow(`SELECT data FROM schedules ORDER BY id DESC LIMIT 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return models.ScheduleResult{}, fmt.Errorf("no schedule generated yet")
	}
	if err != nil {
		return models.ScheduleResult{}, fmt.Errorf("failed to read schedule: %w", err)
	}
	var result models.ScheduleResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return models.ScheduleResult{}, fmt.Errorf("failed to parse schedule: %w", err)
	}
	return result, nil
}

func (s *SQLiteStore) SavePrediction(prediction models.FuturePrediction) error {
	raw, err := json.Marshal(prediction)
	if err != nil {
		return fmt.Errorf("failed to serialize prediction: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO predictions (generated_at, valid_until, data) VALUES (?, ?, ?)`,
		prediction.GeneratedAt.Format(time.RFC3339), prediction.ValidUntil.Format(time.RFC3339), string(raw))
	return err
}

// GetLatestPrediction returns the most recent prediction, refusing one past
// its validity window so callers regenerate instead of reusing stale data.
func (s *SQLiteStore) GetLatestPrediction() (models.FuturePrediction, error) {
	var raw string
	err := s.db.QueryRow(`SELECT data FROM predictions ORDER BY id DESC LIMIT 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return models.FuturePrediction{}, fmt.Errorf("no prediction generated yet")
	}
	if err != nil {
		return models.FuturePrediction{}, fmt.Errorf("failed to read prediction: %w", err)
	}
	var prediction models.FuturePrediction
	if err := json.Unmarshal([]byte(raw), &prediction); err != nil {
		return models.FuturePrediction{}, fmt.Errorf("failed to parse prediction: %w", err)
	}
	if !prediction.IsValidAt(time.Now()) {
		return models.FuturePrediction{}, fmt.Errorf("latest prediction expired %s, run 'ballast forecast' to regenerate", prediction.ValidUntil.Format(constants.DateFormat))
	}
	return prediction, nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
