package models

import "time"

// SplitInfo describes one chunk of a task that was divided across windows.
// Chunk durations of a split group always sum to the original task duration.
type SplitInfo struct {
	TaskID        string   `json:"task_id"`
	Index         int      `json:"index"` // 1-based
	Total         int      `json:"total"`
	DurationMin   int      `json:"duration_min"`
	RemainingMin  int      `json:"remaining_min"` // work left after this chunk
	MergeableWith []string `json:"mergeable_with,omitempty"`
}

// ScheduledTask is an engine-owned placement record. It is never mutated
// after creation within one run; a fresh run re-derives it.
type ScheduledTask struct {
	ID           string     `json:"id"`
	TaskID       string     `json:"task_id"`
	TaskName     string     `json:"task_name"`
	Date         string     `json:"date"`  // YYYY-MM-DD format
	Start        string     `json:"start"` // HH:MM format
	End          string     `json:"end"`   // HH:MM format
	Weight       float64    `json:"weight"`
	Confidence   float64    `json:"confidence"`  // 0-1
	Flexibility  float64    `json:"flexibility"` // 0-1
	Split        *SplitInfo `json:"split,omitempty"`
	ResolvedDeps []string   `json:"resolved_deps,omitempty"`
}

// DurationMin returns the scheduled duration in minutes.
func (st ScheduledTask) DurationMin() int {
	return minutesBetween(st.Start, st.End)
}

type OverloadLevel string

const (
	OverloadLow      OverloadLevel = "low"
	OverloadMedium   OverloadLevel = "medium"
	OverloadHigh     OverloadLevel = "high"
	OverloadCritical OverloadLevel = "critical"
)

// DailyCapacityStatus summarizes one day's committed load against the
// profile's limits.
type DailyCapacityStatus struct {
	Date            string        `json:"date"`
	AvailableHours  float64       `json:"available_hours"`
	ScheduledHours  float64       `json:"scheduled_hours"`
	RemainingHours  float64       `json:"remaining_hours"`
	WeightLimit     int           `json:"weight_limit"`
	ScheduledWeight float64       `json:"scheduled_weight"`
	RemainingWeight float64       `json:"remaining_weight"`
	Utilization     float64       `json:"utilization"`
	LightUsed       int           `json:"light_used"`
	LightLimit      int           `json:"light_limit"`
	HeavyUsed       int           `json:"heavy_used"`
	HeavyLimit      int           `json:"heavy_limit"`
	Overload        OverloadLevel `json:"overload"`
	Feasibility     float64       `json:"feasibility"` // 0-1
	Recommendations []string      `json:"recommendations,omitempty"`
}

// UnscheduledTask records a task the scheduler could not place, with the
// reason it was passed over.
type UnscheduledTask struct {
	TaskID string `json:"task_id"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// DayBreakdown pairs a horizon date with its capacity status, placements and
// a quality score in [0,100].
type DayBreakdown struct {
	Date     string              `json:"date"`
	Capacity DailyCapacityStatus `json:"capacity"`
	Tasks    []ScheduledTask     `json:"tasks,omitempty"`
	Quality  float64             `json:"quality"`
}

// ScheduleMetrics are the optimization metrics of one generation run, all
// normalized to [0,1].
type ScheduleMetrics struct {
	SchedulingRate       float64 `json:"scheduling_rate"`
	AvgConfidence        float64 `json:"avg_confidence"`
	LoadBalance          float64 `json:"load_balance"`
	TimeEfficiency       float64 `json:"time_efficiency"`
	PriorityAdherence    float64 `json:"priority_adherence"`
	DependencyCompliance float64 `json:"dependency_compliance"`
}

// ScheduleResult is the full output of one scheduling run.
type ScheduleResult struct {
	GeneratedAt     time.Time         `json:"generated_at"`
	StartDate       string            `json:"start_date"`
	HorizonDays     int               `json:"horizon_days"`
	Fingerprint     uint64            `json:"fingerprint"` // hash of profile+tasks+config inputs
	Scheduled       []ScheduledTask   `json:"scheduled"`
	Unscheduled     []UnscheduledTask `json:"unscheduled,omitempty"`
	Days            []DayBreakdown    `json:"days"`
	Metrics         ScheduleMetrics   `json:"metrics"`
	Warnings        []string          `json:"warnings,omitempty"`
	Recommendations []string          `json:"recommendations,omitempty"`
}
