package models

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusDeferred   TaskStatus = "deferred"
)

type PriorityQuadrant string

const (
	QuadrantUrgentImportant       PriorityQuadrant = "urgent_important"
	QuadrantUrgentNotImportant    PriorityQuadrant = "urgent_not_important"
	QuadrantNotUrgentImportant    PriorityQuadrant = "not_urgent_important"
	QuadrantNotUrgentNotImportant PriorityQuadrant = "not_urgent_not_important"
)

type EnergyBand string

const (
	EnergyLow    EnergyBand = "low"
	EnergyMedium EnergyBand = "medium"
	EnergyHigh   EnergyBand = "high"
)

type FocusBand string

const (
	FocusLow    FocusBand = "low"
	FocusMedium FocusBand = "medium"
	FocusHigh   FocusBand = "high"
)

type ComplexityBand string

const (
	ComplexitySimple   ComplexityBand = "simple"
	ComplexityModerate ComplexityBand = "moderate"
	ComplexityComplex  ComplexityBand = "complex"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeFlexible  TimeOfDay = "flexible"
)

type Tolerance string

const (
	ToleranceLow    Tolerance = "low"
	ToleranceMedium Tolerance = "medium"
	ToleranceHigh   Tolerance = "high"
)

// Task is a weighted unit of work supplied by the task source. Weight is an
// abstract cognitive/time cost in [1,10], distinct from raw duration. Tasks
// are read-only inputs to the engines; a zero Weight means "estimate for me".
type Task struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Weight        int              `json:"weight,omitempty"`
	DurationMin   int              `json:"duration_min"`
	Complexity    ComplexityBand   `json:"complexity,omitempty"`
	Splittable    bool             `json:"splittable"`
	MinSplitMin   int              `json:"min_split_min,omitempty"`
	DependsOn     []string         `json:"depends_on,omitempty"`
	Blocks        []string         `json:"blocks,omitempty"`
	Urgency       int              `json:"urgency,omitempty"`    // 0-100
	Importance    int              `json:"importance,omitempty"` // 0-100
	Quadrant      PriorityQuadrant `json:"quadrant,omitempty"`
	Energy        EnergyBand       `json:"energy,omitempty"` // required energy level
	Focus         FocusBand        `json:"focus,omitempty"`  // required focus level
	Collaborative bool             `json:"collaborative,omitempty"`
	Resources     []string         `json:"resources,omitempty"`
	OptimalTime   TimeOfDay        `json:"optimal_time,omitempty"`
	Interruptible Tolerance        `json:"interruptible,omitempty"`
	Deadline      string           `json:"deadline,omitempty"` // YYYY-MM-DD format
	BufferDays    int              `json:"buffer_days,omitempty"`
	Risk          RiskLevel        `json:"risk,omitempty"`
	Status        TaskStatus       `json:"status"`
}

// IsComplete reports whether the task no longer needs scheduling.
func (t Task) IsComplete() bool {
	return t.Status == TaskStatusCompleted
}
