package models

// MonthlySnapshot is an aggregate over one month of past activity, supplied
// by the historical-data source. Consumed only by the forecast engine.
type MonthlySnapshot struct {
	Month           string  `json:"month"` // YYYY-MM format
	TasksCreated    int     `json:"tasks_created"`
	TasksCompleted  int     `json:"tasks_completed"`
	AvgTasksPerWeek float64 `json:"avg_tasks_per_week"`
	TotalHours      float64 `json:"total_hours"`
}

type FactorType string

const (
	FactorSeasonal FactorType = "seasonal"
	FactorPersonal FactorType = "personal"
	FactorWork     FactorType = "work"
	FactorIndustry FactorType = "industry"
)

// ExternalFactor adjusts forecast trends. Impact is normalized to [-1,1];
// out-of-range values are clamped on use.
type ExternalFactor struct {
	Type   FactorType `json:"type"`
	Name   string     `json:"name"`
	Impact float64    `json:"impact"`
}

// ClampedImpact returns Impact limited to [-1,1].
func (f ExternalFactor) ClampedImpact() float64 {
	if f.Impact > 1 {
		return 1
	}
	if f.Impact < -1 {
		return -1
	}
	return f.Impact
}
