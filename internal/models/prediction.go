package models

import "time"

type CapacityBucket string

const (
	BucketUnderutilized CapacityBucket = "underutilized"
	BucketOptimal       CapacityBucket = "optimal"
	BucketNearLimit     CapacityBucket = "near_limit"
	BucketOverloaded    CapacityBucket = "overloaded"
)

type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendCyclical   TrendDirection = "cyclical"
	TrendStable     TrendDirection = "stable"
)

type AlertKind string

const (
	AlertOverload         AlertKind = "overload"
	AlertBurnout          AlertKind = "burnout"
	AlertDeadlineMiss     AlertKind = "deadline_miss"
	AlertResourceConflict AlertKind = "resource_conflict"
)

type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "low"
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

type DataQuality string

const (
	QualityPoor      DataQuality = "poor"
	QualityFair      DataQuality = "fair"
	QualityGood      DataQuality = "good"
	QualityExcellent DataQuality = "excellent"
)

type RecommendationPriority string

const (
	RecommendationUrgent RecommendationPriority = "urgent"
	RecommendationNormal RecommendationPriority = "normal"
	RecommendationLow    RecommendationPriority = "low"
)

// DailyPrediction is the per-day breakdown inside a weekly prediction.
type DailyPrediction struct {
	Date           string         `json:"date"`
	AvailableHours float64        `json:"available_hours"`
	ScheduledHours float64        `json:"scheduled_hours"`
	ExpectedHours  float64        `json:"expected_hours"` // synthesized new work
	Utilization    float64        `json:"utilization"`
	Bucket         CapacityBucket `json:"bucket"`
}

// WeeklyPrediction covers one of the four forecast weeks.
type WeeklyPrediction struct {
	WeekStart      string            `json:"week_start"` // YYYY-MM-DD format
	Days           []DailyPrediction `json:"days"`
	AvailableHours float64           `json:"available_hours"`
	ScheduledHours float64           `json:"scheduled_hours"`
	FlexibleHours  float64           `json:"flexible_hours"`
	ReservedHours  float64           `json:"reserved_hours"`
	RiskDays       int               `json:"risk_days"`
	CriticalDays   int               `json:"critical_days"`
	MoveEarlier    []string          `json:"move_earlier,omitempty"` // task ids worth pulling forward
	Defer          []string          `json:"defer,omitempty"`        // task ids worth pushing out
	OptimalDays    []string          `json:"optimal_days,omitempty"`
}

// TrendAnalysis classifies the coming month's workload trajectory.
type TrendAnalysis struct {
	ExpectedGrowth float64        `json:"expected_growth"` // fraction, e.g. 0.1 == +10%
	SeasonalImpact float64        `json:"seasonal_impact"`
	PersonalImpact float64        `json:"personal_impact"`
	Pattern        TrendDirection `json:"pattern"`
}

type RiskAlert struct {
	Kind     AlertKind     `json:"kind"`
	Severity AlertSeverity `json:"severity"`
	Message  string        `json:"message"`
	Weeks    []int         `json:"weeks,omitempty"` // 1-based affected week numbers
}

type Recommendation struct {
	Priority RecommendationPriority `json:"priority"`
	Action   string                 `json:"action"`
	Message  string                 `json:"message"`
	TaskIDs  []string               `json:"task_ids,omitempty"`
}

// FuturePrediction is a pure, read-only derivation valid for exactly seven
// days after generation; stale predictions must be regenerated, never reused.
type FuturePrediction struct {
	GeneratedAt     time.Time          `json:"generated_at"`
	ValidUntil      time.Time          `json:"valid_until"`
	Fingerprint     uint64             `json:"fingerprint"`
	Weeks           []WeeklyPrediction `json:"weeks"`
	Trends          TrendAnalysis      `json:"trends"`
	Alerts          []RiskAlert        `json:"alerts,omitempty"`
	Recommendations []Recommendation   `json:"recommendations,omitempty"`
	Accuracy        float64            `json:"accuracy"`
	Confidence      float64            `json:"confidence"`
	Quality         DataQuality        `json:"quality"`
}

// IsValidAt reports whether the prediction may still be used at t.
func (p FuturePrediction) IsValidAt(t time.Time) bool {
	return t.Before(p.ValidUntil)
}
