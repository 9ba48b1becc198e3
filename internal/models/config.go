package models

type BalanceMode string

const (
	BalanceEven      BalanceMode = "even"       // spread load across the horizon
	BalanceFrontLoad BalanceMode = "front_load" // fill earliest days first
	BalanceEnergy    BalanceMode = "energy"     // favor energy-matched slots
)

// GoalWeights weight the optimization goals against each other. They are
// relative, not required to sum to one. Reserved for the optimization passes,
// which currently leave placements untouched.
type GoalWeights struct {
	Utilization float64 `json:"utilization" yaml:"utilization"`
	Confidence  float64 `json:"confidence" yaml:"confidence"`
	Balance     float64 `json:"balance" yaml:"balance"`
}

// SchedulingConfig parameterizes one scheduling run. A missing or unparsable
// StartDate or a non-positive HorizonDays is a fatal configuration error.
//
// AllowRescheduling, Balance, RiskTolerance and Goals are accepted, persisted
// and fingerprinted but reserved for the optimization passes; they do not yet
// change placements.
type SchedulingConfig struct {
	StartDate         string      `json:"start_date" yaml:"start_date"`                 // YYYY-MM-DD format
	HorizonDays       int         `json:"horizon_days" yaml:"horizon_days"`
	AllowSplitting    bool        `json:"allow_splitting" yaml:"allow_splitting"`
	AllowRescheduling bool        `json:"allow_rescheduling" yaml:"allow_rescheduling"` // reserved
	PriorityFactor    float64     `json:"priority_factor" yaml:"priority_factor"`
	Balance           BalanceMode `json:"balance" yaml:"balance"`                       // reserved
	RiskTolerance     RiskLevel   `json:"risk_tolerance" yaml:"risk_tolerance"`         // reserved
	MaxSplits         int         `json:"max_splits" yaml:"max_splits"`
	MinSplitMin       int         `json:"min_split_min" yaml:"min_split_min"`
	Goals             GoalWeights `json:"goals" yaml:"goals"`                           // reserved
}
