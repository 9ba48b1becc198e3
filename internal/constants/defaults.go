package constants

const (
	// Weight bounds for tasks and the default used when a task arrives
	// without an estimate and preprocessing cannot derive one.
	WeightMin     = 1
	WeightMax     = 10
	DefaultWeight = 5

	// LightWeightMax and HeavyWeightMin classify tasks and slots by weight.
	LightWeightMax = 3
	HeavyWeightMin = 7

	// SlotHoursDivisor spreads the daily weight limit over a nominal workday
	// when deriving per-hour slot capacity.
	SlotHoursDivisor = 8

	// Energy multipliers applied to per-hour slot capacity
	EnergyHighMultiplier   = 1.5
	EnergyMediumMultiplier = 1.0
	EnergyLowMultiplier    = 0.5

	// Profile defaults
	DefaultDailyWeightLimit = 20
	DefaultMaxDailyHours    = 8.0
	DefaultLightSlots       = 3
	DefaultHeavySlots       = 2

	// Scheduling configuration defaults
	DefaultHorizonDays = 7
	DefaultMinSplitMin = 30
	DefaultMaxSplits   = 3

	// Capacity utilization thresholds for overload classification
	UtilizationCritical = 1.0
	UtilizationHigh     = 0.9
	UtilizationMedium   = 0.7

	// Forecast constants
	ForecastWeeks          = 4
	ReservedCapacityRatio  = 0.15
	WeeklyUncertaintyStep  = 0.2
	DefaultExpectedGrowth  = 0.1
	SeasonalImpactScale    = 0.5
	PersonalImpactScale    = 0.3
	PredictionValidityDays = 7

	// Capacity bucket thresholds on utilization
	BucketUnderutilizedMax = 0.5
	BucketOptimalMax       = 0.8
	BucketNearLimitMax     = 1.0

	// Risk-day thresholds for the overload alert
	OverloadAlertLow    = 2
	OverloadAlertMedium = 5
	OverloadAlertHigh   = 8

	DefaultTimezone = "Local"
)
