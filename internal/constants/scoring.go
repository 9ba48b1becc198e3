package constants

// Placement scoring. Every check applies a fixed delta to a base score of 100;
// the order of checks is part of the engine contract and must not be reordered.
const (
	BaseScore = 100

	PenaltyWeightOverCapacity  = 50
	PenaltyDurationOverrun     = 30
	BonusSplittableOffset      = 15
	PenaltyEnergyMismatch      = 25
	PenaltyFocusMismatch       = 20
	PenaltyTimeOfDayMismatch   = 15
	PenaltyInterruptionRisk    = 20
	PenaltyUnresolvedDep       = 40
	PenaltyCollaborationOffHrs = 15
	PenaltyResourceUnavailable = 10
	BonusOptimalSlot           = 10
	BonusEnergyMatch           = 5

	// PlacementThreshold is the minimum score for a placement to be allowed.
	PlacementThreshold = 50

	// AlternativeThreshold gates the alternative-slot search: scores below it
	// trigger the search, and only slots scoring above it qualify.
	AlternativeThreshold = 70

	// MaxAlternatives bounds the alternative slots returned per evaluation.
	MaxAlternatives = 3
)

// Priority scoring (composite, pre scaling by the configured priority factor)
const (
	QuadrantUrgentImportantBase       = 100
	QuadrantUrgentNotImportantBase    = 80
	QuadrantNotUrgentImportantBase    = 60
	QuadrantNotUrgentNotImportantBase = 30

	DeadlineBonusOneDay    = 50
	DeadlineBonusThreeDays = 30
	DeadlineBonusSevenDays = 15

	RiskBonusHigh   = 25
	RiskBonusMedium = 10

	BlockedTaskBonus = 10
	WeightBonusScale = 2
)
