package models

type SlotCategory string

const (
	SlotLight SlotCategory = "light"
	SlotHeavy SlotCategory = "heavy"
	SlotMixed SlotCategory = "mixed"
)

type ConflictRisk string

const (
	ConflictLow    ConflictRisk = "low"
	ConflictMedium ConflictRisk = "medium"
	ConflictHigh   ConflictRisk = "high"
)

// TimeSlot is an open time window on a single date with derived capacity
// attributes. Start/End are HH:MM, end exclusive.
type TimeSlot struct {
	Start        string       `json:"start"`
	End          string       `json:"end"`
	Weight       float64      `json:"weight"` // available weight capacity
	Category     SlotCategory `json:"category"`
	Energy       EnergyBand   `json:"energy"`
	Optimal      bool         `json:"optimal"`
	ConflictRisk ConflictRisk `json:"conflict_risk"`
}
