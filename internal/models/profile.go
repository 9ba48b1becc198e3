package models

// TimeWindow is a recurring daily window in HH:MM format, end exclusive.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ResourceProfile declares a user's daily working capacity and preferences.
// Profiles are immutable for the duration of an engine call.
type ResourceProfile struct {
	DailyWeightLimit   int                     `json:"daily_weight_limit"`
	LightSlots         int                     `json:"light_slots"` // max light tasks per day
	HeavySlots         int                     `json:"heavy_slots"` // max heavy tasks per day
	MaxDailyHours      float64                 `json:"max_daily_hours"`
	PreferredWindows   []TimeWindow            `json:"preferred_windows,omitempty"`
	UnavailableWindows []TimeWindow            `json:"unavailable_windows,omitempty"`
	ProductiveWindows  []TimeWindow            `json:"productive_windows,omitempty"`
	FocusCapacity      FocusBand               `json:"focus_capacity,omitempty"`
	Resources          map[string][]TimeWindow `json:"resources,omitempty"` // availability windows per named resource
}
