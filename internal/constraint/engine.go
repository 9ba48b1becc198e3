package constraint

import (
	"fmt"
	"time"

	"github.com/julianstephens/ballast/internal/constants"
	"github.com/julianstephens/ballast/internal/models"
	"github.com/julianstephens/ballast/internal/utils"
)

// Engine computes open time windows and placement feasibility for a single
// user. It holds no mutable state: a constructed engine is a read-only view
// over the profile and blackout entries it was built with, and is safe for
// concurrent use as long as callers do not mutate the inputs.
type Engine struct {
	profile models.ResourceProfile
	events  []models.CalendarEvent
}

// New creates a constraint engine for the given profile and blackout entries
// (calendar events and personal-schedule entries alike).
func New(profile models.ResourceProfile, events []models.CalendarEvent) *Engine {
	if profile.DailyWeightLimit <= 0 {
		profile.DailyWeightLimit = constants.DefaultDailyWeightLimit
	}
	if profile.MaxDailyHours <= 0 {
		profile.MaxDailyHours = constants.DefaultMaxDailyHours
	}
	if profile.LightSlots <= 0 {
		profile.LightSlots = constants.DefaultLightSlots
	}
	if profile.HeavySlots <= 0 {
		profile.HeavySlots = constants.DefaultHeavySlots
	}
	return &Engine{profile: profile, events: events}
}

// Profile returns the profile the engine was constructed with.
func (e *Engine) Profile() models.ResourceProfile {
	return e.profile
}

// AvailableSlots computes the ordered open windows for one date. The walk is
// hourly over [06:00, 23:00); adjacent hours sharing category and energy
// level are merged. The result is deterministic for fixed inputs.
func (e *Engine) AvailableSlots(date string) ([]models.TimeSlot, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	blackouts := e.blackoutsForDate(date)

	var hourly []models.TimeSlot
	for hour := constants.DayStartHour; hour < constants.DayEndHour; hour++ {
		start := hour * 60
		end := start + 60

		if overlapsAny(start, end, blackouts) {
			continue
		}
		if len(e.profile.PreferredWindows) > 0 && !overlapsAnyWindow(start, end, e.profile.PreferredWindows) {
			continue
		}

		energy := e.energyForHour(hour)
		weight := hourWeight(e.profile.DailyWeightLimit, energy)

		hourly = append(hourly, models.TimeSlot{
			Start:        utils.FormatMinutes(start),
			End:          utils.FormatMinutes(end),
			Weight:       weight,
			Category:     categoryForWeight(weight),
			Energy:       energy,
			Optimal:      overlapsAnyWindow(start, end, e.profile.ProductiveWindows),
			ConflictRisk: conflictRiskForHour(hour, day.Weekday()),
		})
	}

	return mergeAdjacent(hourly), nil
}

// blackoutsForDate collects the unavailable minute ranges for a date from the
// profile's unavailable windows and the calendar/personal entries. Entries
// without an explicit end occupy one hour.
func (e *Engine) blackoutsForDate(date string) [][2]int {
	var ranges [][2]int

	for _, w := range e.profile.UnavailableWindows {
		if r, ok := windowRange(w); ok {
			ranges = append(ranges, r)
		}
	}

	for _, ev := range e.events {
		if ev.Date != date {
			continue
		}
		start, err := utils.ParseTimeToMinutes(ev.Start)
		if err != nil {
			continue
		}
		end := start + 60
		if ev.End != "" {
			if m, err := utils.ParseTimeToMinutes(ev.End); err == nil {
				end = m
			}
		}
		ranges = append(ranges, [2]int{start, end})
	}

	return ranges
}

// energyForHour derives the energy level for an hour of day. Declared
// productive windows force high; otherwise a fixed time-of-day heuristic
// applies with low as the default.
func (e *Engine) energyForHour(hour int) models.EnergyBand {
	start := hour * 60
	if overlapsAnyWindow(start, start+60, e.profile.ProductiveWindows) {
		return models.EnergyHigh
	}
	switch {
	case hour >= 9 && hour < 12:
		return models.EnergyMedium
	case hour >= 14 && hour < 18:
		return models.EnergyMedium
	default:
		return models.EnergyLow
	}
}

func hourWeight(dailyLimit int, energy models.EnergyBand) float64 {
	base := float64(dailyLimit) / constants.SlotHoursDivisor
	switch energy {
	case models.EnergyHigh:
		return base * constants.EnergyHighMultiplier
	case models.EnergyMedium:
		return base * constants.EnergyMediumMultiplier
	default:
		return base * constants.EnergyLowMultiplier
	}
}

func categoryForWeight(weight float64) models.SlotCategory {
	switch {
	case weight <= constants.LightWeightMax:
		return models.SlotLight
	case weight >= constants.HeavyWeightMin:
		return models.SlotHeavy
	default:
		return models.SlotMixed
	}
}

func conflictRiskForHour(hour int, weekday time.Weekday) models.ConflictRisk {
	if hour < constants.BusinessStartHour || hour >= constants.EveningQuietHour {
		return models.ConflictLow
	}
	if weekday != time.Saturday && weekday != time.Sunday && hour < constants.BusinessEndHour {
		return models.ConflictHigh
	}
	return models.ConflictMedium
}

// mergeAdjacent merges consecutive slots that touch and share category and
// energy level. Weights accumulate so a merged slot carries its full capacity.
func mergeAdjacent(slots []models.TimeSlot) []models.TimeSlot {
	if len(slots) == 0 {
		return nil
	}

	merged := []models.TimeSlot{slots[0]}
	for _, s := range slots[1:] {
		last := &merged[len(merged)-1]
		if last.End == s.Start && last.Category == s.Category && last.Energy == s.Energy {
			last.End = s.End
			last.Weight += s.Weight
			last.Optimal = last.Optimal || s.Optimal
			if riskRank(s.ConflictRisk) > riskRank(last.ConflictRisk) {
				last.ConflictRisk = s.ConflictRisk
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

func riskRank(r models.ConflictRisk) int {
	switch r {
	case models.ConflictHigh:
		return 2
	case models.ConflictMedium:
		return 1
	default:
		return 0
	}
}

func overlapsAny(start, end int, ranges [][2]int) bool {
	for _, r := range ranges {
		if utils.RangesOverlap(start, end, r[0], r[1]) {
			return true
		}
	}
	return false
}

func overlapsAnyWindow(start, end int, windows []models.TimeWindow) bool {
	for _, w := range windows {
		if r, ok := windowRange(w); ok && utils.RangesOverlap(start, end, r[0], r[1]) {
			return true
		}
	}
	return false
}

func windowRange(w models.TimeWindow) ([2]int, bool) {
	start, err := utils.ParseTimeToMinutes(w.Start)
	if err != nil {
		return [2]int{}, false
	}
	end, err := utils.ParseTimeToMinutes(w.End)
	if err != nil {
		return [2]int{}, false
	}
	return [2]int{start, end}, true
}
