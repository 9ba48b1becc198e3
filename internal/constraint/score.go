package constraint

import (
	"fmt"
	"sort"

	"github.com/julianstephens/ballast/internal/constants"
	"github.com/julianstephens/ballast/internal/models"
	"github.com/julianstephens/ballast/internal/utils"
)

// ScoreContext carries the day state a placement is scored against.
type ScoreContext struct {
	// DayTasks are the placements already committed for the date.
	DayTasks []models.ScheduledTask
	// Completed marks task ids known to be complete, for dependency checks.
	Completed map[string]bool
}

// PlacementScore is the outcome of scoring one task against one slot.
type PlacementScore struct {
	CanPlace    bool
	Score       int // 0-100
	Reasons     []string
	Suggestions []string
}

// Placement wraps a score with up to three alternative slots when the
// primary score is weak.
type Placement struct {
	PlacementScore
	Alternatives []models.TimeSlot
}

// ScoreTask is the base scorer: it evaluates a single task against a single
// slot with no alternative search. The score starts at 100 and walks a fixed,
// ordered checklist of penalties and bonuses; placement is allowed iff the
// clamped score reaches the threshold.
func (e *Engine) ScoreTask(task models.Task, slot models.TimeSlot, date string, ctx ScoreContext) PlacementScore {
	score := constants.BaseScore
	var reasons, suggestions []string

	slotDur := slotDuration(slot)

	// 1. weight vs slot capacity (reduced by load already on the day)
	if float64(task.Weight) > e.remainingSlotWeight(slot, ctx.DayTasks) {
		score -= constants.PenaltyWeightOverCapacity
		reasons = append(reasons, fmt.Sprintf("weight %d exceeds slot capacity", task.Weight))
	}

	// 2. duration vs slot duration
	if task.DurationMin > slotDur {
		score -= constants.PenaltyDurationOverrun
		reasons = append(reasons, fmt.Sprintf("duration %dm exceeds slot %dm", task.DurationMin, slotDur))
		if task.Splittable {
			score += constants.BonusSplittableOffset
			suggestions = append(suggestions, "task is splittable; consider splitting across windows")
		}
	}

	// 3. energy requirement
	if task.Energy == models.EnergyHigh && slot.Energy == models.EnergyLow {
		score -= constants.PenaltyEnergyMismatch
		reasons = append(reasons, "high energy requirement in a low-energy slot")
	}

	// 4. focus requirement
	if task.Focus == models.FocusHigh && e.profile.FocusCapacity == models.FocusLow {
		score -= constants.PenaltyFocusMismatch
		reasons = append(reasons, "high focus requirement against low focus capacity")
	}

	// 5. optimal time of day
	if task.OptimalTime != "" && task.OptimalTime != models.TimeFlexible && !slotMatchesTimeOfDay(slot, task.OptimalTime) {
		score -= constants.PenaltyTimeOfDayMismatch
		reasons = append(reasons, fmt.Sprintf("slot is outside the task's %s preference", task.OptimalTime))
		suggestions = append(suggestions, fmt.Sprintf("prefer a %s slot", task.OptimalTime))
	}

	// 6. interruption tolerance
	if task.Interruptible == models.ToleranceLow && slot.ConflictRisk == models.ConflictHigh {
		score -= constants.PenaltyInterruptionRisk
		reasons = append(reasons, "low interruption tolerance in a high-conflict slot")
	}

	// 7. dependencies
	for _, dep := range task.DependsOn {
		if !ctx.Completed[dep] {
			score -= constants.PenaltyUnresolvedDep
			reasons = append(reasons, fmt.Sprintf("dependency %s is not complete", dep))
			break
		}
	}

	// 8. collaboration needs business hours
	if task.Collaborative && !slotWithinBusinessHours(slot) {
		score -= constants.PenaltyCollaborationOffHrs
		reasons = append(reasons, "collaborative task outside business hours")
	}

	// 9. required resources
	if res, ok := e.unavailableResource(task, slot); ok {
		score -= constants.PenaltyResourceUnavailable
		reasons = append(reasons, fmt.Sprintf("resource %q unavailable in this slot", res))
	}

	// 10. bonuses
	if slot.Optimal {
		score += constants.BonusOptimalSlot
	}
	if task.Energy != "" && task.Energy == slot.Energy {
		score += constants.BonusEnergyMatch
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return PlacementScore{
		CanPlace:    score >= constants.PlacementThreshold,
		Score:       score,
		Reasons:     reasons,
		Suggestions: suggestions,
	}
}

// EvaluatePlacement scores a placement and, when the score is weak, locates
// up to three alternative slots scoring above the alternative threshold. The
// alternative pass uses a simplified, unmerged slot set and always scores
// with alternatives suppressed, bounding the search to one extra sweep.
func (e *Engine) EvaluatePlacement(task models.Task, slot models.TimeSlot, date string, ctx ScoreContext) Placement {
	base := e.ScoreTask(task, slot, date, ctx)
	p := Placement{PlacementScore: base}
	if base.Score >= constants.AlternativeThreshold {
		return p
	}

	candidates, err := e.simplifiedSlots(date)
	if err != nil {
		return p
	}

	type scored struct {
		slot  models.TimeSlot
		score int
	}
	var better []scored
	for _, cand := range candidates {
		if cand.Start == slot.Start && cand.End == slot.End {
			continue
		}
		s := e.ScoreTask(task, cand, date, ctx)
		if s.Score > constants.AlternativeThreshold {
			better = append(better, scored{cand, s.Score})
		}
	}
	sort.SliceStable(better, func(i, j int) bool { return better[i].score > better[j].score })
	for i := 0; i < len(better) && i < constants.MaxAlternatives; i++ {
		p.Alternatives = append(p.Alternatives, better[i].slot)
	}
	return p
}

// simplifiedSlots is the hour-granular slot set used for alternative search:
// the same exclusion and energy rules as AvailableSlots, without merging.
func (e *Engine) simplifiedSlots(date string) ([]models.TimeSlot, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, err
	}
	blackouts := e.blackoutsForDate(date)

	var slots []models.TimeSlot
	for hour := constants.DayStartHour; hour < constants.DayEndHour; hour++ {
		start := hour * 60
		if overlapsAny(start, start+60, blackouts) {
			continue
		}
		energy := e.energyForHour(hour)
		weight := hourWeight(e.profile.DailyWeightLimit, energy)
		slots = append(slots, models.TimeSlot{
			Start:        utils.FormatMinutes(start),
			End:          utils.FormatMinutes(start + 60),
			Weight:       weight,
			Category:     categoryForWeight(weight),
			Energy:       energy,
			Optimal:      overlapsAnyWindow(start, start+60, e.profile.ProductiveWindows),
			ConflictRisk: conflictRiskForHour(hour, day.Weekday()),
		})
	}
	return slots, nil
}

// remainingSlotWeight caps a slot's capacity by the weight budget left on
// the day, so a nearly full day shrinks every remaining slot.
func (e *Engine) remainingSlotWeight(slot models.TimeSlot, dayTasks []models.ScheduledTask) float64 {
	var used float64
	for _, st := range dayTasks {
		used += st.Weight
	}
	remaining := float64(e.profile.DailyWeightLimit) - used
	if remaining < 0 {
		remaining = 0
	}
	if slot.Weight < remaining {
		return slot.Weight
	}
	return remaining
}

func (e *Engine) unavailableResource(task models.Task, slot models.TimeSlot) (string, bool) {
	if len(task.Resources) == 0 || len(e.profile.Resources) == 0 {
		return "", false
	}
	start, err := utils.ParseTimeToMinutes(slot.Start)
	if err != nil {
		return "", false
	}
	end, err := utils.ParseTimeToMinutes(slot.End)
	if err != nil {
		return "", false
	}
	for _, res := range task.Resources {
		windows, ok := e.profile.Resources[res]
		if !ok {
			// Unknown resources are assumed always available
			continue
		}
		if !overlapsAnyWindow(start, end, windows) {
			return res, true
		}
	}
	return "", false
}

func slotDuration(slot models.TimeSlot) int {
	d, err := utils.MinutesBetween(slot.Start, slot.End)
	if err != nil {
		return 0
	}
	return d
}

func slotMatchesTimeOfDay(slot models.TimeSlot, tod models.TimeOfDay) bool {
	start, err := utils.ParseTimeToMinutes(slot.Start)
	if err != nil {
		return false
	}
	hour := start / 60
	switch tod {
	case models.TimeMorning:
		return hour < 12
	case models.TimeAfternoon:
		return hour >= 12 && hour < 18
	case models.TimeEvening:
		return hour >= 18
	default:
		return true
	}
}

func slotWithinBusinessHours(slot models.TimeSlot) bool {
	start, err := utils.ParseTimeToMinutes(slot.Start)
	if err != nil {
		return false
	}
	end, err := utils.ParseTimeToMinutes(slot.End)
	if err != nil {
		return false
	}
	return start >= constants.BusinessStartHour*60 && end <= constants.BusinessEndHour*60
}
