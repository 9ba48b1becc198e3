package constraint

import (
	"fmt"

	"github.com/julianstephens/ballast/internal/constants"
	"github.com/julianstephens/ballast/internal/models"
)

// DailyCapacity aggregates one day's committed load against the profile's
// limits. It never fails: a bad date simply yields zero available hours, and
// placements with missing data fall back to defaults (baseline weight 5).
func (e *Engine) DailyCapacity(date string, scheduled []models.ScheduledTask) models.DailyCapacityStatus {
	status := models.DailyCapacityStatus{
		Date:        date,
		WeightLimit: e.profile.DailyWeightLimit,
		LightLimit:  e.profile.LightSlots,
		HeavyLimit:  e.profile.HeavySlots,
	}

	if slots, err := e.AvailableSlots(date); err == nil {
		var minutes int
		for _, s := range slots {
			minutes += slotDuration(s)
		}
		status.AvailableHours = float64(minutes) / 60
		if status.AvailableHours > e.profile.MaxDailyHours {
			status.AvailableHours = e.profile.MaxDailyHours
		}
	}

	for _, st := range scheduled {
		w := st.Weight
		if w <= 0 {
			w = constants.DefaultWeight
		}
		status.ScheduledWeight += w
		status.ScheduledHours += float64(st.DurationMin()) / 60

		switch {
		case w <= constants.LightWeightMax:
			status.LightUsed++
		case w >= constants.HeavyWeightMin:
			status.HeavyUsed++
		}
	}

	status.RemainingWeight = float64(status.WeightLimit) - status.ScheduledWeight
	status.RemainingHours = status.AvailableHours - status.ScheduledHours
	if status.WeightLimit > 0 {
		status.Utilization = status.ScheduledWeight / float64(status.WeightLimit)
	}

	status.Overload = overloadLevel(status.Utilization, status.ScheduledHours, e.profile.MaxDailyHours)
	status.Feasibility = feasibility(status.Utilization, status.ScheduledHours, e.profile.MaxDailyHours)
	status.Recommendations = capacityRecommendations(status)

	return status
}

func overloadLevel(utilization, scheduledHours, maxHours float64) models.OverloadLevel {
	switch {
	case utilization > constants.UtilizationCritical || scheduledHours > maxHours:
		return models.OverloadCritical
	case utilization > constants.UtilizationHigh:
		return models.OverloadHigh
	case utilization > constants.UtilizationMedium:
		return models.OverloadMedium
	default:
		return models.OverloadLow
	}
}

// feasibility degrades proportionally to the over-capacity amount, on both
// the weight and the hours axis, and bottoms out at zero.
func feasibility(utilization, scheduledHours, maxHours float64) float64 {
	f := 1.0
	if utilization > 1 {
		f -= utilization - 1
	}
	if maxHours > 0 && scheduledHours > maxHours {
		f -= (scheduledHours - maxHours) / maxHours
	}
	if f < 0 {
		f = 0
	}
	return f
}

func capacityRecommendations(status models.DailyCapacityStatus) []string {
	var recs []string
	switch status.Overload {
	case models.OverloadCritical:
		recs = append(recs, fmt.Sprintf("day is over capacity (%.0f%% of weight budget); move or split tasks", status.Utilization*100))
	case models.OverloadHigh:
		recs = append(recs, "day is nearly full; avoid adding heavy tasks")
	}
	if status.HeavyLimit > 0 && status.HeavyUsed > status.HeavyLimit {
		recs = append(recs, fmt.Sprintf("%d heavy tasks exceed the %d-slot budget", status.HeavyUsed, status.HeavyLimit))
	}
	if status.LightLimit > 0 && status.LightUsed > status.LightLimit {
		recs = append(recs, fmt.Sprintf("%d light tasks exceed the %d-slot budget", status.LightUsed, status.LightLimit))
	}
	return recs
}
