package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/ballast/internal/models"
)

// assembleResult builds the final schedule result: per-day breakdowns with
// capacity status and quality scores, run metrics, warnings and
// recommendations.
func (s *Scheduler) assembleResult(days []*dayState, unscheduled []models.UnscheduledTask) models.ScheduleResult {
	result := models.ScheduleResult{
		GeneratedAt: time.Now(),
		StartDate:   s.config.StartDate,
		HorizonDays: s.config.HorizonDays,
		Unscheduled: unscheduled,
	}

	for _, day := range days {
		capacity := s.engine.DailyCapacity(day.date, day.placed)
		result.Scheduled = append(result.Scheduled, day.placed...)
		result.Days = append(result.Days, models.DayBreakdown{
			Date:     day.date,
			Capacity: capacity,
			Tasks:    day.placed,
			Quality:  dayQuality(capacity, day),
		})
	}

	result.Metrics = s.computeMetrics(result)
	result.Warnings = s.warnings(result)
	result.Recommendations = s.recommendations(result)
	return result
}

// dayQuality starts at 100, penalizes over-utilization, and adjusts for how
// well task energy needs line up with their slots.
func dayQuality(capacity models.DailyCapacityStatus, day *dayState) float64 {
	quality := 100.0
	if capacity.Utilization > 1 {
		quality -= (capacity.Utilization - 1) * 100
	} else if capacity.Utilization > 0.9 {
		quality -= 10
	}
	quality += 10 * (energyBalance(day) - 0.5)
	if quality < 0 {
		quality = 0
	}
	if quality > 100 {
		quality = 100
	}
	return quality
}

// energyBalance is the fraction of the day's placements that fit their
// window well, with placement confidence as the fit signal. Empty days count
// as neutral.
func energyBalance(day *dayState) float64 {
	if len(day.placed) == 0 {
		return 0.5
	}
	matched := 0
	for _, st := range day.placed {
		if st.Confidence >= 0.7 {
			matched++
		}
	}
	return float64(matched) / float64(len(day.placed))
}

func (s *Scheduler) computeMetrics(result models.ScheduleResult) models.ScheduleMetrics {
	m := models.ScheduleMetrics{DependencyCompliance: 1}

	scheduledTasks := uniqueTaskCount(result.Scheduled)
	total := scheduledTasks + len(result.Unscheduled)
	if total > 0 {
		m.SchedulingRate = float64(scheduledTasks) / float64(total)
	}

	if len(result.Scheduled) > 0 {
		var confSum float64
		for _, st := range result.Scheduled {
			confSum += st.Confidence
		}
		m.AvgConfidence = confSum / float64(len(result.Scheduled))
	}

	m.LoadBalance = loadBalance(result.Days)
	m.TimeEfficiency = timeEfficiency(result.Days)
	m.PriorityAdherence = m.SchedulingRate // every run schedules strictly in priority order

	return m
}

func uniqueTaskCount(scheduled []models.ScheduledTask) int {
	seen := make(map[string]bool)
	for _, st := range scheduled {
		seen[st.TaskID] = true
	}
	return len(seen)
}

// loadBalance is 1 minus the coefficient of variation of daily scheduled
// weight, clamped to [0,1]. A perfectly even horizon scores 1.
func loadBalance(days []models.DayBreakdown) float64 {
	if len(days) == 0 {
		return 1
	}
	var sum float64
	for _, d := range days {
		sum += d.Capacity.ScheduledWeight
	}
	mean := sum / float64(len(days))
	if mean == 0 {
		return 1
	}
	var variance float64
	for _, d := range days {
		diff := d.Capacity.ScheduledWeight - mean
		variance += diff * diff
	}
	variance /= float64(len(days))
	balance := 1 - math.Sqrt(variance)/mean
	if balance < 0 {
		return 0
	}
	return balance
}

func timeEfficiency(days []models.DayBreakdown) float64 {
	var available, scheduled float64
	for _, d := range days {
		available += d.Capacity.AvailableHours
		scheduled += d.Capacity.ScheduledHours
	}
	if available == 0 {
		return 0
	}
	eff := scheduled / available
	if eff > 1 {
		return 1
	}
	return eff
}

func (s *Scheduler) warnings(result models.ScheduleResult) []string {
	var warnings []string
	if n := len(result.Unscheduled); n > 0 {
		warnings = append(warnings, fmt.Sprintf("%d task(s) could not be scheduled", n))
	}
	for _, d := range result.Days {
		if d.Capacity.Overload == models.OverloadCritical {
			warnings = append(warnings, fmt.Sprintf("%s is over capacity", d.Date))
		}
	}
	return warnings
}

func (s *Scheduler) recommendations(result models.ScheduleResult) []string {
	var recs []string
	if result.Metrics.SchedulingRate < 0.8 {
		recs = append(recs, "extend the scheduling horizon to fit more tasks")
	}
	if result.Metrics.AvgConfidence > 0 && result.Metrics.AvgConfidence < 0.7 {
		recs = append(recs, "relax task constraints to improve placement quality")
	}
	if result.Metrics.LoadBalance < 0.5 && len(result.Days) > 1 {
		recs = append(recs, "load is uneven across the horizon; consider rebalancing")
	}
	return recs
}
