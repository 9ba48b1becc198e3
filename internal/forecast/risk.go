package forecast

import (
	"fmt"

	"github.com/julianstephens/ballast/internal/constants"
	"github.com/julianstephens/ballast/internal/models"
)

// highRiskWeekDays is the risk-day count that marks a whole week high risk.
const highRiskWeekDays = 3

// buildAlerts derives the risk alerts from the weekly predictions, the trend
// analysis, and the live task set.
func buildAlerts(weeks []models.WeeklyPrediction, trends models.TrendAnalysis, tasks []models.Task) []models.RiskAlert {
	var alerts []models.RiskAlert

	if a, ok := overloadAlert(weeks); ok {
		alerts = append(alerts, a)
	}
	if a, ok := burnoutAlert(weeks, trends); ok {
		alerts = append(alerts, a)
	}
	if a, ok := deadlineAlert(weeks, tasks); ok {
		alerts = append(alerts, a)
	}
	if a, ok := resourceAlert(weeks); ok {
		alerts = append(alerts, a)
	}
	return alerts
}

// overloadAlert rates overall overload risk from the total risk-day count.
func overloadAlert(weeks []models.WeeklyPrediction) (models.RiskAlert, bool) {
	var riskDays int
	var affected []int
	for i, w := range weeks {
		riskDays += w.RiskDays
		if w.RiskDays > 0 {
			affected = append(affected, i+1)
		}
	}

	var severity models.AlertSeverity
	switch {
	case riskDays >= constants.OverloadAlertHigh:
		severity = models.SeverityHigh
	case riskDays >= constants.OverloadAlertMedium:
		severity = models.SeverityMedium
	case riskDays >= constants.OverloadAlertLow:
		severity = models.SeverityLow
	default:
		return models.RiskAlert{}, false
	}

	return models.RiskAlert{
		Kind:     models.AlertOverload,
		Severity: severity,
		Message:  fmt.Sprintf("%d day(s) in the next four weeks are at or over capacity", riskDays),
		Weeks:    affected,
	}, true
}

// burnoutAlert combines critical-day count with the longest consecutive
// streak of high-risk weeks, amplified one level when the workload trend is
// increasing with high expected growth.
func burnoutAlert(weeks []models.WeeklyPrediction, trends models.TrendAnalysis) (models.RiskAlert, bool) {
	var criticalDays, streak, longest int
	var affected []int
	for i, w := range weeks {
		criticalDays += w.CriticalDays
		if w.RiskDays >= highRiskWeekDays {
			streak++
			if streak > longest {
				longest = streak
			}
			affected = append(affected, i+1)
		} else {
			streak = 0
		}
	}

	var severity models.AlertSeverity
	switch {
	case criticalDays >= 5 || longest >= 3:
		severity = models.SeverityCritical
	case criticalDays >= 3 || longest >= 2:
		severity = models.SeverityHigh
	case criticalDays >= 1 || longest >= 1:
		severity = models.SeverityMedium
	default:
		return models.RiskAlert{}, false
	}

	if trends.Pattern == models.TrendIncreasing && trends.ExpectedGrowth > 0.2 {
		severity = escalate(severity)
	}

	return models.RiskAlert{
		Kind:     models.AlertBurnout,
		Severity: severity,
		Message:  fmt.Sprintf("%d fully booked day(s) and a %d-week high-risk streak ahead", criticalDays, longest),
		Weeks:    affected,
	}, true
}

func deadlineAlert(weeks []models.WeeklyPrediction, tasks []models.Task) (models.RiskAlert, bool) {
	var urgent int
	for _, t := range tasks {
		if t.IsComplete() {
			continue
		}
		if t.Quadrant == models.QuadrantUrgentImportant || t.Quadrant == models.QuadrantUrgentNotImportant {
			urgent++
		}
	}

	var criticalWeeks []int
	for i, w := range weeks {
		if w.CriticalDays > 0 {
			criticalWeeks = append(criticalWeeks, i+1)
		}
	}
	if urgent == 0 || len(criticalWeeks) == 0 {
		return models.RiskAlert{}, false
	}

	severity := models.SeverityLow
	switch {
	case urgent >= 5 && len(criticalWeeks) >= 2:
		severity = models.SeverityHigh
	case urgent >= 2:
		severity = models.SeverityMedium
	}

	return models.RiskAlert{
		Kind:     models.AlertDeadlineMiss,
		Severity: severity,
		Message:  fmt.Sprintf("%d urgent task(s) compete with overloaded weeks", urgent),
		Weeks:    criticalWeeks,
	}, true
}

// resourceAlert flags weeks whose remaining capacity drops below 20%.
func resourceAlert(weeks []models.WeeklyPrediction) (models.RiskAlert, bool) {
	var affected []int
	for i, w := range weeks {
		if w.AvailableHours <= 0 {
			continue
		}
		if (w.AvailableHours-w.ScheduledHours)/w.AvailableHours < 0.2 {
			affected = append(affected, i+1)
		}
	}
	if len(affected) == 0 {
		return models.RiskAlert{}, false
	}

	severity := models.SeverityLow
	switch {
	case len(affected) >= 3:
		severity = models.SeverityHigh
	case len(affected) >= 2:
		severity = models.SeverityMedium
	}

	return models.RiskAlert{
		Kind:     models.AlertResourceConflict,
		Severity: severity,
		Message:  fmt.Sprintf("%d week(s) retain less than 20%% free capacity", len(affected)),
		Weeks:    affected,
	}, true
}

func escalate(s models.AlertSeverity) models.AlertSeverity {
	switch s {
	case models.SeverityLow:
		return models.SeverityMedium
	case models.SeverityMedium:
		return models.SeverityHigh
	default:
		return models.SeverityCritical
	}
}

// buildRecommendations turns the weekly findings and alerts into actionable
// items ordered by priority.
func buildRecommendations(weeks []models.WeeklyPrediction, alerts []models.RiskAlert) []models.Recommendation {
	var recs []models.Recommendation

	var highRiskWeeks, underutilized int
	var movable []string
	for _, w := range weeks {
		if w.RiskDays >= highRiskWeekDays {
			highRiskWeeks++
		}
		if w.AvailableHours > 0 && (w.AvailableHours-w.ScheduledHours)/w.AvailableHours > 0.4 {
			underutilized++
		}
		movable = append(movable, w.MoveEarlier...)
	}

	if highRiskWeeks >= 2 {
		recs = append(recs, models.Recommendation{
			Priority: models.RecommendationUrgent,
			Action:   "mitigate_risk",
			Message:  fmt.Sprintf("%d of the next four weeks are high risk; reduce committed load now", highRiskWeeks),
		})
	}

	if len(movable) > 0 {
		recs = append(recs, models.Recommendation{
			Priority: models.RecommendationNormal,
			Action:   "front_load",
			Message:  "move flexible tasks into earlier, quieter days",
			TaskIDs:  movable,
		})
	}

	for _, a := range alerts {
		if a.Kind == models.AlertBurnout && (a.Severity == models.SeverityHigh || a.Severity == models.SeverityCritical) {
			recs = append(recs, models.Recommendation{
				Priority: models.RecommendationUrgent,
				Action:   "balance_workload",
				Message:  "sustained overload ahead; rebalance or drop commitments",
			})
			break
		}
	}

	if underutilized >= 2 {
		recs = append(recs, models.Recommendation{
			Priority: models.RecommendationLow,
			Action:   "adjust_capacity",
			Message:  fmt.Sprintf("%d week(s) have over 40%% spare capacity; consider pulling work forward", underutilized),
		})
	}

	return recs
}
