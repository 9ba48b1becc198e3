package forecast

import (
	"math"

	"github.com/julianstephens/ballast/internal/constants"
	"github.com/julianstephens/ballast/internal/models"
)

// analyzeTrends classifies the coming month's workload trajectory from the
// historical snapshots and external factors.
func analyzeTrends(history []models.MonthlySnapshot, factors []models.ExternalFactor) models.TrendAnalysis {
	trends := models.TrendAnalysis{
		ExpectedGrowth: expectedGrowth(history),
		Pattern:        classifyPattern(history),
	}

	var seasonalSum, personalSum float64
	var seasonalN, personalN int
	for _, f := range factors {
		switch f.Type {
		case models.FactorSeasonal:
			seasonalSum += f.ClampedImpact()
			seasonalN++
		case models.FactorPersonal:
			personalSum += f.ClampedImpact()
			personalN++
		}
	}
	if seasonalN > 0 {
		trends.SeasonalImpact = seasonalSum / float64(seasonalN) * constants.SeasonalImpactScale
	}
	if personalN > 0 {
		trends.PersonalImpact = personalSum / float64(personalN) * constants.PersonalImpactScale
	}

	return trends
}

// expectedGrowth derives the expected task increase from the delta across
// the three most recent historical periods, defaulting to 10% when history
// is too shallow.
func expectedGrowth(history []models.MonthlySnapshot) float64 {
	if len(history) < 3 {
		return constants.DefaultExpectedGrowth
	}
	recent := history[len(history)-3:]

	var deltas []float64
	for i := 1; i < len(recent); i++ {
		prev := float64(recent[i-1].TasksCreated)
		if prev == 0 {
			continue
		}
		deltas = append(deltas, (float64(recent[i].TasksCreated)-prev)/prev)
	}
	if len(deltas) == 0 {
		return constants.DefaultExpectedGrowth
	}

	var sum float64
	for _, d := range deltas {
		sum += d
	}
	return sum / float64(len(deltas))
}

// classifyPattern applies a simple trend-slope and variance heuristic over
// the historical task counts.
func classifyPattern(history []models.MonthlySnapshot) models.TrendDirection {
	if len(history) < 3 {
		return models.TrendStable
	}

	counts := make([]float64, len(history))
	var mean float64
	for i, h := range history {
		counts[i] = float64(h.TasksCreated)
		mean += counts[i]
	}
	mean /= float64(len(counts))
	if mean == 0 {
		return models.TrendStable
	}

	// Least-squares slope over the period index, normalized by the mean so
	// thresholds are scale free.
	var num, den float64
	midpoint := float64(len(counts)-1) / 2
	for i, c := range counts {
		num += (float64(i) - midpoint) * (c - mean)
		den += (float64(i) - midpoint) * (float64(i) - midpoint)
	}
	slope := num / den / mean

	var variance float64
	for _, c := range counts {
		variance += (c - mean) * (c - mean)
	}
	variance /= float64(len(counts))
	coefficient := math.Sqrt(variance) / mean

	switch {
	case slope > 0.1:
		return models.TrendIncreasing
	case slope < -0.1:
		return models.TrendDecreasing
	case coefficient > 0.3:
		return models.TrendCyclical
	default:
		return models.TrendStable
	}
}
