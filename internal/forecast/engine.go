package forecast

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/julianstephens/ballast/internal/constants"
	"github.com/julianstephens/ballast/internal/constraint"
	"github.com/julianstephens/ballast/internal/logger"
	"github.com/julianstephens/ballast/internal/models"
)

// Engine projects weekly capacity four weeks ahead. It reuses the constraint
// engine for per-day window capacity and synthesizes expected new work from
// historical averages through an injectable seeded source, so forecasts are
// reproducible in tests.
type Engine struct {
	engine *constraint.Engine
	rng    *rand.Rand
}

// New creates a forecast engine. A nil source falls back to a time-seeded one.
func New(ce *constraint.Engine, src *rand.Rand) *Engine {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{engine: ce, rng: src}
}

// Predict forecasts from the current wall clock. See PredictAt.
func (e *Engine) Predict(tasks []models.Task, schedule []models.ScheduledTask, history []models.MonthlySnapshot, factors []models.ExternalFactor) models.FuturePrediction {
	return e.PredictAt(time.Now(), tasks, schedule, history, factors)
}

// PredictAt builds the full four-week prediction relative to now: weekly
// capacity with daily breakdowns, monthly trends, risk alerts,
// recommendations, and an accuracy estimate. The result carries a validity
// window of exactly seven days; stale predictions must be regenerated.
func (e *Engine) PredictAt(now time.Time, tasks []models.Task, schedule []models.ScheduledTask, history []models.MonthlySnapshot, factors []models.ExternalFactor) models.FuturePrediction {
	prediction := models.FuturePrediction{
		GeneratedAt: now,
		ValidUntil:  now.AddDate(0, 0, constants.PredictionValidityDays),
	}

	taskIndex := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		taskIndex[t.ID] = t
	}

	for week := 0; week < constants.ForecastWeeks; week++ {
		prediction.Weeks = append(prediction.Weeks, e.predictWeek(now, week, schedule, history, taskIndex))
	}

	prediction.Trends = analyzeTrends(history, factors)
	prediction.Alerts = buildAlerts(prediction.Weeks, prediction.Trends, tasks)
	prediction.Recommendations = buildRecommendations(prediction.Weeks, prediction.Alerts)
	prediction.Accuracy, prediction.Confidence, prediction.Quality = estimateAccuracy(history)
	prediction.Fingerprint = e.fingerprint(tasks, history)

	logger.Debug("Prediction generated", "weeks", len(prediction.Weeks), "alerts", len(prediction.Alerts))
	return prediction
}

// predictWeek builds one weekly prediction: committed load plus synthetic
// expected tasks, rolled up from a per-day breakdown.
func (e *Engine) predictWeek(now time.Time, week int, schedule []models.ScheduledTask, history []models.MonthlySnapshot, taskIndex map[string]models.Task) models.WeeklyPrediction {
	weekStart := now.AddDate(0, 0, 1+7*week)
	wp := models.WeeklyPrediction{WeekStart: weekStart.Format(constants.DateFormat)}

	expectedHours := e.expectedNewHours(week, history)
	expectedPerDay := expectedHours / 7

	for d := 0; d < 7; d++ {
		date := weekStart.AddDate(0, 0, d).Format(constants.DateFormat)

		available := e.engine.DailyCapacity(date, nil).AvailableHours
		var scheduledHours float64
		for _, st := range schedule {
			if st.Date == date {
				scheduledHours += float64(st.DurationMin()) / 60
			}
		}

		load := scheduledHours + expectedPerDay
		var utilization float64
		switch {
		case available > 0:
			utilization = load / available
		case load > 0:
			utilization = 1.5 // no open hours but committed work: plainly overloaded
		}

		day := models.DailyPrediction{
			Date:           date,
			AvailableHours: available,
			ScheduledHours: scheduledHours,
			ExpectedHours:  expectedPerDay,
			Utilization:    utilization,
			Bucket:         bucketFor(utilization),
		}
		wp.Days = append(wp.Days, day)

		wp.AvailableHours += available
		wp.ScheduledHours += load
		switch day.Bucket {
		case models.BucketNearLimit:
			wp.RiskDays++
		case models.BucketOverloaded:
			wp.RiskDays++
			wp.CriticalDays++
		case models.BucketOptimal:
			wp.OptimalDays = append(wp.OptimalDays, date)
		}
	}

	wp.ReservedHours = wp.AvailableHours * constants.ReservedCapacityRatio
	wp.FlexibleHours = wp.AvailableHours - wp.ScheduledHours - wp.ReservedHours
	if wp.FlexibleHours < 0 {
		wp.FlexibleHours = 0
	}

	wp.MoveEarlier, wp.Defer = movableTasks(wp, schedule, taskIndex)
	return wp
}

// expectedNewHours synthesizes the week's expected new workload from the
// historical tasks-per-week average, scaled by an uncertainty factor that
// grows 20% per week of forecast distance. Synthetic tasks draw bounded
// random weights and durations and never carry real task ids.
func (e *Engine) expectedNewHours(week int, history []models.MonthlySnapshot) float64 {
	avg := avgTasksPerWeek(history)
	if avg <= 0 {
		return 0
	}
	count := int(avg*(1+constants.WeeklyUncertaintyStep*float64(week)) + 0.5)

	var hours float64
	for i := 0; i < count; i++ {
		synth := e.syntheticTask(week, i)
		hours += float64(synth.DurationMin) / 60
	}
	return hours
}

func (e *Engine) syntheticTask(week, n int) models.Task {
	return models.Task{
		ID:          fmt.Sprintf("forecast-w%d-%d", week+1, n),
		Name:        fmt.Sprintf("expected task %d (week %d)", n+1, week+1),
		Weight:      2 + e.rng.Intn(7),        // 2..8
		DurationMin: 30 + 15*e.rng.Intn(7),    // 30..120 in 15m steps
		Status:      models.TaskStatusPending, // never a real id, never complete
	}
}

func avgTasksPerWeek(history []models.MonthlySnapshot) float64 {
	if len(history) == 0 {
		return 0
	}
	var sum float64
	for _, h := range history {
		sum += h.AvgTasksPerWeek
	}
	return sum / float64(len(history))
}

func bucketFor(utilization float64) models.CapacityBucket {
	switch {
	case utilization < constants.BucketUnderutilizedMax:
		return models.BucketUnderutilized
	case utilization < constants.BucketOptimalMax:
		return models.BucketOptimal
	case utilization < constants.BucketNearLimitMax:
		return models.BucketNearLimit
	default:
		return models.BucketOverloaded
	}
}

// movableTasks suggests which committed tasks on risky days could move
// earlier, and which low-priority ones could be deferred out of the week.
func movableTasks(wp models.WeeklyPrediction, schedule []models.ScheduledTask, taskIndex map[string]models.Task) (moveEarlier, deferIDs []string) {
	riskDates := make(map[string]models.CapacityBucket)
	for _, d := range wp.Days {
		if d.Bucket == models.BucketNearLimit || d.Bucket == models.BucketOverloaded {
			riskDates[d.Date] = d.Bucket
		}
	}
	seen := make(map[string]bool)
	for _, st := range schedule {
		bucket, risky := riskDates[st.Date]
		if !risky || seen[st.TaskID] {
			continue
		}
		seen[st.TaskID] = true
		task, known := taskIndex[st.TaskID]
		if known && task.Quadrant == models.QuadrantNotUrgentNotImportant && bucket == models.BucketOverloaded {
			deferIDs = append(deferIDs, st.TaskID)
			continue
		}
		if st.Flexibility > 0 || !known || task.Quadrant == models.QuadrantNotUrgentImportant {
			moveEarlier = append(moveEarlier, st.TaskID)
		}
	}
	return moveEarlier, deferIDs
}

func (e *Engine) fingerprint(tasks []models.Task, history []models.MonthlySnapshot) uint64 {
	input := struct {
		Profile models.ResourceProfile
		Tasks   []models.Task
		History []models.MonthlySnapshot
	}{e.engine.Profile(), tasks, history}

	h, err := hashstructure.Hash(input, hashstructure.FormatV2, nil)
	if err != nil {
		logger.Warn("Input fingerprint failed", "error", err)
		return 0
	}
	return h
}
