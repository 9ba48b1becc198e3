package scheduler

import (
	"sort"

	"github.com/julianstephens/ballast/internal/constants"
	"github.com/julianstephens/ballast/internal/models"
	"github.com/julianstephens/ballast/internal/utils"
)

// preprocess normalizes incoming tasks: missing weights are estimated from a
// duration bucket plus a complexity bonus (clamped to the 1-10 range), and
// split eligibility is revoked for tasks already shorter than the minimum
// split duration.
func (s *Scheduler) preprocess(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)

	minSplit := s.config.MinSplitMin
	if minSplit <= 0 {
		minSplit = constants.DefaultMinSplitMin
	}

	for i := range out {
		if out[i].Weight <= 0 {
			out[i].Weight = estimateWeight(out[i])
		}
		if out[i].Weight > constants.WeightMax {
			out[i].Weight = constants.WeightMax
		}
		if out[i].Weight < constants.WeightMin {
			out[i].Weight = constants.WeightMin
		}
		if out[i].Splittable && out[i].DurationMin < minSplit {
			out[i].Splittable = false
		}
	}
	return out
}

// estimateWeight derives a weight from duration and complexity when the task
// source did not supply one.
func estimateWeight(task models.Task) int {
	var w int
	switch {
	case task.DurationMin <= 30:
		w = 2
	case task.DurationMin <= 60:
		w = 3
	case task.DurationMin <= 120:
		w = 5
	case task.DurationMin <= 240:
		w = 7
	default:
		w = 8
	}
	switch task.Complexity {
	case models.ComplexityModerate:
		w++
	case models.ComplexityComplex:
		w += 2
	}
	if w > constants.WeightMax {
		w = constants.WeightMax
	}
	return w
}

// priorityScore computes the composite priority of a task relative to the
// run's start date, scaled by the configured priority factor.
func (s *Scheduler) priorityScore(task models.Task) float64 {
	score := float64(quadrantBase(task.Quadrant))
	score += float64(deadlineBonus(task, s.config.StartDate))

	switch task.Risk {
	case models.RiskHigh:
		score += constants.RiskBonusHigh
	case models.RiskMedium:
		score += constants.RiskBonusMedium
	}

	score += float64(constants.BlockedTaskBonus * len(task.Blocks))
	score += float64((constants.WeightMax - task.Weight) * constants.WeightBonusScale)

	factor := s.config.PriorityFactor
	if factor <= 0 {
		factor = 1
	}
	return score * factor
}

func quadrantBase(q models.PriorityQuadrant) int {
	switch q {
	case models.QuadrantUrgentImportant:
		return constants.QuadrantUrgentImportantBase
	case models.QuadrantUrgentNotImportant:
		return constants.QuadrantUrgentNotImportantBase
	case models.QuadrantNotUrgentImportant:
		return constants.QuadrantNotUrgentImportantBase
	default:
		return constants.QuadrantNotUrgentNotImportantBase
	}
}

func deadlineBonus(task models.Task, startDate string) int {
	if task.Deadline == "" {
		return 0
	}
	deadline, err := utils.ParseDate(task.Deadline)
	if err != nil {
		return 0
	}
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return 0
	}
	days := int(deadline.Sub(start).Hours()/24) - task.BufferDays
	switch {
	case days <= 1:
		return constants.DeadlineBonusOneDay
	case days <= 3:
		return constants.DeadlineBonusThreeDays
	case days <= 7:
		return constants.DeadlineBonusSevenDays
	default:
		return 0
	}
}

// prioritize returns tasks in descending composite-priority order. The sort
// is stable so equal-priority tasks keep their input order.
func (s *Scheduler) prioritize(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return s.priorityScore(out[i]) > s.priorityScore(out[j])
	})
	return out
}

// filterExecutable partitions tasks into those whose dependencies are all
// resolved and those deferred for this run. There is no intra-run topological
// interleaving: a task blocked on an unresolved dependency waits for a later
// run, after the dependency has finished or been committed to a schedule.
func filterExecutable(tasks []models.Task, resolved map[string]bool) (executable []models.Task, deferred []models.UnscheduledTask) {
	for _, task := range tasks {
		if task.IsComplete() {
			continue
		}
		blocked := ""
		for _, dep := range task.DependsOn {
			if !resolved[dep] {
				blocked = dep
				break
			}
		}
		if blocked != "" {
			deferred = append(deferred, models.UnscheduledTask{
				TaskID: task.ID,
				Name:   task.Name,
				Reason: "dependency " + blocked + " is not complete or committed",
			})
			continue
		}
		executable = append(executable, task)
	}
	return executable, deferred
}

// resolvedSet collects the dependency ids that count as satisfied: tasks
// already complete, plus tasks holding a committed placement in the prior
// schedule.
func resolvedSet(tasks []models.Task, prior []models.ScheduledTask) map[string]bool {
	done := make(map[string]bool)
	for _, t := range tasks {
		if t.IsComplete() {
			done[t.ID] = true
		}
	}
	for _, st := range prior {
		done[st.TaskID] = true
	}
	return done
}
