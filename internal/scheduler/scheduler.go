package scheduler

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/julianstephens/ballast/internal/constants"
	"github.com/julianstephens/ballast/internal/constraint"
	"github.com/julianstephens/ballast/internal/logger"
	"github.com/julianstephens/ballast/internal/models"
	"github.com/julianstephens/ballast/internal/utils"
)

// minLeftoverMin is the smallest slot remnant worth keeping after a placement.
const minLeftoverMin = 15

// Scheduler places a prioritized task set across a multi-day horizon using
// the constraint engine for window computation and placement scoring. It is
// explicitly constructed per run configuration and holds no global state.
type Scheduler struct {
	engine *constraint.Engine
	config models.SchedulingConfig
}

// New creates a scheduler over the given constraint engine and configuration.
func New(engine *constraint.Engine, config models.SchedulingConfig) *Scheduler {
	if config.MinSplitMin <= 0 {
		config.MinSplitMin = constants.DefaultMinSplitMin
	}
	if config.MaxSplits <= 0 {
		config.MaxSplits = constants.DefaultMaxSplits
	}
	if config.PriorityFactor <= 0 {
		config.PriorityFactor = 1
	}
	return &Scheduler{engine: engine, config: config}
}

// dayState tracks the evolving free windows and committed placements of one
// horizon day during a run.
type dayState struct {
	date   string
	free   []models.TimeSlot
	placed []models.ScheduledTask
}

// GenerateSchedule runs the full pipeline: preprocess, prioritize, dependency
// filter against completed tasks and the prior committed schedule, daily
// analysis, placement with optional splitting, optimization passes, then
// metrics and narrative. Only configuration errors are fatal; per-task
// failures aggregate into the result's unscheduled list.
func (s *Scheduler) GenerateSchedule(tasks []models.Task, prior []models.ScheduledTask) (models.ScheduleResult, error) {
	if s.config.HorizonDays <= 0 {
		return models.ScheduleResult{}, fmt.Errorf("invalid horizon length %d: must be positive", s.config.HorizonDays)
	}
	if _, err := utils.ParseDate(s.config.StartDate); err != nil {
		return models.ScheduleResult{}, fmt.Errorf("invalid start date %q: %w", s.config.StartDate, err)
	}

	prepared := s.preprocess(tasks)
	ordered := s.prioritize(prepared)
	resolved := resolvedSet(prepared, prior)
	executable, unscheduled := filterExecutable(ordered, resolved)

	days, err := s.buildDays()
	if err != nil {
		return models.ScheduleResult{}, err
	}
	logger.Debug("Placement starting", "tasks", len(executable), "days", len(days))

	for _, task := range executable {
		placed, reason := s.placeTask(task, days, resolved)
		if placed {
			continue
		}
		if s.config.AllowSplitting && task.Splittable && task.DurationMin >= 2*s.config.MinSplitMin {
			if s.splitTask(task, days, resolved) {
				continue
			}
			reason = "no feasible placement; splitting could not cover the full duration"
		}
		unscheduled = append(unscheduled, models.UnscheduledTask{
			TaskID: task.ID,
			Name:   task.Name,
			Reason: reason,
		})
	}

	s.balanceLoad(days)
	s.improveEnergyEfficiency(days)
	s.enforceDependencyOrder(days)

	result := s.assembleResult(days, unscheduled)
	result.Fingerprint = s.fingerprint(tasks)
	return result, nil
}

// buildDays computes windows and starting state for each horizon day.
func (s *Scheduler) buildDays() ([]*dayState, error) {
	days := make([]*dayState, 0, s.config.HorizonDays)
	for i := 0; i < s.config.HorizonDays; i++ {
		date, err := utils.AddDays(s.config.StartDate, i)
		if err != nil {
			return nil, err
		}
		slots, err := s.engine.AvailableSlots(date)
		if err != nil {
			return nil, err
		}
		days = append(days, &dayState{date: date, free: slots})
	}
	return days, nil
}

// placeTask searches every (day, window) pair for the highest-scoring
// feasible placement, breaking ties toward the earliest day and window. When
// nothing is feasible, the least-bad rejection is re-evaluated for alternative
// windows so the unscheduled reason can point somewhere concrete.
func (s *Scheduler) placeTask(task models.Task, days []*dayState, completed map[string]bool) (bool, string) {
	bestScore := -1
	bestDay, bestSlot := -1, -1
	nearScore := -1
	nearDay, nearSlot := -1, -1
	candidates := 0
	feasible := 0

	for di, day := range days {
		remaining := s.remainingDayWeight(day)
		for si, slot := range day.free {
			candidates++
			if slotMinutes(slot) < task.DurationMin {
				continue
			}
			if float64(task.Weight) > remaining {
				continue
			}
			eval := s.engine.ScoreTask(task, slot, day.date, constraint.ScoreContext{
				DayTasks:  day.placed,
				Completed: completed,
			})
			if !eval.CanPlace {
				if eval.Score > nearScore {
					nearScore = eval.Score
					nearDay, nearSlot = di, si
				}
				continue
			}
			feasible++
			if eval.Score > bestScore {
				bestScore = eval.Score
				bestDay, bestSlot = di, si
			}
		}
	}

	if bestDay < 0 {
		if candidates == 0 {
			return false, "no open windows in the horizon"
		}
		reason := "no window satisfies the task's constraints"
		if nearDay >= 0 {
			day := days[nearDay]
			eval := s.engine.EvaluatePlacement(task, day.free[nearSlot], day.date, constraint.ScoreContext{
				DayTasks:  day.placed,
				Completed: completed,
			})
			if len(eval.Alternatives) > 0 {
				alt := eval.Alternatives[0]
				reason = fmt.Sprintf("%s; %s-%s on %s would fit better", reason, alt.Start, alt.End, day.date)
			}
		}
		return false, reason
	}

	day := days[bestDay]
	st := s.commit(task, day, bestSlot, task.DurationMin, bestScore, flexibility(feasible, candidates), nil)
	logger.Debug("Task placed", "task", task.ID, "date", day.date, "start", st.Start, "score", bestScore)
	return true, ""
}

// commit records a placement in the day state and consumes the used portion
// of the window. The placement starts at the window's start.
func (s *Scheduler) commit(task models.Task, day *dayState, slotIdx, durationMin, score int, flex float64, split *models.SplitInfo) models.ScheduledTask {
	slot := day.free[slotIdx]
	startMin, _ := utils.ParseTimeToMinutes(slot.Start)
	endMin := startMin + durationMin

	weight := float64(task.Weight)
	if split != nil && task.DurationMin > 0 {
		weight = float64(task.Weight) * float64(durationMin) / float64(task.DurationMin)
	}

	st := models.ScheduledTask{
		ID:           uuid.NewString(),
		TaskID:       task.ID,
		TaskName:     task.Name,
		Date:         day.date,
		Start:        utils.FormatMinutes(startMin),
		End:          utils.FormatMinutes(endMin),
		Weight:       weight,
		Confidence:   float64(score) / 100,
		Flexibility:  flex,
		Split:        split,
		ResolvedDeps: task.DependsOn,
	}
	day.placed = append(day.placed, st)
	day.free = consumeSlot(day.free, slotIdx, durationMin)
	return st
}

// consumeSlot shrinks the window at idx by durationMin from its start,
// dropping remnants too small to hold any work.
func consumeSlot(free []models.TimeSlot, idx, durationMin int) []models.TimeSlot {
	slot := free[idx]
	startMin, _ := utils.ParseTimeToMinutes(slot.Start)
	endMin, _ := utils.ParseTimeToMinutes(slot.End)
	total := endMin - startMin
	leftStart := startMin + durationMin

	out := append([]models.TimeSlot{}, free[:idx]...)
	if endMin-leftStart >= minLeftoverMin && total > 0 {
		rest := slot
		rest.Start = utils.FormatMinutes(leftStart)
		rest.Weight = slot.Weight * float64(endMin-leftStart) / float64(total)
		out = append(out, rest)
	}
	return append(out, free[idx+1:]...)
}

func (s *Scheduler) remainingDayWeight(day *dayState) float64 {
	limit := float64(s.engine.Profile().DailyWeightLimit)
	for _, st := range day.placed {
		limit -= st.Weight
	}
	if limit < 0 {
		return 0
	}
	return limit
}

func slotMinutes(slot models.TimeSlot) int {
	d, err := utils.MinutesBetween(slot.Start, slot.End)
	if err != nil {
		return 0
	}
	return d
}

// flexibility estimates how movable a placement is from how many other
// feasible windows existed for it.
func flexibility(feasible, candidates int) float64 {
	if candidates == 0 || feasible <= 1 {
		return 0
	}
	f := float64(feasible-1) / float64(candidates)
	if f > 1 {
		f = 1
	}
	return f
}

// fingerprint hashes the run inputs so result consumers can detect that a
// stored schedule no longer matches the current profile, tasks or config.
func (s *Scheduler) fingerprint(tasks []models.Task) uint64 {
	input := struct {
		Profile models.ResourceProfile
		Tasks   []models.Task
		Config  models.SchedulingConfig
	}{s.engine.Profile(), tasks, s.config}

	h, err := hashstructure.Hash(input, hashstructure.FormatV2, nil)
	if err != nil {
		logger.Warn("Input fingerprint failed", "error", err)
		return 0
	}
	return h
}
