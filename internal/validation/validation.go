package validation

import (
	"fmt"
	"sort"

	"github.com/julianstephens/ballast/internal/constants"
	"github.com/julianstephens/ballast/internal/models"
	"github.com/julianstephens/ballast/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverlappingPlacements ConflictType = "overlapping_placements"
	ConflictOutsideDayBounds      ConflictType = "outside_day_bounds"
	ConflictSplitDurationMismatch ConflictType = "split_duration_mismatch"
	ConflictHiddenOverload        ConflictType = "hidden_overload"
	ConflictUnknownDependency     ConflictType = "unknown_dependency"
	ConflictDependencyCycle       ConflictType = "dependency_cycle"
	ConflictDuplicateTaskName     ConflictType = "duplicate_task_name"
	ConflictInvalidWeight         ConflictType = "invalid_weight"
)

// Conflict represents a detected conflict in tasks or schedules
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Task/placement names involved
	TaskIDs     []string // IDs of tasks involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates tasks and generated schedules for conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateTasks checks a task set for structural problems: out-of-range
// weights, duplicate names, unknown dependency ids, and dependency cycles.
func (v *Validator) ValidateTasks(tasks []models.Task) ValidationResult {
	var result ValidationResult

	byID := make(map[string]models.Task, len(tasks))
	names := make(map[string][]string)
	for _, t := range tasks {
		byID[t.ID] = t
		names[t.Name] = append(names[t.Name], t.ID)
	}

	for name, ids := range names {
		if len(ids) > 1 {
			sort.Strings(ids)
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateTaskName,
				Description: fmt.Sprintf("task name %q is used by %d tasks", name, len(ids)),
				Items:       []string{name},
				TaskIDs:     ids,
			})
		}
	}

	for _, t := range tasks {
		if t.Weight != 0 && (t.Weight < constants.WeightMin || t.Weight > constants.WeightMax) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidWeight,
				Description: fmt.Sprintf("task %q has weight %d outside [%d,%d]", t.Name, t.Weight, constants.WeightMin, constants.WeightMax),
				Items:       []string{t.Name},
				TaskIDs:     []string{t.ID},
			})
		}
		for _, dep := range t.DependsOn {
			if _, ok := byID[dep]; !ok {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictUnknownDependency,
					Description: fmt.Sprintf("task %q depends on unknown task %s", t.Name, dep),
					Items:       []string{t.Name},
					TaskIDs:     []string{t.ID, dep},
				})
			}
		}
	}

	for _, cycle := range findCycles(tasks) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDependencyCycle,
			Description: fmt.Sprintf("dependency cycle: %s", joinIDs(cycle)),
			TaskIDs:     cycle,
		})
	}

	return result
}

// ValidateSchedule checks a generated schedule against its invariants:
// placements stay inside the schedulable day and do not overlap, split
// groups sum exactly to their task's duration, and any day over the weight
// limit is flagged as critical rather than silently overloaded.
func (v *Validator) ValidateSchedule(result models.ScheduleResult, tasks []models.Task, profile models.ResourceProfile) ValidationResult {
	var vr ValidationResult

	byDate := make(map[string][]models.ScheduledTask)
	for _, st := range result.Scheduled {
		byDate[st.Date] = append(byDate[st.Date], st)

		startMin, err1 := utils.ParseTimeToMinutes(st.Start)
		endMin, err2 := utils.ParseTimeToMinutes(st.End)
		if err1 != nil || err2 != nil {
			continue
		}
		if startMin < constants.DayStartHour*60 || endMin > constants.DayEndHour*60 {
			vr.Conflicts = append(vr.Conflicts, Conflict{
				Type:        ConflictOutsideDayBounds,
				Description: fmt.Sprintf("%s is placed at %s-%s, outside the schedulable day", st.TaskName, st.Start, st.End),
				Date:        st.Date,
				Items:       []string{st.TaskName},
				TaskIDs:     []string{st.TaskID},
			})
		}
	}

	for date, placements := range byDate {
		sorted := append([]models.ScheduledTask{}, placements...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
		for i := 1; i < len(sorted); i++ {
			if sorted[i].Start < sorted[i-1].End {
				vr.Conflicts = append(vr.Conflicts, Conflict{
					Type:        ConflictOverlappingPlacements,
					Description: fmt.Sprintf("%s and %s overlap on %s", sorted[i-1].TaskName, sorted[i].TaskName, date),
					Date:        date,
					Items:       []string{sorted[i-1].TaskName, sorted[i].TaskName},
					TaskIDs:     []string{sorted[i-1].TaskID, sorted[i].TaskID},
				})
			}
		}
	}

	vr.Conflicts = append(vr.Conflicts, splitConflicts(result, tasks)...)
	vr.Conflicts = append(vr.Conflicts, overloadConflicts(result, profile)...)
	return vr
}

// splitConflicts verifies the all-or-nothing split invariant.
func splitConflicts(result models.ScheduleResult, tasks []models.Task) []Conflict {
	durations := make(map[string]int, len(tasks))
	names := make(map[string]string, len(tasks))
	for _, t := range tasks {
		durations[t.ID] = t.DurationMin
		names[t.ID] = t.Name
	}

	groupSums := make(map[string]int)
	for _, st := range result.Scheduled {
		if st.Split != nil {
			groupSums[st.Split.TaskID] += st.Split.DurationMin
		}
	}

	var conflicts []Conflict
	for taskID, sum := range groupSums {
		want, known := durations[taskID]
		if known && sum != want {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictSplitDurationMismatch,
				Description: fmt.Sprintf("split chunks of %q sum to %dm, task needs %dm", names[taskID], sum, want),
				Items:       []string{names[taskID]},
				TaskIDs:     []string{taskID},
			})
		}
	}
	return conflicts
}

// overloadConflicts flags days whose weight exceeds the daily limit without
// the capacity status admitting it as critical.
func overloadConflicts(result models.ScheduleResult, profile models.ResourceProfile) []Conflict {
	limit := profile.DailyWeightLimit
	if limit <= 0 {
		limit = constants.DefaultDailyWeightLimit
	}

	var conflicts []Conflict
	for _, day := range result.Days {
		if day.Capacity.ScheduledWeight > float64(limit) && day.Capacity.Overload != models.OverloadCritical {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictHiddenOverload,
				Description: fmt.Sprintf("%s carries %.1f weight against a limit of %d without being marked critical", day.Date, day.Capacity.ScheduledWeight, limit),
				Date:        day.Date,
			})
		}
	}
	return conflicts
}

// findCycles returns each dependency cycle once, as the list of task ids on
// the cycle.
func findCycles(tasks []models.Task) [][]string {
	deps := make(map[string][]string, len(tasks))
	for _, t := range tasks {
		deps[t.ID] = t.DependsOn
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(deps))
	var cycles [][]string
	var stack []string

	var visit func(id string)
	visit = func(id string) {
		state[id] = visiting
		stack = append(stack, id)
		for _, dep := range deps[id] {
			if _, ok := deps[dep]; !ok {
				continue
			}
			switch state[dep] {
			case unvisited:
				visit(dep)
			case visiting:
				// Slice the cycle out of the current path
				for i, v := range stack {
					if v == dep {
						cycle := append([]string{}, stack[i:]...)
						cycles = append(cycles, cycle)
						break
					}
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = done
	}

	ids := make([]string, 0, len(deps))
	for id := range deps {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if state[id] == unvisited {
			visit(id)
		}
	}
	return cycles
}

func joinIDs(ids []string) string {
	out := ""
	for i, id := range ids {
		if i > 0 {
			out += " -> "
		}
		out += id
	}
	return out
}
