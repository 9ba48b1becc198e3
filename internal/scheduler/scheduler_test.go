package scheduler

import (
	"strings"
	"testing"

	"github.com/julianstephens/ballast/internal/constraint"
	"github.com/julianstephens/ballast/internal/models"
)

const startDate = "2026-09-07" // a Monday

func newTestScheduler(profile models.ResourceProfile, config models.SchedulingConfig) *Scheduler {
	return New(constraint.New(profile, nil), config)
}

func scheduledFor(result models.ScheduleResult, taskID string) []models.ScheduledTask {
	var out []models.ScheduledTask
	for _, st := range result.Scheduled {
		if st.TaskID == taskID {
			out = append(out, st)
		}
	}
	return out
}

func TestGenerateSchedule_InvalidConfig(t *testing.T) {
	s := newTestScheduler(models.ResourceProfile{}, models.SchedulingConfig{
		StartDate:   startDate,
		HorizonDays: 0,
	})
	if _, err := s.GenerateSchedule(nil, nil); err == nil {
		t.Error("Expected error for non-positive horizon")
	}

	s = newTestScheduler(models.ResourceProfile{}, models.SchedulingConfig{
		StartDate:   "09/07/2026",
		HorizonDays: 7,
	})
	if _, err := s.GenerateSchedule(nil, nil); err == nil {
		t.Error("Expected error for unparsable start date")
	}
}

func TestGenerateSchedule_RespectsDailyWeightLimit(t *testing.T) {
	profile := models.ResourceProfile{DailyWeightLimit: 10}
	s := newTestScheduler(profile, models.SchedulingConfig{
		StartDate:   startDate,
		HorizonDays: 2,
	})

	tasks := []models.Task{
		{ID: "a", Name: "Heavy A", Weight: 7, DurationMin: 60, Status: models.TaskStatusPending},
		{ID: "b", Name: "Heavy B", Weight: 7, DurationMin: 60, Status: models.TaskStatusPending},
		{ID: "c", Name: "Heavy C", Weight: 7, DurationMin: 60, Status: models.TaskStatusPending},
	}

	result, err := s.GenerateSchedule(tasks, nil)
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}

	if len(result.Scheduled) != 2 {
		t.Fatalf("Expected 2 placements within the weight budget, got %d", len(result.Scheduled))
	}
	if result.Scheduled[0].Date == result.Scheduled[1].Date {
		t.Errorf("Expected the second heavy task pushed to another day, both landed on %s", result.Scheduled[0].Date)
	}
	if len(result.Unscheduled) != 1 {
		t.Fatalf("Expected 1 unscheduled task, got %d", len(result.Unscheduled))
	}

	// No day may exceed its weight budget
	for _, day := range result.Days {
		if day.Capacity.ScheduledWeight > float64(profile.DailyWeightLimit) {
			t.Errorf("Day %s carries weight %.1f over the limit %d", day.Date, day.Capacity.ScheduledWeight, profile.DailyWeightLimit)
		}
	}
}

func TestGenerateSchedule_PriorityOrdering(t *testing.T) {
	s := newTestScheduler(models.ResourceProfile{}, models.SchedulingConfig{
		StartDate:   startDate,
		HorizonDays: 1,
	})

	tasks := []models.Task{
		{ID: "low", Name: "Tidy desk", Weight: 2, DurationMin: 60, Quadrant: models.QuadrantNotUrgentNotImportant, Status: models.TaskStatusPending},
		{ID: "high", Name: "File taxes", Weight: 2, DurationMin: 60, Quadrant: models.QuadrantUrgentImportant, Deadline: "2026-09-08", Status: models.TaskStatusPending},
	}

	result, err := s.GenerateSchedule(tasks, nil)
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}

	high := scheduledFor(result, "high")
	low := scheduledFor(result, "low")
	if len(high) != 1 || len(low) != 1 {
		t.Fatalf("Expected both tasks placed, got high=%d low=%d", len(high), len(low))
	}
	if high[0].Start >= low[0].Start {
		t.Errorf("Expected the urgent task placed first (%s vs %s)", high[0].Start, low[0].Start)
	}
}

func TestGenerateSchedule_EstimatesMissingWeight(t *testing.T) {
	s := newTestScheduler(models.ResourceProfile{}, models.SchedulingConfig{
		StartDate:   startDate,
		HorizonDays: 1,
	})

	tasks := []models.Task{
		{ID: "t1", Name: "Draft report", DurationMin: 45, Complexity: models.ComplexityModerate, Status: models.TaskStatusPending},
	}

	result, err := s.GenerateSchedule(tasks, nil)
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}

	placed := scheduledFor(result, "t1")
	if len(placed) != 1 {
		t.Fatalf("Expected the task placed, got %d placements", len(placed))
	}
	// 45m falls in the <=60m bucket (3) plus the moderate-complexity bonus
	if placed[0].Weight != 4 {
		t.Errorf("Expected estimated weight 4, got %.1f", placed[0].Weight)
	}
}

func TestGenerateSchedule_SkipsCompletedAndDefersBlocked(t *testing.T) {
	s := newTestScheduler(models.ResourceProfile{}, models.SchedulingConfig{
		StartDate:   startDate,
		HorizonDays: 1,
	})

	tasks := []models.Task{
		{ID: "done", Name: "Shipped", Weight: 2, DurationMin: 60, Status: models.TaskStatusCompleted},
		{ID: "ready", Name: "Follow-up", Weight: 2, DurationMin: 60, DependsOn: []string{"done"}, Status: models.TaskStatusPending},
		{ID: "blocked", Name: "Waiting", Weight: 2, DurationMin: 60, DependsOn: []string{"ready"}, Status: models.TaskStatusPending},
	}

	result, err := s.GenerateSchedule(tasks, nil)
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}

	if len(scheduledFor(result, "done")) != 0 {
		t.Error("Completed task must not be scheduled")
	}
	if len(scheduledFor(result, "ready")) != 1 {
		t.Error("Task with a completed dependency should be scheduled")
	}
	if len(scheduledFor(result, "blocked")) != 0 {
		t.Error("Task with an incomplete dependency must wait for a later run")
	}

	found := false
	for _, u := range result.Unscheduled {
		if u.TaskID == "blocked" {
			found = true
			if u.Reason == "" {
				t.Error("Expected a deferral reason")
			}
		}
	}
	if !found {
		t.Error("Expected the blocked task in the unscheduled list")
	}
}

func TestGenerateSchedule_PriorScheduleResolvesDependencies(t *testing.T) {
	s := newTestScheduler(models.ResourceProfile{}, models.SchedulingConfig{
		StartDate:   startDate,
		HorizonDays: 1,
	})

	tasks := []models.Task{
		{ID: "dep", Name: "Groundwork", Weight: 2, DurationMin: 60, Status: models.TaskStatusPending},
		{ID: "next", Name: "Follow-up", Weight: 2, DurationMin: 60, DependsOn: []string{"dep"}, Status: models.TaskStatusPending},
	}

	without, err := s.GenerateSchedule(tasks, nil)
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}
	if len(scheduledFor(without, "next")) != 0 {
		t.Fatal("Expected the dependent task deferred while its dependency holds no committed placement")
	}

	prior := []models.ScheduledTask{
		{ID: "p1", TaskID: "dep", TaskName: "Groundwork", Date: startDate, Start: "06:00", End: "07:00", Weight: 2},
	}
	with, err := s.GenerateSchedule(tasks, prior)
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}
	if len(scheduledFor(with, "next")) != 1 {
		t.Error("Expected the dependent task schedulable once the prior schedule commits its dependency")
	}
}

func TestGenerateSchedule_SuggestsAlternativeWindows(t *testing.T) {
	profile := models.ResourceProfile{
		DailyWeightLimit: 20,
		PreferredWindows: []models.TimeWindow{{Start: "18:00", End: "22:00"}},
	}
	s := newTestScheduler(profile, models.SchedulingConfig{
		StartDate:   startDate,
		HorizonDays: 1,
	})

	// Evening-only windows reject a collaborative morning task, but better
	// hours exist outside the preferred windows
	tasks := []models.Task{
		{ID: "workshop", Name: "Team workshop", Weight: 2, DurationMin: 60,
			Collaborative: true, Energy: models.EnergyHigh, OptimalTime: models.TimeMorning,
			Status: models.TaskStatusPending},
	}

	result, err := s.GenerateSchedule(tasks, nil)
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}
	if len(result.Scheduled) != 0 {
		t.Fatal("Expected no placement in the evening-only windows")
	}
	if len(result.Unscheduled) != 1 {
		t.Fatalf("Expected 1 unscheduled task, got %d", len(result.Unscheduled))
	}
	reason := result.Unscheduled[0].Reason
	if !strings.Contains(reason, "09:00") {
		t.Errorf("Expected the reason to point at a better morning window, got %q", reason)
	}
}

func TestGenerateSchedule_SplitCoversFullDuration(t *testing.T) {
	profile := models.ResourceProfile{
		PreferredWindows: []models.TimeWindow{
			{Start: "09:00", End: "11:00"},
			{Start: "14:00", End: "16:00"},
		},
	}
	s := newTestScheduler(profile, models.SchedulingConfig{
		StartDate:      startDate,
		HorizonDays:    2,
		AllowSplitting: true,
	})

	tasks := []models.Task{
		{ID: "big", Name: "Write thesis chapter", Weight: 5, DurationMin: 300, Splittable: true, MinSplitMin: 30, Status: models.TaskStatusPending},
	}

	result, err := s.GenerateSchedule(tasks, nil)
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}

	chunks := scheduledFor(result, "big")
	if len(chunks) < 2 {
		t.Fatalf("Expected the task split across windows, got %d placements", len(chunks))
	}

	total := 0
	ids := make(map[string]bool)
	for _, c := range chunks {
		if c.Split == nil {
			t.Fatal("Expected split metadata on every chunk")
		}
		total += c.Split.DurationMin
		ids[c.ID] = true
		if c.Split.Total != len(chunks) {
			t.Errorf("Chunk reports %d siblings, want %d", c.Split.Total, len(chunks))
		}
	}
	if total != 300 {
		t.Errorf("Chunk durations sum to %dm, want the full 300m", total)
	}

	// Every chunk references its siblings and only its siblings
	for _, c := range chunks {
		if len(c.Split.MergeableWith) != len(chunks)-1 {
			t.Errorf("Chunk %d lists %d mergeable siblings, want %d", c.Split.Index, len(c.Split.MergeableWith), len(chunks)-1)
		}
		for _, id := range c.Split.MergeableWith {
			if !ids[id] {
				t.Errorf("Chunk references unknown sibling %s", id)
			}
			if id == c.ID {
				t.Error("Chunk lists itself as mergeable")
			}
		}
	}
}

func TestGenerateSchedule_SplitIsAllOrNothing(t *testing.T) {
	profile := models.ResourceProfile{
		PreferredWindows: []models.TimeWindow{
			{Start: "09:00", End: "11:00"},
			{Start: "14:00", End: "16:00"},
		},
	}
	s := newTestScheduler(profile, models.SchedulingConfig{
		StartDate:      startDate,
		HorizonDays:    2,
		AllowSplitting: true,
	})

	// 600m cannot be covered by three chunks of at most 120m each
	tasks := []models.Task{
		{ID: "huge", Name: "Impossible epic", Weight: 5, DurationMin: 600, Splittable: true, MinSplitMin: 30, Status: models.TaskStatusPending},
	}

	result, err := s.GenerateSchedule(tasks, nil)
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}

	if len(scheduledFor(result, "huge")) != 0 {
		t.Error("Expected no partial chunks when the split cannot cover the duration")
	}
	if len(result.Unscheduled) != 1 {
		t.Fatalf("Expected the task reported as unscheduled, got %d entries", len(result.Unscheduled))
	}
}

func TestGenerateSchedule_NoSplittingWhenDisabled(t *testing.T) {
	profile := models.ResourceProfile{
		PreferredWindows: []models.TimeWindow{{Start: "09:00", End: "11:00"}},
	}
	s := newTestScheduler(profile, models.SchedulingConfig{
		StartDate:      startDate,
		HorizonDays:    1,
		AllowSplitting: false,
	})

	tasks := []models.Task{
		{ID: "big", Name: "Long block", Weight: 5, DurationMin: 300, Splittable: true, MinSplitMin: 30, Status: models.TaskStatusPending},
	}

	result, err := s.GenerateSchedule(tasks, nil)
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}
	if len(result.Scheduled) != 0 {
		t.Error("Expected no placement with splitting disabled and no fitting window")
	}
}

func TestGenerateSchedule_PlacementsDoNotOverlap(t *testing.T) {
	s := newTestScheduler(models.ResourceProfile{}, models.SchedulingConfig{
		StartDate:   startDate,
		HorizonDays: 1,
	})

	tasks := []models.Task{
		{ID: "a", Name: "A", Weight: 2, DurationMin: 90, Status: models.TaskStatusPending},
		{ID: "b", Name: "B", Weight: 2, DurationMin: 60, Status: models.TaskStatusPending},
		{ID: "c", Name: "C", Weight: 2, DurationMin: 45, Status: models.TaskStatusPending},
	}

	result, err := s.GenerateSchedule(tasks, nil)
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}
	if len(result.Scheduled) != 3 {
		t.Fatalf("Expected all 3 tasks placed, got %d", len(result.Scheduled))
	}

	for i := 0; i < len(result.Scheduled); i++ {
		for j := i + 1; j < len(result.Scheduled); j++ {
			a, b := result.Scheduled[i], result.Scheduled[j]
			if a.Date != b.Date {
				continue
			}
			if a.Start < b.End && b.Start < a.End {
				t.Errorf("Placements %s and %s overlap (%s-%s vs %s-%s)", a.TaskID, b.TaskID, a.Start, a.End, b.Start, b.End)
			}
		}
	}
}

func TestGenerateSchedule_FingerprintTracksInputs(t *testing.T) {
	config := models.SchedulingConfig{StartDate: startDate, HorizonDays: 2}
	tasks := []models.Task{
		{ID: "t1", Name: "Stable", Weight: 3, DurationMin: 60, Status: models.TaskStatusPending},
	}

	first, err := newTestScheduler(models.ResourceProfile{}, config).GenerateSchedule(tasks, nil)
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}
	second, err := newTestScheduler(models.ResourceProfile{}, config).GenerateSchedule(tasks, nil)
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}
	if first.Fingerprint != second.Fingerprint {
		t.Error("Expected identical inputs to produce identical fingerprints")
	}

	changed := []models.Task{
		{ID: "t1", Name: "Stable", Weight: 4, DurationMin: 60, Status: models.TaskStatusPending},
	}
	third, err := newTestScheduler(models.ResourceProfile{}, config).GenerateSchedule(changed, nil)
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}
	if first.Fingerprint == third.Fingerprint {
		t.Error("Expected a changed task set to change the fingerprint")
	}
}

func TestGenerateSchedule_NarrativeForUnschedulable(t *testing.T) {
	profile := models.ResourceProfile{DailyWeightLimit: 5}
	s := newTestScheduler(profile, models.SchedulingConfig{
		StartDate:   startDate,
		HorizonDays: 1,
	})

	tasks := []models.Task{
		{ID: "a", Name: "A", Weight: 5, DurationMin: 60, Status: models.TaskStatusPending},
		{ID: "b", Name: "B", Weight: 5, DurationMin: 60, Status: models.TaskStatusPending},
		{ID: "c", Name: "C", Weight: 5, DurationMin: 60, Status: models.TaskStatusPending},
	}

	result, err := s.GenerateSchedule(tasks, nil)
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}

	if len(result.Unscheduled) == 0 {
		t.Fatal("Expected unscheduled tasks on an over-committed day")
	}
	if len(result.Warnings) == 0 {
		t.Error("Expected a warning about unscheduled tasks")
	}
	if result.Metrics.SchedulingRate >= 0.8 && len(result.Recommendations) == 0 {
		t.Error("Expected recommendations for a low scheduling rate")
	}
	if result.Metrics.SchedulingRate < 0.8 && len(result.Recommendations) == 0 {
		t.Error("Expected a horizon-extension recommendation")
	}
}

func TestEstimateWeight_Buckets(t *testing.T) {
	cases := []struct {
		name     string
		duration int
		cx       models.ComplexityBand
		want     int
	}{
		{"short", 20, "", 2},
		{"hour", 60, "", 3},
		{"two hours", 120, "", 5},
		{"half day", 240, "", 7},
		{"longer", 400, "", 8},
		{"complex short", 30, models.ComplexityComplex, 4},
		{"complex long capped", 400, models.ComplexityComplex, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := estimateWeight(models.Task{DurationMin: tc.duration, Complexity: tc.cx})
			if got != tc.want {
				t.Errorf("estimateWeight(%dm, %s) = %d, want %d", tc.duration, tc.cx, got, tc.want)
			}
		})
	}
}

func TestPreprocess_RevokesSplittingForShortTasks(t *testing.T) {
	s := newTestScheduler(models.ResourceProfile{}, models.SchedulingConfig{
		StartDate:   startDate,
		HorizonDays: 1,
		MinSplitMin: 30,
	})

	out := s.preprocess([]models.Task{
		{ID: "short", DurationMin: 20, Splittable: true},
		{ID: "long", DurationMin: 120, Splittable: true},
	})

	if out[0].Splittable {
		t.Error("Expected splitting revoked for a task shorter than the minimum chunk")
	}
	if !out[1].Splittable {
		t.Error("Expected splitting preserved for a long task")
	}
}
