package constraint

import (
	"testing"

	"github.com/julianstephens/ballast/internal/models"
)

func midMorningSlot() models.TimeSlot {
	return models.TimeSlot{
		Start:        "09:00",
		End:          "10:00",
		Weight:       2.5,
		Category:     models.SlotLight,
		Energy:       models.EnergyMedium,
		ConflictRisk: models.ConflictHigh,
	}
}

func TestScoreTask_CleanPlacement(t *testing.T) {
	engine := New(models.ResourceProfile{}, nil)
	task := models.Task{ID: "t1", Name: "Review notes", Weight: 2, DurationMin: 60}

	result := engine.ScoreTask(task, midMorningSlot(), mondayDate, ScoreContext{})

	if !result.CanPlace {
		t.Error("Expected a clean placement to be allowed")
	}
	if result.Score != 100 {
		t.Errorf("Expected score 100, got %d", result.Score)
	}
	if len(result.Reasons) != 0 {
		t.Errorf("Expected no reasons, got %v", result.Reasons)
	}
}

func TestScoreTask_WeightOverCapacity(t *testing.T) {
	engine := New(models.ResourceProfile{}, nil)
	task := models.Task{ID: "t1", Name: "Big task", Weight: 9, DurationMin: 60}

	result := engine.ScoreTask(task, midMorningSlot(), mondayDate, ScoreContext{})

	if result.Score != 50 {
		t.Errorf("Expected score 50 after the capacity penalty, got %d", result.Score)
	}
	// 50 still meets the placement threshold
	if !result.CanPlace {
		t.Error("Expected placement to remain allowed at the threshold")
	}
}

func TestScoreTask_DayLoadShrinksSlotCapacity(t *testing.T) {
	engine := New(models.ResourceProfile{DailyWeightLimit: 10}, nil)
	task := models.Task{ID: "t1", Name: "Task", Weight: 2, DurationMin: 60}

	slot := midMorningSlot()
	slot.Weight = 5

	// An empty day fits weight 2 into a weight-5 slot
	clean := engine.ScoreTask(task, slot, mondayDate, ScoreContext{})
	if clean.Score != 100 {
		t.Fatalf("Expected clean score 100, got %d", clean.Score)
	}

	// With 9 of 10 weight already committed, the same slot shrinks below 2
	ctx := ScoreContext{DayTasks: []models.ScheduledTask{
		{ID: "p1", TaskID: "other", Date: mondayDate, Start: "06:00", End: "08:00", Weight: 9},
	}}
	loaded := engine.ScoreTask(task, slot, mondayDate, ctx)
	if loaded.Score >= clean.Score {
		t.Errorf("Expected day load to reduce the score, got %d vs %d", loaded.Score, clean.Score)
	}
}

func TestScoreTask_DurationOverrunAndSplittableOffset(t *testing.T) {
	engine := New(models.ResourceProfile{}, nil)
	slot := midMorningSlot()

	rigid := models.Task{ID: "t1", Name: "Long task", Weight: 2, DurationMin: 120}
	rigidScore := engine.ScoreTask(rigid, slot, mondayDate, ScoreContext{})
	if rigidScore.Score != 70 {
		t.Errorf("Expected score 70 after the duration penalty, got %d", rigidScore.Score)
	}

	splittable := rigid
	splittable.Splittable = true
	splitScore := engine.ScoreTask(splittable, slot, mondayDate, ScoreContext{})
	if splitScore.Score != 85 {
		t.Errorf("Expected the splittable offset to raise the score to 85, got %d", splitScore.Score)
	}
	if len(splitScore.Suggestions) == 0 {
		t.Error("Expected a splitting suggestion")
	}
}

func TestScoreTask_EnergyRules(t *testing.T) {
	engine := New(models.ResourceProfile{}, nil)

	lowSlot := midMorningSlot()
	lowSlot.Energy = models.EnergyLow

	demanding := models.Task{ID: "t1", Name: "Deep work", Weight: 2, DurationMin: 60, Energy: models.EnergyHigh}
	mismatched := engine.ScoreTask(demanding, lowSlot, mondayDate, ScoreContext{})
	if mismatched.Score != 75 {
		t.Errorf("Expected score 75 for a high-energy task in a low slot, got %d", mismatched.Score)
	}

	matched := models.Task{ID: "t2", Name: "Easy work", Weight: 2, DurationMin: 60, Energy: models.EnergyLow}
	bonus := engine.ScoreTask(matched, lowSlot, mondayDate, ScoreContext{})
	if bonus.Score != 100 {
		t.Errorf("Expected the energy-match bonus to stay capped at 100, got %d", bonus.Score)
	}
}

func TestScoreTask_UnresolvedDependencyPenalizedOnce(t *testing.T) {
	engine := New(models.ResourceProfile{}, nil)
	task := models.Task{
		ID: "t1", Name: "Dependent", Weight: 2, DurationMin: 60,
		DependsOn: []string{"a", "b"},
	}

	result := engine.ScoreTask(task, midMorningSlot(), mondayDate, ScoreContext{})

	// Two missing dependencies still cost a single penalty
	if result.Score != 60 {
		t.Errorf("Expected score 60, got %d", result.Score)
	}

	resolved := engine.ScoreTask(task, midMorningSlot(), mondayDate, ScoreContext{
		Completed: map[string]bool{"a": true, "b": true},
	})
	if resolved.Score != 100 {
		t.Errorf("Expected score 100 with all dependencies complete, got %d", resolved.Score)
	}
}

func TestScoreTask_CollaborativeOutsideBusinessHours(t *testing.T) {
	engine := New(models.ResourceProfile{}, nil)
	task := models.Task{ID: "t1", Name: "Pairing", Weight: 2, DurationMin: 60, Collaborative: true}

	evening := models.TimeSlot{Start: "20:00", End: "21:00", Weight: 2.5, Energy: models.EnergyLow, ConflictRisk: models.ConflictLow}
	result := engine.ScoreTask(task, evening, mondayDate, ScoreContext{})
	if result.Score != 85 {
		t.Errorf("Expected score 85 outside business hours, got %d", result.Score)
	}

	business := midMorningSlot()
	inHours := engine.ScoreTask(task, business, mondayDate, ScoreContext{})
	if inHours.Score != 100 {
		t.Errorf("Expected score 100 within business hours, got %d", inHours.Score)
	}
}

func TestScoreTask_ResourceAvailability(t *testing.T) {
	profile := models.ResourceProfile{
		Resources: map[string][]models.TimeWindow{
			"studio": {{Start: "14:00", End: "17:00"}},
		},
	}
	engine := New(profile, nil)
	task := models.Task{ID: "t1", Name: "Recording", Weight: 2, DurationMin: 60, Resources: []string{"studio"}}

	morning := engine.ScoreTask(task, midMorningSlot(), mondayDate, ScoreContext{})
	if morning.Score != 90 {
		t.Errorf("Expected score 90 when the studio is closed, got %d", morning.Score)
	}

	afternoon := models.TimeSlot{Start: "14:00", End: "15:00", Weight: 2.5, Energy: models.EnergyMedium, ConflictRisk: models.ConflictHigh}
	open := engine.ScoreTask(task, afternoon, mondayDate, ScoreContext{})
	if open.Score != 100 {
		t.Errorf("Expected score 100 when the studio is open, got %d", open.Score)
	}

	// Resources nobody declared windows for are assumed available
	unknown := models.Task{ID: "t2", Name: "Other", Weight: 2, DurationMin: 60, Resources: []string{"whiteboard"}}
	assumed := engine.ScoreTask(unknown, midMorningSlot(), mondayDate, ScoreContext{})
	if assumed.Score != 100 {
		t.Errorf("Expected unknown resource to be assumed available, got %d", assumed.Score)
	}
}

func TestScoreTask_StackedPenaltiesBlockPlacement(t *testing.T) {
	engine := New(models.ResourceProfile{}, nil)
	task := models.Task{
		ID: "t1", Name: "Doomed", Weight: 9, DurationMin: 120,
		DependsOn: []string{"missing"},
	}

	result := engine.ScoreTask(task, midMorningSlot(), mondayDate, ScoreContext{})
	if result.CanPlace {
		t.Error("Expected stacked penalties to block placement")
	}
	if result.Score >= 50 {
		t.Errorf("Expected score below the threshold, got %d", result.Score)
	}
	if len(result.Reasons) < 3 {
		t.Errorf("Expected all violated checks reported, got %v", result.Reasons)
	}
}

func TestEvaluatePlacement_NoSearchWhenStrong(t *testing.T) {
	engine := New(models.ResourceProfile{}, nil)
	task := models.Task{ID: "t1", Name: "Easy", Weight: 2, DurationMin: 60}

	p := engine.EvaluatePlacement(task, midMorningSlot(), mondayDate, ScoreContext{})
	if len(p.Alternatives) != 0 {
		t.Errorf("Expected no alternatives for a strong score, got %d", len(p.Alternatives))
	}
}

func TestEvaluatePlacement_BoundedAlternatives(t *testing.T) {
	engine := New(models.ResourceProfile{}, nil)
	task := models.Task{
		ID: "t1", Name: "Morning pairing", Weight: 2, DurationMin: 60,
		Collaborative: true,
		OptimalTime:   models.TimeMorning,
		Energy:        models.EnergyHigh,
	}
	evening := models.TimeSlot{Start: "20:00", End: "21:00", Weight: 2.5, Energy: models.EnergyLow, ConflictRisk: models.ConflictLow}

	p := engine.EvaluatePlacement(task, evening, mondayDate, ScoreContext{})

	if p.Score >= 70 {
		t.Fatalf("Expected a weak base score, got %d", p.Score)
	}
	if len(p.Alternatives) == 0 {
		t.Fatal("Expected alternative slots for a weak placement")
	}
	if len(p.Alternatives) > 3 {
		t.Errorf("Expected at most 3 alternatives, got %d", len(p.Alternatives))
	}
	for _, alt := range p.Alternatives {
		s := engine.ScoreTask(task, alt, mondayDate, ScoreContext{})
		if s.Score <= 70 {
			t.Errorf("Alternative %s-%s scores %d, expected above 70", alt.Start, alt.End, s.Score)
		}
		if alt.Start == evening.Start && alt.End == evening.End {
			t.Error("Alternatives must not include the original slot")
		}
	}
}
