package constraint

import (
	"testing"

	"github.com/julianstephens/ballast/internal/models"
)

func TestDailyCapacity_EmptyDay(t *testing.T) {
	engine := New(models.ResourceProfile{}, nil)

	status := engine.DailyCapacity(mondayDate, nil)

	if status.ScheduledWeight != 0 || status.Utilization != 0 {
		t.Errorf("Expected an empty day, got weight %v util %v", status.ScheduledWeight, status.Utilization)
	}
	if status.Overload != models.OverloadLow {
		t.Errorf("Expected low overload, got %s", status.Overload)
	}
	if status.Feasibility != 1.0 {
		t.Errorf("Expected full feasibility, got %v", status.Feasibility)
	}
	// A free 17-hour day is capped at the max daily hours
	if status.AvailableHours != 8 {
		t.Errorf("Expected available hours capped at 8, got %v", status.AvailableHours)
	}
}

func TestDailyCapacity_NeverFails(t *testing.T) {
	engine := New(models.ResourceProfile{}, nil)

	status := engine.DailyCapacity("garbage", []models.ScheduledTask{
		{ID: "s1", TaskID: "t1", Date: "garbage", Start: "09:00", End: "10:00", Weight: 3},
	})

	if status.AvailableHours != 0 {
		t.Errorf("Expected zero available hours for a bad date, got %v", status.AvailableHours)
	}
	if status.ScheduledWeight != 3 {
		t.Errorf("Expected the placement still counted, got %v", status.ScheduledWeight)
	}
}

func TestDailyCapacity_DefaultsMissingWeight(t *testing.T) {
	engine := New(models.ResourceProfile{}, nil)

	status := engine.DailyCapacity(mondayDate, []models.ScheduledTask{
		{ID: "s1", TaskID: "t1", Date: mondayDate, Start: "09:00", End: "10:00"},
	})

	if status.ScheduledWeight != 5 {
		t.Errorf("Expected missing weight to default to 5, got %v", status.ScheduledWeight)
	}
}

func TestDailyCapacity_OverloadLevels(t *testing.T) {
	engine := New(models.ResourceProfile{DailyWeightLimit: 20}, nil)

	cases := []struct {
		name   string
		weight float64
		want   models.OverloadLevel
	}{
		{"comfortable", 10, models.OverloadLow},
		{"busy", 15, models.OverloadMedium},
		{"nearly full", 19, models.OverloadHigh},
		{"over budget", 22, models.OverloadCritical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status := engine.DailyCapacity(mondayDate, []models.ScheduledTask{
				{ID: "s1", TaskID: "t1", Date: mondayDate, Start: "09:00", End: "10:00", Weight: tc.weight},
			})
			if status.Overload != tc.want {
				t.Errorf("Weight %v gives overload %s, want %s", tc.weight, status.Overload, tc.want)
			}
		})
	}
}

func TestDailyCapacity_HoursOverrunIsCritical(t *testing.T) {
	engine := New(models.ResourceProfile{MaxDailyHours: 4}, nil)

	// Five scheduled hours against a four-hour cap, light weight
	status := engine.DailyCapacity(mondayDate, []models.ScheduledTask{
		{ID: "s1", TaskID: "t1", Date: mondayDate, Start: "09:00", End: "14:00", Weight: 2},
	})

	if status.Overload != models.OverloadCritical {
		t.Errorf("Expected critical overload when hours exceed the cap, got %s", status.Overload)
	}
	if status.Feasibility >= 1 {
		t.Errorf("Expected degraded feasibility, got %v", status.Feasibility)
	}
	if len(status.Recommendations) == 0 {
		t.Error("Expected a recommendation for an over-capacity day")
	}
}

func TestDailyCapacity_SlotCounts(t *testing.T) {
	engine := New(models.ResourceProfile{LightSlots: 1, HeavySlots: 1}, nil)

	status := engine.DailyCapacity(mondayDate, []models.ScheduledTask{
		{ID: "s1", TaskID: "a", Date: mondayDate, Start: "09:00", End: "10:00", Weight: 2},
		{ID: "s2", TaskID: "b", Date: mondayDate, Start: "10:00", End: "11:00", Weight: 3},
		{ID: "s3", TaskID: "c", Date: mondayDate, Start: "11:00", End: "12:00", Weight: 5},
		{ID: "s4", TaskID: "d", Date: mondayDate, Start: "14:00", End: "15:00", Weight: 8},
	})

	if status.LightUsed != 2 {
		t.Errorf("Expected 2 light placements, got %d", status.LightUsed)
	}
	if status.HeavyUsed != 1 {
		t.Errorf("Expected 1 heavy placement, got %d", status.HeavyUsed)
	}

	if len(status.Recommendations) == 0 {
		t.Error("Expected a recommendation about the exceeded light-slot budget")
	}
}
