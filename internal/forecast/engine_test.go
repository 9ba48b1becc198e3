package forecast

import (
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/ballast/internal/constraint"
	"github.com/julianstephens/ballast/internal/models"
)

var testNow = time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)

func newTestEngine(seed int64) *Engine {
	ce := constraint.New(models.ResourceProfile{}, nil)
	return New(ce, rand.New(rand.NewSource(seed)))
}

func TestPredictAt_FourWeekHorizon(t *testing.T) {
	e := newTestEngine(1)

	p := e.PredictAt(testNow, nil, nil, nil, nil)

	if len(p.Weeks) != 4 {
		t.Fatalf("Expected 4 forecast weeks, got %d", len(p.Weeks))
	}
	for i, week := range p.Weeks {
		if len(week.Days) != 7 {
			t.Errorf("Week %d has %d days, want 7", i+1, len(week.Days))
		}
		wantStart := testNow.AddDate(0, 0, 1+7*i).Format("2006-01-02")
		if week.WeekStart != wantStart {
			t.Errorf("Week %d starts %s, want %s", i+1, week.WeekStart, wantStart)
		}
	}
}

func TestPredictAt_ValidityWindow(t *testing.T) {
	e := newTestEngine(1)

	p := e.PredictAt(testNow, nil, nil, nil, nil)

	if !p.IsValidAt(testNow.AddDate(0, 0, 6)) {
		t.Error("Expected prediction valid six days after generation")
	}
	if p.IsValidAt(testNow.AddDate(0, 0, 7)) {
		t.Error("Expected prediction stale seven days after generation")
	}
}

func TestPredictAt_NoHistoryAccuracy(t *testing.T) {
	e := newTestEngine(1)

	p := e.PredictAt(testNow, nil, nil, nil, nil)

	if p.Accuracy != 0.5 {
		t.Errorf("Expected accuracy 0.5 with no history, got %v", p.Accuracy)
	}
	if p.Confidence != 0.6 {
		t.Errorf("Expected confidence 0.6 with no history, got %v", p.Confidence)
	}
	if p.Quality != models.QualityPoor {
		t.Errorf("Expected poor data quality, got %s", p.Quality)
	}
}

func TestPredictAt_AccuracyGrowsWithHistory(t *testing.T) {
	e := newTestEngine(1)

	history := make([]models.MonthlySnapshot, 12)
	for i := range history {
		history[i] = models.MonthlySnapshot{Month: fmt.Sprintf("2025-%02d", i+1), TasksCreated: 20, AvgTasksPerWeek: 5}
	}

	p := e.PredictAt(testNow, nil, nil, history, nil)

	if math.Abs(p.Accuracy-0.95) > 1e-9 {
		t.Errorf("Expected accuracy 0.95 with a year of history, got %v", p.Accuracy)
	}
	if p.Quality != models.QualityExcellent {
		t.Errorf("Expected excellent data quality, got %s", p.Quality)
	}
}

func TestPredictAt_SeedReproducibility(t *testing.T) {
	history := []models.MonthlySnapshot{
		{Month: "2026-06", TasksCreated: 18, AvgTasksPerWeek: 5},
		{Month: "2026-07", TasksCreated: 20, AvgTasksPerWeek: 6},
		{Month: "2026-08", TasksCreated: 22, AvgTasksPerWeek: 6},
	}

	a := newTestEngine(42).PredictAt(testNow, nil, nil, history, nil)
	b := newTestEngine(42).PredictAt(testNow, nil, nil, history, nil)

	if !reflect.DeepEqual(a, b) {
		t.Error("Expected identical predictions for identical seeds and inputs")
	}
}

func TestPredictAt_SyntheticWorkNeverUsesRealIDs(t *testing.T) {
	e := newTestEngine(7)
	for w := 0; w < 4; w++ {
		for i := 0; i < 5; i++ {
			synth := e.syntheticTask(w, i)
			if synth.Weight < 2 || synth.Weight > 8 {
				t.Errorf("Synthetic weight %d out of the 2-8 range", synth.Weight)
			}
			if synth.DurationMin < 30 || synth.DurationMin > 120 {
				t.Errorf("Synthetic duration %dm out of the 30-120 range", synth.DurationMin)
			}
			if synth.Status != models.TaskStatusPending {
				t.Errorf("Synthetic task has status %s, want pending", synth.Status)
			}
		}
	}
}

func TestPredictAt_OverloadedScheduleRaisesAlerts(t *testing.T) {
	e := newTestEngine(1)

	// Nine committed hours against an eight-hour cap, every day for two weeks
	var schedule []models.ScheduledTask
	for d := 0; d < 14; d++ {
		date := testNow.AddDate(0, 0, 1+d).Format("2006-01-02")
		schedule = append(schedule, models.ScheduledTask{
			ID: "s" + date, TaskID: "t" + date, Date: date, Start: "08:00", End: "17:00", Weight: 8,
		})
	}

	p := e.PredictAt(testNow, nil, schedule, nil, nil)

	week := p.Weeks[0]
	if week.CriticalDays != 7 {
		t.Errorf("Expected all 7 days of week 1 critical, got %d", week.CriticalDays)
	}
	if week.FlexibleHours != 0 {
		t.Errorf("Expected no flexible hours in an overloaded week, got %v", week.FlexibleHours)
	}

	var overload, burnout *models.RiskAlert
	for i := range p.Alerts {
		switch p.Alerts[i].Kind {
		case models.AlertOverload:
			overload = &p.Alerts[i]
		case models.AlertBurnout:
			burnout = &p.Alerts[i]
		}
	}
	if overload == nil {
		t.Fatal("Expected an overload alert")
	}
	if overload.Severity != models.SeverityHigh {
		t.Errorf("Expected high overload severity for 14 risk days, got %s", overload.Severity)
	}
	if burnout == nil {
		t.Fatal("Expected a burnout alert for sustained critical days")
	}
	if burnout.Severity == models.SeverityLow {
		t.Errorf("Expected at least medium burnout severity, got %s", burnout.Severity)
	}
}

func TestPredictAt_MovableTasksOnRiskyDays(t *testing.T) {
	e := newTestEngine(1)

	date := testNow.AddDate(0, 0, 1).Format("2006-01-02")
	tasks := []models.Task{
		{ID: "filler", Name: "Filler", Quadrant: models.QuadrantNotUrgentNotImportant, Status: models.TaskStatusPending},
	}
	schedule := []models.ScheduledTask{
		{ID: "s1", TaskID: "filler", Date: date, Start: "08:00", End: "18:00", Weight: 5},
	}

	p := e.PredictAt(testNow, tasks, schedule, nil, nil)

	deferred := p.Weeks[0].Defer
	if len(deferred) != 1 || deferred[0] != "filler" {
		t.Errorf("Expected the low-priority task suggested for deferral, got %v", deferred)
	}
}

func TestBucketFor(t *testing.T) {
	cases := []struct {
		utilization float64
		want        models.CapacityBucket
	}{
		{0.2, models.BucketUnderutilized},
		{0.5, models.BucketOptimal},
		{0.79, models.BucketOptimal},
		{0.8, models.BucketNearLimit},
		{0.99, models.BucketNearLimit},
		{1.0, models.BucketOverloaded},
		{1.5, models.BucketOverloaded},
	}
	for _, tc := range cases {
		if got := bucketFor(tc.utilization); got != tc.want {
			t.Errorf("bucketFor(%v) = %s, want %s", tc.utilization, got, tc.want)
		}
	}
}

func TestPredictAt_FingerprintTracksInputs(t *testing.T) {
	history := []models.MonthlySnapshot{{Month: "2026-08", TasksCreated: 10, AvgTasksPerWeek: 3}}

	a := newTestEngine(1).PredictAt(testNow, nil, nil, history, nil)
	b := newTestEngine(2).PredictAt(testNow, nil, nil, history, nil)
	if a.Fingerprint != b.Fingerprint {
		t.Error("Expected the fingerprint to depend only on inputs, not the seed")
	}

	changed := []models.MonthlySnapshot{{Month: "2026-08", TasksCreated: 11, AvgTasksPerWeek: 3}}
	c := newTestEngine(1).PredictAt(testNow, nil, nil, changed, nil)
	if a.Fingerprint == c.Fingerprint {
		t.Error("Expected changed history to change the fingerprint")
	}
}
