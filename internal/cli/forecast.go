package cli

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/ballast/internal/constraint"
	"github.com/julianstephens/ballast/internal/forecast"
	"github.com/julianstephens/ballast/internal/models"
)

type ForecastCmd struct {
	Seed    int64  `help:"Seed for synthetic workload generation (0 = time-based)."`
	Factors string `help:"External factors file (YAML)." type:"path"`
	Cached  bool   `help:"Show the stored prediction instead of generating a new one."`
}

func (c *ForecastCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if c.Cached {
		prediction, err := ctx.Store.GetLatestPrediction()
		if err != nil {
			return err
		}
		renderPrediction(prediction)
		return nil
	}

	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return err
	}
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}
	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}
	history, err := ctx.Store.GetSnapshots()
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	factors, err := c.loadFactors()
	if err != nil {
		return err
	}

	var schedule []models.ScheduledTask
	if result, err := ctx.Store.GetLatestSchedule(); err == nil {
		schedule = result.Scheduled
	}

	var src *rand.Rand
	if c.Seed != 0 {
		src = rand.New(rand.NewSource(c.Seed))
	}

	engine := forecast.New(constraint.New(profile, events), src)
	prediction := engine.Predict(tasks, schedule, history, factors)

	if err := ctx.Store.SavePrediction(prediction); err != nil {
		return err
	}
	renderPrediction(prediction)
	return nil
}

func (c *ForecastCmd) loadFactors() ([]models.ExternalFactor, error) {
	if c.Factors == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(c.Factors)
	if err != nil {
		return nil, fmt.Errorf("failed to read factors file: %w", err)
	}
	var factors []models.ExternalFactor
	if err := yaml.Unmarshal(raw, &factors); err != nil {
		return nil, fmt.Errorf("failed to parse factors file: %w", err)
	}
	return factors, nil
}

func renderPrediction(p models.FuturePrediction) {
	fmt.Println(headerStyle.Render("Capacity forecast"))
	fmt.Println(dimStyle.Render(fmt.Sprintf("generated %s, valid until %s",
		p.GeneratedAt.Format("2006-01-02"), p.ValidUntil.Format("2006-01-02"))))
	fmt.Println()

	for i, week := range p.Weeks {
		fmt.Printf("%s  %s\n",
			dateStyle.Render(fmt.Sprintf("Week %d (%s)", i+1, week.WeekStart)),
			dimStyle.Render(fmt.Sprintf("%.1fh scheduled / %.1fh available, %.1fh flexible",
				week.ScheduledHours, week.AvailableHours, week.FlexibleHours)))
		if week.RiskDays > 0 {
			fmt.Println(warnStyle.Render(fmt.Sprintf("  %d risk days (%d critical)", week.RiskDays, week.CriticalDays)))
		}
		if len(week.OptimalDays) > 0 {
			fmt.Printf("  Optimal days: %v\n", week.OptimalDays)
		}
	}

	fmt.Println()
	fmt.Printf("Trend: %s (growth %+.0f%%, seasonal %+.2f, personal %+.2f)\n",
		p.Trends.Pattern, p.Trends.ExpectedGrowth*100, p.Trends.SeasonalImpact, p.Trends.PersonalImpact)

	for _, alert := range p.Alerts {
		line := fmt.Sprintf("! [%s/%s] %s", alert.Kind, alert.Severity, alert.Message)
		switch alert.Severity {
		case models.SeverityHigh, models.SeverityCritical:
			fmt.Println(alertStyle.Render(line))
		default:
			fmt.Println(warnStyle.Render(line))
		}
	}
	for _, rec := range p.Recommendations {
		fmt.Println(dimStyle.Render(fmt.Sprintf("> [%s] %s", rec.Priority, rec.Message)))
	}

	fmt.Println()
	fmt.Printf("Accuracy %.0f%%, confidence %.0f%%, data quality %s\n",
		p.Accuracy*100, p.Confidence*100, p.Quality)
}
