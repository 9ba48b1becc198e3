package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/ballast/internal/constraint"
	"github.com/julianstephens/ballast/internal/models"
	"github.com/julianstephens/ballast/internal/scheduler"
	"github.com/julianstephens/ballast/internal/utils"
)

type PlanCmd struct {
	Start      string `arg:"" optional:"" help:"Start date (YYYY-MM-DD or 'today')." default:"today"`
	Days       int    `short:"n" help:"Horizon length in days (0 = settings default)."`
	ConfigFile string `short:"f" help:"Scheduling config file (YAML)." type:"path"`
	NoSplit    bool   `help:"Disable task splitting."`
	Yes        bool   `short:"y" help:"Accept the plan without confirming."`
}

func (c *PlanCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	config, err := c.buildConfig(settings.Timezone, settings.DefaultHorizonDays)
	if err != nil {
		return err
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

	var prior []models.ScheduledTask
	if existing, err := ctx.Store.GetLatestSchedule(); err == nil {
		prior = existing.Scheduled
		if len(prior) > 0 && !c.Yes {
			replace := false
			prompt := huh.NewConfirm().
				Title(fmt.Sprintf("A schedule from %s exists. Replace it?", existing.GeneratedAt.Format("2006-01-02 15:04"))).
				Value(&replace)
			if err := prompt.Run(); err != nil {
				return err
			}
			if !replace {
				fmt.Println("Plan generation cancelled.")
				return nil
			}
		}
	}

	engine := constraint.New(profile, events)
	result, err := scheduler.New(engine, config).GenerateSchedule(tasks, prior)
	if err != nil {
		return err
	}

	renderSchedule(result)

	if !c.Yes {
		accept := false
		prompt := huh.NewConfirm().Title("Accept this plan?").Value(&accept)
		if err := prompt.Run(); err != nil {
			return err
		}
		if !accept {
			fmt.Println("Plan discarded. You can adjust tasks and regenerate.")
			return nil
		}
	}

	if err := ctx.Store.SaveSchedule(result); err != nil {
		return err
	}
	fmt.Println("Plan accepted and saved!")
	return nil
}

func (c *PlanCmd) buildConfig(timezone string, defaultHorizon int) (models.SchedulingConfig, error) {
	var config models.SchedulingConfig
	if c.ConfigFile != "" {
		raw, err := os.ReadFile(c.ConfigFile)
		if err != nil {
			return config, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &config); err != nil {
			return config, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Flags win over file values
	if c.Start != "" && c.Start != "today" {
		config.StartDate = c.Start
	}
	if config.StartDate == "" {
		today, err := utils.GetTodayInTimezone(timezone)
		if err != nil {
			return config, err
		}
		config.StartDate = today
	}
	if c.Days > 0 {
		config.HorizonDays = c.Days
	}
	if config.HorizonDays == 0 {
		config.HorizonDays = defaultHorizon
	}
	if c.ConfigFile == "" {
		config.AllowSplitting = true
	}
	if c.NoSplit {
		config.AllowSplitting = false
	}
	return config, nil
}

func renderSchedule(result models.ScheduleResult) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("Schedule %s (+%dd)", result.StartDate, result.HorizonDays)))
	fmt.Println()

	for _, day := range result.Days {
		status := day.Capacity
		fmt.Printf("%s  %s\n", dateStyle.Render(day.Date),
			dimStyle.Render(fmt.Sprintf("weight %.0f/%d, %.1fh/%.1fh, quality %.0f",
				status.ScheduledWeight, status.WeightLimit, status.ScheduledHours, status.AvailableHours, day.Quality)))
		if len(day.Tasks) == 0 {
			fmt.Println(dimStyle.Render("  (nothing scheduled)"))
			continue
		}
		for _, st := range day.Tasks {
			line := fmt.Sprintf("  %s-%s  %s", st.Start, st.End, st.TaskName)
			if st.Split != nil {
				line += dimStyle.Render(fmt.Sprintf(" [part %d/%d]", st.Split.Index, st.Split.Total))
			}
			if st.Confidence < 0.5 {
				line += warnStyle.Render(fmt.Sprintf("  (confidence %.0f%%)", st.Confidence*100))
			}
			fmt.Println(line)
		}
	}

	if len(result.Unscheduled) > 0 {
		fmt.Println()
		fmt.Println(warnStyle.Render("Unscheduled:"))
		for _, u := range result.Unscheduled {
			fmt.Printf("  %s: %s\n", u.Name, u.Reason)
		}
	}
	for _, w := range result.Warnings {
		fmt.Println(alertStyle.Render("! " + w))
	}
	for _, r := range result.Recommendations {
		fmt.Println(dimStyle.Render("> " + r))
	}

	m := result.Metrics
	fmt.Println()
	fmt.Printf("Scheduled %.0f%% of tasks, avg confidence %.0f%%, load balance %.2f\n",
		m.SchedulingRate*100, m.AvgConfidence*100, m.LoadBalance)
}
