package cli

import (
	"fmt"

	"github.com/julianstephens/ballast/internal/constraint"
	"github.com/julianstephens/ballast/internal/models"
	"github.com/julianstephens/ballast/internal/utils"
)

type CapacityCmd struct {
	Date string `arg:"" optional:"" help:"Date to inspect (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *CapacityCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	date := c.Date
	if date == "" || date == "today" {
		date, err = utils.GetTodayInTimezone(settings.Timezone)
		if err != nil {
			return err
		}
	}
	if _, err := utils.ParseDate(date); err != nil {
		return fmt.Errorf("invalid date, use YYYY-MM-DD or 'today': %w", err)
	}

	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return err
	}
	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}

	// Count committed placements if a schedule covers this date
	var scheduled []models.ScheduledTask
	if result, err := ctx.Store.GetLatestSchedule(); err == nil {
		for _, st := range result.Scheduled {
			if st.Date == date {
				scheduled = append(scheduled, st)
			}
		}
	}

	engine := constraint.New(profile, events)
	status := engine.DailyCapacity(date, scheduled)

	fmt.Println(headerStyle.Render("Capacity for " + date))
	fmt.Printf("  Hours:  %.1f scheduled / %.1f available (%.1f free)\n",
		status.ScheduledHours, status.AvailableHours, status.RemainingHours)
	fmt.Printf("  Weight: %.0f used / %d limit (%.0f free)\n",
		status.ScheduledWeight, status.WeightLimit, status.RemainingWeight)
	fmt.Printf("  Slots:  %d/%d light, %d/%d heavy\n",
		status.LightUsed, status.LightLimit, status.HeavyUsed, status.HeavyLimit)
	fmt.Printf("  Utilization %.0f%%, feasibility %.0f%%\n", status.Utilization*100, status.Feasibility*100)

	switch status.Overload {
	case models.OverloadCritical, models.OverloadHigh:
		fmt.Println(alertStyle.Render("  Overload: " + string(status.Overload)))
	case models.OverloadMedium:
		fmt.Println(warnStyle.Render("  Overload: " + string(status.Overload)))
	default:
		fmt.Println("  Overload: " + string(status.Overload))
	}
	for _, rec := range status.Recommendations {
		fmt.Println(dimStyle.Render("  > " + rec))
	}
	return nil
}
