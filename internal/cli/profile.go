package cli

import (
	"fmt"
	"sort"

	"github.com/julianstephens/ballast/internal/constants"
	"github.com/julianstephens/ballast/internal/models"
)

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return err
	}

	fmt.Println("Capacity profile:")
	fmt.Printf("  Daily weight limit: %d\n", profile.DailyWeightLimit)
	fmt.Printf("  Max daily hours:    %.1f\n", profile.MaxDailyHours)
	fmt.Printf("  Light slots:        %d\n", profile.LightSlots)
	fmt.Printf("  Heavy slots:        %d\n", profile.HeavySlots)
	if profile.FocusCapacity != "" {
		fmt.Printf("  Focus capacity:     %s\n", profile.FocusCapacity)
	}
	printWindows("Preferred", profile.PreferredWindows)
	printWindows("Unavailable", profile.UnavailableWindows)
	printWindows("Productive", profile.ProductiveWindows)

	if len(profile.Resources) > 0 {
		fmt.Println("  Resources:")
		names := make([]string, 0, len(profile.Resources))
		for name := range profile.Resources {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("    %s: %s\n", name, formatWindows(profile.Resources[name]))
		}
	}
	return nil
}

func printWindows(label string, windows []models.TimeWindow) {
	if len(windows) == 0 {
		return
	}
	fmt.Printf("  %-11s windows: %s\n", label, formatWindows(windows))
}

func formatWindows(windows []models.TimeWindow) string {
	out := ""
	for i, w := range windows {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s-%s", w.Start, w.End)
	}
	return out
}

type ProfileSetCmd struct {
	WeightLimit int     `help:"Daily weight limit." default:"20"`
	MaxHours    float64 `help:"Max scheduled hours per day." default:"8"`
	LightSlots  int     `help:"Max light tasks per day." default:"3"`
	HeavySlots  int     `help:"Max heavy tasks per day." default:"2"`
	Focus       string  `help:"Focus capacity (low|medium|high)."`
	Preferred   string  `help:"Preferred windows (HH:MM-HH:MM, comma separated)."`
	Unavailable string  `help:"Unavailable windows (HH:MM-HH:MM, comma separated)."`
	Productive  string  `help:"Peak-energy windows (HH:MM-HH:MM, comma separated)."`
}

func (c *ProfileSetCmd) Validate() error {
	if c.WeightLimit <= 0 {
		return fmt.Errorf("weight limit must be positive")
	}
	if c.MaxHours <= 0 {
		return fmt.Errorf("max hours must be positive")
	}
	return nil
}

func (c *ProfileSetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	preferred, err := parseWindows(c.Preferred)
	if err != nil {
		return err
	}
	unavailable, err := parseWindows(c.Unavailable)
	if err != nil {
		return err
	}
	productive, err := parseWindows(c.Productive)
	if err != nil {
		return err
	}

	var focus models.FocusBand
	switch c.Focus {
	case "":
	case string(models.FocusLow), string(models.FocusMedium), string(models.FocusHigh):
		focus = models.FocusBand(c.Focus)
	default:
		return fmt.Errorf("invalid focus capacity: %s", c.Focus)
	}

	// Preserve per-resource windows set by earlier edits
	existing, err := ctx.Store.GetProfile()
	var resources map[string][]models.TimeWindow
	if err == nil {
		resources = existing.Resources
	}

	profile := models.ResourceProfile{
		DailyWeightLimit:   c.WeightLimit,
		LightSlots:         c.LightSlots,
		HeavySlots:         c.HeavySlots,
		MaxDailyHours:      c.MaxHours,
		PreferredWindows:   preferred,
		UnavailableWindows: unavailable,
		ProductiveWindows:  productive,
		FocusCapacity:      focus,
		Resources:          resources,
	}
	if profile.DailyWeightLimit == 0 {
		profile.DailyWeightLimit = constants.DefaultDailyWeightLimit
	}

	if err := ctx.Store.SaveProfile(profile); err != nil {
		return err
	}
	fmt.Println("Profile saved")
	return nil
}
