package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/ballast/internal/constants"
	"github.com/julianstephens/ballast/internal/models"
)

type TaskAddCmd struct {
	Name          string `arg:"" help:"Task name."`
	Duration      int    `short:"d" help:"Duration in minutes." required:""`
	Weight        int    `short:"w" help:"Weight (1-10, 0 = estimate from duration)." default:"0"`
	Complexity    string `short:"c" help:"Complexity (simple|moderate|complex)."`
	Splittable    bool   `help:"Allow splitting across slots."`
	MinSplit      int    `help:"Minimum split chunk in minutes." default:"30"`
	DependsOn     string `help:"Comma-separated prerequisite task IDs."`
	Blocks        string `help:"Comma-separated task IDs this task blocks."`
	Urgency       int    `help:"Urgency (0-100)." default:"0"`
	Importance    int    `help:"Importance (0-100)." default:"0"`
	Quadrant      string `short:"q" help:"Priority quadrant (urgent_important|urgent_not_important|not_urgent_important|not_urgent_not_important)."`
	Energy        string `help:"Required energy level (low|medium|high)."`
	Focus         string `help:"Required focus level (low|medium|high)."`
	Collaborative bool   `help:"Requires another person's availability."`
	Resources     string `help:"Comma-separated required resource names."`
	OptimalTime   string `help:"Preferred time of day (morning|afternoon|evening|flexible)."`
	Interruptible string `help:"Interruption tolerance (low|medium|high)."`
	Deadline      string `help:"Deadline (YYYY-MM-DD)."`
	BufferDays    int    `help:"Buffer days before the deadline." default:"0"`
	Risk          string `help:"Deadline-miss risk (low|medium|high)."`
}

func (c *TaskAddCmd) Validate() error {
	if c.Weight != 0 && (c.Weight < constants.WeightMin || c.Weight > constants.WeightMax) {
		return fmt.Errorf("weight must be between %d and %d", constants.WeightMin, constants.WeightMax)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if c.Urgency < 0 || c.Urgency > 100 {
		return fmt.Errorf("urgency must be between 0 and 100")
	}
	if c.Importance < 0 || c.Importance > 100 {
		return fmt.Errorf("importance must be between 0 and 100")
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	quadrant, err := parseQuadrant(c.Quadrant)
	if err != nil {
		return err
	}
	energy, err := parseBand[models.EnergyBand](c.Energy, "energy", models.EnergyLow, models.EnergyMedium, models.EnergyHigh)
	if err != nil {
		return err
	}
	focus, err := parseBand[models.FocusBand](c.Focus, "focus", models.FocusLow, models.FocusMedium, models.FocusHigh)
	if err != nil {
		return err
	}
	complexity, err := parseBand[models.ComplexityBand](c.Complexity, "complexity", models.ComplexitySimple, models.ComplexityModerate, models.ComplexityComplex)
	if err != nil {
		return err
	}
	optimal, err := parseBand[models.TimeOfDay](c.OptimalTime, "optimal time", models.TimeMorning, models.TimeAfternoon, models.TimeEvening, models.TimeFlexible)
	if err != nil {
		return err
	}
	interruptible, err := parseBand[models.Tolerance](c.Interruptible, "interruption tolerance", models.ToleranceLow, models.ToleranceMedium, models.ToleranceHigh)
	if err != nil {
		return err
	}
	risk, err := parseBand[models.RiskLevel](c.Risk, "risk", models.RiskLow, models.RiskMedium, models.RiskHigh)
	if err != nil {
		return err
	}

	task := models.Task{
		ID:            uuid.New().String(),
		Name:          c.Name,
		Weight:        c.Weight,
		DurationMin:   c.Duration,
		Complexity:    complexity,
		Splittable:    c.Splittable,
		MinSplitMin:   c.MinSplit,
		DependsOn:     parseCSV(c.DependsOn),
		Blocks:        parseCSV(c.Blocks),
		Urgency:       c.Urgency,
		Importance:    c.Importance,
		Quadrant:      quadrant,
		Energy:        energy,
		Focus:         focus,
		Collaborative: c.Collaborative,
		Resources:     parseCSV(c.Resources),
		OptimalTime:   optimal,
		Interruptible: interruptible,
		Deadline:      c.Deadline,
		BufferDays:    c.BufferDays,
		Risk:          risk,
		Status:        models.TaskStatusPending,
	}

	if err := ctx.Store.AddTask(task); err != nil {
		return err
	}

	fmt.Printf("Added task: %s (ID: %s)\n", c.Name, task.ID)
	return nil
}

func parseQuadrant(s string) (models.PriorityQuadrant, error) {
	switch models.PriorityQuadrant(s) {
	case "", models.QuadrantUrgentImportant, models.QuadrantUrgentNotImportant,
		models.QuadrantNotUrgentImportant, models.QuadrantNotUrgentNotImportant:
		return models.PriorityQuadrant(s), nil
	default:
		return "", fmt.Errorf("invalid quadrant: %s", s)
	}
}

func parseBand[T ~string](s, label string, valid ...T) (T, error) {
	if s == "" {
		return "", nil
	}
	for _, v := range valid {
		if T(s) == v {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid %s: %s", label, s)
}
