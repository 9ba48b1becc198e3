package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/ballast/internal/constants"
	"github.com/julianstephens/ballast/internal/models"
)

type HistoryAddCmd struct {
	Month        string  `arg:"" help:"Month (YYYY-MM)."`
	Created      int     `help:"Tasks created that month." required:""`
	Completed    int     `help:"Tasks completed that month." required:""`
	TasksPerWeek float64 `help:"Average tasks per week." required:""`
	Hours        float64 `help:"Total hours worked." default:"0"`
}

func (c *HistoryAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if _, err := time.Parse(constants.MonthFormat, c.Month); err != nil {
		return fmt.Errorf("invalid month, use YYYY-MM: %w", err)
	}

	snapshot := models.MonthlySnapshot{
		Month:           c.Month,
		TasksCreated:    c.Created,
		TasksCompleted:  c.Completed,
		AvgTasksPerWeek: c.TasksPerWeek,
		TotalHours:      c.Hours,
	}
	if err := ctx.Store.AddSnapshot(snapshot); err != nil {
		return err
	}
	fmt.Printf("Recorded history for %s\n", c.Month)
	return nil
}

type HistoryListCmd struct{}

func (c *HistoryListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	snapshots, err := ctx.Store.GetSnapshots()
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		fmt.Println("No history recorded")
		return nil
	}

	fmt.Println("History:")
	for _, s := range snapshots {
		fmt.Printf("  %s  created %d, completed %d, %.1f tasks/wk, %.1fh\n",
			s.Month, s.TasksCreated, s.TasksCompleted, s.AvgTasksPerWeek, s.TotalHours)
	}
	return nil
}
