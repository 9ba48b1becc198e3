package cli

import (
	"fmt"

	"github.com/julianstephens/ballast/internal/models"
)

type TaskListCmd struct {
	PendingOnly bool `help:"Show only tasks that still need scheduling."`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	fmt.Println("Tasks:")
	for _, task := range tasks {
		if c.PendingOnly && task.IsComplete() {
			continue
		}

		weight := "auto"
		if task.Weight > 0 {
			weight = fmt.Sprintf("%d", task.Weight)
		}
		fmt.Printf("  [%s] %s - %dm (weight %s)\n", task.Status, task.Name, task.DurationMin, weight)
		fmt.Printf("      ID: %s\n", task.ID)

		if task.Quadrant != "" {
			fmt.Printf("      Quadrant: %s\n", task.Quadrant)
		}
		if task.Deadline != "" {
			fmt.Printf("      Deadline: %s (buffer %dd)\n", task.Deadline, task.BufferDays)
		}
		if len(task.DependsOn) > 0 {
			fmt.Printf("      Depends on: %v\n", task.DependsOn)
		}
		if task.Splittable && task.DurationMin >= 2*task.MinSplitMin {
			fmt.Printf("      Splittable (min chunk %dm)\n", task.MinSplitMin)
		}
		if task.Energy != "" || task.Focus != "" {
			fmt.Printf("      Needs: energy=%s focus=%s\n", orDash(string(task.Energy)), orDash(string(task.Focus)))
		}
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

type TaskDoneCmd struct {
	ID string `arg:"" help:"Task ID to mark completed."`
}

func (c *TaskDoneCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return err
	}
	task.Status = models.TaskStatusCompleted
	if err := ctx.Store.UpdateTask(task); err != nil {
		return err
	}
	fmt.Printf("Completed task: %s\n", task.Name)
	return nil
}

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID to delete."`
}

func (c *TaskDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if err := ctx.Store.DeleteTask(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted task: %s\n", c.ID)
	return nil
}
