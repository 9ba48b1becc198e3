package cli

import (
	"fmt"

	"github.com/julianstephens/ballast/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	defer ctx.Store.Close()

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	validator := validation.New()

	fmt.Println("Validating tasks...")
	taskResult := validator.ValidateTasks(tasks)

	fmt.Println("Validating latest schedule...")
	var scheduleResult validation.ValidationResult
	if schedule, err := ctx.Store.GetLatestSchedule(); err == nil {
		profile, err := ctx.Store.GetProfile()
		if err != nil {
			return err
		}
		scheduleResult = validator.ValidateSchedule(schedule, tasks, profile)
	}

	combined := validation.ValidationResult{
		Conflicts: append(taskResult.Conflicts, scheduleResult.Conflicts...),
	}

	fmt.Println()
	fmt.Println(combined.FormatReport())
	return nil
}
