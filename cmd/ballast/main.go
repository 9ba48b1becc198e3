package main

import (
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/ballast/internal/cli"
	"github.com/julianstephens/ballast/internal/errors"
	"github.com/julianstephens/ballast/internal/logger"
	"github.com/julianstephens/ballast/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/ballast/ballast.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init    cli.InitCmd `cmd:"" help:"Initialize ballast storage."`
	Profile struct {
		Show cli.ProfileShowCmd `cmd:"" help:"Show the capacity profile." default:"1"`
		Set  cli.ProfileSetCmd  `cmd:"" help:"Set the capacity profile."`
	} `cmd:"" help:"Manage the capacity profile."`
	Task struct {
		Add    cli.TaskAddCmd    `cmd:"" help:"Add a new task."`
		List   cli.TaskListCmd   `cmd:"" help:"List all tasks."`
		Done   cli.TaskDoneCmd   `cmd:"" help:"Mark a task completed."`
		Delete cli.TaskDeleteCmd `cmd:"" help:"Delete a task."`
	} `cmd:"" help:"Manage tasks."`
	Calendar struct {
		Add    cli.CalendarAddCmd    `cmd:"" help:"Add a blocking event."`
		List   cli.CalendarListCmd   `cmd:"" help:"List events."`
		Delete cli.CalendarDeleteCmd `cmd:"" help:"Delete an event."`
	} `cmd:"" help:"Manage calendar blackouts."`
	History struct {
		Add  cli.HistoryAddCmd  `cmd:"" help:"Record a monthly activity snapshot."`
		List cli.HistoryListCmd `cmd:"" help:"List recorded history."`
	} `cmd:"" help:"Manage workload history."`
	Plan     cli.PlanCmd     `cmd:"" help:"Generate a multi-day schedule."`
	Capacity cli.CapacityCmd `cmd:"" help:"Inspect a day's capacity."`
	Forecast cli.ForecastCmd `cmd:"" help:"Predict capacity for the next four weeks."`
	Validate cli.ValidateCmd `cmd:"" help:"Check tasks and the latest schedule for conflicts."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("ballast"),
		kong.Description("Capacity-aware personal task scheduler"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		errors.Fatalf("failed to initialize logging: %v", err)
	}

	appCtx := &cli.Context{
		Store: storage.NewProvider(CLI.Config),
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
