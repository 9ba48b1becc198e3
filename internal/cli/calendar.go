package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/ballast/internal/models"
	"github.com/julianstephens/ballast/internal/utils"
)

type CalendarAddCmd struct {
	Title  string `arg:"" help:"Event title."`
	Date   string `arg:"" help:"Event date (YYYY-MM-DD)."`
	Start  string `short:"s" help:"Start time (HH:MM)." required:""`
	End    string `short:"e" help:"End time (HH:MM), defaults to one hour after start."`
	Source string `help:"Event source (calendar|personal)." default:"calendar"`
}

func (c *CalendarAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if _, err := utils.ParseDate(c.Date); err != nil {
		return fmt.Errorf("invalid date, use YYYY-MM-DD: %w", err)
	}
	if err := validateClock(c.Start); err != nil {
		return err
	}
	if c.End != "" {
		if err := validateClock(c.End); err != nil {
			return err
		}
	}

	var source models.BlackoutSource
	switch models.BlackoutSource(c.Source) {
	case models.SourceCalendar, models.SourcePersonal:
		source = models.BlackoutSource(c.Source)
	default:
		return fmt.Errorf("invalid source: %s", c.Source)
	}

	event := models.CalendarEvent{
		ID:     uuid.New().String(),
		Title:  c.Title,
		Date:   c.Date,
		Start:  c.Start,
		End:    c.End,
		Source: source,
	}
	if err := ctx.Store.AddEvent(event); err != nil {
		return err
	}
	fmt.Printf("Added event: %s on %s (ID: %s)\n", c.Title, c.Date, event.ID)
	return nil
}

type CalendarListCmd struct {
	Date string `arg:"" optional:"" help:"Only show events on this date (YYYY-MM-DD)."`
}

func (c *CalendarListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	var events []models.CalendarEvent
	var err error
	if c.Date != "" {
		events, err = ctx.Store.GetEventsForDate(c.Date)
	} else {
		events, err = ctx.Store.GetAllEvents()
	}
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("No events found")
		return nil
	}

	fmt.Println("Events:")
	for _, ev := range events {
		end := ev.End
		if end == "" {
			end = "+1h"
		}
		fmt.Printf("  %s %s-%s  %s [%s]\n", ev.Date, ev.Start, end, ev.Title, ev.Source)
		fmt.Printf("      ID: %s\n", ev.ID)
	}
	return nil
}

type CalendarDeleteCmd struct {
	ID string `arg:"" help:"Event ID to delete."`
}

func (c *CalendarDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if err := ctx.Store.DeleteEvent(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted event: %s\n", c.ID)
	return nil
}
