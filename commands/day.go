package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/fopina/xsibas-workouts/tui"
)

var DayCmd = Day{}

// Day prints the workout logged on a date, grouped by section.
type Day struct {
	command
	date string
}

func (cmd *Day) Name() string {
	return "day"
}

func (cmd *Day) Description() string {
	return "Displays the workout logged on a day"
}

func (cmd *Day) Usage() string {
	return "[--date <yyyy-mm-dd>]"
}

func (cmd *Day) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] day [options] [--date <yyyy-mm-dd>]\n", APP)
	fmt.Println()
	fmt.Println("  Displays the exercises logged on the date, grouped by section, with their notes and")
	fmt.Println("  exercise videos")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %v day --date 2024-03-10\n", APP)
	fmt.Println()
}

func (cmd *Day) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("day")

	flagset.StringVar(&cmd.date, "date", cmd.date, "Date to display (YYYY-MM-DD). Defaults to today")

	return flagset
}

func (cmd *Day) Execute(ctx context.Context, options *Options) error {
	d, err := date(cmd.date, "--date")
	if err != nil {
		return err
	}

	s, err := cmd.open(ctx, options)
	if err != nil {
		return err
	}

	if err := s.load(ctx); err != nil {
		return err
	}

	fmt.Print(tui.RenderDay(d, s.store.Sections(d), s.store.VideoFor, -1, 0))

	return nil
}
