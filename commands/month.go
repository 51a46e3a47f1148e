package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/fopina/xsibas-workouts/calendar"
	"github.com/fopina/xsibas-workouts/tui"
)

var MonthCmd = Month{}

// Month prints the six week calendar grid for the month containing a date.
type Month struct {
	command
	date string
}

func (cmd *Month) Name() string {
	return "month"
}

func (cmd *Month) Description() string {
	return "Displays the workout calendar for a month"
}

func (cmd *Month) Usage() string {
	return "[--date <yyyy-mm-dd>]"
}

func (cmd *Month) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] month [options] [--date <yyyy-mm-dd>]\n", APP)
	fmt.Println()
	fmt.Println("  Displays the calendar grid for the month containing the date, marking the days with a")
	fmt.Println("  logged workout")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %v month --date 2024-03-01\n", APP)
	fmt.Println()
}

func (cmd *Month) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("month")

	flagset.StringVar(&cmd.date, "date", cmd.date, "Any date in the month to display (YYYY-MM-DD). Defaults to today")

	return flagset
}

func (cmd *Month) Execute(ctx context.Context, options *Options) error {
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

	nav := calendar.NewNavigator(nil)
	nav.Select(d)
	nav.ToggleView()

	days := nav.Days(s.store.HasWorkout)
	count := 0
	for _, day := range days {
		if day.InMonth && day.HasRecord {
			count++
		}
	}

	fmt.Println(heading(s, d.Time().Format("January 2006")))
	fmt.Println(tui.RenderGrid(days, d))
	fmt.Printf("%v workout days\n", count)

	return nil
}
