package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/fopina/xsibas-workouts/calendar"
	"github.com/fopina/xsibas-workouts/tui"
)

var WeekCmd = Week{}

// Week prints the calendar week containing a date, with the workout logged on that date.
type Week struct {
	command
	date string
}

func (cmd *Week) Name() string {
	return "week"
}

func (cmd *Week) Description() string {
	return "Displays the workouts for a calendar week"
}

func (cmd *Week) Usage() string {
	return "[--date <yyyy-mm-dd>]"
}

func (cmd *Week) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] week [options] [--date <yyyy-mm-dd>]\n", APP)
	fmt.Println()
	fmt.Println("  Displays the Sunday to Saturday week containing the date, marking the days with a logged")
	fmt.Println("  workout, followed by the workout for the date")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %v week --date 2024-03-10\n", APP)
	fmt.Println()
}

func (cmd *Week) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("week")

	flagset.StringVar(&cmd.date, "date", cmd.date, "Date to display (YYYY-MM-DD). Defaults to today")

	return flagset
}

func (cmd *Week) Execute(ctx context.Context, options *Options) error {
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

	fmt.Println(heading(s, d.Time().Format("January 2006")))
	fmt.Println(tui.RenderGrid(nav.Days(s.store.HasWorkout), d))
	fmt.Print(tui.RenderDay(d, s.store.Sections(d), s.store.VideoFor, -1, 0))

	return nil
}

func heading(s *session, period string) string {
	title := s.store.Title()
	if title == "" {
		title = s.sheetID
	}

	return fmt.Sprintf("%v - %v\n", title, period)
}
