package commands

import (
	"context"
	"flag"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fopina/xsibas-workouts/calendar"
	"github.com/fopina/xsibas-workouts/tui"
)

var BrowseCmd = Browse{}

// Browse runs the interactive workout calendar.
type Browse struct {
	command
	date string
}

func (cmd *Browse) Name() string {
	return "browse"
}

func (cmd *Browse) Description() string {
	return "Browses the workout calendar and edits exercise notes interactively"
}

func (cmd *Browse) Usage() string {
	return "[--date <yyyy-mm-dd>]"
}

func (cmd *Browse) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] browse [options] [--date <yyyy-mm-dd>]\n", APP)
	fmt.Println()
	fmt.Println("  Opens the interactive workout calendar. Navigate by day, week and month, select a day to")
	fmt.Println("  see its workout and edit the exercise notes. Press 'r' to reload after logging in again.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %v browse\n", APP)
	fmt.Println()
}

func (cmd *Browse) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("browse")

	flagset.StringVar(&cmd.date, "date", cmd.date, "Initially selected date (YYYY-MM-DD). Defaults to today")

	return flagset
}

func (cmd *Browse) Execute(ctx context.Context, options *Options) error {
	d, err := date(cmd.date, "--date")
	if err != nil {
		return err
	}

	s, err := cmd.open(ctx, options)
	if err != nil {
		return err
	}

	nav := calendar.NewNavigator(nil)
	nav.Select(d)

	defer s.save()

	model := tui.NewModel(tui.Config{
		Context:   ctx,
		Store:     s.store,
		Editor:    s.editor,
		Navigator: nav,
		SheetID:   s.sheetID,
		Token: func(ctx context.Context) (string, error) {
			s.history.Touch(s.sheetID, time.Now())
			return s.token(ctx)
		},
		Init: s.client.Init,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}
