package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fopina/xsibas-workouts/google"
	"github.com/fopina/xsibas-workouts/history"
)

var SheetsCmd = Sheets{}

// Sheets lists the recently opened spreadsheets and, optionally, the spreadsheets in Google Drive. It
// also sets the default spreadsheet and removes spreadsheets from the history.
type Sheets struct {
	command
	drive  bool
	use    string
	remove string
}

func (cmd *Sheets) Name() string {
	return "sheets"
}

func (cmd *Sheets) Description() string {
	return "Lists recently opened spreadsheets and selects the default spreadsheet"
}

func (cmd *Sheets) Usage() string {
	return "[--drive] [--use <url>] [--remove <url>]"
}

func (cmd *Sheets) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] sheets [options] [--drive] [--use <url>] [--remove <url>]\n", APP)
	fmt.Println()
	fmt.Println("  Lists the recently opened spreadsheets, most recent first. The most recent spreadsheet is")
	fmt.Println("  used when no --url is given and no default spreadsheet is configured")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %v sheets --drive\n", APP)
	fmt.Printf("    %v sheets --use \"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms\"\n", APP)
	fmt.Println()
}

func (cmd *Sheets) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("sheets")

	flagset.BoolVar(&cmd.drive, "drive", cmd.drive, "Also lists the spreadsheets in your Google Drive")
	flagset.StringVar(&cmd.use, "use", cmd.use, "Saves the spreadsheet URL or ID as the default spreadsheet in the config file")
	flagset.StringVar(&cmd.remove, "remove", cmd.remove, "Removes the spreadsheet URL or ID from the history")

	return flagset
}

func (cmd *Sheets) Execute(ctx context.Context, options *Options) error {
	cfg, err := cmd.configure(options)
	if err != nil {
		return err
	}

	h, err := history.Open(cfg.History)
	if err != nil {
		warnf("%v", err)
	}

	if strings.TrimSpace(cmd.remove) != "" {
		id, err := google.SheetID(cmd.remove)
		if err != nil {
			return err
		}

		if !h.Remove(id) {
			return fmt.Errorf("%v is not in the history", id)
		}

		if err := h.Save(); err != nil {
			return err
		}

		infof("Removed %v from the history", id)
	}

	if strings.TrimSpace(cmd.use) != "" {
		id, err := google.SheetID(cmd.use)
		if err != nil {
			return err
		}

		cfg.Sheet = id
		if err := cfg.Save(); err != nil {
			return err
		}

		h.Touch(id, time.Now())
		if err := h.Save(); err != nil {
			return err
		}

		infof("Saved %v as the default spreadsheet in %v", id, cfg.File)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)

	fmt.Fprintln(w, "RECENT\t\t\t")
	for _, e := range h.List() {
		current := ""
		if e.ID == cfg.Sheet {
			current = "*"
		}

		fmt.Fprintf(w, "%v %v\t%v\t%v\n", current, e.ID, e.Title, timestamp(e.LastOpened))
	}

	if cmd.drive {
		tokens, err := tokenSource(ctx, cfg)
		if err != nil {
			return err
		}

		s := session{
			cfg:     cfg,
			tokens:  tokens,
			client:  google.NewClient(cmd.options...),
			history: h,
		}

		if err := s.connect(ctx); err != nil {
			return err
		}

		list, err := s.client.Spreadsheets(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintln(w, "\t\t\t")
		fmt.Fprintln(w, "GOOGLE DRIVE\t\t\t")
		for _, f := range list {
			fmt.Fprintf(w, "  %v\t%v\t%v\n", f.ID, f.Name, timestamp(f.Modified))
		}
	}

	return w.Flush()
}
