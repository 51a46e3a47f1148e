package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fopina/xsibas-workouts/calendar"
	"github.com/fopina/xsibas-workouts/workout"
)

var GetCmd = Get{
	file: time.Now().Format("2006-01-02T150405.tsv"),
}

// Get exports the workout log, or a date range of it, to a TSV file.
type Get struct {
	command
	from string
	to   string
	file string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves the workout log from Google Sheets and stores it to a local TSV file"
}

func (cmd *Get) Usage() string {
	return "[--from <yyyy-mm-dd>] [--to <yyyy-mm-dd>] --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options] [--from <yyyy-mm-dd>] [--to <yyyy-mm-dd>] --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads the workout log to a TSV file, optionally restricted to a date range")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %v --debug get --from 2024-03-01 --to 2024-03-31 --file \"march.tsv\"\n", APP)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.from, "from", cmd.from, "Start date (YYYY-MM-DD) of the records to retrieve")
	flagset.StringVar(&cmd.to, "to", cmd.to, "End date (YYYY-MM-DD) of the records to retrieve")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file name. Defaults to '<yyyy-mm-ddTHHmmss>.tsv'")

	return flagset
}

func (cmd *Get) Execute(ctx context.Context, options *Options) error {
	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	var from, to calendar.Date
	var err error

	if strings.TrimSpace(cmd.from) != "" {
		if from, err = date(cmd.from, "--from"); err != nil {
			return err
		}
	}

	if strings.TrimSpace(cmd.to) != "" {
		if to, err = date(cmd.to, "--to"); err != nil {
			return err
		}
	}

	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return fmt.Errorf("--to %v is before --from %v", to, from)
	}

	s, err := cmd.open(ctx, options)
	if err != nil {
		return err
	}

	if err := s.load(ctx); err != nil {
		return err
	}

	records := between(s.store.Records(), from, to)

	tmp, err := os.CreateTemp(os.TempDir(), "workouts")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := workout.WriteTSV(tmp, s.store.Header(), records); err != nil {
		return fmt.Errorf("error creating TSV file (%v)", err)
	}

	tmp.Close()

	dir := filepath.Dir(cmd.file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), cmd.file); err != nil {
		return err
	}

	infof("Retrieved %v workout records to file %s", len(records), cmd.file)

	return nil
}
