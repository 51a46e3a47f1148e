package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/fopina/xsibas-workouts/notes"
	"github.com/fopina/xsibas-workouts/workout"
)

var PutCmd = Put{}

// Put updates the exercise notes in the workout log from a TSV file, typically one retrieved with 'get'
// and edited offline. Only the Notes column is written.
type Put struct {
	command
	file   string
	dryrun bool
}

func (cmd *Put) Name() string {
	return "put"
}

func (cmd *Put) Description() string {
	return "Updates the exercise notes in the workout log from a TSV file"
}

func (cmd *Put) Usage() string {
	return "--file <file>"
}

func (cmd *Put) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] put [options] --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Updates the exercise notes in the workout log from a TSV file. Records are matched on")
	fmt.Println("  date, section and exercise (in file order for repeated exercises) and only notes that")
	fmt.Println("  differ are written")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %v --debug put --file \"march.tsv\"\n", APP)
	fmt.Println()
}

func (cmd *Put) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("put")

	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file with Date, Section, Exercise and Notes columns")
	flagset.BoolVar(&cmd.dryrun, "dry-run", cmd.dryrun, "Reports the notes that would be updated without writing them")

	return flagset
}

func (cmd *Put) Execute(ctx context.Context, options *Options) error {
	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	f, err := os.Open(cmd.file)
	if err != nil {
		return err
	}

	defer f.Close()

	header, records, err := workout.ReadTSV(f)
	if err != nil {
		return fmt.Errorf("invalid TSV file (%v)", err)
	}

	for _, column := range []string{workout.DATE, workout.EXERCISE, workout.NOTES} {
		if !slices.Contains(header, column) {
			return fmt.Errorf("invalid TSV file (missing '%v' column)", column)
		}
	}

	s, err := cmd.open(ctx, options)
	if err != nil {
		return err
	}

	if err := s.load(ctx); err != nil {
		return err
	}

	updates := changes(s.store.Records(), records)
	for _, u := range updates {
		if cmd.dryrun {
			fmt.Printf("  %v  %q -> %q\n", u.key, u.from, u.to)
			continue
		}

		if err := s.editor.Save(ctx, u.key, u.index, u.to); err != nil {
			return fmt.Errorf("%v: %w", u.key, err)
		}

		if cmd.debug {
			debugf("updated %v", u.key)
		}
	}

	if cmd.dryrun {
		infof("%v notes would be updated from %v", len(updates), cmd.file)
	} else {
		infof("Updated %v notes from %v", len(updates), cmd.file)
	}

	return nil
}

type update struct {
	key   notes.Key
	index int
	from  string
	to    string
}

// changes matches the records from a TSV file against the workout log and returns the notes that differ.
// Records with no match in the log are skipped with a warning.
func changes(log []workout.Record, records []workout.Record) []update {
	list := []update{}
	ix := index(log)

	for i, k := range notes.KeysOf(records) {
		j, ok := ix[k]
		if !ok {
			warnf("no matching workout record for %v", k)
			continue
		}

		from := log[j].Notes()
		to := records[i].Notes()
		if from != to {
			list = append(list, update{
				key:   k,
				index: j,
				from:  from,
				to:    to,
			})
		}
	}

	return list
}
