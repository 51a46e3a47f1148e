package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/fopina/xsibas-workouts/notes"
)

var NoteCmd = Note{}

// Note saves the note for a single exercise in the workout log.
type Note struct {
	command
	date     string
	section  string
	exercise string
	position int
	text     string
}

func (cmd *Note) Name() string {
	return "note"
}

func (cmd *Note) Description() string {
	return "Saves the note for an exercise in the workout log"
}

func (cmd *Note) Usage() string {
	return "--date <yyyy-mm-dd> --section <section> --exercise <exercise> --text <note>"
}

func (cmd *Note) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] note [options] --date <yyyy-mm-dd> --section <section> --exercise <exercise> --text <note>\n", APP)
	fmt.Println()
	fmt.Println("  Writes the note to the Notes column of the exercise's row, adding the Notes column to")
	fmt.Println("  the workout log if it does not have one. Use --position to select between repeats of")
	fmt.Println("  the same exercise in a section (0 is the first)")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %v note --date 2024-03-10 --section Warmup --exercise Squat --text \"felt good\"\n", APP)
	fmt.Println()
}

func (cmd *Note) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("note")

	flagset.StringVar(&cmd.date, "date", cmd.date, "Date of the workout (YYYY-MM-DD). Defaults to today")
	flagset.StringVar(&cmd.section, "section", cmd.section, "Workout section e.g. 'Warmup'")
	flagset.StringVar(&cmd.exercise, "exercise", cmd.exercise, "Exercise name")
	flagset.IntVar(&cmd.position, "position", cmd.position, "Position of the exercise among repeats in the same section")
	flagset.StringVar(&cmd.text, "text", cmd.text, "Note text. An empty note clears the existing note")

	return flagset
}

func (cmd *Note) Execute(ctx context.Context, options *Options) error {
	d, err := date(cmd.date, "--date")
	if err != nil {
		return err
	}

	if strings.TrimSpace(cmd.exercise) == "" {
		return fmt.Errorf("--exercise is a required option")
	}

	if cmd.position < 0 {
		return fmt.Errorf("invalid --position %v", cmd.position)
	}

	s, err := cmd.open(ctx, options)
	if err != nil {
		return err
	}

	if err := s.load(ctx); err != nil {
		return err
	}

	key := notes.Key{
		Date:     d.String(),
		Section:  cmd.section,
		Exercise: cmd.exercise,
		Position: cmd.position,
	}

	ix, ok := lookup(index(s.store.Records()), key)
	if !ok {
		return fmt.Errorf("no workout record for %v", key)
	}

	if err := s.editor.Save(ctx, key, ix, cmd.text); err != nil {
		return err
	}

	infof("Saved note for %v", key)

	return nil
}

// lookup finds the record index for a key, falling back to a case and whitespace insensitive match on
// the section and exercise.
func lookup(ix map[notes.Key]int, key notes.Key) (int, bool) {
	if i, ok := ix[key]; ok {
		return i, true
	}

	for k, i := range ix {
		if k.Date == key.Date && k.Position == key.Position &&
			normalise(k.Section) == normalise(key.Section) &&
			normalise(k.Exercise) == normalise(key.Exercise) {
			return i, true
		}
	}

	return 0, false
}
