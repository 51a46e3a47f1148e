package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
)

var VideosCmd = Videos{}

// Videos lists the exercise demonstration videos, optionally filtered by a fuzzy search.
type Videos struct {
	command
	search string
}

func (cmd *Videos) Name() string {
	return "videos"
}

func (cmd *Videos) Description() string {
	return "Lists the exercise demonstration videos"
}

func (cmd *Videos) Usage() string {
	return "[--search <text>]"
}

func (cmd *Videos) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] videos [options] [--search <text>]\n", APP)
	fmt.Println()
	fmt.Println("  Lists the exercises with a demonstration video, best matches first when searching")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %v videos --search squat\n", APP)
	fmt.Println()
}

func (cmd *Videos) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("videos")

	flagset.StringVar(&cmd.search, "search", cmd.search, "Fuzzy search for an exercise name")

	return flagset
}

func (cmd *Videos) Execute(ctx context.Context, options *Options) error {
	s, err := cmd.open(ctx, options)
	if err != nil {
		return err
	}

	if err := s.load(ctx); err != nil {
		return err
	}

	exercises := s.store.SearchVideos(cmd.search)
	if len(exercises) == 0 {
		infof("No matching exercise videos")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	for _, exercise := range exercises {
		link, _ := s.store.VideoFor(exercise)
		fmt.Fprintf(w, "%v\t%v\n", exercise, link)
	}

	return w.Flush()
}
