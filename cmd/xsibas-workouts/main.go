package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/fopina/xsibas-workouts/commands"
	"github.com/fopina/xsibas-workouts/workout"
)

var cli = []commands.Command{
	&commands.VersionCmd,
	&commands.AuthoriseCmd,
	&commands.ValidateCmd,
	&commands.WeekCmd,
	&commands.MonthCmd,
	&commands.DayCmd,
	&commands.GetCmd,
	&commands.PutCmd,
	&commands.NoteCmd,
	&commands.VideosCmd,
	&commands.SheetsCmd,
	&commands.BrowseCmd,
}

var options = commands.Options{
	Debug: false,
}

var help = commands.NewHelp(cli)

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.StringVar(&options.Config, "config", options.Config, "Config file. Defaults to xsibas-workouts.yaml in the working directory")
	flag.Parse()

	cmd, err := commands.Parse(cli, help, flag.Args())
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if cmd == nil {
		help.Execute(ctx, &options)
		os.Exit(1)
	}

	if err = cmd.Execute(ctx, &options); err != nil {
		if options.Debug {
			log.Printf("%-5s %v", "DEBUG", err)
		}

		cancel()
		log.Fatalf("ERROR: %v", workout.Message(err))
	}
}
