package commands

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/api/option"

	"github.com/fopina/xsibas-workouts/calendar"
	"github.com/fopina/xsibas-workouts/config"
	"github.com/fopina/xsibas-workouts/google"
)

const APP = "xsibas-workouts"

type Options struct {
	Debug  bool
	Config string
}

// Command is the interface implemented by every CLI command.
type Command interface {
	Name() string
	Description() string
	Usage() string
	Help()
	FlagSet() *flag.FlagSet
	Execute(ctx context.Context, options *Options) error
}

// command holds the options common to every command that accesses the workout log.
type command struct {
	flags   config.Flags
	url     string
	debug   bool
	options []option.ClientOption
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.flags.Workdir, "workdir", c.flags.Workdir, "Directory for working files (tokens, history, etc)")
	flagset.StringVar(&c.flags.Credentials, "credentials", c.flags.Credentials, "Path for the 'credentials.json' file")
	flagset.StringVar(&c.flags.Tokens, "tokens", c.flags.Tokens, "Directory for the OAuth2 token files")
	flagset.StringVar(&c.url, "url", c.url, "Spreadsheet URL or ID. Defaults to the configured or most recently opened spreadsheet")
	flagset.StringVar(&c.flags.LookupRange, "lookup-range", c.flags.LookupRange, "Exercise video lookup range e.g. 'Exercises!A:D'")
	flagset.StringVar(&c.flags.LogRange, "log-range", c.flags.LogRange, "Workout log range e.g. 'WorkoutLog!A:Z'")
	flagset.DurationVar(&c.flags.ReadyTimeout, "ready-timeout", c.flags.ReadyTimeout, "Maximum wait for the Google API client to be ready")

	return flagset
}

// configure resolves the configuration for the command line options.
func (c *command) configure(options *Options) (*config.Config, error) {
	c.debug = options.Debug

	flags := c.flags
	flags.Config = options.Config

	if strings.TrimSpace(c.url) != "" {
		id, err := google.SheetID(c.url)
		if err != nil {
			return nil, err
		}

		flags.Sheet = id
	}

	defaults := config.Config{
		Workdir:     DEFAULT_WORKDIR,
		Credentials: DEFAULT_CREDENTIALS,
	}

	cfg, err := config.Load(defaults, flags)
	if err != nil {
		return nil, err
	}

	if c.debug {
		debugf("config %v", cfg.File)
		debugf("credentials %v  tokens:%v  history:%v", cfg.Credentials, cfg.TokenFile(), cfg.History)
		debugf("ranges %v  %v  ready-timeout:%v", cfg.LookupRange, cfg.LogRange, cfg.ReadyTimeout)
	}

	return cfg, nil
}

func (c *command) debugf() func(format string, args ...any) {
	if c.debug {
		return debugf
	}

	return nil
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flag.VisitAll(func(f *flag.Flag) {
		count++
	})

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	if count > 0 {
		fmt.Println()
		fmt.Println("  Options:")
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
		})
	}
}

// date parses a --date style option. An empty value is today.
func date(v string, option string) (calendar.Date, error) {
	if strings.TrimSpace(v) == "" || strings.EqualFold(strings.TrimSpace(v), "today") {
		return calendar.Today(), nil
	}

	d, err := calendar.Parse(v)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("invalid %v '%v' - expected YYYY-MM-DD", option, v)
	}

	return d, nil
}

func normalise(v string) string {
	return strings.ToLower(strings.ReplaceAll(v, " ", ""))
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Local().Format("2006-01-02 15:04")
}
