package commands

import (
	"context"
	"flag"
	"fmt"
)

// Help is the 'help' command. It lists the available commands, or the detailed help for a single command.
type Help struct {
	cli  []Command
	args []string
}

func NewHelp(cli []Command) *Help {
	return &Help{
		cli: cli,
	}
}

func (h *Help) Name() string {
	return "help"
}

func (h *Help) Description() string {
	return "Displays the help information for a command"
}

func (h *Help) Usage() string {
	return "<command>"
}

func (h *Help) FlagSet() *flag.FlagSet {
	return flag.NewFlagSet("help", flag.ExitOnError)
}

func (h *Help) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s help <command>\n", APP)
	fmt.Println()
	fmt.Println("  Displays the usage information for a command")
	fmt.Println()
}

func (h *Help) Execute(ctx context.Context, options *Options) error {
	args := h.args

	if len(args) > 0 {
		for _, c := range h.cli {
			if c.Name() == args[0] {
				c.Help()
				return nil
			}
		}

		if args[0] == h.Name() {
			h.Help()
			return nil
		}

		return fmt.Errorf("invalid command: %v", args[0])
	}

	h.usage()

	return nil
}

func (h *Help) usage() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] <command> [options]\n", APP)
	fmt.Println()
	fmt.Println("  Commands:")
	fmt.Println()

	fmt.Printf("    %-10s %s\n", h.Name(), h.Description())
	for _, c := range h.cli {
		fmt.Printf("    %-10s %s\n", c.Name(), c.Description())
	}

	fmt.Println()
	fmt.Println("  Options:")
	fmt.Println()
	flag.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})
	fmt.Println()
}

// Parse returns the command named by the first non-flag argument, with its options parsed from the
// remaining arguments. Returns nil if no command is given.
func Parse(cli []Command, help *Help, args []string) (Command, error) {
	if len(args) == 0 {
		return nil, nil
	}

	name := args[0]
	if name == help.Name() {
		help.args = args[1:]
		return help, nil
	}

	for _, c := range cli {
		if c.Name() == name {
			flagset := c.FlagSet()
			if flagset == nil {
				return nil, fmt.Errorf("'%s' command implementation without a flagset: %#v", c.Name(), c)
			}

			if err := flagset.Parse(args[1:]); err != nil {
				return nil, err
			}

			if flagset.NArg() > 0 {
				return nil, fmt.Errorf("unexpected arguments for '%v': %v", name, flagset.Args())
			}

			return c, nil
		}
	}

	return nil, fmt.Errorf("invalid command: %v", name)
}
