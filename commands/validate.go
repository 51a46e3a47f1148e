package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/fopina/xsibas-workouts/schema"
)

var ValidateCmd = Validate{}

// Validate checks that the spreadsheet has the tabs and header columns of a workout log.
type Validate struct {
	command
}

func (cmd *Validate) Name() string {
	return "validate"
}

func (cmd *Validate) Description() string {
	return "Checks that a Google Sheets spreadsheet is a valid workout log"
}

func (cmd *Validate) Usage() string {
	return "--url <url>"
}

func (cmd *Validate) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] validate [options] --url <URL>\n", APP)
	fmt.Println()
	fmt.Println("  Checks that the spreadsheet has the required tabs and columns:")
	fmt.Println()

	contract := schema.DefaultContract()
	for _, tab := range contract.Tabs() {
		fmt.Printf("    %-12s %v\n", tab, contract.Headers(tab))
	}

	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %v validate --url \"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms\"\n", APP)
	fmt.Println()
}

func (cmd *Validate) FlagSet() *flag.FlagSet {
	return cmd.flagset("validate")
}

func (cmd *Validate) Execute(ctx context.Context, options *Options) error {
	s, err := cmd.open(ctx, options)
	if err != nil {
		return err
	}

	if err := s.connect(ctx); err != nil {
		return err
	}

	result := schema.NewValidator(schema.DefaultContract()).Validate(ctx, s.client, s.sheetID)
	if !result.Valid {
		return result.Err()
	}

	infof("Spreadsheet %v is a valid workout log", s.sheetID)

	return nil
}
