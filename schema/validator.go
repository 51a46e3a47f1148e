package schema

import (
	"context"
	"fmt"
	"slices"

	"github.com/fopina/xsibas-workouts/workout"
)

// Source is the read-only view of a spreadsheet needed to check it against a contract.
type Source interface {
	Tabs(ctx context.Context, sheetID string) ([]string, error)
	Header(ctx context.Context, sheetID string, tab string) ([]string, error)
}

type Result struct {
	Valid  bool
	Errors []string
}

// Err returns nil for a valid spreadsheet, an error wrapping workout.ErrAuthExpired if validation failed
// because the login expired and a *workout.SchemaError otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}

	if len(r.Errors) == 1 && r.Errors[0] == workout.LOGIN_EXPIRED {
		return fmt.Errorf("%w", workout.ErrAuthExpired)
	}

	return &workout.SchemaError{
		Errors: append([]string{}, r.Errors...),
	}
}

type Validator struct {
	contract Contract
}

func NewValidator(contract Contract) *Validator {
	return &Validator{
		contract: contract,
	}
}

// Validate checks that the spreadsheet has every tab in the contract and that every tab has the required
// column headers. A missing tab is reported once and its headers are never read. Transport failures are
// reported as a single error and never returned.
func (v *Validator) Validate(ctx context.Context, src Source, sheetID string) Result {
	errors := []string{}

	tabs, err := src.Tabs(ctx, sheetID)
	if err != nil {
		return invalid(failed(err))
	}

	present := []string{}
	for _, tab := range v.contract.Tabs() {
		if !slices.Contains(tabs, tab) {
			errors = append(errors, fmt.Sprintf("Missing required sheet: %q", tab))
		} else {
			present = append(present, tab)
		}
	}

	// ... headers are only read from tabs that exist
	for _, tab := range present {
		header, err := src.Header(ctx, sheetID, tab)
		if err != nil {
			if workout.AuthExpired(err) {
				return invalid(workout.LOGIN_EXPIRED)
			}

			errors = append(errors, fmt.Sprintf("Failed to read headers from sheet %q: %v", tab, err))
			continue
		}

		for _, h := range v.contract.Headers(tab) {
			if !slices.Contains(header, h) {
				errors = append(errors, fmt.Sprintf("Sheet %q is missing required column: %q", tab, h))
			}
		}

		if len(header) == 0 {
			errors = append(errors, fmt.Sprintf("Sheet %q appears to be empty (no headers found)", tab))
		}
	}

	return Result{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

func failed(err error) string {
	if workout.AuthExpired(err) {
		return workout.LOGIN_EXPIRED
	}

	return fmt.Sprintf("Failed to validate spreadsheet: %v", err)
}

func invalid(errors ...string) Result {
	return Result{
		Valid:  false,
		Errors: errors,
	}
}
