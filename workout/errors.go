package workout

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/googleapi"
)

var (
	ErrRemoteUnavailable = errors.New("Google Sheets API unavailable")
	ErrSchemaInvalid     = errors.New("invalid spreadsheet")
	ErrAuthExpired       = errors.New("login expired")
	ErrNoData            = errors.New("no data found in sheet")
	ErrWriteFailed       = errors.New("failed to save note")
	ErrFetchFailed       = errors.New("error fetching workout data")
	ErrSaveInProgress    = errors.New("note save already in progress")
)

const LOGIN_EXPIRED = "Login expired. Login again"

// SchemaError lists every structural violation found in a spreadsheet, in the order they were found.
type SchemaError struct {
	Errors []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%v (%v)", ErrSchemaInvalid, strings.Join(e.Errors, "; "))
}

func (e *SchemaError) Is(err error) bool {
	return err == ErrSchemaInvalid
}

// StatusError is implemented by transport errors that carry an API status, e.g. UNAUTHENTICATED.
type StatusError interface {
	Status() string
}

// AuthExpired returns true if the error has the 'authentication expired' signature: an error wrapping
// ErrAuthExpired, an UNAUTHENTICATED status or an 'invalid credentials' message.
func AuthExpired(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrAuthExpired) {
		return true
	}

	var status StatusError
	if errors.As(err, &status) && status.Status() == "UNAUTHENTICATED" {
		return true
	}

	msg := err.Error()

	return strings.Contains(msg, "Invalid Credentials") || strings.Contains(msg, "invalid authentication")
}

// Message formats an error as the single human readable message shown to a user. Schema errors are
// rendered as a list and an expired login is reported as such rather than as a transport error.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var schema *SchemaError
	if errors.As(err, &schema) {
		if len(schema.Errors) == 1 && schema.Errors[0] == LOGIN_EXPIRED {
			return LOGIN_EXPIRED
		}

		var b strings.Builder

		b.WriteString("Spreadsheet validation failed:\n")
		for _, e := range schema.Errors {
			fmt.Fprintf(&b, "\n  - %v", e)
		}

		return b.String()
	}

	switch {
	case AuthExpired(err):
		return LOGIN_EXPIRED

	case errors.Is(err, ErrNoData):
		return "No data found in sheet."

	case errors.Is(err, ErrRemoteUnavailable):
		return "The Google Sheets API is not available. Please check your network settings"

	case errors.Is(err, ErrWriteFailed):
		return "Failed to save note. Your changes have been kept, please try again"

	case errors.Is(err, ErrSaveInProgress):
		return "Note is already being saved"

	case errors.Is(err, ErrFetchFailed):
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return fmt.Sprintf("Error fetching workout data: %v", apiErr.Message)
		}

		return "Error fetching workout data"

	default:
		return fmt.Sprintf("%v", err)
	}
}
