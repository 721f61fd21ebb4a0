package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/planner/internal/event"
	"github.com/roach88/planner/internal/form"
)

// fieldFlags are the event fields settable from the command line.
type fieldFlags struct {
	Title       string
	Date        string
	Time        string
	Location    string
	Description string
	Category    string
}

func (ff *fieldFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ff.Title, form.FieldTitle, "", "event title (at most 100 characters)")
	cmd.Flags().StringVar(&ff.Date, form.FieldDate, "", "event date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ff.Time, form.FieldTime, "", "event time (HH:MM, 24h)")
	cmd.Flags().StringVar(&ff.Location, form.FieldLocation, "", "event location")
	cmd.Flags().StringVar(&ff.Description, form.FieldDescription, "", "optional description")
	cmd.Flags().StringVar(&ff.Category, form.FieldCategory, "", "work, personal or entertainment")
}

// apply fills f with the flags the user actually set and submits it.
// Unset flags keep the form's initial values.
func (ff *fieldFlags) apply(cmd *cobra.Command, f *form.Form) (event.Draft, error) {
	values := make(map[string]string)
	for name, value := range map[string]string{
		form.FieldTitle:       ff.Title,
		form.FieldDate:        ff.Date,
		form.FieldTime:        ff.Time,
		form.FieldLocation:    ff.Location,
		form.FieldDescription: ff.Description,
		form.FieldCategory:    ff.Category,
	} {
		if cmd.Flags().Changed(name) {
			values[name] = value
		}
	}
	return f.Fill(values)
}

// outputValidationErrors reports rejected fields.
func outputValidationErrors(formatter *OutputFormatter, errs form.ValidationErrors) error {
	if formatter.JSON() {
		_ = formatter.Error(ErrCodeValidation, "invalid event", errs)
	} else {
		fmt.Fprintln(formatter.Writer, "✗ Invalid event")
		for _, e := range errs {
			fmt.Fprintf(formatter.Writer, "  %s: %s\n", e.Field, e.Message)
		}
	}
	return WrapExitError(ExitCommandError, ErrCodeValidation+": invalid event", errs)
}
