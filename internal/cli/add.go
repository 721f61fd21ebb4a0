package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/planner/internal/form"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	fieldFlags
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an event",
		Long: `Create an event and save it.

Date defaults to today, time to the current minute and category to
personal. The date may not be in the past nor more than two years ahead.

Example:
  planner add --title Lunch --time 12:30 --location Cafe
  planner add --title Offsite --date 2025-09-01 --time 09:00 --location HQ --category work`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd)
		},
	}

	opts.fieldFlags.register(cmd)

	return cmd
}

func runAdd(opts *AddOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	s, err := openSession(ctx, opts.RootOptions, cmd, formatter)
	if err != nil {
		return err
	}
	defer s.close()

	draft, err := opts.fieldFlags.apply(cmd, form.NewCreate(s.clock))
	if err != nil {
		var verrs form.ValidationErrors
		if errors.As(err, &verrs) {
			return outputValidationErrors(formatter, verrs)
		}
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "invalid event", err)
	}

	added, err := s.list.Add(ctx, draft)
	if err != nil {
		return writeFailed(formatter, fmt.Sprintf("event %s was added", added.ID), err)
	}
	formatter.VerboseLog("Added event %s", added.ID)

	if formatter.JSON() {
		return formatter.Success(added)
	}
	fmt.Fprintf(formatter.Writer, "✓ Added event %s\n\n", added.ID)
	writeCard(formatter.Writer, added, s.now().Location())
	return nil
}
