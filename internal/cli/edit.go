package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/planner/internal/form"
)

// EditOptions holds flags for the edit command.
type EditOptions struct {
	*RootOptions
	fieldFlags
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an existing event",
		Long: `Change fields of an existing event.

Only the flags given are changed; the rest keep their stored values. Past
dates are allowed when editing, dates more than two years ahead are not.
An edit that leaves every field as stored saves nothing.

Example:
  planner edit 0192f0c4-7d1e-7c4a-9d0e-2b6f1a3c5e7f --time 13:00 --location "Cafe Luna"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(opts, args[0], cmd)
		},
	}

	opts.fieldFlags.register(cmd)

	return cmd
}

func runEdit(opts *EditOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	s, err := openSession(ctx, opts.RootOptions, cmd, formatter)
	if err != nil {
		return err
	}
	defer s.close()

	rec, ok := s.list.Get(id)
	if !ok {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("event not found: %s", id), nil)
	}

	f := form.NewEdit(s.clock, rec)
	draft, err := opts.fieldFlags.apply(cmd, f)
	if err != nil {
		var verrs form.ValidationErrors
		if errors.As(err, &verrs) {
			return outputValidationErrors(formatter, verrs)
		}
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "invalid event", err)
	}

	if !f.Dirty() {
		formatter.VerboseLog("Event %s unchanged, nothing saved", f.EditingID())
		if formatter.JSON() {
			return formatter.Success(rec)
		}
		fmt.Fprintf(formatter.Writer, "Event %s unchanged\n\n", f.EditingID())
		writeCard(formatter.Writer, rec, s.now().Location())
		return nil
	}

	if _, err := s.list.Edit(ctx, f.EditingID(), draft); err != nil {
		return writeFailed(formatter, fmt.Sprintf("event %s was updated", id), err)
	}
	updated, _ := s.list.Get(id)
	formatter.VerboseLog("Updated event %s", id)

	if formatter.JSON() {
		return formatter.Success(updated)
	}
	fmt.Fprintf(formatter.Writer, "✓ Updated event %s\n\n", id)
	writeCard(formatter.Writer, updated, s.now().Location())
	return nil
}
