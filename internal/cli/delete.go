package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DeleteResult is the JSON payload of the delete command.
type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an event",
		Long: `Remove an event permanently.

Deleting an id that does not exist changes nothing and is not an error.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runDelete(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := commandContext(cmd)

	s, err := openSession(ctx, opts, cmd, formatter)
	if err != nil {
		return err
	}
	defer s.close()

	found, err := s.list.Delete(ctx, id)
	if err != nil {
		return writeFailed(formatter, fmt.Sprintf("event %s was deleted", id), err)
	}

	if formatter.JSON() {
		return formatter.Success(DeleteResult{ID: id, Deleted: found})
	}
	if !found {
		fmt.Fprintf(formatter.Writer, "No event with id %s\n", id)
		return nil
	}
	fmt.Fprintf(formatter.Writer, "✓ Deleted event %s\n", id)
	return nil
}
