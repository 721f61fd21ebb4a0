package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <id>",
		Short:         "Show one event",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runShow(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	s, err := openSession(commandContext(cmd), opts, cmd, formatter)
	if err != nil {
		return err
	}
	defer s.close()

	e, ok := s.list.Get(id)
	if !ok {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("event not found: %s", id), nil)
	}

	if formatter.JSON() {
		return formatter.Success(e)
	}
	writeCard(formatter.Writer, e, s.now().Location())
	return nil
}
