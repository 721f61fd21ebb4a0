package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/planner/internal/event"
	"github.com/roach88/planner/internal/view"
)

// Empty-state messages of the list command.
const (
	MsgNoEvents = "No events yet. Create one with `planner add`."
	MsgNoMatch  = "No events match the selected filters."
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	When     string
	Category string
}

// ListResult is the JSON payload of the list command.
type ListResult struct {
	When     string        `json:"when"`
	Category string        `json:"category"`
	Total    int           `json:"total"`
	Events   []event.Event `json:"events"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		Long: `List events in chronological order.

--when selects upcoming events (today included), past events or all of
them. --category narrows to one category.

Example:
  planner list --when upcoming
  planner list --when past --category work`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.When, "when", string(view.All), "time filter (all|upcoming|past)")
	cmd.Flags().StringVar(&opts.Category, "category", "all", "category filter (all|work|personal|entertainment)")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	when, err := view.ParseTimeFilter(opts.When)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("invalid --when %q", opts.When), err)
	}
	category, err := view.ParseCategoryFilter(opts.Category)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, fmt.Sprintf("invalid --category %q", opts.Category), err)
	}

	s, err := openSession(commandContext(cmd), opts.RootOptions, cmd, formatter)
	if err != nil {
		return err
	}
	defer s.close()

	now := s.now()
	visible := view.Filter(s.list.Events(), when, category, now)
	formatter.VerboseLog("Showing %d of %d event(s)", len(visible), s.list.Len())

	if formatter.JSON() {
		return formatter.Success(ListResult{
			When:     string(when),
			Category: category.String(),
			Total:    s.list.Len(),
			Events:   visible,
		})
	}

	switch {
	case s.list.Len() == 0:
		fmt.Fprintln(formatter.Writer, MsgNoEvents)
	case len(visible) == 0:
		fmt.Fprintln(formatter.Writer, MsgNoMatch)
	default:
		writeCards(formatter.Writer, visible, now.Location())
	}
	return nil
}
