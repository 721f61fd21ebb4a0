package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/roach88/planner/internal/event"
)

// CardLayout is the date format used on event cards.
const CardLayout = "2 January 2006, 15:04"

// writeCard renders one event as a text card.
func writeCard(w io.Writer, e event.Event, loc *time.Location) {
	fmt.Fprintf(w, "%s [%s]\n", e.Title, e.Category)
	fmt.Fprintf(w, "  %s\n", e.Instant(loc).Format(CardLayout))
	fmt.Fprintf(w, "  %s\n", e.Location)
	if e.Description != "" {
		fmt.Fprintf(w, "  %s\n", e.Description)
	}
	fmt.Fprintf(w, "  id: %s\n", e.ID)
}

// writeCards renders events separated by blank lines.
func writeCards(w io.Writer, events []event.Event, loc *time.Location) {
	for i, e := range events {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeCard(w, e, loc)
	}
}
