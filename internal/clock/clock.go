// Package clock supplies "now" and "today" to the planner.
//
// Every component that compares against the current day takes a Clock so
// tests can pin the date.
package clock

import (
	"time"

	"github.com/roach88/planner/internal/event"
)

// Clock reports the current instant.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in Location (time.Local when nil).
type System struct {
	Location *time.Location
}

// Now returns the current wall-clock time in the configured location.
func (s System) Now() time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc)
}

// Today returns the calendar date of c.Now().
func Today(c Clock) event.Date {
	return event.DateOf(c.Now())
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
