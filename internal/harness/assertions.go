package harness

import (
	"fmt"
	"slices"
	"time"

	"github.com/roach88/planner/internal/event"
	"github.com/roach88/planner/internal/form"
	"github.com/roach88/planner/internal/view"
)

// EvaluateAssertions checks every assertion against the result and returns
// one message per failure. now is the scenario's pinned instant.
func EvaluateAssertions(result *Result, assertions []Assertion, now time.Time) []string {
	var errs []string
	for i, a := range assertions {
		if msg := evaluateAssertion(result, a, now); msg != "" {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %s", i, msg))
		}
	}
	return errs
}

func evaluateAssertion(result *Result, a Assertion, now time.Time) string {
	switch a.Type {
	case AssertView:
		return assertView(result.Events, a, now)
	case AssertEvent:
		return assertEvent(result.Events, a)
	case AssertCount:
		if len(result.Events) != a.Count {
			return fmt.Sprintf("expected %d event(s), got %d", a.Count, len(result.Events))
		}
	case AssertWrites:
		if result.Writes != a.Count {
			return fmt.Sprintf("expected %d write(s), got %d", a.Count, result.Writes)
		}
	default:
		return fmt.Sprintf("unknown assertion type %q", a.Type)
	}
	return ""
}

// assertView compares the ordered ids of a filtered view.
func assertView(events []event.Event, a Assertion, now time.Time) string {
	when, err := view.ParseTimeFilter(orAll(a.When))
	if err != nil {
		return err.Error()
	}
	category, err := view.ParseCategoryFilter(orAll(a.Category))
	if err != nil {
		return err.Error()
	}

	got := eventIDs(view.Filter(events, when, category, now))
	want := a.IDs
	if want == nil {
		want = []string{}
	}
	if !slices.Equal(got, want) {
		return fmt.Sprintf("view when=%s category=%s: expected %v, got %v", when, category, want, got)
	}
	return ""
}

// assertEvent compares a subset of one event's fields.
func assertEvent(events []event.Event, a Assertion) string {
	idx := slices.IndexFunc(events, func(e event.Event) bool { return e.ID == a.ID })
	if idx < 0 {
		return fmt.Sprintf("event %s not found", a.ID)
	}
	e := events[idx]

	// Sorted for stable failure messages.
	names := make([]string, 0, len(a.Expect))
	for name := range a.Expect {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if got := fieldText(e, name); got != a.Expect[name] {
			return fmt.Sprintf("event %s: expected %s %q, got %q", a.ID, name, a.Expect[name], got)
		}
	}
	return ""
}

// fieldText returns the text form of a named event field.
func fieldText(e event.Event, name string) string {
	switch name {
	case "id":
		return e.ID
	case form.FieldTitle:
		return e.Title
	case form.FieldDate:
		return e.Date.String()
	case form.FieldTime:
		return e.Time.String()
	case form.FieldLocation:
		return e.Location
	case form.FieldDescription:
		return e.Description
	case form.FieldCategory:
		return e.Category.String()
	default:
		return ""
	}
}

func eventIDs(events []event.Event) []string {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return ids
}
