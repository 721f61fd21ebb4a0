// Package view derives the displayed event sequence from the collection.
//
// Filter is pure: it never mutates its input and depends on "today" only
// through its argument.
package view

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/roach88/planner/internal/clock"
	"github.com/roach88/planner/internal/event"
)

var (
	ErrInvalidTimeFilter     = errors.New("invalid time filter")
	ErrInvalidCategoryFilter = errors.New("invalid category filter")
)

// TimeFilter selects events relative to today.
type TimeFilter string

const (
	All      TimeFilter = "all"
	Upcoming TimeFilter = "upcoming"
	Past     TimeFilter = "past"
)

// ParseTimeFilter maps "all", "upcoming" or "past" to a TimeFilter.
func ParseTimeFilter(s string) (TimeFilter, error) {
	switch f := TimeFilter(s); f {
	case All, Upcoming, Past:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (must be all, upcoming or past)", ErrInvalidTimeFilter, s)
	}
}

// CategoryFilter selects events by category. The zero value passes every
// category.
type CategoryFilter struct {
	category event.Category
}

// AnyCategory passes every event.
var AnyCategory = CategoryFilter{}

// OnlyCategory passes events whose category is exactly c.
func OnlyCategory(c event.Category) CategoryFilter {
	return CategoryFilter{category: c}
}

// ParseCategoryFilter maps "all" or a category token to a CategoryFilter.
func ParseCategoryFilter(s string) (CategoryFilter, error) {
	if s == "all" {
		return AnyCategory, nil
	}
	c, err := event.ParseCategory(s)
	if err != nil {
		return CategoryFilter{}, fmt.Errorf("%w: %v", ErrInvalidCategoryFilter, err)
	}
	return OnlyCategory(c), nil
}

func (f CategoryFilter) String() string {
	if !f.category.Valid() {
		return "all"
	}
	return f.category.String()
}

func (f CategoryFilter) match(e event.Event) bool {
	return !f.category.Valid() || e.Category == f.category
}

func (f TimeFilter) match(day, today time.Time) bool {
	switch f {
	case Upcoming:
		return !day.Before(today)
	case Past:
		return day.Before(today)
	default:
		return true
	}
}

// Filter returns the events passing both filters, earliest first.
//
// Event instants are taken in now's location. The time filter compares
// calendar days only: an event on today's date is upcoming whatever its
// time. Sorting uses the full date and time; equal instants keep their
// input order.
func Filter(events []event.Event, when TimeFilter, category CategoryFilter, now time.Time) []event.Event {
	loc := now.Location()
	today := clock.StartOfDay(now)

	type keyed struct {
		event   event.Event
		instant time.Time
	}
	matched := make([]keyed, 0, len(events))
	for _, e := range events {
		instant := e.Instant(loc)
		if !when.match(clock.StartOfDay(instant), today) || !category.match(e) {
			continue
		}
		matched = append(matched, keyed{event: e, instant: instant})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].instant.Before(matched[j].instant)
	})

	out := make([]event.Event, len(matched))
	for i, k := range matched {
		out[i] = k.event
	}
	return out
}
