// Package form captures and validates the fields of a single event.
//
// A Form runs in one of two modes. Create starts from defaults derived from
// the clock; Edit starts from an existing record. Submit emits an
// event.Draft without an identifier: assigning or preserving the id is the
// caller's job, and the form never touches the collection.
package form

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/planner/internal/clock"
	"github.com/roach88/planner/internal/event"
)

// Mode is Create or Edit.
type Mode int

const (
	Create Mode = iota
	Edit
)

func (m Mode) String() string {
	if m == Edit {
		return "edit"
	}
	return "create"
}

// MaxYearsAhead bounds how far in the future an event date may be.
const MaxYearsAhead = 2

// Fields holds the raw input values. Date and Time are kept as entered
// (YYYY-MM-DD and HH:MM) until Submit parses them.
type Fields struct {
	Title       string
	Date        string
	Time        string
	Location    string
	Description string
	Category    event.Category
}

// Form is the create/edit state machine.
type Form struct {
	mode   Mode
	clock  clock.Clock
	bound  string // id of the record being edited
	source event.Event
	fields Fields
}

// NewCreate returns a form in create mode: empty text fields, today's date,
// the current time and the personal category.
func NewCreate(c clock.Clock) *Form {
	f := &Form{mode: Create, clock: c}
	f.reset()
	return f
}

// NewEdit returns a form in edit mode populated from rec.
func NewEdit(c clock.Clock, rec event.Event) *Form {
	f := &Form{mode: Edit, clock: c}
	f.Bind(rec)
	return f
}

// Mode returns the form's mode.
func (f *Form) Mode() Mode {
	return f.mode
}

// EditingID returns the id of the bound record in edit mode, "" otherwise.
func (f *Form) EditingID() string {
	return f.bound
}

// Fields returns the current input values.
func (f *Form) Fields() Fields {
	return f.fields
}

// Bind populates an edit form from rec. The fields are only replaced when
// rec is a different record from the one already bound, so in-progress
// edits survive re-binding the same record.
func (f *Form) Bind(rec event.Event) {
	if f.mode != Edit {
		return
	}
	if f.bound != "" && f.bound == rec.ID {
		return
	}
	f.bound = rec.ID
	f.source = rec
	f.reset()
}

func (f *Form) SetTitle(v string)       { f.fields.Title = v }
func (f *Form) SetDate(v string)        { f.fields.Date = v }
func (f *Form) SetTime(v string)        { f.fields.Time = v }
func (f *Form) SetLocation(v string)    { f.fields.Location = v }
func (f *Form) SetDescription(v string) { f.fields.Description = v }

// SetCategory selects one of the enumerated categories.
func (f *Form) SetCategory(c event.Category) {
	f.fields.Category = c
}

// Set assigns the named field from its text form. A category that is not
// one of the enumerated tokens is rejected with a ValidationError and leaves
// the field unchanged.
func (f *Form) Set(field, value string) error {
	switch field {
	case FieldTitle:
		f.SetTitle(value)
	case FieldDate:
		f.SetDate(value)
	case FieldTime:
		f.SetTime(value)
	case FieldLocation:
		f.SetLocation(value)
	case FieldDescription:
		f.SetDescription(value)
	case FieldCategory:
		c, err := event.ParseCategory(value)
		if err != nil {
			return ValidationError{Field: FieldCategory, Message: categoryMessage}
		}
		f.SetCategory(c)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// Fill sets every field in values, then submits. Rejected category tokens
// are reported together with the submission's own errors.
func (f *Form) Fill(values map[string]string) (event.Draft, error) {
	for field := range values {
		if !slices.Contains(fieldOrder, field) {
			return event.Draft{}, fmt.Errorf("unknown field %q", field)
		}
	}

	var errs ValidationErrors
	for _, field := range fieldOrder {
		value, ok := values[field]
		if !ok {
			continue
		}
		if err := f.Set(field, value); err != nil {
			var verr ValidationError
			if !errors.As(err, &verr) {
				return event.Draft{}, err
			}
			errs = append(errs, verr)
		}
	}

	d, err := f.Submit()
	if err != nil {
		var submitErrs ValidationErrors
		if !errors.As(err, &submitErrs) {
			return event.Draft{}, err
		}
		errs = append(errs, submitErrs...)
	}
	if len(errs) > 0 {
		return event.Draft{}, errs
	}
	return d, nil
}

// Dirty reports whether any field differs from the mode's initial state.
func (f *Form) Dirty() bool {
	return f.fields != f.initial()
}

// Cancel discards in-progress edits. Nothing is emitted.
func (f *Form) Cancel() {
	f.reset()
}

// Submit validates the fields and returns the draft they describe, with its
// text in NFC.
// On failure the error is a ValidationErrors listing every failing field.
func (f *Form) Submit() (event.Draft, error) {
	today := clock.Today(f.clock)
	var errs ValidationErrors

	title := f.fields.Title
	switch {
	case strings.TrimSpace(title) == "":
		errs = append(errs, ValidationError{Field: FieldTitle, Message: "title is required"})
	case len([]rune(norm.NFC.String(title))) > event.MaxTitleLength:
		errs = append(errs, ValidationError{Field: FieldTitle, Message: "title must be at most 100 characters"})
	}

	var date event.Date
	if strings.TrimSpace(f.fields.Date) == "" {
		errs = append(errs, ValidationError{Field: FieldDate, Message: "date is required"})
	} else if d, err := event.ParseDate(f.fields.Date); err != nil {
		errs = append(errs, ValidationError{Field: FieldDate, Message: "date must be YYYY-MM-DD"})
	} else {
		date = d
		latest := today.AddYears(MaxYearsAhead)
		switch {
		case f.mode == Create && date.Before(today):
			errs = append(errs, ValidationError{Field: FieldDate, Message: "date must not be before " + today.String()})
		case date.After(latest):
			errs = append(errs, ValidationError{Field: FieldDate, Message: "date must not be after " + latest.String()})
		}
	}

	var tod event.TimeOfDay
	if strings.TrimSpace(f.fields.Time) == "" {
		errs = append(errs, ValidationError{Field: FieldTime, Message: "time is required"})
	} else if t, err := event.ParseTimeOfDay(f.fields.Time); err != nil {
		errs = append(errs, ValidationError{Field: FieldTime, Message: "time must be HH:MM"})
	} else {
		tod = t
	}

	if strings.TrimSpace(f.fields.Location) == "" {
		errs = append(errs, ValidationError{Field: FieldLocation, Message: "location is required"})
	}

	if !f.fields.Category.Valid() {
		errs = append(errs, ValidationError{Field: FieldCategory, Message: categoryMessage})
	}

	if len(errs) > 0 {
		return event.Draft{}, errs
	}
	d := event.Draft{
		Title:       title,
		Date:        date,
		Time:        tod,
		Location:    f.fields.Location,
		Description: f.fields.Description,
		Category:    f.fields.Category,
	}
	return d.Normalize(), nil
}

func (f *Form) reset() {
	f.fields = f.initial()
}

func (f *Form) initial() Fields {
	if f.mode == Edit {
		return Fields{
			Title:       f.source.Title,
			Date:        f.source.Date.String(),
			Time:        f.source.Time.String(),
			Location:    f.source.Location,
			Description: f.source.Description,
			Category:    f.source.Category,
		}
	}
	now := f.clock.Now()
	return Fields{
		Date:     event.DateOf(now).String(),
		Time:     event.TimeOf(now).String(),
		Category: event.Personal,
	}
}
