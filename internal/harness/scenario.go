package harness

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/planner/internal/event"
	"github.com/roach88/planner/internal/form"
	"github.com/roach88/planner/internal/view"
)

// NowLayout is the format of Scenario.Now.
const NowLayout = "2006-01-02 15:04"

// Scenario defines a planner scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Now pins the wall clock, in NowLayout.
	Now string `yaml:"now"`

	// Timezone is the IANA zone Now and all events are read in. Defaults to UTC.
	Timezone string `yaml:"timezone,omitempty"`

	// Seed events are stored before the flow without form validation, so
	// past or far-future events can be set up.
	Seed []SeedEvent `yaml:"seed,omitempty"`

	// Flow contains the steps under test.
	Flow []FlowStep `yaml:"flow"`

	// Assertions validate the final collection.
	Assertions []Assertion `yaml:"assertions"`
}

// SeedEvent is an event in its text form.
type SeedEvent struct {
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Time        string `yaml:"time"`
	Location    string `yaml:"location"`
	Description string `yaml:"description,omitempty"`
	Category    string `yaml:"category"`
}

// Draft parses the seed event into a draft.
func (s SeedEvent) Draft() (event.Draft, error) {
	d, err := event.ParseDate(s.Date)
	if err != nil {
		return event.Draft{}, err
	}
	t, err := event.ParseTimeOfDay(s.Time)
	if err != nil {
		return event.Draft{}, err
	}
	c, err := event.ParseCategory(s.Category)
	if err != nil {
		return event.Draft{}, err
	}
	draft := event.Draft{
		Title:       s.Title,
		Date:        d,
		Time:        t,
		Location:    s.Location,
		Description: s.Description,
		Category:    c,
	}
	if err := draft.Validate(); err != nil {
		return event.Draft{}, err
	}
	return draft, nil
}

// FlowStep is one user action.
type FlowStep struct {
	// Action is add, edit or delete.
	Action string `yaml:"action"`

	// ID is the target of edit and delete.
	ID string `yaml:"id,omitempty"`

	// Fields are form inputs by field name. For add, unset fields keep the
	// create defaults; for edit, the stored values.
	Fields map[string]string `yaml:"fields,omitempty"`

	// Expect specifies the expected outcome.
	// If nil, no validation is performed.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome of a step.
type ExpectClause struct {
	// Outcome is ok, invalid or not_found.
	Outcome string `yaml:"outcome"`

	// ID is the identifier an add is expected to assign.
	ID string `yaml:"id,omitempty"`

	// Rejected lists the fields an invalid submission rejects, in order.
	Rejected []string `yaml:"rejected,omitempty"`
}

// Assertion validates the final collection.
type Assertion struct {
	// Type is view, event, count or writes.
	Type string `yaml:"type"`

	// When and Category select the view (used by view). Both default to "all".
	When     string `yaml:"when,omitempty"`
	Category string `yaml:"category,omitempty"`

	// IDs is the expected ordered view (used by view).
	IDs []string `yaml:"ids,omitempty"`

	// ID selects the event (used by event).
	ID string `yaml:"id,omitempty"`

	// Expect maps field names to expected text values (used by event).
	// Subset match - only specified fields are validated.
	Expect map[string]string `yaml:"expect,omitempty"`

	// Count is the expected number (used by count and writes).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertView   = "view"
	AssertEvent  = "event"
	AssertCount  = "count"
	AssertWrites = "writes"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// Clock returns the pinned instant of the scenario.
func (s *Scenario) Clock() (time.Time, error) {
	loc := time.UTC
	if s.Timezone != "" {
		l, err := time.LoadLocation(s.Timezone)
		if err != nil {
			return time.Time{}, fmt.Errorf("timezone: %w", err)
		}
		loc = l
	}
	now, err := time.ParseInLocation(NowLayout, s.Now, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("now must be %q: %w", NowLayout, err)
	}
	return now, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if _, err := s.Clock(); err != nil {
		return err
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, se := range s.Seed {
		if _, err := se.Draft(); err != nil {
			return fmt.Errorf("seed[%d]: %w", i, err)
		}
	}

	for i, step := range s.Flow {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

var knownFields = []string{
	form.FieldTitle, form.FieldDate, form.FieldTime,
	form.FieldLocation, form.FieldDescription, form.FieldCategory,
}

// validateStep validates a single flow step.
func validateStep(index int, step *FlowStep) error {
	switch step.Action {
	case ActionAdd:
		if step.ID != "" {
			return fmt.Errorf("flow[%d]: add takes no id (use expect.id)", index)
		}
	case ActionEdit, ActionDelete:
		if step.ID == "" {
			return fmt.Errorf("flow[%d]: id is required for %s", index, step.Action)
		}
		if step.Action == ActionDelete && len(step.Fields) > 0 {
			return fmt.Errorf("flow[%d]: delete takes no fields", index)
		}
	case "":
		return fmt.Errorf("flow[%d]: action is required", index)
	default:
		return fmt.Errorf("flow[%d]: unknown action %q", index, step.Action)
	}

	for name := range step.Fields {
		if !slices.Contains(knownFields, name) {
			return fmt.Errorf("flow[%d]: unknown field %q", index, name)
		}
	}

	if step.Expect != nil {
		switch step.Expect.Outcome {
		case OutcomeOK, OutcomeInvalid, OutcomeNotFound:
		case "":
			return fmt.Errorf("flow[%d].expect: outcome is required", index)
		default:
			return fmt.Errorf("flow[%d].expect: unknown outcome %q", index, step.Expect.Outcome)
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertView:
		if _, err := view.ParseTimeFilter(orAll(a.When)); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
		if _, err := view.ParseCategoryFilter(orAll(a.Category)); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
	case AssertEvent:
		if a.ID == "" {
			return fmt.Errorf("assertions[%d]: id is required for event", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for event", index)
		}
		for name := range a.Expect {
			if name != "id" && !slices.Contains(knownFields, name) {
				return fmt.Errorf("assertions[%d]: unknown field %q", index, name)
			}
		}
	case AssertCount, AssertWrites:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}
