package harness

import "github.com/roach88/planner/internal/event"

// Step actions.
const (
	ActionAdd    = "add"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// Step outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
)

// TraceEntry records what one flow step did.
type TraceEntry struct {
	Step     int      `json:"step"`
	Action   string   `json:"action"`
	ID       string   `json:"id,omitempty"`
	Outcome  string   `json:"outcome"`
	Rejected []string `json:"rejected,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass indicates overall success: every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace contains one entry per flow step, in order.
	Trace []TraceEntry `json:"trace"`

	// Errors contains expectation and assertion failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Events is the final collection in stored order.
	Events []event.Event `json:"events"`

	// Writes counts durable writes made by the flow (seeding excluded).
	Writes int `json:"writes"`

	// Stored is the canonical stored form of Events.
	Stored []byte `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEntry{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
