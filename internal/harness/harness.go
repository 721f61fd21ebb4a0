package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/planner/internal/codec"
	"github.com/roach88/planner/internal/durable"
	"github.com/roach88/planner/internal/event"
	"github.com/roach88/planner/internal/form"
	"github.com/roach88/planner/internal/planner"
	"github.com/roach88/planner/internal/schema"
	"github.com/roach88/planner/internal/testutil"
)

// Harness is the scenario execution engine.
// It runs scenarios with a pinned clock and sequential identifiers.
type Harness struct {
	backend *durable.Memory
	codec   *codec.Codec
	list    *planner.List
	clock   *testutil.FixedClock
	logger  *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory backend.
//
// Execution flow:
// 1. Pin the clock and hydrate an empty list
// 2. Store the seed events
// 3. Execute flow steps with expect validation
// 4. Evaluate assertions against the final collection
func Run(scenario *Scenario) (*Result, error) {
	now, err := scenario.Clock()
	if err != nil {
		return nil, err
	}
	sch, err := schema.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load schema: %w", err)
	}

	h := &Harness{
		backend: durable.NewMemory(),
		codec:   codec.New(sch),
		clock:   testutil.NewFixedClock(now),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	ctx := context.Background()
	h.list = planner.Open(ctx, h.backend, h.codec, planner.Options{
		IDs:    testutil.NewSequentialIDs(""),
		Logger: h.logger,
	})

	if err := h.executeSeed(ctx, scenario.Seed); err != nil {
		return nil, fmt.Errorf("failed to execute seed: %w", err)
	}
	baseline := h.backend.Writes()

	result := NewResult()
	if err := h.executeFlow(ctx, scenario.Flow, result); err != nil {
		return nil, fmt.Errorf("failed to execute flow: %w", err)
	}

	result.Events = h.list.Events()
	result.Writes = h.backend.Writes() - baseline
	result.Stored, err = h.codec.Encode(result.Events)
	if err != nil {
		return nil, fmt.Errorf("failed to encode final collection: %w", err)
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, now) {
		result.AddError(errMsg)
	}

	return result, nil
}

// executeSeed stores the seed events, bypassing the form and its date window.
func (h *Harness) executeSeed(ctx context.Context, seed []SeedEvent) error {
	for i, se := range seed {
		d, err := se.Draft()
		if err != nil {
			return fmt.Errorf("seed %d: %w", i, err)
		}
		if _, err := h.list.Add(ctx, d); err != nil {
			return fmt.Errorf("seed %d: %w", i, err)
		}
	}
	return nil
}

// executeFlow runs all flow steps and validates expect clauses.
func (h *Harness) executeFlow(ctx context.Context, flow []FlowStep, result *Result) error {
	for i, step := range flow {
		entry, err := h.executeStep(ctx, step)
		if err != nil {
			return fmt.Errorf("flow step %d: %w", i, err)
		}
		entry.Step = i
		result.Trace = append(result.Trace, entry)

		h.logger.Info("flow step completed",
			"step", i,
			"action", step.Action,
			"id", entry.ID,
			"outcome", entry.Outcome,
		)

		if step.Expect != nil {
			checkExpect(i, step.Expect, entry, result)
		}
	}
	return nil
}

func (h *Harness) executeStep(ctx context.Context, step FlowStep) (TraceEntry, error) {
	entry := TraceEntry{Action: step.Action, ID: step.ID, Outcome: OutcomeOK}

	switch step.Action {
	case ActionAdd:
		d, rejected, err := submit(form.NewCreate(h.clock), step.Fields)
		if err != nil {
			return entry, err
		}
		if len(rejected) > 0 {
			entry.Outcome, entry.Rejected = OutcomeInvalid, rejected
			return entry, nil
		}
		added, err := h.list.Add(ctx, d)
		if err != nil {
			return entry, err
		}
		entry.ID = added.ID

	case ActionEdit:
		rec, ok := h.list.Get(step.ID)
		if !ok {
			entry.Outcome = OutcomeNotFound
			return entry, nil
		}
		d, rejected, err := submit(form.NewEdit(h.clock, rec), step.Fields)
		if err != nil {
			return entry, err
		}
		if len(rejected) > 0 {
			entry.Outcome, entry.Rejected = OutcomeInvalid, rejected
			return entry, nil
		}
		if _, err := h.list.Edit(ctx, step.ID, d); err != nil {
			return entry, err
		}

	case ActionDelete:
		found, err := h.list.Delete(ctx, step.ID)
		if err != nil {
			return entry, err
		}
		if !found {
			entry.Outcome = OutcomeNotFound
		}

	default:
		return entry, fmt.Errorf("unknown action %q", step.Action)
	}

	return entry, nil
}

// submit fills f and returns either the draft or the rejected field names.
func submit(f *form.Form, fields map[string]string) (event.Draft, []string, error) {
	d, err := f.Fill(fields)
	if err == nil {
		return d, nil, nil
	}
	var verrs form.ValidationErrors
	if !errors.As(err, &verrs) {
		return event.Draft{}, nil, err
	}
	rejected := make([]string, len(verrs))
	for i, v := range verrs {
		rejected[i] = v.Field
	}
	return event.Draft{}, rejected, nil
}

func checkExpect(index int, expect *ExpectClause, entry TraceEntry, result *Result) {
	if entry.Outcome != expect.Outcome {
		result.AddError(fmt.Sprintf("flow[%d]: expected outcome %s, got %s", index, expect.Outcome, entry.Outcome))
		return
	}
	if expect.ID != "" && entry.ID != expect.ID {
		result.AddError(fmt.Sprintf("flow[%d]: expected id %s, got %s", index, expect.ID, entry.ID))
	}
	if len(expect.Rejected) > 0 && !slices.Equal(expect.Rejected, entry.Rejected) {
		result.AddError(fmt.Sprintf("flow[%d]: expected rejected fields %v, got %v", index, expect.Rejected, entry.Rejected))
	}
}
