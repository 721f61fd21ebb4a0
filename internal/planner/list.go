// Package planner owns the canonical event collection for a session.
//
// All mutation goes through List.Add, List.Edit and List.Delete. Each
// effective mutation performs exactly one write-through to durable storage.
package planner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/planner/internal/durable"
	"github.com/roach88/planner/internal/event"
)

// DefaultKey is the storage key holding the collection.
const DefaultKey = "events"

// List is the event collection state container.
type List struct {
	value  *durable.Value[[]event.Event]
	ids    IDGenerator
	logger *slog.Logger
}

// Options configures a List.
type Options struct {
	// Key is the storage key. Defaults to DefaultKey.
	Key string

	// IDs generates identifiers for added events.
	// If nil, defaults to UUIDv7Generator.
	IDs IDGenerator

	Logger *slog.Logger
}

// Open hydrates a List from backend. Missing or malformed stored data
// yields an empty list.
func Open(ctx context.Context, backend durable.Backend, codec durable.Codec[[]event.Event], opts Options) *List {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.IDs == nil {
		opts.IDs = UUIDv7Generator{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &List{
		value:  durable.Open(ctx, backend, opts.Key, []event.Event{}, codec, opts.Logger),
		ids:    opts.IDs,
		logger: opts.Logger,
	}
}

// Events returns a copy of the collection in stored order.
func (l *List) Events() []event.Event {
	cur := l.value.Get()
	out := make([]event.Event, len(cur))
	copy(out, cur)
	return out
}

// Len returns the number of events.
func (l *List) Len() int {
	return len(l.value.Get())
}

// Get returns the event with the given id.
func (l *List) Get(id string) (event.Event, bool) {
	for _, e := range l.value.Get() {
		if e.ID == id {
			return e, true
		}
	}
	return event.Event{}, false
}

// Add assigns a fresh identifier to d, appends it and persists. The text
// fields are stored in NFC.
//
// A draft that fails event.Draft.Validate is rejected with nothing changed
// and nothing written. Any other error reports a failed write; the event is
// in the in-memory collection either way.
func (l *List) Add(ctx context.Context, d event.Draft) (event.Event, error) {
	d = d.Normalize()
	if err := d.Validate(); err != nil {
		return event.Event{}, fmt.Errorf("add event: %w", err)
	}
	var added event.Event
	_, err := l.value.Update(ctx, func(cur []event.Event) ([]event.Event, bool) {
		added = d.WithID(l.uniqueID(cur))
		next := make([]event.Event, 0, len(cur)+1)
		next = append(next, cur...)
		next = append(next, added)
		return next, true
	})
	if err != nil {
		return added, fmt.Errorf("add event: %w", err)
	}
	l.logger.Debug("event added", "key", l.value.Key(), "id", added.ID, "title", added.Title)
	return added, nil
}

// Edit replaces every field but the identifier of the event with the given
// id, keeping its position. An unknown id is ignored: nothing changes and
// nothing is written. found reports whether the id existed. An invalid
// draft is rejected the same way Add rejects one.
func (l *List) Edit(ctx context.Context, id string, d event.Draft) (found bool, err error) {
	d = d.Normalize()
	if err := d.Validate(); err != nil {
		return false, fmt.Errorf("edit event %q: %w", id, err)
	}
	found, err = l.value.Update(ctx, func(cur []event.Event) ([]event.Event, bool) {
		idx := indexOf(cur, id)
		if idx < 0 {
			return cur, false
		}
		next := make([]event.Event, len(cur))
		copy(next, cur)
		next[idx] = d.WithID(id)
		return next, true
	})
	if err != nil {
		return found, fmt.Errorf("edit event %q: %w", id, err)
	}
	if found {
		l.logger.Debug("event edited", "id", id)
	}
	return found, nil
}

// Delete removes the event with the given id. An unknown id is a no-op.
func (l *List) Delete(ctx context.Context, id string) (found bool, err error) {
	found, err = l.value.Update(ctx, func(cur []event.Event) ([]event.Event, bool) {
		idx := indexOf(cur, id)
		if idx < 0 {
			return cur, false
		}
		next := make([]event.Event, 0, len(cur)-1)
		next = append(next, cur[:idx]...)
		next = append(next, cur[idx+1:]...)
		return next, true
	})
	if err != nil {
		return found, fmt.Errorf("delete event %q: %w", id, err)
	}
	if found {
		l.logger.Debug("event deleted", "id", id)
	}
	return found, nil
}

// uniqueID draws identifiers until one is not in cur. A generator that
// keeps colliding is abandoned for UUIDv7.
func (l *List) uniqueID(cur []event.Event) string {
	const maxDraws = 8
	for i := 0; i < maxDraws; i++ {
		id := l.ids.Generate()
		if indexOf(cur, id) < 0 {
			return id
		}
		l.logger.Warn("generated id already in use, drawing another", "id", id)
	}
	return UUIDv7Generator{}.Generate()
}

func indexOf(events []event.Event, id string) int {
	for i, e := range events {
		if e.ID == id {
			return i
		}
	}
	return -1
}
