// Package codec converts an event collection to and from its stored form.
//
// The stored form is a JSON array of event objects written canonically:
// object keys in sorted order, no HTML escaping. String values are written
// exactly as held, so Decode(Encode(x)) equals x. Canonical output keeps the
// stored blob byte-stable for identical collections, so rewriting an
// unchanged list never changes the file.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/planner/internal/event"
	"github.com/roach88/planner/internal/schema"
)

// ErrMalformed wraps every decode failure: unparsable JSON, a shape the
// schema rejects, or a broken collection invariant such as a duplicate id.
var ErrMalformed = errors.New("malformed event collection")

// Codec encodes and decodes []event.Event.
type Codec struct {
	schema *schema.Schema
}

// New returns a Codec that checks documents against s.
func New(s *schema.Schema) *Codec {
	return &Codec{schema: s}
}

// Encode produces the canonical stored form of events.
// The output is checked against the schema so that whatever is written can
// be read back.
func (c *Codec) Encode(events []event.Event) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, e := range events {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeEvent(&buf, e); err != nil {
			return nil, fmt.Errorf("encode event[%d]: %w", i, err)
		}
	}
	buf.WriteByte(']')

	if err := c.schema.ValidateCollection(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a stored collection.
func (c *Codec) Decode(data []byte) ([]event.Event, error) {
	if err := c.schema.ValidateCollection(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var events []event.Event
	if err := dec.Decode(&events); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	seen := make(map[string]struct{}, len(events))
	for i, e := range events {
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q at index %d", ErrMalformed, e.ID, i)
		}
		seen[e.ID] = struct{}{}
	}
	if events == nil {
		events = []event.Event{}
	}
	return events, nil
}

// writeEvent writes one object with keys in sorted order.
func writeEvent(buf *bytes.Buffer, e event.Event) error {
	category, err := e.Category.MarshalText()
	if err != nil {
		return err
	}
	date, err := e.Date.MarshalText()
	if err != nil {
		return err
	}
	tod, err := e.Time.MarshalText()
	if err != nil {
		return err
	}

	fields := []struct {
		key   string
		value string
	}{
		{"category", string(category)},
		{"date", string(date)},
		{"description", e.Description},
		{"id", e.ID},
		{"location", e.Location},
		{"time", string(tod)},
		{"title", e.Title},
	}

	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, f.key); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeString(buf, f.value); err != nil {
			return fmt.Errorf("field %q: %w", f.key, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

// writeString writes s without HTML escaping.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encoder appends a newline.
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
