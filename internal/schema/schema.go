// Package schema checks the shape of a persisted event collection.
//
// The shape lives in events.cue. Definitions are closed, so unknown fields,
// missing fields and out-of-enumeration categories all fail validation.
package schema

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed events.cue
var eventsCUE string

// Schema validates JSON documents against #Collection.
//
// Thread-safety: a cue.Context is not safe for concurrent use, so Validate
// serializes callers.
type Schema struct {
	mu         sync.Mutex
	ctx        *cue.Context
	collection cue.Value
}

// New compiles the embedded schema.
func New() (*Schema, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(eventsCUE, cue.Filename("events.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	collection := v.LookupPath(cue.ParsePath("#Collection"))
	if !collection.Exists() {
		return nil, fmt.Errorf("compile schema: #Collection not defined")
	}
	return &Schema{ctx: ctx, collection: collection}, nil
}

var (
	defaultOnce   sync.Once
	defaultSchema *Schema
	defaultErr    error
)

// Default returns the process-wide compiled schema.
func Default() (*Schema, error) {
	defaultOnce.Do(func() {
		defaultSchema, defaultErr = New()
	})
	return defaultSchema, defaultErr
}

// ValidateCollection reports whether data is a JSON array of well-formed events.
func (s *Schema) ValidateCollection(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.ctx.CompileBytes(data, cue.Filename("events.json"))
	if err := doc.Err(); err != nil {
		return fmt.Errorf("parse collection: %w", err)
	}
	if err := s.collection.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("collection shape: %w", err)
	}
	return nil
}
