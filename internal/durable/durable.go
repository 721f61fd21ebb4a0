// Package durable mirrors one value of a durable key-value backend in memory.
//
// A Value is hydrated once from its key and written through on every Set.
// Absent or unreadable data never fails the caller: the value falls back to
// the default supplied at Open. Failed writes keep the new value in memory
// so the session can continue.
package durable

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Backend is a durable key-value area.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Codec converts T to and from its stored bytes.
type Codec[T any] interface {
	Encode(v T) ([]byte, error)
	Decode(data []byte) (T, error)
}

// Value is the in-memory mirror of one key.
//
// Thread-safety: all methods are safe for concurrent use within a process.
// Writers in other processes are not coordinated; the last write wins.
type Value[T any] struct {
	mu      sync.Mutex
	backend Backend
	key     string
	codec   Codec[T]
	logger  *slog.Logger
	current T
}

// Open hydrates the value stored under key.
//
// Falls back to def when the key is absent, the backend read fails, or the
// stored bytes do not decode. Fallbacks other than "absent" are logged at
// WARN; none are returned to the caller.
func Open[T any](ctx context.Context, backend Backend, key string, def T, codec Codec[T], logger *slog.Logger) *Value[T] {
	if logger == nil {
		logger = slog.Default()
	}
	v := &Value[T]{
		backend: backend,
		key:     key,
		codec:   codec,
		logger:  logger,
		current: def,
	}

	data, ok, err := backend.Get(ctx, key)
	switch {
	case err != nil:
		logger.Warn("durable read failed, using default", "key", key, "error", err)
	case !ok:
		logger.Debug("durable key absent, using default", "key", key)
	default:
		decoded, err := codec.Decode(data)
		if err != nil {
			logger.Warn("durable value malformed, using default", "key", key, "error", err)
			break
		}
		v.current = decoded
	}
	return v
}

// Key returns the backend key this value is stored under.
func (v *Value[T]) Key() string {
	return v.key
}

// Get returns the in-memory value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set replaces the in-memory value and writes it through to the backend.
//
// A value the codec cannot encode is rejected: the in-memory value is left
// as it was and nothing is written. A backend write failure still updates
// the in-memory value. Either failure is logged at WARN and returned so
// callers can report it.
func (v *Value[T]) Set(ctx context.Context, next T) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, err := v.setLocked(ctx, next)
	return err
}

// Update applies fn to the current value and stores the result as one
// read-modify-write. When fn reports no change nothing is written.
// changed reports whether the in-memory value was replaced.
func (v *Value[T]) Update(ctx context.Context, fn func(cur T) (T, bool)) (changed bool, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	next, changed := fn(v.current)
	if !changed {
		return false, nil
	}
	return v.setLocked(ctx, next)
}

func (v *Value[T]) setLocked(ctx context.Context, next T) (committed bool, err error) {
	data, err := v.codec.Encode(next)
	if err != nil {
		v.logger.Warn("durable encode failed, value unchanged", "key", v.key, "error", err)
		return false, fmt.Errorf("encode %q: %w", v.key, err)
	}

	v.current = next
	if err := v.backend.Set(ctx, v.key, data); err != nil {
		v.logger.Warn("durable write failed, keeping value in memory", "key", v.key, "error", err)
		return true, fmt.Errorf("write %q: %w", v.key, err)
	}
	return true, nil
}
