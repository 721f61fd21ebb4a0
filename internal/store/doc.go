// Package store provides SQLite-backed durable key-value storage.
//
// The store holds one table, kv, mapping a string key to an opaque blob.
// The planner keeps its whole event collection under a single key and
// rewrites it on every mutation; the store does not interpret values.
//
// # Semantics
//
//   - Set is an upsert: last write wins, no compare-and-swap
//   - Get distinguishes "absent" from "empty value"
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - Single open connection: one writer per process
//
// Writers in separate processes are not coordinated beyond SQLite's own
// locking; the last completed Set for a key wins.
package store
