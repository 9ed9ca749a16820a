// Package store persists client-side calculator state: the favorites set
// and the per-calculator computation history.
//
// Both features sit on a small key-value Adapter contract with two
// implementations: a SQLite-backed Store for real use and an in-memory
// Memory for tests and degraded operation.
//
// # Persisted Layout
//
//   - "favorites": JSON array of calculator ids.
//   - "calculation-history": JSON object mapping calculator id to an array
//     of entries, most recent first, at most 50 per calculator.
//
// History mutations re-read the full mapping before writing it back, so an
// append for one calculator never clobbers entries another writer added for
// a different calculator under the same key.
//
// # Failure Semantics
//
// Favorites and History treat persistence as a convenience, not a source of
// truth: reads degrade to empty on any storage failure or corrupt payload,
// writes are best-effort, and failures are logged rather than returned.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
