// Package session provides the session model, the in-memory store that owns
// the single current session, and the pluggable persistence backends used to
// survive restarts.
//
// # Store discipline
//
// There is exactly one current [Session] per [Store]. Mutations go through
// [Store.Set], which snapshots the next value and delivers it to subscribers
// synchronously, in subscription order, after the store's own state is
// updated. Subscribers receive copies; mutating a delivered session never
// affects the store.
//
// # Persistence
//
// Persistence is best-effort. [Store.Restore] never returns an error: a
// missing, unreadable, or undecodable persisted record degrades to the
// anonymous session. Writes are delegated to a [Storage] backend; the Redis
// implementation reports backend outages as [ErrStorageUnavailable].
//
// # Architecture boundaries
//
// This package owns session state and its persistence. It does NOT talk to
// the credential exchange, evaluate permissions, or decide routing — those
// responsibilities belong to the provider and guard layers.
//
// # What this package must NOT do
//
//   - Import legendsauth, exchange, or guard (no upward imports).
//   - Perform credential validation or authorization decisions.
//   - Store passwords or other secrets in [Session] fields.
package session
