// Package legendsauth provides the authentication and authorization core of
// the Legends booking platform: a single-session state machine over an
// external credential exchange, role-permission checks against a dense
// matrix, and route guarding decisions.
//
// The package is designed for concurrent use: Provider methods are safe to
// call from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// legendsauth is the public surface. It exposes [Provider], [Builder],
// [Config], and value types (MetricsSnapshot, TelemetryEvent, etc.).
// Internal coordination — telemetry dispatch — lives under internal/ and is
// never exported directly. Session state, the permission matrix, the
// credential exchange, and the route guard live in their own subpackages and
// can be used independently.
//
// # What this package must NOT do
//
//   - Store, hash, or compare passwords: credentials pass through to the
//     exchange exactly once per attempt and are never retained.
//   - Expose Redis clients, storage backends, or encoding details in its
//     public API.
//   - Import any sub-package that re-imports legendsauth (no import cycles).
//
// # Concurrency contract
//
// At most one authentication attempt is in flight per Provider; concurrent
// submissions are rejected with [ErrAuthenticationInFlight]. Logout always
// wins: an attempt that settles after a logout is discarded and reported as
// [ErrSessionSuperseded].
package legendsauth
