// Package permission provides the closed role and permission sets of the
// Legends platform and the dense role-permission matrix used by authorization
// checks.
//
// # Matrix discipline
//
// The matrix is total by construction: [NewMatrix] rejects any input that is
// missing a role row or leaves a row partially populated, and the resulting
// [Matrix] is immutable thereafter. There is no inheritance between rows —
// every row is independently authoritative.
//
// # Architecture boundaries
//
// This package is a pure in-memory data structure with no I/O. Lookups with
// an unknown role or permission are reported as errors, never as a silent
// deny, so that programming defects surface instead of masquerading as
// authorization decisions.
//
// # What this package must NOT do
//
//   - Access storage or the network.
//   - Import legendsauth, session, or guard.
//   - Mutate a matrix after construction.
package permission
