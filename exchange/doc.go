// Package exchange defines the credential exchange seam: the boundary where
// credentials leave the process and a verified identity comes back.
//
// The platform never stores or hashes passwords. Credentials are forwarded to
// an external endpoint exactly once per attempt; the [Exchanger] interface is
// the only place they appear, and implementations must not retain them.
//
// # Error contract
//
// Implementations classify every failure into one of three sentinels so the
// provider can map them onto session failure reasons: [ErrInvalidCredentials]
// for a definite rejection, [ErrUnavailable] for transport or backend
// trouble, and [ErrProtocol] for a well-formed reply the platform cannot
// accept. Context cancellation and deadline errors are passed through
// unwrapped so callers can distinguish timeouts.
package exchange
