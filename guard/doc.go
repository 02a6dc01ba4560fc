// Package guard turns session state into routing decisions.
//
// A [Guard] never rejects by throwing: every evaluation yields one of four
// [Decision] values (render, redirect to login, forbidden, pending) that the
// caller translates into navigation or an HTTP response. The HTTP middleware
// in this package provides that translation for net/http handlers.
//
// # Architecture boundaries
//
// The guard reads session state through the [SessionState] interface and
// owns nothing else. It performs no I/O and holds no state beyond its
// configuration.
package guard
