package session

import "github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/permission"

// Status defines a public type used by the session store.
//
// Status values form a closed set; a [Session] is always in exactly one of
// them.
type Status uint8

const (
	// StatusAnonymous is the resting state with no identity attached.
	StatusAnonymous Status = iota
	// StatusAuthenticating marks an attempt in flight. Exactly one attempt
	// may hold this state at a time.
	StatusAuthenticating
	// StatusAuthenticated marks a session carrying a verified identity.
	StatusAuthenticated
	// StatusError marks a failed attempt. The failure reason is carried in
	// [Session.Reason].
	StatusError
)

// String returns the wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Reason classifies why an attempt settled in [StatusError].
type Reason uint8

const (
	// ReasonNone is the zero reason carried by non-error sessions.
	ReasonNone Reason = iota
	// ReasonInvalidCredentials marks a rejection by the credential exchange.
	ReasonInvalidCredentials
	// ReasonTimeout marks an attempt that exceeded the exchange deadline.
	ReasonTimeout
	// ReasonUnavailable marks a transport or backend failure.
	ReasonUnavailable
)

// String returns the wire name of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonInvalidCredentials:
		return "invalidCredentials"
	case ReasonTimeout:
		return "timeout"
	case ReasonUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Identity is the verified subject attached to an authenticated session.
//
// Identity instances are intended to be configured during initialization and
// then treated as immutable unless documented otherwise.
type Identity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Session is the complete authentication state at a point in time.
//
// Session instances are value snapshots. Identity is nil unless Status is
// [StatusAuthenticated]; Token is empty unless the session is authenticated.
type Session struct {
	Identity *Identity
	Role     permission.Role
	Token    string
	Status   Status
	Reason   Reason
}

// Anonymous returns the resting session: no identity, guest role, no token.
func Anonymous() Session {
	return Session{Role: permission.RoleGuest, Status: StatusAnonymous}
}

// Authenticated reports whether the session carries a verified identity.
func (s Session) Authenticated() bool {
	return s.Status == StatusAuthenticated
}

// clone returns a deep copy so that subscriber mutation cannot reach the
// store's state.
func (s Session) clone() Session {
	out := s
	if s.Identity != nil {
		id := *s.Identity
		out.Identity = &id
	}
	return out
}
