package guard

import (
	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/permission"
	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/session"
)

// Decision is the outcome of evaluating a route against the current session.
type Decision uint8

const (
	// DecisionRender allows the route to render.
	DecisionRender Decision = iota
	// DecisionRedirectToLogin sends an unauthenticated visitor to the login
	// route.
	DecisionRedirectToLogin
	// DecisionForbidden denies an authenticated visitor who lacks the
	// required permission.
	DecisionForbidden
	// DecisionPending defers the decision while an authentication attempt
	// or restore is in flight.
	DecisionPending
)

// String returns the wire name of the decision.
func (d Decision) String() string {
	switch d {
	case DecisionRender:
		return "render"
	case DecisionRedirectToLogin:
		return "redirectToLogin"
	case DecisionForbidden:
		return "forbidden"
	case DecisionPending:
		return "pending"
	default:
		return "unknown"
	}
}

// SessionState is the view of authentication state a [Guard] evaluates
// against. *legendsauth.Provider satisfies it.
type SessionState interface {
	Session() session.Session
	Can(perm permission.Permission) bool
}

// Guard evaluates routes against session state.
//
// Guard instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Guard struct {
	state      SessionState
	loginRoute string
}

// New creates a [Guard]. An empty loginRoute defaults to "/login".
func New(state SessionState, loginRoute string) *Guard {
	if loginRoute == "" {
		loginRoute = "/login"
	}
	return &Guard{
		state:      state,
		loginRoute: loginRoute,
	}
}

// LoginRoute returns the route unauthenticated visitors are redirected to.
func (g *Guard) LoginRoute() string {
	return g.loginRoute
}

// Evaluate decides whether a route that merely requires authentication may
// render. It never panics and never returns an error: denial is a decision,
// not a failure.
func (g *Guard) Evaluate() Decision {
	current := g.state.Session()

	switch current.Status {
	case session.StatusAuthenticating:
		return DecisionPending
	case session.StatusAuthenticated:
		return DecisionRender
	default:
		return DecisionRedirectToLogin
	}
}

// EvaluatePermission decides whether a route requiring perm may render.
// Unauthenticated visitors are redirected; authenticated visitors without
// the permission are forbidden, not redirected.
func (g *Guard) EvaluatePermission(perm permission.Permission) Decision {
	current := g.state.Session()

	if current.Status == session.StatusAuthenticating {
		return DecisionPending
	}

	if g.state.Can(perm) {
		return DecisionRender
	}

	if current.Status == session.StatusAuthenticated {
		return DecisionForbidden
	}
	return DecisionRedirectToLogin
}
