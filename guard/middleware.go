package guard

import (
	"net/http"

	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/permission"
)

// retryAfterSeconds is advertised on pending decisions so clients poll
// instead of hammering.
const retryAfterSeconds = "1"

// Middleware wraps next so it only serves requests the guard decides to
// render. Pending decisions answer 503 with a Retry-After header, everything
// unauthenticated is redirected to the login route.
func Middleware(g *Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			serveDecision(g, g.Evaluate(), next, w, r)
		})
	}
}

// RequirePermission wraps next so it only serves requests whose session is
// granted perm. Authenticated sessions lacking the permission receive 403.
func RequirePermission(g *Guard, perm permission.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			serveDecision(g, g.EvaluatePermission(perm), next, w, r)
		})
	}
}

func serveDecision(g *Guard, d Decision, next http.Handler, w http.ResponseWriter, r *http.Request) {
	switch d {
	case DecisionRender:
		next.ServeHTTP(w, r)
	case DecisionPending:
		w.Header().Set("Retry-After", retryAfterSeconds)
		http.Error(w, "authentication in progress", http.StatusServiceUnavailable)
	case DecisionForbidden:
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Redirect(w, r, g.LoginRoute(), http.StatusFound)
	}
}
