package exchange

import (
	"context"
	"errors"

	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/permission"
	"github.com/Legends-MIXOFMASTER/legends-2.0m-sub001/session"
)

// ErrInvalidCredentials is an exported constant or variable used by the credential exchange.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnavailable is an exported constant or variable used by the credential exchange.
var ErrUnavailable = errors.New("exchange unavailable")

// ErrProtocol is returned when the exchange replied but the reply cannot be
// used (unparseable body, unknown role, missing token).
var ErrProtocol = errors.New("exchange protocol violation")

// Result is a successful exchange outcome: the session token plus the
// verified identity and role it is bound to.
//
// Result instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Result struct {
	Token    string
	Identity session.Identity
	Role     permission.Role
}

// Profile carries the fields of a registration request. Password is
// forwarded to the exchange and never retained.
type Profile struct {
	Username string
	Email    string
	Password string
}

// Exchanger is the credential exchange seam. Implementations must honor ctx
// cancellation and must not retain credentials beyond the call.
type Exchanger interface {
	Login(ctx context.Context, identifier, password string) (Result, error)
	Register(ctx context.Context, profile Profile) (Result, error)
}
