package legendsauth

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidCredentials is an exported constant or variable used by the authentication provider.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrExchangeTimeout is an exported constant or variable used by the authentication provider.
	ErrExchangeTimeout = errors.New("credential exchange timed out")
	// ErrExchangeUnavailable is an exported constant or variable used by the authentication provider.
	ErrExchangeUnavailable = errors.New("credential exchange unavailable")
	// ErrAuthenticationInFlight is returned when a submission arrives while
	// another attempt has not yet settled.
	ErrAuthenticationInFlight = errors.New("authentication already in flight")
	// ErrSessionSuperseded is returned when an attempt settles after a logout
	// has already won the session.
	ErrSessionSuperseded = errors.New("session superseded by logout")
	// ErrProviderNotReady is an exported constant or variable used by the authentication provider.
	ErrProviderNotReady = errors.New("provider not initialized")
)

// FieldError is a single field-level validation failure.
//
// FieldError instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates the field failures of one submission. A
// submission carrying a ValidationError never reached the credential
// exchange.
type ValidationError struct {
	Fields []FieldError
}

// Error returns all field messages joined with "; ".
func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// FieldMessage returns the message recorded for field, or "" when the field
// passed validation.
func (e *ValidationError) FieldMessage(field string) string {
	if e == nil {
		return ""
	}
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}
