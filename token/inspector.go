package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmpty is an exported constant or variable used by the token inspector.
var ErrEmpty = errors.New("empty token")

// ErrMalformed is returned for a token in JWT form that cannot be parsed.
var ErrMalformed = errors.New("malformed token")

// ErrExpired is returned for a JWT whose expiry claim is in the past.
var ErrExpired = errors.New("token expired")

// Validate reports whether a cached token is still plausible at now.
//
// A token that is not in JWT form is opaque to this platform and passes
// unconditionally; the credential exchange is its only authority. A JWT is
// parsed without signature verification and rejected when its exp claim has
// passed. A JWT without an exp claim passes.
func Validate(raw string, now time.Time) error {
	if raw == "" {
		return ErrEmpty
	}

	if strings.Count(raw, ".") != 2 {
		return nil
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if claims.ExpiresAt != nil && !claims.ExpiresAt.After(now) {
		return fmt.Errorf("%w: at %s", ErrExpired, claims.ExpiresAt.Format(time.RFC3339))
	}

	return nil
}
