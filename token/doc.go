// Package token inspects cached authentication tokens before they are
// reused.
//
// The platform does not mint or verify tokens — the credential exchange does
// that. This package only answers one question at restore time: is the cached
// token obviously unusable? Opaque tokens are accepted as-is; tokens in JWT
// form additionally have their expiry claim checked, without signature
// verification, since the exchange remains the authority on validity.
//
// # What this package must NOT do
//
//   - Sign or mint tokens.
//   - Verify signatures or trust claims beyond expiry.
//   - Import session, exchange, or legendsauth.
package token
