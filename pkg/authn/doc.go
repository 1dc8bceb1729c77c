// Package authn defines the authentication contract consumed by the
// security façade.
//
// An Authenticator validates a Token and yields the resolved
// identity.Context. The façade never sees credentials beyond handing
// the token over; all validation logic lives in the authenticator.
//
// Two authenticators ship in subpackages:
//
//   - apikey: login + secret checked against bcrypt hashes in a
//     credentials table
//   - jwtauthn: signed JWTs with roles carried in a claim
//
// Hosts with their own credential validation implement Authenticator
// directly.
package authn
