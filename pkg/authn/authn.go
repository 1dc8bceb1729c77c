package authn

import (
	"context"
	"fmt"

	"github.com/doodlesbykumbi/warden/pkg/identity"
)

// A Token is the credential material submitted during an authentication
// attempt: a claimed principal and the secret backing the claim.
type Token interface {
	// Principal returns the claimed subject (login name, host ID, or
	// empty when the credential itself carries the subject, as with a
	// JWT).
	Principal() string

	// Credentials returns the raw secret material.
	Credentials() []byte
}

// An Authenticator validates a token and produces the resolved identity.
// Implementations must return an *AuthenticationError on any validation
// failure and must not distinguish "unknown principal" from "wrong
// credentials" in the message.
type Authenticator interface {
	Authenticate(ctx context.Context, tok Token) (identity.Context, error)
}

// Credentials is the plain login/secret Token.
type Credentials struct {
	Login  string
	Secret []byte
}

func (c Credentials) Principal() string   { return c.Login }
func (c Credentials) Credentials() []byte { return c.Secret }

// BearerToken is a self-contained credential such as a JWT; the subject
// is inside the token.
type BearerToken []byte

func (b BearerToken) Principal() string   { return "" }
func (b BearerToken) Credentials() []byte { return []byte(b) }

// AuthenticationError reports a failed authentication attempt.
type AuthenticationError struct {
	Reason string
	cause  error
}

// NewAuthenticationError creates an AuthenticationError wrapping cause,
// which may be nil.
func NewAuthenticationError(reason string, cause error) *AuthenticationError {
	return &AuthenticationError{Reason: reason, cause: cause}
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

func (e *AuthenticationError) Unwrap() error {
	return e.cause
}
