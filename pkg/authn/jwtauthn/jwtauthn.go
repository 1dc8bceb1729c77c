package jwtauthn

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/doodlesbykumbi/warden/pkg/authn"
	"github.com/doodlesbykumbi/warden/pkg/authz"
	"github.com/doodlesbykumbi/warden/pkg/identity"
	"github.com/doodlesbykumbi/warden/pkg/session"
)

// DefaultRolesClaim is the claim holding the subject's roles.
const DefaultRolesClaim = "roles"

// Config holds JWT authenticator configuration.
type Config struct {
	// Key is the HMAC signing key.
	Key []byte

	// Issuer is the expected issuer claim value (optional).
	Issuer string

	// Audience is the expected audience claim (optional).
	Audience string

	// RolesClaim is the claim containing the subject's roles
	// (defaults to "roles").
	RolesClaim string
}

// Authenticator validates HMAC-signed JWTs and maps their claims to an
// identity: "sub" becomes the login principal, "email" (when present)
// an email principal, and the roles claim the role set.
type Authenticator struct {
	config     Config
	authorizer authz.Authorizer
	sessions   session.Store
}

// Option configures the Authenticator.
type Option func(*Authenticator)

// WithAuthorizer sets the permission engine wired into produced
// identities.
func WithAuthorizer(a authz.Authorizer) Option {
	return func(auth *Authenticator) { auth.authorizer = a }
}

// WithSessionStore sets the session store wired into produced
// identities.
func WithSessionStore(s session.Store) Option {
	return func(auth *Authenticator) { auth.sessions = s }
}

// New creates a new JWT authenticator.
func New(config Config, opts ...Option) *Authenticator {
	if config.RolesClaim == "" {
		config.RolesClaim = DefaultRolesClaim
	}
	auth := &Authenticator{config: config}
	for _, opt := range opts {
		opt(auth)
	}
	return auth
}

// Authenticate parses and validates the token's credential material as
// a JWT. Expiry is always enforced; issuer and audience only when
// configured.
func (a *Authenticator) Authenticate(_ context.Context, tok authn.Token) (identity.Context, error) {
	if len(a.config.Key) == 0 {
		return nil, authn.NewAuthenticationError("signing key is not configured", nil)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.config.Issuer))
	}
	if a.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(a.config.Audience))
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(string(tok.Credentials()), claims, func(t *jwt.Token) (interface{}, error) {
		return a.config.Key, nil
	}, opts...)
	if err != nil {
		return nil, authn.NewAuthenticationError("token validation failed", err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, authn.NewAuthenticationError("token has no subject", err)
	}

	principals := []identity.Principal{identity.NewPrincipal(identity.TypeLogin, sub)}
	if email, ok := claims["email"].(string); ok && email != "" {
		principals = append(principals, identity.NewPrincipal(identity.TypeEmail, email))
	}

	roles, err := rolesFromClaim(claims[a.config.RolesClaim])
	if err != nil {
		return nil, authn.NewAuthenticationError(err.Error(), nil)
	}

	return identity.NewResolved(
		principals,
		roles,
		identity.WithAuthorizer(a.authorizer),
		identity.WithSessionStore(a.sessions),
	), nil
}

// Mint signs a token for sub carrying the given roles, valid for ttl.
// Intended for tests and tooling; production tokens normally come from
// an external issuer.
func (a *Authenticator) Mint(sub string, roles []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":               sub,
		"iat":               now.Unix(),
		"exp":               now.Add(ttl).Unix(),
		a.config.RolesClaim: roles,
	}
	if a.config.Issuer != "" {
		claims["iss"] = a.config.Issuer
	}
	if a.config.Audience != "" {
		claims["aud"] = a.config.Audience
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.config.Key)
}

func rolesFromClaim(raw any) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("roles claim is not a list")
	}
	roles := make([]string, 0, len(list))
	for _, item := range list {
		role, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("roles claim contains a non-string entry")
		}
		roles = append(roles, role)
	}
	return roles, nil
}
