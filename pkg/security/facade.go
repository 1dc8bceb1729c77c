package security

import (
	"context"
	"sync"

	"github.com/doodlesbykumbi/warden/pkg/authn"
	"github.com/doodlesbykumbi/warden/pkg/authz"
	"github.com/doodlesbykumbi/warden/pkg/flow"
	"github.com/doodlesbykumbi/warden/pkg/identity"
	"github.com/doodlesbykumbi/warden/pkg/session"
)

// Facade is the ambient identity and authorization surface. It holds no
// per-flow state: every query resolves the identity bound to the
// calling context's flow and delegates to it. One Facade is created at
// startup and shared by all flows.
//
// The failure contract is two-tier. Read queries (IsAuthenticated,
// principals, role and permission booleans) degrade to false/empty when
// no identity is bound, so callers can branch without error plumbing.
// Assertions (CheckPermission, Session, Invalidate) fail instead; an
// assertion that silently passed on an anonymous caller would be a
// hole, not a convenience.
type Facade struct {
	mu            sync.RWMutex
	authenticator authn.Authenticator
}

// Option configures a Facade.
type Option func(*Facade)

// WithAuthenticator sets the authentication delegate.
func WithAuthenticator(a authn.Authenticator) Option {
	return func(f *Facade) { f.authenticator = a }
}

// New creates a Facade. An authenticator may be supplied here or later
// via SetAuthenticator; its absence only surfaces on the first
// Authenticate call.
func New(opts ...Option) *Facade {
	f := &Facade{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetAuthenticator replaces the authentication delegate.
func (f *Facade) SetAuthenticator(a authn.Authenticator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authenticator = a
}

// Authenticator returns the configured authentication delegate, or nil.
func (f *Facade) Authenticator() authn.Authenticator {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.authenticator
}

// Authenticate validates tok through the configured authenticator and
// binds the produced identity to the current flow, overwriting any
// previous binding. On failure the previous binding is left untouched
// and the authenticator's error is returned verbatim.
func (f *Facade) Authenticate(ctx context.Context, tok authn.Token) error {
	authenticator := f.Authenticator()
	if authenticator == nil {
		return &ConfigurationError{Missing: "authenticator"}
	}

	fl, ok := flow.From(ctx)
	if !ok {
		return flow.ErrNoFlow
	}

	id, err := authenticator.Authenticate(ctx, tok)
	if err != nil {
		return err
	}

	fl.Put(flow.IdentityKey, id)
	return nil
}

// Current returns the identity bound to the current flow, if any.
func (f *Facade) Current(ctx context.Context) (identity.Context, bool) {
	fl, ok := flow.From(ctx)
	if !ok {
		return nil, false
	}
	id, ok := fl.Get(flow.IdentityKey).(identity.Context)
	return id, ok
}

// IsAuthenticated reports whether an identity is bound to the current
// flow. It never fails.
func (f *Facade) IsAuthenticated(ctx context.Context) bool {
	_, ok := f.Current(ctx)
	return ok
}

// Principal returns the primary principal of the bound identity, or
// (zero, false) when unbound.
func (f *Facade) Principal(ctx context.Context) (identity.Principal, bool) {
	id, ok := f.Current(ctx)
	if !ok {
		return identity.Principal{}, false
	}
	return id.Principal()
}

// Principals returns all principals of the bound identity, or an empty
// slice when unbound.
func (f *Facade) Principals(ctx context.Context) []identity.Principal {
	id, ok := f.Current(ctx)
	if !ok {
		return nil
	}
	return id.Principals()
}

// PrincipalByType returns the first principal of the given type, or
// (zero, false) when unbound or absent.
func (f *Facade) PrincipalByType(ctx context.Context, principalType string) (identity.Principal, bool) {
	id, ok := f.Current(ctx)
	if !ok {
		return identity.Principal{}, false
	}
	return id.PrincipalByType(principalType)
}

// PrincipalsByType returns all principals of the given type, or an
// empty slice when unbound.
func (f *Facade) PrincipalsByType(ctx context.Context, principalType string) []identity.Principal {
	id, ok := f.Current(ctx)
	if !ok {
		return nil
	}
	return id.PrincipalsByType(principalType)
}

// HasRole reports whether the bound identity holds the role; false when
// unbound.
func (f *Facade) HasRole(ctx context.Context, role string) bool {
	id, ok := f.Current(ctx)
	return ok && id.HasRole(role)
}

// HasRoles reports, per input role and in input order, whether the
// bound identity holds it. When unbound the result is all-false with
// len(roles) elements; empty input yields an empty result either way.
func (f *Facade) HasRoles(ctx context.Context, roles []string) []bool {
	id, ok := f.Current(ctx)
	if !ok {
		return make([]bool, len(roles))
	}
	return id.HasRoles(roles)
}

// HasAllRoles reports whether the bound identity holds every listed
// role; false when unbound.
func (f *Facade) HasAllRoles(ctx context.Context, roles []string) bool {
	id, ok := f.Current(ctx)
	return ok && id.HasAllRoles(roles)
}

// Implies reports whether the bound identity is granted the permission;
// false when unbound.
func (f *Facade) Implies(ctx context.Context, p authz.Permission) bool {
	id, ok := f.Current(ctx)
	return ok && id.Implies(p)
}

// ImpliesEach reports, per input permission and in input order, whether
// it is granted; all-false of matching length when unbound.
func (f *Facade) ImpliesEach(ctx context.Context, perms []authz.Permission) []bool {
	id, ok := f.Current(ctx)
	if !ok {
		return make([]bool, len(perms))
	}
	return id.ImpliesEach(perms)
}

// ImpliesAll reports whether every listed permission is granted; false
// when unbound.
func (f *Facade) ImpliesAll(ctx context.Context, perms []authz.Permission) bool {
	id, ok := f.Current(ctx)
	return ok && id.ImpliesAll(perms)
}

// CheckPermission fails with an *authz.AuthorizationError when no
// identity is bound or the bound identity is denied the permission.
func (f *Facade) CheckPermission(ctx context.Context, p authz.Permission) error {
	id, ok := f.Current(ctx)
	if !ok {
		return unboundAuthzError(p)
	}
	return id.CheckPermission(p)
}

// CheckPermissions fails with an *authz.AuthorizationError when no
// identity is bound or any listed permission is denied.
func (f *Facade) CheckPermissions(ctx context.Context, perms []authz.Permission) error {
	id, ok := f.Current(ctx)
	if !ok {
		return unboundAuthzError(authz.Permission{})
	}
	return id.CheckPermissions(perms)
}

// Session returns the bound identity's session, creating one if none
// exists. It fails with ErrNoIdentity when unbound: there is no safe
// default session for an anonymous caller.
func (f *Facade) Session(ctx context.Context) (session.Session, error) {
	id, ok := f.Current(ctx)
	if !ok {
		return nil, ErrNoIdentity
	}
	return id.Session(true)
}

// SessionIfExists is the no-create form of Session: it returns
// (nil, nil) when the bound identity has no session yet, and fails with
// ErrNoIdentity when unbound.
func (f *Facade) SessionIfExists(ctx context.Context) (session.Session, error) {
	id, ok := f.Current(ctx)
	if !ok {
		return nil, ErrNoIdentity
	}
	return id.Session(false)
}

// Invalidate destroys the bound identity's session and removes the
// binding from the current flow, leaving it unauthenticated. It fails
// with ErrNoIdentity when unbound.
func (f *Facade) Invalidate(ctx context.Context) error {
	fl, ok := flow.From(ctx)
	if !ok {
		return ErrNoIdentity
	}
	id, ok := fl.Get(flow.IdentityKey).(identity.Context)
	if !ok {
		return ErrNoIdentity
	}

	err := id.Invalidate()
	fl.Clear(flow.IdentityKey)
	return err
}

func unboundAuthzError(p authz.Permission) *authz.AuthorizationError {
	return &authz.AuthorizationError{
		Permission: p,
		Reason:     "no identity bound to the current flow - caller has not authenticated yet",
	}
}
