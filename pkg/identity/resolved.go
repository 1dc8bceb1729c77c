package identity

import (
	"context"
	"sync"

	"github.com/doodlesbykumbi/warden/pkg/authz"
	"github.com/doodlesbykumbi/warden/pkg/session"
)

// Ensure Resolved implements Context
var _ Context = (*Resolved)(nil)

// Resolved is the standard Context implementation produced by the
// bundled authenticators: an ordered principal list, a role set, and
// delegation of permission decisions to an authz.Authorizer. The
// session is created lazily through a session.Store.
type Resolved struct {
	principals []Principal
	roles      []string
	roleSet    map[string]struct{}
	authorizer authz.Authorizer
	sessions   session.Store

	mu      sync.Mutex
	session session.Session
}

// Option configures a Resolved identity.
type Option func(*Resolved)

// WithAuthorizer sets the permission evaluation engine. Without one,
// every implies/check query denies.
func WithAuthorizer(a authz.Authorizer) Option {
	return func(r *Resolved) { r.authorizer = a }
}

// WithSessionStore sets the store used for lazy session creation.
// Without one, session access fails with session.ErrNotFound.
func WithSessionStore(s session.Store) Option {
	return func(r *Resolved) { r.sessions = s }
}

// WithSession seeds an already-established session, e.g. when an
// authenticator resumed one from a cookie.
func WithSession(s session.Session) Option {
	return func(r *Resolved) { r.session = s }
}

// NewResolved creates an identity with the given principals and roles.
// Principal order is preserved; duplicate principal types are allowed.
func NewResolved(principals []Principal, roles []string, opts ...Option) *Resolved {
	r := &Resolved{
		principals: append([]Principal(nil), principals...),
		roles:      append([]string(nil), roles...),
		roleSet:    make(map[string]struct{}, len(roles)),
	}
	for _, role := range roles {
		r.roleSet[role] = struct{}{}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Roles returns the identity's roles in insertion order.
func (r *Resolved) Roles() []string {
	return append([]string(nil), r.roles...)
}

func (r *Resolved) Principal() (Principal, bool) {
	if len(r.principals) == 0 {
		return Principal{}, false
	}
	return r.principals[0], true
}

func (r *Resolved) Principals() []Principal {
	return append([]Principal(nil), r.principals...)
}

func (r *Resolved) PrincipalByType(principalType string) (Principal, bool) {
	for _, p := range r.principals {
		if p.Type() == principalType {
			return p, true
		}
	}
	return Principal{}, false
}

func (r *Resolved) PrincipalsByType(principalType string) []Principal {
	var out []Principal
	for _, p := range r.principals {
		if p.Type() == principalType {
			out = append(out, p)
		}
	}
	return out
}

func (r *Resolved) HasRole(role string) bool {
	_, ok := r.roleSet[role]
	return ok
}

func (r *Resolved) HasRoles(roles []string) []bool {
	out := make([]bool, len(roles))
	for i, role := range roles {
		out[i] = r.HasRole(role)
	}
	return out
}

func (r *Resolved) HasAllRoles(roles []string) bool {
	for _, role := range roles {
		if !r.HasRole(role) {
			return false
		}
	}
	return true
}

func (r *Resolved) Implies(p authz.Permission) bool {
	if r.authorizer == nil {
		return false
	}
	return r.authorizer.Allowed(r.roles, p)
}

func (r *Resolved) ImpliesEach(perms []authz.Permission) []bool {
	out := make([]bool, len(perms))
	for i, p := range perms {
		out[i] = r.Implies(p)
	}
	return out
}

func (r *Resolved) ImpliesAll(perms []authz.Permission) bool {
	for _, p := range perms {
		if !r.Implies(p) {
			return false
		}
	}
	return true
}

func (r *Resolved) CheckPermission(p authz.Permission) error {
	if !r.Implies(p) {
		return &authz.AuthorizationError{Permission: p}
	}
	return nil
}

func (r *Resolved) CheckPermissions(perms []authz.Permission) error {
	for _, p := range perms {
		if err := r.CheckPermission(p); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolved) Session(create bool) (session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil && !r.session.Expired() {
		return r.session, nil
	}
	if !create {
		return nil, nil
	}
	if r.sessions == nil {
		return nil, session.ErrNotFound
	}

	owner := ""
	if p, ok := r.Principal(); ok {
		owner = p.String()
	}
	sess, err := r.sessions.Create(context.Background(), owner)
	if err != nil {
		return nil, err
	}
	r.session = sess
	return sess, nil
}

func (r *Resolved) Invalidate() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return nil
	}
	err := r.session.Invalidate()
	r.session = nil
	return err
}
