package identity

import (
	"github.com/doodlesbykumbi/warden/pkg/authz"
	"github.com/doodlesbykumbi/warden/pkg/session"
)

// Context is the resolved, authenticated identity view: who the caller
// is, what they may do, and their session. Authenticators produce one
// on success; the security façade resolves it from the current flow
// and delegates every query to it.
type Context interface {
	// Principal returns the identity's primary principal (the first
	// one, in insertion order).
	Principal() (Principal, bool)

	// Principals returns all principals in insertion order.
	Principals() []Principal

	// PrincipalByType returns the first principal of the given type.
	PrincipalByType(principalType string) (Principal, bool)

	// PrincipalsByType returns all principals of the given type, in
	// insertion order.
	PrincipalsByType(principalType string) []Principal

	// HasRole reports whether the identity holds the role.
	HasRole(role string) bool

	// HasRoles reports, per input role and in input order, whether the
	// identity holds it. The result always has len(roles) elements.
	HasRoles(roles []string) []bool

	// HasAllRoles reports whether the identity holds every listed role.
	HasAllRoles(roles []string) bool

	// Implies reports whether the identity is granted the permission.
	Implies(p authz.Permission) bool

	// ImpliesEach reports, per input permission and in input order,
	// whether it is granted. The result always has len(perms) elements.
	ImpliesEach(perms []authz.Permission) []bool

	// ImpliesAll reports whether every listed permission is granted.
	ImpliesAll(perms []authz.Permission) bool

	// CheckPermission returns an *authz.AuthorizationError if the
	// permission is not granted.
	CheckPermission(p authz.Permission) error

	// CheckPermissions returns an *authz.AuthorizationError for the
	// first permission that is not granted.
	CheckPermissions(perms []authz.Permission) error

	// Session returns the identity's session, creating it when create
	// is true and none exists yet. With create false and no session,
	// it returns (nil, nil).
	Session(create bool) (session.Session, error)

	// Invalidate destroys the identity's session, if any. The identity
	// is unusable for session access afterwards.
	Invalidate() error
}
