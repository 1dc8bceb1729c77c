package authz

import "fmt"

// Permission is a privilege on a resource, e.g. "read" on
// "vault:secrets/db-password".
type Permission struct {
	Privilege string
	Resource  string
}

func (p Permission) String() string {
	return p.Privilege + " on " + p.Resource
}

// Authorizer decides whether a set of roles grants a permission. It is
// the evaluation engine behind every implies/check query; the engine
// itself (rule storage, wildcard semantics, hierarchy) lives behind
// this interface.
type Authorizer interface {
	Allowed(roles []string, p Permission) bool
}

// AuthorizationError reports a denied or unresolvable permission check.
type AuthorizationError struct {
	Permission Permission
	Reason     string
}

func (e *AuthorizationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("authorization failed: %s", e.Reason)
	}
	return fmt.Sprintf("authorization failed: permission not granted: %s", e.Permission)
}
