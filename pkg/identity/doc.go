// Package identity defines the resolved identity view the security
// façade delegates to, and the typed principals it is made of.
//
// An identity.Context is what a successful authentication produces:
// the caller's principals, the role/permission query surface, and the
// session handle. The façade never inspects the identity's internals;
// everything goes through the Context interface, so hosts can supply
// their own implementation.
//
// # Principals
//
// A Principal is a typed identifier. One identity may carry several:
//
//	id := identity.NewResolved([]identity.Principal{
//	    identity.NewPrincipal(identity.TypeLogin, "alice"),
//	    identity.NewPrincipal(identity.TypeEmail, "alice@example.com"),
//	}, []string{"admin"})
//
// Insertion order is preserved; the first principal is the primary one.
//
// # Resolved
//
// Resolved is the standard implementation. It answers role queries
// from its own role set and delegates permission queries to an
// authz.Authorizer. Its session is created lazily from a session.Store
// the first time it is asked for.
package identity
