// Package security provides the ambient identity and authorization
// façade: code anywhere in a call chain can ask who the current caller
// is and what they may do, without an identity parameter on every
// function.
//
// # How it works
//
// The surrounding harness opens an execution flow per unit of work and
// carries it in the context (see package flow). Authenticate binds the
// identity produced by the configured authn.Authenticator into that
// flow; every later query on the same flow resolves it:
//
//	facade := security.New(security.WithAuthenticator(auth))
//
//	ctx := flow.NewContext(r.Context())
//	if err := facade.Authenticate(ctx, tok); err != nil { ... }
//
//	// anywhere downstream
//	if facade.HasRole(ctx, "admin") { ... }
//	if err := facade.CheckPermission(ctx, p); err != nil { ... }
//
// Concurrent flows are fully isolated: binding an identity in one
// request never leaks into another. The Facade itself is stateless and
// safe to share.
//
// # Fail-open queries, fail-closed assertions
//
// When no identity is bound, read queries return safe empties —
// IsAuthenticated is false, Principals is empty, HasRoles is all-false
// with the input's length. Assertions refuse instead: CheckPermission
// returns an *authz.AuthorizationError, Session and Invalidate return
// ErrNoIdentity. Callers choose the tier that matches their need.
package security
