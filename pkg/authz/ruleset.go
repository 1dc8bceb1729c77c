package authz

import "sync"

// Wildcard matches any privilege or any resource in a grant.
const Wildcard = "*"

// RuleSet is an in-memory Authorizer: a table of role → permission
// grants with wildcard support. Reads are safe for concurrent use;
// Grant may be called concurrently with reads.
type RuleSet struct {
	mu     sync.RWMutex
	grants map[string][]Permission
}

// NewRuleSet creates an empty rule set.
func NewRuleSet() *RuleSet {
	return &RuleSet{grants: make(map[string][]Permission)}
}

// Grant records that role holds the given permissions. Either field of
// a permission may be the Wildcard.
func (r *RuleSet) Grant(role string, perms ...Permission) *RuleSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grants[role] = append(r.grants[role], perms...)
	return r
}

// Allowed reports whether any of the roles holds a grant matching p.
func (r *RuleSet) Allowed(roles []string, p Permission) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, role := range roles {
		for _, g := range r.grants[role] {
			if matches(g, p) {
				return true
			}
		}
	}
	return false
}

func matches(grant, want Permission) bool {
	if grant.Privilege != Wildcard && grant.Privilege != want.Privilege {
		return false
	}
	if grant.Resource != Wildcard && grant.Resource != want.Resource {
		return false
	}
	return true
}
