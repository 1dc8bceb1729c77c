// Package authz defines the permission model and the Authorizer
// contract that identity contexts delegate their implies/check
// decisions to.
//
// Two implementations ship with the package:
//
//   - RuleSet: an in-memory role → permission table with wildcard
//     grants, suitable for tests, CLIs and static policies.
//   - Store: a GORM-backed authorizer over a permissions table.
//
// Hosts with their own policy engine implement Authorizer directly.
package authz
