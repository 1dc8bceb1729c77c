// Package session defines the session contract consumed by identity
// contexts, plus ID generation and hashing helpers.
//
// A session is created lazily the first time an authenticated identity
// asks for one and lives until it expires or is invalidated. Two store
// implementations ship in subpackages:
//
//   - memory: mutex-guarded in-process store with TTL expiry
//   - gormstore: GORM-backed store over a sessions table
package session
