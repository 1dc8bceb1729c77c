package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Store.Find for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// ErrInvalidated is returned by operations on a session that has been
// invalidated.
var ErrInvalidated = errors.New("session has been invalidated")

// A Session is the stateful handle attached to one authenticated
// identity: an ID, timestamps and a small attribute bag. A session
// survives for the store's TTL or until invalidated.
type Session interface {
	// ID returns the session identifier.
	ID() string

	// Owner returns the identifier of the principal the session was
	// created for.
	Owner() string

	CreatedAt() time.Time
	LastAccessedAt() time.Time

	// Get returns a session attribute.
	Get(name string) (any, bool)

	// Set stores a session attribute, overwriting any previous value.
	Set(name string, value any) error

	// Delete removes a session attribute.
	Delete(name string) error

	// Touch updates the last-accessed timestamp.
	Touch() error

	// Expired reports whether the session has passed its expiry.
	Expired() bool

	// Invalidate destroys the session. Invalidating twice is not an
	// error.
	Invalidate() error
}

// A Store creates, resolves and deletes sessions. Implementations must
// be safe for concurrent use; expired sessions must not be returned
// from Find.
type Store interface {
	Create(ctx context.Context, owner string) (Session, error)
	Find(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
