package flow

import (
	"context"
	"errors"
	"sync"
)

// Key is a type for slot keys to avoid collisions.
type Key string

const (
	// IdentityKey is the reserved slot key for the current security identity.
	IdentityKey Key = "warden:identity"
)

type contextKey struct{}

// ErrNoFlow is returned when an operation needs a flow but the context
// doesn't carry one.
var ErrNoFlow = errors.New("no execution flow bound to context")

// Flow is the keyed slot storage for one logical unit of work (one
// request, one worker task). Each flow owns its own slots; flows never
// see each other's state. A Flow travels down a call chain inside a
// context.Context, and unlike a plain context value its slots can be
// written after the context has been handed out.
type Flow struct {
	mu    sync.RWMutex
	slots map[Key]any
}

// New creates an empty flow.
func New() *Flow {
	return &Flow{slots: make(map[Key]any)}
}

// Get returns the value stored under key, or nil.
func (f *Flow) Get(key Key) any {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.slots[key]
}

// Put stores value under key, overwriting any previous value.
func (f *Flow) Put(key Key, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots[key] = value
}

// Clear removes the value stored under key.
func (f *Flow) Clear(key Key) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.slots, key)
}

// With binds f to ctx.
func With(ctx context.Context, f *Flow) context.Context {
	return context.WithValue(ctx, contextKey{}, f)
}

// NewContext opens a fresh flow and binds it to ctx. The surrounding
// harness (HTTP middleware, worker loop) calls this once per unit of
// work; everything downstream shares the flow through the context.
func NewContext(ctx context.Context) context.Context {
	return With(ctx, New())
}

// From retrieves the flow bound to ctx.
func From(ctx context.Context) (*Flow, bool) {
	f, ok := ctx.Value(contextKey{}).(*Flow)
	return f, ok
}
