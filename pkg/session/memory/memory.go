package memory

import (
	"context"
	"sync"
	"time"

	"github.com/doodlesbykumbi/warden/pkg/session"
)

// DefaultTTL is used when the store is created with a zero TTL.
const DefaultTTL = 30 * time.Minute

// Ensure Store implements session.Store
var _ session.Store = (*Store)(nil)

// Store is an in-process session store. Expired sessions are dropped
// on access; there is no background sweeper.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*memSession
	now      func() time.Time
}

// NewStore creates a store whose sessions expire ttl after their last
// access.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*memSession),
		now:      time.Now,
	}
}

// Create opens a new session for owner.
func (s *Store) Create(_ context.Context, owner string) (session.Session, error) {
	now := s.now()
	sess := &memSession{
		store:        s,
		id:           session.GenerateID(),
		owner:        owner,
		createdAt:    now,
		lastAccessed: now,
		attrs:        make(map[string]any),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	return sess, nil
}

// Find resolves a session by ID. Expired sessions are deleted and
// reported as not found.
func (s *Store) Find(_ context.Context, id string) (session.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, session.ErrNotFound
	}
	if sess.Expired() {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, session.ErrNotFound
	}
	return sess, nil
}

// Delete removes a session. Deleting an unknown ID is not an error.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

type memSession struct {
	store *Store
	id    string
	owner string

	mu           sync.RWMutex
	createdAt    time.Time
	lastAccessed time.Time
	attrs        map[string]any
	invalidated  bool
}

func (m *memSession) ID() string    { return m.id }
func (m *memSession) Owner() string { return m.owner }

func (m *memSession) CreatedAt() time.Time {
	return m.createdAt
}

func (m *memSession) LastAccessedAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastAccessed
}

func (m *memSession) Get(name string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.attrs[name]
	return v, ok
}

func (m *memSession) Set(name string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.invalidated {
		return session.ErrInvalidated
	}
	m.attrs[name] = value
	return nil
}

func (m *memSession) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.invalidated {
		return session.ErrInvalidated
	}
	delete(m.attrs, name)
	return nil
}

func (m *memSession) Touch() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.invalidated {
		return session.ErrInvalidated
	}
	m.lastAccessed = m.store.now()
	return nil
}

func (m *memSession) Expired() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.invalidated {
		return true
	}
	return m.store.now().After(m.lastAccessed.Add(m.store.ttl))
}

func (m *memSession) Invalidate() error {
	m.mu.Lock()
	m.invalidated = true
	m.mu.Unlock()
	return m.store.Delete(context.Background(), m.id)
}
