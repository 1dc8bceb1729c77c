package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/warden/pkg/session"
)

// DefaultTTL is used when the store is created with a zero TTL.
const DefaultTTL = 30 * time.Minute

// Ensure Store implements session.Store
var _ session.Store = (*Store)(nil)

// Record is the database row behind a session. Rows are keyed by the
// SHA256 of the session ID; the plaintext ID is never stored.
type Record struct {
	IDSHA256       string    `gorm:"column:id_sha256;primaryKey"`
	Owner          string    `gorm:"column:owner"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	LastAccessedAt time.Time `gorm:"column:last_accessed_at"`
	ExpiresAt      time.Time `gorm:"column:expires_at"`
	Attributes     []byte    `gorm:"column:attributes"`
}

func (Record) TableName() string {
	return "sessions"
}

// Store implements session.Store over a sessions table using GORM.
type Store struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewStore creates a store whose sessions expire ttl after their last
// access.
func NewStore(db *gorm.DB, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{db: db, ttl: ttl}
}

// Create opens a new session for owner and persists it.
func (s *Store) Create(ctx context.Context, owner string) (session.Session, error) {
	now := time.Now()
	id := session.GenerateID()
	rec := Record{
		IDSHA256:       session.HashID(id),
		Owner:          owner,
		CreatedAt:      now,
		LastAccessedAt: now,
		ExpiresAt:      now.Add(s.ttl),
		Attributes:     []byte("{}"),
	}

	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, err
	}
	return &dbSession{store: s, id: id, rec: rec, attrs: map[string]any{}}, nil
}

// Find resolves a session by its plaintext ID. Expired rows are
// deleted and reported as not found.
func (s *Store) Find(ctx context.Context, id string) (session.Session, error) {
	var rec Record
	err := s.db.WithContext(ctx).First(&rec, "id_sha256 = ?", session.HashID(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if time.Now().After(rec.ExpiresAt) {
		_ = s.deleteHash(ctx, rec.IDSHA256)
		return nil, session.ErrNotFound
	}

	attrs := map[string]any{}
	if len(rec.Attributes) > 0 {
		if err := json.Unmarshal(rec.Attributes, &attrs); err != nil {
			return nil, err
		}
	}
	return &dbSession{store: s, id: id, rec: rec, attrs: attrs}, nil
}

// Delete removes a session by its plaintext ID. Deleting an unknown ID
// is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.deleteHash(ctx, session.HashID(id))
}

func (s *Store) deleteHash(ctx context.Context, hash string) error {
	return s.db.WithContext(ctx).Delete(&Record{}, "id_sha256 = ?", hash).Error
}

type dbSession struct {
	store *Store
	id    string

	mu          sync.RWMutex
	rec         Record
	attrs       map[string]any
	invalidated bool
}

func (d *dbSession) ID() string    { return d.id }
func (d *dbSession) Owner() string { return d.rec.Owner }

func (d *dbSession) CreatedAt() time.Time {
	return d.rec.CreatedAt
}

func (d *dbSession) LastAccessedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.rec.LastAccessedAt
}

func (d *dbSession) Get(name string) (any, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.attrs[name]
	return v, ok
}

func (d *dbSession) Set(name string, value any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.invalidated {
		return session.ErrInvalidated
	}
	d.attrs[name] = value
	return d.save()
}

func (d *dbSession) Delete(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.invalidated {
		return session.ErrInvalidated
	}
	delete(d.attrs, name)
	return d.save()
}

func (d *dbSession) Touch() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.invalidated {
		return session.ErrInvalidated
	}
	now := time.Now()
	d.rec.LastAccessedAt = now
	d.rec.ExpiresAt = now.Add(d.store.ttl)
	return d.save()
}

func (d *dbSession) Expired() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.invalidated {
		return true
	}
	return time.Now().After(d.rec.ExpiresAt)
}

func (d *dbSession) Invalidate() error {
	d.mu.Lock()
	d.invalidated = true
	d.mu.Unlock()
	return d.store.Delete(context.Background(), d.id)
}

// save persists the current row. Caller holds the write lock.
func (d *dbSession) save() error {
	raw, err := json.Marshal(d.attrs)
	if err != nil {
		return err
	}
	d.rec.Attributes = raw
	return d.store.db.Save(&d.rec).Error
}
