package gormstore

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doodlesbykumbi/warden/pkg/session"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 mockDB,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)

	return gormDB, mock
}

func TestStore_Create(t *testing.T) {
	db, mock := setupTestDB(t)
	store := NewStore(db, time.Minute)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "sessions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sess, err := store.Create(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID())
	assert.Equal(t, "alice", sess.Owner())
	assert.False(t, sess.Expired())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Find_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	store := NewStore(db, time.Minute)

	mock.ExpectQuery(`SELECT \* FROM "sessions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id_sha256"}))

	_, err := store.Find(context.Background(), "unknown")
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Find_Active(t *testing.T) {
	db, mock := setupTestDB(t)
	store := NewStore(db, time.Minute)

	id := session.GenerateID()
	now := time.Now()
	rows := sqlmock.NewRows(
		[]string{"id_sha256", "owner", "created_at", "last_accessed_at", "expires_at", "attributes"},
	).AddRow(session.HashID(id), "alice", now, now, now.Add(time.Minute), []byte(`{"theme":"dark"}`))
	mock.ExpectQuery(`SELECT \* FROM "sessions"`).
		WithArgs(session.HashID(id), 1).
		WillReturnRows(rows)

	sess, err := store.Find(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, sess.ID())
	assert.Equal(t, "alice", sess.Owner())

	v, ok := sess.Get("theme")
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Find_Expired(t *testing.T) {
	db, mock := setupTestDB(t)
	store := NewStore(db, time.Minute)

	id := session.GenerateID()
	stale := time.Now().Add(-time.Hour)
	rows := sqlmock.NewRows(
		[]string{"id_sha256", "owner", "created_at", "last_accessed_at", "expires_at", "attributes"},
	).AddRow(session.HashID(id), "alice", stale, stale, stale.Add(time.Minute), []byte(`{}`))
	mock.ExpectQuery(`SELECT \* FROM "sessions"`).
		WillReturnRows(rows)

	// The stale row gets cleaned up.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "sessions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := store.Find(context.Background(), id)
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_Invalidate(t *testing.T) {
	db, mock := setupTestDB(t)
	store := NewStore(db, time.Minute)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "sessions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	sess, err := store.Create(context.Background(), "alice")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "sessions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, sess.Invalidate())
	assert.True(t, sess.Expired())
	assert.ErrorIs(t, sess.Set("k", "v"), session.ErrInvalidated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
