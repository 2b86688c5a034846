package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	mem "fdweb/pkg/memcache"
)

// exerciseSlotStore runs the behaviour every backend must share.
func exerciseSlotStore(t *testing.T, store SlotStore) {
	t.Helper()
	ctx := context.Background()

	_, found, err := store.Get(ctx, "fd_views")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "fd_views", "3"))
	v, found, err := store.Get(ctx, "fd_views")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "3", v)

	require.NoError(t, store.SetMany(ctx, map[string]string{
		"fd_leads":       "[]",
		"fd_views":       "0",
		"fd_quiz_starts": "0",
	}))
	v, _, err = store.Get(ctx, "fd_views")
	require.NoError(t, err)
	assert.Equal(t, "0", v)
	v, _, err = store.Get(ctx, "fd_leads")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestMemorySlotStore(t *testing.T) {
	store := NewMemorySlotStore(mem.NewMemStore())
	exerciseSlotStore(t, store)
	assert.NoError(t, store.Close())
}

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRedisSlotStore(t *testing.T) {
	mr, client := newMiniredis(t)
	store := NewRedisSlotStore(client, "fdweb:")

	exerciseSlotStore(t, store)

	// keys are namespaced by the prefix
	got, err := mr.Get("fdweb:fd_quiz_starts")
	require.NoError(t, err)
	assert.Equal(t, "0", got)

	assert.NoError(t, store.Close())
}

func TestRedisSlotStoreUnavailable(t *testing.T) {
	mr, client := newMiniredis(t)
	store := NewRedisSlotStore(client, "")
	mr.Close()

	_, _, err := store.Get(context.Background(), "fd_views")
	assert.Error(t, err)
	assert.Error(t, store.SetMany(context.Background(), map[string]string{"fd_views": "0"}))
}

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestPostgresSlotStoreGet(t *testing.T) {
	db, mock := newMockGorm(t)
	store := NewPostgresSlotStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "kv_slots" WHERE key = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}).
			AddRow("fd_views", "12", 1760000000))

	v, found, err := store.Get(context.Background(), "fd_views")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "12", v)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "kv_slots" WHERE key = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}))

	_, found, err = store.Get(context.Background(), "fd_leads")
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSlotStoreGetError(t *testing.T) {
	db, mock := newMockGorm(t)
	store := NewPostgresSlotStore(db)

	mock.ExpectQuery(`SELECT .* FROM "kv_slots"`).WillReturnError(errors.New("connection refused"))

	_, _, err := store.Get(context.Background(), "fd_views")
	assert.ErrorContains(t, err, "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSlotStoreSetUpserts(t *testing.T) {
	db, mock := newMockGorm(t)
	store := NewPostgresSlotStore(db)

	mock.ExpectExec(`INSERT INTO "kv_slots" .* ON CONFLICT \("key"\) DO UPDATE`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Set(context.Background(), "fd_views", "4"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSlotStoreSetManyIsTransactional(t *testing.T) {
	db, mock := newMockGorm(t)
	store := NewPostgresSlotStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "kv_slots"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "kv_slots"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "kv_slots"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.SetMany(context.Background(), map[string]string{
		"fd_leads":       "[]",
		"fd_views":       "0",
		"fd_quiz_starts": "0",
	}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSlotStoreSetManyRollsBack(t *testing.T) {
	db, mock := newMockGorm(t)
	store := NewPostgresSlotStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "kv_slots"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "kv_slots"`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := store.SetMany(context.Background(), map[string]string{
		"fd_leads": "[]",
		"fd_views": "0",
	})
	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}
