package tracker

import (
	"context"
	"testing"

	"github.com/axkov/ladder/qb"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSqliteStore(t *testing.T) *Store {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	conn := qb.New(db, qb.SQLite{})
	t.Cleanup(func() {
		require.NoError(t, conn.Close())
	})

	s := New(conn, DefaultTable)
	require.NoError(t, s.CreateTrackingTable(context.Background()))

	return s
}

func Test_CreateTrackingTable_IsIdempotent(t *testing.T) {
	s := newSqliteStore(t)

	require.NoError(t, s.CreateTrackingTable(context.Background()))
	require.NoError(t, s.CreateTrackingTable(context.Background()))
}

func Test_VersionOfUntouchedModule_IsAbsent(t *testing.T) {
	s := newSqliteStore(t)

	version, found, err := s.Version(context.Background(), "billing")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, version)
}

func Test_InsertThenUpdateVersion(t *testing.T) {
	s := newSqliteStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetVersion(ctx, "billing", 1, true))

	version, found, err := s.Version(ctx, "billing")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, version)

	require.NoError(t, s.SetVersion(ctx, "billing", 3, false))

	version, found, err = s.Version(ctx, "billing")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, version)
}

func Test_StoredZeroIsDistinctFromAbsent(t *testing.T) {
	s := newSqliteStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetVersion(ctx, "billing", 2, true))
	require.NoError(t, s.SetVersion(ctx, "billing", 0, false))

	version, found, err := s.Version(ctx, "billing")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 0, version)
}

func Test_ModulesAreTrackedIndependently(t *testing.T) {
	s := newSqliteStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetVersion(ctx, "billing", 2, true))
	require.NoError(t, s.SetVersion(ctx, "users", 5, true))
	require.NoError(t, s.SetVersion(ctx, "billing", 1, false))

	version, _, err := s.Version(ctx, "billing")
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	version, _, err = s.Version(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, 5, version)
}
