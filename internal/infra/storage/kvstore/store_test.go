package kvstore

import (
	"context"
	"database/sql"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/realty-intake-service/pkg/psqlbuilder"
)

func newSQLiteStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// у каждого соединения своя in-memory база, поэтому ограничиваем пул одним соединением
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewStore(db, psqlbuilder.SQLite)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	return store, db
}

func TestNewStore_UnsupportedDialect(t *testing.T) {
	_, err := NewStore(nil, psqlbuilder.Dialect("mysql"))
	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}

func TestStore_SetGet(t *testing.T) {
	store, _ := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "booking:1", []byte(`{"id":"1","status":"pending"}`)))

	value, found, err := store.Get(ctx, "booking:1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"id":"1","status":"pending"}`, string(value))
}

func TestStore_SetOverwrites(t *testing.T) {
	store, _ := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "lead:1", []byte(`{"status":"new","name":"Ana"}`)))
	require.NoError(t, store.Set(ctx, "lead:1", []byte(`{"status":"contacted"}`)))

	value, found, err := store.Get(ctx, "lead:1")
	require.NoError(t, err)
	require.True(t, found)
	// полная перезапись, а не слияние
	assert.JSONEq(t, `{"status":"contacted"}`, string(value))

	all, err := store.GetByPrefix(ctx, "lead:")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStore_GetMissing(t *testing.T) {
	store, _ := newSQLiteStore(t)

	value, found, err := store.Get(context.Background(), "booking:nope")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, value)
}

func TestStore_GetByPrefix(t *testing.T) {
	store, _ := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "booking:a", []byte(`"a"`)))
	require.NoError(t, store.Set(ctx, "booking:b", []byte(`"b"`)))
	require.NoError(t, store.Set(ctx, "lead:c", []byte(`"c"`)))
	require.NoError(t, store.Set(ctx, "bookingX", []byte(`"x"`)))

	values, err := store.GetByPrefix(ctx, "booking:")
	require.NoError(t, err)

	got := make([]string, 0, len(values))
	for _, v := range values {
		got = append(got, string(v))
	}
	sort.Strings(got)
	assert.Equal(t, []string{`"a"`, `"b"`}, got)
}

func TestStore_GetByPrefix_NoMatchesIsEmpty(t *testing.T) {
	store, _ := newSQLiteStore(t)

	values, err := store.GetByPrefix(context.Background(), "lead:")
	require.NoError(t, err)
	assert.NotNil(t, values)
	assert.Empty(t, values)
}

func TestStore_GetByPrefix_EscapesWildcards(t *testing.T) {
	store, _ := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a_b:1", []byte(`1`)))
	require.NoError(t, store.Set(ctx, "axb:2", []byte(`2`)))
	require.NoError(t, store.Set(ctx, "100%:3", []byte(`3`)))
	require.NoError(t, store.Set(ctx, "1000:4", []byte(`4`)))

	values, err := store.GetByPrefix(ctx, "a_b:")
	require.NoError(t, err)
	assert.Len(t, values, 1)

	values, err = store.GetByPrefix(ctx, "100%")
	require.NoError(t, err)
	assert.Len(t, values, 1)
}

func TestStore_Delete(t *testing.T) {
	store, _ := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "lead:1", []byte(`{}`)))
	require.NoError(t, store.Delete(ctx, "lead:1"))
	require.NoError(t, store.Delete(ctx, "lead:1"))

	_, found, err := store.Get(ctx, "lead:1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_ClosedDatabaseIsUnavailable(t *testing.T) {
	store, db := newSQLiteStore(t)
	require.NoError(t, db.Close())
	ctx := context.Background()

	err := store.Set(ctx, "booking:1", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnavailable)

	_, _, err = store.Get(ctx, "booking:1")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = store.GetByPrefix(ctx, "booking:")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `booking:`, escapeLike("booking:"))
	assert.Equal(t, `a\_b\%c\\`, escapeLike(`a_b%c\`))
}

func TestStore_GetByPrefix_CaseSensitive(t *testing.T) {
	store, _ := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "lead:1", []byte(`1`)))
	require.NoError(t, store.Set(ctx, "LEAD:2", []byte(`2`)))

	values, err := store.GetByPrefix(ctx, "lead:")
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, "1", string(values[0]))
}
