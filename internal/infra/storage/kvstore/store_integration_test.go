//go:build integration

package kvstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/m04kA/realty-intake-service/pkg/psqlbuilder"
)

var pgDSN string

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "intake",
				"POSTGRES_PASSWORD": "intake",
				"POSTGRES_DB":       "intake",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "kvstore: failed to start postgres container: %v\n", err)
		os.Exit(1)
	}

	host, err := container.Host(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kvstore: failed to get container host: %v\n", err)
		os.Exit(1)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		fmt.Fprintf(os.Stderr, "kvstore: failed to get container port: %v\n", err)
		os.Exit(1)
	}
	pgDSN = fmt.Sprintf("postgres://intake:intake@%s:%s/intake?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestPostgresStore_RoundTrip(t *testing.T) {
	db, err := sql.Open("postgres", pgDSN)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	store, err := NewStore(db, psqlbuilder.Postgres)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	// миграция идемпотентна
	require.NoError(t, store.Migrate(ctx))

	require.NoError(t, store.Set(ctx, "booking:1", []byte(`{"id":"1","status":"pending"}`)))
	require.NoError(t, store.Set(ctx, "booking:1", []byte(`{"id":"1","status":"confirmed"}`)))
	require.NoError(t, store.Set(ctx, "lead:1", []byte(`{"id":"1"}`)))

	value, found, err := store.Get(ctx, "booking:1")
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"id":"1","status":"confirmed"}`, string(value))

	values, err := store.GetByPrefix(ctx, "booking:")
	require.NoError(t, err)
	assert.Len(t, values, 1)

	require.NoError(t, store.Delete(ctx, "booking:1"))
	_, found, err = store.Get(ctx, "booking:1")
	require.NoError(t, err)
	assert.False(t, found)
}
