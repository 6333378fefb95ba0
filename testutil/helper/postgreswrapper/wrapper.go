package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	eventstorepg "github.com/AntonStoeckl/library-records-go/eventstore/postgresengine"
	"github.com/AntonStoeckl/library-records-go/library/shell/config"
	"github.com/AntonStoeckl/library-records-go/recordstore/postgresengine"
)

// Adapter type constants, selected with the ADAPTER_TYPE environment variable.
const (
	typePGXPool = "pgxpool"
	typeSQLDB   = "sqldb"
	typeSQLX    = "sqlx"
)

const postgresImage = "postgres:17-alpine"

// Wrapper gives tests a migrated database behind one of the supported adapters.
type Wrapper struct {
	Engine     *postgresengine.Engine
	EventStore *eventstorepg.EventStore
	DSN        string
}

// StartPostgres runs a throwaway Postgres container, applies all migrations and opens the engine and
// the event store with the adapter named by ADAPTER_TYPE. Everything is released on test cleanup.
func StartPostgres(t testing.TB) Wrapper {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		postgresImage,
		postgres.WithDatabase("library"),
		postgres.WithUsername("library"),
		postgres.WithPassword("library"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "starting postgres container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := config.Config{DatabaseURL: dsn, DBMaxConns: 10}

	migrationDB, err := config.NewSQLDB(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, postgresengine.MigrateUp(migrationDB))
	require.NoError(t, migrationDB.Close())

	wrapper := Wrapper{DSN: dsn}

	switch adapterType := strings.ToLower(os.Getenv("ADAPTER_TYPE")); adapterType {
	case typePGXPool, "":
		var pool *pgxpool.Pool
		pool, err = config.NewPGXPool(ctx, cfg)
		require.NoError(t, err)
		t.Cleanup(pool.Close)

		wrapper.Engine, err = postgresengine.NewEngineFromPGXPool(pool)
		require.NoError(t, err)
		wrapper.EventStore, err = eventstorepg.NewEventStoreFromPGXPool(pool)
		require.NoError(t, err)

	case typeSQLDB:
		var db *sql.DB
		db, err = config.NewSQLDB(ctx, cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		wrapper.Engine, err = postgresengine.NewEngineFromSQLDB(db)
		require.NoError(t, err)
		wrapper.EventStore, err = eventstorepg.NewEventStoreFromSQLDB(db)
		require.NoError(t, err)

	case typeSQLX:
		var db *sqlx.DB
		db, err = config.NewSQLX(ctx, cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		wrapper.Engine, err = postgresengine.NewEngineFromSQLX(db)
		require.NoError(t, err)
		wrapper.EventStore, err = eventstorepg.NewEventStoreFromSQLX(db)
		require.NoError(t, err)

	default:
		panic(fmt.Sprintf("unsupported adapter type from env: %s", adapterType))
	}

	return wrapper
}
