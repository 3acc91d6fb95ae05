//nolint:errcheck // testsetup
package tcpostgres

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mpapenbr/triathlon-pacer/pkg/db/migrate"
	database "github.com/mpapenbr/triathlon-pacer/pkg/db/postgres"
)

// create a pg connection pool for the pace set testdatabase
func SetupTestDB() *pgxpool.Pool {
	ctx := context.Background()
	port, err := nat.NewPort("tcp", "5432")
	if err != nil {
		log.Fatal(err)
	}
	container, err := SetupPostgres(ctx,
		WithPort(port.Port()),
		WithInitialDatabase("postgres", "password", "postgres"),
		WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
		WithName("triathlon-pacer-test"),
	)
	if err != nil {
		log.Fatal(err)
	}
	dbURL, err := container.ConnectionString(ctx, port)
	if err != nil {
		log.Fatal(err)
	}
	return initPool(dbURL)
}

// SetupExternalTestDB uses the database given by env TESTDB_URL
func SetupExternalTestDB() *pgxpool.Pool {
	return initPool(os.Getenv("TESTDB_URL"))
}

func initPool(dbURL string) *pgxpool.Pool {
	if err := migrate.MigrateDB(dbURL); err != nil {
		log.Fatal(err)
	}
	pool, err := database.InitWithURL(context.Background(), dbURL)
	if err != nil {
		log.Fatal(err)
	}
	return pool
}

// ClearKVStore removes the rows of the given buckets from kv_store.
// Without buckets the whole table is emptied.
func ClearKVStore(ctx context.Context, pool *pgxpool.Pool, buckets ...string) error {
	if len(buckets) == 0 {
		_, err := pool.Exec(ctx, "delete from kv_store")
		return err
	}
	_, err := pool.Exec(ctx, "delete from kv_store where bucket = any($1)", buckets)
	return err
}
