// Package testdb hands out a migrated postgres pool for kv_store tests.
package testdb

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	tcpg "github.com/mpapenbr/triathlon-pacer/testsupport/tcpostgres"
)

var (
	setupOnce  sync.Once
	sharedPool *pgxpool.Pool
)

// InitTestDB returns the pool shared by all tests of a package.
// The database is either given by env TESTDB_URL or a reused container.
// Rows of the given buckets are removed, all rows if no bucket is given.
func InitTestDB(t testing.TB, buckets ...string) *pgxpool.Pool {
	t.Helper()
	setupOnce.Do(func() {
		if os.Getenv("TESTDB_URL") != "" {
			sharedPool = tcpg.SetupExternalTestDB()
		} else {
			sharedPool = tcpg.SetupTestDB()
		}
	})
	if err := tcpg.ClearKVStore(context.Background(), sharedPool, buckets...); err != nil {
		t.Fatalf("clear kv_store: %v", err)
	}
	return sharedPool
}
