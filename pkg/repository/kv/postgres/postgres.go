//nolint:whitespace // can't make both editor and linter happy
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/mpapenbr/triathlon-pacer/log"
	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv"
	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv/factory"
)

const tableName = "kv_store"

type (
	Option   func(*pgConfig)
	pgConfig struct {
		pool *pgxpool.Pool
	}

	// pgStore keeps one row per bucket and key in table kv_store
	pgStore struct {
		cfg   *kv.Config
		sqlDB *sql.DB
		conn  bob.Executor
		log   *log.Logger
	}
	kvRow struct {
		Value []byte
	}
)

var StoreTypePostgres factory.StoreType = "postgres"

var ErrMissingPool = errors.New("missing database pool")

var _ kv.Store = (*pgStore)(nil)

func WithPool(pool *pgxpool.Pool) Option {
	return func(c *pgConfig) {
		c.pool = pool
	}
}

func New(common []kv.Option, specific []Option) (kv.Store, error) {
	ownCfg := &pgConfig{}
	for _, o := range specific {
		o(ownCfg)
	}
	if ownCfg.pool == nil {
		return nil, ErrMissingPool
	}
	sqlDB := stdlib.OpenDBFromPool(ownCfg.pool)
	return &pgStore{
		cfg:   kv.NewConfig(common...),
		sqlDB: sqlDB,
		conn:  bob.NewDB(sqlDB),
		log:   log.Default().Named("kv.postgres"),
	}, nil
}

func (s *pgStore) Get(ctx context.Context, key string) ([]byte, error) {
	q := psql.Select(
		sm.Columns("value"),
		sm.From(tableName),
		sm.Where(psql.Quote("bucket").EQ(psql.Arg(s.cfg.Bucket))),
		sm.Where(psql.Quote("key").EQ(psql.Arg(key))),
	)
	res, err := bob.All(ctx, s.conn, q, scan.StructMapper[kvRow]())
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, kv.ErrKeyNotFound
	}
	return res[0].Value, nil
}

func (s *pgStore) Put(ctx context.Context, key string, value []byte) error {
	q := psql.RawQuery(`
	insert into kv_store (bucket, key, value, updated_at)
	values (?, ?, ?, now())
	on conflict (bucket, key) do update
	set value = excluded.value, updated_at = excluded.updated_at
	`, s.cfg.Bucket, key, value)
	if _, err := bob.Exec(ctx, s.conn, q); err != nil {
		return err
	}
	s.log.Debug("value written", log.String("key", key), log.Int("size", len(value)))
	return nil
}

// Close releases the sql wrapper. The pool is owned by the caller.
func (s *pgStore) Close() error {
	return s.sqlDB.Close()
}

//nolint:gochecknoinits // registering the implementation
func init() {
	factory.Register(StoreTypePostgres, New)
}
