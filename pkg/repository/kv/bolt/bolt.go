package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.etcd.io/bbolt"

	"github.com/mpapenbr/triathlon-pacer/log"
	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv"
	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv/factory"
)

type (
	Option     func(*boltConfig)
	boltConfig struct {
		path    string
		timeout time.Duration
	}

	// boltStore keeps all values of a bucket in a local BoltDB file
	boltStore struct {
		cfg *kv.Config
		db  *bbolt.DB
		log *log.Logger
	}
)

var StoreTypeBolt factory.StoreType = "bolt"

var _ kv.Store = (*boltStore)(nil)

func WithPath(path string) Option {
	return func(c *boltConfig) {
		c.path = path
	}
}

// WithOpenTimeout limits the wait for the file lock held by another process
func WithOpenTimeout(d time.Duration) Option {
	return func(c *boltConfig) {
		c.timeout = d
	}
}

func New(common []kv.Option, specific []Option) (kv.Store, error) {
	ownCfg := &boltConfig{path: "tpc.db", timeout: 5 * time.Second}
	for _, o := range specific {
		o(ownCfg)
	}
	ret := &boltStore{
		cfg: kv.NewConfig(common...),
		log: log.Default().Named("kv.bolt"),
	}

	dir := filepath.Dir(ownCfg.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	db, err := bbolt.Open(ownCfg.path, 0o600, &bbolt.Options{Timeout: ownCfg.timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open BoltDB at %s: %w", ownCfg.path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(ret.cfg.Bucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}
	ret.db = db
	ret.log.Debug("BoltDB store initialized",
		log.String("path", ownCfg.path),
		log.String("bucket", ret.cfg.Bucket))
	return ret, nil
}

func (s *boltStore) Get(ctx context.Context, key string) ([]byte, error) {
	var ret []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(s.cfg.Bucket))
		v := b.Get([]byte(key))
		if v == nil {
			return kv.ErrKeyNotFound
		}
		// v is only valid during the transaction
		ret = slices.Clone(v)
		return nil
	})
	return ret, err
}

func (s *boltStore) Put(ctx context.Context, key string, value []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(s.cfg.Bucket))
		return b.Put([]byte(key), value)
	})
}

func (s *boltStore) Close() error {
	return s.db.Close()
}

//nolint:gochecknoinits // registering the implementation
func init() {
	factory.Register(StoreTypeBolt, New)
}
