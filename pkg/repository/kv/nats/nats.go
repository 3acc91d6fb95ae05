package nats

import (
	"context"
	"errors"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/mpapenbr/triathlon-pacer/log"
	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv"
	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv/factory"
)

type (
	Option          func(*natsStoreConfig)
	natsStoreConfig struct {
		nc       *nats.Conn
		replicas int
	}

	// natsStore keeps the values in a NATS JetStream key-value bucket.
	// The latest revision of a key is the current value.
	natsStore struct {
		cfg    *kv.Config
		ownCfg *natsStoreConfig
		log    *log.Logger
		kv     jetstream.KeyValue
	}
)

var StoreTypeNATS factory.StoreType = "nats"

var ErrMissingConnection = errors.New("missing nats connection")

var _ kv.Store = (*natsStore)(nil)

func WithNATS(nc *nats.Conn) Option {
	return func(c *natsStoreConfig) {
		c.nc = nc
	}
}

func WithReplicas(replicas int) Option {
	return func(c *natsStoreConfig) {
		c.replicas = replicas
	}
}

func New(common []kv.Option, specific []Option) (kv.Store, error) {
	ownCfg := &natsStoreConfig{replicas: 1}
	for _, o := range specific {
		o(ownCfg)
	}
	if ownCfg.nc == nil {
		return nil, ErrMissingConnection
	}
	ret := &natsStore{
		cfg:    kv.NewConfig(common...),
		ownCfg: ownCfg,
		log:    log.Default().Named("kv.nats"),
	}
	ret.log.Debug("Initializing NATS key-value store")
	if err := ret.init(); err != nil {
		return nil, err
	}
	ret.log.Debug("Initialized NATS key-value store",
		log.String("bucket", ret.cfg.Bucket))
	return ret, nil
}

func (s *natsStore) init() error {
	var js jetstream.JetStream
	var err error
	if js, err = jetstream.New(s.ownCfg.nc); err != nil {
		return err
	}
	s.kv, err = js.CreateOrUpdateKeyValue(context.Background(), jetstream.KeyValueConfig{
		Bucket:   s.cfg.Bucket,
		History:  1,
		Replicas: s.ownCfg.replicas,
	})
	return err
}

func (s *natsStore) Get(ctx context.Context, key string) ([]byte, error) {
	kve, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, kv.ErrKeyNotFound
		}
		return nil, err
	}
	s.log.Debug("read value", log.String("key", key), log.Uint64("rev", kve.Revision()))
	return kve.Value(), nil
}

func (s *natsStore) Put(ctx context.Context, key string, value []byte) error {
	rev, err := s.kv.Put(ctx, key, value)
	if err != nil {
		return err
	}
	s.log.Debug("value written", log.String("key", key), log.Uint64("rev", rev))
	return nil
}

// Close does not close the connection, it is owned by the caller
func (s *natsStore) Close() error {
	return nil
}

//nolint:gochecknoinits // registering the implementation
func init() {
	factory.Register(StoreTypeNATS, New)
}
