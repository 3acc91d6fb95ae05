package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mpapenbr/triathlon-pacer/log"
	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv"
	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv/factory"
)

type (
	Option func(*memoryStore)

	memoryStore struct {
		cfg  *kv.Config
		mu   sync.RWMutex
		data map[string][]byte
		log  *log.Logger

		failure error
	}
)

var StoreTypeMemory factory.StoreType = "memory"

var _ kv.Store = (*memoryStore)(nil)

// WithFailure makes every operation return err. Used to simulate broken storage.
func WithFailure(err error) Option {
	return func(s *memoryStore) {
		s.failure = err
	}
}

func New(common []kv.Option, specific []Option) (kv.Store, error) {
	ret := &memoryStore{
		cfg:  kv.NewConfig(common...),
		data: make(map[string][]byte),
		log:  log.Default().Named("kv.memory"),
	}
	for _, o := range specific {
		o(ret)
	}
	return ret, nil
}

func (s *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failure != nil {
		return nil, s.failure
	}
	v, ok := s.data[s.composeKey(key)]
	if !ok {
		return nil, kv.ErrKeyNotFound
	}
	return slices.Clone(v), nil
}

func (s *memoryStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}
	s.log.Debug("put", log.String("key", key), log.Int("size", len(value)))
	s.data[s.composeKey(key)] = slices.Clone(value)
	return nil
}

func (s *memoryStore) Close() error {
	return nil
}

func (s *memoryStore) composeKey(key string) string {
	return s.cfg.Bucket + "." + key
}

//nolint:gochecknoinits // registering the implementation
func init() {
	factory.Register(StoreTypeMemory, New)
}
