package kv

import (
	"context"
	"errors"
)

const DefaultBucket = "tpc"

type (
	// Store holds whole values under a key. Put replaces the previous value.
	Store interface {
		Get(ctx context.Context, key string) ([]byte, error)
		Put(ctx context.Context, key string, value []byte) error
		Close() error
	}
	Config struct {
		Bucket string // namespace for the keys of this store
	}
	Option func(*Config)
)

var ErrKeyNotFound = errors.New("key not found")

func WithBucket(bucket string) Option {
	return func(c *Config) {
		if bucket != "" {
			c.Bucket = bucket
		}
	}
}

func NewConfig(opts ...Option) *Config {
	cfg := &Config{Bucket: DefaultBucket}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
