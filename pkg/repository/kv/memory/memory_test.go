package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv"
	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv/factory"
	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv/kvtest"
)

func TestConformance(t *testing.T) {
	kvtest.Run(t, func(t *testing.T, bucket string) kv.Store {
		s, err := New([]kv.Option{kv.WithBucket(bucket)}, nil)
		require.NoError(t, err)
		return s
	})
}

func TestWithFailure(t *testing.T) {
	broken := errors.New("disk full")
	s, err := New(nil, []Option{WithFailure(broken)})
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, broken)
	assert.ErrorIs(t, s.Put(context.Background(), "k", []byte("v")), broken)
}

func TestFactory(t *testing.T) {
	assert.True(t, factory.Registered(StoreTypeMemory))
	s, err := factory.New[kv.Store, Option](StoreTypeMemory, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), "k", []byte("v")))

	_, err = factory.New[kv.Store, Option]("unknown", nil, nil)
	assert.ErrorIs(t, err, factory.ErrStoreTypeNotSupported)

	_, err = factory.New[kv.Store, string](StoreTypeMemory, nil, nil)
	assert.ErrorIs(t, err, factory.ErrStoreWrongCreator)
}
