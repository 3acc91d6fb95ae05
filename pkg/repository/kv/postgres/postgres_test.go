package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv"
	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv/kvtest"
	"github.com/mpapenbr/triathlon-pacer/testsupport/testdb"
)

func newTestStore(t *testing.T, bucket string) kv.Store {
	t.Helper()
	pool := testdb.InitTestDB(t, bucket)
	s, err := New([]kv.Option{kv.WithBucket(bucket)}, []Option{WithPool(pool)})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestConformance(t *testing.T) {
	kvtest.Run(t, newTestStore)
}

func TestInitClearsOnlyRequestedBucket(t *testing.T) {
	ctx := context.Background()
	keep := newTestStore(t, "keep")
	drop := newTestStore(t, "drop")
	require.NoError(t, keep.Put(ctx, "k", []byte("kept")))
	require.NoError(t, drop.Put(ctx, "k", []byte("dropped")))

	testdb.InitTestDB(t, "drop")

	_, err := drop.Get(ctx, "k")
	assert.ErrorIs(t, err, kv.ErrKeyNotFound)
	got, err := keep.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("kept"), got)
}

func TestMissingPool(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, ErrMissingPool)
}
