// Package kvtest contains checks every kv.Store implementation has to pass.
package kvtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/triathlon-pacer/pkg/repository/kv"
)

// Run executes the conformance checks. newStore must return an empty store
// using the given bucket.
//
//nolint:funlen // ok for test code
func Run(t *testing.T, newStore func(t *testing.T, bucket string) kv.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		s := newStore(t, "missing")
		_, err := s.Get(ctx, "unknown")
		assert.ErrorIs(t, err, kv.ErrKeyNotFound)
	})

	t.Run("put and get", func(t *testing.T) {
		s := newStore(t, "putget")
		require.NoError(t, s.Put(ctx, "paceSets", []byte(`[{"name":"a"}]`)))
		got, err := s.Get(ctx, "paceSets")
		require.NoError(t, err)
		assert.Equal(t, `[{"name":"a"}]`, string(got))
	})

	t.Run("put replaces value", func(t *testing.T) {
		s := newStore(t, "replace")
		require.NoError(t, s.Put(ctx, "paceSets", []byte("first")))
		require.NoError(t, s.Put(ctx, "paceSets", []byte("second")))
		got, err := s.Get(ctx, "paceSets")
		require.NoError(t, err)
		assert.Equal(t, "second", string(got))
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStore(t, "keys")
		require.NoError(t, s.Put(ctx, "one", []byte("1")))
		require.NoError(t, s.Put(ctx, "two", []byte("2")))
		got, err := s.Get(ctx, "one")
		require.NoError(t, err)
		assert.Equal(t, "1", string(got))
	})

	t.Run("buckets are independent", func(t *testing.T) {
		a := newStore(t, "bucketa")
		b := newStore(t, "bucketb")
		require.NoError(t, a.Put(ctx, "paceSets", []byte("a")))
		_, err := b.Get(ctx, "paceSets")
		assert.ErrorIs(t, err, kv.ErrKeyNotFound)
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		s := newStore(t, "copy")
		value := []byte("abc")
		require.NoError(t, s.Put(ctx, "k", value))
		value[0] = 'x'
		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(got))
		got[0] = 'y'
		again, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(again))
	})
}
